// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/response"
)

// NewArcPower builds the DAPC pseudo-command: dest with bit 0 of the
// destination byte clear and a raw power level 0..255 (255 = MASK, the
// stop-fading sentinel; callers wanting the OFF shorthand pass 0).
func NewArcPower(dest address.Address, power int) Command {
	return Command{Def: dapcDef, Dest: dest, Param: power}
}

var dapcDef = &Def{Name: "ArcPower", Kind: KindDAPC, FrameWidth: 16}

var statusBits = []string{
	"ballast", "lampFailure", "lampArcPowerOn", "limitError",
	"fadeReady", "resetState", "missingShortAddress", "powerFailure",
}

var deviceTypeNames = []string{
	"fluorescent lamp", "emergency lighting", "HID lamp",
	"low voltage halogen lamp", "incandescent lamp dimmer",
	"dc-controlled dimmer", "LED lamp",
}

func gear(name string, opcode int, opts ...func(*Def)) *Def {
	d := &Def{Name: name, Kind: KindGear, FrameWidth: 16, Opcode: opcode}
	for _, o := range opts {
		o(d)
	}
	registerGear(0, d)
	return d
}

func gearSpecialCmd(name string, opcode int, opts ...func(*Def)) *Def {
	d := &Def{Name: name, Kind: KindGearSpecial, FrameWidth: 16, Opcode: opcode, NoDest: true}
	for _, o := range opts {
		o(d)
	}
	registerGearSpecial(d)
	return d
}

func withParam(d *Def)    { d.HasParam = true }
func withConfig(d *Def)   { d.IsConfig = true; d.SendTwice = true }
func withQuery(d *Def)    { d.IsQuery = true }
func withResp(t response.Type) func(*Def) {
	return func(d *Def) { d.ResponseType = t }
}
func withBitmap(names []string) func(*Def) {
	return func(d *Def) { d.ResponseType = response.TypeBitmap; d.ResponseNames = names }
}
func withEnum(names []string) func(*Def) {
	return func(d *Def) { d.ResponseType = response.TypeEnum; d.ResponseNames = names }
}
func withDTR0(d *Def) { d.UsesDTR0 = true }
func withDTR1(d *Def) { d.UsesDTR1 = true }
func withDTR2(d *Def) { d.UsesDTR2 = true }

func init() {
	// Standard 16-bit gear commands, IEC 62386-102 Table 15.
	gear("Off", 0x00)
	gear("Up", 0x01)
	gear("Down", 0x02)
	gear("StepUp", 0x03)
	gear("StepDown", 0x04)
	gear("RecallMaxLevel", 0x05)
	gear("RecallMinLevel", 0x06)
	gear("StepDownAndOff", 0x07)
	gear("OnAndStepUp", 0x08)
	gear("GoToScene", 0x10, withParam)

	gear("Reset", 0x20, withConfig)
	gear("StoreActualLevelInDTR", 0x21, withConfig)
	gear("StoreDTRAsMaxLevel", 0x2a, withConfig, withDTR0)
	gear("StoreDTRAsMinLevel", 0x2b, withConfig, withDTR0)
	gear("StoreDTRAsFailLevel", 0x2c, withConfig, withDTR0)
	gear("StoreDTRAsPowerOnLevel", 0x2d, withConfig, withDTR0)
	gear("StoreDTRAsFadeTime", 0x2e, withConfig, withDTR0)
	gear("StoreDTRAsFadeRate", 0x2f, withConfig, withDTR0)
	gear("StoreDTRAsScene", 0x40, withParam, withConfig, withDTR0)
	gear("RemoveFromScene", 0x50, withParam, withConfig)
	gear("AddToGroup", 0x60, withParam, withConfig)
	gear("RemoveFromGroup", 0x70, withParam, withConfig)
	gear("StoreDTRAsShortAddress", 0x80, withConfig, withDTR0)

	gear("QueryStatus", 0x90, withQuery, withBitmap(statusBits))
	gear("QueryBallast", 0x91, withQuery, withResp(response.TypeYesNo))
	gear("QueryLampFailure", 0x92, withQuery, withResp(response.TypeYesNo))
	gear("QueryLampPowerOn", 0x93, withQuery, withResp(response.TypeYesNo))
	gear("QueryLimitError", 0x94, withQuery, withResp(response.TypeYesNo))
	gear("QueryResetState", 0x95, withQuery, withResp(response.TypeYesNo))
	gear("QueryMissingShortAddress", 0x96, withQuery, withResp(response.TypeYesNo))
	gear("QueryVersionNumber", 0x97, withQuery, withResp(response.TypeNumeric))
	gear("QueryDTR0", 0x98, withQuery, withResp(response.TypeNumeric), withDTR0)
	gear("QueryDeviceType", 0x99, withQuery, withEnum(deviceTypeNames))
	gear("QueryPhysicalMinimumLevel", 0x9a, withQuery, withResp(response.TypeNumeric))
	gear("QueryPowerFailure", 0x9b, withQuery, withResp(response.TypeYesNo))
	gear("QueryDTR1", 0x9c, withQuery, withResp(response.TypeNumeric), withDTR1)
	gear("QueryDTR2", 0x9d, withQuery, withResp(response.TypeNumeric), withDTR2)
	gear("QueryNextDeviceType", 0x9f, withQuery, withResp(response.TypeNumeric))

	gear("QueryActualLevel", 0xa0, withQuery, withResp(response.TypeNumeric))
	gear("QueryMaxLevel", 0xa1, withQuery, withResp(response.TypeNumeric))
	gear("QueryMinLevel", 0xa2, withQuery, withResp(response.TypeNumeric))
	gear("QueryPowerOnLevel", 0xa3, withQuery, withResp(response.TypeNumeric))
	gear("QueryFailureLevel", 0xa4, withQuery, withResp(response.TypeNumeric))
	gear("QueryFadeTimeAndRate", 0xa5, withQuery, withResp(response.TypeNumeric))
	gear("QuerySceneLevel", 0xb0, withParam, withQuery, withResp(response.TypeNumericMask))
	gear("QueryGroupsZeroToSeven", 0xc0, withQuery, withResp(response.TypeNumeric))
	gear("QueryGroupsEightToFifteen", 0xc1, withQuery, withResp(response.TypeNumeric))
	gear("QueryRandomAddressH", 0xc2, withQuery, withResp(response.TypeNumeric))
	gear("QueryRandomAddressM", 0xc3, withQuery, withResp(response.TypeNumeric))
	gear("QueryRandomAddressL", 0xc4, withQuery, withResp(response.TypeNumeric))
	gear("ReadMemoryLocation", 0xc5, withQuery, withResp(response.TypeNumeric), withDTR0, withDTR1)

	// 16-bit special commands, IEC 62386-102 Table 16. The address byte is
	// a fixed high-byte pattern (NoDest); some carry a free low byte
	// parameter in place of a destination/scene number.
	gearSpecialCmd("Terminate", 0xa1)
	gearSpecialCmd("SetDTR0", 0xa3, withParam, withDTR0)
	gearSpecialCmd("Initialise", 0xa5, withParam, withConfig)
	gearSpecialCmd("Randomise", 0xa7, withConfig)
	gearSpecialCmd("Compare", 0xa9, withQuery, withResp(response.TypeYesNo))
	gearSpecialCmd("Withdraw", 0xab)
	gearSpecialCmd("SetSearchAddrH", 0xb1, withParam)
	gearSpecialCmd("SetSearchAddrM", 0xb3, withParam)
	gearSpecialCmd("SetSearchAddrL", 0xb5, withParam)
	gearSpecialCmd("ProgramShortAddress", 0xb7, withParam)
	gearSpecialCmd("VerifyShortAddress", 0xb9, withQuery, withResp(response.TypeYesNo))
	gearSpecialCmd("QueryShortAddress", 0xbb, withQuery, withResp(response.TypeNumericMask))
	gearSpecialCmd("PhysicalSelection", 0xbd, withConfig)
	gearSpecialCmd("EnableDeviceType", 0xc1, withParam)
	gearSpecialCmd("SetDTR1", 0xc3, withParam, withDTR1)
	gearSpecialCmd("SetDTR2", 0xc5, withParam, withDTR2)
	gearSpecialCmd("WriteMemoryLocation", 0xc7, withParam, withQuery, withResp(response.TypeNumeric), withDTR0, withDTR1)
	gearSpecialCmd("WriteMemoryLocationNoReply", 0xc9, withParam, withDTR0, withDTR1)
}

// Deleting a short address has no Def or constructor of its own: it is
// ProgramShortAddress (0xB7) with the parameter 0xFF, while any other
// parameter sets the address. Both cases encode and decode through the
// single registered ProgramShortAddress Def.
