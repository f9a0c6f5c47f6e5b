// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// DT8 colour control, IEC 62386-209. Registered as device type 8 in the
// gear standard table: same 16-bit addressing as plain gear commands, the
// device type just selects a different opcode-to-Def mapping.
package command

import "github.com/dali-iot/go-dali/response"

// DeviceTypeColour is the part-209 DT8 colour-control extension.
const DeviceTypeColour = 8

// ColourValueVariable selects which temporary colour value DTR0/1/2
// addresses via the special SetDTRn commands before a colour write.
type ColourValueVariable int

const (
	ColourValueXCoordinate            ColourValueVariable = 0
	ColourValueYCoordinate            ColourValueVariable = 1
	ColourValueColourTemperatureTC    ColourValueVariable = 2
	ColourValueRedDimLevel            ColourValueVariable = 9
	ColourValueGreenDimLevel          ColourValueVariable = 10
	ColourValueBlueDimLevel           ColourValueVariable = 11
	ColourValueWhiteDimLevel          ColourValueVariable = 12
	ColourValueAmberDimLevel          ColourValueVariable = 13
	ColourValueFreeColourDimLevel     ColourValueVariable = 14
	ColourValueRGBWAFControl          ColourValueVariable = 15
)

func colourCmd(name string, opcode int, opts ...func(*Def)) *Def {
	d := &Def{Name: name, Kind: KindGear, FrameWidth: 16, DeviceType: DeviceTypeColour, Opcode: opcode}
	for _, o := range opts {
		o(d)
	}
	registerGear(DeviceTypeColour, d)
	return d
}

func init() {
	colourCmd("SetTemporaryXCoordinate", 0xe0, withDTR0, withDTR1)
	colourCmd("SetTemporaryYCoordinate", 0xe1, withDTR0, withDTR1)
	colourCmd("Activate", 0xe2, withConfig)
	colourCmd("SetTemporaryColourTemperature", 0xe7, withDTR0, withDTR1)
	colourCmd("SetTemporaryRGBDimLevel", 0xeb, withDTR0, withDTR1, withDTR2)
	colourCmd("SetTemporaryRGBWAFControl", 0xed)
	colourCmd("QueryGearFeatures", 0xf7, withQuery, withResp(response.TypeNumeric))
	colourCmd("QueryColourValue", 0xfa, withQuery, withResp(response.TypeNumeric))
}
