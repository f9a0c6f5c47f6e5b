// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import "github.com/dali-iot/go-dali/response"

// specialDeviceZeroOrOne registers a Def fixed at (addr, instance); kind
// is KindSpecialDeviceZero when the opcode byte is also fixed to 0x00, or
// KindSpecialDeviceOne when it is left free as a parameter.
func specialDeviceZeroOrOne(name string, addr, instance int, free bool, opts ...func(*Def)) *Def {
	k := KindSpecialDeviceZero
	if free {
		k = KindSpecialDeviceOne
	}
	d := &Def{Name: name, Kind: k, FrameWidth: 24, Opcode: addr, Fixed2: instance, NoDest: true}
	for _, o := range opts {
		o(d)
	}
	registerSpecialDeviceZeroOrOne(d)
	return d
}

func specialDeviceTwoParam(name string, addr int, opts ...func(*Def)) *Def {
	d := &Def{Name: name, Kind: KindSpecialDeviceTwo, FrameWidth: 24, Opcode: addr, NoDest: true}
	for _, o := range opts {
		o(d)
	}
	registerSpecialDeviceTwo(d)
	return d
}

func init() {
	// 24-bit special device commands, IEC 62386-103 Table 22. All at addr
	// 0xC1 except the three raw-DTR-pair transfers.
	specialDeviceZeroOrOne("Terminate", 0xc1, 0x00, false)
	specialDeviceZeroOrOne("Initialise", 0xc1, 0x01, true, withConfig)
	specialDeviceZeroOrOne("Randomise", 0xc1, 0x02, false, withConfig)
	specialDeviceZeroOrOne("Compare", 0xc1, 0x03, false, withQuery, withResp(response.TypeYesNo))
	specialDeviceZeroOrOne("Withdraw", 0xc1, 0x04, false)
	specialDeviceZeroOrOne("SearchAddrH", 0xc1, 0x05, true)
	specialDeviceZeroOrOne("SearchAddrM", 0xc1, 0x06, true)
	specialDeviceZeroOrOne("SearchAddrL", 0xc1, 0x07, true)
	specialDeviceZeroOrOne("ProgramShortAddress", 0xc1, 0x08, true)
	specialDeviceZeroOrOne("VerifyShortAddress", 0xc1, 0x09, true, withQuery, withResp(response.TypeYesNo))
	specialDeviceZeroOrOne("QueryShortAddress", 0xc1, 0x0a, false, withQuery, withResp(response.TypeNumeric))
	specialDeviceZeroOrOne("DeviceWriteMemoryLocation", 0xc1, 0x20, true, withQuery, withResp(response.TypeNumeric), withDTR0, withDTR1)
	specialDeviceZeroOrOne("DeviceWriteMemoryLocationNoReply", 0xc1, 0x21, true, withDTR0, withDTR1)
	specialDeviceZeroOrOne("DTR0", 0xc1, 0x30, true, withDTR0)
	specialDeviceZeroOrOne("DTR1", 0xc1, 0x31, true, withDTR1)
	specialDeviceZeroOrOne("DTR2", 0xc1, 0x32, true, withDTR2)
	specialDeviceZeroOrOne("SendTestframe", 0xc1, 0x33, true, withDTR0, withDTR1, withDTR2)

	specialDeviceTwoParam("DirectWriteMemory", 0xc5, withQuery, withResp(response.TypeNumeric), withDTR0, withDTR1)
	specialDeviceTwoParam("DTR1DTR0", 0xc7, withDTR0, withDTR1)
	specialDeviceTwoParam("DTR2DTR1", 0xc9, withDTR1, withDTR2)
}
