// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"fmt"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/frame"
)

// Encode returns the ForwardFrame c's Def and field values would produce.
func Encode(c Command) (frame.ForwardFrame, error) {
	switch c.Def.Kind {
	case KindDAPC:
		addrByte, err := c.Dest.ToByte()
		if err != nil {
			return frame.ForwardFrame{}, err
		}
		if c.Param < 0 || c.Param > 255 {
			return frame.ForwardFrame{}, fmt.Errorf("command: DAPC power %d out of range", c.Param)
		}
		return frame.NewForward16(addrByte, byte(c.Param)), nil

	case KindGear:
		addrByte, err := c.Dest.ToByte()
		if err != nil {
			return frame.ForwardFrame{}, err
		}
		data := c.Def.Opcode
		if c.Def.HasParam {
			if c.Param < 0 || c.Param > 15 {
				return frame.ForwardFrame{}, fmt.Errorf("command: %s parameter %d out of range 0..15", c.Def.Name, c.Param)
			}
			data |= c.Param & 0x0F
		}
		return frame.NewForward16(addrByte|0x01, byte(data)), nil

	case KindGearSpecial:
		data := 0
		if c.Def.HasParam {
			if c.Param < 0 || c.Param > 255 {
				return frame.ForwardFrame{}, fmt.Errorf("command: %s parameter %d out of range 0..255", c.Def.Name, c.Param)
			}
			data = c.Param
		}
		return frame.NewForward16(byte(c.Def.Opcode), byte(data)), nil

	case KindDeviceStandard:
		devByte, instByte, err := address.AddToFrame24(c.Dest, nil)
		if err != nil {
			return frame.ForwardFrame{}, err
		}
		return frame.NewForward24(devByte, instByte, byte(c.Def.Opcode)), nil

	case KindInstanceStandard:
		devByte, instByte, err := address.AddToFrame24(c.Dest, c.Instance)
		if err != nil {
			return frame.ForwardFrame{}, err
		}
		return frame.NewForward24(devByte, instByte, byte(c.Def.Opcode)), nil

	case KindSpecialDeviceZero:
		return frame.NewForward24(byte(c.Def.Opcode), byte(c.Def.Fixed2), 0x00), nil

	case KindSpecialDeviceOne:
		if c.Param < 0 || c.Param > 255 {
			return frame.ForwardFrame{}, fmt.Errorf("command: %s parameter %d out of range 0..255", c.Def.Name, c.Param)
		}
		return frame.NewForward24(byte(c.Def.Opcode), byte(c.Def.Fixed2), byte(c.Param)), nil

	case KindSpecialDeviceTwo:
		if c.Param < 0 || c.Param > 255 || c.Param2 < 0 || c.Param2 > 255 {
			return frame.ForwardFrame{}, fmt.Errorf("command: %s parameters out of range 0..255", c.Def.Name)
		}
		return frame.NewForward24(byte(c.Def.Opcode), byte(c.Param), byte(c.Param2)), nil
	}
	return frame.ForwardFrame{}, fmt.Errorf("command: unhandled Def kind %d", c.Def.Kind)
}

// Decode inspects f and resolves it to a Command, per §4.4. deviceType
// selects the part-2xx extension table consulted before falling back to
// the generic (device type 0) table; pass 0 when unknown. Decoding is
// total: an unrecognized 16 or 24-bit frame still returns a Command, with
// Def pointing at the package's UnknownGearCommand/UnknownDeviceCommand
// sentinel and Raw holding the undecoded frame.
func Decode(f frame.ForwardFrame, deviceType int) (Command, error) {
	switch f.Width() {
	case 16:
		return decodeGear(f, deviceType)
	case 24:
		return decodeDevice(f, deviceType)
	default:
		return Command{}, fmt.Errorf("command: cannot decode a %d-bit frame", f.Width())
	}
}

func decodeGear(f frame.ForwardFrame, deviceType int) (Command, error) {
	hi, err := f.Slice(15, 8)
	if err != nil {
		return Command{}, err
	}
	lo, err := f.Slice(7, 0)
	if err != nil {
		return Command{}, err
	}
	addrByte := byte(hi)

	if addrByte&0x01 == 0 {
		dest := address.FromGearByte(addrByte)
		return NewArcPower(dest, int(lo)), nil
	}

	if d, ok := gearSpecial[int(addrByte)]; ok {
		param := 0
		if d.HasParam {
			param = int(lo)
		}
		return Command{Def: d, Param: param}, nil
	}

	def, param, ok := lookupGear(deviceType, int(lo))
	if !ok {
		return Command{Def: unknownGearDef, Raw: f}, nil
	}
	dest := address.FromGearByte(addrByte)
	return Command{Def: def, Dest: dest, Param: param}, nil
}

func decodeDevice(f frame.ForwardFrame, deviceType int) (Command, error) {
	hi, err := f.Slice(23, 16)
	if err != nil {
		return Command{}, err
	}
	mid, err := f.Slice(15, 8)
	if err != nil {
		return Command{}, err
	}
	lo, err := f.Slice(7, 0)
	if err != nil {
		return Command{}, err
	}
	addrByte, instByte, opByte := byte(hi), byte(mid), byte(lo)

	if t, ok := specialDeviceZeroOne[int(addrByte)]; ok {
		if d, ok := t[int(instByte)]; ok {
			if d.Kind == KindSpecialDeviceOne {
				return Command{Def: d, Param: int(opByte)}, nil
			}
			return Command{Def: d}, nil
		}
	}
	if d, ok := specialDeviceTwo[int(addrByte)]; ok {
		return Command{Def: d, Param: int(instByte), Param2: int(opByte)}, nil
	}

	if instByte == 0xFE {
		def, ok := lookupDeviceStandard(deviceType, int(opByte))
		if !ok {
			return Command{Def: unknownDeviceDef, Raw: f}, nil
		}
		return Command{Def: def, Dest: address.DeviceAddressFromByte(addrByte)}, nil
	}

	def, ok := lookupInstanceStandard(deviceType, int(opByte))
	if !ok {
		return Command{Def: unknownDeviceDef, Raw: f}, nil
	}
	return Command{
		Def:      def,
		Dest:     address.DeviceAddressFromByte(addrByte),
		Instance: address.InstanceAddressFromByte(instByte),
	}, nil
}
