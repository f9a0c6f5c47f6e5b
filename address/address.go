// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address implements the DALI addressing sum type: gear and device
// destinations in their 16/24-bit wire encodings, per IEC 62386-102 Table 3
// and IEC 62386-103 Table 4.
package address

import (
	"fmt"

	"github.com/dali-iot/go-dali/frame"
)

// Address is the destination of a command. Each concrete variant knows how
// to place itself into a forward frame and how to be recognized from one.
// Addresses compare structurally via ==, since every variant is a
// comparable struct.
type Address interface {
	// ToByte returns the gear-style 16-bit destination byte (bits 7..1,
	// with bit 0 left clear for the caller to fill in).
	ToByte() (byte, error)
	fmt.Stringer
}

// rangeError is a single named error kind reused with formatted detail,
// in the same spirit as the method package's status code table.
type rangeError struct {
	what string
	val  int
}

func (e *rangeError) Error() string {
	return fmt.Sprintf("address: %s %d out of range", e.what, e.val)
}

// GearBroadcast addresses every gear on the bus.
type GearBroadcast struct{}

func (GearBroadcast) ToByte() (byte, error) { return 0xFE, nil }
func (GearBroadcast) String() string        { return "GearBroadcast" }

// GearBroadcastUnaddressed addresses every gear that has no short address.
type GearBroadcastUnaddressed struct{}

func (GearBroadcastUnaddressed) ToByte() (byte, error) { return 0xFC, nil }
func (GearBroadcastUnaddressed) String() string        { return "GearBroadcastUnaddressed" }

// GearGroup addresses gear group 0..15.
type GearGroup struct{ Group int }

// NewGearGroup validates 0 <= g <= 15.
func NewGearGroup(g int) (GearGroup, error) {
	if g < 0 || g > 15 {
		return GearGroup{}, &rangeError{"gear group", g}
	}
	return GearGroup{Group: g}, nil
}

func (a GearGroup) ToByte() (byte, error) { return 0x80 | byte(a.Group<<1), nil }
func (a GearGroup) String() string        { return fmt.Sprintf("GearGroup(%d)", a.Group) }

// GearShort addresses a single gear by its 6-bit short address 0..63.
type GearShort struct{ Short int }

// NewGearShort validates 0 <= a <= 63.
func NewGearShort(a int) (GearShort, error) {
	if a < 0 || a > 63 {
		return GearShort{}, &rangeError{"gear short address", a}
	}
	return GearShort{Short: a}, nil
}

func (a GearShort) ToByte() (byte, error) { return byte(a.Short << 1), nil }
func (a GearShort) String() string        { return fmt.Sprintf("GearShort(%d)", a.Short) }

// gearFromByte decodes the high-byte addressing pattern of a 16-bit gear
// frame (bits 7..1), per IEC 62386-102 Table 3. It never errors: any byte
// maps to exactly one pattern.
func gearFromByte(b byte) Address {
	switch {
	case b&0xFE == 0xFE:
		return GearBroadcast{}
	case b&0xFE == 0xFC:
		return GearBroadcastUnaddressed{}
	case b&0xF0 == 0x80:
		return GearGroup{Group: int((b >> 1) & 0x0F)}
	default:
		return GearShort{Short: int((b >> 1) & 0x3F)}
	}
}

// FromGearByte decodes a gear destination byte into an Address, per
// IEC 62386-102 Table 3.
func FromGearByte(b byte) Address { return gearFromByte(b) }

// --- 24-bit device/instance addressing, IEC 62386-103 Table 4 ---

// DeviceBroadcast addresses every control device on the bus.
type DeviceBroadcast struct{}

func (DeviceBroadcast) ToByte() (byte, error) { return 0xFE, nil }
func (DeviceBroadcast) String() string        { return "DeviceBroadcast" }

// DeviceBroadcastUnaddressed addresses every device with no short address.
type DeviceBroadcastUnaddressed struct{}

func (DeviceBroadcastUnaddressed) ToByte() (byte, error) { return 0xFC, nil }
func (DeviceBroadcastUnaddressed) String() string        { return "DeviceBroadcastUnaddressed" }

// DeviceGroup addresses device group 0..15.
type DeviceGroup struct{ Group int }

func NewDeviceGroup(g int) (DeviceGroup, error) {
	if g < 0 || g > 15 {
		return DeviceGroup{}, &rangeError{"device group", g}
	}
	return DeviceGroup{Group: g}, nil
}

func (a DeviceGroup) ToByte() (byte, error) { return 0x80 | byte(a.Group<<1), nil }
func (a DeviceGroup) String() string        { return fmt.Sprintf("DeviceGroup(%d)", a.Group) }

// DeviceShort addresses a single control device by its 6-bit short address.
type DeviceShort struct{ Short int }

func NewDeviceShort(a int) (DeviceShort, error) {
	if a < 0 || a > 63 {
		return DeviceShort{}, &rangeError{"device short address", a}
	}
	return DeviceShort{Short: a}, nil
}

func (a DeviceShort) ToByte() (byte, error) { return byte(a.Short << 1), nil }
func (a DeviceShort) String() string        { return fmt.Sprintf("DeviceShort(%d)", a.Short) }

// InstanceNumber addresses a single instance 0..31 on the selected device.
type InstanceNumber struct{ Number int }

func NewInstanceNumber(n int) (InstanceNumber, error) {
	if n < 0 || n > 31 {
		return InstanceNumber{}, &rangeError{"instance number", n}
	}
	return InstanceNumber{Number: n}, nil
}

func (a InstanceNumber) ToByte() (byte, error) { return byte(a.Number), nil }
func (a InstanceNumber) String() string        { return fmt.Sprintf("InstanceNumber(%d)", a.Number) }

// InstanceGroup addresses instance group 0..31.
type InstanceGroup struct{ Group int }

func NewInstanceGroup(g int) (InstanceGroup, error) {
	if g < 0 || g > 31 {
		return InstanceGroup{}, &rangeError{"instance group", g}
	}
	return InstanceGroup{Group: g}, nil
}

func (a InstanceGroup) ToByte() (byte, error) { return 0x80 | byte(a.Group), nil }
func (a InstanceGroup) String() string        { return fmt.Sprintf("InstanceGroup(%d)", a.Group) }

// InstanceType addresses every instance of a given instance type 0..255.
type InstanceType struct{ Type int }

func NewInstanceType(t int) (InstanceType, error) {
	if t < 0 || t > 255 {
		return InstanceType{}, &rangeError{"instance type", t}
	}
	return InstanceType{Type: t}, nil
}

func (a InstanceType) ToByte() (byte, error) { return 0xC0 | byte(a.Type>>2), nil }
func (a InstanceType) String() string        { return fmt.Sprintf("InstanceType(%d)", a.Type) }

// InstanceBroadcast addresses every instance on the selected device.
type InstanceBroadcast struct{}

func (InstanceBroadcast) ToByte() (byte, error) { return 0xFF, nil }
func (InstanceBroadcast) String() string        { return "InstanceBroadcast" }

// InstanceFeature addresses every instance with a given feature 0..255.
type InstanceFeature struct{ Feature int }

func NewInstanceFeature(f int) (InstanceFeature, error) {
	if f < 0 || f > 255 {
		return InstanceFeature{}, &rangeError{"instance feature", f}
	}
	return InstanceFeature{Feature: f}, nil
}

func (a InstanceFeature) ToByte() (byte, error) { return byte(a.Feature), nil }
func (a InstanceFeature) String() string        { return fmt.Sprintf("InstanceFeature(%d)", a.Feature) }

// AddToFrame24 places a device/instance destination into bits 23..8 of a
// 24-bit forward frame under construction, per IEC 62386-103 Table 4. The
// device address occupies bits 23..17 of the returned devByte; bit 16 (its
// LSB) is always set for a standard command. A device-addressed command
// carries instByte fixed to 0xFE; an instance-addressed command carries the
// instance selector in instByte instead.
func AddToFrame24(dev Address, inst Address) (devByte, instByte byte, err error) {
	devByte, err = dev.ToByte()
	if err != nil {
		return 0, 0, err
	}
	devByte |= 0x01
	if inst == nil {
		// Device-addressed standard command: instance byte fixed 0xFE.
		return devByte, 0xFE, nil
	}
	instByte, err = inst.ToByte()
	if err != nil {
		return 0, 0, err
	}
	return devByte, instByte, nil
}

// DeviceAddressFromByte decodes the device-address byte (bits 23..17) of a
// 24-bit frame, reusing the gear encoding rules shifted to the high byte.
func DeviceAddressFromByte(b byte) Address {
	switch {
	case b&0xFE == 0xFE:
		return DeviceBroadcast{}
	case b&0xFE == 0xFC:
		return DeviceBroadcastUnaddressed{}
	case b&0xF0 == 0x80:
		return DeviceGroup{Group: int((b >> 1) & 0x0F)}
	default:
		return DeviceShort{Short: int((b >> 1) & 0x3F)}
	}
}

// InstanceAddressFromByte decodes the instance-selector byte (bits 15..8)
// of an instance-addressed 24-bit frame.
func InstanceAddressFromByte(b byte) Address {
	switch {
	case b == 0xFF:
		return InstanceBroadcast{}
	case b&0xC0 == 0xC0:
		return InstanceType{Type: int(b&0x3F) << 2}
	case b&0x80 == 0x80:
		return InstanceGroup{Group: int(b & 0x1F)}
	case b <= 0x1F:
		return InstanceNumber{Number: int(b)}
	default:
		return InstanceFeature{Feature: int(b)}
	}
}

// FromFrame inspects f (16 or 24 bit) and returns the destination address
// it carries, dispatching to the appropriate decoder by width. For 24-bit
// frames it returns the device/group/short address only; the instance
// selector, if any, is decoded separately by InstanceAddressFromByte.
func FromFrame(f frame.Frame) (Address, error) {
	switch f.Width() {
	case 16:
		hi, err := f.Slice(15, 8)
		if err != nil {
			return nil, err
		}
		return gearFromByte(byte(hi)), nil
	case 24:
		hi, err := f.Slice(23, 16)
		if err != nil {
			return nil, err
		}
		return DeviceAddressFromByte(byte(hi)), nil
	default:
		return nil, fmt.Errorf("address: cannot decode address from a %d-bit frame", f.Width())
	}
}
