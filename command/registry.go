// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

// The registry is six flat tables, one per addressing shape, each keyed
// the way the wire actually distinguishes commands: gear standard and
// device/instance standard commands by (device type, opcode byte); gear
// special commands by their fixed high byte; special device commands by
// (addr byte, instance byte) with the one/two-param forms leaving the
// instance and/or opcode byte free.

var (
	gearStandard = map[int]map[int]*Def{}
	gearSpecial  = map[int]*Def{}

	deviceStandard   = map[int]map[int]*Def{}
	instanceStandard = map[int]map[int]*Def{}

	// specialDeviceZeroOne is keyed by addr byte, then instance byte, for
	// the zero-param and one-param special device command forms (both
	// fix the instance byte; one-param leaves the trailing opcode byte
	// free for the parameter).
	specialDeviceZeroOne = map[int]map[int]*Def{}
	// specialDeviceTwo is keyed by addr byte alone: both the instance and
	// opcode bytes are free parameters.
	specialDeviceTwo = map[int]*Def{}
)

var (
	unknownGearDef = &Def{Name: "UnknownGearCommand", Kind: KindGear, FrameWidth: 16}
	unknownDeviceDef = &Def{Name: "UnknownDeviceCommand", Kind: KindDeviceStandard, FrameWidth: 24}
)

// registerGear adds d to the standard 16-bit gear table. HasParam defs
// register once under their base opcode; decode masks the low nibble.
func registerGear(deviceType int, d *Def) {
	t, ok := gearStandard[deviceType]
	if !ok {
		t = map[int]*Def{}
		gearStandard[deviceType] = t
	}
	t[d.Opcode] = d
}

func registerGearSpecial(d *Def) {
	gearSpecial[d.Opcode] = d
}

func registerDeviceStandard(deviceType int, d *Def) {
	t, ok := deviceStandard[deviceType]
	if !ok {
		t = map[int]*Def{}
		deviceStandard[deviceType] = t
	}
	t[d.Opcode] = d
}

func registerInstanceStandard(deviceType int, d *Def) {
	t, ok := instanceStandard[deviceType]
	if !ok {
		t = map[int]*Def{}
		instanceStandard[deviceType] = t
	}
	t[d.Opcode] = d
}

func registerSpecialDeviceZeroOrOne(d *Def) {
	t, ok := specialDeviceZeroOne[d.Opcode]
	if !ok {
		t = map[int]*Def{}
		specialDeviceZeroOne[d.Opcode] = t
	}
	t[d.Fixed2] = d
}

func registerSpecialDeviceTwo(d *Def) {
	specialDeviceTwo[d.Opcode] = d
}

// lookupGear resolves opcode against deviceType, falling back to the
// generic (device type 0) table per §4.4 step 1(b), and masking to the
// family base for HasParam opcodes.
func lookupGear(deviceType, opcode int) (*Def, int, bool) {
	for _, dt := range []int{deviceType, 0} {
		t, ok := gearStandard[dt]
		if !ok {
			continue
		}
		if d, ok := t[opcode]; ok {
			return d, 0, true
		}
		base := opcode & 0xF0
		if d, ok := t[base]; ok && d.HasParam {
			return d, opcode & 0x0F, true
		}
	}
	return nil, 0, false
}

func lookupDeviceStandard(deviceType, opcode int) (*Def, bool) {
	for _, dt := range []int{deviceType, 0} {
		t, ok := deviceStandard[dt]
		if !ok {
			continue
		}
		if d, ok := t[opcode]; ok {
			return d, true
		}
	}
	return nil, false
}

func lookupInstanceStandard(deviceType, opcode int) (*Def, bool) {
	for _, dt := range []int{deviceType, 0} {
		t, ok := instanceStandard[dt]
		if !ok {
			continue
		}
		if d, ok := t[opcode]; ok {
			return d, true
		}
	}
	return nil, false
}

// ByName searches every registry table for a Def with the given name,
// returning it and true if found. Callers building sequences of named
// commands (the sequence package) use this instead of one exported
// constructor per command: the tables already carry one entry per name, a
// second parallel name->Def index would just be this function inlined.
func ByName(name string) (*Def, bool) {
	for _, t := range gearStandard {
		for _, d := range t {
			if d.Name == name {
				return d, true
			}
		}
	}
	for _, d := range gearSpecial {
		if d.Name == name {
			return d, true
		}
	}
	for _, t := range deviceStandard {
		for _, d := range t {
			if d.Name == name {
				return d, true
			}
		}
	}
	for _, t := range instanceStandard {
		for _, d := range t {
			if d.Name == name {
				return d, true
			}
		}
	}
	for _, t := range specialDeviceZeroOne {
		for _, d := range t {
			if d.Name == name {
				return d, true
			}
		}
	}
	for _, d := range specialDeviceTwo {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// MustByName is ByName for package-init-time use (building the canonical
// sequences' fixed command set), panicking on an unregistered name since
// that indicates a programming error, not a runtime condition.
func MustByName(name string) *Def {
	d, ok := ByName(name)
	if !ok {
		panic("command: no registered Def named " + name)
	}
	return d
}
