// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/frame"
)

func mustGearShort(t *testing.T, a int) address.Address {
	t.Helper()
	g, err := address.NewGearShort(a)
	if err != nil {
		t.Fatalf("NewGearShort(%d): %v", a, err)
	}
	return g
}

func TestDAPCRoundTrip(t *testing.T) {
	dest := mustGearShort(t, 5)
	c := NewArcPower(dest, 200)
	f, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Def.Kind != KindDAPC || got.Param != 200 || got.Dest != dest {
		t.Errorf("decode(encode(DAPC)) = %+v, want power=200 dest=%v", got, dest)
	}
}

func TestGearStandardRoundTrip(t *testing.T) {
	dest := mustGearShort(t, 1)
	for _, name := range []string{"Off", "RecallMaxLevel", "Reset"} {
		def := findGearDefByName(t, name)
		c := Command{Def: def, Dest: dest}
		f, err := Encode(c)
		if err != nil {
			t.Fatalf("Encode(%s): %v", name, err)
		}
		got, err := Decode(f, 0)
		if err != nil {
			t.Fatalf("Decode(%s): %v", name, err)
		}
		if got.Def != def || got.Dest != dest {
			t.Errorf("decode(encode(%s)) = %+v, want Def=%s Dest=%v", name, got, name, dest)
		}
	}
}

func TestGearParameterizedRoundTrip(t *testing.T) {
	dest := mustGearShort(t, 2)
	def := findGearDefByName(t, "GoToScene")
	c := Command{Def: def, Dest: dest, Param: 7}
	f, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Def != def || got.Param != 7 || got.Dest != dest {
		t.Errorf("decode(encode(GoToScene(7))) = %+v", got)
	}
}

func TestGearSpecialRoundTrip(t *testing.T) {
	def := findGearSpecialDefByName(t, "Terminate")
	f, err := Encode(Command{Def: def})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Def != def {
		t.Errorf("decode(encode(Terminate)) = %+v", got)
	}
}

func TestGearSpecialWithParamRoundTrip(t *testing.T) {
	def := findGearSpecialDefByName(t, "SetDTR0")
	f, err := Encode(Command{Def: def, Param: 0x42})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Def != def || got.Param != 0x42 {
		t.Errorf("decode(encode(SetDTR0(0x42))) = %+v", got)
	}
}

func TestDeviceStandardRoundTrip(t *testing.T) {
	dest, err := address.NewDeviceShort(3)
	if err != nil {
		t.Fatalf("NewDeviceShort: %v", err)
	}
	def := findDeviceDefByName(t, "QueryDeviceStatus")
	f, err := Encode(Command{Def: def, Dest: dest})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Def != def || got.Dest != dest {
		t.Errorf("decode(encode(QueryDeviceStatus)) = %+v", got)
	}
}

func TestInstanceStandardRoundTrip(t *testing.T) {
	dest, err := address.NewDeviceShort(4)
	if err != nil {
		t.Fatalf("NewDeviceShort: %v", err)
	}
	inst, err := address.NewInstanceNumber(2)
	if err != nil {
		t.Fatalf("NewInstanceNumber: %v", err)
	}
	def := findInstanceDefByName(t, "QueryInstanceType")
	f, err := Encode(Command{Def: def, Dest: dest, Instance: inst})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Def != def || got.Dest != dest || got.Instance != inst {
		t.Errorf("decode(encode(QueryInstanceType)) = %+v", got)
	}
}

func TestSpecialDeviceZeroRoundTrip(t *testing.T) {
	def := specialDeviceZeroOne[0xc1][0x00] // Terminate
	f, err := Encode(Command{Def: def})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Def != def {
		t.Errorf("decode(encode(special Terminate)) = %+v", got)
	}
}

func TestSpecialDeviceOneRoundTrip(t *testing.T) {
	def := specialDeviceZeroOne[0xc1][0x08] // ProgramShortAddress
	f, err := Encode(Command{Def: def, Param: 0x0B})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Def != def || got.Param != 0x0B {
		t.Errorf("decode(encode(ProgramShortAddress(0x0B))) = %+v", got)
	}
}

func TestSpecialDeviceTwoRoundTrip(t *testing.T) {
	def := specialDeviceTwo[0xc7] // DTR1DTR0
	f, err := Encode(Command{Def: def, Param: 0x11, Param2: 0x22})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Def != def || got.Param != 0x11 || got.Param2 != 0x22 {
		t.Errorf("decode(encode(DTR1DTR0(0x11,0x22))) = %+v", got)
	}
}

func TestUnknownGearCommand(t *testing.T) {
	dest := mustGearShort(t, 1)
	addrByte, _ := dest.ToByte()
	f := frame.NewForward16(addrByte|0x01, 0xD5) // 0xD5 is unassigned in Table 15
	got, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.IsUnknown() {
		t.Errorf("expected unknown gear command, got %+v", got)
	}
}

func TestDeviceTypeFallback(t *testing.T) {
	// DT8's Activate (0xE2) is only registered under device type 8; a
	// decoder primed for device type 8 must resolve it, one primed for 0
	// must fall through to unknown (no generic Def shares that opcode).
	dest := mustGearShort(t, 1)
	addrByte, _ := dest.ToByte()
	f := frame.NewForward16(addrByte|0x01, 0xE2)

	got, err := Decode(f, DeviceTypeColour)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.IsUnknown() || got.Def.Name != "Activate" {
		t.Errorf("Decode with device type 8 = %+v, want Activate", got)
	}

	got0, err := Decode(f, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got0.IsUnknown() {
		t.Errorf("Decode with device type 0 = %+v, want unknown", got0)
	}
}

func findGearDefByName(t *testing.T, name string) *Def {
	t.Helper()
	for _, table := range gearStandard {
		for _, d := range table {
			if d.Name == name {
				return d
			}
		}
	}
	t.Fatalf("no gear Def named %q", name)
	return nil
}

func findGearSpecialDefByName(t *testing.T, name string) *Def {
	t.Helper()
	for _, d := range gearSpecial {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("no gear special Def named %q", name)
	return nil
}

func findDeviceDefByName(t *testing.T, name string) *Def {
	t.Helper()
	for _, table := range deviceStandard {
		for _, d := range table {
			if d.Name == name {
				return d
			}
		}
	}
	t.Fatalf("no device Def named %q", name)
	return nil
}

func findInstanceDefByName(t *testing.T, name string) *Def {
	t.Helper()
	for _, table := range instanceStandard {
		for _, d := range table {
			if d.Name == name {
				return d
			}
		}
	}
	t.Fatalf("no instance Def named %q", name)
	return nil
}
