// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"testing"

	"github.com/dali-iot/go-dali/frame"
)

func TestGearShortRange(t *testing.T) {
	if _, err := NewGearShort(64); err == nil {
		t.Error("expected AddressRangeError for short address 64")
	}
	if _, err := NewGearShort(-1); err == nil {
		t.Error("expected AddressRangeError for short address -1")
	}
	a, err := NewGearShort(1)
	if err != nil {
		t.Fatalf("NewGearShort(1): %v", err)
	}
	b, err := a.ToByte()
	if err != nil || b != 0x02 {
		t.Errorf("GearShort(1).ToByte() = 0x%x, %v; want 0x02", b, err)
	}
}

func TestGearGroupRange(t *testing.T) {
	if _, err := NewGearGroup(16); err == nil {
		t.Error("expected AddressRangeError for group 16")
	}
	g, err := NewGearGroup(4)
	if err != nil {
		t.Fatalf("NewGearGroup(4): %v", err)
	}
	b, _ := g.ToByte()
	if b != 0x88 {
		t.Errorf("GearGroup(4).ToByte() = 0x%x; want 0x88", b)
	}
}

func TestGearBroadcastBytes(t *testing.T) {
	b, _ := GearBroadcast{}.ToByte()
	if b != 0xFE {
		t.Errorf("GearBroadcast.ToByte() = 0x%x; want 0xFE", b)
	}
	b, _ = GearBroadcastUnaddressed{}.ToByte()
	if b != 0xFC {
		t.Errorf("GearBroadcastUnaddressed.ToByte() = 0x%x; want 0xFC", b)
	}
}

func TestFromGearByteRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		addr Address
	}{
		{"broadcast", GearBroadcast{}},
		{"broadcast unaddressed", GearBroadcastUnaddressed{}},
		{"group", GearGroup{Group: 7}},
		{"short", GearShort{Short: 42}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.addr.ToByte()
			if err != nil {
				t.Fatalf("ToByte: %v", err)
			}
			got := FromGearByte(b)
			if got != tc.addr {
				t.Errorf("FromGearByte(ToByte(%v)) = %v, want %v", tc.addr, got, tc.addr)
			}
		})
	}
}

func TestFromFrame16(t *testing.T) {
	f := frame.NewForward16(0x02, 0xFE)
	a, err := FromFrame(f.Frame)
	if err != nil {
		t.Fatalf("FromFrame: %v", err)
	}
	if a != (GearShort{Short: 1}) {
		t.Errorf("FromFrame(0x02FE) = %v, want GearShort(1)", a)
	}
}

func TestFromFrame24DeviceAddress(t *testing.T) {
	f := frame.NewForward24(0x02, 0xFE, 0x01)
	a, err := FromFrame(f.Frame)
	if err != nil {
		t.Fatalf("FromFrame: %v", err)
	}
	if a != (DeviceShort{Short: 1}) {
		t.Errorf("FromFrame device byte 0x02 = %v, want DeviceShort(1)", a)
	}
}

func TestInstanceAddressFromByte(t *testing.T) {
	testCases := []struct {
		b    byte
		want Address
	}{
		{0xFF, InstanceBroadcast{}},
		{0x05, InstanceNumber{Number: 5}},
		{0x81, InstanceGroup{Group: 1}},
	}
	for _, tc := range testCases {
		if got := InstanceAddressFromByte(tc.b); got != tc.want {
			t.Errorf("InstanceAddressFromByte(0x%x) = %v, want %v", tc.b, got, tc.want)
		}
	}
}
