// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import "testing"

func TestNewRejectsOutOfRange(t *testing.T) {
	testCases := []struct {
		name    string
		width   int
		value   uint32
		wantErr bool
	}{
		{"fits", 8, 0xff, false},
		{"overflow", 8, 0x100, true},
		{"zero width", 0, 0, true},
		{"too wide", 33, 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.width, tc.value)
			if (err != nil) != tc.wantErr {
				t.Errorf("New(%d, %d) err = %v, wantErr %v", tc.width, tc.value, err, tc.wantErr)
			}
		})
	}
}

func TestBitRoundTrip(t *testing.T) {
	f := MustNew(16, 0)
	for i := 0; i < 16; i++ {
		g, err := f.WithBit(i, true)
		if err != nil {
			t.Fatalf("WithBit(%d): %v", i, err)
		}
		got, err := g.Bit(i)
		if err != nil || !got {
			t.Errorf("Bit(%d) after WithBit(%d, true) = %v, %v", i, i, got, err)
		}
	}
}

func TestSliceRoundTrip(t *testing.T) {
	f := MustNew(24, 0)
	g, err := f.WithSlice(23, 17, 0x55)
	if err != nil {
		t.Fatalf("WithSlice: %v", err)
	}
	got, err := g.Slice(23, 17)
	if err != nil || got != 0x55 {
		t.Errorf("Slice(23,17) = %v, %v; want 0x55", got, err)
	}
	// order-insensitive
	got2, err := g.Slice(17, 23)
	if err != nil || got2 != 0x55 {
		t.Errorf("Slice(17,23) = %v, %v; want 0x55", got2, err)
	}
}

func TestSliceWriteRejectsOverflow(t *testing.T) {
	f := MustNew(8, 0)
	if _, err := f.WithSlice(3, 0, 0x10); err == nil {
		t.Error("expected overflow error writing 0x10 into a 4-bit slice")
	}
}

func TestConcatWidthSum(t *testing.T) {
	a := MustNew(8, 0xAB)
	b := MustNew(8, 0xCD)
	c, err := Concat(a, b)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if c.Width() != 16 || c.AsInteger() != 0xABCD {
		t.Errorf("Concat(0xAB, 0xCD) = %v; want Frame(16, 0xABCD)", c)
	}
}

func TestAsByteSequence(t *testing.T) {
	f := MustNew(16, 0x02FE)
	got := f.AsByteSequence()
	want := []byte{0x02, 0xFE}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("AsByteSequence() = %v, want %v", got, want)
	}
}

func TestPackLenOverflow(t *testing.T) {
	f := MustNew(16, 0xFFFF)
	_, err := f.PackLen(1)
	if err == nil {
		t.Errorf("PackLen(1) on a 16-bit value should have errored, not truncated")
	}
}

func TestPackLenFits(t *testing.T) {
	f := MustNew(16, 0x02FE)
	got, err := f.PackLen(2)
	if err != nil {
		t.Fatalf("PackLen(2): %v", err)
	}
	want := []byte{0x02, 0xFE}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("PackLen(2) = %v, want %v", got, want)
	}
}

func TestEqualIgnoresErrorFlag(t *testing.T) {
	a := NewBackward(0xFF)
	b := NewBackwardError()
	if Equal(a.Frame, b.Frame) {
		t.Error("Equal should compare (width, value), and these differ in value")
	}
	c := NewBackward(0)
	d := NewBackwardError()
	if !Equal(c.Frame, d.Frame) {
		t.Error("Equal should treat structurally identical frames as equal regardless of error flag")
	}
}

func TestForwardBackwardDistinctTypes(t *testing.T) {
	fw := NewForward16(0xFE, 0x00)
	bw := NewBackward(0xFF)
	if fw.Width() != 16 || bw.Width() != 8 {
		t.Errorf("forward/backward widths = %d, %d", fw.Width(), bw.Width())
	}
}
