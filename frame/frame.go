// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame implements the DALI wire frame: an arbitrary-width bit
// container with indexed and sliced bit access, byte-sequence views, and
// fixed-length packing, per IEC 62386-102/103.
package frame

import "fmt"

// Frame is an immutable-by-convention bit container. Width is in bits and
// Value never exceeds 2^Width-1. Mutating methods return a new Frame.
type Frame struct {
	width int
	value uint32
	err   bool
}

// maxWidth bounds the frame to what a uint32 can hold; DALI only ever uses
// 8, 16 or 24 bit frames, so this is far above any real use.
const maxWidth = 32

// New constructs a Frame of the given width from an integer value. It
// rejects widths outside [1, 32] and values that don't fit the width.
func New(width int, value uint32) (Frame, error) {
	if width < 1 || width > maxWidth {
		return Frame{}, fmt.Errorf("frame: width %d out of range", width)
	}
	if width < maxWidth && value > (uint32(1)<<uint(width))-1 {
		return Frame{}, fmt.Errorf("frame: value 0x%x does not fit %d bits", value, width)
	}
	return Frame{width: width, value: value}, nil
}

// MustNew is New, panicking on error. Intended for package-level literals
// where the width/value pair is a compile-time constant.
func MustNew(width int, value uint32) Frame {
	f, err := New(width, value)
	if err != nil {
		panic(err)
	}
	return f
}

// FromBytes builds a big-endian Frame of len(b)*8 bits from a byte sequence.
func FromBytes(b []byte) (Frame, error) {
	if len(b) == 0 || len(b) > maxWidth/8 {
		return Frame{}, fmt.Errorf("frame: cannot build a frame from %d bytes", len(b))
	}
	var v uint32
	for _, x := range b {
		v = v<<8 | uint32(x)
	}
	return New(len(b)*8, v)
}

// Concat returns a new Frame whose width is the sum of f and g's widths and
// whose value places f in the high bits and g in the low bits.
func Concat(f, g Frame) (Frame, error) {
	w := f.width + g.width
	if w > maxWidth {
		return Frame{}, fmt.Errorf("frame: concatenation width %d exceeds %d", w, maxWidth)
	}
	return New(w, f.value<<uint(g.width)|g.value)
}

// Width returns the frame's width in bits.
func (f Frame) Width() int { return f.width }

// AsInteger returns the frame's value as an unsigned integer.
func (f Frame) AsInteger() uint32 { return f.value }

// Error reports whether this frame was received with a bus-collision
// framing error. Only ever true for BackwardFrame.
func (f Frame) Error() bool { return f.err }

// Bit reads bit i (0-based, LSB first).
func (f Frame) Bit(i int) (bool, error) {
	if i < 0 || i >= f.width {
		return false, fmt.Errorf("frame: bit index %d out of range for width %d", i, f.width)
	}
	return (f.value>>uint(i))&1 == 1, nil
}

// WithBit returns a copy of f with bit i set to v.
func (f Frame) WithBit(i int, v bool) (Frame, error) {
	if i < 0 || i >= f.width {
		return Frame{}, fmt.Errorf("frame: bit index %d out of range for width %d", i, f.width)
	}
	nv := f.value
	if v {
		nv |= 1 << uint(i)
	} else {
		nv &^= 1 << uint(i)
	}
	return Frame{width: f.width, value: nv, err: f.err}, nil
}

// Slice reads bits hi..lo inclusive (order-insensitive) as an unsigned
// integer of width hi-lo+1.
func (f Frame) Slice(hi, lo int) (uint32, error) {
	if hi < lo {
		hi, lo = lo, hi
	}
	if lo < 0 || hi >= f.width {
		return 0, fmt.Errorf("frame: slice [%d:%d] out of range for width %d", hi, lo, f.width)
	}
	width := hi - lo + 1
	mask := uint32(1)<<uint(width) - 1
	return (f.value >> uint(lo)) & mask, nil
}

// WithSlice returns a copy of f with bits hi..lo set to val. val must fit
// within the slice's width.
func (f Frame) WithSlice(hi, lo int, val uint32) (Frame, error) {
	if hi < lo {
		hi, lo = lo, hi
	}
	if lo < 0 || hi >= f.width {
		return Frame{}, fmt.Errorf("frame: slice [%d:%d] out of range for width %d", hi, lo, f.width)
	}
	width := hi - lo + 1
	mask := uint32(1)<<uint(width) - 1
	if val > mask {
		return Frame{}, fmt.Errorf("frame: value 0x%x does not fit slice width %d", val, width)
	}
	nv := f.value &^ (mask << uint(lo))
	nv |= (val & mask) << uint(lo)
	return Frame{width: f.width, value: nv, err: f.err}, nil
}

// AsByteSequence returns the frame as big-endian bytes, left-padded with
// zero bits to the next byte boundary.
func (f Frame) AsByteSequence() []byte {
	n := (f.width + 7) / 8
	out, err := f.PackLen(n)
	if err != nil {
		panic(err) // n is exactly sized for f.width, so this can't happen
	}
	return out
}

// PackLen packs the frame into exactly n big-endian bytes, or errors if the
// frame's value does not fit in n bytes.
func (f Frame) PackLen(n int) ([]byte, error) {
	if n < 0 || (n < 4 && f.value >= uint32(1)<<uint(8*n)) {
		return nil, fmt.Errorf("frame: value 0x%x does not fit %d bytes", f.value, n)
	}
	out := make([]byte, n)
	v := f.value
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out, nil
}

// Equal compares frames structurally by (width, value); the error flag is
// not part of equality.
func Equal(a, b Frame) bool {
	return a.width == b.width && a.value == b.value
}

func (f Frame) String() string {
	return fmt.Sprintf("Frame(%d, 0x%0*x)", f.width, (f.width+3)/4, f.value)
}

// ForwardFrame is a frame sent from the host to the bus. The distinct type
// keeps transports from confusing direction with a response.
type ForwardFrame struct {
	Frame
}

// NewForward16 builds a 16-bit forward frame from an address byte and a
// data byte.
func NewForward16(addrByte, dataByte byte) ForwardFrame {
	return ForwardFrame{MustNew(16, uint32(addrByte)<<8|uint32(dataByte))}
}

// NewForward24 builds a 24-bit forward frame from three bytes.
func NewForward24(b0, b1, b2 byte) ForwardFrame {
	return ForwardFrame{MustNew(24, uint32(b0)<<16|uint32(b1)<<8|uint32(b2))}
}

// BackwardFrame is a single 8-bit frame sent from a gear or device in
// response to a query. Error is set only by a bus-collision framing error.
type BackwardFrame struct {
	Frame
	Present bool
}

// NoBackwardFrame represents the absence of a backward frame within the
// response window.
func NoBackwardFrame() BackwardFrame {
	return BackwardFrame{Present: false}
}

// NewBackward builds a present backward frame carrying value v.
func NewBackward(v byte) BackwardFrame {
	return BackwardFrame{Frame: MustNew(8, uint32(v)), Present: true}
}

// NewBackwardError builds a backward frame flagged with a bus-collision
// framing error; its value is not meaningful.
func NewBackwardError() BackwardFrame {
	return BackwardFrame{Frame: Frame{width: 8, value: 0, err: true}, Present: true}
}
