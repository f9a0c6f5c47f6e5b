// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package response decodes a backward frame into a typed Response, per the
// command's declared response type. Modeled as a closed sum type rather
// than duck-typed responses.
package response

import (
	"fmt"

	"github.com/dali-iot/go-dali/frame"
)

// Response is the closed sum type produced by parsing a backward frame
// against a command's declared Type.
type Response interface {
	// IsFramingError reports whether the backward frame carried a
	// bus-collision framing error.
	IsFramingError() bool
	fmt.Stringer
}

// Type selects which parser produces the typed Response for a query
// command's backward frame.
type Type int

const (
	// TypeNone is used by commands that never expect a response.
	TypeNone Type = iota
	TypeNumeric
	TypeNumericMask
	TypeYesNo
	TypeBitmap
	TypeEnum
)

// Parse decodes bf against t. names is used only by TypeBitmap (the
// per-bit flag names, index 0 = bit 0) and TypeEnum (the enumerator's
// name lookup by value); it is ignored otherwise.
func Parse(t Type, bf frame.BackwardFrame, names []string) (Response, error) {
	switch t {
	case TypeNone:
		return NoResponse{}, nil
	case TypeNumeric:
		return parseNumeric(bf, false), nil
	case TypeNumericMask:
		return parseNumeric(bf, true), nil
	case TypeYesNo:
		return parseYesNo(bf), nil
	case TypeBitmap:
		return parseBitmap(bf, names), nil
	case TypeEnum:
		return parseEnum(bf, names), nil
	default:
		return nil, fmt.Errorf("response: unknown response type %d", t)
	}
}

// NoResponse represents a command with no declared response type.
type NoResponse struct{}

func (NoResponse) IsFramingError() bool { return false }
func (NoResponse) String() string       { return "NoResponse" }

// NumericResponse carries a 0..255 value, or no value when the backward
// frame was absent. If Mask is true, a value of 255 means "unknown".
type NumericResponse struct {
	Value   *uint8
	Mask    bool
	Framing bool
}

func parseNumeric(bf frame.BackwardFrame, mask bool) NumericResponse {
	if bf.Error() {
		return NumericResponse{Mask: mask, Framing: true}
	}
	if !bf.Present {
		return NumericResponse{Mask: mask}
	}
	v := uint8(bf.AsInteger())
	return NumericResponse{Value: &v, Mask: mask}
}

func (r NumericResponse) IsFramingError() bool { return r.Framing }

// IsUnknown reports whether a Mask-variant response returned the 0xFF
// "unknown" sentinel.
func (r NumericResponse) IsUnknown() bool {
	return r.Mask && r.Value != nil && *r.Value == 0xFF
}

func (r NumericResponse) String() string {
	if r.Framing {
		return "NumericResponse(framing error: multiple devices answered)"
	}
	if r.Value == nil {
		return "NumericResponse(none)"
	}
	if r.IsUnknown() {
		return "NumericResponse(unknown)"
	}
	return fmt.Sprintf("NumericResponse(%d)", *r.Value)
}

// YesNoResponse is Yes for the presence of any backward frame, including a
// framing error; No for its absence.
type YesNoResponse struct {
	Yes     bool
	Framing bool
}

func parseYesNo(bf frame.BackwardFrame) YesNoResponse {
	if bf.Error() {
		return YesNoResponse{Yes: true, Framing: true}
	}
	return YesNoResponse{Yes: bf.Present}
}

func (r YesNoResponse) IsFramingError() bool { return r.Framing }
func (r YesNoResponse) String() string {
	if r.Yes {
		return "YesNoResponse(Yes)"
	}
	return "YesNoResponse(No)"
}

// BitmapResponse exposes 8 named bit flags plus an aggregate list of the
// set-bit names, per a command-class-level name list indexed by bit
// position (index 0 = bit 0).
type BitmapResponse struct {
	Names   []string
	Bits    [8]bool
	Framing bool
}

func parseBitmap(bf frame.BackwardFrame, names []string) BitmapResponse {
	r := BitmapResponse{Names: names}
	if bf.Error() {
		r.Framing = true
		return r
	}
	if !bf.Present {
		return r
	}
	v := uint8(bf.AsInteger())
	for i := 0; i < 8; i++ {
		r.Bits[i] = v&(1<<uint(i)) != 0
	}
	return r
}

func (r BitmapResponse) IsFramingError() bool { return r.Framing }

// Status returns the names of every set bit, in bit order.
func (r BitmapResponse) Status() []string {
	var out []string
	for i := 0; i < 8 && i < len(r.Names); i++ {
		if r.Bits[i] {
			out = append(out, r.Names[i])
		}
	}
	return out
}

func (r BitmapResponse) String() string {
	if r.Framing {
		return "BitmapResponse(framing error)"
	}
	return fmt.Sprintf("BitmapResponse(%v)", r.Status())
}

// EnumResponse resolves a backward-frame byte to one of a bound
// enumeration's values. An unknown integer resolves to Unknown=true.
type EnumResponse struct {
	Value   int
	Name    string
	Unknown bool
	Framing bool
}

const enumErrorSentinel = "(error)"

func parseEnum(bf frame.BackwardFrame, names []string) EnumResponse {
	if bf.Error() {
		return EnumResponse{Framing: true, Unknown: true, Name: enumErrorSentinel}
	}
	if !bf.Present {
		return EnumResponse{Unknown: true, Name: enumErrorSentinel}
	}
	v := int(bf.AsInteger())
	if v < 0 || v >= len(names) || names[v] == "" {
		return EnumResponse{Value: v, Unknown: true, Name: enumErrorSentinel}
	}
	return EnumResponse{Value: v, Name: names[v]}
}

func (r EnumResponse) IsFramingError() bool { return r.Framing }
func (r EnumResponse) String() string       { return fmt.Sprintf("EnumResponse(%s)", r.Name) }
