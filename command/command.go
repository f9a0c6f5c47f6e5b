// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package command implements the DALI command registry and frame codec: a
// data-driven table of command definitions keyed by (device type, opcode)
// in the manner of the method package's status code table, plus the
// Frame<->Command encoder/decoder built on top of it.
package command

import (
	"fmt"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/frame"
	"github.com/dali-iot/go-dali/response"
)

// Kind discriminates the wire shape a Def encodes/decodes, since the
// registry holds every command family in one flat table rather than one
// Go type per DALI command.
type Kind int

const (
	// KindDAPC is the 16-bit Direct Arc Power Control pseudo-command; its
	// single Def (dapcDef, built by NewArcPower) sits in no registry table
	// and is handled as a first-class case by the codec.
	KindDAPC Kind = iota
	// KindGear is a standard 16-bit gear command, optionally carrying a
	// 0..15 parameter in the opcode's low nibble (HasParam).
	KindGear
	// KindGearSpecial is a 16-bit special command: the address byte is a
	// fixed high-byte pattern in 0xA1..0xCD, not a destination.
	KindGearSpecial
	// KindDeviceStandard is a 24-bit standard command addressed to a
	// control device as a whole (instance byte fixed to 0xFE).
	KindDeviceStandard
	// KindInstanceStandard is a 24-bit standard command addressed to a
	// specific instance selector.
	KindInstanceStandard
	// KindSpecialDeviceZero is a 24-bit special device command with a
	// fixed (addr, instance, opcode) triple and no parameter.
	KindSpecialDeviceZero
	// KindSpecialDeviceOne is a 24-bit special device command with a
	// fixed (addr, instance) pair and a free opcode byte parameter.
	KindSpecialDeviceOne
	// KindSpecialDeviceTwo is a 24-bit special device command with a
	// fixed addr byte and two free parameter bytes (instance, opcode).
	KindSpecialDeviceTwo
)

// Def is a command definition: the compile-time descriptors of §3's
// Command entity, shared by every Command built from it. Defs are created
// once at package init time and referenced by pointer from every Command
// value, never copied.
type Def struct {
	Name       string
	Kind       Kind
	FrameWidth int // 16 or 24
	DeviceType int // 0 for part-102/103 generic; >0 for part-2xx extensions

	Opcode int // primary opcode/addr byte identifying this Def in its table
	Fixed2 int // secondary fixed byte (special device commands' instance byte)

	IsConfig  bool // requires send-twice within 100ms, same flag as SendTwice historically but kept distinct for clarity
	IsQuery   bool
	SendTwice bool
	UsesDTR0  bool
	UsesDTR1  bool
	UsesDTR2  bool
	HasParam  bool // KindGear: opcode is a 16-entry family, low nibble 0..15 is the parameter; KindGearSpecial: the data byte is a free 0..255 parameter
	NoDest    bool // command carries no destination address (pure special commands)

	ResponseType  response.Type
	ResponseNames []string // bitmap bit names or enum names, index = value/bit position
}

// Command is a single instantiated command: a Def plus the runtime values
// that vary per send (destination, instance, parameters).
type Command struct {
	Def      *Def
	Dest     address.Address // nil for commands with NoDest
	Instance address.Address // non-nil only for KindInstanceStandard
	Param    int              // 0..255, or 0..15 for KindGear HasParam families
	Param2   int              // second free byte, KindSpecialDeviceTwo only
	Raw      frame.ForwardFrame // set only on Def==unknown*Def; the undecoded frame
}

func (c Command) String() string {
	if c.IsUnknown() {
		return fmt.Sprintf("%s(%s)", c.Def.Name, c.Raw)
	}
	switch c.Def.Kind {
	case KindDAPC:
		return fmt.Sprintf("ArcPower(%s, %d)", c.Dest, c.Param)
	case KindInstanceStandard:
		return fmt.Sprintf("%s(%s, %s)", c.Def.Name, c.Dest, c.Instance)
	case KindSpecialDeviceTwo:
		return fmt.Sprintf("%s(%#02x, %#02x)", c.Def.Name, c.Param, c.Param2)
	case KindSpecialDeviceOne:
		return fmt.Sprintf("%s(%#02x)", c.Def.Name, c.Param)
	case KindSpecialDeviceZero, KindGearSpecial:
		if c.Def.HasParam {
			return fmt.Sprintf("%s(%#02x)", c.Def.Name, c.Param)
		}
		return fmt.Sprintf("%s()", c.Def.Name)
	default:
		if c.Def.HasParam {
			return fmt.Sprintf("%s(%s, %d)", c.Def.Name, c.Dest, c.Param)
		}
		return fmt.Sprintf("%s(%s)", c.Def.Name, c.Dest)
	}
}

// IsUnknown reports whether c was produced by decoding a frame that matched
// no registered Def, in which case Def points at a synthetic unknown
// sentinel and Raw carries the undecoded frame.
func (c Command) IsUnknown() bool {
	return c.Def == unknownGearDef || c.Def == unknownDeviceDef
}
