// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memorybank implements the IEC 62386-102 §9.10 memory bank model:
// a bank is a 256-byte address space selected through DTR1, addressed
// within through DTR0, and read/written one byte at a time via
// ReadMemoryLocation/WriteMemoryLocation. It generalizes the teacher's
// pkg/core/table Get/Set-by-row-and-column model from TCG table rows and
// columns to DALI banks and byte offsets: Read/Write build a
// sequence.Sequence the same way table.GetFullRow/NewSetCall build a method
// call, and Value's _to_value-style decoders play the role of
// table.Admin_TPerInfo's column-switch struct population.
package memorybank

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/dalierr"
	"github.com/dali-iot/go-dali/response"
	"github.com/dali-iot/go-dali/sequence"
)

// lockRand sources the re-arm byte NewLock writes to a bank's lock byte.
var lockRand = rand.New(rand.NewSource(time.Now().UTC().UnixNano()))

var (
	defSetDTR0                  = command.MustByName("SetDTR0")
	defSetDTR1                  = command.MustByName("SetDTR1")
	defReadMemoryLocation       = command.MustByName("ReadMemoryLocation")
	defWriteMemoryLocation      = command.MustByName("WriteMemoryLocation")
	defWriteMemoryLocationNoRep = command.MustByName("WriteMemoryLocationNoReply")
)

// base holds the yield slot every Sequence in this package shares; it
// mirrors package sequence's own unexported base (which cannot be embedded
// across package boundaries) rather than duplicating the pattern
// differently from the rest of the tree.
type base struct {
	cmd      command.Command
	sleep    time.Duration
	progress sequence.Progress
	result   interface{}
	err      error
}

func (b *base) Command() command.Command     { return b.cmd }
func (b *base) Sleep() time.Duration         { return b.sleep }
func (b *base) Progress() sequence.Progress  { return b.progress }
func (b *base) Result() (interface{}, error) { return b.result, b.err }
func (b *base) Close() *command.Command      { return nil }

func (b *base) yieldCommand(c command.Command) sequence.Step {
	b.cmd = c
	return sequence.StepCommand
}

func (b *base) done(result interface{}, err error) (sequence.Step, error) {
	b.result = result
	b.err = err
	return sequence.StepDone, err
}

// Kind is IEC 62386-102 Table 29's memory location type.
type Kind int

const (
	ROM Kind = iota
	RAMRO
	RAMRW
	NVMRO
	NVMRW
	NVMRWP // NVM-RW, lockable via the bank's lock byte.
)

func (k Kind) String() string {
	switch k {
	case ROM:
		return "ROM"
	case RAMRO:
		return "RAM-RO"
	case RAMRW:
		return "RAM-RW"
	case NVMRO:
		return "NVM-RO"
	case NVMRW:
		return "NVM-RW"
	case NVMRWP:
		return "NVM-RW-P"
	default:
		return "Kind(?)"
	}
}

func (k Kind) writeable() bool {
	return k == RAMRW || k == NVMRW || k == NVMRWP
}

// Location is one addressable byte within a Bank.
type Location struct {
	Bank    int
	Address byte
	Type    Kind
	Default *byte
}

// Range builds the Locations for a contiguous [start, end] span of a bank,
// the Go analogue of location.py's MemoryRange.locations.
func Range(bank int, start, end byte, kind Kind) []Location {
	locs := make([]Location, 0, int(end-start)+1)
	for a := start; ; a++ {
		locs = append(locs, Location{Bank: bank, Address: a, Type: kind})
		if a == end {
			break
		}
	}
	return locs
}

func sortedLocations(locs []Location) []Location {
	out := append([]Location(nil), locs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bank != out[j].Bank {
			return out[i].Bank < out[j].Bank
		}
		return out[i].Address < out[j].Address
	})
	return out
}

// ValueKind discriminates the byte-to-Go-value decoding a Value applies,
// mirroring location.py's MemoryValue subclass hierarchy as a closed sum
// type instead of subclassing.
type ValueKind int

const (
	KindNumeric ValueKind = iota
	KindScaledNumeric
	KindFixedScaleNumeric
	KindString
	KindBinary
	KindTemperature
	KindVersion
	KindManufacturerSpecific
)

// Value is a named, possibly multi-byte, quantity backed by one or more
// Locations in a single bank, read and written MSB-first.
type Value struct {
	Name          string
	Locations     []Location
	Kind          ValueKind
	Unit          string
	ScalingFactor float64   // only consulted by KindFixedScaleNumeric
	ScaleLocation *Location // only consulted by KindScaledNumeric
}

// NewNumericValue builds a plain big-endian unsigned integer Value.
func NewNumericValue(name string, unit string, locs ...Location) *Value {
	return &Value{Name: name, Locations: locs, Kind: KindNumeric, Unit: unit}
}

// NewScaledNumericValue builds a Value whose first byte, at scaleLoc, is a
// power-of-ten exponent and whose remaining locs bytes are a big-endian
// mantissa, per the DiiA energy/power memory banks (202-204).
func NewScaledNumericValue(name string, unit string, scaleLoc Location, locs ...Location) *Value {
	sl := scaleLoc
	return &Value{Name: name, Locations: locs, Kind: KindScaledNumeric, Unit: unit, ScaleLocation: &sl}
}

// NewFixedScaleNumericValue builds a Value multiplied by a constant
// scaling factor instead of a self-describing exponent byte.
func NewFixedScaleNumericValue(name string, unit string, scalingFactor float64, locs ...Location) *Value {
	return &Value{Name: name, Locations: locs, Kind: KindFixedScaleNumeric, Unit: unit, ScalingFactor: scalingFactor}
}

// NewStringValue builds a null-terminated ASCII string Value.
func NewStringValue(name string, locs ...Location) *Value {
	return &Value{Name: name, Locations: locs, Kind: KindString}
}

// NewBinaryValue builds a single-byte boolean Value (raw == 1 is true).
func NewBinaryValue(name string, locs ...Location) *Value {
	return &Value{Name: name, Locations: locs, Kind: KindBinary}
}

// NewTemperatureValue builds a Value whose raw byte is degrees Celsius
// offset by +60 (IEC 62386-102's diagnostic temperature encoding).
func NewTemperatureValue(name string, locs ...Location) *Value {
	return &Value{Name: name, Locations: locs, Kind: KindTemperature, Unit: "°C"}
}

// NewVersionNumberValue builds a Value decoded as major.minor. From a
// single byte, bits 7..2 are the major version and bits 1..0 the minor
// version, the encoding IEC 62386-102 Table 29 uses for the one-byte
// "PartNNNVersion" memory bank 0 locations; from two bytes (bank 0's
// FirmwareVersion and HardwareVersion), the first byte is the major
// version and the second the minor.
func NewVersionNumberValue(name string, locs ...Location) *Value {
	return &Value{Name: name, Locations: locs, Kind: KindVersion}
}

// NewManufacturerSpecificValue builds an opaque passthrough Value: the raw
// bytes are returned unchanged, for manufacturer-reserved ranges neither
// side of the bus can interpret generically.
func NewManufacturerSpecificValue(name string, locs ...Location) *Value {
	return &Value{Name: name, Locations: locs, Kind: KindManufacturerSpecific}
}

// Writeable reports whether every Location backing this Value permits
// writes (RAM-RW, NVM-RW, or NVM-RW-P).
func (v *Value) Writeable() bool {
	for _, l := range v.Locations {
		if !l.Type.writeable() {
			return false
		}
	}
	return true
}

// Lockable reports whether this Value's bank can refuse writes until its
// lock byte is set to the unlocked sentinel (IEC 62386-102 §9.10.4).
func (v *Value) Lockable() bool {
	return len(v.Locations) > 0 && v.Locations[0].Type == NVMRWP
}

func (v *Value) toValue(raw []byte) (interface{}, error) {
	switch v.Kind {
	case KindNumeric:
		return bigEndianUint(raw), nil
	case KindScaledNumeric:
		if len(raw) < 1 {
			return nil, fmt.Errorf("memorybank: %s: scaled value has no exponent byte", v.Name)
		}
		exp := int8(raw[0])
		mantissa := bigEndianUint(raw[1:])
		return scaleByTen(float64(mantissa), int(exp)), nil
	case KindFixedScaleNumeric:
		return v.ScalingFactor * float64(bigEndianUint(raw)), nil
	case KindString:
		s := make([]byte, 0, len(raw))
		for _, b := range raw {
			if b == 0 {
				break
			}
			s = append(s, b)
		}
		return string(s), nil
	case KindBinary:
		return len(raw) > 0 && raw[0] == 1, nil
	case KindTemperature:
		return int(bigEndianUint(raw)) - 60, nil
	case KindVersion:
		if len(raw) < 1 {
			return nil, fmt.Errorf("memorybank: %s: version value has no byte", v.Name)
		}
		if len(raw) >= 2 {
			return fmt.Sprintf("%d.%d", raw[0], raw[1]), nil
		}
		return fmt.Sprintf("%d.%d", raw[0]>>2, raw[0]&0x03), nil
	case KindManufacturerSpecific:
		return append([]byte(nil), raw...), nil
	default:
		return nil, fmt.Errorf("memorybank: %s: unknown value kind %d", v.Name, v.Kind)
	}
}

func bigEndianUint(raw []byte) uint64 {
	var v uint64
	for _, b := range raw {
		v = v<<8 | uint64(b)
	}
	return v
}

func scaleByTen(mantissa float64, exp int) float64 {
	result := mantissa
	for ; exp > 0; exp-- {
		result *= 10
	}
	for ; exp < 0; exp++ {
		result /= 10
	}
	return result
}

// Bank is a 256-byte memory bank, IEC 62386-102 §9.10.6's MemoryBank.
type Bank struct {
	Address       int
	LastAddr      byte
	HasLock       bool
	LockByteAddr  byte
	HasLatch      bool
	LatchByteAddr byte
}

// NewBank builds a Bank with neither a lock nor a latch byte.
func NewBank(address int, lastAddr byte) *Bank {
	return &Bank{Address: address, LastAddr: lastAddr}
}

// WithLock sets the bank's lock byte address (IEC 62386-102 defaults it to
// offset 0x02 when a bank declares has_lock without naming one).
func (b *Bank) WithLock(addr byte) *Bank {
	b.HasLock = true
	b.LockByteAddr = addr
	return b
}

// WithLatch sets the bank's latch byte address, used to request that the
// bank's RAM-RO values be (re-)sampled into a stable snapshot before
// reading them.
func (b *Bank) WithLatch(addr byte) *Bank {
	b.HasLatch = true
	b.LatchByteAddr = addr
	return b
}

func planDTRSteps(dest address.Address, locs []Location) []command.Command {
	cmds := make([]command.Command, 0, len(locs)*2)
	dtr1, dtr0 := -1, -1
	for _, loc := range locs {
		if loc.Bank != dtr1 {
			dtr1 = loc.Bank
			cmds = append(cmds, command.Command{Def: defSetDTR1, Param: dtr1})
		}
		if int(loc.Address) != dtr0 {
			dtr0 = int(loc.Address)
			cmds = append(cmds, command.Command{Def: defSetDTR0, Param: dtr0})
		}
		cmds = append(cmds, command.Command{Def: defReadMemoryLocation, Dest: dest})
		if dtr0 < 255 {
			dtr0++
		}
	}
	return cmds
}

// ReadValue is the Sequence reading a Value one Location at a time,
// selecting the bank/offset with DTR1/DTR0 only when it differs from what
// the previous ReadMemoryLocation left latched, mirroring
// location.py's MemoryValue.read generator.
type ReadValue struct {
	base
	value *Value
	cmds  []command.Command
	idx   int
	raw   []byte
}

// allLocations returns v's Locations plus its ScaleLocation (if any),
// sorted MSB-first; for a KindScaledNumeric Value this places the
// exponent byte ahead of the mantissa the way toValue expects.
func (v *Value) allLocations() []Location {
	locs := v.Locations
	if v.ScaleLocation != nil {
		locs = append(append([]Location(nil), locs...), *v.ScaleLocation)
	}
	return sortedLocations(locs)
}

// NewReadValue builds a Sequence that reads v from dest.
func NewReadValue(dest address.Address, v *Value) *ReadValue {
	return &ReadValue{value: v, cmds: planDTRSteps(dest, v.allLocations())}
}

func (r *ReadValue) Next(resp response.Response) (sequence.Step, error) {
	if r.idx > 0 && r.cmds[r.idx-1].Def == defReadMemoryLocation {
		n, ok := resp.(response.NumericResponse)
		if !ok || n.Value == nil {
			return r.done(nil, fmt.Errorf("%w: %s", dalierr.ErrMemoryLocationNotImplemented, r.value.Name))
		}
		r.raw = append(r.raw, *n.Value)
	}
	if r.idx >= len(r.cmds) {
		v, err := r.value.toValue(r.raw)
		return r.done(v, err)
	}
	cmd := r.cmds[r.idx]
	r.idx++
	return r.yieldCommand(cmd), nil
}

// WriteValue is the Sequence writing raw, one byte per Location, verifying
// every WriteMemoryLocation echo against the byte just sent.
type WriteValue struct {
	base
	value   *Value
	dest    address.Address
	raw     []byte
	locs    []Location
	dtr1    int
	dtr0    int
	idx     int
	stage   int
	pending byte
}

const (
	wvSetDTR1 = iota
	wvSetDTR0
	wvWrite
	wvVerify
)

// NewWriteValue builds a Sequence that writes raw (one byte per v.Location,
// MSB-first) to dest, verifying each byte via WriteMemoryLocation's echo.
// Returns ErrMemoryValueNotWriteable if any backing Location is read-only,
// or an error if len(raw) does not match the Value's Location count.
func NewWriteValue(dest address.Address, v *Value, raw []byte) (*WriteValue, error) {
	if !v.Writeable() {
		return nil, fmt.Errorf("%w: %s", dalierr.ErrMemoryValueNotWriteable, v.Name)
	}
	locs := sortedLocations(v.Locations)
	if len(raw) != len(locs) {
		return nil, fmt.Errorf("memorybank: %s: expected %d bytes, got %d", v.Name, len(locs), len(raw))
	}
	return &WriteValue{value: v, dest: dest, raw: raw, locs: locs, dtr1: -1, dtr0: -1}, nil
}

func (w *WriteValue) Next(resp response.Response) (sequence.Step, error) {
	switch w.stage {
	case wvSetDTR1, wvSetDTR0, wvWrite:
		return w.advance()
	case wvVerify:
		n, ok := resp.(response.NumericResponse)
		if !ok || n.Value == nil || *n.Value != w.pending {
			return w.done(nil, fmt.Errorf("%w: %s location 0x%02x", dalierr.ErrMemoryWriteFailure, w.value.Name, w.locs[w.idx].Address))
		}
		w.idx++
		if w.dtr0 < 255 {
			w.dtr0++
		}
		w.stage = wvSetDTR1
		return w.advance()
	}
	return w.done(nil, fmt.Errorf("memorybank: WriteValue: unreachable stage %d", w.stage))
}

// advance walks forward from the current (idx, stage) until it has
// something to send or the write is complete, folding the "select
// DTR1/DTR0 only if they differ from what's already latched" logic in
// directly rather than precomputing a command plan, since the bytes being
// written (and thus what's worth verifying) are only known at this point.
func (w *WriteValue) advance() (sequence.Step, error) {
	for w.idx < len(w.locs) {
		loc := w.locs[w.idx]
		if !loc.Type.writeable() {
			return w.done(nil, fmt.Errorf("%w: %s location 0x%02x", dalierr.ErrMemoryLocationNotWriteable, w.value.Name, loc.Address))
		}
		if loc.Bank != w.dtr1 {
			w.dtr1 = loc.Bank
			w.stage = wvSetDTR0
			return w.yieldCommand(command.Command{Def: defSetDTR1, Param: w.dtr1}), nil
		}
		if int(loc.Address) != w.dtr0 {
			w.dtr0 = int(loc.Address)
			w.stage = wvWrite
			return w.yieldCommand(command.Command{Def: defSetDTR0, Param: w.dtr0}), nil
		}
		w.pending = w.raw[w.idx]
		w.stage = wvVerify
		return w.yieldCommand(command.Command{Def: defWriteMemoryLocation, Param: int(w.pending)}), nil
	}
	v, err := w.value.toValue(w.raw)
	return w.done(v, err)
}

// LastAddress is the Sequence reading a Bank's last addressable location
// (its locations[0x00] entry), IEC 62386-102's "bank size" query.
type LastAddress struct {
	base
	bank  *Bank
	dest  address.Address
	stage int
}

const (
	laSetDTR1 = iota
	laSetDTR0
	laRead
	laResult
)

func NewLastAddress(dest address.Address, b *Bank) *LastAddress {
	return &LastAddress{bank: b, dest: dest}
}

func (l *LastAddress) Next(resp response.Response) (sequence.Step, error) {
	switch l.stage {
	case laSetDTR1:
		l.stage = laSetDTR0
		return l.yieldCommand(command.Command{Def: defSetDTR1, Param: l.bank.Address}), nil
	case laSetDTR0:
		l.stage = laRead
		return l.yieldCommand(command.Command{Def: defSetDTR0, Param: 0x00}), nil
	case laRead:
		l.stage = laResult
		return l.yieldCommand(command.Command{Def: defReadMemoryLocation, Dest: l.dest}), nil
	case laResult:
		n, ok := resp.(response.NumericResponse)
		if !ok || n.Value == nil {
			return l.done(nil, fmt.Errorf("%w: bank %d", dalierr.ErrMemoryLocationNotImplemented, l.bank.Address))
		}
		return l.done(int(*n.Value), nil)
	}
	return l.done(nil, fmt.Errorf("memorybank: LastAddress: unreachable stage %d", l.stage))
}

// IsLocked is the Sequence checking a Bank's lock byte: false if the bank
// has no lock byte at all or the read gets no answer, otherwise true
// unless the byte reads back the unlock sentinel 0x55.
type IsLocked struct {
	base
	bank  *Bank
	dest  address.Address
	stage int
}

const (
	ilSetDTR1 = iota
	ilSetDTR0
	ilRead
	ilResult
)

func NewIsLocked(dest address.Address, b *Bank) sequence.Sequence {
	if !b.HasLock {
		return &constResult{value: false}
	}
	return &IsLocked{bank: b, dest: dest}
}

func (l *IsLocked) Next(resp response.Response) (sequence.Step, error) {
	switch l.stage {
	case ilSetDTR1:
		l.stage = ilSetDTR0
		return l.yieldCommand(command.Command{Def: defSetDTR1, Param: l.bank.Address}), nil
	case ilSetDTR0:
		l.stage = ilRead
		return l.yieldCommand(command.Command{Def: defSetDTR0, Param: int(l.bank.LockByteAddr)}), nil
	case ilRead:
		l.stage = ilResult
		return l.yieldCommand(command.Command{Def: defReadMemoryLocation, Dest: l.dest}), nil
	case ilResult:
		n, ok := resp.(response.NumericResponse)
		if !ok || n.Value == nil {
			return l.done(false, nil)
		}
		return l.done(*n.Value != 0x55, nil)
	}
	return l.done(nil, fmt.Errorf("memorybank: IsLocked: unreachable stage %d", l.stage))
}

// Unlock is the Sequence writing the unlock sentinel 0x55 to a Bank's lock
// byte. Lock writes the complementary non-0x55 value to re-arm it.
type lockWrite struct {
	base
	bank  *Bank
	value byte
	stage int
}

const (
	lwSetDTR1 = iota
	lwSetDTR0
	lwWrite
	lwDone
)

// NewUnlock builds a Sequence unlocking b for writes to its NVM-RW-P
// values.
func NewUnlock(b *Bank) sequence.Sequence {
	if !b.HasLock {
		return &constResult{value: nil}
	}
	return &lockWrite{bank: b, value: 0x55}
}

// NewLock builds a Sequence re-locking b, writing a random byte other than
// the unlock sentinel to its lock byte.
func NewLock(b *Bank) sequence.Sequence {
	if !b.HasLock {
		return &constResult{value: nil}
	}
	v := byte(lockRand.Intn(255))
	if v >= 0x55 {
		v++
	}
	return &lockWrite{bank: b, value: v}
}

func (l *lockWrite) Next(resp response.Response) (sequence.Step, error) {
	switch l.stage {
	case lwSetDTR1:
		l.stage = lwSetDTR0
		return l.yieldCommand(command.Command{Def: defSetDTR1, Param: l.bank.Address}), nil
	case lwSetDTR0:
		l.stage = lwWrite
		return l.yieldCommand(command.Command{Def: defSetDTR0, Param: int(l.bank.LockByteAddr)}), nil
	case lwWrite:
		l.stage = lwDone
		return l.yieldCommand(command.Command{Def: defWriteMemoryLocationNoRep, Param: int(l.value)}), nil
	case lwDone:
		return l.done(nil, nil)
	}
	return l.done(nil, fmt.Errorf("memorybank: lockWrite: unreachable stage %d", l.stage))
}

// Latch is the Sequence (re-)latching a Bank's RAM-RO snapshot, writing
// 0xAA to the bank's latch byte. Returns an error immediately if the bank
// declares no latch byte.
type latchWrite struct {
	base
	bank  *Bank
	stage int
}

func NewLatch(b *Bank) (sequence.Sequence, error) {
	if !b.HasLatch {
		return nil, fmt.Errorf("memorybank: bank %d does not support latching", b.Address)
	}
	return &latchWrite{bank: b}, nil
}

func (l *latchWrite) Next(resp response.Response) (sequence.Step, error) {
	switch l.stage {
	case lwSetDTR1:
		l.stage = lwSetDTR0
		return l.yieldCommand(command.Command{Def: defSetDTR1, Param: l.bank.Address}), nil
	case lwSetDTR0:
		l.stage = lwWrite
		return l.yieldCommand(command.Command{Def: defSetDTR0, Param: int(l.bank.LatchByteAddr)}), nil
	case lwWrite:
		l.stage = lwDone
		return l.yieldCommand(command.Command{Def: defWriteMemoryLocationNoRep, Param: 0xAA}), nil
	case lwDone:
		return l.done(nil, nil)
	}
	return l.done(nil, fmt.Errorf("memorybank: latchWrite: unreachable stage %d", l.stage))
}

// constResult is a one-shot Sequence that completes immediately with a
// fixed value, used by IsLocked/Unlock/Lock when a Bank declares no lock
// byte at all and there is nothing to send to the bus.
type constResult struct {
	base
	value interface{}
	done_ bool
}

func (c *constResult) Next(resp response.Response) (sequence.Step, error) {
	if c.done_ {
		return c.base.done(c.value, nil)
	}
	c.done_ = true
	return c.base.done(c.value, nil)
}
