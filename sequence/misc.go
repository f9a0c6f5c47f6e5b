// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"fmt"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/dalierr"
	"github.com/dali-iot/go-dali/response"
)

var (
	defQueryDeviceType      = command.MustByName("QueryDeviceType")
	defQueryNextDeviceType  = command.MustByName("QueryNextDeviceType")
	defQueryInputValue      = command.MustByName("QueryInputValue")
	defQueryInputValueLatch = command.MustByName("QueryInputValueLatch")
	defQueryResolution      = command.MustByName("QueryResolution")
)

// QueryDeviceTypes walks QueryDeviceType/QueryNextDeviceType to obtain the
// full list of part-2xx device types a gear supports. A gear with a single
// device type answers QueryDeviceType directly; one supporting several
// answers 0xFF (255) and must be walked with QueryNextDeviceType until it
// returns 254.
type QueryDeviceTypes struct {
	base
	dest    address.Address
	stage   int
	lastSeen int
	types   []int
}

const (
	qdtFirst = iota
	qdtWalk
	qdtDone
)

func NewQueryDeviceTypes(dest address.Address) *QueryDeviceTypes {
	return &QueryDeviceTypes{dest: dest, lastSeen: -1}
}

func (q *QueryDeviceTypes) Next(resp response.Response) (Step, error) {
	switch q.stage {
	case qdtFirst:
		q.stage = qdtWalk
		return q.yieldCommand(command.Command{Def: defQueryDeviceType, Dest: q.dest}), nil

	case qdtWalk:
		e, ok := resp.(response.EnumResponse)
		if !ok {
			return q.done(nil, dalierr.ErrDaliSequence)
		}
		if e.Unknown {
			return q.done(nil, fmt.Errorf("sequence: QueryDeviceTypes: %w", dalierr.ErrDaliSequence))
		}
		if e.Value < 254 {
			q.types = append(q.types, e.Value)
			if q.lastSeen >= 0 {
				// Answer to QueryNextDeviceType: keep walking.
				q.lastSeen = e.Value
				return q.yieldCommand(command.Command{Def: defQueryNextDeviceType, Dest: q.dest}), nil
			}
			q.stage = qdtDone
			return q.done(q.types, nil)
		}
		if e.Value == 254 {
			q.stage = qdtDone
			return q.done(q.types, nil)
		}
		// 255: multiple device types, walk with QueryNextDeviceType.
		q.lastSeen = 0
		q.stage = qdtWalk
		return q.yieldCommand(command.Command{Def: defQueryNextDeviceType, Dest: q.dest}), nil

	case qdtDone:
		return q.done(q.types, nil)
	}
	return q.done(nil, fmt.Errorf("sequence: QueryDeviceTypes: unreachable stage %d", q.stage))
}

// SetDTR0Sequence, SetDTR1Sequence, SetDTR2Sequence are trivial
// one-command sequences, useful as a RunSequence-compatible building block
// when a caller wants the driver's EnableDeviceType bookkeeping and
// transaction-lock discipline around a single DTR write without composing
// a larger sequence by hand.
type dtrSequence struct {
	base
	def  *command.Def
	val  int
	sent bool
}

func (d *dtrSequence) Next(response.Response) (Step, error) {
	if d.sent {
		return d.done(nil, nil)
	}
	d.sent = true
	return d.yieldCommand(command.Command{Def: d.def, Param: d.val}), nil
}

func NewSetDTR0Sequence(val int) Sequence { return &dtrSequence{def: defSetDTR0, val: val} }
func NewSetDTR1Sequence(val int) Sequence { return &dtrSequence{def: defSetDTR1, val: val} }
func NewSetDTR2Sequence(val int) Sequence { return &dtrSequence{def: defSetDTR2, val: val} }

// Ping broadcasts QueryControlGearPresent (QueryBallast) and reports which
// of the probed short addresses answered, for bus-health diagnostics.
type Ping struct {
	base
	addrs   []int
	idx     int
	present []int
}

func NewPing(addrs []int) *Ping {
	if addrs == nil {
		addrs = make([]int, 64)
		for i := range addrs {
			addrs[i] = i
		}
	}
	return &Ping{addrs: addrs}
}

func (p *Ping) Next(resp response.Response) (Step, error) {
	if p.idx > 0 {
		if yn, ok := resp.(response.YesNoResponse); ok && yn.Yes {
			p.present = append(p.present, p.addrs[p.idx-1])
		}
	}
	if p.idx >= len(p.addrs) {
		return p.done(p.present, nil)
	}
	short, err := address.NewGearShort(p.addrs[p.idx])
	p.idx++
	if err != nil {
		return p.done(nil, err)
	}
	return p.yieldCommand(command.Command{Def: defQueryBallast, Dest: short}), nil
}

// QueryInputValue reads a part-103 control device instance's full sensor
// value, assembling it from QueryInputValue plus successive
// QueryInputValueLatch reads for resolutions wider than 8 bits, then
// discarding the repeated trailing bytes IEC 62386-103 §9.7.2 specifies
// for resolutions that are not a multiple of 8.
type QueryInputValue struct {
	base
	dev        address.DeviceShort
	inst       address.InstanceNumber
	resolution int
	stage      int
	value      int
	remaining  int
}

const (
	qivResolution = iota
	qivValue
	qivLatch
	qivDone
)

// NewQueryInputValue builds the sequence. Pass resolution <= 0 to query it
// first via QueryResolution.
func NewQueryInputValue(dev address.DeviceShort, inst address.InstanceNumber, resolution int) *QueryInputValue {
	q := &QueryInputValue{dev: dev, inst: inst, resolution: resolution}
	if resolution <= 0 {
		q.stage = qivResolution
	} else {
		q.stage = qivValue
	}
	return q
}

func (q *QueryInputValue) Next(resp response.Response) (Step, error) {
	switch q.stage {
	case qivResolution:
		q.stage = qivValue
		return q.yieldCommand(command.Command{Def: defQueryResolution, Dest: q.dev, Instance: q.inst}), nil

	case qivValue:
		if q.resolution <= 0 {
			n, ok := resp.(response.NumericResponse)
			if !ok || n.Value == nil {
				return q.done(nil, fmt.Errorf("sequence: QueryInputValue: %w", dalierr.ErrDaliSequence))
			}
			q.resolution = int(*n.Value)
		}
		q.stage = qivLatch
		q.remaining = q.resolution
		return q.yieldCommand(command.Command{Def: defQueryInputValue, Dest: q.dev, Instance: q.inst}), nil

	case qivLatch:
		n, ok := resp.(response.NumericResponse)
		if !ok || n.Value == nil {
			return q.done(nil, fmt.Errorf("sequence: QueryInputValue: %w", dalierr.ErrDaliSequence))
		}
		if q.remaining == q.resolution {
			q.value = int(*n.Value)
		} else {
			q.value = q.value<<8 | int(*n.Value)
		}
		q.remaining -= 8
		if q.remaining > 8 {
			return q.yieldCommand(command.Command{Def: defQueryInputValueLatch, Dest: q.dev, Instance: q.inst}), nil
		}
		if q.remaining > 0 {
			q.stage = qivDone
			return q.yieldCommand(command.Command{Def: defQueryInputValueLatch, Dest: q.dev, Instance: q.inst}), nil
		}
		return q.done(q.value, nil)

	case qivDone:
		n, ok := resp.(response.NumericResponse)
		if !ok || n.Value == nil {
			return q.done(nil, fmt.Errorf("sequence: QueryInputValue: %w", dalierr.ErrDaliSequence))
		}
		q.value = q.value<<8 | int(*n.Value)
		if q.remaining > 0 && q.remaining < 8 {
			q.value >>= 8 - q.remaining
		}
		return q.done(q.value, nil)
	}
	return q.done(nil, fmt.Errorf("sequence: QueryInputValue: unreachable stage %d", q.stage))
}
