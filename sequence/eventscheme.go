// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"fmt"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/response"
)

var (
	defSetDTR1         = command.MustByName("SetDTR1")
	defSetDTR2         = command.MustByName("SetDTR2")
	defSetEventScheme  = command.MustByName("SetEventScheme")
	defQueryEventScheme = command.MustByName("QueryEventScheme")
	defSetEventFilter  = command.MustByName("SetEventFilter")
	defQueryFilterLo   = command.MustByName("QueryEventFilterZeroToSeven")
	defQueryFilterMid  = command.MustByName("QueryEventFilterEightToFifteen")
	defQueryFilterHi   = command.MustByName("QueryEventFilterSixteenToTwentyThree")
)

// SetEventSchemes sets one device instance's event scheme, then reads it
// back. scheme is one of the §6 event-scheme names' index (0=instance,
// 1=device, 2=deviceInstance, 3=deviceGroup, 4=instanceGroup).
type SetEventSchemes struct {
	base
	dev    address.DeviceShort
	inst   address.InstanceNumber
	scheme int
	stage  int
}

const (
	sesSetDTR0 = iota
	sesSetScheme
	sesQuery
	sesDone
)

func NewSetEventSchemes(dev address.DeviceShort, inst address.InstanceNumber, scheme int) *SetEventSchemes {
	return &SetEventSchemes{dev: dev, inst: inst, scheme: scheme}
}

func (s *SetEventSchemes) Next(resp response.Response) (Step, error) {
	switch s.stage {
	case sesSetDTR0:
		s.stage = sesSetScheme
		return s.yieldCommand(command.Command{Def: defSetDTR0, Param: s.scheme}), nil
	case sesSetScheme:
		s.stage = sesQuery
		return s.yieldCommand(command.Command{Def: defSetEventScheme, Dest: s.dev, Instance: s.inst}), nil
	case sesQuery:
		s.stage = sesDone
		return s.yieldCommand(command.Command{Def: defQueryEventScheme, Dest: s.dev, Instance: s.inst}), nil
	case sesDone:
		e, _ := resp.(response.EnumResponse)
		return s.done(e, nil)
	}
	return s.done(nil, fmt.Errorf("sequence: SetEventSchemes: unreachable stage %d", s.stage))
}

// filterBytes splits a filter value into its DTR0/1/2 bytes and reports
// how many of DTR1/DTR2 the declared width actually uses.
func filterBytes(value uint32, width int) (lo, mid, hi byte, useMid, useHi bool) {
	lo = byte(value)
	mid = byte(value >> 8)
	hi = byte(value >> 16)
	useMid = width > 8
	useHi = width > 16
	return
}

// SetEventFilters sets a device instance's event filter register (8, 16,
// or 24 bits wide depending on the instance type) and reads back the
// value the instance actually accepted.
type SetEventFilters struct {
	base
	dev          address.DeviceShort
	inst         address.InstanceNumber
	value        uint32
	width        int
	lo, mid, hi  byte
	useMid, useHi bool
	stage        int
}

const (
	sefSetDTR0 = iota
	sefSetDTR1
	sefSetDTR2
	sefSetFilter
	sefQueryLo
	sefQueryMid
	sefQueryHi
	sefDone
)

func NewSetEventFilters(dev address.DeviceShort, inst address.InstanceNumber, value uint32, width int) *SetEventFilters {
	f := &SetEventFilters{dev: dev, inst: inst, value: value, width: width}
	f.lo, f.mid, f.hi, f.useMid, f.useHi = filterBytes(value, width)
	return f
}

func (f *SetEventFilters) Next(resp response.Response) (Step, error) {
	switch f.stage {
	case sefSetDTR0:
		f.stage = sefSetDTR1
		return f.yieldCommand(command.Command{Def: defSetDTR0, Param: int(f.lo)}), nil
	case sefSetDTR1:
		if !f.useMid {
			f.stage = sefSetFilter
			return f.Next(nil)
		}
		f.stage = sefSetDTR2
		return f.yieldCommand(command.Command{Def: defSetDTR1, Param: int(f.mid)}), nil
	case sefSetDTR2:
		if !f.useHi {
			f.stage = sefSetFilter
			return f.Next(nil)
		}
		f.stage = sefSetFilter
		return f.yieldCommand(command.Command{Def: defSetDTR2, Param: int(f.hi)}), nil
	case sefSetFilter:
		f.stage = sefQueryLo
		return f.yieldCommand(command.Command{Def: defSetEventFilter, Dest: f.dev, Instance: f.inst}), nil
	case sefQueryLo:
		f.stage = sefQueryMid
		return f.yieldCommand(command.Command{Def: defQueryFilterLo, Dest: f.dev, Instance: f.inst}), nil
	case sefQueryMid:
		if n, ok := resp.(response.NumericResponse); ok && n.Value != nil {
			f.lo = *n.Value
		}
		if !f.useMid {
			f.stage = sefDone
			return f.Next(nil)
		}
		f.stage = sefQueryHi
		return f.yieldCommand(command.Command{Def: defQueryFilterMid, Dest: f.dev, Instance: f.inst}), nil
	case sefQueryHi:
		if n, ok := resp.(response.NumericResponse); ok && n.Value != nil {
			f.mid = *n.Value
		}
		if !f.useHi {
			f.stage = sefDone
			return f.Next(nil)
		}
		f.stage = sefDone
		return f.yieldCommand(command.Command{Def: defQueryFilterHi, Dest: f.dev, Instance: f.inst}), nil
	case sefDone:
		if n, ok := resp.(response.NumericResponse); ok && n.Value != nil {
			f.hi = *n.Value
		}
		return f.done(uint32(f.lo)|uint32(f.mid)<<8|uint32(f.hi)<<16, nil)
	}
	return f.done(nil, fmt.Errorf("sequence: SetEventFilters: unreachable stage %d", f.stage))
}

// QueryEventFilters reads back a device instance's event filter register
// without writing it first.
type QueryEventFilters struct {
	base
	dev          address.DeviceShort
	inst         address.InstanceNumber
	width        int
	lo, mid, hi  byte
	stage        int
}

const (
	qefLo = iota
	qefMid
	qefHi
	qefDone
)

func NewQueryEventFilters(dev address.DeviceShort, inst address.InstanceNumber, width int) *QueryEventFilters {
	return &QueryEventFilters{dev: dev, inst: inst, width: width}
}

func (q *QueryEventFilters) Next(resp response.Response) (Step, error) {
	switch q.stage {
	case qefLo:
		q.stage = qefMid
		return q.yieldCommand(command.Command{Def: defQueryFilterLo, Dest: q.dev, Instance: q.inst}), nil
	case qefMid:
		if n, ok := resp.(response.NumericResponse); ok && n.Value != nil {
			q.lo = *n.Value
		}
		if q.width <= 8 {
			q.stage = qefDone
			return q.Next(nil)
		}
		q.stage = qefHi
		return q.yieldCommand(command.Command{Def: defQueryFilterMid, Dest: q.dev, Instance: q.inst}), nil
	case qefHi:
		if n, ok := resp.(response.NumericResponse); ok && n.Value != nil {
			q.mid = *n.Value
		}
		if q.width <= 16 {
			q.stage = qefDone
			return q.Next(nil)
		}
		q.stage = qefDone
		return q.yieldCommand(command.Command{Def: defQueryFilterHi, Dest: q.dev, Instance: q.inst}), nil
	case qefDone:
		if n, ok := resp.(response.NumericResponse); ok && n.Value != nil {
			q.hi = *n.Value
		}
		return q.done(uint32(q.lo)|uint32(q.mid)<<8|uint32(q.hi)<<16, nil)
	}
	return q.done(nil, fmt.Errorf("sequence: QueryEventFilters: unreachable stage %d", q.stage))
}
