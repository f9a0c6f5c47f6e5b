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
	defSetTemporaryColourTemperature = command.MustByName("SetTemporaryColourTemperature")
	defColourActivate                = command.MustByName("Activate")
	defQueryColourValue              = command.MustByName("QueryColourValue")
	defQueryDTR0                     = command.MustByName("QueryDTR0")
	defQueryActualLevel              = command.MustByName("QueryActualLevel")
)

// SetDT8ColourValueTc transfers a mired colour-temperature value through
// the DTR0/DTR1 pair to a DT8 gear's temporary colour-temperature
// register, then activates it. Does not check that dest actually supports
// Tc control before sending.
type SetDT8ColourValueTc struct {
	base
	dest    address.Address
	tcMired int
	stage   int
}

const (
	tcSetDTR0 = iota
	tcSetDTR1
	tcSetTemp
	tcActivate
	tcDone
)

func NewSetDT8ColourValueTc(dest address.Address, tcMired int) *SetDT8ColourValueTc {
	return &SetDT8ColourValueTc{dest: dest, tcMired: tcMired}
}

func (s *SetDT8ColourValueTc) Next(resp response.Response) (Step, error) {
	switch s.stage {
	case tcSetDTR0:
		s.stage = tcSetDTR1
		return s.yieldCommand(command.Command{Def: defSetDTR0, Param: s.tcMired & 0xFF}), nil
	case tcSetDTR1:
		s.stage = tcSetTemp
		return s.yieldCommand(command.Command{Def: defSetDTR1, Param: (s.tcMired >> 8) & 0xFF}), nil
	case tcSetTemp:
		s.stage = tcActivate
		return s.yieldCommand(command.Command{Def: defSetTemporaryColourTemperature, Dest: s.dest}), nil
	case tcActivate:
		s.stage = tcDone
		return s.yieldCommand(command.Command{Def: defColourActivate, Dest: s.dest}), nil
	case tcDone:
		return s.done(nil, nil)
	}
	return s.done(nil, fmt.Errorf("sequence: SetDT8ColourValueTc: unreachable stage %d", s.stage))
}

// QueryDT8ColourValue reads one of the ColourValueVariable registers
// (command.ColourValueXCoordinate, etc.) from a DT8 gear, assembling a
// 16-bit value from the QueryColourValue answer (high byte) and the
// QueryDTR0 answer that follows it (low byte). QueryActualLevel is sent first and its
// response discarded, matching the gear's expectation that colour-value
// queries follow a level query in the same transaction.
type QueryDT8ColourValue struct {
	base
	dest  address.Address
	query command.ColourValueVariable
	stage int
	hi    byte
}

const (
	qcvQueryActualLevel = iota
	qcvSetDTR0
	qcvQueryHigh
	qcvQueryLow
	qcvDone
)

func NewQueryDT8ColourValue(dest address.Address, query command.ColourValueVariable) *QueryDT8ColourValue {
	return &QueryDT8ColourValue{dest: dest, query: query}
}

func (q *QueryDT8ColourValue) Next(resp response.Response) (Step, error) {
	switch q.stage {
	case qcvQueryActualLevel:
		q.stage = qcvSetDTR0
		return q.yieldCommand(command.Command{Def: defQueryActualLevel, Dest: q.dest}), nil
	case qcvSetDTR0:
		q.stage = qcvQueryHigh
		return q.yieldCommand(command.Command{Def: defSetDTR0, Param: int(q.query)}), nil
	case qcvQueryHigh:
		q.stage = qcvQueryLow
		return q.yieldCommand(command.Command{Def: defQueryColourValue, Dest: q.dest}), nil
	case qcvQueryLow:
		n, ok := resp.(response.NumericResponse)
		if !ok || n.Value == nil {
			return q.done(nil, nil)
		}
		q.hi = *n.Value
		q.stage = qcvDone
		return q.yieldCommand(command.Command{Def: defQueryDTR0, Dest: q.dest}), nil
	case qcvDone:
		n, ok := resp.(response.NumericResponse)
		if !ok || n.Value == nil {
			return q.done(nil, nil)
		}
		return q.done(int(*n.Value)|int(q.hi)<<8, nil)
	}
	return q.done(nil, fmt.Errorf("sequence: QueryDT8ColourValue: unreachable stage %d", q.stage))
}
