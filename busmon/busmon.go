// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package busmon infers the outcome of DALI traffic this process did not
// itself originate: a passive observer state machine for transports able
// to see other masters' frames on the bus, grounded on the
// Idle/AwaitingRepeat/AwaitingResponse machine spec.md describes for C8's
// bus-watch capability and built in the explicit-stage-field style
// package sequence uses, rather than a goroutine parked on a timer.
package busmon

import (
	"time"

	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/frame"
	"github.com/dali-iot/go-dali/response"
)

// IdleTimeout is how long the monitor waits for a send-twice repeat or a
// query's backward frame before declaring the pending command resolved.
const IdleTimeout = 200 * time.Millisecond

// Kind discriminates what a Report describes.
type Kind int

const (
	// KindTraffic is an immediately-reportable command: neither a
	// configuration (send-twice) command nor a query.
	KindTraffic Kind = iota
	// KindConfigOK is a send-twice command confirmed by an identical
	// repeat within IdleTimeout.
	KindConfigOK
	// KindConfigFailed is a send-twice command that was not repeated
	// identically within IdleTimeout (a different frame, a backward
	// frame, or silence arrived instead).
	KindConfigFailed
	// KindQueryResponse is a query command paired with the backward
	// frame that answered it.
	KindQueryResponse
	// KindQueryNo is a query command that went unanswered: another
	// forward frame or IdleTimeout arrived before any backward frame.
	KindQueryNo
)

func (k Kind) String() string {
	switch k {
	case KindTraffic:
		return "Traffic"
	case KindConfigOK:
		return "ConfigOK"
	case KindConfigFailed:
		return "ConfigFailed"
	case KindQueryResponse:
		return "QueryResponse"
	case KindQueryNo:
		return "QueryNo"
	default:
		return "Unknown"
	}
}

// Report is one inferred outcome the monitor surfaces to its caller's
// bus-traffic callback.
type Report struct {
	Kind     Kind
	Command  command.Command
	Response response.Response // set only for KindQueryResponse
}

type state int

const (
	stateIdle state = iota
	stateAwaitingRepeat
	stateAwaitingResponse
)

// Monitor is a passive bus observer. It holds no reference to a Transport;
// a caller with one (in this tree, cmd/dalitrace's busTap transport
// decorator) feeds it every forward/backward frame it observes,
// in arrival order, and polls Deadline to know when to call Tick absent a
// new frame.
type Monitor struct {
	st state

	lastEnableDeviceType int
	pending              command.Command
	pendingFrame         frame.ForwardFrame
	deadline             time.Time
}

// NewMonitor builds an idle Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Deadline returns the time Tick should be called by if no new frame
// arrives first, or the zero Time if nothing is pending.
func (m *Monitor) Deadline() time.Time {
	return m.deadline
}

// ObserveForward feeds in a forward frame this Monitor did not originate,
// decoded against whatever device type a prior EnableDeviceType latched.
// It returns a Report if one was produced, or nil if the frame only
// advanced internal state (e.g. it opened a new waiting window).
// ObserveForward returns at most one Report per call: when a pending
// window is invalidated by a new forward frame, that new frame's own
// decode still runs (so lastEnableDeviceType and any new waiting window
// stay correct for the next call), but its own Report, if any, is
// superseded by the resolution of the one it invalidated.
func (m *Monitor) ObserveForward(f frame.ForwardFrame, now time.Time) *Report {
	switch m.st {
	case stateAwaitingRepeat:
		if frame.Equal(f.Frame, m.pendingFrame.Frame) {
			r := &Report{Kind: KindConfigOK, Command: m.pending}
			m.toIdle()
			return r
		}
		failed := Report{Kind: KindConfigFailed, Command: m.pending}
		m.toIdle()
		m.decodeAndDispatch(f, now)
		return &failed
	case stateAwaitingResponse:
		no := Report{Kind: KindQueryNo, Command: m.pending}
		m.toIdle()
		m.decodeAndDispatch(f, now)
		return &no
	}
	return m.decodeAndDispatch(f, now)
}

// ObserveBackward feeds in a backward frame this Monitor did not
// originate a request for.
func (m *Monitor) ObserveBackward(bf frame.BackwardFrame, now time.Time) *Report {
	switch m.st {
	case stateAwaitingResponse:
		resp, err := response.Parse(m.pending.Def.ResponseType, bf, m.pending.Def.ResponseNames)
		if err != nil {
			r := &Report{Kind: KindQueryNo, Command: m.pending}
			m.toIdle()
			return r
		}
		r := &Report{Kind: KindQueryResponse, Command: m.pending, Response: resp}
		m.toIdle()
		return r
	case stateAwaitingRepeat:
		r := &Report{Kind: KindConfigFailed, Command: m.pending}
		m.toIdle()
		return r
	}
	return nil
}

// Tick is called when Deadline has passed with no further frame observed.
// It reports nothing if called before Deadline or while idle.
func (m *Monitor) Tick(now time.Time) *Report {
	if m.st == stateIdle || now.Before(m.deadline) {
		return nil
	}
	var r *Report
	switch m.st {
	case stateAwaitingRepeat:
		r = &Report{Kind: KindConfigFailed, Command: m.pending}
	case stateAwaitingResponse:
		r = &Report{Kind: KindQueryNo, Command: m.pending}
	}
	m.toIdle()
	return r
}

func (m *Monitor) decodeAndDispatch(f frame.ForwardFrame, now time.Time) *Report {
	cmd, err := command.Decode(f, m.lastEnableDeviceType)
	if err != nil {
		return nil
	}

	isEnable := cmd.Def.Name == "EnableDeviceType"
	if isEnable {
		m.lastEnableDeviceType = cmd.Param
	}

	switch {
	case cmd.Def.SendTwice:
		m.st = stateAwaitingRepeat
		m.pending = cmd
		m.pendingFrame = f
		m.deadline = now.Add(IdleTimeout)
		return nil
	case cmd.Def.IsQuery:
		m.st = stateAwaitingResponse
		m.pending = cmd
		m.deadline = now.Add(IdleTimeout)
		return nil
	default:
		if !isEnable {
			m.lastEnableDeviceType = 0
		}
		return &Report{Kind: KindTraffic, Command: cmd}
	}
}

func (m *Monitor) toIdle() {
	if m.pending.Def != nil && m.pending.Def.Name != "EnableDeviceType" {
		m.lastEnableDeviceType = 0
	}
	m.st = stateIdle
	m.pending = command.Command{}
	m.pendingFrame = frame.ForwardFrame{}
	m.deadline = time.Time{}
}
