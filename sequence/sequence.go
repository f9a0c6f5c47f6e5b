// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sequence implements resumable multi-step DALI transactions: a
// Sequence yields a Command to send, a Sleep to wait out, or a Progress
// report, and resumes with the Response to the most recently sent Command.
// Unlike a goroutine/channel coroutine, a Sequence is a plain struct
// advanced by explicit Next calls driven from an integer stage field, in
// the same style as the teacher's hand-rolled retry loops (an explicit
// `for i := retries; i >= 0; i--` rather than hidden iterator state).
package sequence

import (
	"time"

	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/response"
)

// Step identifies what a Sequence is currently parked at, after a call to
// Next.
type Step int

const (
	// StepCommand means Command() holds the next frame to transmit.
	StepCommand Step = iota
	// StepSleep means Sleep() holds how long to pause before calling Next
	// again with the zero Response.
	StepSleep
	// StepProgress means Progress() holds a report to forward to an
	// observer; call Next again with the zero Response.
	StepProgress
	// StepDone means the sequence has returned; Result() holds its value
	// or error.
	StepDone
)

// Progress is a sequence's self-reported advancement, mirroring the
// teacher's percent/message-style diagnostic dumps but delivered inline
// instead of only at the end of a session.
type Progress struct {
	Message   string
	Completed int
	Size      int
}

// Sequence is a resumable DALI transaction. Implementations hold their own
// stage field and any accumulated state; RunSequence (package driver)
// drives Next in a loop, translating StepCommand into an actual bus
// transaction and feeding the Response back in.
type Sequence interface {
	// Next advances the sequence given the Response to the Command most
	// recently returned by Command(), or the zero Response when resuming
	// after a Sleep or Progress step (or on the very first call).
	Next(resp response.Response) (Step, error)

	// Command returns the Command to transmit. Valid only immediately
	// after Next returns StepCommand.
	Command() command.Command

	// Sleep returns how long to pause. Valid only after StepSleep.
	Sleep() time.Duration

	// Progress returns the current progress report. Valid only after
	// StepProgress.
	Progress() Progress

	// Result returns the sequence's return value, or an error if the
	// sequence failed. Valid only after StepDone.
	Result() (interface{}, error)

	// Close releases any sequence-scoped protocol state left open by
	// cancellation (e.g. an unterminated Initialise window), returning a
	// closing Command to send or nil if nothing is owed to the bus.
	Close() *command.Command
}
