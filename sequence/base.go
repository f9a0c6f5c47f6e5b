// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"time"

	"github.com/dali-iot/go-dali/command"
)

// base holds the yield slot every concrete Sequence shares: whichever of
// cmd/sleep/progress/result is valid for the Step most recently returned by
// Next. Concrete sequences embed base and set these fields from their own
// stage-driven Next implementation instead of duplicating the accessors.
type base struct {
	cmd      command.Command
	sleep    time.Duration
	progress Progress
	result   interface{}
	err      error
}

func (b *base) Command() command.Command { return b.cmd }
func (b *base) Sleep() time.Duration     { return b.sleep }
func (b *base) Progress() Progress       { return b.progress }
func (b *base) Result() (interface{}, error) { return b.result, b.err }

// Close is the no-op default: most sequences hold no protocol-level state
// across a cancellation. Sequences that do (Commissioning's Initialise
// window) override it.
func (b *base) Close() *command.Command { return nil }

func (b *base) yieldCommand(c command.Command) Step {
	b.cmd = c
	return StepCommand
}

func (b *base) yieldSleep(d time.Duration) Step {
	b.sleep = d
	return StepSleep
}

func (b *base) yieldProgress(p Progress) Step {
	b.progress = p
	return StepProgress
}

func (b *base) done(result interface{}, err error) (Step, error) {
	b.result = result
	b.err = err
	return StepDone, err
}
