// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport is the host-to-bus boundary every Driver talks
// through: one forward frame out, one backward frame (or its absence)
// back, translated from the teacher's "security-protocol IF-SEND/IF-RECV"
// shape (pkg/drive.DriveIntf) to "send a DALI frame / receive an
// Incoming". Concrete hardware byte-shuffling (serial/HID/USB adapters)
// is out of scope; this package ships only the interface and two
// reference adapters used for tracing and in-process testing.
package transport

import (
	"context"
	"fmt"

	"github.com/dali-iot/go-dali/frame"
)

// Discipline describes how a Transport correlates a response to the
// command that solicited it. Package driver pairs responses in FIFO order
// and accepts only DisciplineWindowed; driver.New rejects DisciplineTagged.
type Discipline int

const (
	// DisciplineWindowed is a plain DALI bus: exactly one response (or
	// silence) follows each command within its response window, so a
	// FIFO pairing is always correct.
	DisciplineWindowed Discipline = iota
	// DisciplineTagged is a transport that itself multiplexes several
	// outstanding commands and echoes back an identifying tag package
	// driver could use to match a response out of order. No shipped
	// adapter reports it, and driver.New rejects a transport that does.
	DisciplineTagged
)

// Transport is the boundary between package driver and a physical or
// simulated DALI bus.
type Transport interface {
	// Send transmits a forward frame. It returns once the frame has left
	// the host side; it does not wait for a response.
	Send(ctx context.Context, f frame.ForwardFrame) error

	// Receive blocks until a backward frame arrives, the response window
	// elapses (frame.NoBackwardFrame(), nil), or ctx is done.
	Receive(ctx context.Context) (frame.BackwardFrame, error)

	// Discipline reports how this Transport wants its responses
	// correlated to commands.
	Discipline() Discipline

	// Close releases any resources (file descriptors, goroutines) this
	// Transport owns.
	Close() error
}

// ErrClosed is returned by a closed Transport's Send/Receive.
var ErrClosed = fmt.Errorf("transport: closed")
