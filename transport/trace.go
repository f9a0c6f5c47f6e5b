// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"log"

	"github.com/davecgh/go-spew/spew"

	"github.com/dali-iot/go-dali/frame"
)

// Trace wraps another Transport and logs every frame that crosses it,
// one log.Printf call per frame (a summary line followed by a spew dump),
// in the teacher's cmd/tcgsdiag style
// of spew.Dump-ing protocol structures rather than raw bytes.
type Trace struct {
	Next   Transport
	Logger *log.Logger
}

// NewTrace wraps next with tracing. A nil logger defaults to log.Default().
func NewTrace(next Transport, logger *log.Logger) *Trace {
	if logger == nil {
		logger = log.Default()
	}
	return &Trace{Next: next, Logger: logger}
}

func (t *Trace) Send(ctx context.Context, f frame.ForwardFrame) error {
	err := t.Next.Send(ctx, f)
	t.Logger.Printf("-> %s\n%s", f, spew.Sdump(f))
	return err
}

func (t *Trace) Receive(ctx context.Context) (frame.BackwardFrame, error) {
	bf, err := t.Next.Receive(ctx)
	if err != nil {
		t.Logger.Printf("<- error: %v", err)
		return bf, err
	}
	if !bf.Present {
		t.Logger.Printf("<- (no response)")
	} else {
		t.Logger.Printf("<- %s\n%s", bf, spew.Sdump(bf))
	}
	return bf, err
}

func (t *Trace) Discipline() Discipline { return t.Next.Discipline() }

func (t *Trace) Close() error { return t.Next.Close() }
