// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"time"

	"github.com/dali-iot/go-dali/busmon"
	"github.com/dali-iot/go-dali/frame"
	"github.com/dali-iot/go-dali/transport"
)

// busTap wraps a Transport and mirrors every frame crossing it into a
// busmon.Monitor, the same Monitor a passive multi-drop observer would
// feed from real bus traffic, classifying this tool's own traffic for the
// metrics exporter. Since transport.Fake answers synchronously there is no
// wall-clock gap for a real IdleTimeout to elapse in, so an absent
// backward frame is resolved immediately by ticking the Monitor's own
// deadline forward rather than waiting on it.
type busTap struct {
	next transport.Transport
	mon  *busmon.Monitor
	m    *metrics
}

func newBusTap(next transport.Transport, m *metrics) *busTap {
	return &busTap{next: next, mon: busmon.NewMonitor(), m: m}
}

func (t *busTap) Send(ctx context.Context, f frame.ForwardFrame) error {
	err := t.next.Send(ctx, f)
	if r := t.mon.ObserveForward(f, time.Now()); r != nil {
		t.m.record(r)
	}
	return err
}

func (t *busTap) Receive(ctx context.Context) (frame.BackwardFrame, error) {
	bf, err := t.next.Receive(ctx)
	if err != nil {
		return bf, err
	}
	if bf.Present {
		if r := t.mon.ObserveBackward(bf, time.Now()); r != nil {
			t.m.record(r)
		}
		return bf, nil
	}
	if deadline := t.mon.Deadline(); !deadline.IsZero() {
		if r := t.mon.Tick(deadline.Add(time.Millisecond)); r != nil {
			t.m.record(r)
		}
	}
	return bf, nil
}

func (t *busTap) Discipline() transport.Discipline { return t.next.Discipline() }

func (t *busTap) Close() error { return t.next.Close() }
