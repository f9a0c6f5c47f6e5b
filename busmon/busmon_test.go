// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package busmon

import (
	"testing"
	"time"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/frame"
)

func mustEncode(t *testing.T, cmd command.Command) frame.ForwardFrame {
	t.Helper()
	f, err := command.Encode(cmd)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return f
}

func gearShort(t *testing.T, a int) address.Address {
	t.Helper()
	addr, err := address.NewGearShort(a)
	if err != nil {
		t.Fatalf("NewGearShort: %v", err)
	}
	return addr
}

func TestTrafficReportedImmediately(t *testing.T) {
	m := NewMonitor()
	now := time.Unix(0, 0)
	f := mustEncode(t, command.NewArcPower(gearShort(t, 1), 120))

	r := m.ObserveForward(f, now)
	if r == nil || r.Kind != KindTraffic {
		t.Fatalf("expected immediate KindTraffic, got %v", r)
	}
	if !m.Deadline().IsZero() {
		t.Fatalf("expected no pending deadline after plain traffic")
	}
}

func TestConfigCommandConfirmedByRepeat(t *testing.T) {
	m := NewMonitor()
	now := time.Unix(0, 0)
	dest := gearShort(t, 1)
	f := mustEncode(t, command.Command{Def: command.MustByName("AddToGroup"), Dest: dest, Param: 3})

	if r := m.ObserveForward(f, now); r != nil {
		t.Fatalf("expected no report while awaiting repeat, got %v", r)
	}
	if m.Deadline().IsZero() {
		t.Fatalf("expected a pending deadline while awaiting repeat")
	}

	r := m.ObserveForward(f, now.Add(50*time.Millisecond))
	if r == nil || r.Kind != KindConfigOK {
		t.Fatalf("expected KindConfigOK on an identical repeat, got %v", r)
	}
}

func TestConfigCommandFailsOnDifferentFrame(t *testing.T) {
	m := NewMonitor()
	now := time.Unix(0, 0)
	dest := gearShort(t, 1)
	f := mustEncode(t, command.Command{Def: command.MustByName("AddToGroup"), Dest: dest, Param: 3})
	other := mustEncode(t, command.NewArcPower(dest, 50))

	m.ObserveForward(f, now)
	r := m.ObserveForward(other, now.Add(10*time.Millisecond))
	if r == nil || r.Kind != KindConfigFailed {
		t.Fatalf("expected KindConfigFailed when a different frame interrupts, got %v", r)
	}
}

func TestConfigCommandFailsOnBackwardFrame(t *testing.T) {
	m := NewMonitor()
	now := time.Unix(0, 0)
	dest := gearShort(t, 1)
	f := mustEncode(t, command.Command{Def: command.MustByName("AddToGroup"), Dest: dest, Param: 3})

	m.ObserveForward(f, now)
	r := m.ObserveBackward(frame.NewBackward(0xFF), now.Add(10*time.Millisecond))
	if r == nil || r.Kind != KindConfigFailed {
		t.Fatalf("expected KindConfigFailed on a stray backward frame, got %v", r)
	}
}

func TestConfigCommandTimesOut(t *testing.T) {
	m := NewMonitor()
	now := time.Unix(0, 0)
	dest := gearShort(t, 1)
	f := mustEncode(t, command.Command{Def: command.MustByName("AddToGroup"), Dest: dest, Param: 3})

	m.ObserveForward(f, now)
	if r := m.Tick(now.Add(100 * time.Millisecond)); r != nil {
		t.Fatalf("expected no report before deadline, got %v", r)
	}
	r := m.Tick(now.Add(IdleTimeout + time.Millisecond))
	if r == nil || r.Kind != KindConfigFailed {
		t.Fatalf("expected KindConfigFailed on timeout, got %v", r)
	}
}

func TestQueryPairedWithBackwardFrame(t *testing.T) {
	m := NewMonitor()
	now := time.Unix(0, 0)
	dest := gearShort(t, 1)
	f := mustEncode(t, command.Command{Def: command.MustByName("QueryActualLevel"), Dest: dest})

	if r := m.ObserveForward(f, now); r != nil {
		t.Fatalf("expected no report while awaiting response, got %v", r)
	}
	r := m.ObserveBackward(frame.NewBackward(200), now.Add(5*time.Millisecond))
	if r == nil || r.Kind != KindQueryResponse {
		t.Fatalf("expected KindQueryResponse, got %v", r)
	}
}

func TestQueryReportsNoOnTimeoutOrInterruption(t *testing.T) {
	dest := gearShort(t, 1)
	q := mustEncode(t, command.Command{Def: command.MustByName("QueryActualLevel"), Dest: dest})

	t.Run("timeout", func(t *testing.T) {
		m := NewMonitor()
		now := time.Unix(0, 0)
		m.ObserveForward(q, now)
		r := m.Tick(now.Add(IdleTimeout + time.Millisecond))
		if r == nil || r.Kind != KindQueryNo {
			t.Fatalf("expected KindQueryNo on timeout, got %v", r)
		}
	})

	t.Run("interrupted by another forward frame", func(t *testing.T) {
		m := NewMonitor()
		now := time.Unix(0, 0)
		m.ObserveForward(q, now)
		other := mustEncode(t, command.NewArcPower(dest, 10))
		r := m.ObserveForward(other, now.Add(5*time.Millisecond))
		if r == nil || r.Kind != KindQueryNo {
			t.Fatalf("expected KindQueryNo when interrupted, got %v", r)
		}
	})
}

func TestEnableDeviceTypeLatchAppliesToNextFrameOnly(t *testing.T) {
	m := NewMonitor()
	now := time.Unix(0, 0)

	enable := mustEncode(t, command.Command{Def: command.MustByName("EnableDeviceType"), Param: 6})
	r := m.ObserveForward(enable, now)
	if r == nil || r.Kind != KindTraffic || r.Command.Def.Name != "EnableDeviceType" {
		t.Fatalf("expected EnableDeviceType itself reported as traffic, got %v", r)
	}
	if m.lastEnableDeviceType != 6 {
		t.Fatalf("expected the latch set to 6, got %d", m.lastEnableDeviceType)
	}

	plain := mustEncode(t, command.NewArcPower(gearShort(t, 1), 10))
	m.ObserveForward(plain, now.Add(time.Millisecond))
	if m.lastEnableDeviceType != 0 {
		t.Fatalf("expected the latch cleared after the next command, got %d", m.lastEnableDeviceType)
	}
}
