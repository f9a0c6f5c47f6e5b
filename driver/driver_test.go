// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/response"
	"github.com/dali-iot/go-dali/sequence"
	"github.com/dali-iot/go-dali/transport"
)

func TestNewRejectsTaggedDiscipline(t *testing.T) {
	_, err := New(taggedFake{})
	require.Error(t, err)
}

type taggedFake struct{ *transport.Fake }

func (taggedFake) Discipline() transport.Discipline { return transport.DisciplineTagged }

func TestDriverSendQuery(t *testing.T) {
	fake := transport.NewFake(1, transport.WithShortAddress(0, 5))
	drv, err := New(fake)
	require.NoError(t, err)
	defer drv.Close()

	short, err := address.NewGearShort(5)
	require.NoError(t, err)

	resp, err := drv.Send(context.Background(), command.Command{
		Def: command.MustByName("QueryBallast"), Dest: short,
	})
	require.NoError(t, err)
	yn, ok := resp.(response.YesNoResponse)
	require.True(t, ok)
	require.True(t, yn.Yes)
}

func TestDriverSendAfterCloseFails(t *testing.T) {
	fake := transport.NewFake(1)
	drv, err := New(fake)
	require.NoError(t, err)
	require.NoError(t, drv.Close())

	_, err = drv.Send(context.Background(), command.Command{Def: command.MustByName("Terminate")})
	require.Error(t, err)
}

func TestDriverRunSequenceCommissioning(t *testing.T) {
	fake := transport.NewFake(3)
	var progressed []string
	drv, err := New(fake, WithProgress(func(p sequence.Progress) {
		progressed = append(progressed, p.Message)
	}))
	require.NoError(t, err)
	defer drv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seq := sequence.NewCommissioning(nil, false, false)
	result, err := drv.RunSequence(ctx, seq)
	require.NoError(t, err)

	commissioned := result.(sequence.CommissioningResult)
	require.Len(t, commissioned.Assigned, 3)
	require.NotEmpty(t, progressed)

	seen := map[int]bool{}
	for i := 0; i < 3; i++ {
		addr := fake.ShortAddressOf(i)
		require.NotNil(t, addr)
		seen[*addr] = true
	}
	require.Len(t, seen, 3)
}

// sleepSequence yields a single StepSleep of d, then finishes. Used to
// give RunSequence an in-flight window to hold the lock over.
type sleepSequence struct {
	d    time.Duration
	done bool
}

func (s *sleepSequence) Next(response.Response) (sequence.Step, error) {
	if s.done {
		return sequence.StepDone, nil
	}
	s.done = true
	return sequence.StepSleep, nil
}
func (s *sleepSequence) Command() command.Command { return command.Command{} }
func (s *sleepSequence) Sleep() time.Duration      { return s.d }
func (s *sleepSequence) Progress() sequence.Progress { return sequence.Progress{} }
func (s *sleepSequence) Result() (interface{}, error) { return nil, nil }
func (s *sleepSequence) Close() *command.Command      { return nil }

func TestRunSequenceHoldsLockForFullRun(t *testing.T) {
	fake := transport.NewFake(1)
	drv, err := New(fake)
	require.NoError(t, err)
	defer drv.Close()

	done := make(chan time.Time, 1)
	go func() {
		_, _ = drv.RunSequence(context.Background(), &sleepSequence{d: 100 * time.Millisecond})
		done <- time.Now()
	}()

	time.Sleep(20 * time.Millisecond) // let RunSequence acquire the lock first

	before := time.Now()
	_, err = drv.Send(context.Background(), command.Command{Def: command.MustByName("Terminate")})
	require.NoError(t, err)
	sendReturned := time.Now()

	seqDone := <-done
	require.False(t, sendReturned.Before(seqDone),
		"Send returned at %v before RunSequence released the lock at %v (before=%v); concurrent Send interleaved mid-sequence",
		sendReturned, seqDone, before)
}

func TestDriverRunSequenceCancellation(t *testing.T) {
	fake := transport.NewFake(3)
	drv, err := New(fake)
	require.NoError(t, err)
	defer drv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq := sequence.NewCommissioning(nil, false, false)
	_, err = drv.RunSequence(ctx, seq)
	require.Error(t, err)
}
