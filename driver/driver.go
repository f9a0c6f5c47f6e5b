// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver is the single point every caller sends DALI traffic
// through: one Driver per bus, serializing access the way the teacher's
// Session serialized access to a TPer, and turning a Sequence's yielded
// Commands into actual transport round trips.
package driver

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/dalierr"
	"github.com/dali-iot/go-dali/response"
	"github.com/dali-iot/go-dali/sequence"
	"github.com/dali-iot/go-dali/transport"
)

// DefaultResponseTimeout is the response window IEC 62386-102 allows a
// control gear after a query: between 5.5ms and roughly 22ms depending on
// frame width, comfortably bounded above by 25ms. Set generously here
// since missing the real window is the transport's problem to report, not
// something this default needs to shave close.
const DefaultResponseTimeout = 25 * time.Millisecond

// DefaultConfigRepeatWindow is the maximum gap IEC 62386-102 §9.4 allows
// between the two transmissions of a "send twice" configuration command.
const DefaultConfigRepeatWindow = 100 * time.Millisecond

// Driver owns a Transport and serializes every command sent over it,
// since a DALI bus allows exactly one outstanding forward frame at a time
// regardless of how many goroutines want to talk to it concurrently.
// Grounded on pkg/core/session.go's Session.ExecuteMethod: acquire a lock,
// transmit, then poll for the response, except the bounded retry-count
// loop there is replaced with a context.Context deadline since a DALI
// response window is a hard real-time bound rather than a best-effort
// retry budget.
type Driver struct {
	mu sync.Mutex
	t  transport.Transport

	responseTimeout  time.Duration
	configRepeatWait time.Duration
	onProgress       func(sequence.Progress)
	logger           *log.Logger

	closed bool
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithResponseTimeout overrides DefaultResponseTimeout.
func WithResponseTimeout(d time.Duration) Option {
	return func(drv *Driver) { drv.responseTimeout = d }
}

// WithConfigRepeatWindow overrides DefaultConfigRepeatWindow.
func WithConfigRepeatWindow(d time.Duration) Option {
	return func(drv *Driver) { drv.configRepeatWait = d }
}

// WithProgress registers a callback RunSequence invokes for every
// StepProgress a Sequence yields.
func WithProgress(f func(sequence.Progress)) Option {
	return func(drv *Driver) { drv.onProgress = f }
}

// WithLogger overrides the package default of log.Default().
func WithLogger(l *log.Logger) Option {
	return func(drv *Driver) { drv.logger = l }
}

// New builds a Driver around t. It returns an error if t reports
// transport.DisciplineTagged: no shipped transport multiplexes tagged
// responses yet, so there is nothing for Driver to correlate against.
func New(t transport.Transport, opts ...Option) (*Driver, error) {
	if t.Discipline() == transport.DisciplineTagged {
		return nil, fmt.Errorf("driver: transport reports DisciplineTagged, which has no implemented pairing strategy yet")
	}
	drv := &Driver{
		t:                t,
		responseTimeout:  DefaultResponseTimeout,
		configRepeatWait: DefaultConfigRepeatWindow,
		logger:           log.Default(),
	}
	for _, o := range opts {
		o(drv)
	}
	return drv, nil
}

// Close releases the underlying Transport. Further Send/RunSequence calls
// fail with dalierr.ErrSessionClosed.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.t.Close()
}

// Send transmits cmd and, if its Def declares a response type, waits up to
// the configured response timeout for the backward frame. A command whose
// Def.DeviceType is non-zero is preceded by EnableDeviceType(DeviceType)
// on every send. Configuration
// commands (Def.SendTwice) are transmitted twice inside
// DefaultConfigRepeatWindow per IEC 62386-102 §9.4; only the second
// transmission's response (if any) is returned.
func (d *Driver) Send(ctx context.Context, cmd command.Command) (response.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sendLocked(ctx, cmd)
}

// sendLocked is Send's body; it requires d.mu to already be held, so that
// RunSequence can drive a whole sequence under a single lock acquisition
// instead of releasing the bus between steps.
func (d *Driver) sendLocked(ctx context.Context, cmd command.Command) (response.Response, error) {
	if d.closed {
		return nil, dalierr.ErrSessionClosed
	}

	if cmd.Def.DeviceType != 0 {
		edt := command.Command{Def: command.MustByName("EnableDeviceType"), Param: cmd.Def.DeviceType}
		if _, err := d.sendOnce(ctx, edt); err != nil {
			return nil, err
		}
	}

	if cmd.Def.SendTwice {
		if _, err := d.sendOnce(ctx, cmd); err != nil {
			return nil, err
		}
		select {
		case <-time.After(d.configRepeatWait / 2):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return d.sendOnce(ctx, cmd)
}

func (d *Driver) sendOnce(ctx context.Context, cmd command.Command) (response.Response, error) {
	ff, err := command.Encode(cmd)
	if err != nil {
		return nil, fmt.Errorf("driver: encoding %s: %w", cmd.Def.Name, err)
	}
	if err := d.t.Send(ctx, ff); err != nil {
		return nil, fmt.Errorf("%w: %v", dalierr.ErrCommunication, err)
	}

	if cmd.Def.ResponseType == response.TypeNone {
		return response.NoResponse{}, nil
	}

	rctx, cancel := context.WithTimeout(ctx, d.responseTimeout)
	defer cancel()
	bf, err := d.t.Receive(rctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dalierr.ErrCommunication, err)
	}
	return response.Parse(cmd.Def.ResponseType, bf, cmd.Def.ResponseNames)
}

// RunSequence drives seq to completion, holding the driver's transaction
// lock for the full run so that no concurrent Send can interleave a frame
// into a protocol window the sequence depends on staying atomic (e.g.
// between Commissioning's Randomise and its first Compare). Every
// StepCommand is sent over d, every StepSleep becomes a context-aware
// pause (still under the lock), and every StepProgress is forwarded to the
// WithProgress callback if one was registered. If ctx is canceled or a
// Send fails mid-run, seq.Close() is consulted for a cleanup frame (e.g.
// Terminate after an abandoned Initialise window) and sent best-effort
// before the error is returned.
func (d *Driver) RunSequence(ctx context.Context, seq sequence.Sequence) (interface{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var resp response.Response
	for {
		if err := ctx.Err(); err != nil {
			d.closeSequenceLocked(seq)
			return nil, err
		}

		step, err := seq.Next(resp)
		if err != nil {
			d.closeSequenceLocked(seq)
			return nil, err
		}

		switch step {
		case sequence.StepCommand:
			resp, err = d.sendLocked(ctx, seq.Command())
			if err != nil {
				d.closeSequenceLocked(seq)
				return nil, err
			}

		case sequence.StepSleep:
			select {
			case <-time.After(seq.Sleep()):
			case <-ctx.Done():
				d.closeSequenceLocked(seq)
				return nil, ctx.Err()
			}
			resp = nil

		case sequence.StepProgress:
			if d.onProgress != nil {
				d.onProgress(seq.Progress())
			}
			resp = nil

		case sequence.StepDone:
			return seq.Result()

		default:
			d.closeSequenceLocked(seq)
			return nil, fmt.Errorf("driver: sequence yielded unknown step %d", step)
		}
	}
}

// closeSequenceLocked sends seq's cleanup command, if any, swallowing any
// error beyond a log line: the caller is already unwinding on a more
// important error, and an unterminated Initialise window is a minor
// blemish next to a failed run, not a reason to mask the original
// failure. Requires d.mu to already be held.
func (d *Driver) closeSequenceLocked(seq sequence.Sequence) {
	cmd := seq.Close()
	if cmd == nil {
		return
	}
	cctx, cancel := context.WithTimeout(context.Background(), d.responseTimeout)
	defer cancel()
	if _, err := d.sendLocked(cctx, *cmd); err != nil {
		d.logger.Printf("driver: cleanup command %s failed: %v", cmd.Def.Name, err)
	}
}
