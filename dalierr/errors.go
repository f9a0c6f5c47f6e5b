// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dalierr collects the protocol/IO error taxonomy shared across the
// core packages, following the sentinel-error-table idiom of a status-code
// map rather than exceptions-as-control-flow.
package dalierr

import (
	"errors"
	"fmt"
)

var (
	// ErrAddressRange is returned when constructing an address with an
	// out-of-range value (group/short/instance outside its valid span).
	ErrAddressRange = errors.New("dali: address value out of range")

	// ErrIncompatibleFrame is returned when a destination cannot be
	// placed in the supplied frame width.
	ErrIncompatibleFrame = errors.New("dali: address incompatible with frame width")

	// ErrFrameValue is returned when a value does not fit the declared
	// frame/slice width.
	ErrFrameValue = errors.New("dali: value does not fit declared width")

	// ErrCommandDecode is returned when a frame does not match any
	// registered command and no generic "unknown" wrapper applies.
	ErrCommandDecode = errors.New("dali: frame did not match any registered command")

	// ErrMissingResponse is returned when a query expected a response
	// and received none, surfaced only when the caller explicitly asks
	// for an error instead of a None-valued Response.
	ErrMissingResponse = errors.New("dali: query expected a response but none arrived")

	// ErrResponseFraming is returned when a query received a
	// bus-collision framing error and the caller explicitly asked for
	// an error instead of the protocol-level interpretation.
	ErrResponseFraming = errors.New("dali: backward frame carried a framing error")

	// ErrDaliSequence is returned when a sequence received an
	// impossible response for its current state.
	ErrDaliSequence = errors.New("dali: sequence received an impossible response")

	// ErrCommunication is returned for transport-level I/O failures.
	ErrCommunication = errors.New("dali: transport communication error")

	// ErrUnsupportedFrameType is returned when a transport cannot carry
	// a frame of the requested width.
	ErrUnsupportedFrameType = errors.New("dali: transport cannot carry this frame width")

	// ErrSessionClosed is returned by driver operations attempted after
	// the driver has been closed.
	ErrSessionClosed = errors.New("dali: driver has been closed")

	// Memory-bank errors, see memorybank package.
	ErrMemoryLocationNotImplemented = errors.New("dali: memory location not implemented")
	ErrMemoryValueNotWriteable      = errors.New("dali: memory value is read-only")
	ErrMemoryWriteFailure           = errors.New("dali: memory write verification failed")
	ErrMemoryLocationNotWriteable   = errors.New("dali: memory location prohibits writes")
)

// ProgramShortAddressFailure is returned when commissioning's
// short-address verification fails for a specific address.
type ProgramShortAddressFailure struct {
	Address int
}

func (e *ProgramShortAddressFailure) Error() string {
	return fmt.Sprintf("dali: failed to verify short address %d after programming", e.Address)
}
