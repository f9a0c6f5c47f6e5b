// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package response

import (
	"testing"

	"github.com/dali-iot/go-dali/frame"
)

func TestNumericResponseAbsent(t *testing.T) {
	r := parseNumeric(frame.NoBackwardFrame(), false)
	if r.Value != nil {
		t.Errorf("expected nil value for absent backward frame, got %v", *r.Value)
	}
}

func TestNumericResponseMaskUnknown(t *testing.T) {
	r := parseNumeric(frame.NewBackward(0xFF), true)
	if !r.IsUnknown() {
		t.Error("expected MASK variant 0xFF to report unknown")
	}
	r2 := parseNumeric(frame.NewBackward(0xFF), false)
	if r2.IsUnknown() {
		t.Error("non-mask variant should never report unknown")
	}
}

func TestYesNoResponseFramingIsYes(t *testing.T) {
	r := parseYesNo(frame.NewBackwardError())
	if !r.Yes || !r.IsFramingError() {
		t.Errorf("framing error on a YesNo query must be Yes: got %+v", r)
	}
}

func TestYesNoResponseAbsentIsNo(t *testing.T) {
	r := parseYesNo(frame.NoBackwardFrame())
	if r.Yes {
		t.Error("absent backward frame should be No")
	}
}

func TestBitmapResponseStatus(t *testing.T) {
	names := []string{"inputDeviceError", "missingShortAddress", "reserved", "lampFailure"}
	r := parseBitmap(frame.NewBackward(0b1001), names)
	got := r.Status()
	want := []string{"inputDeviceError", "lampFailure"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Status() = %v, want %v", got, want)
	}
}

func TestEnumResponseUnknownSentinel(t *testing.T) {
	names := []string{"off", "on"}
	r := parseEnum(frame.NewBackward(5), names)
	if !r.Unknown || r.Name != enumErrorSentinel {
		t.Errorf("expected unknown enum sentinel for out-of-range value, got %+v", r)
	}
}

func TestEnumResponseKnown(t *testing.T) {
	names := []string{"off", "on"}
	r := parseEnum(frame.NewBackward(1), names)
	if r.Unknown || r.Name != "on" {
		t.Errorf("expected 'on', got %+v", r)
	}
}
