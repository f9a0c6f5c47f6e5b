// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"testing"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/response"
)

func mustU8(v uint8) *uint8 { return &v }

func TestQueryDeviceTypesSingle(t *testing.T) {
	dest := mustGearShortT(t, 3)
	q := NewQueryDeviceTypes(dest)

	step, err := q.Next(response.NoResponse{})
	if err != nil || step != StepCommand || q.Command().Def.Name != "QueryDeviceType" {
		t.Fatalf("stage 1: step=%v err=%v cmd=%+v", step, err, q.Command())
	}

	step, err = q.Next(response.EnumResponse{Value: 8, Name: "DT8"})
	if err != nil || step != StepDone {
		t.Fatalf("stage 2: step=%v err=%v", step, err)
	}
	types, err := q.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	got := types.([]int)
	if len(got) != 1 || got[0] != 8 {
		t.Errorf("types = %v, want [8]", got)
	}
}

func TestQueryDeviceTypesMultiple(t *testing.T) {
	dest := mustGearShortT(t, 3)
	q := NewQueryDeviceTypes(dest)

	if _, err := q.Next(response.NoResponse{}); err != nil {
		t.Fatalf("first Next: %v", err)
	}
	// 255 means "multiple device types": walk with QueryNextDeviceType.
	step, err := q.Next(response.EnumResponse{Value: 255})
	if err != nil || step != StepCommand || q.Command().Def.Name != "QueryNextDeviceType" {
		t.Fatalf("walk step: step=%v err=%v cmd=%+v", step, err, q.Command())
	}
	step, err = q.Next(response.EnumResponse{Value: 254})
	if err != nil || step != StepDone {
		t.Fatalf("terminator step: step=%v err=%v", step, err)
	}
}

func TestQueryDeviceTypesUnknownErrors(t *testing.T) {
	dest := mustGearShortT(t, 3)
	q := NewQueryDeviceTypes(dest)
	if _, err := q.Next(response.NoResponse{}); err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if _, err := q.Next(response.EnumResponse{Unknown: true}); err == nil {
		t.Errorf("expected error on unknown device type response")
	}
}

func TestSetDTR0Sequence(t *testing.T) {
	s := NewSetDTR0Sequence(0x42)
	step, err := s.Next(response.NoResponse{})
	if err != nil || step != StepCommand {
		t.Fatalf("step=%v err=%v", step, err)
	}
	cmd := s.Command()
	if cmd.Def.Name != "SetDTR0" || cmd.Param != 0x42 {
		t.Errorf("cmd = %+v, want SetDTR0(0x42)", cmd)
	}
	step, err = s.Next(response.NoResponse{})
	if err != nil || step != StepDone {
		t.Fatalf("second step=%v err=%v, want StepDone", step, err)
	}
}

func TestPingReportsPresentAddresses(t *testing.T) {
	p := NewPing([]int{0, 1, 2})

	step, err := p.Next(nil)
	if err != nil || step != StepCommand {
		t.Fatalf("step 0: step=%v err=%v", step, err)
	}
	step, err = p.Next(response.YesNoResponse{Yes: true}) // addr 0 present
	if err != nil || step != StepCommand {
		t.Fatalf("step 1: step=%v err=%v", step, err)
	}
	step, err = p.Next(response.YesNoResponse{Yes: false}) // addr 1 absent
	if err != nil || step != StepCommand {
		t.Fatalf("step 2: step=%v err=%v", step, err)
	}
	step, err = p.Next(response.YesNoResponse{Yes: true}) // addr 2 present
	if err != nil || step != StepDone {
		t.Fatalf("final step: step=%v err=%v", step, err)
	}
	res, err := p.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	present := res.([]int)
	if len(present) != 2 || present[0] != 0 || present[1] != 2 {
		t.Errorf("present = %v, want [0 2]", present)
	}
}

func TestQueryInputValueEightBit(t *testing.T) {
	dev, err := address.NewDeviceShort(1)
	if err != nil {
		t.Fatalf("NewDeviceShort: %v", err)
	}
	inst, err := address.NewInstanceNumber(0)
	if err != nil {
		t.Fatalf("NewInstanceNumber: %v", err)
	}
	q := NewQueryInputValue(dev, inst, 8)

	step, err := q.Next(nil)
	if err != nil || step != StepCommand || q.Command().Def.Name != "QueryInputValue" {
		t.Fatalf("step=%v err=%v cmd=%+v", step, err, q.Command())
	}
	step, err = q.Next(response.NumericResponse{Value: mustU8(0x37)})
	if err != nil || step != StepDone {
		t.Fatalf("final step=%v err=%v", step, err)
	}
	v, err := q.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if v.(int) != 0x37 {
		t.Errorf("value = %#x, want 0x37", v)
	}
}

func TestQueryInputValueSixteenBitQueriesResolutionFirst(t *testing.T) {
	dev, err := address.NewDeviceShort(1)
	if err != nil {
		t.Fatalf("NewDeviceShort: %v", err)
	}
	inst, err := address.NewInstanceNumber(0)
	if err != nil {
		t.Fatalf("NewInstanceNumber: %v", err)
	}
	q := NewQueryInputValue(dev, inst, 0)

	step, err := q.Next(nil)
	if err != nil || step != StepCommand || q.Command().Def.Name != "QueryResolution" {
		t.Fatalf("step=%v err=%v cmd=%+v", step, err, q.Command())
	}
	step, err = q.Next(response.NumericResponse{Value: mustU8(16)})
	if err != nil || step != StepCommand || q.Command().Def.Name != "QueryInputValue" {
		t.Fatalf("resolution step=%v err=%v cmd=%+v", step, err, q.Command())
	}
	step, err = q.Next(response.NumericResponse{Value: mustU8(0x12)}) // high byte
	if err != nil || step != StepCommand || q.Command().Def.Name != "QueryInputValueLatch" {
		t.Fatalf("value step=%v err=%v cmd=%+v", step, err, q.Command())
	}
	step, err = q.Next(response.NumericResponse{Value: mustU8(0x34)}) // low byte
	if err != nil || step != StepDone {
		t.Fatalf("latch step=%v err=%v", step, err)
	}
	v, err := q.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if v.(int) != 0x1234 {
		t.Errorf("value = %#x, want 0x1234", v)
	}
}

func mustGearShortT(t *testing.T, a int) address.Address {
	t.Helper()
	g, err := address.NewGearShort(a)
	if err != nil {
		t.Fatalf("NewGearShort(%d): %v", a, err)
	}
	return g
}
