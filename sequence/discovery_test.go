// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"testing"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/response"
)

func addressDeviceShort(t *testing.T, a int) (address.DeviceShort, error) {
	t.Helper()
	d, err := address.NewDeviceShort(a)
	if err != nil {
		t.Fatalf("NewDeviceShort(%d): %v", a, err)
	}
	return d, err
}

func addressInstanceNumber(t *testing.T, n int) (address.InstanceNumber, error) {
	t.Helper()
	i, err := address.NewInstanceNumber(n)
	if err != nil {
		t.Fatalf("NewInstanceNumber(%d): %v", n, err)
	}
	return i, err
}

// runDiscovery drives d to completion the same way package driver would,
// answering every StepCommand from a name-keyed responder.
func runDiscovery(t *testing.T, d *DeviceInstanceDiscovery, respond func(name string) response.Response) DiscoveryResult {
	t.Helper()
	var resp response.Response
	for i := 0; i < 100000; i++ {
		step, err := d.Next(resp)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		switch step {
		case StepCommand:
			resp = respond(d.Command().Def.Name)
		case StepSleep, StepProgress:
			resp = nil
		case StepDone:
			res, err := d.Result()
			if err != nil {
				t.Fatalf("Result: %v", err)
			}
			return res.(DiscoveryResult)
		}
	}
	t.Fatalf("discovery did not terminate within step budget")
	return DiscoveryResult{}
}

func TestDeviceInstanceDiscoveryOneDeviceTwoInstances(t *testing.T) {
	d := NewDeviceInstanceDiscovery([]int{7})

	res := runDiscovery(t, d, func(name string) response.Response {
		switch name {
		case "StartQuiescentMode", "StopQuiescentMode":
			return nil
		case "QueryDeviceStatus":
			return response.BitmapResponse{Bits: [8]bool{}}
		case "QueryNumberOfInstances":
			return response.NumericResponse{Value: mustU8(2)}
		case "QueryInstanceEnabled":
			return response.YesNoResponse{Yes: true}
		case "QueryInstanceType":
			return response.NumericResponse{Value: mustU8(3)}
		}
		return nil
	})

	if len(res.Found) != 2 {
		t.Fatalf("Found = %+v, want 2 entries", res.Found)
	}
	for i, e := range res.Found {
		if e.ShortAddr != 7 || e.Instance != uint8(i) || e.Type != 3 {
			t.Errorf("Found[%d] = %+v, want {ShortAddr:7 Instance:%d Type:3}", i, e, i)
		}
	}
}

func TestDeviceInstanceDiscoverySkipsErroredDevice(t *testing.T) {
	d := NewDeviceInstanceDiscovery([]int{1, 2})

	res := runDiscovery(t, d, func(name string) response.Response {
		switch name {
		case "QueryDeviceStatus":
			bits := [8]bool{}
			bits[statusBitInputDeviceError] = true
			return response.BitmapResponse{Bits: bits}
		case "QueryNumberOfInstances":
			return response.NumericResponse{Value: mustU8(0)}
		}
		return nil
	})

	if len(res.Found) != 0 {
		t.Errorf("Found = %+v, want none (every device errored or instance-less)", res.Found)
	}
}

func TestSetEventSchemesRoundTrip(t *testing.T) {
	dev, _ := addressDeviceShort(t, 1)
	inst, _ := addressInstanceNumber(t, 0)
	s := NewSetEventSchemes(dev, inst, 2)

	step, err := s.Next(nil)
	if err != nil || step != StepCommand || s.Command().Def.Name != "SetDTR0" || s.Command().Param != 2 {
		t.Fatalf("stage1: step=%v err=%v cmd=%+v", step, err, s.Command())
	}
	step, err = s.Next(nil)
	if err != nil || step != StepCommand || s.Command().Def.Name != "SetEventScheme" {
		t.Fatalf("stage2: step=%v err=%v cmd=%+v", step, err, s.Command())
	}
	step, err = s.Next(nil)
	if err != nil || step != StepCommand || s.Command().Def.Name != "QueryEventScheme" {
		t.Fatalf("stage3: step=%v err=%v cmd=%+v", step, err, s.Command())
	}
	step, err = s.Next(response.EnumResponse{Value: 2, Name: "deviceInstance"})
	if err != nil || step != StepDone {
		t.Fatalf("stage4: step=%v err=%v", step, err)
	}
}

func TestSetEventFiltersSixteenBit(t *testing.T) {
	dev, _ := addressDeviceShort(t, 1)
	inst, _ := addressInstanceNumber(t, 0)
	f := NewSetEventFilters(dev, inst, 0x1234, 16)

	step, err := f.Next(nil)
	if err != nil || step != StepCommand || f.Command().Def.Name != "SetDTR0" || f.Command().Param != 0x34 {
		t.Fatalf("dtr0: step=%v err=%v cmd=%+v", step, err, f.Command())
	}
	step, err = f.Next(nil)
	if err != nil || step != StepCommand || f.Command().Def.Name != "SetDTR1" || f.Command().Param != 0x12 {
		t.Fatalf("dtr1: step=%v err=%v cmd=%+v", step, err, f.Command())
	}
	step, err = f.Next(nil)
	if err != nil || step != StepCommand || f.Command().Def.Name != "SetEventFilter" {
		t.Fatalf("setfilter: step=%v err=%v cmd=%+v", step, err, f.Command())
	}
	step, err = f.Next(nil)
	if err != nil || step != StepCommand || f.Command().Def.Name != "QueryEventFilterZeroToSeven" {
		t.Fatalf("querylo: step=%v err=%v cmd=%+v", step, err, f.Command())
	}
	step, err = f.Next(response.NumericResponse{Value: mustU8(0x34)})
	if err != nil || step != StepCommand || f.Command().Def.Name != "QueryEventFilterEightToFifteen" {
		t.Fatalf("querymid: step=%v err=%v cmd=%+v", step, err, f.Command())
	}
	step, err = f.Next(response.NumericResponse{Value: mustU8(0x12)})
	if err != nil || step != StepDone {
		t.Fatalf("final: step=%v err=%v", step, err)
	}
	res, err := f.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if v := res.(uint32); v != 0x1234 {
		t.Errorf("value = %#x, want 0x1234", v)
	}
}

func TestSetDT8ColourValueTcSendsDTRPairThenActivates(t *testing.T) {
	dest := mustGearShortT(t, 9)
	s := NewSetDT8ColourValueTc(dest, 0x01F4)

	step, err := s.Next(nil)
	if err != nil || step != StepCommand || s.Command().Def.Name != "SetDTR0" || s.Command().Param != 0xF4 {
		t.Fatalf("dtr0: step=%v err=%v cmd=%+v", step, err, s.Command())
	}
	step, err = s.Next(nil)
	if err != nil || step != StepCommand || s.Command().Def.Name != "SetDTR1" || s.Command().Param != 0x01 {
		t.Fatalf("dtr1: step=%v err=%v cmd=%+v", step, err, s.Command())
	}
	step, err = s.Next(nil)
	if err != nil || step != StepCommand || s.Command().Def.Name != "SetTemporaryColourTemperature" {
		t.Fatalf("settemp: step=%v err=%v cmd=%+v", step, err, s.Command())
	}
	step, err = s.Next(nil)
	if err != nil || step != StepCommand || s.Command().Def.Name != "Activate" {
		t.Fatalf("activate: step=%v err=%v cmd=%+v", step, err, s.Command())
	}
	step, err = s.Next(nil)
	if err != nil || step != StepDone {
		t.Fatalf("final: step=%v err=%v", step, err)
	}
}
