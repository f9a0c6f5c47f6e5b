// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"testing"

	"github.com/dali-iot/go-dali/response"
)

// runCommissioning drives c to completion, calling respond for every
// StepCommand to decide what Response to feed back in (nil is fine for
// commands whose answer the sequence ignores), and recording every command
// name issued along the way. It mirrors the loop package driver runs a
// Sequence through in production.
func runCommissioning(t *testing.T, c *Commissioning, respond func(name string) response.Response) (CommissioningResult, []string) {
	t.Helper()
	var names []string
	var resp response.Response
	for i := 0; i < 100000; i++ {
		step, err := c.Next(resp)
		if err != nil {
			t.Fatalf("Next: %v (after %d steps, names=%v)", err, i, names)
		}
		switch step {
		case StepCommand:
			name := c.Command().Def.Name
			names = append(names, name)
			resp = respond(name)
		case StepSleep, StepProgress:
			resp = nil
		case StepDone:
			res, err := c.Result()
			if err != nil {
				t.Fatalf("Result: %v", err)
			}
			return res.(CommissioningResult), names
		}
	}
	t.Fatalf("commissioning did not terminate within step budget")
	return CommissioningResult{}, names
}

// TestCommissioningSingleDeviceFound simulates a bus with exactly one gear,
// which answers Compare "yes" whenever its fixed random address 0x123456
// falls inside [lo,hi], and confirms it is assigned the first pool
// address.
func TestCommissioningSingleDeviceFound(t *testing.T) {
	const randomAddr = 0x123456
	c := NewCommissioning([]int{5}, false, false)

	res, names := runCommissioning(t, c, func(name string) response.Response {
		switch name {
		case "QueryBallast":
			return response.YesNoResponse{Yes: false}
		case "Compare":
			return response.YesNoResponse{Yes: c.lo <= randomAddr && randomAddr <= c.hi}
		case "VerifyShortAddress":
			return response.YesNoResponse{Yes: true}
		default:
			return nil
		}
	})

	var compares int
	for _, n := range names {
		if n == "Compare" {
			compares++
		}
	}
	if compares == 0 {
		t.Fatalf("expected at least one Compare, got none (names=%v)", names)
	}
	if len(res.Assigned) != 1 {
		t.Fatalf("Assigned = %+v, want exactly one entry", res.Assigned)
	}
	if res.Assigned[0].ShortAddress != 5 {
		t.Errorf("ShortAddress = %d, want 5", res.Assigned[0].ShortAddress)
	}
	if res.Assigned[0].RandomAddr != randomAddr {
		t.Errorf("RandomAddr = %#x, want %#x", res.Assigned[0].RandomAddr, uint32(randomAddr))
	}
}

func TestCommissioningNoDevicesFound(t *testing.T) {
	c := NewCommissioning(nil, false, true)

	res, names := runCommissioning(t, c, func(name string) response.Response {
		switch name {
		case "QueryBallast", "Compare":
			return response.YesNoResponse{Yes: false}
		default:
			return nil
		}
	})

	if len(res.Assigned) != 0 {
		t.Errorf("Assigned = %+v, want none", res.Assigned)
	}
	if names[0] != "QueryBallast" {
		t.Errorf("first command = %q, want QueryBallast", names[0])
	}
	if names[len(names)-1] != "Terminate" {
		t.Errorf("last command = %q, want Terminate", names[len(names)-1])
	}
}

func TestCommissioningTwoDevicesBothAssigned(t *testing.T) {
	addrs := []uint32{0x010000, 0xF00000}
	present := func(lo, hi uint32) bool {
		for _, a := range addrs {
			if lo <= a && a <= hi {
				return true
			}
		}
		return false
	}
	found := map[uint32]bool{}

	c := NewCommissioning([]int{10, 20}, false, false)
	res, _ := runCommissioning(t, c, func(name string) response.Response {
		switch name {
		case "QueryBallast":
			return response.YesNoResponse{Yes: false}
		case "Compare":
			yes := present(c.lo, c.hi) && !(c.lo == c.hi && found[c.lo])
			return response.YesNoResponse{Yes: yes}
		case "VerifyShortAddress":
			return response.YesNoResponse{Yes: true}
		case "ProgramShortAddress":
			found[c.lo] = true
			return nil
		default:
			return nil
		}
	})

	if len(res.Assigned) != 2 {
		t.Fatalf("Assigned = %+v, want two entries", res.Assigned)
	}
	gotShorts := map[int]bool{res.Assigned[0].ShortAddress: true, res.Assigned[1].ShortAddress: true}
	if !gotShorts[10] || !gotShorts[20] {
		t.Errorf("Assigned short addresses = %v, want {10,20}", gotShorts)
	}
}
