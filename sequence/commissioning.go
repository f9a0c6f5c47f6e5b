// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"fmt"
	"time"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/dalierr"
	"github.com/dali-iot/go-dali/response"
)

// Assigned records one short address programmed by a Commissioning run.
type Assigned struct {
	ShortAddress int
	RandomAddr   uint32
}

// CommissioningResult is Commissioning's return value.
type CommissioningResult struct {
	Assigned []Assigned
}

var (
	defTerminate           = command.MustByName("Terminate")
	defInitialise          = command.MustByName("Initialise")
	defRandomise           = command.MustByName("Randomise")
	defCompare             = command.MustByName("Compare")
	defWithdraw            = command.MustByName("Withdraw")
	defSetSearchAddrH      = command.MustByName("SetSearchAddrH")
	defSetSearchAddrM      = command.MustByName("SetSearchAddrM")
	defSetSearchAddrL      = command.MustByName("SetSearchAddrL")
	defProgramShortAddress = command.MustByName("ProgramShortAddress")
	defVerifyShortAddress  = command.MustByName("VerifyShortAddress")
	defQueryBallast        = command.MustByName("QueryBallast")
	defSetDTR0             = command.MustByName("SetDTR0")
	defStoreDTRAsShortAddr = command.MustByName("StoreDTRAsShortAddress")
)

type searchFrame struct{ lo, hi uint32 }

// Commissioning implements the random-address enumeration algorithm of
// IEC 62386-102 §9.4: probe for in-use addresses, then binary-search the
// 24-bit random-address space one device at a time, programming and
// withdrawing each as it is found. Modeled as an explicit stage machine
// rather than recursion, since the original's depth-first binary search
// recurses into the lower half before the upper: a stack of pending
// [lo,hi) ranges reproduces that order, abandoned wholesale the moment a
// device (or a collision) is found, exactly as the recursive form returns
// immediately up every parent frame.
type Commissioning struct {
	base

	pool      []int
	readdress bool
	dryRun    bool

	stage      int
	probeIdx   int
	stack      []searchFrame
	lo, hi     uint32
	subStage   int // 0=H,1=M,2=L,3=awaiting compare
	newAddr       int
	verifyPending bool
	assigned      []Assigned
}

const (
	stgProbeLoop = iota
	stgProbeReportAvailable
	stgReaddressClearDTR
	stgReaddressClearSet
	stgTerminate1
	stgInitialise
	stgRandomise
	stgRandomiseSleep
	stgSearch
	stgProgram
	stgVerify
	stgWithdraw
	stgRestartRandomise
	stgTerminateFinal
	stgDone
)

// NewCommissioning builds a Commissioning sequence. pool is the set of
// short addresses eligible for assignment (nil means all of 0..63);
// readdress clears every existing short address first; dryRun runs the
// full discovery/binary-search dance without ever issuing
// ProgramShortAddress.
func NewCommissioning(pool []int, readdress, dryRun bool) *Commissioning {
	if pool == nil {
		pool = make([]int, 64)
		for i := range pool {
			pool[i] = i
		}
	} else {
		pool = append([]int(nil), pool...)
	}
	c := &Commissioning{pool: pool, readdress: readdress, dryRun: dryRun}
	if readdress {
		c.stage = stgReaddressClearDTR
	} else {
		c.stage = stgProbeLoop
	}
	return c
}

// Close sends Terminate if cancellation happened while an Initialise
// window was open on the bus, so a later commissioning attempt does not
// find gear still armed from this one.
func (c *Commissioning) Close() *command.Command {
	if c.stage > stgInitialise && c.stage < stgDone {
		return &command.Command{Def: defTerminate}
	}
	return nil
}

func (c *Commissioning) removeFromPool(a int) {
	for i, v := range c.pool {
		if v == a {
			c.pool = append(c.pool[:i], c.pool[i+1:]...)
			return
		}
	}
}

func (c *Commissioning) popPool() (int, bool) {
	if len(c.pool) == 0 {
		return 0, false
	}
	a := c.pool[0]
	c.pool = c.pool[1:]
	return a, true
}

// pushFrame starts a fresh binary search range as the only entry on the
// stack, discarding anything still pending: the recursive original returns
// all the way to the top on success, so its caller never revisits an
// unexplored sibling either.
func (c *Commissioning) pushFrame(lo, hi uint32) {
	c.stack = []searchFrame{{lo, hi}}
	c.popFrame()
}

func (c *Commissioning) popFrame() bool {
	if len(c.stack) == 0 {
		return false
	}
	f := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.lo, c.hi = f.lo, f.hi
	c.subStage = 0
	return true
}

func (c *Commissioning) Next(resp response.Response) (Step, error) {
	switch c.stage {

	case stgProbeLoop:
		if c.probeIdx > 0 {
			if yn, ok := resp.(response.YesNoResponse); ok && yn.Yes {
				c.removeFromPool(c.probeIdx - 1)
			}
		}
		if c.probeIdx >= 64 {
			c.stage = stgProbeReportAvailable
			return c.Next(nil)
		}
		short, _ := address.NewGearShort(c.probeIdx)
		c.probeIdx++
		return c.yieldCommand(command.Command{Def: defQueryBallast, Dest: short}), nil

	case stgProbeReportAvailable:
		c.stage = stgTerminate1
		return c.yieldProgress(Progress{Message: fmt.Sprintf("available addresses: %v", c.pool)}), nil

	case stgReaddressClearDTR:
		c.stage = stgReaddressClearSet
		if c.dryRun {
			c.stage = stgTerminate1
			return c.yieldProgress(Progress{Message: "dry run: not clearing existing short addresses"}), nil
		}
		return c.yieldCommand(command.Command{Def: defSetDTR0, Param: 0xFF}), nil

	case stgReaddressClearSet:
		c.stage = stgTerminate1
		return c.yieldCommand(command.Command{Def: defStoreDTRAsShortAddr, Dest: address.GearBroadcast{}}), nil

	case stgTerminate1:
		c.stage = stgInitialise
		return c.yieldCommand(command.Command{Def: defTerminate}), nil

	case stgInitialise:
		c.stage = stgRandomise
		param := 0x7F
		if c.readdress {
			param = 0xFF
		}
		return c.yieldCommand(command.Command{Def: defInitialise, Param: param}), nil

	case stgRandomise, stgRestartRandomise:
		c.stage = stgRandomiseSleep
		return c.yieldCommand(command.Command{Def: defRandomise}), nil

	case stgRandomiseSleep:
		c.pushFrame(0, 0xFFFFFF)
		c.stage = stgSearch
		return c.yieldSleep(100 * time.Millisecond), nil

	case stgSearch:
		return c.nextSearch(resp)

	case stgProgram:
		if c.dryRun {
			c.stage = stgWithdraw
			return c.yieldProgress(Progress{Message: fmt.Sprintf("dry run: not programming short address %d", c.newAddr)}), nil
		}
		c.stage = stgVerify
		return c.yieldCommand(command.Command{Def: defProgramShortAddress, Param: c.newAddr}), nil

	case stgVerify:
		c.verifyPending = true
		c.stage = stgWithdraw
		return c.yieldCommand(command.Command{Def: defVerifyShortAddress, Param: c.newAddr}), nil

	case stgWithdraw:
		if c.verifyPending {
			c.verifyPending = false
			if yn, ok := resp.(response.YesNoResponse); !ok || !yn.Yes {
				return c.done(nil, &dalierr.ProgramShortAddressFailure{Address: c.newAddr})
			}
			c.assigned = append(c.assigned, Assigned{ShortAddress: c.newAddr, RandomAddr: c.lo})
		}
		if c.lo >= 0xFFFFFF {
			c.stage = stgTerminateFinal
			return c.yieldCommand(command.Command{Def: defWithdraw}), nil
		}
		c.pushFrame(c.lo+1, 0xFFFFFF)
		c.stage = stgSearch
		return c.yieldCommand(command.Command{Def: defWithdraw}), nil

	case stgTerminateFinal:
		c.stage = stgDone
		return c.yieldCommand(command.Command{Def: defTerminate}), nil

	case stgDone:
		return c.done(CommissioningResult{Assigned: c.assigned}, nil)
	}
	return c.done(nil, fmt.Errorf("sequence: commissioning: unreachable stage %d", c.stage))
}

func (c *Commissioning) nextSearch(resp response.Response) (Step, error) {
	switch c.subStage {
	case 0:
		c.subStage = 1
		return c.yieldCommand(command.Command{Def: defSetSearchAddrH, Param: int((c.hi >> 16) & 0xFF)}), nil
	case 1:
		c.subStage = 2
		return c.yieldCommand(command.Command{Def: defSetSearchAddrM, Param: int((c.hi >> 8) & 0xFF)}), nil
	case 2:
		c.subStage = 3
		return c.yieldCommand(command.Command{Def: defSetSearchAddrL, Param: int(c.hi & 0xFF)}), nil
	case 3:
		c.subStage = 4
		return c.yieldCommand(command.Command{Def: defCompare}), nil
	}

	yn, _ := resp.(response.YesNoResponse)

	if c.lo == c.hi {
		if yn.Yes {
			if yn.IsFramingError() {
				c.stack = nil
				c.stage = stgRestartRandomise
				return c.yieldProgress(Progress{Message: "multiple gear chose the same random address; restarting"}), nil
			}
			found := c.lo
			addr, ok := c.popPool()
			if !ok {
				c.newAddr = -1
				c.stage = stgWithdraw
				return c.yieldProgress(Progress{Message: fmt.Sprintf("gear found at random address %#x, no short addresses left", found)}), nil
			}
			c.newAddr = addr
			c.stage = stgProgram
			return c.yieldProgress(Progress{Message: fmt.Sprintf("gear found at random address %#x, programming short address %d", found, addr)}), nil
		}
		if !c.popFrame() {
			c.stage = stgTerminateFinal
			return c.yieldProgress(Progress{Message: "no further gear found"}), nil
		}
		return c.Next(nil)
	}

	if yn.Yes {
		mid := c.lo + (c.hi-c.lo)/2
		lo, hi := c.lo, c.hi
		c.stack = append(c.stack, searchFrame{mid + 1, hi})
		c.lo, c.hi = lo, mid
		c.subStage = 0
		return c.Next(nil)
	}

	if !c.popFrame() {
		c.stage = stgTerminateFinal
		return c.yieldProgress(Progress{Message: "no further gear found"}), nil
	}
	return c.Next(nil)
}
