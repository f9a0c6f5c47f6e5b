// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"fmt"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/instancemap"
	"github.com/dali-iot/go-dali/response"
)

var (
	defStartQuiescentMode  = command.MustByName("StartQuiescentMode")
	defStopQuiescentMode   = command.MustByName("StopQuiescentMode")
	defQueryDeviceStatus   = command.MustByName("QueryDeviceStatus")
	defQueryNumInstances   = command.MustByName("QueryNumberOfInstances")
	defQueryInstanceEnable = command.MustByName("QueryInstanceEnabled")
	defQueryInstanceType   = command.MustByName("QueryInstanceType")
)

// The statusBit* constants are the QueryDeviceStatus bits that disqualify
// a device from instance discovery: input-device error, missing short
// address (shortAddressIsMask), or a seen reset, per §4.7's "check the
// device status is OK" requirement.
const (
	statusBitInputDeviceError   = 0
	statusBitShortAddressIsMask = 2
	statusBitResetState         = 6
)

// DiscoveryResult is DeviceInstanceDiscovery's return value: every
// (short address, instance) pair found, with its instance type.
type DiscoveryResult struct {
	Found []instancemap.Entry
}

// DeviceInstanceDiscovery walks a range of device short addresses,
// querying each one's instance count and, for every enabled instance, its
// type; results are suitable for instancemap.Map.PutAll.
type DeviceInstanceDiscovery struct {
	base

	addrs []int

	stage       int
	addrIdx     int
	short       address.DeviceShort
	numInst     int
	instIdx     int
	found       []instancemap.Entry
}

const (
	dscStartQuiescent = iota
	dscQueryStatus
	dscQueryNumInstances
	dscQueryInstanceEnabled
	dscQueryInstanceType
	dscNextAddr
	dscStopQuiescent
	dscDone
)

// NewDeviceInstanceDiscovery builds a discovery sequence over addrs (nil
// means every short address 0..63).
func NewDeviceInstanceDiscovery(addrs []int) *DeviceInstanceDiscovery {
	if addrs == nil {
		addrs = make([]int, 64)
		for i := range addrs {
			addrs[i] = i
		}
	}
	return &DeviceInstanceDiscovery{addrs: addrs, stage: dscStartQuiescent}
}

func (d *DeviceInstanceDiscovery) Next(resp response.Response) (Step, error) {
	switch d.stage {
	case dscStartQuiescent:
		d.stage = dscNextAddr
		return d.yieldCommand(command.Command{Def: defStartQuiescentMode, Dest: address.DeviceBroadcast{}}), nil

	case dscNextAddr:
		if d.addrIdx >= len(d.addrs) {
			d.stage = dscStopQuiescent
			return d.Next(nil)
		}
		var err error
		d.short, err = address.NewDeviceShort(d.addrs[d.addrIdx])
		d.addrIdx++
		if err != nil {
			return d.done(nil, err)
		}
		d.stage = dscQueryStatus
		return d.yieldCommand(command.Command{Def: defQueryDeviceStatus, Dest: d.short}), nil

	case dscQueryStatus:
		bm, ok := resp.(response.BitmapResponse)
		if !ok || bm.IsFramingError() || bm.Bits[statusBitInputDeviceError] || bm.Bits[statusBitShortAddressIsMask] || bm.Bits[statusBitResetState] {
			d.stage = dscNextAddr
			return d.Next(nil)
		}
		d.stage = dscQueryNumInstances
		return d.yieldCommand(command.Command{Def: defQueryNumInstances, Dest: d.short}), nil

	case dscQueryNumInstances:
		n, ok := resp.(response.NumericResponse)
		if !ok || n.Value == nil {
			d.stage = dscNextAddr
			return d.Next(nil)
		}
		d.numInst = int(*n.Value)
		d.instIdx = 0
		if d.numInst == 0 {
			d.stage = dscNextAddr
			return d.Next(nil)
		}
		d.stage = dscQueryInstanceEnabled
		return d.nextInstance()

	case dscQueryInstanceEnabled:
		yn, _ := resp.(response.YesNoResponse)
		if !yn.Yes {
			d.instIdx++
			return d.nextInstance()
		}
		d.stage = dscQueryInstanceType
		inst, _ := address.NewInstanceNumber(d.instIdx)
		return d.yieldCommand(command.Command{Def: defQueryInstanceType, Dest: d.short, Instance: inst}), nil

	case dscQueryInstanceType:
		n, ok := resp.(response.NumericResponse)
		if ok && n.Value != nil {
			d.found = append(d.found, instancemap.Entry{
				ShortAddr: uint8(d.short.Short),
				Instance:  uint8(d.instIdx),
				Type:      *n.Value,
			})
		}
		d.instIdx++
		return d.nextInstance()

	case dscStopQuiescent:
		d.stage = dscDone
		return d.yieldCommand(command.Command{Def: defStopQuiescentMode, Dest: address.DeviceBroadcast{}}), nil

	case dscDone:
		return d.done(DiscoveryResult{Found: d.found}, nil)
	}
	return d.done(nil, fmt.Errorf("sequence: discovery: unreachable stage %d", d.stage))
}

func (d *DeviceInstanceDiscovery) nextInstance() (Step, error) {
	if d.instIdx >= d.numInst {
		d.stage = dscNextAddr
		return d.Next(nil)
	}
	inst, err := address.NewInstanceNumber(d.instIdx)
	if err != nil {
		d.stage = dscNextAddr
		return d.Next(nil)
	}
	d.stage = dscQueryInstanceEnabled
	return d.yieldCommand(command.Command{Def: defQueryInstanceEnable, Dest: d.short, Instance: inst}), nil
}
