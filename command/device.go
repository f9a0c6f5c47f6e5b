// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import "github.com/dali-iot/go-dali/response"

var deviceStatusBits = []string{
	"inputDeviceError", "quiescentModeEnabled", "shortAddressIsMask",
	"applicationControllerActive", "applicationControllerError",
	"powerCycleSeen", "resetState",
}

var deviceCapabilitiesBits = []string{
	"applicationControllerPresent", "numberOfInstancesGreaterThanZero",
	"applicationControllerAlwaysActive",
}

var instanceStatusBits = []string{"instanceError", "instanceActive"}

var eventSchemeNames = []string{
	"instance", "device", "deviceInstance", "deviceGroup", "instanceGroup",
}

func deviceStd(name string, opcode int, opts ...func(*Def)) *Def {
	d := &Def{Name: name, Kind: KindDeviceStandard, FrameWidth: 24, Opcode: opcode}
	for _, o := range opts {
		o(d)
	}
	registerDeviceStandard(0, d)
	return d
}

func instanceStd(name string, opcode int, opts ...func(*Def)) *Def {
	d := &Def{Name: name, Kind: KindInstanceStandard, FrameWidth: 24, Opcode: opcode}
	for _, o := range opts {
		o(d)
	}
	registerInstanceStandard(0, d)
	return d
}

func init() {
	// 24-bit standard device commands, IEC 62386-103 Table 21.
	deviceStd("IdentifyDevice", 0x00, withConfig)
	deviceStd("ResetPowerCycleSeen", 0x01, withConfig)
	deviceStd("Reset", 0x10, withConfig)
	deviceStd("ResetMemoryBank", 0x11, withConfig, withDTR0)
	deviceStd("SetShortAddress", 0x14, withConfig, withDTR0)
	deviceStd("EnableWriteMemory", 0x15, withConfig)
	deviceStd("EnableApplicationController", 0x16, withConfig)
	deviceStd("DisableApplicationController", 0x17, withConfig)
	deviceStd("SetOperatingMode", 0x18, withConfig, withDTR0)
	deviceStd("AddToDeviceGroupsZeroToFifteen", 0x19, withConfig, withDTR1, withDTR2)
	deviceStd("AddToDeviceGroupsSixteenToThirtyOne", 0x1a, withConfig, withDTR1, withDTR2)
	deviceStd("RemoveFromDeviceGroupsZeroToFifteen", 0x1b, withConfig, withDTR1, withDTR2)
	deviceStd("RemoveFromDeviceGroupsSixteenToThirtyOne", 0x1c, withConfig, withDTR1, withDTR2)
	deviceStd("StartQuiescentMode", 0x1d, withConfig)
	deviceStd("StopQuiescentMode", 0x1e, withConfig)
	deviceStd("EnablePowerCycleNotification", 0x1f, withConfig)
	deviceStd("DisablePowerCycleNotification", 0x20, withConfig)
	deviceStd("SavePersistentVariables", 0x21, withConfig)

	deviceStd("QueryDeviceStatus", 0x30, withQuery, withBitmap(deviceStatusBits))
	deviceStd("QueryApplicationControllerError", 0x31, withQuery, withResp(response.TypeNumericMask))
	deviceStd("QueryInputDeviceError", 0x32, withQuery, withResp(response.TypeNumericMask))
	deviceStd("QueryMissingShortAddress", 0x33, withQuery, withResp(response.TypeYesNo))
	deviceStd("QueryVersionNumber", 0x34, withQuery, withResp(response.TypeNumeric))
	deviceStd("QueryNumberOfInstances", 0x35, withQuery, withResp(response.TypeNumeric))
	deviceStd("QueryContentDTR0", 0x36, withQuery, withResp(response.TypeNumeric), withDTR0)
	deviceStd("QueryContentDTR1", 0x37, withQuery, withResp(response.TypeNumeric), withDTR1)
	deviceStd("QueryContentDTR2", 0x38, withQuery, withResp(response.TypeNumeric), withDTR2)
	deviceStd("QueryRandomAddressH", 0x39, withQuery, withResp(response.TypeNumeric))
	deviceStd("QueryRandomAddressM", 0x3a, withQuery, withResp(response.TypeNumeric))
	deviceStd("QueryRandomAddressL", 0x3b, withQuery, withResp(response.TypeNumeric))
	deviceStd("ReadMemoryLocation", 0x3c, withQuery, withResp(response.TypeNumeric), withDTR0, withDTR1)
	deviceStd("QueryApplicationControlEnabled", 0x3d, withQuery, withResp(response.TypeYesNo))
	deviceStd("QueryOperatingMode", 0x3e, withQuery, withResp(response.TypeNumeric))
	deviceStd("QueryManufacturerSpecificMode", 0x3f, withQuery, withResp(response.TypeYesNo))
	deviceStd("QueryQuiescentMode", 0x40, withQuery, withResp(response.TypeYesNo))
	deviceStd("QueryDeviceGroupsZeroToSeven", 0x41, withQuery, withResp(response.TypeNumeric))
	deviceStd("QueryDeviceGroupsEightToFifteen", 0x42, withQuery, withResp(response.TypeNumeric))
	deviceStd("QueryDeviceGroupsSixteenToTwentyThree", 0x43, withQuery, withResp(response.TypeNumeric))
	deviceStd("QueryDeviceGroupsTwentyFourToThirtyOne", 0x44, withQuery, withResp(response.TypeNumeric))
	deviceStd("QueryPowerCycleNotification", 0x45, withQuery, withResp(response.TypeYesNo))
	deviceStd("QueryDeviceCapabilities", 0x46, withQuery, withBitmap(deviceCapabilitiesBits))
	deviceStd("QueryExtendedVersionNumber", 0x47, withQuery, withResp(response.TypeNumeric), withDTR0)
	deviceStd("QueryResetState", 0x48, withQuery, withResp(response.TypeYesNo))

	// 24-bit standard instance commands, IEC 62386-103 Table 21 (cont).
	instanceStd("SetEventPriority", 0x61, withConfig, withDTR0)
	instanceStd("EnableInstance", 0x62, withConfig)
	instanceStd("DisableInstance", 0x63, withConfig)
	instanceStd("SetPrimaryInstanceGroup", 0x64, withConfig, withDTR0)
	instanceStd("SetInstanceGroup1", 0x65, withConfig, withDTR0)
	instanceStd("SetInstanceGroup2", 0x66, withConfig, withDTR0)
	instanceStd("SetEventScheme", 0x67, withConfig, withDTR0)
	instanceStd("SetEventFilter", 0x68, withConfig, withDTR0, withDTR1, withDTR2)

	instanceStd("QueryInstanceType", 0x80, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryResolution", 0x81, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryInstanceError", 0x82, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryInstanceStatus", 0x83, withQuery, withBitmap(instanceStatusBits))
	instanceStd("QueryEventPriority", 0x84, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryInstanceEnabled", 0x86, withQuery, withResp(response.TypeYesNo))
	instanceStd("QueryPrimaryInstanceGroup", 0x88, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryInstanceGroup1", 0x89, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryInstanceGroup2", 0x8a, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryEventScheme", 0x8b, withQuery, withEnum(eventSchemeNames))
	instanceStd("QueryInputValue", 0x8c, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryInputValueLatch", 0x8d, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryFeatureType", 0x8e, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryNextFeatureType", 0x8f, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryEventFilterZeroToSeven", 0x90, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryEventFilterEightToFifteen", 0x91, withQuery, withResp(response.TypeNumeric))
	instanceStd("QueryEventFilterSixteenToTwentyThree", 0x92, withQuery, withResp(response.TypeNumeric))
}
