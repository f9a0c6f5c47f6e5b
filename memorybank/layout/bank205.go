// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/dali-iot/go-dali/memorybank"

// Bank205 holds control gear diagnostics and maintenance information,
// DiiA Part 205 "Memory Bank 205, 206 Extension" v1.0.
var Bank205 = memorybank.NewBank(205, 0x1c)

var (
	ControlGearOperatingTime = memorybank.NewNumericValue("ControlGearOperatingTime", "s",
		memorybank.Range(205, 0x04, 0x07, memorybank.NVMRO)...)

	ControlGearStartCounter = memorybank.NewNumericValue("ControlGearStartCounter", "",
		memorybank.Range(205, 0x08, 0x0a, memorybank.NVMRO)...)

	ControlGearExternalSupplyVoltage = memorybank.NewFixedScaleNumericValue(
		"ControlGearExternalSupplyVoltage", "Vrms", 0.1,
		memorybank.Range(205, 0x0b, 0x0c, memorybank.RAMRO)...)

	ControlGearExternalSupplyVoltageFrequency = memorybank.NewNumericValue(
		"ControlGearExternalSupplyVoltageFrequency", "Hz",
		memorybank.Location{Bank: 205, Address: 0x0d, Type: memorybank.RAMRO})

	ControlGearPowerFactor = memorybank.NewFixedScaleNumericValue(
		"ControlGearPowerFactor", "", 0.01,
		memorybank.Location{Bank: 205, Address: 0x0e, Type: memorybank.RAMRO})

	ControlGearOverallFailureCondition = memorybank.NewBinaryValue(
		"ControlGearOverallFailureCondition",
		memorybank.Location{Bank: 205, Address: 0x0f, Type: memorybank.RAMRO})

	// ControlGearOverallFailureConditionCounter (and every "...Counter"
	// value below it) resets to 0x0e on write, per the bank's reset
	// column; this package does not model the reset value, only the
	// live one, since nothing in memorybank writes diagnostic counters.
	ControlGearOverallFailureConditionCounter = memorybank.NewNumericValue(
		"ControlGearOverallFailureConditionCounter", "",
		memorybank.Location{Bank: 205, Address: 0x10, Type: memorybank.NVMRO})

	ControlGearExternalSupplyUndervoltage = memorybank.NewBinaryValue(
		"ControlGearExternalSupplyUndervoltage",
		memorybank.Location{Bank: 205, Address: 0x11, Type: memorybank.RAMRO})

	ControlGearExternalSupplyUndervoltageCounter = memorybank.NewNumericValue(
		"ControlGearExternalSupplyUndervoltageCounter", "",
		memorybank.Location{Bank: 205, Address: 0x12, Type: memorybank.NVMRO})

	ControlGearExternalSupplyOvervoltage = memorybank.NewBinaryValue(
		"ControlGearExternalSupplyOvervoltage",
		memorybank.Location{Bank: 205, Address: 0x13, Type: memorybank.RAMRO})

	ControlGearExternalSupplyOvervoltageCounter = memorybank.NewNumericValue(
		"ControlGearExternalSupplyOvervoltageCounter", "",
		memorybank.Location{Bank: 205, Address: 0x14, Type: memorybank.NVMRO})

	ControlGearOutputPowerLimitation = memorybank.NewBinaryValue(
		"ControlGearOutputPowerLimitation",
		memorybank.Location{Bank: 205, Address: 0x15, Type: memorybank.RAMRO})

	ControlGearOutputPowerLimitationCounter = memorybank.NewNumericValue(
		"ControlGearOutputPowerLimitationCounter", "",
		memorybank.Location{Bank: 205, Address: 0x16, Type: memorybank.NVMRO})

	ControlGearThermalDerating = memorybank.NewBinaryValue(
		"ControlGearThermalDerating",
		memorybank.Location{Bank: 205, Address: 0x17, Type: memorybank.RAMRO})

	ControlGearThermalDeratingCounter = memorybank.NewNumericValue(
		"ControlGearThermalDeratingCounter", "",
		memorybank.Location{Bank: 205, Address: 0x18, Type: memorybank.NVMRO})

	ControlGearThermalShutdown = memorybank.NewBinaryValue(
		"ControlGearThermalShutdown",
		memorybank.Location{Bank: 205, Address: 0x19, Type: memorybank.RAMRO})

	ControlGearThermalShutdownCounter = memorybank.NewNumericValue(
		"ControlGearThermalShutdownCounter", "",
		memorybank.Location{Bank: 205, Address: 0x1a, Type: memorybank.NVMRO})

	ControlGearTemperature = memorybank.NewTemperatureValue(
		"ControlGearTemperature",
		memorybank.Location{Bank: 205, Address: 0x1b, Type: memorybank.RAMRO})

	ControlGearOutputCurrentPercent = memorybank.NewNumericValue(
		"ControlGearOutputCurrentPercent", "%",
		memorybank.Location{Bank: 205, Address: 0x1c, Type: memorybank.RAMRO})
)
