// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/dali-iot/go-dali/memorybank"

// Bank206 holds light source diagnostics and maintenance information,
// DiiA Part 205 "Memory Bank 205, 206 Extension" v1.0.
var Bank206 = memorybank.NewBank(206, 0x20)

var (
	// LightSourceStartCounterResettable shares its last byte (0x07) with
	// LightSourceStartCounter below; the two values overlap on the wire
	// by design, matching the reference layout.
	LightSourceStartCounterResettable = memorybank.NewNumericValue(
		"LightSourceStartCounterResettable", "",
		append(memorybank.Range(206, 0x04, 0x06, memorybank.NVMRW),
			memorybank.Location{Bank: 206, Address: 0x07, Type: memorybank.NVMRO})...)

	LightSourceStartCounter = memorybank.NewNumericValue("LightSourceStartCounter", "",
		memorybank.Range(206, 0x07, 0x09, memorybank.NVMRO)...)

	LightSourceOnTimeResettable = memorybank.NewNumericValue(
		"LightSourceOnTimeResettable", "s",
		memorybank.Range(206, 0x0a, 0x0d, memorybank.NVMRW)...)

	LightSourceOnTime = memorybank.NewNumericValue("LightSourceOnTime", "s",
		memorybank.Range(206, 0x0e, 0x11, memorybank.NVMRO)...)

	LightSourceVoltage = memorybank.NewFixedScaleNumericValue(
		"LightSourceVoltage", "V", 0.1,
		memorybank.Range(206, 0x12, 0x13, memorybank.RAMRO)...)

	LightSourceCurrent = memorybank.NewFixedScaleNumericValue(
		"LightSourceCurrent", "A", 0.001,
		memorybank.Range(206, 0x14, 0x15, memorybank.RAMRO)...)

	LightSourceOverallFailureCondition = memorybank.NewBinaryValue(
		"LightSourceOverallFailureCondition",
		memorybank.Location{Bank: 206, Address: 0x16, Type: memorybank.RAMRO})

	LightSourceOverallFailureConditionCounter = memorybank.NewNumericValue(
		"LightSourceOverallFailureConditionCounter", "",
		memorybank.Location{Bank: 206, Address: 0x17, Type: memorybank.NVMRO})

	LightSourceShortCircuit = memorybank.NewBinaryValue(
		"LightSourceShortCircuit",
		memorybank.Location{Bank: 206, Address: 0x18, Type: memorybank.RAMRO})

	LightSourceShortCircuitCounter = memorybank.NewNumericValue(
		"LightSourceShortCircuitCounter", "",
		memorybank.Location{Bank: 206, Address: 0x19, Type: memorybank.NVMRO})

	LightSourceOpenCircuit = memorybank.NewBinaryValue(
		"LightSourceOpenCircuit",
		memorybank.Location{Bank: 206, Address: 0x1a, Type: memorybank.RAMRO})

	LightSourceOpenCircuitCounter = memorybank.NewNumericValue(
		"LightSourceOpenCircuitCounter", "",
		memorybank.Location{Bank: 206, Address: 0x1b, Type: memorybank.NVMRO})

	LightSourceThermalDerating = memorybank.NewBinaryValue(
		"LightSourceThermalDerating",
		memorybank.Location{Bank: 206, Address: 0x1c, Type: memorybank.RAMRO})

	LightSourceThermalDeratingCounter = memorybank.NewNumericValue(
		"LightSourceThermalDeratingCounter", "",
		memorybank.Location{Bank: 206, Address: 0x1d, Type: memorybank.NVMRO})

	LightSourceThermalShutdown = memorybank.NewBinaryValue(
		"LightSourceThermalShutdown",
		memorybank.Location{Bank: 206, Address: 0x1e, Type: memorybank.RAMRO})

	LightSourceThermalShutdownCounter = memorybank.NewNumericValue(
		"LightSourceThermalShutdownCounter", "",
		memorybank.Location{Bank: 206, Address: 0x1f, Type: memorybank.NVMRO})

	LightSourceTemperature = memorybank.NewTemperatureValue(
		"LightSourceTemperature",
		memorybank.Location{Bank: 206, Address: 0x20, Type: memorybank.RAMRO})
)
