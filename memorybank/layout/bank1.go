// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/dali-iot/go-dali/memorybank"

// Bank1 is the manufacturer/luminaire data bank, DiiA Part 251 "Memory
// Bank 1 Extension" v1.1. Every location from 0x03 to 0x77 is lockable
// (NVM_RW_P); the lock byte lives at the bank's standard offset 0x02.
var Bank1 = memorybank.NewBank(1, 0xfe).WithLock(0x02)

var (
	ManufacturerGTIN = memorybank.NewManufacturerSpecificValue("ManufacturerGTIN",
		memorybank.Range(1, 0x03, 0x08, memorybank.NVMRWP)...)

	LuminaireID = memorybank.NewManufacturerSpecificValue("LuminaireID",
		memorybank.Range(1, 0x09, 0x10, memorybank.NVMRWP)...)

	// ContentFormatID must read 0x0003 for the layout this package
	// implements.
	ContentFormatID = memorybank.NewNumericValue("ContentFormatID", "",
		memorybank.Range(1, 0x11, 0x12, memorybank.NVMRWP)...)

	YearOfManufacture = memorybank.NewNumericValue("YearOfManufacture", "",
		memorybank.Location{Bank: 1, Address: 0x13, Type: memorybank.NVMRWP})

	WeekOfManufacture = memorybank.NewNumericValue("WeekOfManufacture", "",
		memorybank.Location{Bank: 1, Address: 0x14, Type: memorybank.NVMRWP})

	InputPowerNominal = memorybank.NewNumericValue("InputPowerNominal", "W",
		memorybank.Range(1, 0x15, 0x16, memorybank.NVMRWP)...)

	InputPowerMinimumDim = memorybank.NewNumericValue("InputPowerMinimumDim", "W",
		memorybank.Range(1, 0x17, 0x18, memorybank.NVMRWP)...)

	MainsVoltageMinimum = memorybank.NewNumericValue("MainsVoltageMinimum", "V",
		memorybank.Range(1, 0x19, 0x1a, memorybank.NVMRWP)...)

	MainsVoltageMaximum = memorybank.NewNumericValue("MainsVoltageMaximum", "V",
		memorybank.Range(1, 0x1b, 0x1c, memorybank.NVMRWP)...)

	LightOutputNominal = memorybank.NewNumericValue("LightOutputNominal", "Lm",
		memorybank.Range(1, 0x1d, 0x1f, memorybank.NVMRWP)...)

	CRI = memorybank.NewNumericValue("CRI", "",
		memorybank.Location{Bank: 1, Address: 0x20, Type: memorybank.NVMRWP})

	CCT = memorybank.NewNumericValue("CCT", "K",
		memorybank.Range(1, 0x21, 0x22, memorybank.NVMRWP)...)

	// LightDistributionType is 0 (not specified) through 5 (Type V); 6-254
	// are reserved for additional types. Callers classify the raw byte
	// themselves, matching the Kind: the value is not large enough to
	// warrant its own ValueKind.
	LightDistributionType = memorybank.NewNumericValue("LightDistributionType", "",
		memorybank.Location{Bank: 1, Address: 0x23, Type: memorybank.NVMRWP})

	// LuminaireColor is a 24-character ASCII string, null-terminated if
	// shorter than the defined length.
	LuminaireColor = memorybank.NewStringValue("LuminaireColor",
		memorybank.Range(1, 0x24, 0x3b, memorybank.NVMRWP)...)

	// LuminaireIdentification is a 60-character ASCII string,
	// null-terminated if shorter than the defined length.
	LuminaireIdentification = memorybank.NewStringValue("LuminaireIdentification",
		memorybank.Range(1, 0x3c, 0x77, memorybank.NVMRWP)...)

	// ManufacturerSpecific spans the remainder of the bank; its content,
	// type, and lock status are defined by the manufacturer, not this
	// specification. Modeled read-only here since nothing in this
	// package can write it meaningfully without manufacturer docs.
	ManufacturerSpecific = memorybank.NewManufacturerSpecificValue("ManufacturerSpecific",
		memorybank.Range(1, 0x78, 0xfe, memorybank.ROM)...)
)
