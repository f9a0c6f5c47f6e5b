// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/dali-iot/go-dali/memorybank"

// Bank207 holds luminaire maintenance data, DiiA Part 253 "Diagnostics &
// Maintenance" v1.1. Its lock byte lives at the bank's standard offset
// 0x02, same as Bank1.
var Bank207 = memorybank.NewBank(207, 0x07).WithLock(0x02)

var (
	LuminaireMaintenanceBankVersion = memorybank.NewNumericValue(
		"LuminaireMaintenanceBankVersion", "",
		memorybank.Location{Bank: 207, Address: 0x03, Type: memorybank.ROM})

	// RatedMedianUsefulLifeOfLuminaire is L80/B50 per IEC 62722-2-1:2014
	// at a rated ambient of 25°C. 0xfe means "unknown" (MASK), a value
	// this package surfaces as-is rather than special-casing.
	RatedMedianUsefulLifeOfLuminaire = memorybank.NewFixedScaleNumericValue(
		"RatedMedianUsefulLifeOfLuminaire", "h", 1000,
		memorybank.Location{Bank: 207, Address: 0x04, Type: memorybank.NVMRWP})

	InternalControlGearReferenceTemperature = memorybank.NewTemperatureValue(
		"InternalControlGearReferenceTemperature",
		memorybank.Location{Bank: 207, Address: 0x05, Type: memorybank.NVMRWP})

	RatedMedianUsefulLightSourceStarts = memorybank.NewFixedScaleNumericValue(
		"RatedMedianUsefulLightSourceStarts", "", 100,
		memorybank.Range(207, 0x06, 0x07, memorybank.NVMRWP)...)
)
