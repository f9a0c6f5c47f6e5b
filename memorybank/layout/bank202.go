// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/dali-iot/go-dali/memorybank"

// Bank202 holds energy- and power-at-the-control-gear-input values, DiiA
// Part 252 "Memory Bank 202, 203 Extension" v1.0.
var Bank202 = memorybank.NewBank(202, 0x0f)

var (
	// ActiveEnergy is read at the same address range across reads; its
	// exponent byte lives in a separate ROM location (0x04), passed as the
	// scale location rather than as one of the mantissa locations it scales.
	ActiveEnergy = memorybank.NewScaledNumericValue("ActiveEnergy", "Wh",
		memorybank.Location{Bank: 202, Address: 0x04, Type: memorybank.ROM},
		memorybank.Range(202, 0x05, 0x0a, memorybank.NVMRO)...)

	ActivePower = memorybank.NewScaledNumericValue("ActivePower", "W",
		memorybank.Location{Bank: 202, Address: 0x0b, Type: memorybank.ROM},
		memorybank.Range(202, 0x0c, 0x0f, memorybank.RAMRO)...)
)
