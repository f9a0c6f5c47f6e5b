// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/dali-iot/go-dali/memorybank"

// Bank204 holds energy and power measured on the load side of the
// control gear, DiiA Part 253 "Memory Bank 204 Extension" v1.0.
var Bank204 = memorybank.NewBank(204, 0x0f)

var (
	ActiveEnergyLoadside = memorybank.NewScaledNumericValue("ActiveEnergyLoadside", "Wh",
		memorybank.Location{Bank: 204, Address: 0x04, Type: memorybank.ROM},
		memorybank.Range(204, 0x05, 0x0a, memorybank.NVMRO)...)

	ActivePowerLoadside = memorybank.NewScaledNumericValue("ActivePowerLoadside", "W",
		memorybank.Location{Bank: 204, Address: 0x0b, Type: memorybank.ROM},
		memorybank.Range(204, 0x0c, 0x0f, memorybank.RAMRO)...)
)
