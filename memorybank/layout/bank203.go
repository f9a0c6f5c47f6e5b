// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/dali-iot/go-dali/memorybank"

// Bank203 holds apparent energy and power values, DiiA Part 252
// "Memory Bank 202, 203 Extension" v1.0.
var Bank203 = memorybank.NewBank(203, 0x0f)

var (
	ApparentEnergy = memorybank.NewScaledNumericValue("ApparentEnergy", "VAh",
		memorybank.Location{Bank: 203, Address: 0x04, Type: memorybank.ROM},
		memorybank.Range(203, 0x05, 0x0a, memorybank.NVMRO)...)

	ApparentPower = memorybank.NewScaledNumericValue("ApparentPower", "VA",
		memorybank.Location{Bank: 203, Address: 0x0b, Type: memorybank.ROM},
		memorybank.Range(203, 0x0c, 0x0f, memorybank.RAMRO)...)
)
