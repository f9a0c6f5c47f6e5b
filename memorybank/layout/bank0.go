// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout is the fixed-column table of memory bank descriptors IEC
// 62386-102 §9.10.6 and the DiiA Part 251/252/253 extensions define,
// expressed as package-level vars the way the teacher's pkg/core/table
// package hardcodes its Admin_TPerInfoObj/Admin_C_PIN_* row/column
// constants rather than discovering them from the device at runtime.
package layout

import "github.com/dali-iot/go-dali/memorybank"

// Bank0 is the identification bank every bus unit must implement, IEC
// 62386-102:2014 §9.10.6. BANK_0_legacy (devices answering
// QueryVersionNumber == 1, the 2009 edition) is not modeled separately;
// callers on a legacy bus should stop reading IdentificationNumber after
// its first 4 bytes per that edition's shorter layout.
var Bank0 = memorybank.NewBank(0, 0x7f)

var (
	GTIN = memorybank.NewNumericValue("GTIN", "",
		memorybank.Range(0, 0x03, 0x08, memorybank.ROM)...)

	FirmwareVersion = memorybank.NewVersionNumberValue("FirmwareVersion",
		memorybank.Range(0, 0x09, 0x0a, memorybank.ROM)...)

	// IdentificationNumber may be truncated at 0x0e on a 2009-edition bus
	// unit (QueryVersionNumber returns 1); see the Bank0 doc comment.
	IdentificationNumber = memorybank.NewNumericValue("IdentificationNumber", "",
		memorybank.Range(0, 0x0b, 0x12, memorybank.ROM)...)

	HardwareVersion = memorybank.NewVersionNumberValue("HardwareVersion",
		memorybank.Range(0, 0x13, 0x14, memorybank.ROM)...)

	Part101Version = memorybank.NewVersionNumberValue("Part101Version",
		memorybank.Location{Bank: 0, Address: 0x15, Type: memorybank.ROM})

	Part102Version = memorybank.NewVersionNumberValue("Part102Version",
		memorybank.Location{Bank: 0, Address: 0x16, Type: memorybank.ROM})

	Part103Version = memorybank.NewVersionNumberValue("Part103Version",
		memorybank.Location{Bank: 0, Address: 0x17, Type: memorybank.ROM})

	// DeviceUnitCount is the number of logical control device units
	// integrated into the bus unit.
	DeviceUnitCount = memorybank.NewNumericValue("DeviceUnitCount", "",
		memorybank.Location{Bank: 0, Address: 0x18, Type: memorybank.ROM})

	// GearUnitCount is the number of logical control gear units
	// integrated into the bus unit.
	GearUnitCount = memorybank.NewNumericValue("GearUnitCount", "",
		memorybank.Location{Bank: 0, Address: 0x19, Type: memorybank.ROM})

	// UnitIndex is the unique index (0..count-1) of the logical unit
	// answering: the control gear index over 16-bit commands, the
	// control device index over 24-bit commands.
	UnitIndex = memorybank.NewNumericValue("UnitIndex", "",
		memorybank.Location{Bank: 0, Address: 0x1a, Type: memorybank.ROM})
)
