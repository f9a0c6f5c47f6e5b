// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/alecthomas/kong"

	"github.com/dali-iot/go-dali/pkg/cmdutil"
)

const (
	programName = "dalictl"
	programDesc = "Drive a DALI bus: commissioning, level control, and queries"
)

// cli is the main command line interface struct required by the kong
// command line parser.
var cli struct {
	Gears int  `help:"Number of simulated control gears on the demonstration bus; no real transport is shipped yet." default:"4"`
	Trace bool `help:"Log every forward/backward frame crossing the bus."`

	Commission commissionCmd `cmd:"" help:"Commission unaddressed control gear, assigning short addresses."`
	Scan       scanCmd       `cmd:"" help:"Probe short addresses 0-63 for presence."`
	Level      levelCmd      `cmd:"" help:"Send a level-control command to a destination."`
	Query      queryCmd      `cmd:"" help:"Send a query command to a destination and print its response."`
}

// context carries flags shared by every subcommand's Run method.
type context struct {
	gears int
	trace bool
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name(programName),
		kong.Description(programDesc),
		kong.UsageOnError(),
		kong.NamedMapper("accessiblefile", cmdutil.AccessibleFileMapper()),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	err := ctx.Run(&context{gears: cli.Gears, trace: cli.Trace})
	ctx.FatalIfErrorf(err)
}
