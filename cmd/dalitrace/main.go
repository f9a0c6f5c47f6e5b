// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/driver"
	"github.com/dali-iot/go-dali/sequence"
	"github.com/dali-iot/go-dali/transport"
)

const (
	programName = "dalitrace"
	programDesc = "Trace DALI bus traffic and export bus-health metrics"
)

var cli struct {
	Gears   int  `help:"Number of simulated control gears." default:"4"`
	Verbose bool `help:"Dump every frame with go-spew as it crosses the bus." short:"v"`
}

func main() {
	kong.Parse(&cli,
		kong.Name(programName),
		kong.Description(programDesc),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}))

	m := &metrics{}
	fake := transport.NewFake(cli.Gears)
	var t transport.Transport = newBusTap(fake, m)
	if cli.Verbose {
		t = transport.NewTrace(t, log.Default())
	}

	drv, err := driver.New(t)
	if err != nil {
		log.Fatalf("dalitrace: %v", err)
	}
	defer drv.Close()

	ctx := context.Background()
	if _, err := drv.RunSequence(ctx, sequence.NewCommissioning(nil, false, false)); err != nil {
		log.Printf("dalitrace: commissioning: %v", err)
	}
	if _, err := drv.RunSequence(ctx, sequence.NewPing(nil)); err != nil {
		log.Printf("dalitrace: scan: %v", err)
	}
	if _, err := drv.Send(ctx, command.Command{Def: command.MustByName("QueryActualLevel"), Dest: address.GearBroadcast{}}); err != nil {
		log.Printf("dalitrace: broadcast query: %v", err)
	}

	m.writeTo(os.Stdout)
}
