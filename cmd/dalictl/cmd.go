// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dali-iot/go-dali/address"
	"github.com/dali-iot/go-dali/command"
	"github.com/dali-iot/go-dali/driver"
	"github.com/dali-iot/go-dali/pkg/cmdutil"
	"github.com/dali-iot/go-dali/response"
	"github.com/dali-iot/go-dali/sequence"
	"github.com/dali-iot/go-dali/transport"
)

// openBus builds the Driver every subcommand runs against. No concrete
// serial/HID/USB transport ships with this tool (see package transport's
// doc comment), so the demonstration bus is always transport.Fake, seeded
// with cctx.gears unaddressed control gears and optionally wrapped in
// transport.Trace.
func openBus(cctx *context) (*driver.Driver, *transport.Fake, error) {
	fake := transport.NewFake(cctx.gears)
	var t transport.Transport = fake
	if cctx.trace {
		t = transport.NewTrace(fake, log.Default())
	}
	drv, err := driver.New(t, driver.WithProgress(printProgress))
	return drv, fake, err
}

func printProgress(p sequence.Progress) {
	width := cmdutil.ProgressWidth(int(os.Stdout.Fd()))
	barWidth := width - len(p.Message) - 8
	if barWidth < 10 {
		barWidth = 10
	}
	filled := 0
	if p.Size > 0 {
		filled = p.Completed * barWidth / p.Size
	}
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	fmt.Fprintf(os.Stderr, "\r%s [%s] %d/%d", p.Message, bar, p.Completed, p.Size)
	if p.Completed >= p.Size {
		fmt.Fprintln(os.Stderr)
	}
}

func parseDest(s string) (address.Address, error) {
	switch {
	case s == "broadcast":
		return address.GearBroadcast{}, nil
	case s == "broadcast-unaddressed":
		return address.GearBroadcastUnaddressed{}, nil
	case strings.HasPrefix(s, "group:"):
		var g int
		if _, err := fmt.Sscanf(s, "group:%d", &g); err != nil {
			return nil, fmt.Errorf("invalid group destination %q", s)
		}
		group, err := address.NewGearGroup(g)
		if err != nil {
			return nil, err
		}
		return group, nil
	default:
		var short int
		if _, err := fmt.Sscanf(s, "%d", &short); err != nil {
			return nil, fmt.Errorf("invalid destination %q (want a short address, group:N, broadcast, or broadcast-unaddressed)", s)
		}
		addr, err := address.NewGearShort(short)
		if err != nil {
			return nil, err
		}
		return addr, nil
	}
}

type commissionCmd struct {
	Readdress bool `help:"Re-address already-addressed gear too."`
	DryRun    bool `help:"Run the full search without ever programming a short address."`
}

func (c *commissionCmd) Run(cctx *context) error {
	drv, _, err := openBus(cctx)
	if err != nil {
		return fmt.Errorf("opening bus: %w", err)
	}
	defer drv.Close()

	seq := sequence.NewCommissioning(nil, c.Readdress, c.DryRun)
	result, err := drv.RunSequence(context.Background(), seq)
	if err != nil {
		return fmt.Errorf("commissioning: %w", err)
	}
	assigned := result.(sequence.CommissioningResult).Assigned
	fmt.Printf("commissioned %d gear:\n", len(assigned))
	for _, a := range assigned {
		fmt.Printf("  short address %3d  random address 0x%06x\n", a.ShortAddress, a.RandomAddr)
	}
	return nil
}

type scanCmd struct{}

func (s *scanCmd) Run(cctx *context) error {
	drv, _, err := openBus(cctx)
	if err != nil {
		return fmt.Errorf("opening bus: %w", err)
	}
	defer drv.Close()

	result, err := drv.RunSequence(context.Background(), sequence.NewPing(nil))
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	present := result.([]int)
	fmt.Printf("%d gear present:\n", len(present))
	for _, a := range present {
		fmt.Printf("  %3d\n", a)
	}
	return nil
}

type levelCmd struct {
	Dest  string `required:"" short:"d" help:"Destination: a short address, group:N, broadcast, or broadcast-unaddressed."`
	Level int    `required:"" short:"l" help:"Arc power level, 0-254 (255 sends MASK, which is a no-op)."`
}

func (l *levelCmd) Run(cctx *context) error {
	dest, err := parseDest(l.Dest)
	if err != nil {
		return err
	}
	drv, _, err := openBus(cctx)
	if err != nil {
		return fmt.Errorf("opening bus: %w", err)
	}
	defer drv.Close()

	_, err = drv.Send(context.Background(), command.NewArcPower(dest, l.Level))
	if err != nil {
		return fmt.Errorf("sending level: %w", err)
	}
	fmt.Printf("sent level %d to %s\n", l.Level, l.Dest)
	return nil
}

type queryCmd struct {
	Dest string `required:"" short:"d" help:"Destination: a short address, group:N, or broadcast."`
	Name string `required:"" short:"n" help:"Query command name, e.g. QueryActualLevel, QueryStatus."`
}

func (q *queryCmd) Run(cctx *context) error {
	dest, err := parseDest(q.Dest)
	if err != nil {
		return err
	}
	def, ok := command.ByName(q.Name)
	if !ok {
		return fmt.Errorf("unknown command %q", q.Name)
	}
	if !def.IsQuery {
		return fmt.Errorf("%q is not a query command", q.Name)
	}

	drv, _, err := openBus(cctx)
	if err != nil {
		return fmt.Errorf("opening bus: %w", err)
	}
	defer drv.Close()

	resp, err := drv.Send(context.Background(), command.Command{Def: def, Dest: dest})
	if err != nil {
		return fmt.Errorf("sending query: %w", err)
	}
	printResponse(q.Name, resp)
	return nil
}

func printResponse(name string, resp response.Response) {
	switch r := resp.(type) {
	case response.YesNoResponse:
		fmt.Printf("%s: %v (framing error: %v)\n", name, r.Yes, r.Framing)
	case response.NumericResponse:
		switch {
		case r.Framing:
			fmt.Printf("%s: framing error (collision)\n", name)
		case r.Value == nil:
			fmt.Printf("%s: no response\n", name)
		case r.IsUnknown():
			fmt.Printf("%s: not implemented\n", name)
		default:
			fmt.Printf("%s: %d\n", name, *r.Value)
		}
	case response.BitmapResponse:
		fmt.Printf("%s:\n", name)
		for i, set := range r.Bits {
			if i < len(r.Names) && r.Names[i] != "" {
				fmt.Printf("  %-24s %v\n", r.Names[i], set)
			}
		}
	case response.EnumResponse:
		fmt.Printf("%s: %s\n", name, r.Name)
	default:
		fmt.Printf("%s: %+v\n", name, resp)
	}
}
