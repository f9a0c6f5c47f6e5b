// Copyright (c) 2024 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/dali-iot/go-dali/busmon"
)

// metrics accumulates counts of every outcome busmon.Monitor reports while
// dalitrace drives its demonstration traffic, keyed the way
// tcgdiskstat/metric.go keys its drive-state counters: one named counter per
// outcome kind, all registered into a single PedanticRegistry at render time.
type metrics struct {
	traffic       int
	configOK      int
	configFailed  int
	queryResponse int
	queryNo       int
	framingErrors int
}

func (m *metrics) record(r *busmon.Report) {
	switch r.Kind {
	case busmon.KindTraffic:
		m.traffic++
	case busmon.KindConfigOK:
		m.configOK++
	case busmon.KindConfigFailed:
		m.configFailed++
	case busmon.KindQueryResponse:
		m.queryResponse++
		if r.Response != nil && r.Response.IsFramingError() {
			m.framingErrors++
		}
	case busmon.KindQueryNo:
		m.queryNo++
	}
}

type constCollector struct {
	m []prometheus.Metric
}

func (c *constCollector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.m {
		ch <- m
	}
}

func (c *constCollector) Describe(ch chan<- *prometheus.Desc) {}

func (m *metrics) writeTo(w io.Writer) {
	desc := prometheus.NewDesc(
		"dali_bus_outcomes_total",
		"Count of bus traffic classified by busmon.Monitor, by outcome kind",
		[]string{"kind"}, nil,
	)
	cc := &constCollector{}
	add := func(kind string, v int) {
		cc.m = append(cc.m, prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v), kind))
	}
	add("traffic", m.traffic)
	add("config_ok", m.configOK)
	add("config_failed", m.configFailed)
	add("query_response", m.queryResponse)
	add("query_no", m.queryNo)
	add("framing_error", m.framingErrors)

	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(cc)

	mfs, err := reg.Gather()
	if err != nil {
		log.Fatalf("dalitrace: gathering metrics: %v", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			log.Fatalf("dalitrace: serializing metrics: %v", err)
		}
	}
}
