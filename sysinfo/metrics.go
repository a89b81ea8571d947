/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	metrics.go: the Prometheus metrics registry, exposed on a debug HTTP
	listener by main.
*/

package sysinfo

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the fixed set of counters/gauges this process exposes.
type Metrics struct {
	TrafficRegistrySize prometheus.Gauge
	SatelliteTableSize  prometheus.Gauge
	EgressQueueDepth    prometheus.Gauge
	EgressMessagesDropped prometheus.Counter
	DispatcherParseErrors *prometheus.CounterVec
}

// NewMetrics constructs and registers every metric against a fresh
// registry.
func NewMetrics() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		TrafficRegistrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "easyadsb_monitor_traffic_registry_size",
			Help: "Number of tracked traffic entries.",
		}),
		SatelliteTableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "easyadsb_monitor_satellite_table_size",
			Help: "Number of satellites currently in view.",
		}),
		EgressQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "easyadsb_monitor_egress_queue_depth",
			Help: "Number of GDL90 messages queued for broadcast.",
		}),
		EgressMessagesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "easyadsb_monitor_egress_messages_dropped_total",
			Help: "Number of GDL90 messages dropped due to an inactive or full egress port.",
		}),
		DispatcherParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "easyadsb_monitor_dispatcher_parse_errors_total",
			Help: "Number of inbound messages dropped due to a parse error, by topic kind.",
		}, []string{"topic_kind"}),
	}
	reg.MustRegister(m.TrafficRegistrySize, m.SatelliteTableSize, m.EgressQueueDepth, m.EgressMessagesDropped, m.DispatcherParseErrors)
	return m, reg
}

// Handler returns the HTTP handler to mount on the debug listener.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
