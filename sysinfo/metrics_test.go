package sysinfo

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsRegistersAndCounts(t *testing.T) {
	m, reg := NewMetrics()
	m.TrafficRegistrySize.Set(3)
	m.DispatcherParseErrors.WithLabelValues("sbs").Inc()

	if got := testutil.ToFloat64(m.TrafficRegistrySize); got != 3 {
		t.Errorf("expected traffic registry size 3, got %v", got)
	}
	if reg == nil {
		t.Fatal("expected a non-nil registry")
	}
}
