package sysinfo

import "testing"

func TestGetResourcesReportsRuntimeFigures(t *testing.T) {
	r := GetResources("/")
	if r.NumGoroutine < 1 {
		t.Errorf("expected at least one goroutine, got %d", r.NumGoroutine)
	}
	if r.UptimeSeconds < 0 {
		t.Errorf("expected non-negative uptime, got %v", r.UptimeSeconds)
	}
}
