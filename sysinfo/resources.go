/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	resources.go: the system-status "resources" block. The Python original
	scrapes /proc/meminfo and /proc/stat; this substitutes Go-runtime-native
	figures (goroutine count, uptime) plus disk usage, since there is no
	portable procfs-free equivalent of CPU/mem parsing.
*/

package sysinfo

import (
	"runtime"
	"time"

	du "github.com/ricochet2200/go-disk-usage/du"
)

var processStart = startupTime()

func startupTime() time.Time {
	return time.Now()
}

// Resources is the process/host resource snapshot folded into the system
// topic.
type Resources struct {
	DiskUsedPercent float64 `json:"diskUsedPercent"`
	NumGoroutine    int     `json:"numGoroutine"`
	UptimeSeconds   float64 `json:"uptimeSeconds"`
}

// GetResources samples disk usage of root and Go runtime figures.
func GetResources(root string) Resources {
	usage := du.NewDiskUsage(root)
	var usedPercent float64
	if usage != nil && usage.Size() > 0 {
		usedPercent = usage.Usage() * 100
	}
	return Resources{
		DiskUsedPercent: usedPercent,
		NumGoroutine:    runtime.NumGoroutine(),
		UptimeSeconds:   time.Since(processStart).Seconds(),
	}
}
