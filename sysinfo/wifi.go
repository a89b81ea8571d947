/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	wifi.go: best-effort `iwconfig` output scraping for the system-status
	topic's wifi block.
*/

package sysinfo

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/gravity981/easyadsb-monitor/common"
)

const iwconfigTimeout = 2 * time.Second

// WifiStatus is the parsed subset of `iwconfig <iface>` output this
// process reports. Any field left unparseable is the empty/zero value,
// never an error.
type WifiStatus struct {
	SSID        string  `json:"ssid"`
	FrequencyGHz float64 `json:"frequency"`
	AccessPoint string  `json:"accesspoint"`
	Quality     float64 `json:"quality"`
	SignalLevel float64 `json:"signalLevel"`
}

// GetWifiStatus runs `iwconfig iface` and parses its output. A missing
// iwconfig binary or non-wifi interface yields a zero-valued WifiStatus,
// logged at debug level rather than treated as fatal.
func GetWifiStatus(iface string) WifiStatus {
	ctx, cancel := context.WithTimeout(context.Background(), iwconfigTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "iwconfig", iface).CombinedOutput()
	if err != nil {
		common.LogDbg("sysinfo: iwconfig %s failed: %v", iface, err)
	}
	return parseIwConfig(string(out))
}

func parseIwConfig(raw string) WifiStatus {
	var status WifiStatus

	if ssid, ok := extractBetween(raw, "ESSID:", " "); ok {
		status.SSID = strings.Trim(strings.TrimSpace(ssid), `"`)
	}
	if freq, ok := extractBetween(raw, "Frequency:", " GHz"); ok {
		if v, err := strconv.ParseFloat(freq, 64); err == nil {
			status.FrequencyGHz = v
		}
	}
	if ap, ok := extractBetween(raw, "Access Point:", "  "); ok {
		status.AccessPoint = strings.TrimSpace(ap)
	}
	if quality, ok := extractBetween(raw, "Link Quality=", " "); ok {
		if parts := strings.SplitN(quality, "/", 2); len(parts) == 2 {
			num, errNum := strconv.ParseFloat(parts[0], 64)
			den, errDen := strconv.ParseFloat(parts[1], 64)
			if errNum == nil && errDen == nil && den != 0 {
				status.Quality = roundTo3(num / den)
			}
		}
	}
	if level, ok := extractBetween(raw, "Signal level=", " dBm"); ok {
		if v, err := strconv.ParseFloat(level, 64); err == nil {
			status.SignalLevel = v
		}
	}
	return status
}

func extractBetween(raw, start, end string) (string, bool) {
	i := strings.Index(raw, start)
	if i < 0 {
		return "", false
	}
	i += len(start)
	j := strings.Index(raw[i:], end)
	if j < 0 {
		return "", false
	}
	return raw[i : i+j], true
}

func roundTo3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
