/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	gga.go: position and time handling.
*/

package nav

import (
	"time"

	"github.com/adrianmo/go-nmea"
)

// updateGGA updates position, altitude, geoid separation and UTC time.
// Altitude and geoid separation must both be reported in meters ("M");
// anything else is a unit mismatch and fails with *Error without mutating
// state. Caller holds monitorMu.
func (m *Monitor) updateGGA(s nmea.GGA) error {
	if s.AltitudeUnits != "" && s.AltitudeUnits != "M" {
		return newError("unsupported GGA altitude unit: " + s.AltitudeUnits)
	}
	if s.SeparationUnits != "" && s.SeparationUnits != "M" {
		return newError("unsupported GGA geoid separation unit: " + s.SeparationUnits)
	}

	m.pos.Latitude = s.Latitude
	m.pos.Longitude = s.Longitude
	m.pos.AltitudeM = s.Altitude
	m.pos.GeoidSeparationM = s.Separation

	if ts, ok := ggaTimestamp(s.Time); ok {
		m.pos.UtcTimestamp = ts
		m.pos.HasUtcTimestamp = true
	}

	m.ggaSeenThisCycle = true
	return nil
}

// ggaTimestamp converts an nmea.Time (time-of-day only) into today's UTC
// time-of-day. GGA carries no date field.
func ggaTimestamp(t nmea.Time) (time.Time, bool) {
	if t.Hour == 0 && t.Minute == 0 && t.Second == 0 && t.Millisecond == 0 {
		return time.Time{}, false
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, t.Second, t.Millisecond*1e6, time.UTC), true
}
