/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	vtg.go: course-over-ground and speed handling.
*/

package nav

import "github.com/adrianmo/go-nmea"

// updateVTG updates true/magnetic track and ground speed. Caller holds
// monitorMu.
func (m *Monitor) updateVTG(s nmea.VTG) {
	m.pos.TrueTrack = s.TrueTrack
	m.pos.MagneticTrack = s.MagneticTrack
	m.pos.GroundSpeedKt = s.GroundSpeedKnots
	m.pos.GroundSpeedKph = s.GroundSpeedKPH
	m.vtgSeenThisCycle = true
}
