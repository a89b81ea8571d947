/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	gsa.go: used-satellites/DOP handling, including the talker-inference
	heuristic flagged in DESIGN.md's Open Question decisions.
*/

package nav

import (
	"strconv"

	"github.com/adrianmo/go-nmea"
)

// updateGSA updates nav/operation mode, DOP, and the used-for-navigation
// flag across satellites. A GSA's own Talker is always the combined "GN"
// tag; the real constellation talker is inferred from the first used
// satellite id, falling back to rotating previously-seen GSA talkers when
// no satellites are listed. Caller holds monitorMu.
func (m *Monitor) updateGSA(s nmea.GSA) {
	switch s.Mode {
	case string(OperationManual):
		m.pos.OperationMode = OperationManual
	case string(OperationAutomatic):
		m.pos.OperationMode = OperationAutomatic
	}

	switch s.FixType {
	case "1":
		m.pos.NavMode = NoFix
	case "2":
		m.pos.NavMode = Fix2D
	case "3":
		m.pos.NavMode = Fix3D
	}

	m.pos.PDOP = s.PDOP
	m.pos.HasPDOP = s.PDOP != 0
	m.pos.HDOP = s.HDOP
	m.pos.HasHDOP = s.HDOP != 0
	m.pos.VDOP = s.VDOP
	m.pos.HasVDOP = s.VDOP != 0

	usedIds := make([]int, 0, len(s.SV))
	for _, raw := range s.SV {
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		usedIds = append(usedIds, id)
	}

	talker := m.inferGSATalker(usedIds)
	m.markUsedSatellites(talker, usedIds)

	m.gsaSeenThisCycle = true
}

// inferGSATalker derives which constellation this GSA actually describes.
// It also records previously-seen talkers in registration order so the
// rotation fallback has something to rotate through.
func (m *Monitor) inferGSATalker(usedIds []int) string {
	if len(usedIds) > 0 {
		talker := talkerForSatelliteId(usedIds[0])
		m.rememberGSATalker(talker)
		return talker
	}

	if len(m.gsaTalkers) == 0 {
		return "GN"
	}
	talker := m.gsaTalkers[m.gsaRotateIdx%len(m.gsaTalkers)]
	m.gsaRotateIdx++
	return talker
}

func (m *Monitor) rememberGSATalker(talker string) {
	for _, t := range m.gsaTalkers {
		if t == talker {
			return
		}
	}
	m.gsaTalkers = append(m.gsaTalkers, talker)
}

// markUsedSatellites sets Used=true on every satellite this GSA names and
// Used=false on every other satellite belonging to the inferred talker.
func (m *Monitor) markUsedSatellites(talker string, usedIds []int) {
	usedPRNs := make(map[string]bool, len(usedIds))
	for _, id := range usedIds {
		usedPRNs[derivePRN(id)] = true
	}
	for prn, sat := range m.satellites {
		if sat.Talker != talker {
			continue
		}
		sat.Used = usedPRNs[prn]
	}
}
