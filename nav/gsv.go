/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	gsv.go: per-talker satellites-in-view cycle handling.
*/

package nav

import "github.com/adrianmo/go-nmea"

// updateGSV accumulates one GSV message into the per-talker scratch state
// and commits it into the authoritative satellite table on the final
// message of the cycle. Caller holds monitorMu.
func (m *Monitor) updateGSV(s nmea.GSV) {
	talker := s.Talker
	cycle, ok := m.gsvState[talker]
	if !ok {
		cycle = &gsvCycle{}
		m.gsvState[talker] = cycle
	}

	msgNum := int(s.MessageNumber)
	numMsg := int(s.TotalMessages)

	if msgNum == 1 {
		cycle.scratch = make(map[string]*SatInfo)
		cycle.expectedMsgNum = 1
		cycle.numMsg = numMsg
		cycle.active = true
	}

	if !cycle.active || msgNum != cycle.expectedMsgNum || numMsg != cycle.numMsg {
		// Out-of-order message for this talker: abort and reset.
		cycle.active = false
		cycle.scratch = nil
		return
	}

	for _, info := range s.Info {
		if info.SVPRNNumber == 0 {
			continue
		}
		id := int(info.SVPRNNumber)
		prn := derivePRN(id)
		elevation := int(info.Elevation)
		azimuth := int(info.Azimuth)
		snr := int(info.SNR)
		cycle.scratch[prn] = &SatInfo{
			Id:           id,
			PRN:          prn,
			Talker:       talker,
			Elevation:    elevation,
			HasElevation: elevation != 0,
			Azimuth:      azimuth,
			HasAzimuth:   azimuth != 0,
			SNR:          snr,
			HasSNR:       snr != 0,
		}
	}

	cycle.expectedMsgNum++

	if msgNum == numMsg {
		m.commitGSV(talker, cycle)
		cycle.active = false
	}
}

// commitGSV merges a talker's completed scratch map into the authoritative
// satellite table: update-in-place for known PRNs, insert new ones, and
// delete PRNs owned by this talker that are absent from the scratch.
func (m *Monitor) commitGSV(talker string, cycle *gsvCycle) {
	for prn, existing := range m.satellites {
		if existing.Talker != talker {
			continue
		}
		if _, stillPresent := cycle.scratch[prn]; !stillPresent {
			delete(m.satellites, prn)
		}
	}
	for prn, fresh := range cycle.scratch {
		if existing, ok := m.satellites[prn]; ok {
			existing.Id = fresh.Id
			existing.Elevation = fresh.Elevation
			existing.HasElevation = fresh.HasElevation
			existing.Azimuth = fresh.Azimuth
			existing.HasAzimuth = fresh.HasAzimuth
			existing.SNR = fresh.SNR
			existing.HasSNR = fresh.HasSNR
		} else {
			m.satellites[prn] = fresh
		}
	}
	m.gsvCommittedThisCycle = true
}
