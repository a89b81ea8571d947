/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	monitor.go: the Navigation Monitor. Fuses GSV/GSA/VTG/GGA sentences and
	a barometric snapshot into one PosInfo, publishing it once per complete
	update cycle.
*/

package nav

import (
	"sync"

	"github.com/adrianmo/go-nmea"
	"github.com/gravity981/easyadsb-monitor/common"
)

// Error reports a unit mismatch or other sentence-level inconsistency.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func newError(msg string) *Error { return &Error{msg: msg} }

type gsvCycle struct {
	expectedMsgNum int
	numMsg         int
	scratch        map[string]*SatInfo
	active         bool
}

// Monitor is the Navigation Monitor. All public methods take monitorMu.
type Monitor struct {
	monitorMu sync.Mutex

	satellites map[string]*SatInfo
	gsvState   map[string]*gsvCycle // keyed by talker

	pos PosInfo

	gsvCommittedThisCycle bool
	gsaSeenThisCycle      bool
	vtgSeenThisCycle      bool
	ggaSeenThisCycle      bool

	gsaTalkers    []string // registration order, for the rotation heuristic
	gsaRotateIdx  int

	observers []Observer
}

// NewMonitor constructs an empty Navigation Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		satellites: make(map[string]*SatInfo),
		gsvState:   make(map[string]*gsvCycle),
	}
}

// RegisterObserver adds an observer notified at the end of every completed
// update cycle. Takes monitorMu like Handle, so it must not be called from
// inside an observer.
func (m *Monitor) RegisterObserver(o Observer) {
	m.monitorMu.Lock()
	defer m.monitorMu.Unlock()
	m.observers = append(m.observers, o)
}

// Snapshot returns a deep copy of the current position record.
func (m *Monitor) Snapshot() PosInfo {
	m.monitorMu.Lock()
	defer m.monitorMu.Unlock()
	return m.pos
}

// Satellites returns a deep copy of the current satellite table.
func (m *Monitor) Satellites() map[string]SatInfo {
	m.monitorMu.Lock()
	defer m.monitorMu.Unlock()
	out := make(map[string]SatInfo, len(m.satellites))
	for k, v := range m.satellites {
		out[k] = *v
	}
	return out
}

// Handle parses and dispatches one NMEA sentence. Unknown or malformed
// sentences are logged and ignored; unit mismatches in GGA return a
// *Error.
func (m *Monitor) Handle(raw string) error {
	s, err := nmea.Parse(raw)
	if err != nil {
		common.LogWrn("nav: failed to parse sentence %q: %v", raw, err)
		return nil
	}

	m.monitorMu.Lock()
	defer m.monitorMu.Unlock()

	switch sentence := s.(type) {
	case nmea.GSV:
		m.updateGSV(sentence)
	case nmea.GSA:
		m.updateGSA(sentence)
	case nmea.VTG:
		m.updateVTG(sentence)
	case nmea.GGA:
		if err := m.updateGGA(sentence); err != nil {
			return err
		}
	default:
		return nil
	}

	m.maybeCompleteCycle()
	return nil
}

// HandleEnvironment folds a barometric/humidity sensor reading into PosInfo.
// The source reports this out-of-band from GNSS sentences, on its own
// "bme" topic; it does not itself complete an update cycle.
func (m *Monitor) HandleEnvironment(humidityPercent, pressureHPa, temperatureC, pressureAltitudeM float64) {
	m.monitorMu.Lock()
	defer m.monitorMu.Unlock()
	m.pos.HumidityPercent = humidityPercent
	m.pos.PressureHPa = pressureHPa
	m.pos.TemperatureC = temperatureC
	m.pos.AltitudeM = pressureAltitudeM
	m.pos.HasEnvironment = true
}

func (m *Monitor) maybeCompleteCycle() {
	if m.gsvCommittedThisCycle && m.gsaSeenThisCycle && m.vtgSeenThisCycle && m.ggaSeenThisCycle {
		snapshot := m.pos
		observers := append([]Observer(nil), m.observers...)
		for _, o := range observers {
			o.OnPosition(snapshot)
		}
		m.gsvCommittedThisCycle = false
		m.gsaSeenThisCycle = false
		m.vtgSeenThisCycle = false
		m.ggaSeenThisCycle = false
	}
}
