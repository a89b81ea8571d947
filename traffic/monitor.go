/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	monitor.go: the Traffic Monitor — a keyed registry of Entry, enriched
	from the aircraft/type/type-extension databases on first sight and
	evicted on a configurable cleanup tick.
*/

package traffic

import (
	"fmt"
	"sync"
	"time"

	geo "github.com/kellydunn/golang-geo"

	"github.com/gravity981/easyadsb-monitor/common"
	"github.com/gravity981/easyadsb-monitor/sbs"
)

const (
	defaultCleanupInterval = 10 * time.Second
	defaultMaxAge          = 300 * time.Second
)

// Observer receives a notification on every Update, whether it created a
// new Entry or merged into an existing one. Called while the monitor holds
// its lock; it must not call back into the monitor that invoked it.
type Observer interface {
	OnTrafficUpdate(entry Entry)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(entry Entry)

func (f ObserverFunc) OnTrafficUpdate(entry Entry) { f(entry) }

// Monitor is the Traffic Monitor.
type Monitor struct {
	mu sync.Mutex

	entries map[string]*Entry

	aircraftDB      AircraftDB
	typeDB          TypeDB
	typeExtensionDB TypeExtensionDB
	dbVersion       int

	observers []Observer

	cleanupInterval time.Duration
	maxAge          time.Duration
	cleanupStop     chan struct{}
	cleanupDone     chan struct{}

	ownshipPosition func() (lat, lon float64, ok bool)
}

// SetOwnshipPositionProvider registers a callback used only to annotate the
// "new aircraft sighted" log line with its great-circle distance from
// ownship. Nil (the default) omits the distance from the log line.
func (m *Monitor) SetOwnshipPositionProvider(f func() (lat, lon float64, ok bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ownshipPosition = f
}

// NewMonitor constructs a Monitor backed by the given enrichment databases.
// Any of them may be nil.
func NewMonitor(aircraftDB AircraftDB, typeDB TypeDB, typeExtensionDB TypeExtensionDB, dbVersion int) *Monitor {
	return &Monitor{
		entries:         make(map[string]*Entry),
		aircraftDB:      aircraftDB,
		typeDB:          typeDB,
		typeExtensionDB: typeExtensionDB,
		dbVersion:       dbVersion,
		cleanupInterval: defaultCleanupInterval,
		maxAge:          defaultMaxAge,
	}
}

// DBVersion reports the version of the enrichment databases in use.
func (m *Monitor) DBVersion() int { return m.dbVersion }

// RegisterObserver adds an observer for Entry updates.
func (m *Monitor) RegisterObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// Snapshot returns a deep copy of the current entries, keyed by hexIdent.
func (m *Monitor) Snapshot() map[string]Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Entry, len(m.entries))
	for k, v := range m.entries {
		out[k] = *v
	}
	return out
}

// Update applies one SBS-1 message, keyed by hexIdent: merges into an
// existing Entry, or enriches and creates a new one. Always notifies
// observers with the resulting Entry.
func (m *Monitor) Update(hexIdent string, msg sbs.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[hexIdent]
	if ok {
		if err := entry.Update(hexIdent, msg); err != nil {
			return err
		}
	} else {
		callsign, typ := m.aircraftDB.lookup(hexIdent)
		if callsign == nil {
			callsign = msg.Callsign
		}
		name, descr, wtc := m.typeDB.lookup(typ)
		category := m.typeExtensionDB.lookup(typ)
		entry = newEntry(hexIdent, callsign, typ, name, descr, wtc, category, msg)
		m.entries[hexIdent] = entry
		common.LogInf("traffic: add new %X, %v, %v, %v, %s (count %d)", entry.ID, derefString(entry.Callsign), derefString(entry.Type), entry.Category, m.distanceLogFragment(entry), len(m.entries))
	}

	for _, o := range m.observers {
		o.OnTrafficUpdate(*entry)
	}
	return nil
}

// StartAutoCleanup starts the periodic eviction tick. Idempotent: calling
// it while already started has no effect.
func (m *Monitor) StartAutoCleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cleanupStop != nil {
		return
	}
	m.cleanupStop = make(chan struct{})
	m.cleanupDone = make(chan struct{})
	interval := m.cleanupInterval
	stop := m.cleanupStop
	done := m.cleanupDone
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				m.Cleanup()
			}
		}
	}()
	common.LogInf("traffic: started auto cleanup timer")
}

// StopAutoCleanup stops the periodic eviction tick, if running.
func (m *Monitor) StopAutoCleanup() {
	m.mu.Lock()
	stop := m.cleanupStop
	done := m.cleanupDone
	m.cleanupStop = nil
	m.cleanupDone = nil
	m.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
	common.LogInf("traffic: stopped auto cleanup timer")
}

// Cleanup removes every entry whose LastSeen age exceeds maxAge.
func (m *Monitor) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for k, entry := range m.entries {
		if now.Sub(entry.LastSeen) > m.maxAge {
			common.LogInf("traffic: remove %X, %v, %v, %v (unseen for >%s)", entry.ID, derefString(entry.Callsign), derefString(entry.Type), entry.Category, m.maxAge)
			delete(m.entries, k)
		}
	}
}

// ClearHistory removes every entry immediately, regardless of age.
func (m *Monitor) ClearHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.entries)
	m.entries = make(map[string]*Entry)
	common.LogInf("traffic: cleared history (%d entries removed)", n)
}

// distanceLogFragment renders the great-circle distance from ownship to
// entry, if both an ownship position provider and the entry's own
// latitude/longitude are available.
func (m *Monitor) distanceLogFragment(entry *Entry) string {
	if m.ownshipPosition == nil || entry.Latitude == nil || entry.Longitude == nil {
		return "dist=?"
	}
	lat, lon, ok := m.ownshipPosition()
	if !ok {
		return "dist=?"
	}
	ownship := geo.NewPoint(lat, lon)
	other := geo.NewPoint(*entry.Latitude, *entry.Longitude)
	return fmt.Sprintf("dist=%.1fkm", ownship.GreatCircleDistance(other))
}

func derefString(s *string) string {
	if s == nil {
		return "?"
	}
	return *s
}
