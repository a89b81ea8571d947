package traffic

import (
	"testing"
	"time"

	"github.com/gravity981/easyadsb-monitor/sbs"
)

func ptr[T any](v T) *T { return &v }

func TestUpdatePromotesSplitFields(t *testing.T) {
	m := NewMonitor(nil, nil, nil, 0)

	var notifications []Entry
	m.RegisterObserver(ObserverFunc(func(e Entry) {
		notifications = append(notifications, e)
	}))

	first := sbs.Message{
		HexIdent:  "AABBCC",
		Latitude:  ptr(44.9),
		Longitude: ptr(-122.9),
	}
	if err := m.Update("AABBCC", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := sbs.Message{
		HexIdent: "AABBCC",
		Altitude: ptr(5000),
		Track:    ptr(90),
		GroundSpeed: ptr(120),
	}
	if err := m.Update("AABBCC", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := m.Snapshot()
	entry, ok := snap["AABBCC"]
	if !ok {
		t.Fatalf("expected an entry for AABBCC")
	}
	if entry.MsgCount != 2 {
		t.Errorf("expected msgCount 2, got %d", entry.MsgCount)
	}
	if entry.Latitude == nil || entry.Longitude == nil || entry.Altitude == nil || entry.Track == nil || entry.GroundSpeed == nil {
		t.Errorf("expected all five fields populated after the second update, got %+v", entry)
	}
	if len(notifications) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(notifications))
	}
}

func TestUpdateEnrichesFromDatabases(t *testing.T) {
	aircraftDB := AircraftDB{"AABBCC": {Callsign: "SWISS1", Type: "A320"}}
	typeDB := TypeDB{"A320": {Name: "Airbus A320", Descr: "L2J", Wtc: "M"}}
	typeExtDB := TypeExtensionDB{"A320": CategoryLarge}

	m := NewMonitor(aircraftDB, typeDB, typeExtDB, 42)
	if err := m.Update("AABBCC", sbs.Message{HexIdent: "AABBCC"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := m.Snapshot()["AABBCC"]
	if entry.Callsign == nil || *entry.Callsign != "SWISS1" {
		t.Errorf("expected callsign SWISS1, got %v", entry.Callsign)
	}
	if entry.Category != CategoryLarge {
		t.Errorf("expected category Large, got %v", entry.Category)
	}
	if m.DBVersion() != 42 {
		t.Errorf("expected dbVersion 42, got %d", m.DBVersion())
	}
}

func TestUpdateMismatchedHexIdentFails(t *testing.T) {
	m := NewMonitor(nil, nil, nil, 0)
	if err := m.Update("AABBCC", sbs.Message{HexIdent: "AABBCC"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := m.Snapshot()["AABBCC"]

	// force a key mismatch by calling Entry.Update directly with a
	// different hexIdent than the entry was created for
	entry := &Entry{ID: 0xAABBCC}
	if err := entry.Update("112233", sbs.Message{}); err == nil {
		t.Error("expected a mismatch error")
	}

	after := m.Snapshot()["AABBCC"]
	if before.MsgCount != after.MsgCount {
		t.Error("a failed update must not have touched monitor state")
	}
}

func TestCleanupEvictsStaleEntries(t *testing.T) {
	m := NewMonitor(nil, nil, nil, 0)
	m.maxAge = 10 * time.Millisecond
	if err := m.Update("AABBCC", sbs.Message{HexIdent: "AABBCC"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	m.Cleanup()

	if _, ok := m.Snapshot()["AABBCC"]; ok {
		t.Error("expected AABBCC to be evicted after exceeding maxAge")
	}
}

func TestClearHistoryRemovesAllEntries(t *testing.T) {
	m := NewMonitor(nil, nil, nil, 0)
	if err := m.Update("AABBCC", sbs.Message{HexIdent: "AABBCC"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Update("DDEEFF", sbs.Message{HexIdent: "DDEEFF"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.ClearHistory()
	if len(m.Snapshot()) != 0 {
		t.Error("expected ClearHistory to empty the registry")
	}
}

func TestDistanceLogFragmentWithoutProvider(t *testing.T) {
	m := NewMonitor(nil, nil, nil, 0)
	entry := &Entry{Latitude: ptr(1.0), Longitude: ptr(2.0)}
	if got := m.distanceLogFragment(entry); got != "dist=?" {
		t.Errorf("expected dist=? without a provider, got %q", got)
	}
}

func TestDistanceLogFragmentWithProvider(t *testing.T) {
	m := NewMonitor(nil, nil, nil, 0)
	m.SetOwnshipPositionProvider(func() (float64, float64, bool) {
		return 47.3769, 8.5417, true
	})
	entry := &Entry{Latitude: ptr(47.3769), Longitude: ptr(8.5417)}
	if got := m.distanceLogFragment(entry); got != "dist=0.0km" {
		t.Errorf("expected zero distance for an identical point, got %q", got)
	}
}

func TestStartAutoCleanupIsIdempotent(t *testing.T) {
	m := NewMonitor(nil, nil, nil, 0)
	m.cleanupInterval = 5 * time.Millisecond
	m.StartAutoCleanup()
	first := m.cleanupStop
	m.StartAutoCleanup()
	if m.cleanupStop != first {
		t.Error("expected StartAutoCleanup to be a no-op when already running")
	}
	m.StopAutoCleanup()
}
