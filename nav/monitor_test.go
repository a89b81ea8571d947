package nav

import (
	"testing"

	"github.com/adrianmo/go-nmea"
)

func TestUpdateCycleCompletesAndNotifies(t *testing.T) {
	m := NewMonitor()

	var got []PosInfo
	m.RegisterObserver(ObserverFunc(func(info PosInfo) {
		got = append(got, info)
	}))

	sentences := []string{
		"$GPGSV,2,1,05,10,63,137,17,07,61,034,39,05,59,130,33,08,54,314,39*7B",
		"$GPGSV,2,2,05,02,39,228,27*49",
		"$GPGSA,A,3,10,07,05,08,,,,,,,,,1.5,0.9,1.2*37",
		"$GPVTG,45.0,T,43.2,M,12.3,N,22.8,K,A*2F",
		"$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47",
	}
	for _, s := range sentences {
		if err := m.Handle(s); err != nil {
			t.Fatalf("unexpected error handling %q: %v", s, err)
		}
	}

	if len(got) != 1 {
		t.Fatalf("expected exactly one completed cycle, got %d", len(got))
	}
	pos := got[0]
	if pos.NavMode != Fix3D {
		t.Errorf("expected Fix3D, got %v", pos.NavMode)
	}
	if pos.TrueTrack != 45.0 {
		t.Errorf("expected TrueTrack 45.0, got %v", pos.TrueTrack)
	}
	if pos.Latitude <= 0 {
		t.Errorf("expected positive (N) latitude, got %v", pos.Latitude)
	}

	sats := m.Satellites()
	if len(sats) != 5 {
		t.Fatalf("expected 5 satellites committed from the GSV cycle, got %d", len(sats))
	}
	if sat, ok := sats["G10"]; !ok || !sat.Used {
		t.Errorf("expected G10 to be marked used, got %+v, ok=%v", sat, ok)
	}
	if sat := sats["G10"]; sat.Id != 10 {
		t.Errorf("expected raw satellite id 10 for G10, got %d", sat.Id)
	}
	if sat, ok := sats["G2"]; !ok || sat.Used {
		t.Errorf("expected G2 to be present and not used, got %+v, ok=%v", sat, ok)
	}
}

func TestGSVOutOfOrderResetsCycle(t *testing.T) {
	m := NewMonitor()
	// msgNum=2 arrives without a preceding msgNum=1 for this talker.
	if err := m.Handle("$GPGSV,2,2,05,02,39,228,27*49"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.gsvCommittedThisCycle {
		t.Error("an out-of-order GSV message must not commit")
	}
	if len(m.satellites) != 0 {
		t.Errorf("expected no satellites committed, got %d", len(m.satellites))
	}
}

func TestGGAUnitMismatchFails(t *testing.T) {
	m := NewMonitor()

	parsed, err := nmea.Parse("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47")
	if err != nil {
		t.Fatalf("failed to parse fixture sentence: %v", err)
	}
	gga := parsed.(nmea.GGA)
	gga.AltitudeUnits = "F" // feet, not the required meters

	before := m.pos
	if err := m.updateGGA(gga); err == nil {
		t.Error("expected an error for a non-meter altitude unit")
	}
	if m.pos != before {
		t.Error("a rejected GGA must not mutate PosInfo")
	}
}

func TestGSATalkerRotationWithoutUsedSatellites(t *testing.T) {
	m := NewMonitor()
	m.gsaTalkers = []string{"GP", "GL"}

	first := m.inferGSATalker(nil)
	second := m.inferGSATalker(nil)
	third := m.inferGSATalker(nil)

	if first != "GP" || second != "GL" || third != "GP" {
		t.Errorf("expected rotation GP, GL, GP; got %s, %s, %s", first, second, third)
	}
}

func TestDerivePRN(t *testing.T) {
	cases := map[int]string{
		3:   "G3",
		40:  "S127",
		70:  "R6",
		175: "I3",
		195: "Q3",
		310: "E10",
		410: "B10",
	}
	for id, want := range cases {
		if got := derivePRN(id); got != want {
			t.Errorf("derivePRN(%d) = %s, want %s", id, got, want)
		}
	}
}
