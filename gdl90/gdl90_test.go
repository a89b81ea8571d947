package gdl90

import (
	"bytes"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hexDecode(s)
	if err != nil {
		t.Fatalf("bad hex literal: %v", err)
	}
	return b
}

// hexDecode avoids importing encoding/hex just for whitespace-separated
// hex literals used throughout this file's test vectors.
func hexDecode(s string) ([]byte, error) {
	var out []byte
	var hi byte
	have := false
	for _, r := range s {
		var v byte
		switch {
		case r == ' ' || r == '\n' || r == '\t':
			continue
		case r >= '0' && r <= '9':
			v = byte(r - '0')
		case r >= 'A' && r <= 'F':
			v = byte(r-'A') + 10
		case r >= 'a' && r <= 'f':
			v = byte(r-'a') + 10
		default:
			return nil, newError("bad hex digit")
		}
		if !have {
			hi = v
			have = true
		} else {
			out = append(out, hi<<4|v)
			have = false
		}
	}
	return out, nil
}

func TestEncodeHeartbeat(t *testing.T) {
	got := EncodeHeartbeat(HeartbeatInput{
		UatInitialized:          true,
		GpsPositionValid:        true,
		GpsBatteryLow:           false,
		SecondsSinceMidnightUTC: 54502,
		UplinkMessageCount:      4,
		BasicLongMessageCount:   567,
	})
	want := mustHex(t, "7E 00 81 00 E6 D4 22 37 56 B8 7E")
	if !bytes.Equal(got, want) {
		t.Errorf("heartbeat mismatch:\n got  % X\n want % X", got, want)
	}
}

func TestEncodeTrafficReport(t *testing.T) {
	got, err := EncodeTrafficReport(ReportInput{
		AddressType:             AddrADSBWithICAO,
		Alert:                   NoAlert,
		Address:                 0xAB4549,
		Latitude:                44.90708,
		Longitude:               -122.99488,
		AltitudeFt:               5000,
		HasAltitude:              true,
		Track:                    TrackTrueTrackAngle,
		Report:                   ReportUpdated,
		Airborne:                 Airborne,
		TrackDegrees:             45,
		NIC:                      10,
		NACp:                     9,
		HorizontalVelocityKnots:  123,
		HasHorizontalVelocity:    true,
		VerticalVelocityFtMin:    64,
		HasVerticalVelocity:      true,
		EmitterCategory:          EmitterLight,
		Callsign:                 "N825V",
		Emergency:                NoEmergency,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustHex(t, "7E 14 00 AB 45 49 1F EF 15 A8 89 78 0F 09 A9 07 B0 01 20 01 4E 38 32 35 56 20 20 20 00 57 D6 7E")
	if !bytes.Equal(got, want) {
		t.Errorf("traffic report mismatch:\n got  % X\n want % X", got, want)
	}
}

func TestEncodeOwnshipReport(t *testing.T) {
	got, err := EncodeOwnshipReport(ReportInput{
		AddressType:             AddrADSBWithICAO,
		Alert:                   NoAlert,
		Address:                 0,
		Latitude:                49.99999999986941,
		Longitude:               8.000522948457947,
		AltitudeFt:               3280,
		HasAltitude:              true,
		Track:                    TrackTrueTrackAngle,
		Report:                   ReportUpdated,
		Airborne:                 Airborne,
		TrackDegrees:             90,
		NIC:                      8,
		NACp:                     9,
		HorizontalVelocityKnots:  80,
		HasHorizontalVelocity:    true,
		VerticalVelocityFtMin:    0,
		HasVerticalVelocity:      true,
		EmitterCategory:          EmitterLight,
		Callsign:                 "D-EZAA",
		Emergency:                NoEmergency,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustHex(t, "7E 0A 00 00 00 00 23 8E 38 05 B0 73 0A B9 89 05 00 00 40 01 44 2D 45 5A 41 41 20 20 00 37 22 7E")
	if !bytes.Equal(got, want) {
		t.Errorf("ownship report mismatch:\n got  % X\n want % X", got, want)
	}
}

func TestEncodeOwnshipGeoAltitude(t *testing.T) {
	got := EncodeOwnshipGeoAltitude(GeoAltitudeInput{
		AltitudeFt:      3280,
		VerticalMerit:   50,
		HasMerit:        true,
		VerticalWarning: false,
	})
	want := mustHex(t, "7E 0B 02 90 00 32 18 15 7E")
	if !bytes.Equal(got, want) {
		t.Errorf("geo altitude mismatch:\n got  % X\n want % X", got, want)
	}
}

func TestEncodeTrackBoundaries(t *testing.T) {
	zero, err := encodeTrack(0)
	if err != nil || zero != 0 {
		t.Fatalf("track=0: got %v, %v", zero, err)
	}
	wrapped, err := encodeTrack(360)
	if err != nil || wrapped != 0 {
		t.Fatalf("track=360 should wrap to 0: got %v, %v", wrapped, err)
	}
	if _, err := encodeTrack(-1); err == nil {
		t.Error("track=-1 should fail")
	}
	if _, err := encodeTrack(360.5); err == nil {
		t.Error("track>360 should fail")
	}
}

func TestEncodeAltitudeBoundaries(t *testing.T) {
	if got := encodeAltitude(-1000); got != 0 {
		t.Errorf("altitude=-1000 should encode to 0, got %#x", got)
	}
	if got := encodeAltitude(101350); got != 0xFFE {
		t.Errorf("altitude=101350 should saturate to 0xFFE, got %#x", got)
	}
}

func TestEncodeLatLonRoundTrip(t *testing.T) {
	const scale = 0x7FFFFF / 180.0
	for _, v := range []float64{0, 44.90708, -122.99488, 90, -90, 179.999} {
		encoded := encodeLatLon(v)
		signed := int32(encoded << 8) >> 8
		decoded := float64(signed) / scale
		if diff := decoded - v; diff > 1.0/scale || diff < -1.0/scale {
			t.Errorf("round trip for %v off by more than one ULP: decoded=%v", v, decoded)
		}
	}
}

func TestCrcRecomputeMatchesTransmitted(t *testing.T) {
	frame, err := EncodeOwnshipReport(ReportInput{
		AddressType:             AddrADSBWithICAO,
		TrackDegrees:            10,
		HasAltitude:             true,
		AltitudeFt:              1000,
		HasHorizontalVelocity:   true,
		HasVerticalVelocity:     true,
		EmitterCategory:         EmitterLight,
		Callsign:                "TEST",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame[0] != flagByte || frame[len(frame)-1] != flagByte {
		t.Fatalf("frame not flag-wrapped: % X", frame)
	}
	unwrapped := unstuff(frame[1 : len(frame)-1])
	body := unwrapped[:len(unwrapped)-2]
	wantCrc := uint16(unwrapped[len(unwrapped)-2])<<8 | uint16(unwrapped[len(unwrapped)-1])
	gotCrc := crcCompute(body)
	if gotCrc != wantCrc {
		t.Errorf("recomputed CRC %#04x does not match transmitted %#04x", gotCrc, wantCrc)
	}
}

// unstuff reverses stuffBytes, for use by tests that need to recover the
// original (unescaped) body.
func unstuff(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == escapeByte && i+1 < len(data) {
			out = append(out, data[i+1]^escapeXor)
			i++
		} else {
			out = append(out, data[i])
		}
	}
	return out
}
