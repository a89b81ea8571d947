/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	convert.go: domain-to-wire conversions from PosInfo/traffic.Entry to the
	GDL90 codec's input structs.
*/

package convert

import (
	"github.com/gravity981/easyadsb-monitor/egress"
	"github.com/gravity981/easyadsb-monitor/gdl90"
	"github.com/gravity981/easyadsb-monitor/nav"
	"github.com/gravity981/easyadsb-monitor/traffic"
)

const metersToFeet = 3.28084

// Converter turns nav.PosInfo and traffic.Entry notifications into GDL90
// messages and forwards them to an egress.Port. It also drives the
// once-per-second heartbeat.
type Converter struct {
	port       *egress.Port
	navMonitor *nav.Monitor

	uplinkMsgCount       int
	basicLongMsgCount    int
}

// NewConverter constructs a Converter that sends through port and reads
// heartbeat snapshots from navMonitor.
func NewConverter(port *egress.Port, navMonitor *nav.Monitor) *Converter {
	return &Converter{port: port, navMonitor: navMonitor}
}

// OnPosition implements nav.Observer: emits an Ownship Report and an
// Ownship Geometric Altitude message for every completed nav update cycle.
func (c *Converter) OnPosition(info nav.PosInfo) {
	c.send(egress.Message{Kind: egress.KindOwnship, Report: toOwnshipReport(info)})
	c.send(egress.Message{Kind: egress.KindGeoAltitude, GeoAltitude: toOwnshipGeoAltitude(info)})
}

// OnTrafficUpdate implements traffic.Observer: emits a Traffic Report for
// every traffic entry update.
func (c *Converter) OnTrafficUpdate(entry traffic.Entry) {
	c.send(egress.Message{Kind: egress.KindTraffic, Report: toTrafficReport(entry)})
}

func (c *Converter) send(msg egress.Message) {
	if !c.port.IsActive() {
		return
	}
	c.port.PutMessage(msg)
}

func toOwnshipReport(info nav.PosInfo) gdl90.ReportInput {
	return gdl90.ReportInput{
		AddressType:              gdl90.AddrADSBWithICAO,
		Alert:                    gdl90.NoAlert,
		Address:                  0,
		Latitude:                 info.Latitude,
		Longitude:                info.Longitude,
		AltitudeFt:               int(info.AltitudeM * metersToFeet),
		HasAltitude:              true,
		Track:                    gdl90.TrackTrueTrackAngle,
		Report:                   gdl90.ReportUpdated,
		Airborne:                 gdl90.Airborne,
		TrackDegrees:             info.TrueTrack,
		NIC:                      byte(ownshipNavScore(info.NavMode)),
		NACp:                     byte(ownshipNavScore(info.NavMode)),
		HorizontalVelocityKnots:  int(info.GroundSpeedKt),
		HasHorizontalVelocity:    true,
		VerticalVelocityFtMin:    0,
		HasVerticalVelocity:      true,
		EmitterCategory:          gdl90.EmitterLight,
		Callsign:                 "",
		Emergency:                gdl90.NoEmergency,
	}
}

func toOwnshipGeoAltitude(info nav.PosInfo) gdl90.GeoAltitudeInput {
	return gdl90.GeoAltitudeInput{
		AltitudeFt:      int(info.AltitudeM * metersToFeet),
		VerticalMerit:   50,
		HasMerit:        true,
		VerticalWarning: false,
	}
}

func toHeartbeat(info nav.PosInfo, uplinkMsgCount, basicLongMsgCount int) gdl90.HeartbeatInput {
	seconds, ok := secondsSinceMidnightUTC(info)
	return gdl90.HeartbeatInput{
		UatInitialized:          ok,
		GpsPositionValid:        info.NavMode != nav.NoFix,
		GpsBatteryLow:           false,
		SecondsSinceMidnightUTC: uint32(seconds),
		UplinkMessageCount:      uplinkMsgCount,
		BasicLongMessageCount:   basicLongMsgCount,
	}
}

func secondsSinceMidnightUTC(info nav.PosInfo) (int, bool) {
	if !info.HasUtcTimestamp {
		return 0, false
	}
	t := info.UtcTimestamp
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), true
}

func ownshipNavScore(mode nav.NavMode) int {
	switch mode {
	case nav.Fix2D:
		return 5
	case nav.Fix3D:
		return 9
	default:
		return 0
	}
}

func toTrafficReport(entry traffic.Entry) gdl90.ReportInput {
	callsign := ""
	if entry.Callsign != nil {
		callsign = *entry.Callsign
	}
	return gdl90.ReportInput{
		AddressType:              gdl90.AddrADSBWithICAO,
		Alert:                    gdl90.NoAlert,
		Address:                  entry.ID,
		Latitude:                 derefFloat(entry.Latitude),
		Longitude:                derefFloat(entry.Longitude),
		AltitudeFt:               derefInt(entry.Altitude),
		HasAltitude:              true,
		Track:                    gdl90.TrackTrueTrackAngle,
		Report:                   gdl90.ReportUpdated,
		Airborne:                 airborneIndicator(entry.IsOnGround),
		TrackDegrees:             float64(derefInt(entry.Track)),
		NIC:                      byte(trafficNavScore(entry)),
		NACp:                     byte(trafficNavScore(entry)),
		HorizontalVelocityKnots:  derefInt(entry.GroundSpeed),
		HasHorizontalVelocity:    true,
		VerticalVelocityFtMin:    derefInt(entry.VerticalSpeed),
		HasVerticalVelocity:      true,
		EmitterCategory:          gdl90.EmitterCategory(entry.Category),
		Callsign:                 callsign,
		Emergency:                gdl90.NoEmergency,
	}
}

func airborneIndicator(onGround *bool) gdl90.AirborneIndicator {
	if onGround == nil {
		return gdl90.Airborne
	}
	if *onGround {
		return gdl90.OnGround
	}
	return gdl90.Airborne
}

func trafficNavScore(entry traffic.Entry) int {
	if entry.Latitude == nil || entry.Longitude == nil || entry.GroundSpeed == nil || entry.VerticalSpeed == nil || entry.Track == nil {
		return 0
	}
	return 10
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
