/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	types.go: the four outbound message variants the Egress Port accepts,
	and its two-state liveness state machine.
*/

package egress

import "github.com/gravity981/easyadsb-monitor/gdl90"

// Kind tags which variant a Message carries.
type Kind int

const (
	KindHeartbeat Kind = iota
	KindOwnship
	KindTraffic
	KindGeoAltitude
)

// Message is a tagged union over the four frame types the codec knows how
// to encode. Exactly one of the payload fields is populated, selected by
// Kind.
type Message struct {
	Kind        Kind
	Heartbeat   gdl90.HeartbeatInput
	Report      gdl90.ReportInput
	GeoAltitude gdl90.GeoAltitudeInput
}

// State is the Egress Port's liveness state.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "Active"
	}
	return "Inactive"
}

// event is internal to the port's single-owner event loop.
type event int

const (
	eventInitComplete event = iota
	eventRecvFailure
)
