/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	dispatch.go: the Message Dispatcher. Routes inbound broker messages to
	the Nav and Traffic monitors by topic substring, mirroring the source's
	MessageDispatcher.onMessage.
*/

package dispatch

import (
	"strings"

	"github.com/gravity981/easyadsb-monitor/common"
	"github.com/gravity981/easyadsb-monitor/nav"
	"github.com/gravity981/easyadsb-monitor/sbs"
	"github.com/gravity981/easyadsb-monitor/traffic"
)

// Dispatcher routes one inbound broker message at a time to the monitor
// whose topic fragment matches. Topic substring checks are tried in a
// fixed order: nmea, ubx, sbs, bme.
type Dispatcher struct {
	navMonitor     *nav.Monitor
	trafficMonitor *traffic.Monitor

	nmeaTopic string
	ubxTopic  string
	sbsTopic  string
	bmeTopic  string

	onParseError func(topicKind string)
}

// SetParseErrorHook registers a callback invoked once per dropped parse
// error, naming the topic kind ("nmea", "ubx", "sbs", "bme") it occurred
// on, for metrics wiring. Nil (the default) disables the callback.
func (d *Dispatcher) SetParseErrorHook(f func(topicKind string)) {
	d.onParseError = f
}

func (d *Dispatcher) reportParseError(topicKind string) {
	if d.onParseError != nil {
		d.onParseError(topicKind)
	}
}

// NewDispatcher constructs a Dispatcher. Each topic fragment is matched by
// substring against an inbound message's topic, in the order of the
// parameters: nmea, ubx, sbs, bme.
func NewDispatcher(navMonitor *nav.Monitor, trafficMonitor *traffic.Monitor, nmeaTopic, ubxTopic, sbsTopic, bmeTopic string) *Dispatcher {
	return &Dispatcher{
		navMonitor:     navMonitor,
		trafficMonitor: trafficMonitor,
		nmeaTopic:      nmeaTopic,
		ubxTopic:       ubxTopic,
		sbsTopic:       sbsTopic,
		bmeTopic:       bmeTopic,
	}
}

// HandleMessage routes one inbound payload to its parser by topic
// substring. Parse errors are logged and dropped; HandleMessage never
// returns an error itself, matching spec's "dispatcher never panics" and
// "parse errors are logged and dropped" invariants.
func (d *Dispatcher) HandleMessage(topic string, payload []byte) {
	switch {
	case strings.Contains(topic, d.nmeaTopic):
		d.onNmea(topic, payload)
	case strings.Contains(topic, d.ubxTopic):
		d.onUbx(topic, payload)
	case strings.Contains(topic, d.sbsTopic):
		d.onSbs(topic, payload)
	case strings.Contains(topic, d.bmeTopic):
		d.onBme(topic, payload)
	default:
		common.LogWrn("dispatch: message from unexpected topic %q", topic)
	}
}

func (d *Dispatcher) onNmea(topic string, payload []byte) {
	if err := d.navMonitor.Handle(string(payload)); err != nil {
		common.LogErr("dispatch: nav update failed, %v, %q", err, payload)
		d.reportParseError("nmea")
	}
}

func (d *Dispatcher) onSbs(topic string, payload []byte) {
	msg, err := sbs.Parse(strings.TrimSpace(string(payload)))
	if err != nil {
		common.LogErr("dispatch: sbs parse error, %v, %q", err, payload)
		d.reportParseError("sbs")
		return
	}
	if err := d.trafficMonitor.Update(msg.HexIdent, msg); err != nil {
		common.LogErr("dispatch: traffic update failed, %v", err)
		d.reportParseError("sbs")
	}
}

func (d *Dispatcher) onBme(topic string, payload []byte) {
	env, err := parseEnvironment(payload)
	if err != nil {
		common.LogErr("dispatch: bme parse error, %v, %q", err, payload)
		d.reportParseError("bme")
		return
	}
	d.navMonitor.HandleEnvironment(env.Humidity, env.Pressure, env.Temperature, env.PressureAltitude)
}
