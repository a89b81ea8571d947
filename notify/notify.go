/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	notify.go: the JSON Notifier. Once per second, serializes and publishes
	four snapshots to fixed broker topics, grounded on
	original_source/core/monitor/app/main.py's JsonSender.
*/

package notify

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"golang.org/x/exp/slices"

	"github.com/gravity981/easyadsb-monitor/common"
	"github.com/gravity981/easyadsb-monitor/egress"
	"github.com/gravity981/easyadsb-monitor/nav"
	"github.com/gravity981/easyadsb-monitor/sysinfo"
	"github.com/gravity981/easyadsb-monitor/traffic"
)

const (
	satellitesTopic = "/easyadsb/monitor/satellites"
	trafficTopic    = "/easyadsb/monitor/traffic"
	positionTopic   = "/easyadsb/monitor/position"
	systemTopic     = "/easyadsb/monitor/system"

	publishInterval = 1 * time.Second
)

// Publisher is the narrow broker capability Notifier needs.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// Notifier periodically publishes JSON snapshots of the Nav and Traffic
// monitors, plus the Egress Port's status, to the broker.
type Notifier struct {
	publisher      Publisher
	navMonitor     *nav.Monitor
	trafficMonitor *traffic.Monitor
	port           *egress.Port
	nic            string
}

// NewNotifier constructs a Notifier. nic names the broadcast interface the
// wifi status block is read from.
func NewNotifier(publisher Publisher, navMonitor *nav.Monitor, trafficMonitor *traffic.Monitor, port *egress.Port, nic string) *Notifier {
	return &Notifier{publisher: publisher, navMonitor: navMonitor, trafficMonitor: trafficMonitor, port: port, nic: nic}
}

// Run publishes one snapshot set per second until ctx is canceled. Errors
// are logged and never stop the loop. Call it from its own goroutine.
func (n *Notifier) Run(ctx context.Context) {
	ticker := time.NewTicker(publishInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.publishAll()
		}
	}
}

func (n *Notifier) publishAll() {
	n.publishSatellites()
	n.publishTraffic()
	n.publishPosition()
	n.publishSystem()
}

func (n *Notifier) publishSatellites() {
	satellites := n.navMonitor.Satellites()
	keys := make([]string, 0, len(satellites))
	for k := range satellites {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	ordered := make([]nav.SatInfo, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, satellites[k])
	}
	n.publish(satellitesTopic, ordered)
}

func (n *Notifier) publishTraffic() {
	entries := n.trafficMonitor.Snapshot()
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	ordered := make([]traffic.Entry, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, entries[k])
	}
	n.publish(trafficTopic, ordered)
}

func (n *Notifier) publishPosition() {
	n.publish(positionTopic, n.navMonitor.Snapshot())
}

type systemStatus struct {
	Wifi      sysinfo.WifiStatus  `json:"wifi"`
	Gdl90     gdl90Status         `json:"gdl90"`
	Resources sysinfo.Resources   `json:"resources"`
}

type gdl90Status struct {
	IsActive    bool   `json:"isActive"`
	IP          string `json:"ip"`
	NetMask     string `json:"netMask"`
	BroadcastIP string `json:"broadcastIp"`
	Nic         string `json:"nic"`
	Port        int    `json:"port"`
}

func (n *Notifier) publishSystem() {
	status := systemStatus{
		Wifi: sysinfo.GetWifiStatus(n.nic),
		Gdl90: gdl90Status{
			IsActive:    n.port.IsActive(),
			IP:          ipString(n.port.IP()),
			NetMask:     ipString(n.port.NetMask()),
			BroadcastIP: ipString(n.port.BroadcastIP()),
			Nic:         n.nic,
		},
		Resources: sysinfo.GetResources("/"),
	}
	n.publish(systemTopic, status)
}

func ipString(ip net.IP) string {
	if len(ip) == 0 {
		return ""
	}
	return ip.String()
}

func (n *Notifier) publish(topic string, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		common.LogErr("notify: failed to marshal payload for %s: %v", topic, err)
		return
	}
	if err := n.publisher.Publish(topic, body); err != nil {
		common.LogErr("notify: failed to publish to %s: %v", topic, err)
	}
}
