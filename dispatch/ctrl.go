/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	ctrl.go: the traffic control request/response handler, serving the
	`clearHistory` and `setAutoCleanup` commands over the broker.
*/

package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/gravity981/easyadsb-monitor/common"
	"github.com/gravity981/easyadsb-monitor/traffic"
)

const (
	cmdClearHistory   = "clearHistory"
	cmdSetAutoCleanup = "setAutoCleanup"
)

// Publisher is the narrow broker capability TrafficController needs.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// TrafficController serves the traffic control request/response protocol
// on one request topic, replying on topic+"/response".
type TrafficController struct {
	publisher Publisher
	monitor   *traffic.Monitor
	ctrlTopic string
}

// NewTrafficController constructs a TrafficController. ctrlTopic is the
// request topic (e.g. "/easyadsb/monitor/traffic/ctrl"); responses are
// published on ctrlTopic+"/response".
func NewTrafficController(publisher Publisher, monitor *traffic.Monitor, ctrlTopic string) *TrafficController {
	return &TrafficController{publisher: publisher, monitor: monitor, ctrlTopic: ctrlTopic}
}

type setAutoCleanupData struct {
	Enabled bool `json:"enabled"`
}

// HandleRequest parses and executes one request envelope, publishing the
// matching response. Malformed envelopes are logged and dropped, never
// panicking.
func (c *TrafficController) HandleRequest(payload []byte) {
	var req RequestMessage
	if err := json.Unmarshal(payload, &req); err != nil {
		common.LogErr("dispatch: ctrl request parse error, %v, %q", err, payload)
		return
	}

	resp := ResponseMessage{RequestID: req.RequestID}
	switch req.Command {
	case cmdClearHistory:
		c.monitor.ClearHistory()
		resp.Success = true

	case cmdSetAutoCleanup:
		var data setAutoCleanupData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			resp.Success = false
			resp.Data = fmt.Sprintf("invalid data for %s: %v", cmdSetAutoCleanup, err)
			break
		}
		if data.Enabled {
			c.monitor.StartAutoCleanup()
		} else {
			c.monitor.StopAutoCleanup()
		}
		resp.Success = true

	default:
		resp.Success = false
		resp.Data = fmt.Sprintf("unknown command %q", req.Command)
	}

	c.respond(resp)
}

func (c *TrafficController) respond(resp ResponseMessage) {
	body, err := json.Marshal(resp)
	if err != nil {
		common.LogErr("dispatch: ctrl response marshal error, %v", err)
		return
	}
	if err := c.publisher.Publish(c.ctrlTopic+"/response", body); err != nil {
		common.LogErr("dispatch: ctrl response publish error, %v", err)
	}
}
