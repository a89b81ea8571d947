/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	envelope.go: the request/response/notification JSON envelopes carried
	over the broker, the Go equivalent of the source's RequestMessage/
	ResponseMessage/NotificationMessage dict subclasses.
*/

package dispatch

import "encoding/json"

// RequestMessage is the envelope published on a request topic.
type RequestMessage struct {
	Command   string          `json:"command"`
	Data      json.RawMessage `json:"data,omitempty"`
	RequestID string          `json:"requestId"`
}

// ResponseMessage is the envelope published on the matching `/response`
// topic, carrying the same requestId.
type ResponseMessage struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"requestId"`
}

// NotificationMessage is a fire-and-forget envelope with no reply.
type NotificationMessage map[string]interface{}
