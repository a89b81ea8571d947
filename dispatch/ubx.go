/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	ubx.go: log-only UBX frame validation. The original reads UBX purely to
	log it, never feeding a monitor; this keeps that behavior exactly.
*/

package dispatch

import "github.com/gravity981/easyadsb-monitor/common"

const (
	ubxSync1    = 0xB5
	ubxSync2    = 0x62
	ubxHeaderLen = 6 // sync(2) + class(1) + id(1) + length(2)
	ubxChecksumLen = 2
)

// onUbx validates a UBX frame's sync bytes, declared length and checksum,
// logging the outcome. It never touches Nav Monitor state.
func (d *Dispatcher) onUbx(topic string, payload []byte) {
	class, id, payloadLen, ok := validateUBXFrame(payload)
	if !ok {
		common.LogErr("dispatch: malformed ubx frame, %q", payload)
		d.reportParseError("ubx")
		return
	}
	common.LogDbg("dispatch: ubx class=0x%02X id=0x%02X len=%d", class, id, payloadLen)
}

// validateUBXFrame checks sync bytes, declared length and trailing
// checksum, returning the message class/id/payload length on success.
func validateUBXFrame(frame []byte) (class, id byte, payloadLen int, ok bool) {
	if len(frame) < ubxHeaderLen+ubxChecksumLen {
		return 0, 0, 0, false
	}
	if frame[0] != ubxSync1 || frame[1] != ubxSync2 {
		return 0, 0, 0, false
	}
	class = frame[2]
	id = frame[3]
	payloadLen = int(frame[4]) | int(frame[5])<<8
	if len(frame) != ubxHeaderLen+payloadLen+ubxChecksumLen {
		return 0, 0, 0, false
	}

	ckA, ckB := chksumUBX(frame[2 : ubxHeaderLen+payloadLen])
	if frame[len(frame)-2] != ckA || frame[len(frame)-1] != ckB {
		return 0, 0, 0, false
	}
	return class, id, payloadLen, true
}

// chksumUBX computes the 8-bit Fletcher checksum UBX frames use, over the
// class/id/length/payload span (not the sync bytes).
func chksumUBX(data []byte) (ckA, ckB byte) {
	for _, b := range data {
		ckA += b
		ckB += ckA
	}
	return ckA, ckB
}
