/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	heartbeat.go: the once-per-second Heartbeat driver.
*/

package convert

import (
	"context"
	"time"

	"github.com/gravity981/easyadsb-monitor/common"
	"github.com/gravity981/easyadsb-monitor/egress"
)

const heartbeatInterval = 1 * time.Second

// RunHeartbeat fires a Heartbeat message once per second, built from the
// Converter's nav monitor snapshot, until ctx is canceled. Call it from its
// own goroutine.
func (c *Converter) RunHeartbeat(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sendHeartbeat()
		}
	}
}

func (c *Converter) sendHeartbeat() {
	defer func() {
		if r := recover(); r != nil {
			common.LogErr("convert: recovered from panic sending heartbeat: %v", r)
		}
	}()
	info := c.navMonitor.Snapshot()
	hb := toHeartbeat(info, c.uplinkMsgCount, c.basicLongMsgCount)
	c.send(egress.Message{Kind: egress.KindHeartbeat, Heartbeat: hb})
}
