/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	monotonic.go: a monotonic clock reference, decoupled from wall-clock
	jumps, with an optional one-shot real-time reference.
*/

package common

import (
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// Monotonic tracks elapsed time independently of wall-clock adjustments.
// Time is the monotonic instant at construction. SetRealTimeReference
// records a one-shot wall-clock anchor (e.g. GPS UTC time) that
// HasRealTimeReference reports; HumanizeTime does not use that anchor.
type Monotonic struct {
	Time time.Time

	mu                sync.Mutex
	realTimeReference time.Time
	hasRealTimeRef    bool
}

// NewMonotonic returns a clock anchored to now.
func NewMonotonic() *Monotonic {
	return &Monotonic{Time: time.Now()}
}

// SetRealTimeReference may only be set once; later calls are ignored.
func (m *Monotonic) SetRealTimeReference(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hasRealTimeRef {
		return
	}
	m.realTimeReference = t
	m.hasRealTimeRef = true
}

func (m *Monotonic) HasRealTimeReference() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasRealTimeRef
}

// Unix returns seconds elapsed since the zero time, monotonic-clock based.
func (m *Monotonic) Unix() int64 {
	return m.Time.Unix() - (time.Time{}).Unix() + int64(time.Since(m.Time)/time.Second)
}

// HumanizeTime renders t relative to now using github.com/dustin/go-humanize.
func (m *Monotonic) HumanizeTime(t time.Time) string {
	return humanize.Time(t)
}
