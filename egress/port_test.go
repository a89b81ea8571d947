package egress

import (
	"testing"

	"github.com/gravity981/easyadsb-monitor/gdl90"
)

func TestPutMessageDropsWhileInactive(t *testing.T) {
	p := NewPort("lo", 4000, 10)
	p.PutMessage(Message{Kind: KindHeartbeat})
	if len(p.msgQueue) != 0 {
		t.Errorf("expected message to be dropped while inactive, queue has %d", len(p.msgQueue))
	}
}

func TestPutMessageDropsWhenQueueFull(t *testing.T) {
	p := NewPort("lo", 4000, 2)
	p.stateMu.Lock()
	p.state = Active
	p.stateMu.Unlock()

	for i := 0; i < 5; i++ {
		p.PutMessage(Message{Kind: KindHeartbeat})
	}
	if len(p.msgQueue) != 2 {
		t.Errorf("expected queue to be capped at 2, got %d", len(p.msgQueue))
	}
}

func TestIsActiveReflectsState(t *testing.T) {
	p := NewPort("lo", 4000, 10)
	if p.IsActive() {
		t.Error("expected a freshly constructed port to be inactive")
	}
	p.stateMu.Lock()
	p.state = Active
	p.stateMu.Unlock()
	if !p.IsActive() {
		t.Error("expected port to report active after state change")
	}
}

func TestAddressGettersNilWhileInactive(t *testing.T) {
	p := NewPort("lo", 4000, 10)
	if p.IP() != nil || p.NetMask() != nil || p.BroadcastIP() != nil {
		t.Error("expected nil addressing while inactive")
	}
}

func TestEncodeMessageDispatchesByKind(t *testing.T) {
	if _, err := encodeMessage(Message{Kind: KindHeartbeat, Heartbeat: gdl90.HeartbeatInput{}}); err != nil {
		t.Errorf("unexpected error encoding heartbeat: %v", err)
	}
	if _, err := encodeMessage(Message{Kind: KindGeoAltitude, GeoAltitude: gdl90.GeoAltitudeInput{}}); err != nil {
		t.Errorf("unexpected error encoding geo altitude: %v", err)
	}
	if _, err := encodeMessage(Message{Kind: Kind(99)}); err == nil {
		t.Error("expected an error for an unknown message kind")
	}
}
