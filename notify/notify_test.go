package notify

import (
	"encoding/json"
	"testing"

	"github.com/gravity981/easyadsb-monitor/egress"
	"github.com/gravity981/easyadsb-monitor/nav"
	"github.com/gravity981/easyadsb-monitor/traffic"
)

type recordingPublisher struct {
	published map[string][]byte
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{published: make(map[string][]byte)}
}

func (p *recordingPublisher) Publish(topic string, payload []byte) error {
	p.published[topic] = payload
	return nil
}

func TestPublishAllHitsAllFourTopics(t *testing.T) {
	pub := newRecordingPublisher()
	navMonitor := nav.NewMonitor()
	trafficMonitor := traffic.NewMonitor(nil, nil, nil, 0)
	port := egress.NewPort("lo", 4000, 10)

	n := NewNotifier(pub, navMonitor, trafficMonitor, port, "lo")
	n.publishAll()

	for _, topic := range []string{satellitesTopic, trafficTopic, positionTopic, systemTopic} {
		if _, ok := pub.published[topic]; !ok {
			t.Errorf("expected a publication on %s", topic)
		}
	}
}

func TestPublishSystemReflectsInactivePort(t *testing.T) {
	pub := newRecordingPublisher()
	navMonitor := nav.NewMonitor()
	trafficMonitor := traffic.NewMonitor(nil, nil, nil, 0)
	port := egress.NewPort("lo", 4000, 10)

	n := NewNotifier(pub, navMonitor, trafficMonitor, port, "lo")
	n.publishSystem()

	var status systemStatus
	if err := json.Unmarshal(pub.published[systemTopic], &status); err != nil {
		t.Fatalf("failed to unmarshal system status: %v", err)
	}
	if status.Gdl90.IsActive {
		t.Error("expected a freshly constructed port to report inactive")
	}
	if status.Gdl90.IP != "" {
		t.Errorf("expected empty ip while inactive, got %q", status.Gdl90.IP)
	}
}

func TestIpStringEmptyForNilIP(t *testing.T) {
	if got := ipString(nil); got != "" {
		t.Errorf("expected empty string for a nil IP, got %q", got)
	}
}
