/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	port.go: the GDL90 Egress Port. A single-owner event loop drives the
	Inactive/Active state machine; the initializer, sender and receiver
	goroutines only ever talk to it through channels.
*/

package egress

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/gravity981/easyadsb-monitor/common"
	"github.com/gravity981/easyadsb-monitor/gdl90"
)

const (
	defaultQueueSize  = 1000
	initRetryInterval = 5 * time.Second
	recvTimeout       = 2 * time.Second
	sendTimeout       = 3 * time.Second
	recvBufferSize    = 1000
)

// Port owns a UDP broadcast socket bound to a named interface's broadcast
// address. It survives interface flaps by re-running its initializer
// whenever the receiver detects a dead socket.
type Port struct {
	nic       string
	port      int
	msgQueue  chan Message
	events    chan event

	stateMu sync.RWMutex
	state   State
	ip      net.IP
	netMask net.IP
	bcastIP net.IP

	conn *net.UDPConn

	onDrop func()
}

// SetDropCallback registers a callback invoked once for every message
// PutMessage drops (inactive port or full queue), for metrics wiring. Nil
// (the default) disables the callback.
func (p *Port) SetDropCallback(f func()) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	p.onDrop = f
}

// NewPort constructs a Port bound to the broadcast address of nic once
// Run is called. queueSize bounds the number of messages PutMessage will
// buffer before dropping new ones; 0 selects the default of 1000.
func NewPort(nic string, port int, queueSize int) *Port {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Port{
		nic:      nic,
		port:     port,
		msgQueue: make(chan Message, queueSize),
		events:   make(chan event, 3),
	}
}

// IsActive reports whether the port currently has a live, bound socket.
func (p *Port) IsActive() bool {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.state == Active
}

// IP, NetMask and BroadcastIP report the interface's current addressing.
// All return nil while Inactive.
func (p *Port) IP() net.IP {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	if p.state != Active {
		return nil
	}
	return p.ip
}

func (p *Port) NetMask() net.IP {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	if p.state != Active {
		return nil
	}
	return p.netMask
}

func (p *Port) BroadcastIP() net.IP {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	if p.state != Active {
		return nil
	}
	return p.bcastIP
}

// QueueDepth reports the number of messages currently buffered for send.
func (p *Port) QueueDepth() int {
	return len(p.msgQueue)
}

// PutMessage enqueues msg for sending. While Inactive, or when the send
// queue is full, the message is dropped and logged.
func (p *Port) PutMessage(msg Message) {
	if !p.IsActive() {
		common.LogWrn("egress: dropping message, port is inactive")
		p.notifyDrop()
		return
	}
	select {
	case p.msgQueue <- msg:
	default:
		common.LogErr("egress: send queue full (size=%d), dropping message", cap(p.msgQueue))
		p.notifyDrop()
	}
}

func (p *Port) notifyDrop() {
	p.stateMu.RLock()
	f := p.onDrop
	p.stateMu.RUnlock()
	if f != nil {
		f()
	}
}

// Run drives the event loop until ctx is canceled. It blocks; call it from
// its own goroutine.
func (p *Port) Run(ctx context.Context) {
	initDone := make(chan struct{})
	go p.runInitializer(ctx, initDone)

	var stopWorkers chan struct{}
	var workers sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			if stopWorkers != nil {
				close(stopWorkers)
				workers.Wait()
			}
			if p.conn != nil {
				p.conn.Close()
			}
			return

		case ev := <-p.events:
			p.stateMu.Lock()
			switch {
			case p.state == Inactive && ev == eventInitComplete:
				p.state = Active
				common.LogInf("egress: entered active state")
				stopWorkers = make(chan struct{})
				workers.Add(2)
				go p.runSender(stopWorkers, &workers)
				go p.runReceiver(stopWorkers, &workers)

			case p.state == Active && ev == eventRecvFailure:
				p.state = Inactive
				common.LogInf("egress: entered inactive state")
				close(stopWorkers)
				p.stateMu.Unlock()
				workers.Wait()
				stopWorkers = nil
				if p.conn != nil {
					p.conn.Close()
					p.conn = nil
				}
				go p.runInitializer(ctx, nil)
				continue
			}
			p.stateMu.Unlock()
		}
	}
}

// runInitializer resolves the interface's broadcast address and binds the
// socket, retrying every 5 seconds on failure. Logs the first failure of a
// retry run only, to avoid flooding the log while an interface is down.
func (p *Port) runInitializer(ctx context.Context, done chan struct{}) {
	if done != nil {
		defer close(done)
	}
	reported := false
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ip, mask, bcast, err := resolveBroadcastAddr(p.nic)
		if err == nil {
			var conn *net.UDPConn
			conn, err = listenBroadcastUDP(bcast, p.port)
			if err == nil {
				p.stateMu.Lock()
				p.ip, p.netMask, p.bcastIP = ip, mask, bcast
				p.conn = conn
				p.stateMu.Unlock()
				common.LogInf("egress: send gdl90 messages to %s:%d (iface %s, ip %s)", bcast, p.port, p.nic, ip)
				reported = false
				select {
				case p.events <- eventInitComplete:
				case <-ctx.Done():
				}
				return
			}
		}

		if !reported {
			common.LogErr("egress: udp socket init failure, %v", err)
			reported = true
		}
		select {
		case <-time.After(initRetryInterval):
		case <-ctx.Done():
			return
		}
	}
}

// runSender dequeues messages, encodes them via the codec, and sends them
// to the bound broadcast address. Exits when stop is closed.
func (p *Port) runSender(stop chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	dst := p.conn.LocalAddr().(*net.UDPAddr)
	for {
		select {
		case <-stop:
			return
		case msg := <-p.msgQueue:
			frame, err := encodeMessage(msg)
			if err != nil {
				common.LogErr("egress: failed to encode message: %v", err)
				continue
			}
			if _, err := p.conn.WriteToUDP(frame, dst); err != nil {
				common.LogErr("egress: failed to send message: %v", err)
			}
		case <-time.After(sendTimeout):
		}
	}
}

// runReceiver blocks on reading back the broadcast packets this socket
// itself receives, as a liveness check: a timeout or empty read means the
// socket is dead and the port must re-initialize.
func (p *Port) runReceiver(stop chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	buf := make([]byte, recvBufferSize)
	conn := p.conn
	for {
		select {
		case <-stop:
			return
		default:
		}
		conn.SetReadDeadline(time.Now().Add(recvTimeout))
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil || n <= 0 {
			common.LogErr("egress: detected problem with socket, recreating...")
			select {
			case p.events <- eventRecvFailure:
			case <-stop:
			}
			return
		}
	}
}

// encodeMessage dispatches msg to the matching codec encoder.
func encodeMessage(msg Message) ([]byte, error) {
	switch msg.Kind {
	case KindHeartbeat:
		return gdl90.EncodeHeartbeat(msg.Heartbeat), nil
	case KindOwnship:
		return gdl90.EncodeOwnshipReport(msg.Report)
	case KindTraffic:
		return gdl90.EncodeTrafficReport(msg.Report)
	case KindGeoAltitude:
		return gdl90.EncodeOwnshipGeoAltitude(msg.GeoAltitude), nil
	default:
		return nil, newError("unexpected message kind")
	}
}
