/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	client.go: a thin wrapper over paho.mqtt.golang that retries the initial
	connection in the background, the Go analogue of the source's
	launchStart/_launchInBackground pair.
*/

package broker

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gravity981/easyadsb-monitor/common"
)

const connectRetryInterval = 5 * time.Second

// MessageHandler receives one inbound message's topic and payload.
type MessageHandler func(topic string, payload []byte)

// Client is the subset of mqtt.Client this module depends on, kept narrow
// so tests can supply a fake.
type Client interface {
	Publish(topic string, payload []byte) error
	Disconnect()
}

type client struct {
	inner mqtt.Client
}

func (c *client) Publish(topic string, payload []byte) error {
	token := c.inner.Publish(topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

func (c *client) Disconnect() {
	c.inner.Disconnect(250)
}

// Launch connects to the broker at addr (e.g. "tcp://localhost:1883")
// under clientID, subscribing to every topic in topics with handler from
// the on-connect callback. It blocks until the initial connection succeeds
// (returning a usable Client) or fails (returning the error); the
// underlying paho client manages its own reconnects after that.
func Launch(addr, clientID string, topics []string, handler MessageHandler) (Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(addr).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(c mqtt.Client) {
			common.LogInf("broker: connected")
			for _, topic := range topics {
				if token := c.Subscribe(topic, 0, func(_ mqtt.Client, m mqtt.Message) {
					handler(m.Topic(), m.Payload())
				}); token.Wait() && token.Error() != nil {
					common.LogErr("broker: failed to subscribe to %s: %v", topic, token.Error())
				} else {
					common.LogInf("broker: subscribed to %s", topic)
				}
			}
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			common.LogWrn("broker: connection lost: %v", err)
		})

	inner := mqtt.NewClient(opts)
	if token := inner.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &client{inner: inner}, nil
}

// LaunchInBackground repeatedly retries Launch every 5 seconds until it
// succeeds, logging only the first failure of a retry run. ready receives
// the connected Client once available; it is never closed.
func LaunchInBackground(addr, clientID string, topics []string, handler MessageHandler, ready chan<- Client) {
	go func() {
		reported := false
		for {
			c, err := Launch(addr, clientID, topics, handler)
			if err == nil {
				ready <- c
				return
			}
			if !reported {
				common.LogErr("broker: could not connect to broker, %v", err)
				reported = true
			}
			time.Sleep(connectRetryInterval)
		}
	}()
}
