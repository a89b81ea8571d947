/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	main.go: process wiring: load config and enrichment DBs, build the
	monitors, build the egress port and converter, register observers,
	build the dispatcher, launch the broker, run until signaled.
*/

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gravity981/easyadsb-monitor/broker"
	"github.com/gravity981/easyadsb-monitor/common"
	"github.com/gravity981/easyadsb-monitor/config"
	"github.com/gravity981/easyadsb-monitor/convert"
	"github.com/gravity981/easyadsb-monitor/dispatch"
	"github.com/gravity981/easyadsb-monitor/egress"
	"github.com/gravity981/easyadsb-monitor/nav"
	"github.com/gravity981/easyadsb-monitor/notify"
	"github.com/gravity981/easyadsb-monitor/sysinfo"
	"github.com/gravity981/easyadsb-monitor/traffic"
)

const metricsListenAddr = ":9091"

func main() {
	if runServiceCommand(os.Args) {
		return
	}

	settings, err := config.Load()
	if err != nil {
		common.LogErr("fatal: %v", err)
		os.Exit(1)
	}
	common.Debug = settings.LogLevel == "DEBUG"

	aircraftDB, err := config.LoadAircraftDB(settings.AircraftDBPath)
	if err != nil {
		common.LogErr("fatal: %v", err)
		os.Exit(1)
	}
	typeDB, err := config.LoadTypeDB(settings.TypeDBPath)
	if err != nil {
		common.LogErr("fatal: %v", err)
		os.Exit(1)
	}
	typeExtensionDB, err := config.LoadTypeExtensionDB(settings.TypeExtensionDBPath)
	if err != nil {
		common.LogErr("fatal: %v", err)
		os.Exit(1)
	}
	dbVersion, err := config.LoadDBVersion(settings.DBVersionPath)
	if err != nil {
		common.LogErr("fatal: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics, registry := sysinfo.NewMetrics()
	go serveMetrics(registry)

	trafficMonitor := traffic.NewMonitor(aircraftDB, typeDB, typeExtensionDB, dbVersion)
	trafficMonitor.StartAutoCleanup()
	navMonitor := nav.NewMonitor()
	trafficMonitor.SetOwnshipPositionProvider(func() (float64, float64, bool) {
		pos := navMonitor.Snapshot()
		return pos.Latitude, pos.Longitude, pos.NavMode != nav.NoFix
	})

	port := egress.NewPort(settings.Gdl90NetworkInterface, settings.Gdl90Port, 0)
	port.SetDropCallback(func() { metrics.EgressMessagesDropped.Inc() })
	go port.Run(ctx)

	converter := convert.NewConverter(port, navMonitor)
	navMonitor.RegisterObserver(converter)
	trafficMonitor.RegisterObserver(converter)
	go converter.RunHeartbeat(ctx)

	disp := dispatch.NewDispatcher(navMonitor, trafficMonitor, settings.NmeaTopic, settings.UbxTopic, settings.SbsTopic, settings.BmeTopic)
	disp.SetParseErrorHook(func(topicKind string) {
		metrics.DispatcherParseErrors.WithLabelValues(topicKind).Inc()
	})

	var ctrl *dispatch.TrafficController
	brokerReady := make(chan broker.Client, 1)
	brokerAddr := fmt.Sprintf("tcp://%s:%d", settings.BrokerHost, settings.BrokerPort)
	topics := []string{settings.NmeaTopic, settings.UbxTopic, settings.SbsTopic, settings.BmeTopic, settings.TrafficCtrlTopic}
	broker.LaunchInBackground(brokerAddr, settings.BrokerClientName, topics, func(topic string, payload []byte) {
		if topic == settings.TrafficCtrlTopic {
			if ctrl != nil {
				ctrl.HandleRequest(payload)
			}
			return
		}
		disp.HandleMessage(topic, payload)
	}, brokerReady)

	mqttClient := <-brokerReady
	defer mqttClient.Disconnect()

	ctrl = dispatch.NewTrafficController(mqttClient, trafficMonitor, settings.TrafficCtrlTopic)

	notifier := notify.NewNotifier(mqttClient, navMonitor, trafficMonitor, port, settings.Gdl90NetworkInterface)
	go notifier.Run(ctx)

	go sampleMetrics(ctx, metrics, navMonitor, trafficMonitor, port)

	common.LogInf("easyadsb-monitor running (client=%s, broker=%s)", settings.BrokerClientName, brokerAddr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	common.LogInf("shutting down")
	cancel()
	trafficMonitor.StopAutoCleanup()
}

func serveMetrics(registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", sysinfo.Handler(registry))
	if err := http.ListenAndServe(metricsListenAddr, mux); err != nil {
		common.LogErr("metrics: listener stopped, %v", err)
	}
}

func sampleMetrics(ctx context.Context, metrics *sysinfo.Metrics, navMonitor *nav.Monitor, trafficMonitor *traffic.Monitor, port *egress.Port) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.SatelliteTableSize.Set(float64(len(navMonitor.Satellites())))
			metrics.TrafficRegistrySize.Set(float64(len(trafficMonitor.Snapshot())))
			metrics.EgressQueueDepth.Set(float64(port.QueueDepth()))
		}
	}
}
