/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	service.go: optional self-install as a native OS service, following the
	takama/daemon "embed daemon.Daemon, dispatch on argv[1]" pattern.
*/

package main

import (
	"fmt"
	"os"

	"github.com/takama/daemon"
)

const (
	serviceName        = "easyadsb-monitor"
	serviceDescription = "easyadsb situational-awareness monitor"
)

type service struct {
	daemon.Daemon
}

// manageService handles an `install`/`remove`/`start`/`stop`/`status`
// argv[1], returning (handled, message, error). handled is false when
// argv[1] is not a recognized service action, meaning the caller should
// run the monitor itself instead.
func manageService(args []string) (handled bool, msg string, err error) {
	if len(args) < 2 {
		return false, "", nil
	}

	d, err := daemon.New(serviceName, serviceDescription, daemon.SystemDaemon)
	if err != nil {
		return true, "", fmt.Errorf("failed to create service handle: %w", err)
	}
	svc := &service{d}

	switch args[1] {
	case "install":
		msg, err = svc.Install()
	case "remove":
		msg, err = svc.Remove()
	case "start":
		msg, err = svc.Start()
	case "stop":
		msg, err = svc.Stop()
	case "status":
		msg, err = svc.Status()
	default:
		return false, "", nil
	}
	return true, msg, err
}

func runServiceCommand(args []string) bool {
	handled, msg, err := manageService(args)
	if !handled {
		return false
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(msg)
	return true
}
