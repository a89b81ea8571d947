/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	socket.go: interface resolution, broadcast-address computation and the
	raw SO_BROADCAST socket option. net.ListenUDP alone cannot send to a
	broadcast destination; nothing in the module's dependency set wraps
	that option, so it is set directly via syscall.
*/

package egress

import (
	"fmt"
	"net"
	"syscall"
)

// resolveBroadcastAddr returns the named interface's first IPv4 address,
// its netmask, and the broadcast address of the network it describes.
func resolveBroadcastAddr(ifaceName string) (ip, mask, broadcast net.IP, err error) {
	iface, err := net.InterfaceByName(ifaceName)
	if err != nil {
		return nil, nil, nil, err
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return nil, nil, nil, err
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		v4 := ipNet.IP.To4()
		if v4 == nil {
			continue
		}
		bcast := make(net.IP, len(v4))
		for i := range v4 {
			bcast[i] = v4[i] | ^ipNet.Mask[i]
		}
		return v4, net.IP(ipNet.Mask), bcast, nil
	}
	return nil, nil, nil, fmt.Errorf("interface %s has no IPv4 address", ifaceName)
}

// listenBroadcastUDP binds a UDP socket to (broadcastIP, port) with
// SO_BROADCAST set, so the same socket can later send to that address.
func listenBroadcastUDP(broadcastIP net.IP, port int) (*net.UDPConn, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: broadcastIP, Port: port})
	if err != nil {
		return nil, err
	}
	raw, err := conn.SyscallConn()
	if err != nil {
		conn.Close()
		return nil, err
	}
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1)
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	if sockErr != nil {
		conn.Close()
		return nil, sockErr
	}
	return conn, nil
}
