/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	message.go: the SBS-1/BaseStation CSV message, as produced by dump1090
	and similar decoders
	(http://woodair.net/SBS/Article/Barebones42_Socket_Data.htm).
*/

package sbs

import "time"

// Message is one parsed SBS-1 "MSG" line. Every optional CSV field is
// nil-able so TrafficEntry.Update can null-safe-merge only what this
// particular line actually carried.
type Message struct {
	TransmissionType int
	HexIdent         string

	GeneratedAt time.Time
	HasGeneratedAt bool

	Callsign *string

	Altitude      *int
	GroundSpeed   *int
	Track         *int
	Latitude      *float64
	Longitude     *float64
	VerticalRate  *int
	Squawk        *int

	Alert      *bool
	Emergency  *bool
	SPI        *bool
	IsOnGround *bool
}
