/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	db.go: one-shot JSON loaders for the traffic enrichment databases named
	in Settings.
*/

package config

import (
	"encoding/json"
	"os"

	"github.com/gravity981/easyadsb-monitor/traffic"
)

// LoadAircraftDB reads a JSON object of hexIdent -> {callsign, type} into a
// traffic.AircraftDB. A missing or malformed file is a startup error.
func LoadAircraftDB(path string) (traffic.AircraftDB, error) {
	var db traffic.AircraftDB
	if err := loadJSON(path, &db); err != nil {
		return nil, err
	}
	return db, nil
}

// LoadTypeDB reads a JSON object of ICAO type designator -> {name, descr,
// wtc} into a traffic.TypeDB.
func LoadTypeDB(path string) (traffic.TypeDB, error) {
	var db traffic.TypeDB
	if err := loadJSON(path, &db); err != nil {
		return nil, err
	}
	return db, nil
}

// LoadTypeExtensionDB reads a JSON object of ICAO type designator -> GDL90
// emitter category (integer) into a traffic.TypeExtensionDB.
func LoadTypeExtensionDB(path string) (traffic.TypeExtensionDB, error) {
	var db traffic.TypeExtensionDB
	if err := loadJSON(path, &db); err != nil {
		return nil, err
	}
	return db, nil
}

type dbVersionFile struct {
	Version int `json:"version"`
}

// LoadDBVersion reads the {"version": N} sidecar file accompanying the
// enrichment databases.
func LoadDBVersion(path string) (int, error) {
	var v dbVersionFile
	if err := loadJSON(path, &v); err != nil {
		return 0, err
	}
	return v.Version, nil
}

func loadJSON(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return newError("cannot open %s: %v", path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(out); err != nil {
		return newError("cannot parse %s: %v", path, err)
	}
	return nil
}
