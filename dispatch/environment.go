/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	environment.go: the "bme" topic payload, a JSON object produced by a
	BME280-class humidity/pressure/temperature sensor.
*/

package dispatch

import "encoding/json"

type environment struct {
	Humidity         float64 `json:"humidity"`
	Pressure         float64 `json:"pressure"`
	Temperature      float64 `json:"temperature"`
	PressureAltitude float64 `json:"pressureAltitude"`
}

func parseEnvironment(payload []byte) (environment, error) {
	var env environment
	if err := json.Unmarshal(payload, &env); err != nil {
		return environment{}, err
	}
	return env, nil
}
