/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	settings.go: process configuration, loaded once at startup from
	environment variables (optionally backed by a ".env" file), following
	the MO_* naming the original project's main() reads via os.getenv.
*/

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gravity981/easyadsb-monitor/common"
)

// defaultGdl90Port is the UDP broadcast port used when MO_GDL90_PORT is unset.
const defaultGdl90Port = 4000

// Settings holds every environment-derived setting the monitor process
// needs. Loaded once at startup; never mutated afterwards.
type Settings struct {
	LogLevel string

	BrokerHost       string
	BrokerPort       int
	BrokerClientName string

	NmeaTopic string
	UbxTopic  string
	SbsTopic  string
	BmeTopic  string

	Gdl90NetworkInterface string
	Gdl90Port             int

	TrafficCtrlTopic string

	AircraftDBPath      string
	TypeDBPath          string
	TypeExtensionDBPath string
	DBVersionPath       string
}

// Error reports a configuration load failure (unparsable environment
// variable, or an unreadable or malformed database file). Per spec, configuration errors are fatal at
// startup; callers are expected to log.Fatal on a non-nil error.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func newError(format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Load reads an optional ".env" file (missing is not an error) and then
// the process environment into a Settings value. BrokerClientName defaults
// to a freshly generated UUID when MO_MQTT_CLIENT_NAME is empty, matching
// the original's `client_name = str(uuid.uuid1())` fallback.
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		common.LogWrn("config: failed to load .env file: %v", err)
	}

	brokerPort, err := intEnv("MO_MQTT_PORT")
	if err != nil {
		return Settings{}, err
	}
	gdl90Port := defaultGdl90Port
	if os.Getenv("MO_GDL90_PORT") != "" {
		gdl90Port, err = intEnv("MO_GDL90_PORT")
		if err != nil {
			return Settings{}, err
		}
	}

	clientName := os.Getenv("MO_MQTT_CLIENT_NAME")
	if clientName == "" {
		clientName = uuid.NewString()
		common.LogInf("config: MO_MQTT_CLIENT_NAME is empty, assigned %s", clientName)
	}

	s := Settings{
		LogLevel:              os.Getenv("MO_LOG_LEVEL"),
		BrokerHost:            os.Getenv("MO_MQTT_HOST"),
		BrokerPort:            brokerPort,
		BrokerClientName:      clientName,
		NmeaTopic:             os.Getenv("MO_MQTT_NMEA_TOPIC"),
		UbxTopic:              os.Getenv("MO_MQTT_UBX_TOPIC"),
		SbsTopic:              os.Getenv("MO_MQTT_SBS_TOPIC"),
		BmeTopic:              os.Getenv("MO_MQTT_BME280_TOPIC"),
		Gdl90NetworkInterface: os.Getenv("MO_GDL90_NETWORK_INTERFACE"),
		Gdl90Port:             gdl90Port,
		TrafficCtrlTopic:      envOrDefault("MO_MQTT_TRAFFIC_CTRL_TOPIC", "/easyadsb/monitor/traffic/ctrl"),
		AircraftDBPath:        envOrDefault("MO_AIRCRAFT_DB_PATH", "/home/data/mictronics/aircrafts.json"),
		TypeDBPath:            envOrDefault("MO_TYPE_DB_PATH", "/home/data/mictronics/types.json"),
		TypeExtensionDBPath:   envOrDefault("MO_TYPE_EXTENSION_DB_PATH", "/home/data/typesExtension.json"),
		DBVersionPath:         envOrDefault("MO_DB_VERSION_PATH", "/home/data/mictronics/dbversion.json"),
	}
	return s, nil
}

func intEnv(name string) (int, error) {
	raw := os.Getenv(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newError("%s=%q is not a valid integer: %v", name, raw, err)
	}
	return v, nil
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
