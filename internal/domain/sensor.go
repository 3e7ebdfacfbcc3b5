package domain

import "strings"

type SensorReading struct {
	DeviceID        string
	TemperatureC    *float64
	HumidityPercent *float64
	SleepSeconds    *int
}

func (r SensorReading) Valid() bool {
	if strings.TrimSpace(r.DeviceID) == "" {
		return false
	}
	return r.TemperatureC != nil || r.HumidityPercent != nil
}
