package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// fieldExtractor pulls one field out of a sensor message. Patterns are tried in
// order and the first submatch wins.
type fieldExtractor struct {
	patterns []*regexp.Regexp
	apply    func(reading *SensorReading, raw string) bool
}

const decimalValue = `([-+]?\d+(?:[.,]\d+)?)`

var sensorExtractors = []fieldExtractor{
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`🆔\s*([A-Za-z0-9_-]+)`),
			regexp.MustCompile(`(?i)\b(?:qurilma|device|id)\s*:\s*([A-Za-z0-9_-]+)`),
		},
		apply: func(reading *SensorReading, raw string) bool {
			reading.DeviceID = raw
			return true
		},
	},
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`🌡\x{FE0F}?\s*` + decimalValue + `\s*°?\s*C?`),
			regexp.MustCompile(`(?i)harorat\s*:\s*` + decimalValue + `\s*°?\s*C`),
		},
		apply: func(reading *SensorReading, raw string) bool {
			value, ok := parseDecimal(raw)
			if ok {
				reading.TemperatureC = &value
			}
			return true
		},
	},
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`💧\s*` + decimalValue + `\s*%`),
			regexp.MustCompile(`(?i)havo\s+namligi\s*:\s*` + decimalValue + `\s*%`),
		},
		apply: func(reading *SensorReading, raw string) bool {
			value, ok := parseDecimal(raw)
			if ok {
				reading.HumidityPercent = &value
			}
			return true
		},
	},
	{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`⏱\x{FE0F}?\s*(\S+?)\s*s\b`),
			regexp.MustCompile(`(?i)sleep\s*:\s*(\S+)\s*sekund`),
		},
		apply: func(reading *SensorReading, raw string) bool {
			value, err := strconv.Atoi(raw)
			if err != nil {
				return false
			}
			reading.SleepSeconds = &value
			return true
		},
	},
}

// ParseSensorText extracts a reading from a device message in either the compact
// glyph format or the labeled format. It reports false when the text carries no
// usable reading.
func ParseSensorText(text string) (SensorReading, bool) {
	var reading SensorReading
	for _, extractor := range sensorExtractors {
		raw, found := extractor.match(text)
		if !found {
			continue
		}
		if !extractor.apply(&reading, raw) {
			return SensorReading{}, false
		}
	}

	if !reading.Valid() {
		return SensorReading{}, false
	}

	return reading, true
}

func (e fieldExtractor) match(text string) (string, bool) {
	for _, pattern := range e.patterns {
		if match := pattern.FindStringSubmatch(text); len(match) > 1 {
			return match[1], true
		}
	}
	return "", false
}

func parseDecimal(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
