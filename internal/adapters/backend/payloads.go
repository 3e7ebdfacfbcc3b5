package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/tozahudud/binbot/internal/domain"
)

const (
	imageSourceBot     = "BOT"
	imageFieldName     = "image"
	imageFileName      = "photo.jpg"
	defaultContentType = "image/jpeg"
)

type binPayload struct {
	ID        string          `json:"id"`
	Address   string          `json:"address"`
	FillLevel float64         `json:"fill_level"`
	IsFull    bool            `json:"is_full"`
	Zone      json.RawMessage `json:"toza_hudud"`
}

type zonePayload struct {
	Name string `json:"name"`
}

func (p binPayload) toDomain() domain.BinSnapshot {
	return domain.BinSnapshot{
		ID:               domain.BinID(p.ID),
		Address:          p.Address,
		FillLevelPercent: domain.ClampPercent(int(math.Round(p.FillLevel))),
		IsFull:           p.IsFull,
		ZoneName:         zoneName(p.Zone),
	}
}

// zoneName accepts the zone as a plain name or as a nested object.
func zoneName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name
	}

	var zone zonePayload
	if err := json.Unmarshal(raw, &zone); err == nil {
		return zone.Name
	}

	return ""
}

type sensorPayload struct {
	DeviceID     string   `json:"device_id"`
	Temperature  *float64 `json:"temperature"`
	Humidity     *float64 `json:"humidity"`
	SleepSeconds *int     `json:"sleep_seconds"`
	Timestamp    int64    `json:"timestamp"`
}

func toSensorPayload(reading domain.SensorReading, timestamp int64) sensorPayload {
	return sensorPayload{
		DeviceID:     reading.DeviceID,
		Temperature:  reading.TemperatureC,
		Humidity:     reading.HumidityPercent,
		SleepSeconds: reading.SleepSeconds,
		Timestamp:    timestamp,
	}
}

func encodeImageUpdate(image []byte, verdict domain.Verdict) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, imageFieldName, imageFileName))
	header.Set("Content-Type", imageContentType(image))
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", fmt.Errorf("write image part: %w", err)
	}

	fields := []struct {
		name  string
		value string
	}{
		{name: "is_full", value: strconv.FormatBool(verdict.IsFull)},
		{name: "fill_level", value: strconv.Itoa(domain.ClampPercent(verdict.FillLevelPercent))},
		{name: "image_source", value: imageSourceBot},
		{name: "last_analysis", value: verdict.AnalysisNote()},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("write %s field: %w", field.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

func imageContentType(image []byte) string {
	detected := http.DetectContentType(image)
	switch detected {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return detected
	default:
		return defaultContentType
	}
}
