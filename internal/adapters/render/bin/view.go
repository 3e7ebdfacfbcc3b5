package bin

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tozahudud/binbot/internal/domain"
)

const barWidth = 24

// Document is what a CLI command wants on screen: any mix of a bin, a verdict
// and a sensor reading.
type Document struct {
	Bin     *domain.BinSnapshot
	Verdict *domain.Verdict
	Reading *domain.SensorReading
}

func renderView(doc Document, s styles) string {
	var sections []string
	if doc.Bin != nil {
		sections = append(sections, renderBin(*doc.Bin, s))
	}
	if doc.Verdict != nil {
		sections = append(sections, renderVerdict(*doc.Verdict, s))
	}
	if doc.Reading != nil {
		sections = append(sections, renderReading(*doc.Reading, s))
	}

	if len(sections) == 0 {
		return s.empty.Render("Nothing to show.")
	}

	for i := 1; i < len(sections); i++ {
		sections[i] = s.section.Render(sections[i])
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderBin(bin domain.BinSnapshot, s styles) string {
	status := s.ok.Render("not full")
	if bin.IsFull {
		status = s.full.Render("FULL")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("Waste bin "+orDash(bin.ID.String())),
		field("address", orDash(bin.Address), s),
		field("zone", orDash(bin.ZoneName), s),
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.label.Render("fill:    "),
			renderFillBar(bin.FillLevelPercent, barWidth, s),
			" ",
			fillStyle(bin.FillLevelPercent).Render(fmt.Sprintf("%3d%%", domain.ClampPercent(bin.FillLevelPercent))),
			" ",
			status,
		),
	)
}

func renderVerdict(verdict domain.Verdict, s styles) string {
	lines := []string{s.title.Render("Photo analysis")}

	if !verdict.IsWasteContainer {
		lines = append(lines, s.full.Render("no waste container detected"))
	} else {
		state := s.ok.Render("not full")
		if verdict.IsFull {
			state = s.full.Render("FULL")
		}
		lines = append(lines,
			field("state", state, s),
			lipgloss.JoinHorizontal(lipgloss.Top,
				s.label.Render("fill:    "),
				renderFillBar(verdict.FillLevelPercent, barWidth, s),
				" ",
				fillStyle(verdict.FillLevelPercent).Render(fmt.Sprintf("%3d%%", domain.ClampPercent(verdict.FillLevelPercent))),
			),
		)
	}

	lines = append(lines, field("confidence", fmt.Sprintf("%d%%", domain.ClampPercent(verdict.ConfidencePercent)), s))
	if len(verdict.DetectedObjects) > 0 {
		lines = append(lines, field("objects", strings.Join(verdict.DetectedObjects, ", "), s))
	}
	if notes := strings.TrimSpace(verdict.Notes); notes != "" {
		lines = append(lines, s.note.Render(notes))
	}
	if suggestions := strings.TrimSpace(verdict.Suggestions); suggestions != "" {
		lines = append(lines, field("suggestion", suggestions, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderReading(reading domain.SensorReading, s styles) string {
	lines := []string{s.title.Render("Sensor reading " + orDash(reading.DeviceID))}

	if reading.TemperatureC != nil {
		lines = append(lines, field("temperature", formatFloat(*reading.TemperatureC)+" °C", s))
	}
	if reading.HumidityPercent != nil {
		lines = append(lines, field("humidity", formatFloat(*reading.HumidityPercent)+" %", s))
	}
	if reading.SleepSeconds != nil {
		lines = append(lines, field("sleep", strconv.Itoa(*reading.SleepSeconds)+" s", s))
	}
	if !reading.Valid() {
		lines = append(lines, s.full.Render("incomplete reading"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(label, value string, s styles) string {
	return s.label.Render(fmt.Sprintf("%-9s", label+":")) + s.value.Render(value)
}

func renderFillBar(percent int, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	clamped := domain.ClampPercent(percent)
	filled := int(math.Round(float64(width) * float64(clamped) / 100))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillStyle(percent).Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func fillStyle(percent int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fillColor(percent))
}

func fillColor(percent int) lipgloss.Color {
	switch clamped := domain.ClampPercent(percent); {
	case clamped >= 80:
		return lipgloss.Color("203")
	case clamped >= 50:
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("42")
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
