package domain

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const binsPathMarker = "/waste-bins/"

var (
	binQueryKeys      = []string{"bin_id", "id"}
	embeddedUUIDRegex = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)
)

// ExtractBinID finds a bin reference in scanned or typed text. It checks, in
// order: URL query parameters, a bare UUID, a /waste-bins/<id> path segment and
// finally any UUID embedded in the text.
func ExtractBinID(text string) (BinID, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}

	if strings.Contains(trimmed, "http") {
		if id, ok := binIDFromURL(trimmed); ok {
			return id, true
		}
	}

	if id, ok := CanonicalBinID(trimmed); ok {
		return id, true
	}

	if id, ok := binIDFromPath(trimmed); ok {
		return id, true
	}

	if match := embeddedUUIDRegex.FindString(trimmed); match != "" {
		return CanonicalBinIDOrRaw(match), true
	}

	return "", false
}

// CanonicalBinID reports whether raw is a UUID and returns its canonical form.
func CanonicalBinID(raw string) (BinID, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) != 36 || strings.Count(raw, "-") != 4 {
		return "", false
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return BinID(parsed.String()), true
}

func CanonicalBinIDOrRaw(raw string) BinID {
	if id, ok := CanonicalBinID(raw); ok {
		return id
	}
	return BinID(strings.TrimSpace(raw))
}

func binIDFromURL(text string) (BinID, bool) {
	start := strings.Index(text, "http")
	candidate := text[start:]
	if end := strings.IndexAny(candidate, " \t\r\n"); end >= 0 {
		candidate = candidate[:end]
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", false
	}

	query := parsed.Query()
	for _, key := range binQueryKeys {
		if value := strings.TrimSpace(query.Get(key)); value != "" {
			return CanonicalBinIDOrRaw(value), true
		}
	}

	return "", false
}

func binIDFromPath(text string) (BinID, bool) {
	idx := strings.Index(text, binsPathMarker)
	if idx < 0 {
		return "", false
	}

	rest := text[idx+len(binsPathMarker):]
	if end := strings.IndexAny(rest, "/?# \t\r\n"); end >= 0 {
		rest = rest[:end]
	}
	if rest == "" {
		return "", false
	}

	return CanonicalBinIDOrRaw(rest), true
}
