package domain

import "strings"

type BinID string

func (id BinID) String() string {
	return string(id)
}

func (id BinID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

type BinSnapshot struct {
	ID               BinID
	Address          string
	FillLevelPercent int
	IsFull           bool
	ZoneName         string
}

// AnalyzedBin is a snapshot fetched right after an image update, paired with the
// verdict that was written.
type AnalyzedBin struct {
	Snapshot BinSnapshot
	Verdict  Verdict
}

func ClampPercent(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
