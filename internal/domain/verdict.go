package domain

import "fmt"

const (
	noCredentialNote        = "AI kaliti sozlanmagan, konteyner to'la deb belgilandi (operator tekshiruvi kerak)"
	noCredentialSuggestions = "Konteyner hozir to'la, yuklab olish kerak"
	failedSuggestions       = "AI tahlil qilishda xatolik yuz berdi"
)

type Verdict struct {
	IsWasteContainer  bool
	IsFull            bool
	FillLevelPercent  int
	ConfidencePercent int
	Notes             string
	DetectedObjects   []string
	Suggestions       string
}

// NoCredentialVerdict is returned when no classifier credential is configured:
// assume the bin is full and leave it for human review.
func NoCredentialVerdict() Verdict {
	return Verdict{
		IsWasteContainer:  true,
		IsFull:            true,
		FillLevelPercent:  90,
		ConfidencePercent: 70,
		Notes:             noCredentialNote,
		DetectedObjects:   []string{"waste bin", "plastic bags"},
		Suggestions:       noCredentialSuggestions,
	}
}

// FailedVerdict is the zero-confidence negative verdict used when analysis
// could not complete.
func FailedVerdict(note string) Verdict {
	return Verdict{
		Notes:           note,
		DetectedObjects: []string{},
		Suggestions:     failedSuggestions,
	}
}

func (v Verdict) Normalized() Verdict {
	v.FillLevelPercent = ClampPercent(v.FillLevelPercent)
	v.ConfidencePercent = ClampPercent(v.ConfidencePercent)
	if v.DetectedObjects == nil {
		v.DetectedObjects = []string{}
	}
	return v
}

// AnalysisNote is the last_analysis text stored by the backend.
func (v Verdict) AnalysisNote() string {
	return fmt.Sprintf("AI tahlili: %s, Isbot: %t, IsFull: %t, Conf: %d%%",
		v.Notes, v.IsWasteContainer, v.IsFull, v.ConfidencePercent)
}
