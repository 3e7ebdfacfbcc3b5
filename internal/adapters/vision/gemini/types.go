package gemini

import "strings"

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]schema `json:"properties,omitempty"`
	Items       *schema           `json:"items,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

func (r generateResponse) joinText() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

type verdictPayload struct {
	IsWasteBin      *bool    `json:"isWasteBin"`
	IsFull          bool     `json:"isFull"`
	FillLevel       float64  `json:"fillLevel"`
	Confidence      float64  `json:"confidence"`
	Notes           string   `json:"notes"`
	DetectedObjects []string `json:"detectedObjects"`
	Suggestions     string   `json:"suggestions"`
}

func verdictSchema() *schema {
	return &schema{
		Type: "OBJECT",
		Properties: map[string]schema{
			"isWasteBin":      {Type: "BOOLEAN", Description: "Rasmda chiqindi konteyneri bormi"},
			"isFull":          {Type: "BOOLEAN", Description: "Konteyner to'lami"},
			"fillLevel":       {Type: "NUMBER", Description: "To'lish darajasi, 0-100"},
			"confidence":      {Type: "NUMBER", Description: "Ishonchlilik, 0-100"},
			"notes":           {Type: "STRING"},
			"detectedObjects": {Type: "ARRAY", Items: &schema{Type: "STRING"}},
			"suggestions":     {Type: "STRING"},
		},
		Required: []string{"isWasteBin", "isFull", "fillLevel", "confidence", "notes", "detectedObjects", "suggestions"},
	}
}
