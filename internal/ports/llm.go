package ports

import "context"

// ReadingKind selects the prompt family for an interpretation request.
type ReadingKind string

const (
	KindTarot      ReadingKind = "tarot"
	KindNatalChart ReadingKind = "natal_chart"
	KindNumerology ReadingKind = "numerology"
)

// CardInput is a simplified drawn card for the LLM prompt.
type CardInput struct {
	Name        string
	Position    int
	Label       string
	Orientation string
	Meaning     string
}

// NumberInput is one numerology profile entry for the LLM prompt.
type NumberInput struct {
	Category string
	Number   int
	Meaning  string
}

// InterpretInput carries a computed reading to the text-generation
// collaborator. Only the fields for the given Kind are set.
type InterpretInput struct {
	Kind     ReadingKind
	Question string

	// Tarot
	SpreadName string
	Cards      []CardInput

	// Natal chart: pre-rendered chart summary lines.
	ChartSummary string

	// Numerology
	Name    string
	Numbers []NumberInput
}

// InterpretOutput is the structured interpretation returned by the LLM.
type InterpretOutput struct {
	Text       string `json:"text"`
	Style      string `json:"style"`
	Disclaimer string `json:"disclaimer"`
	Model      string `json:"-"`
}

// Interpreter generates a reading interpretation via an LLM. The
// computation engine never calls this itself; services pass finished
// results through when interpretation is enabled.
type Interpreter interface {
	Interpret(ctx context.Context, in InterpretInput) (InterpretOutput, error)
}
