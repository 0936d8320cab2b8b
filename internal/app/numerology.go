package app

import (
	"context"
	"fmt"
	"time"

	"github.com/NoCoDeer/astrologer-bot/internal/domain"
	"github.com/NoCoDeer/astrologer-bot/internal/ports"
)

// NumberInterpretation pairs one profile number with its meaning text.
type NumberInterpretation struct {
	Category string `json:"category"`
	Number   int    `json:"number"`
	Meaning  string `json:"meaning"`
}

// NumerologyReading is a full six-number profile with static meanings and,
// when an interpreter is wired, a generated reading of the whole profile.
type NumerologyReading struct {
	Name            string                   `json:"name"`
	BirthDate       string                   `json:"birth_date"`
	Numbers         domain.NumerologyProfile `json:"numbers"`
	Interpretations []NumberInterpretation   `json:"interpretations"`
	Interpretation  *ports.InterpretOutput   `json:"interpretation,omitempty"`
}

// NumerologyService computes profiles and resolves meaning texts through
// the injected meaning store.
type NumerologyService struct {
	meanings    ports.MeaningStore
	interpreter ports.Interpreter
}

// NewNumerologyService wires the profile engine. interpreter may be nil, in
// which case readings carry only the static meanings.
func NewNumerologyService(meanings ports.MeaningStore, interpreter ports.Interpreter) *NumerologyService {
	return &NumerologyService{meanings: meanings, interpreter: interpreter}
}

// FullProfile bundles all six numbers, each paired with its meaning.
func (s *NumerologyService) FullProfile(ctx context.Context, fullName string, birth time.Time) (NumerologyReading, error) {
	if birth.IsZero() {
		return NumerologyReading{}, fmt.Errorf("%w: no birth date", domain.ErrInvalidBirthData)
	}

	profile := domain.ComputeProfile(fullName, birth)

	interpretations := make([]NumberInterpretation, 0, len(domain.Categories))
	for _, category := range domain.Categories {
		number, ok := profile.Number(category)
		if !ok {
			return NumerologyReading{}, fmt.Errorf("unknown numerology category %q", category)
		}
		meaning, err := s.meanings.NumberMeaning(ctx, category, number)
		if err != nil {
			return NumerologyReading{}, fmt.Errorf("meaning lookup %s/%d: %w", category, number, err)
		}
		interpretations = append(interpretations, NumberInterpretation{
			Category: category,
			Number:   number,
			Meaning:  meaning,
		})
	}

	reading := NumerologyReading{
		Name:            fullName,
		BirthDate:       birth.UTC().Format("2006-01-02"),
		Numbers:         profile,
		Interpretations: interpretations,
	}

	if s.interpreter != nil {
		numbers := make([]ports.NumberInput, len(interpretations))
		for i, interp := range interpretations {
			numbers[i] = ports.NumberInput{
				Category: interp.Category,
				Number:   interp.Number,
				Meaning:  interp.Meaning,
			}
		}
		out, err := s.interpreter.Interpret(ctx, ports.InterpretInput{
			Kind:    ports.KindNumerology,
			Name:    fullName,
			Numbers: numbers,
		})
		if err != nil {
			return NumerologyReading{}, fmt.Errorf("interpret: %w", err)
		}
		reading.Interpretation = &out
	}

	return reading, nil
}
