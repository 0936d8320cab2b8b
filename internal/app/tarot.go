package app

import (
	"context"
	"fmt"

	"github.com/NoCoDeer/astrologer-bot/internal/domain"
	"github.com/NoCoDeer/astrologer-bot/internal/ports"
)

// ReadingRequest is the application-level tarot input (no HTTP types).
type ReadingRequest struct {
	SpreadType string
	Question   string
}

// ReadingResponse is a completed reading, optionally interpreted.
type ReadingResponse struct {
	Reading        domain.Reading
	Interpretation *ports.InterpretOutput
}

// TarotService draws spreads from the configured deck and optionally passes
// them to the interpretation collaborator.
type TarotService struct {
	decks       ports.DeckStore
	interpreter ports.Interpreter
	rng         domain.RNG
	deckID      string
}

// NewTarotService wires the tarot engine. interpreter may be nil, in which
// case readings are returned uninterpreted.
func NewTarotService(decks ports.DeckStore, interpreter ports.Interpreter, rng domain.RNG, deckID string) *TarotService {
	return &TarotService{
		decks:       decks,
		interpreter: interpreter,
		rng:         rng,
		deckID:      deckID,
	}
}

// CreateReading validates the spread, draws the cards and attaches the
// question verbatim. Spread validation happens before the deck is touched.
func (s *TarotService) CreateReading(ctx context.Context, req ReadingRequest) (ReadingResponse, error) {
	if _, err := domain.LookupSpread(req.SpreadType); err != nil {
		return ReadingResponse{}, err
	}

	deck, err := s.decks.GetDeck(ctx, s.deckID)
	if err != nil {
		return ReadingResponse{}, fmt.Errorf("get deck: %w", err)
	}

	reading, err := domain.NewReading(deck, req.SpreadType, req.Question, s.rng)
	if err != nil {
		return ReadingResponse{}, fmt.Errorf("generate reading: %w", err)
	}

	resp := ReadingResponse{Reading: reading}
	if s.interpreter == nil {
		return resp, nil
	}

	out, err := s.interpreter.Interpret(ctx, interpretInput(deck, reading))
	if err != nil {
		return ReadingResponse{}, fmt.Errorf("interpret: %w", err)
	}
	resp.Interpretation = &out
	return resp, nil
}

// Spreads lists the registered spreads in registration order.
func (s *TarotService) Spreads() []domain.SpreadDef {
	return domain.AvailableSpreads()
}

// CardMeaning resolves a card's static upright/reversed text.
func (s *TarotService) CardMeaning(ctx context.Context, cardName string, reversed bool) (domain.CardMeaning, error) {
	deck, err := s.decks.GetDeck(ctx, s.deckID)
	if err != nil {
		return domain.CardMeaning{}, fmt.Errorf("get deck: %w", err)
	}
	return deck.Meaning(cardName, reversed), nil
}

func interpretInput(deck domain.Deck, reading domain.Reading) ports.InterpretInput {
	cards := make([]ports.CardInput, len(reading.Cards))
	for i, c := range reading.Cards {
		meaning := deck.Meaning(c.Name, c.Orientation == domain.Reversed)
		cards[i] = ports.CardInput{
			Name:        c.Name,
			Position:    c.Position,
			Label:       c.PositionLabel,
			Orientation: string(c.Orientation),
			Meaning:     meaning.Meaning,
		}
	}
	return ports.InterpretInput{
		Kind:       ports.KindTarot,
		Question:   reading.Question,
		SpreadName: reading.Spread.Name,
		Cards:      cards,
	}
}
