package ports

import (
	"context"

	"github.com/NoCoDeer/astrologer-bot/internal/domain"
)

// DeckStore provides access to tarot decks.
type DeckStore interface {
	GetDeck(ctx context.Context, deckID string) (domain.Deck, error)
}

// MeaningStore resolves numerology meaning texts. Categories without a
// dedicated table resolve through a generic per-number fallback.
type MeaningStore interface {
	NumberMeaning(ctx context.Context, category string, number int) (string, error)
}
