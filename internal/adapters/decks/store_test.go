package decks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoCoDeer/astrologer-bot/internal/adapters/decks"
	"github.com/NoCoDeer/astrologer-bot/internal/domain"
)

func TestGetDeck_RiderWaite(t *testing.T) {
	store := decks.NewEmbeddedStore()

	deck, err := store.GetDeck(context.Background(), decks.DefaultDeckID)
	require.NoError(t, err)

	require.Len(t, deck.Cards, 78)

	names := make(map[string]bool, 78)
	majors := 0
	for _, c := range deck.Cards {
		assert.False(t, names[c.Name], "duplicate card %s", c.Name)
		names[c.Name] = true
		if c.Arcana == "major" {
			majors++
		}
	}
	assert.Equal(t, 22, majors)

	fool := deck.Meaning("The Fool", false)
	assert.Equal(t, "New beginnings, innocence, spontaneity, free spirit", fool.Meaning)
}

func TestGetDeck_Unknown(t *testing.T) {
	store := decks.NewEmbeddedStore()
	_, err := store.GetDeck(context.Background(), "thoth")
	assert.ErrorIs(t, err, domain.ErrDeckNotFound)
}
