package meanings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoCoDeer/astrologer-bot/internal/adapters/meanings"
	"github.com/NoCoDeer/astrologer-bot/internal/domain"
)

func TestNumberMeaning_DedicatedTables(t *testing.T) {
	store := meanings.NewEmbeddedStore()

	for _, category := range []string{
		domain.CategoryLifePath,
		domain.CategoryExpression,
		domain.CategorySoulUrge,
		domain.CategoryPersonality,
	} {
		for _, n := range []int{1, 9, 11, 22, 33} {
			meaning, err := store.NumberMeaning(context.Background(), category, n)
			require.NoError(t, err, "%s/%d", category, n)
			assert.NotEmpty(t, meaning)
			assert.NotEqual(t, meanings.UnknownMeaning, meaning, "%s/%d", category, n)
		}
	}
}

func TestNumberMeaning_FallbackForDateCategories(t *testing.T) {
	store := meanings.NewEmbeddedStore()

	// Birth day and attitude have no dedicated tables and resolve through
	// the generic per-number fallback.
	meaning, err := store.NumberMeaning(context.Background(), domain.CategoryBirthDay, 7)
	require.NoError(t, err)
	assert.NotEmpty(t, meaning)
	assert.NotEqual(t, meanings.UnknownMeaning, meaning)

	fromAttitude, err := store.NumberMeaning(context.Background(), domain.CategoryAttitude, 7)
	require.NoError(t, err)
	assert.Equal(t, meaning, fromAttitude, "both date categories share the fallback table")
}

func TestNumberMeaning_Unknown(t *testing.T) {
	store := meanings.NewEmbeddedStore()

	// 0 exists in no table (an empty name reduces to 0).
	meaning, err := store.NumberMeaning(context.Background(), domain.CategoryExpression, 0)
	require.NoError(t, err)
	assert.Equal(t, meanings.UnknownMeaning, meaning)
}
