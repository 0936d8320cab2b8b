// Package meanings serves the static numerology meaning tables. The four
// name/date categories have dedicated 12-entry tables; every other category
// resolves through the generic per-number fallback.
package meanings

import (
	"context"
	"embed"
	"fmt"
	"strconv"
	"sync"

	json "github.com/goccy/go-json"
)

//go:embed data/numerology.json
var meaningFS embed.FS

const fallbackTable = "default"

// UnknownMeaning is returned when neither a dedicated table nor the
// fallback knows the number.
const UnknownMeaning = "Unknown meaning"

// EmbeddedStore loads the meaning tables from the embedded JSON file once.
type EmbeddedStore struct {
	once   sync.Once
	tables map[string]map[string]string
	err    error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	raw, err := meaningFS.ReadFile("data/numerology.json")
	if err != nil {
		s.err = fmt.Errorf("read embedded meanings: %w", err)
		return
	}
	if err := json.Unmarshal(raw, &s.tables); err != nil {
		s.err = fmt.Errorf("parse embedded meanings: %w", err)
	}
}

// NumberMeaning resolves (category, number) against the dedicated table for
// the category, then the generic fallback table.
func (s *EmbeddedStore) NumberMeaning(_ context.Context, category string, number int) (string, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return "", s.err
	}

	key := strconv.Itoa(number)
	if table, ok := s.tables[category]; ok {
		if meaning, ok := table[key]; ok {
			return meaning, nil
		}
	}
	if meaning, ok := s.tables[fallbackTable][key]; ok {
		return meaning, nil
	}
	return UnknownMeaning, nil
}
