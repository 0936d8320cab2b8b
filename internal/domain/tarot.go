package domain

import "fmt"

// RNG abstracts random number generation so draws and reversals are
// reproducible in tests.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

// ReversalProbability is the per-card Bernoulli chance of drawing reversed.
const ReversalProbability = 0.30

// Orientation represents the orientation of a drawn tarot card.
type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
)

// Card is a single tarot card. Upright/Reversed hold the static meaning
// texts; cards without dedicated texts fall back to the generic pair.
type Card struct {
	Name     string   `json:"name"`
	Arcana   string   `json:"arcana"`
	Suit     string   `json:"suit,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Upright  string   `json:"upright,omitempty"`
	Reversed string   `json:"reversed,omitempty"`
}

// Deck is an ordered collection of tarot cards, constant for the process
// lifetime. The standard deck has 22 major and 56 minor arcana.
type Deck struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// DrawnCard is a card drawn into a spread position.
type DrawnCard struct {
	Card
	Position      int         `json:"position"`
	PositionLabel string      `json:"position_label"`
	Orientation   Orientation `json:"orientation"`
}

func (c DrawnCard) DisplayName() string {
	if c.Orientation == Reversed {
		return c.Name + " (Reversed)"
	}
	return c.Name
}

// SpreadType identifies a registered spread.
type SpreadType string

const (
	SpreadSingle       SpreadType = "single"
	SpreadThreeCard    SpreadType = "three_card"
	SpreadRelationship SpreadType = "relationship"
	SpreadCareer       SpreadType = "career"
	SpreadCelticCross  SpreadType = "celtic_cross"
)

// SpreadDef is a registry entry: the card count equals the number of
// position labels for every registered spread, but NewReading tolerates a
// shorter label list and falls back to "Position N".
type SpreadDef struct {
	Type        SpreadType `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Positions   []string   `json:"positions"`
	CardCount   int        `json:"card_count"`
}

var spreadOrder = []SpreadType{
	SpreadSingle, SpreadThreeCard, SpreadRelationship, SpreadCareer, SpreadCelticCross,
}

var spreads = map[SpreadType]SpreadDef{
	SpreadSingle: {
		Type:        SpreadSingle,
		Name:        "Single Card",
		Description: "A single card draw for quick insight into your current situation or a specific question.",
		Positions:   []string{"Present Situation"},
		CardCount:   1,
	},
	SpreadThreeCard: {
		Type:        SpreadThreeCard,
		Name:        "Three Card Spread",
		Description: "A classic three-card spread exploring the past, present, and future influences on your situation.",
		Positions:   []string{"Past", "Present", "Future"},
		CardCount:   3,
	},
	SpreadRelationship: {
		Type:        SpreadRelationship,
		Name:        "Relationship Spread",
		Description: "A three-card spread focused on relationship dynamics, exploring you, your partner, and the relationship itself.",
		Positions:   []string{"You", "Your Partner", "The Relationship"},
		CardCount:   3,
	},
	SpreadCareer: {
		Type:        SpreadCareer,
		Name:        "Career Spread",
		Description: "A three-card spread for career guidance, examining your current situation, challenges, and advice for moving forward.",
		Positions:   []string{"Current Situation", "Challenges", "Advice"},
		CardCount:   3,
	},
	SpreadCelticCross: {
		Type:        SpreadCelticCross,
		Name:        "Celtic Cross",
		Description: "The most comprehensive spread, providing deep insight into all aspects of your situation with 10 cards representing different influences and outcomes.",
		Positions: []string{
			"Present Situation",
			"Challenge/Cross",
			"Distant Past/Foundation",
			"Recent Past",
			"Possible Outcome",
			"Immediate Future",
			"Your Approach",
			"External Influences",
			"Hopes and Fears",
			"Final Outcome",
		},
		CardCount: 10,
	},
}

// LookupSpread resolves a spread identifier against the registry.
func LookupSpread(spreadType string) (SpreadDef, error) {
	def, ok := spreads[SpreadType(spreadType)]
	if !ok {
		return SpreadDef{}, fmt.Errorf("%w: %q", ErrUnknownSpread, spreadType)
	}
	return def, nil
}

// AvailableSpreads lists the registry in registration order.
func AvailableSpreads() []SpreadDef {
	out := make([]SpreadDef, 0, len(spreadOrder))
	for _, t := range spreadOrder {
		out = append(out, spreads[t])
	}
	return out
}

// Shuffle returns a uniformly random permutation of the deck via
// Fisher-Yates. The deck itself is never mutated.
func Shuffle(deck Deck, rng RNG) []Card {
	cards := make([]Card, len(deck.Cards))
	copy(cards, deck.Cards)
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards
}

// Draw shuffles the full deck and takes the first n cards, so names within
// one draw never repeat. Each card independently reverses with probability
// ReversalProbability, sampled after the shuffle completes.
func Draw(deck Deck, n int, rng RNG) ([]DrawnCard, error) {
	if n < 1 {
		return nil, ErrInvalidDraw
	}
	if n > len(deck.Cards) {
		return nil, ErrDrawExceedsDeck
	}

	shuffled := Shuffle(deck, rng)

	drawn := make([]DrawnCard, n)
	for i := 0; i < n; i++ {
		orientation := Upright
		if rng.Float64() < ReversalProbability {
			orientation = Reversed
		}
		drawn[i] = DrawnCard{
			Card:        shuffled[i],
			Position:    i + 1,
			Orientation: orientation,
		}
	}
	return drawn, nil
}

// Reading is a completed spread with the question attached verbatim.
type Reading struct {
	Spread   SpreadDef   `json:"spread"`
	Question string      `json:"question,omitempty"`
	Cards    []DrawnCard `json:"cards"`
}

// NewReading validates the spread type, draws the registered card count and
// zips the drawn cards with the spread's position labels. Validation happens
// before any RNG use, so an unknown spread consumes nothing.
func NewReading(deck Deck, spreadType, question string, rng RNG) (Reading, error) {
	def, err := LookupSpread(spreadType)
	if err != nil {
		return Reading{}, err
	}

	cards, err := Draw(deck, def.CardCount, rng)
	if err != nil {
		return Reading{}, err
	}

	for i := range cards {
		if i < len(def.Positions) {
			cards[i].PositionLabel = def.Positions[i]
		} else {
			cards[i].PositionLabel = fmt.Sprintf("Position %d", i+1)
		}
	}

	return Reading{
		Spread:   def,
		Question: question,
		Cards:    cards,
	}, nil
}

// Generic meanings for cards without dedicated texts.
const (
	GenericUprightMeaning  = "Positive energy, growth, opportunity"
	GenericReversedMeaning = "Blocked energy, internal challenges, reflection needed"
)

// CardMeaning is a static meaning lookup result.
type CardMeaning struct {
	Card        string      `json:"card"`
	Orientation Orientation `json:"orientation"`
	Meaning     string      `json:"meaning"`
}

// Meaning looks up a card's upright or reversed text by canonical name.
// Unknown cards and cards without dedicated texts resolve to the generic
// pair rather than failing.
func (d Deck) Meaning(cardName string, reversed bool) CardMeaning {
	upright, reversedText := GenericUprightMeaning, GenericReversedMeaning
	for _, c := range d.Cards {
		if c.Name != cardName {
			continue
		}
		if c.Upright != "" {
			upright = c.Upright
		}
		if c.Reversed != "" {
			reversedText = c.Reversed
		}
		break
	}

	m := CardMeaning{Card: cardName, Orientation: Upright, Meaning: upright}
	if reversed {
		m.Orientation = Reversed
		m.Meaning = reversedText
	}
	return m
}
