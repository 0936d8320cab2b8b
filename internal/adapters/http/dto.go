package http

import (
	"time"

	"github.com/NoCoDeer/astrologer-bot/internal/app"
	"github.com/NoCoDeer/astrologer-bot/internal/domain"
)

// ChartRequest is the JSON body for POST /v1/chart and /v1/chart/transits.
// The birth instant must be RFC 3339 with an offset; it is normalized to
// UTC before computation.
type ChartRequest struct {
	BirthDate time.Time `json:"birth_date" validate:"required"`
	Latitude  float64   `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64   `json:"longitude" validate:"gte=-180,lte=180"`
}

func (r ChartRequest) birthRecord() domain.BirthRecord {
	return domain.BirthRecord{
		Instant:   r.BirthDate.UTC(),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

// ChartResponse is the JSON shape returned by POST /v1/chart.
type ChartResponse struct {
	JulianDay      float64                                  `json:"julian_day"`
	Planets        map[domain.Body]domain.CelestialPosition `json:"planets"`
	Houses         map[string]domain.HouseCusp              `json:"houses"`
	Aspects        []domain.AspectRelation                  `json:"aspects"`
	BirthInfo      BirthInfoResp                            `json:"birth_info"`
	Interpretation *InterpretationResp                      `json:"interpretation,omitempty"`
}

type BirthInfoResp struct {
	Date      string  `json:"date"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NumerologyRequest is the JSON body for POST /v1/numerology.
type NumerologyRequest struct {
	FullName  string    `json:"full_name" validate:"required,max=200"`
	BirthDate time.Time `json:"birth_date" validate:"required"`
}

// TarotRequest is the JSON body for POST /v1/tarot.
type TarotRequest struct {
	Spread   string `json:"spread" validate:"required"`
	Question string `json:"question" validate:"max=500"`
}

// TarotResponse is the JSON shape returned by POST /v1/tarot.
type TarotResponse struct {
	Spread         string              `json:"spread"`
	SpreadName     string              `json:"spread_name"`
	Question       string              `json:"question,omitempty"`
	Cards          []CardResponse      `json:"cards"`
	Interpretation *InterpretationResp `json:"interpretation,omitempty"`
	Meta           MetaResp            `json:"meta"`
}

type CardResponse struct {
	Name        string             `json:"name"`
	DisplayName string             `json:"display_name"`
	Position    int                `json:"position"`
	Label       string             `json:"position_label"`
	Orientation domain.Orientation `json:"orientation"`
	Keywords    []string           `json:"keywords,omitempty"`
}

type InterpretationResp struct {
	Style      string `json:"style"`
	Text       string `json:"text"`
	Disclaimer string `json:"disclaimer"`
	Model      string `json:"model,omitempty"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

// SpreadResponse is one registry entry in GET /v1/tarot/spreads.
type SpreadResponse struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Positions   []string `json:"positions"`
	CardCount   int      `json:"card_count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toTarotResponse(r app.ReadingResponse, requestID string, latencyMS int64) TarotResponse {
	cards := make([]CardResponse, len(r.Reading.Cards))
	for i, dc := range r.Reading.Cards {
		cards[i] = CardResponse{
			Name:        dc.Name,
			DisplayName: dc.DisplayName(),
			Position:    dc.Position,
			Label:       dc.PositionLabel,
			Orientation: dc.Orientation,
			Keywords:    dc.Keywords,
		}
	}
	resp := TarotResponse{
		Spread:     string(r.Reading.Spread.Type),
		SpreadName: r.Reading.Spread.Name,
		Question:   r.Reading.Question,
		Cards:      cards,
		Meta: MetaResp{
			RequestID: requestID,
			LatencyMS: latencyMS,
		},
	}
	if r.Interpretation != nil {
		resp.Interpretation = &InterpretationResp{
			Style:      r.Interpretation.Style,
			Text:       r.Interpretation.Text,
			Disclaimer: r.Interpretation.Disclaimer,
			Model:      r.Interpretation.Model,
		}
	}
	return resp
}

func toChartResponse(r app.ChartReading) ChartResponse {
	chart := r.Chart
	resp := ChartResponse{
		JulianDay: chart.JulianDay,
		Planets:   chart.Planets,
		Houses:    chart.Houses,
		Aspects:   chart.Aspects,
		BirthInfo: BirthInfoResp{
			Date:      chart.Birth.Instant.Format(time.RFC3339),
			Latitude:  chart.Birth.Latitude,
			Longitude: chart.Birth.Longitude,
		},
	}
	if r.Interpretation != nil {
		resp.Interpretation = &InterpretationResp{
			Style:      r.Interpretation.Style,
			Text:       r.Interpretation.Text,
			Disclaimer: r.Interpretation.Disclaimer,
			Model:      r.Interpretation.Model,
		}
	}
	return resp
}
