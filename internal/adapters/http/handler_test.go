package http_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoCoDeer/astrologer-bot/internal/adapters/decks"
	"github.com/NoCoDeer/astrologer-bot/internal/adapters/ephemeris/kepler"
	httpadapter "github.com/NoCoDeer/astrologer-bot/internal/adapters/http"
	"github.com/NoCoDeer/astrologer-bot/internal/adapters/meanings"
	"github.com/NoCoDeer/astrologer-bot/internal/app"
	"github.com/NoCoDeer/astrologer-bot/internal/ports"
)

type seqRNG struct{ n int }

func (r *seqRNG) Intn(n int) int { r.n++; return r.n % n }
func (*seqRNG) Float64() float64 { return 0.5 }

type stubInterpreter struct {
	out ports.InterpretOutput
}

func (s stubInterpreter) Interpret(_ context.Context, _ ports.InterpretInput) (ports.InterpretOutput, error) {
	return s.out, nil
}

func newTestServer(t *testing.T) *echo.Echo {
	return newTestServerWith(t, nil)
}

func newTestServerWith(t *testing.T, interpreter ports.Interpreter) *echo.Echo {
	t.Helper()

	astrology := app.NewAstrologyService(kepler.New(), interpreter, "placidus", slog.Default())
	numerology := app.NewNumerologyService(meanings.NewEmbeddedStore(), interpreter)
	tarot := app.NewTarotService(decks.NewEmbeddedStore(), interpreter, &seqRNG{}, decks.DefaultDeckID)

	e := echo.New()
	e.JSONSerializer = httpadapter.JSONSerializer{}
	httpadapter.NewHandler(astrology, numerology, tarot).Register(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestTarotEndpoint_CelticCross(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodPost, "/v1/tarot",
		`{"spread":"celtic_cross","question":"Will I find love?"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp httpadapter.TarotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "celtic_cross", resp.Spread)
	assert.Equal(t, "Celtic Cross", resp.SpreadName)
	assert.Equal(t, "Will I find love?", resp.Question)
	require.Len(t, resp.Cards, 10)

	names := make(map[string]bool, 10)
	for i, card := range resp.Cards {
		assert.Equal(t, i+1, card.Position)
		assert.NotEmpty(t, card.Label)
		assert.False(t, names[card.Name], "duplicate card %s", card.Name)
		names[card.Name] = true
	}
	assert.Nil(t, resp.Interpretation, "no interpreter configured")
}

func TestTarotEndpoint_UnknownSpread(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodPost, "/v1/tarot", `{"spread":"nonexistent"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTarotEndpoint_MissingSpread(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodPost, "/v1/tarot", `{"question":"hm"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSpreadsEndpoint(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodGet, "/v1/tarot/spreads", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var defs []httpadapter.SpreadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &defs))
	require.Len(t, defs, 5)
	assert.Equal(t, "single", defs[0].Type)
	assert.Equal(t, "celtic_cross", defs[4].Type)
	for _, def := range defs {
		assert.Len(t, def.Positions, def.CardCount, "spread %s", def.Type)
	}
}

func TestCardMeaningEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/v1/tarot/cards/The%20Fool", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "New beginnings")

	rec = doJSON(t, e, http.MethodGet, "/v1/tarot/cards/The%20Fool?reversed=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Recklessness")

	rec = doJSON(t, e, http.MethodGet, "/v1/tarot/cards/The%20Fool?reversed=banana", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChartEndpoint(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodPost, "/v1/chart",
		`{"birth_date":"1990-05-15T10:30:00Z","latitude":55.75,"longitude":37.62}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp httpadapter.ChartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Greater(t, resp.JulianDay, 2.4e6)
	assert.Len(t, resp.Planets, 10)
	assert.Len(t, resp.Houses, 14)
	assert.Equal(t, 55.75, resp.BirthInfo.Latitude)
}

func TestChartEndpoint_Interpreted(t *testing.T) {
	interp := stubInterpreter{out: ports.InterpretOutput{
		Text:       "A rich chart reading.",
		Style:      "neutral",
		Disclaimer: "For reflection only.",
	}}
	e := newTestServerWith(t, interp)

	rec := doJSON(t, e, http.MethodPost, "/v1/chart",
		`{"birth_date":"1990-05-15T10:30:00Z","latitude":55.75,"longitude":37.62}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp httpadapter.ChartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Interpretation)
	assert.Equal(t, "A rich chart reading.", resp.Interpretation.Text)
}

func TestNumerologyEndpoint_Interpreted(t *testing.T) {
	interp := stubInterpreter{out: ports.InterpretOutput{Text: "A rich numerology reading."}}
	e := newTestServerWith(t, interp)

	rec := doJSON(t, e, http.MethodPost, "/v1/numerology",
		`{"full_name":"John Doe","birth_date":"1990-05-15T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var reading app.NumerologyReading
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reading))
	require.NotNil(t, reading.Interpretation)
	assert.Equal(t, "A rich numerology reading.", reading.Interpretation.Text)
}

func TestChartEndpoint_Validation(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/v1/chart",
		`{"latitude":55.75,"longitude":37.62}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing birth_date")

	rec = doJSON(t, e, http.MethodPost, "/v1/chart",
		`{"birth_date":"1990-05-15T10:30:00Z","latitude":91,"longitude":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "latitude out of range")
}

func TestTransitsEndpoint(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodPost, "/v1/chart/transits",
		`{"birth_date":"1990-05-15T10:30:00Z","latitude":55.75,"longitude":37.62}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report app.TransitReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Len(t, report.Current, 10)
}

func TestDailyAspectsEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/v1/aspects/daily?date=2024-03-01", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Date    string `json:"date"`
		Aspects []any  `json:"aspects"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-03-01", resp.Date)

	rec = doJSON(t, e, http.MethodGet, "/v1/aspects/daily?date=01.03.2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNumerologyEndpoint(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodPost, "/v1/numerology",
		`{"full_name":"John Doe","birth_date":"1990-05-15T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var reading app.NumerologyReading
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reading))

	assert.Equal(t, "John Doe", reading.Name)
	assert.Equal(t, "1990-05-15", reading.BirthDate)
	assert.Equal(t, 3, reading.Numbers.LifePath)
	assert.Equal(t, 8, reading.Numbers.Expression)
	require.Len(t, reading.Interpretations, 6)
	for _, interp := range reading.Interpretations {
		assert.NotEmpty(t, interp.Meaning)
	}
}

func TestNumerologyEndpoint_Validation(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(t, e, http.MethodPost, "/v1/numerology", `{"full_name":"John Doe"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
