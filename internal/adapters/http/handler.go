package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/NoCoDeer/astrologer-bot/internal/app"
	"github.com/NoCoDeer/astrologer-bot/internal/domain"
)

type Handler struct {
	astrology  *app.AstrologyService
	numerology *app.NumerologyService
	tarot      *app.TarotService
	validate   *validator.Validate
}

func NewHandler(astrology *app.AstrologyService, numerology *app.NumerologyService, tarot *app.TarotService) *Handler {
	return &Handler{
		astrology:  astrology,
		numerology: numerology,
		tarot:      tarot,
		validate:   validator.New(),
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.POST("/v1/chart", h.NatalChart)
	e.POST("/v1/chart/transits", h.Transits)
	e.GET("/v1/aspects/daily", h.DailyAspects)
	e.POST("/v1/numerology", h.Numerology)
	e.POST("/v1/tarot", h.Tarot)
	e.GET("/v1/tarot/spreads", h.Spreads)
	e.GET("/v1/tarot/cards/:name", h.CardMeaning)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return h.validate.Struct(req)
}

func (h *Handler) NatalChart(c echo.Context) error {
	var req ChartRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	reading, err := h.astrology.NatalChartReading(c.Request().Context(), req.birthRecord())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toChartResponse(reading))
}

func (h *Handler) Transits(c echo.Context) error {
	var req ChartRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	chart, err := h.astrology.NatalChart(req.birthRecord())
	if err != nil {
		return mapError(c, err)
	}

	report, err := h.astrology.Transits(chart.Planets, time.Now().UTC())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) DailyAspects(c echo.Context) error {
	date := time.Now().UTC()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be formatted as YYYY-MM-DD"})
		}
		date = parsed
	}

	aspects, err := h.astrology.DailyAspects(date)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"date":    date.Format("2006-01-02"),
		"aspects": aspects,
	})
}

func (h *Handler) Numerology(c echo.Context) error {
	var req NumerologyRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	reading, err := h.numerology.FullProfile(c.Request().Context(), req.FullName, req.BirthDate.UTC())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, reading)
}

func (h *Handler) Tarot(c echo.Context) error {
	var req TarotRequest
	if err := h.bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	start := time.Now()
	resp, err := h.tarot.CreateReading(c.Request().Context(), app.ReadingRequest{
		SpreadType: req.Spread,
		Question:   req.Question,
	})
	if err != nil {
		return mapError(c, err)
	}

	requestID, _ := c.Get("request_id").(string)
	return c.JSON(http.StatusOK, toTarotResponse(resp, requestID, time.Since(start).Milliseconds()))
}

func (h *Handler) Spreads(c echo.Context) error {
	defs := h.tarot.Spreads()
	out := make([]SpreadResponse, len(defs))
	for i, def := range defs {
		out[i] = SpreadResponse{
			Type:        string(def.Type),
			Name:        def.Name,
			Description: def.Description,
			Positions:   def.Positions,
			CardCount:   def.CardCount,
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CardMeaning(c echo.Context) error {
	name := c.Param("name")
	// Path params keep their percent-encoding; card names contain spaces.
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	reversed := false
	if raw := c.QueryParam("reversed"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reversed must be a boolean"})
		}
		reversed = parsed
	}

	meaning, err := h.tarot.CardMeaning(c.Request().Context(), name, reversed)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, meaning)
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrInvalidBirthData),
		errors.Is(err, domain.ErrUnknownSpread),
		errors.Is(err, domain.ErrInvalidDraw),
		errors.Is(err, domain.ErrDrawExceedsDeck):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDeckNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstreamLLM), errors.Is(err, domain.ErrInvalidLLMJSON):
		slog.Error("upstream LLM failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream LLM failure"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
