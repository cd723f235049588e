package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"wordcharts/internal/models"
	"wordcharts/internal/pipeline"
	"wordcharts/internal/render"
	"wordcharts/internal/validation"
)

// WordsHandler exposes word frequency analysis via JSON API.
type WordsHandler struct {
	pipeline *pipeline.Pipeline
}

// NewWordsHandler creates a new API words handler.
func NewWordsHandler(p *pipeline.Pipeline) *WordsHandler {
	return &WordsHandler{pipeline: p}
}

// Words returns the ranked words of the page at ?url=, filtered by ?min_freq=.
func (h *WordsHandler) Words(c fiber.Ctx) error {
	url, minFreq, err := parseQuery(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	a, err := h.pipeline.Analyze(c.Context(), url)
	if err != nil {
		return jsonAnalysisError(c, err)
	}

	ranked, used := h.pipeline.Rank(a.Counts, minFreq)
	return jsonSuccess(c, models.NewWordFrequencyResponse(url, a.Counts, ranked, used, a.Language))
}

// Chart renders the ranked words of ?url= as ?kind= and returns the raw
// artifact: an HTML document or a PNG image.
func (h *WordsHandler) Chart(c fiber.Ctx) error {
	url, minFreq, err := parseQuery(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	kind, err := render.ParseChartKind(c.Query("kind"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	a, err := h.pipeline.Analyze(c.Context(), url)
	if err != nil {
		return jsonAnalysisError(c, err)
	}

	ranked, _ := h.pipeline.Rank(a.Counts, minFreq)
	art, err := h.pipeline.Render(ranked, kind)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to render chart")
	}

	switch {
	case art.Empty:
		return jsonError(c, fiber.StatusNotFound, pipeline.MsgNoWords)
	case art.Format == render.FormatImage:
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(art.PNG)
	default:
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(art.Markup)
	}
}

func parseQuery(c fiber.Ctx) (string, int, error) {
	url := validation.SanitizeURL(c.Query("url"))
	if valid, msg := validation.ValidateURL(url); !valid {
		return "", 0, errors.New(msg)
	}

	minFreq := 0
	if raw := c.Query("min_freq"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return "", 0, errors.New("min_freq must be a non-negative integer")
		}
		minFreq = n
	}
	return url, minFreq, nil
}
