package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"wordcharts/internal/config"
	"wordcharts/internal/pipeline"
	"wordcharts/internal/render"
	"wordcharts/internal/validation"
)

// stateKey is the session key holding the JSON-encoded pipeline state.
const stateKey = "cycle"

// AnalyzeHandler serves the interactive analysis page.
type AnalyzeHandler struct {
	pipeline *pipeline.Pipeline
	cfg      *config.Config
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(p *pipeline.Pipeline, cfg *config.Config) *AnalyzeHandler {
	return &AnalyzeHandler{pipeline: p, cfg: cfg}
}

// Index renders the page. A returning visitor sees their last analysis again,
// served from the cached counts.
func (h *AnalyzeHandler) Index(c fiber.Ctx) error {
	data := fiber.Map{"Title": h.cfg.SiteTitle}

	if prev := loadState(c); prev != nil && prev.URL != "" {
		state, view := h.pipeline.Apply(c.Context(), prev, pipeline.Input{
			URL:     prev.URL,
			Kind:    prev.Kind,
			MinFreq: prev.MinFreq,
		})
		saveState(c, state)
		h.viewData(data, state, view)
	}

	return c.Render("index", MergeBranding(data, h.cfg))
}

// Cycle runs one interaction cycle for an HTMX form change and renders the
// result partial.
func (h *AnalyzeHandler) Cycle(c fiber.Ctx) error {
	kind, err := render.ParseChartKind(c.FormValue("kind"))
	if err != nil {
		return htmxError(c, "不支持的图表类型")
	}
	minFreq, _ := strconv.Atoi(c.FormValue("min_freq"))

	state, view := h.pipeline.Apply(c.Context(), loadState(c), pipeline.Input{
		URL:     validation.SanitizeURL(c.FormValue("url")),
		Kind:    kind,
		MinFreq: minFreq,
	})
	saveState(c, state)

	data := fiber.Map{}
	h.viewData(data, state, view)
	return c.Render("partials/cycle", data, "")
}

func (h *AnalyzeHandler) viewData(data fiber.Map, state *pipeline.State, view *pipeline.View) {
	data["URL"] = state.URL
	data["View"] = view
	data["ChartHeight"] = h.cfg.ChartHeight
	data["EmptyMessage"] = pipeline.MsgNoWords

	if lang := view.Language; lang != nil {
		data["Language"] = fmt.Sprintf("%s（%.0f%%）", lang.Name, lang.Confidence*100)
	}
	if a := view.Artifact; a != nil && a.Format == render.FormatImage {
		data["ChartSrc"] = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(a.PNG))
	}
}

func loadState(c fiber.Ctx) *pipeline.State {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}
	raw, ok := sess.Get(stateKey).(string)
	if !ok || raw == "" {
		return nil
	}

	var state pipeline.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		slog.Warn("discarding unreadable session state", "error", err)
		return nil
	}
	return &state
}

func saveState(c fiber.Ctx, state *pipeline.State) {
	sess := session.FromContext(c)
	if sess == nil {
		return
	}
	raw, err := json.Marshal(state)
	if err != nil {
		slog.Error("failed to encode session state", "error", err)
		return
	}
	sess.Set(stateKey, string(raw))
}
