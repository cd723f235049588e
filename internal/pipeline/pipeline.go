// Package pipeline wires fetching, extraction, counting, ranking and
// rendering into one interaction cycle.
//
// Each cycle takes the previous State and the current user Input and produces
// the next State plus a View to display. Work is only redone for the stages
// whose inputs changed: a new URL refetches the page, a new threshold reranks
// the cached counts, and the chart is redrawn every cycle.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"wordcharts/internal/analysis"
	"wordcharts/internal/fetcher"
	"wordcharts/internal/language"
	"wordcharts/internal/metrics"
	"wordcharts/internal/render"
)

// Fetcher downloads a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Document, error)
}

// Extractor pulls Chinese text out of page markup.
type Extractor interface {
	Extract(pageURL, markup string) (string, error)
}

// Input is what the user controls.
type Input struct {
	URL     string
	Kind    render.ChartKind
	MinFreq int // 0 selects the default threshold
}

// State is carried between cycles. It is JSON-encoded into the session.
type State struct {
	ID       string               `json:"id"`
	URL      string               `json:"url"`
	Counts   analysis.TokenCount  `json:"counts"`
	Language *language.Result     `json:"language,omitempty"`
	Error    string               `json:"error,omitempty"`
	MinFreq  int                  `json:"min_freq"`
	Ranked   analysis.RankedWords `json:"ranked"`
	Kind     render.ChartKind     `json:"kind"`
}

// Controls describes the threshold slider and chart selector.
type Controls struct {
	Visible  bool
	Min      int
	Max      int
	Value    int
	Kinds    []render.ChartKind
	Selected render.ChartKind
}

// View is everything the UI shows for one cycle.
type View struct {
	Message     string
	Error       string
	Controls    Controls
	Artifact    *render.Artifact
	Language    *language.Result
	TotalTokens int
	Distinct    int
}

// Analysis is the result of fetching and counting one page.
type Analysis struct {
	Counts   analysis.TokenCount
	Language *language.Result
}

// Config holds the pipeline's collaborators and tuning.
type Config struct {
	Fetcher        Fetcher
	Extractor      Extractor
	Aggregator     *analysis.Aggregator
	Detector       *language.Detector // optional
	Metrics        *metrics.Recorder  // optional
	TopN           int
	DefaultMinFreq int
	Render         render.Options
}

// Pipeline runs interaction cycles.
type Pipeline struct {
	cfg Config
}

// New creates a pipeline.
func New(cfg Config) *Pipeline {
	if cfg.TopN <= 0 || cfg.TopN > analysis.DefaultTopN {
		cfg.TopN = analysis.DefaultTopN
	}
	if cfg.DefaultMinFreq <= 0 {
		cfg.DefaultMinFreq = 5
	}
	return &Pipeline{cfg: cfg}
}

// Analyze fetches url, extracts its Chinese text and counts the words.
func (p *Pipeline) Analyze(ctx context.Context, url string) (*Analysis, error) {
	rec := p.cfg.Metrics

	start := time.Now()
	doc, err := p.cfg.Fetcher.Fetch(ctx, url)
	rec.Stage(metrics.StageFetch, start)
	if err != nil {
		rec.Fetch(Outcome(err))
		return nil, err
	}

	start = time.Now()
	text, err := p.cfg.Extractor.Extract(doc.URL, doc.Markup)
	rec.Stage(metrics.StageExtract, start)
	if err != nil {
		rec.Fetch(Outcome(err))
		return nil, err
	}
	rec.Fetch(metrics.OutcomeOK)

	start = time.Now()
	counts := p.cfg.Aggregator.Process(text)
	rec.Stage(metrics.StageCount, start)

	return &Analysis{Counts: counts, Language: p.cfg.Detector.Detect(text)}, nil
}

// Rank applies the threshold to counts. requested follows the slider rules:
// 0 selects the default and the result is clamped to [1, max count]. The
// threshold actually used is returned alongside the ranking.
func (p *Pipeline) Rank(counts analysis.TokenCount, requested int) (analysis.RankedWords, int) {
	start := time.Now()
	minFreq := analysis.ResolveMinFreq(requested, p.cfg.DefaultMinFreq, counts.MaxCount())
	ranked := analysis.Rank(counts, minFreq, p.cfg.TopN)
	p.cfg.Metrics.Stage(metrics.StageRank, start)
	return ranked, minFreq
}

// Render draws ranked as kind with the configured options.
func (p *Pipeline) Render(ranked analysis.RankedWords, kind render.ChartKind) (*render.Artifact, error) {
	start := time.Now()
	art, err := render.Render(ranked, kind, p.cfg.Render)
	p.cfg.Metrics.Stage(metrics.StageRender, start)
	if err == nil && !art.Empty {
		p.cfg.Metrics.Render(string(kind))
	}
	return art, err
}

// Apply runs one cycle. prev may be nil on the first interaction.
func (p *Pipeline) Apply(ctx context.Context, prev *State, in Input) (*State, *View) {
	kind := in.Kind
	if !kind.Valid() {
		kind = render.WordCloud
	}

	url := strings.TrimSpace(in.URL)
	if url == "" {
		return &State{Kind: kind}, &View{}
	}

	next := &State{URL: url, Kind: kind}
	refetched := prev == nil || prev.URL != url
	if refetched {
		next.ID = uuid.NewString()
		next.Counts = analysis.TokenCount{}
		a, err := p.Analyze(ctx, url)
		if err != nil {
			slog.Warn("analysis failed", "cycle", next.ID, "url", url, "error", err)
			next.Error = UserMessage(err)
		} else {
			next.Counts = a.Counts
			next.Language = a.Language
		}
	} else {
		next.ID = prev.ID
		next.Counts = prev.Counts
		next.Language = prev.Language
		next.Error = prev.Error
	}

	view := &View{
		Error:       next.Error,
		Language:    next.Language,
		TotalTokens: next.Counts.Total(),
		Distinct:    next.Counts.Len(),
	}
	if next.Error != "" {
		return next, view
	}
	view.Message = MsgSuccess
	if next.Counts.Len() == 0 {
		// Chinese text was found but no word survived counting.
		view.Artifact = &render.Artifact{Kind: kind, Empty: true}
		return next, view
	}

	// A new page starts from the default threshold.
	requested := in.MinFreq
	if refetched {
		requested = 0
	}
	minFreq := analysis.ResolveMinFreq(requested, p.cfg.DefaultMinFreq, next.Counts.MaxCount())
	if !refetched && prev.Ranked != nil && prev.MinFreq == minFreq {
		next.Ranked = prev.Ranked
		next.MinFreq = minFreq
	} else {
		next.Ranked, next.MinFreq = p.Rank(next.Counts, minFreq)
	}

	view.Controls = Controls{
		Visible:  true,
		Min:      1,
		Max:      next.Counts.MaxCount(),
		Value:    next.MinFreq,
		Kinds:    render.Kinds,
		Selected: kind,
	}

	art, err := p.Render(next.Ranked, kind)
	if err != nil {
		slog.Error("render failed", "cycle", next.ID, "kind", kind, "error", err)
		view.Error = fmt.Sprintf("无法生成图表：%v", err)
		return next, view
	}
	view.Artifact = art

	return next, view
}
