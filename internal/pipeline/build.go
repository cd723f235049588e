package pipeline

import (
	"fmt"

	"wordcharts/internal/analysis"
	"wordcharts/internal/config"
	"wordcharts/internal/extractor"
	"wordcharts/internal/fetcher"
	"wordcharts/internal/language"
	"wordcharts/internal/metrics"
	"wordcharts/internal/render"
	"wordcharts/internal/segment"
)

// FromConfig assembles a pipeline from environment and YAML configuration.
// yc and rec may be nil.
func FromConfig(cfg *config.Config, yc *config.YAMLConfig, rec *metrics.Recorder) (*Pipeline, error) {
	seg, err := segment.New(cfg.Segmenter, yc.UserWords())
	if err != nil {
		return nil, fmt.Errorf("failed to create segmenter: %w", err)
	}

	renderOpts := render.Options{
		Height: cfg.ChartHeight,
		Titles: make(map[string]string),
	}
	for _, k := range render.Kinds {
		if t := yc.ChartTitle(string(k)); t != "" {
			renderOpts.Titles[string(k)] = t
		}
	}
	if cfg.ChartFont != "" {
		font, err := render.LoadFont(cfg.ChartFont)
		if err != nil {
			return nil, err
		}
		renderOpts.Font = font
	}

	mode := extractor.ModeAll
	if cfg.UsesArticleMode() {
		mode = extractor.ModeArticle
	}

	return New(Config{
		Fetcher: fetcher.New(fetcher.Options{
			UserAgent:         cfg.UserAgent,
			Timeout:           cfg.FetchTimeout,
			MaxBodyBytes:      cfg.MaxBodyBytes,
			AllowPrivateHosts: cfg.AllowPrivateHosts,
		}),
		Extractor:      extractor.New(mode),
		Aggregator:     analysis.NewAggregator(seg, yc.StopwordSet()),
		Detector:       language.NewDetector(),
		Metrics:        rec,
		TopN:           cfg.TopN,
		DefaultMinFreq: cfg.DefaultMinFreq,
		Render:         renderOpts,
	}), nil
}

// DefaultMinFreq returns the threshold used when none is requested.
func (p *Pipeline) DefaultMinFreq() int {
	return p.cfg.DefaultMinFreq
}
