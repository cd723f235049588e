// Package report runs a single analysis for the command line and encodes
// its result.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"wordcharts/internal/models"
	"wordcharts/internal/pipeline"
	"wordcharts/internal/render"
	"wordcharts/internal/validation"
)

// Output formats accepted by Write.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned by Write for an unsupported format.
var ErrUnknownFormat = errors.New("unknown output format")

// Result is the outcome for the analysed URL. Error is set instead of words when the
// page could not be analysed.
type Result struct {
	models.WordFrequencyResponse `yaml:",inline"`
	Error                        string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Analyze fetches and ranks a single page. Failures are reported in
// Result.Error rather than returned.
func Analyze(ctx context.Context, p *pipeline.Pipeline, rawURL string, minFreq int) Result {
	url := validation.SanitizeURL(rawURL)
	res := Result{WordFrequencyResponse: models.WordFrequencyResponse{URL: url}}

	if valid, msg := validation.ValidateURL(url); !valid {
		res.Error = msg
		return res
	}

	slog.Info("analyzing", "url", url)
	a, err := p.Analyze(ctx, url)
	if err != nil {
		slog.Warn("analysis failed", "url", url, "error", err)
		res.Error = pipeline.UserMessage(err)
		return res
	}

	ranked, used := p.Rank(a.Counts, minFreq)
	res.WordFrequencyResponse = models.NewWordFrequencyResponse(url, a.Counts, ranked, used, a.Language)
	return res
}

// Write encodes result to w as JSON or YAML.
func Write(w io.Writer, result Result, format string) error {
	switch format {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteChart saves a rendered chart to path: PNG bytes for raster charts,
// an HTML document otherwise.
func WriteChart(path string, art *render.Artifact) error {
	if art.Empty {
		return errors.New(pipeline.MsgNoWords)
	}

	data := []byte(art.Markup)
	if art.Format == render.FormatImage {
		data = art.PNG
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}
