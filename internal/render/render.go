// Package render turns a ranked word list into a displayable chart.
//
// Word clouds, pies and scatter plots are produced as self-contained ECharts
// HTML documents; bar and line charts are rasterised to PNG.
package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"

	"wordcharts/internal/analysis"
)

// Format describes the payload of an Artifact.
type Format string

const (
	FormatMarkup Format = "markup"
	FormatImage  Format = "image"
)

// Artifact is a rendered chart. Exactly one of Markup or PNG is set unless
// Empty is true, in which case neither is.
type Artifact struct {
	Kind   ChartKind
	Format Format
	Markup string
	PNG    []byte
	Empty  bool
}

// Options tune rendering. The zero value is usable.
type Options struct {
	// Height in pixels.
	Height int
	// Titles overrides the default chart title per kind.
	Titles map[string]string
	// Font is used for raster charts; nil uses go-chart's built-in font,
	// which has no CJK glyphs.
	Font *truetype.Font
}

const (
	defaultHeight = 600
	rasterWidth   = 1000
)

func (o Options) height() int {
	if o.Height <= 0 {
		return defaultHeight
	}
	return o.Height
}

func (o Options) title(kind ChartKind) string {
	if t, ok := o.Titles[string(kind)]; ok && t != "" {
		return t
	}
	return kind.Label()
}

// Render draws ranked as a chart of the given kind. An empty list never
// reaches a chart library and yields an Empty artifact.
func Render(ranked analysis.RankedWords, kind ChartKind, opts Options) (*Artifact, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChartKind, kind)
	}
	if len(ranked) == 0 {
		return &Artifact{Kind: kind, Empty: true}, nil
	}

	var (
		markup string
		png    []byte
		err    error
	)
	switch kind {
	case WordCloud:
		markup, err = wordCloud(ranked, opts)
	case Pie:
		markup, err = pie(ranked, opts)
	case Scatter:
		markup, err = scatter(ranked, opts)
	case Bar:
		png, err = bar(ranked, opts)
	case Line:
		png, err = line(ranked, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", kind, err)
	}

	if png != nil {
		return &Artifact{Kind: kind, Format: FormatImage, PNG: png}, nil
	}
	return &Artifact{Kind: kind, Format: FormatMarkup, Markup: markup}, nil
}

// LoadFont reads a TrueType font from path.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}
