package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownChartKind is returned when a chart kind name is not recognised.
var ErrUnknownChartKind = errors.New("unknown chart kind")

// ChartKind selects how a ranked word list is drawn.
type ChartKind string

const (
	WordCloud ChartKind = "wordcloud"
	Bar       ChartKind = "bar"
	Line      ChartKind = "line"
	Pie       ChartKind = "pie"
	Scatter   ChartKind = "scatter"
)

// Kinds lists every chart kind in display order.
var Kinds = []ChartKind{WordCloud, Bar, Line, Pie, Scatter}

var labels = map[ChartKind]string{
	WordCloud: "词云图",
	Bar:       "柱状图",
	Line:      "折线图",
	Pie:       "饼图",
	Scatter:   "散点图",
}

// Label returns the display name of the kind.
func (k ChartKind) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// Valid reports whether k is one of Kinds.
func (k ChartKind) Valid() bool {
	_, ok := labels[k]
	return ok
}

// ParseChartKind accepts an identifier ("bar") or a display label ("柱状图").
// An empty string selects WordCloud.
func ParseChartKind(s string) (ChartKind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WordCloud, nil
	}
	if k := ChartKind(strings.ToLower(s)); k.Valid() {
		return k, nil
	}
	for k, l := range labels {
		if l == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChartKind, s)
}
