package render

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"wordcharts/internal/analysis"
)

const seriesName = "词频"

func globalOpts(kind ChartKind, o Options) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.title(kind),
			Width:     "100%",
			Height:    fmt.Sprintf("%dpx", o.height()-40),
		}),
		charts.WithTitleOpts(opts.Title{Title: o.title(kind)}),
	}
}

func wordCloud(ranked analysis.RankedWords, o Options) (string, error) {
	items := make([]opts.WordCloudData, 0, len(ranked))
	for _, wc := range ranked {
		items = append(items, opts.WordCloudData{Name: wc.Word, Value: wc.Count})
	}

	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(globalOpts(WordCloud, o)...)
	wc.AddSeries(seriesName, items, charts.WithWorldCloudChartOpts(opts.WordCloudChart{
		Shape:     "circle",
		SizeRange: []float32{20, 100},
	}))

	var buf bytes.Buffer
	if err := wc.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func pie(ranked analysis.RankedWords, o Options) (string, error) {
	items := make([]opts.PieData, 0, len(ranked))
	for _, wc := range ranked {
		items = append(items, opts.PieData{Name: wc.Word, Value: wc.Count})
	}

	p := charts.NewPie()
	p.SetGlobalOptions(globalOpts(Pie, o)...)
	p.AddSeries(seriesName, items)

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// scatter plots rank index against count; each point is named after its word.
func scatter(ranked analysis.RankedWords, o Options) (string, error) {
	indexes := make([]int, 0, len(ranked))
	items := make([]opts.ScatterData, 0, len(ranked))
	for i, wc := range ranked {
		indexes = append(indexes, i)
		items = append(items, opts.ScatterData{Name: wc.Word, Value: wc.Count, Symbol: "circle", SymbolSize: 14})
	}

	s := charts.NewScatter()
	s.SetGlobalOptions(globalOpts(Scatter, o)...)
	s.SetXAxis(indexes).AddSeries(seriesName, items)

	var buf bytes.Buffer
	if err := s.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
