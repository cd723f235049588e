package render

import (
	"bytes"

	chart "github.com/wcharczuk/go-chart/v2"

	"wordcharts/internal/analysis"
)

func yRange(ranked analysis.RankedWords) *chart.ContinuousRange {
	max := 0
	for _, wc := range ranked {
		if wc.Count > max {
			max = wc.Count
		}
	}
	return &chart.ContinuousRange{Min: 0, Max: float64(max) * 1.1}
}

func bar(ranked analysis.RankedWords, o Options) ([]byte, error) {
	bars := make([]chart.Value, 0, len(ranked))
	for _, wc := range ranked {
		bars = append(bars, chart.Value{Value: float64(wc.Count), Label: wc.Word})
	}

	bc := chart.BarChart{
		Title:      o.title(Bar),
		Font:       o.Font,
		Width:      rasterWidth,
		Height:     o.height(),
		BarWidth:   32,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 80}},
		XAxis:      chart.Style{TextRotationDegrees: 90},
		YAxis:      chart.YAxis{Range: yRange(ranked)},
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func line(ranked analysis.RankedWords, o Options) ([]byte, error) {
	xs := make([]float64, 0, len(ranked))
	ys := make([]float64, 0, len(ranked))
	lo, hi := -0.5, float64(len(ranked))-0.5

	// go-chart derives the x range from the ticks when any are set, so the
	// unlabeled edge ticks keep a single word from collapsing it to zero.
	ticks := make([]chart.Tick, 0, len(ranked)+2)
	ticks = append(ticks, chart.Tick{Value: lo})
	for i, wc := range ranked {
		xs = append(xs, float64(i))
		ys = append(ys, float64(wc.Count))
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: wc.Word})
	}
	ticks = append(ticks, chart.Tick{Value: hi})

	ch := chart.Chart{
		Title:      o.title(Line),
		Font:       o.Font,
		Width:      rasterWidth,
		Height:     o.height(),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 80}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks: ticks,
			Style: chart.Style{TextRotationDegrees: 90},
		},
		YAxis: chart.YAxis{Range: yRange(ranked)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    seriesName,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeWidth: 2, DotWidth: 4},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
