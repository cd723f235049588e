package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"wordcharts/internal/analysis"
	"wordcharts/internal/extractor"
	"wordcharts/internal/fetcher"
	"wordcharts/internal/render"
	"wordcharts/internal/testutil"
)

const fruitPage = `<html><body><p>苹果 苹果 苹果 香蕉 香蕉 樱桃</p></body></html>`

func newTestPipeline(seg *testutil.FakeSegmenter) *Pipeline {
	return New(Config{
		Fetcher:    fetcher.New(fetcher.Options{AllowPrivateHosts: true}),
		Extractor:  extractor.New(extractor.ModeAll),
		Aggregator: analysis.NewAggregator(seg, nil),
	})
}

func TestApplySuccess(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, fruitPage)
	seg := &testutil.FakeSegmenter{}
	p := newTestPipeline(seg)

	state, view := p.Apply(context.Background(), nil, Input{URL: "  " + srv.URL + " ", Kind: render.Pie})

	if view.Error != "" {
		t.Fatalf("unexpected error %q", view.Error)
	}
	if view.Message != MsgSuccess {
		t.Errorf("Message = %q, want %q", view.Message, MsgSuccess)
	}
	if state.URL != srv.URL || state.ID == "" {
		t.Errorf("state = %+v, want trimmed URL and cycle ID", state)
	}
	if view.Distinct != 3 || view.TotalTokens != 6 {
		t.Errorf("Distinct/Total = %d/%d, want 3/6", view.Distinct, view.TotalTokens)
	}

	c := view.Controls
	if !c.Visible || c.Min != 1 || c.Max != 3 || c.Value != 3 || c.Selected != render.Pie {
		t.Errorf("Controls = %+v, want visible 1..3 at 3 with pie", c)
	}
	if len(c.Kinds) != 5 {
		t.Errorf("Kinds = %v, want all five", c.Kinds)
	}

	if len(state.Ranked) != 1 || state.Ranked[0].Word != "苹果" {
		t.Errorf("Ranked = %v, want [苹果]", state.Ranked)
	}
	if view.Artifact == nil || view.Artifact.Format != render.FormatMarkup {
		t.Errorf("Artifact = %+v, want pie markup", view.Artifact)
	}
}

func TestApplyReusesCountsForSameURL(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, fruitPage)
	seg := &testutil.FakeSegmenter{}
	p := newTestPipeline(seg)
	ctx := context.Background()

	first, _ := p.Apply(ctx, nil, Input{URL: srv.URL, Kind: render.WordCloud})

	second, view := p.Apply(ctx, first, Input{URL: srv.URL, Kind: render.Bar, MinFreq: 1})
	if srv.Hits() != 1 {
		t.Errorf("Hits() = %d, want 1", srv.Hits())
	}
	if seg.Calls() != 1 {
		t.Errorf("segmenter Calls() = %d, want 1", seg.Calls())
	}
	if second.ID != first.ID {
		t.Error("cycle ID should survive a control change")
	}
	if len(second.Ranked) != 3 || second.MinFreq != 1 {
		t.Errorf("Ranked = %v at %d, want 3 words at 1", second.Ranked, second.MinFreq)
	}
	if view.Artifact == nil || view.Artifact.Format != render.FormatImage {
		t.Errorf("Artifact = %+v, want bar image", view.Artifact)
	}

	third, _ := p.Apply(ctx, second, Input{URL: srv.URL, Kind: render.Line, MinFreq: 1})
	if srv.Hits() != 1 || seg.Calls() != 1 {
		t.Error("chart change must not refetch")
	}
	if len(third.Ranked) != 3 {
		t.Errorf("Ranked = %v, want cached ranking", third.Ranked)
	}
}

func TestApplyClampsThreshold(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, fruitPage)
	p := newTestPipeline(&testutil.FakeSegmenter{})
	ctx := context.Background()

	first, _ := p.Apply(ctx, nil, Input{URL: srv.URL})
	_, view := p.Apply(ctx, first, Input{URL: srv.URL, MinFreq: 99})

	if view.Controls.Value != 3 {
		t.Errorf("Value = %d, want clamp to max 3", view.Controls.Value)
	}
}

func TestApplyNewURLResetsThreshold(t *testing.T) {
	a := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, fruitPage)
	b := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML,
		"<p>"+strings.Repeat("西瓜 ", 8)+strings.Repeat("葡萄 ", 6)+"</p>")
	p := newTestPipeline(&testutil.FakeSegmenter{})
	ctx := context.Background()

	first, _ := p.Apply(ctx, nil, Input{URL: a.URL})
	first, _ = p.Apply(ctx, first, Input{URL: a.URL, MinFreq: 1})

	second, view := p.Apply(ctx, first, Input{URL: b.URL, MinFreq: 1})
	if second.ID == first.ID {
		t.Error("new URL should start a new cycle")
	}
	if view.Controls.Value != 5 || view.Controls.Max != 8 {
		t.Errorf("Controls = %+v, want default 5 with max 8", view.Controls)
	}
	if len(second.Ranked) != 2 {
		t.Errorf("Ranked = %v, want 西瓜 and 葡萄", second.Ranked)
	}
}

func TestApplyFailures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantPrefix  string
	}{
		{"not found", http.StatusNotFound, testutil.UTF8HTML, fruitPage, "无法抓取文章："},
		{"gbk page", http.StatusOK, "text/html; charset=gbk", fruitPage, MsgUnsupported},
		{"missing charset", http.StatusOK, "text/html", fruitPage, MsgUnsupported},
		{"english page", http.StatusOK, testutil.UTF8HTML, testutil.EnglishPage, MsgNoChinese},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewPageServer(t, tt.status, tt.contentType, tt.body)
			seg := &testutil.FakeSegmenter{}
			p := newTestPipeline(seg)

			state, view := p.Apply(context.Background(), nil, Input{URL: srv.URL})

			if !strings.HasPrefix(view.Error, tt.wantPrefix) {
				t.Errorf("Error = %q, want prefix %q", view.Error, tt.wantPrefix)
			}
			if view.Message != "" || view.Controls.Visible || view.Artifact != nil {
				t.Errorf("view = %+v, want only the error", view)
			}
			if seg.Calls() != 0 {
				t.Error("segmenter must not run after a failure")
			}
			if state.Counts == nil || state.Counts.Len() != 0 {
				t.Errorf("Counts = %v, want empty", state.Counts)
			}

			// Same URL again keeps the error without another request.
			_, again := p.Apply(context.Background(), state, Input{URL: srv.URL, Kind: render.Bar})
			if again.Error != view.Error || srv.Hits() != 1 {
				t.Errorf("retry: error %q hits %d", again.Error, srv.Hits())
			}
		})
	}
}

func TestApplyLineChartSingleWord(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, fruitPage)
	p := newTestPipeline(&testutil.FakeSegmenter{})

	state, view := p.Apply(context.Background(), nil, Input{URL: srv.URL, Kind: render.Line})

	if view.Error != "" {
		t.Fatalf("Error = %q, want a rendered chart", view.Error)
	}
	if len(state.Ranked) != 1 || state.MinFreq != 3 {
		t.Errorf("Ranked = %v at %d, want [苹果] at 3", state.Ranked, state.MinFreq)
	}
	if view.Artifact == nil || view.Artifact.Format != render.FormatImage || len(view.Artifact.PNG) == 0 {
		t.Errorf("Artifact = %+v, want line image", view.Artifact)
	}
}

func TestApplySingleCharacterTokens(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, "<p>苹 果 蕉 苹</p>")
	p := newTestPipeline(&testutil.FakeSegmenter{})

	_, view := p.Apply(context.Background(), nil, Input{URL: srv.URL})

	if view.Error != "" || view.Message != MsgSuccess {
		t.Errorf("Error/Message = %q/%q, want success message", view.Error, view.Message)
	}
	if view.Controls.Visible {
		t.Error("controls need at least one counted word")
	}
	if view.Artifact == nil || !view.Artifact.Empty {
		t.Errorf("Artifact = %+v, want empty", view.Artifact)
	}
}

func TestNewCapsTopN(t *testing.T) {
	for _, n := range []int{0, -1, 21, 100} {
		if got := New(Config{TopN: n}).cfg.TopN; got != analysis.DefaultTopN {
			t.Errorf("New(TopN=%d).TopN = %d, want %d", n, got, analysis.DefaultTopN)
		}
	}
	if got := New(Config{TopN: 7}).cfg.TopN; got != 7 {
		t.Errorf("New(TopN=7).TopN = %d", got)
	}
}

func TestApplyEmptyURL(t *testing.T) {
	seg := &testutil.FakeSegmenter{}
	p := newTestPipeline(seg)

	state, view := p.Apply(context.Background(), nil, Input{URL: "   ", Kind: render.Bar})
	if state.URL != "" || view.Error != "" || view.Message != "" || view.Controls.Visible {
		t.Errorf("state %+v view %+v, want nothing shown", state, view)
	}
	if seg.Calls() != 0 {
		t.Error("nothing should run for an empty URL")
	}
}

func TestApplyUnknownKindFallsBack(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, fruitPage)
	p := newTestPipeline(&testutil.FakeSegmenter{})

	state, view := p.Apply(context.Background(), nil, Input{URL: srv.URL, Kind: "radar"})
	if state.Kind != render.WordCloud || view.Controls.Selected != render.WordCloud {
		t.Errorf("Kind = %q, want wordcloud", state.Kind)
	}
}

func TestAnalyze(t *testing.T) {
	srv := testutil.NewPageServer(t, http.StatusOK, testutil.UTF8HTML, fruitPage)
	p := newTestPipeline(&testutil.FakeSegmenter{})

	a, err := p.Analyze(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if n, _ := a.Counts.Get("香蕉"); n != 2 {
		t.Errorf("香蕉 = %d, want 2", n)
	}

	ranked, minFreq := p.Rank(a.Counts, 2)
	if minFreq != 2 || len(ranked) != 2 {
		t.Errorf("Rank(2) = %v at %d", ranked, minFreq)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w: image/png", fetcher.ErrUnsupportedContent), MsgUnsupported},
		{extractor.ErrNoChineseText, MsgNoChinese},
		{errors.New("dial tcp: refused"), "无法抓取文章：dial tcp: refused"},
	}

	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
