package metrics

import (
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeNetwork     = "network_error"
	OutcomeUnsupported = "unsupported_content"
	OutcomeNoChinese   = "no_chinese_text"
)

// Pipeline stages.
const (
	StageFetch   = "fetch"
	StageExtract = "extract"
	StageCount   = "count"
	StageRank    = "rank"
	StageRender  = "render"
)

// Recorder holds the pipeline collectors.
type Recorder struct {
	fetches  *prometheus.CounterVec
	runs     *prometheus.CounterVec
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder creates collectors without registering them.
func NewRecorder() *Recorder {
	return &Recorder{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordcharts_fetch_total",
			Help: "Total page fetches by outcome",
		}, []string{"outcome"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordcharts_stage_runs_total",
			Help: "Total pipeline stage executions",
		}, []string{"stage"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordcharts_render_total",
			Help: "Total charts rendered by kind",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wordcharts_stage_duration_seconds",
			Help:    "Pipeline stage latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
	}
}

// Register adds the collectors to reg.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{r.fetches, r.runs, r.renders, r.duration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Fetch records a fetch outcome.
func (r *Recorder) Fetch(outcome string) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(outcome).Inc()
}

// Stage records one execution of stage that started at start.
func (r *Recorder) Stage(stage string, start time.Time) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(stage).Inc()
	r.duration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Render records a rendered chart kind.
func (r *Recorder) Render(kind string) {
	if r == nil {
		return
	}
	r.renders.WithLabelValues(kind).Inc()
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the default recorder with the global registry.
// Must be called once at startup.
func Init() *Recorder {
	recorderOnce.Do(func() {
		recorder = NewRecorder()
		if err := recorder.Register(prometheus.DefaultRegisterer); err != nil {
			slog.Error("failed to register metrics", "error", err)
		}
	})
	return recorder
}
