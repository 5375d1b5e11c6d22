package telemetry

import (
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mohammad-safakhou/loopcast/config"
)

// Telemetry tracks run outcomes, step timings and synthesis volume for the
// podcast pipeline. Counters are mirrored into prometheus so the daemon's
// /metrics endpoint exposes them.
type Telemetry struct {
	config config.TelemetryConfig
	logger *log.Logger
	mu     sync.RWMutex

	metrics Metrics
}

// Metrics holds aggregate pipeline metrics for one process lifetime.
type Metrics struct {
	TotalRuns      int64
	SuccessfulRuns int64
	FailedRuns     int64
	AverageRunTime time.Duration

	StepDurations map[string]time.Duration
	StepCounts    map[string]int64

	URLFetches       int64
	URLFetchFailures int64

	SegmentsSynthesized int64
}

// RunEvent describes one complete pipeline run.
type RunEvent struct {
	RunID     string
	Subreddit string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Success   bool
	Error     string
	Posts     int
	Sections  int
	Segments  int
}

// StepEvent describes one pipeline stage within a run.
type StepEvent struct {
	RunID    string
	Step     string
	Duration time.Duration
	Success  bool
}

var (
	promRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loopcast_runs_total",
		Help: "Completed podcast generation runs by outcome.",
	}, []string{"outcome"})
	promStepSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loopcast_step_duration_seconds",
		Help:    "Duration of pipeline steps.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"step"})
	promURLFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loopcast_url_fetches_total",
		Help: "Link content fetches by outcome.",
	}, []string{"outcome"})
	promSegments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loopcast_segments_synthesized_total",
		Help: "Audio segments synthesized.",
	})
)

// NewTelemetry creates a new telemetry instance
func NewTelemetry(cfg config.TelemetryConfig) *Telemetry {
	t := &Telemetry{
		config: cfg,
		logger: log.New(log.Writer(), "[TELEMETRY] ", log.LstdFlags),
		metrics: Metrics{
			StepDurations: make(map[string]time.Duration),
			StepCounts:    make(map[string]int64),
		},
	}
	if cfg.Enabled && cfg.PeriodicLogs {
		go t.startMetricsLogging()
	}
	return t
}

// RecordRunEvent records the outcome of one full run.
func (t *Telemetry) RecordRunEvent(event RunEvent) {
	if !t.config.Enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.metrics.TotalRuns++
	if event.Success {
		t.metrics.SuccessfulRuns++
		promRuns.WithLabelValues("success").Inc()
	} else {
		t.metrics.FailedRuns++
		promRuns.WithLabelValues("failure").Inc()
	}

	if t.metrics.TotalRuns == 1 {
		t.metrics.AverageRunTime = event.Duration
	} else {
		total := t.metrics.AverageRunTime * time.Duration(t.metrics.TotalRuns-1)
		t.metrics.AverageRunTime = (total + event.Duration) / time.Duration(t.metrics.TotalRuns)
	}

	t.logger.Printf("Run Event: ID=%s, Subreddit=%s, Success=%t, Duration=%v, Posts=%d, Sections=%d, Segments=%d",
		event.RunID, event.Subreddit, event.Success, event.Duration, event.Posts, event.Sections, event.Segments)
}

// RecordStepEvent records one pipeline stage.
func (t *Telemetry) RecordStepEvent(event StepEvent) {
	if !t.config.Enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.metrics.StepCounts[event.Step]++
	t.metrics.StepDurations[event.Step] += event.Duration
	promStepSeconds.WithLabelValues(event.Step).Observe(event.Duration.Seconds())

	t.logger.Printf("Step Event: Run=%s, Step=%s, Duration=%v, Success=%t",
		event.RunID, event.Step, event.Duration, event.Success)
}

// RecordURLFetch records one link content fetch attempt.
func (t *Telemetry) RecordURLFetch(ok bool) {
	if !t.config.Enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.metrics.URLFetches++
	if ok {
		promURLFetches.WithLabelValues("success").Inc()
	} else {
		t.metrics.URLFetchFailures++
		promURLFetches.WithLabelValues("failure").Inc()
	}
}

// RecordSegments records the synthesized segment count for a run.
func (t *Telemetry) RecordSegments(n int) {
	if !t.config.Enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.metrics.SegmentsSynthesized += int64(n)
	promSegments.Add(float64(n))
}

// GetMetrics returns a snapshot of the current metrics.
func (t *Telemetry) GetMetrics() Metrics {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := t.metrics
	snapshot.StepDurations = make(map[string]time.Duration, len(t.metrics.StepDurations))
	snapshot.StepCounts = make(map[string]int64, len(t.metrics.StepCounts))
	for k, v := range t.metrics.StepDurations {
		snapshot.StepDurations[k] = v
	}
	for k, v := range t.metrics.StepCounts {
		snapshot.StepCounts[k] = v
	}
	return snapshot
}

func (t *Telemetry) startMetricsLogging() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m := t.GetMetrics()
		t.logger.Printf("Metrics Snapshot: Runs=%d/%d, AvgTime=%v, Fetches=%d (failed %d), Segments=%d",
			m.SuccessfulRuns, m.TotalRuns, m.AverageRunTime, m.URLFetches, m.URLFetchFailures, m.SegmentsSynthesized)
	}
}

// Shutdown logs a final report.
func (t *Telemetry) Shutdown() {
	m := t.GetMetrics()
	if m.TotalRuns == 0 {
		return
	}
	t.logger.Printf("Final Report: Runs=%d, Success Rate=%.2f%%, AvgTime=%v",
		m.TotalRuns, float64(m.SuccessfulRuns)/float64(m.TotalRuns)*100, m.AverageRunTime)
}
