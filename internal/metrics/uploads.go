// Package metrics exposes Prometheus instruments for the upload pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Theatrum/internal/core/uploads"
)

// UploadMetrics counts stage transitions and times whole runs
type UploadMetrics struct {
	stages   *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	active   prometheus.Gauge
	duration prometheus.Histogram
	started  map[string]time.Time
	now      func() time.Time
	mu       sync.Mutex
}

// NewUploadMetrics registers the upload instruments on reg
func NewUploadMetrics(reg prometheus.Registerer) *UploadMetrics {
	factory := promauto.With(reg)
	return &UploadMetrics{
		stages: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "upload_stage_transitions_total",
			Help: "Upload pipeline stage transitions",
		}, []string{"stage"}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "upload_runs_total",
			Help: "Finished upload runs by outcome",
		}, []string{"outcome"}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Name: "upload_active_runs",
			Help: "Upload runs currently in progress",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "upload_duration_seconds",
			Help:    "Time from receipt to completion or failure of an upload",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		started: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Observe is an uploads stage observer
func (m *UploadMetrics) Observe(videoID string, stage uploads.Stage) {
	m.stages.WithLabelValues(stage.String()).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()

	switch stage {
	case uploads.StageReceived:
		m.started[videoID] = m.now()
		m.active.Inc()
	case uploads.StageCompleted, uploads.StageFailed:
		outcome := "completed"
		if stage == uploads.StageFailed {
			outcome = "failed"
		}
		m.outcomes.WithLabelValues(outcome).Inc()
		if start, ok := m.started[videoID]; ok {
			m.duration.Observe(m.now().Sub(start).Seconds())
			delete(m.started, videoID)
			m.active.Dec()
		}
	}
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
