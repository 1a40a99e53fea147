// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodfeed_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "moodfeed_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})
)

// Event metrics
var (
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodfeed_events_total",
		Help: "Total number of interaction events processed, by event type",
	}, []string{"event_type"})

	ScoreUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moodfeed_score_updates_total",
		Help: "Total number of nonzero score deltas applied",
	})

	EventBufferSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "moodfeed_event_buffer_size",
		Help: "Number of events held in the recent event buffer",
	})
)

// Prediction metrics
var (
	PredictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moodfeed_predictions_total",
		Help: "Total number of score predictions served",
	})

	PredictedScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "moodfeed_predicted_score",
		Help:    "Distribution of predicted scores",
		Buckets: prometheus.LinearBuckets(-100, 20, 11),
	})
)

// Mood metrics
var (
	MoodTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodfeed_mood_transitions_total",
		Help: "Total number of mood changes",
	}, []string{"from", "to"})

	MoodDecaysTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodfeed_mood_decays_total",
		Help: "Total number of automatic transitions out of Mad",
	}, []string{"to"})

	MoodSuggestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodfeed_mood_suggestions_total",
		Help: "Total number of mood suggestion checks that ran, by whether a different mood was offered",
	}, []string{"changed"})
)

// Persistence metrics
var (
	SnapshotSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodfeed_snapshot_saves_total",
		Help: "Total number of snapshot writes, by result",
	}, []string{"result"})
)
