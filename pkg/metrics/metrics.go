// Package metrics provides Prometheus metrics for the data quality services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all Prometheus metrics for the application.
// Every recording method is safe to call on a nil *Metrics.
type Metrics struct {
	Registry *prometheus.Registry

	// Post publishing checks
	ActivitiesAnalysed  prometheus.Counter
	ActivitiesUncounted *prometheus.CounterVec
	DailyReportsSaved   prometheus.Counter

	// Data quality scores
	ScoresCalculated prometheus.Counter
	ScoreFailures    prometheus.Counter

	// HTTP
	HTTPRequestsTotal *prometheus.CounterVec
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	activitiesAnalysed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dataquality_ppc_activities_analysed_total",
		Help: "Vehicle activities matched to a timetable and analysed",
	})

	activitiesUncounted := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataquality_ppc_activities_uncounted_total",
			Help: "Vehicle activities that could not be matched to a timetable",
		},
		[]string{"code"},
	)

	dailyReportsSaved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dataquality_ppc_daily_reports_saved_total",
		Help: "Daily post publishing check reports written to the store",
	})

	scoresCalculated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dataquality_scores_calculated_total",
		Help: "Data quality scores calculated",
	})

	scoreFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dataquality_score_failures_total",
		Help: "Data quality scores that could not be calculated",
	})

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataquality_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	registry.MustRegister(
		activitiesAnalysed,
		activitiesUncounted,
		dailyReportsSaved,
		scoresCalculated,
		scoreFailures,
		httpRequestsTotal,
		collectors.NewGoCollector(),
	)

	return &Metrics{
		Registry:            registry,
		ActivitiesAnalysed:  activitiesAnalysed,
		ActivitiesUncounted: activitiesUncounted,
		DailyReportsSaved:   dailyReportsSaved,
		ScoresCalculated:    scoresCalculated,
		ScoreFailures:       scoreFailures,
		HTTPRequestsTotal:   httpRequestsTotal,
	}
}

func (m *Metrics) ActivityAnalysed() {
	if m == nil {
		return
	}
	m.ActivitiesAnalysed.Inc()
}

func (m *Metrics) ActivityUncounted(code string) {
	if m == nil {
		return
	}
	m.ActivitiesUncounted.WithLabelValues(code).Inc()
}

func (m *Metrics) DailyReportSaved() {
	if m == nil {
		return
	}
	m.DailyReportsSaved.Inc()
}

func (m *Metrics) ScoreCalculated() {
	if m == nil {
		return
	}
	m.ScoresCalculated.Inc()
}

func (m *Metrics) ScoreFailed() {
	if m == nil {
		return
	}
	m.ScoreFailures.Inc()
}

func (m *Metrics) HTTPRequest(method string, path string, status string) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}
