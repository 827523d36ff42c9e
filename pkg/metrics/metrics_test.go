package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	m := New()

	assert.NotNil(t, m.Registry)
	assert.NotNil(t, m.ActivitiesAnalysed)
	assert.NotNil(t, m.ActivitiesUncounted)
	assert.NotNil(t, m.DailyReportsSaved)
	assert.NotNil(t, m.ScoresCalculated)
	assert.NotNil(t, m.ScoreFailures)
	assert.NotNil(t, m.HTTPRequestsTotal)
}

func TestRecording(t *testing.T) {
	m := New()

	m.ActivityAnalysed()
	m.ActivityAnalysed()
	m.ActivityUncounted("5.1")
	m.ScoreCalculated()
	m.ScoreFailed()
	m.DailyReportSaved()
	m.HTTPRequest("GET", "/core/version", "200")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ActivitiesAnalysed))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ActivitiesUncounted.WithLabelValues("5.1")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ActivitiesUncounted.WithLabelValues("1.1")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ScoresCalculated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ScoreFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DailyReportsSaved))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/core/version", "200")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ActivityAnalysed()
		m.ActivityUncounted("1.1")
		m.DailyReportSaved()
		m.ScoreCalculated()
		m.ScoreFailed()
		m.HTTPRequest("GET", "/", "200")
	})
}
