package ppc

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/dataquality/pkg/metrics"
)

func checkJobPayload(t *testing.T) string {
	t.Helper()

	payload, err := json.Marshal(CheckJob{Feed: testFeed, Document: string(readTestdata(t, "siri_sample.xml"))})
	require.NoError(t, err)

	return string(payload)
}

func TestBatchConsumerConsume(t *testing.T) {
	consumerMetrics := metrics.New()
	store := &fakeReportStore{}
	consumer := &BatchConsumer{
		Engine: &Engine{
			Matcher: &VehicleJourneyFinder{Source: service22Source(t)},
			Metrics: consumerMetrics,
		},
		Store:   store,
		Metrics: consumerMetrics,
	}

	valid := rmq.NewTestDeliveryString(checkJobPayload(t))
	duplicate := rmq.NewTestDeliveryString(checkJobPayload(t))
	malformed := rmq.NewTestDeliveryString("{not json")
	notSiri := rmq.NewTestDeliveryString(`{"feed":{"id":42},"document":"<Timetable/>"}`)

	consumer.Consume(rmq.Deliveries{valid, duplicate, malformed, notSiri})

	assert.Equal(t, rmq.Acked, valid.State)
	assert.Equal(t, rmq.Acked, duplicate.State)
	assert.Equal(t, rmq.Rejected, malformed.State)
	assert.Equal(t, rmq.Rejected, notSiri.State)

	require.Len(t, store.reports, 1)
	report, err := store.DailyReport(t.Context(), testFeed.ID, time.Date(2023, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, report.VehicleActivitiesAnalysed)
	assert.Len(t, report.Uncounted, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(consumerMetrics.DailyReportsSaved))
}

func TestBatchConsumerRejectsFailedChecks(t *testing.T) {
	t.Run("timetables unavailable", func(t *testing.T) {
		store := &fakeReportStore{}
		consumer := &BatchConsumer{
			Engine: &Engine{Matcher: &VehicleJourneyFinder{Source: &memoryTimetableSource{err: errors.New("connection reset")}}},
			Store:  store,
		}

		delivery := rmq.NewTestDeliveryString(checkJobPayload(t))
		consumer.Consume(rmq.Deliveries{delivery})

		assert.Equal(t, rmq.Rejected, delivery.State)
		assert.Empty(t, store.reports)
	})

	t.Run("store unavailable", func(t *testing.T) {
		consumer := &BatchConsumer{
			Engine: &Engine{Matcher: &VehicleJourneyFinder{Source: service22Source(t)}},
			Store:  &fakeReportStore{err: errors.New("write concern error")},
		}

		delivery := rmq.NewTestDeliveryString(checkJobPayload(t))
		consumer.Consume(rmq.Deliveries{delivery})

		assert.Equal(t, rmq.Rejected, delivery.State)
	})
}

func TestSubmitToQueue(t *testing.T) {
	connection := rmq.NewTestConnection()
	queue, err := connection.OpenQueue(QueueName)
	require.NoError(t, err)

	document := readTestdata(t, "siri_sample.xml")
	require.NoError(t, SubmitToQueue(queue, testFeed, document))

	deliveries := connection.GetDeliveries(QueueName)
	require.Len(t, deliveries, 1)

	var job CheckJob
	require.NoError(t, json.Unmarshal([]byte(deliveries[0]), &job))
	assert.Equal(t, testFeed, job.Feed)
	assert.Equal(t, string(document), job.Document)
}
