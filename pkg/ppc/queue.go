package ppc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/dataquality/pkg/elastic_client"
	"github.com/travigo/dataquality/pkg/metrics"
	"github.com/travigo/dataquality/pkg/siri_vm"
)

const QueueName = "ppc-queue"

const dailyReportsIndexName = "ppc-daily-reports"

// CheckJob is a day's sample of a feed waiting to be checked
type CheckJob struct {
	Feed     Feed   `json:"feed"`
	Document string `json:"document"`
}

// dailySummaryDocument is what gets indexed to elasticsearch for each saved daily report
type dailySummaryDocument struct {
	FeedID             int          `json:"feed_id"`
	FeedName           string       `json:"feed_name"`
	Date               time.Time    `json:"date"`
	Analysed           int          `json:"vehicle_activities_analysed"`
	CompletelyMatching int          `json:"vehicle_activities_completely_matching"`
	Uncounted          int          `json:"vehicle_activities_uncounted"`
	Summary            []SummaryRow `json:"summary"`
	Timestamp          time.Time    `json:"timestamp"`
}

func SubmitToQueue(queue rmq.Queue, feed Feed, document []byte) error {
	jobBytes, err := json.Marshal(CheckJob{Feed: feed, Document: string(document)})
	if err != nil {
		return err
	}

	return queue.PublishBytes(jobBytes)
}

type BatchConsumer struct {
	Engine  *Engine
	Store   ReportStore
	Metrics *metrics.Metrics
}

func (c *BatchConsumer) Consume(batch rmq.Deliveries) {
	for _, delivery := range batch {
		if err := c.process(context.Background(), delivery.Payload()); err != nil {
			log.Error().Err(err).Msg("Failed to check SIRI-VM sample")

			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject post publishing check")
			}
			continue
		}

		if err := delivery.Ack(); err != nil {
			log.Error().Err(err).Msg("Failed to ack post publishing check")
		}
	}
}

func (c *BatchConsumer) process(ctx context.Context, payload string) error {
	var job CheckJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return err
	}

	siri, err := siri_vm.ParseString(job.Document)
	if err != nil {
		return err
	}

	report, err := c.Engine.Check(ctx, job.Feed, siri.Header(), siri.VehicleActivities())
	if err != nil {
		return err
	}

	err = c.Store.SaveDailyReport(ctx, report)
	if errors.Is(err, ErrDailyReportExists) {
		log.Warn().Err(err).Msg("Daily report not saved")
		return nil
	} else if err != nil {
		return err
	}

	c.Metrics.DailyReportSaved()

	now := time.Now()
	elastic_client.IndexDocument(elastic_client.IndexName(dailyReportsIndexName, now), dailySummaryDocument{
		FeedID:             report.Feed.ID,
		FeedName:           report.Feed.Name,
		Date:               report.Date,
		Analysed:           report.VehicleActivitiesAnalysed,
		CompletelyMatching: report.VehicleActivitiesCompletelyMatching,
		Uncounted:          len(report.Uncounted),
		Summary:            report.Summary,
		Timestamp:          now,
	})

	return nil
}
