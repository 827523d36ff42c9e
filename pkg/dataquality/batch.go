package dataquality

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/dataquality/pkg/elastic_client"
	"github.com/travigo/dataquality/pkg/metrics"
)

const scoresIndexName = "dataquality-scores"

// ScoreResult is the outcome of scoring one report. RAG is nil when the score is unavailable.
type ScoreResult struct {
	ReportID int       `json:"report_id"`
	Score    float64   `json:"score"`
	RAG      *RAG      `json:"rag,omitempty"`
	Error    string    `json:"error,omitempty"`
	Time     time.Time `json:"timestamp"`
}

type BatchScorer struct {
	// NewScorer builds the scorer used by a single worker
	NewScorer func() Scorer
	Store     ScoreStore
	Workers   int
	Metrics   *metrics.Metrics
}

// ScoreReports classifies every report in parallel, results are in the same order as the reports
func (b *BatchScorer) ScoreReports(ctx context.Context, reports []*Report) []ScoreResult {
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]ScoreResult, len(reports))
	p := pool.New().WithMaxGoroutines(workers)

	for i, report := range reports {
		p.Go(func() {
			results[i] = b.scoreReport(ctx, report)
		})
	}
	p.Wait()

	return results
}

func (b *BatchScorer) scoreReport(ctx context.Context, report *Report) ScoreResult {
	result := ScoreResult{ReportID: report.ID, Time: time.Now()}

	rag, err := GetDataQualityRAG(ctx, report, b.NewScorer(), b.Store)
	if err != nil {
		log.Error().Err(err).Int("report", report.ID).Msg("Failed to score report")
		b.Metrics.ScoreFailed()
		result.Error = err.Error()
		return result
	}

	if rag == nil {
		b.Metrics.ScoreFailed()
		result.Error = "score unavailable"
		return result
	}

	b.Metrics.ScoreCalculated()
	result.Score = rag.Score
	result.RAG = rag

	log.Debug().Int("report", report.ID).Str("rag", string(rag.Level)).Str("score", rag.Percentage()).Msg("Scored report")

	elastic_client.IndexDocument(elastic_client.IndexName(scoresIndexName, time.Now()), result)

	return result
}
