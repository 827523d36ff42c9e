package dataquality

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Report is the data quality report a score belongs to. A Score of 0 means it was never calculated.
type Report struct {
	ID       int     `json:"id" bson:"id" groups:"basic,detailed"`
	Score    float64 `json:"score" bson:"score" groups:"basic,detailed"`
	Revision int     `json:"revision_id" bson:"revision_id" groups:"detailed"`
}

type Scorer interface {
	Calculate(ctx context.Context, reportID int) (float64, error)
}

type ScoreStore interface {
	SaveScore(ctx context.Context, reportID int, score float64) error
}

// GetDataQualityRAG returns the RAG of a report, calculating and storing the score on first use.
// A nil RAG with a nil error means the score is unavailable.
func GetDataQualityRAG(ctx context.Context, report *Report, calc Scorer, store ScoreStore) (*RAG, error) {
	if report.Score > 0 {
		rag := FromScore(report.Score)
		return &rag, nil
	}

	score, err := calc.Calculate(ctx, report.ID)
	if err != nil {
		var scoreError *ScoreError
		if errors.As(err, &scoreError) {
			log.Warn().Err(err).Int("report", report.ID).Msg("Data quality score unavailable")
			return nil, nil
		}

		return nil, err
	}

	if err := store.SaveScore(ctx, report.ID, score); err != nil {
		return nil, fmt.Errorf("saving score for report %d: %w", report.ID, err)
	}
	report.Score = score

	rag := FromScore(score)
	return &rag, nil
}
