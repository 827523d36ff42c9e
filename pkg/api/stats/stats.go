package stats

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dataquality/pkg/dataquality"
)

type RecordsStats struct {
	Reports  int `json:"reports"`
	Scored   int `json:"scored"`
	Unscored int `json:"unscored"`

	Green int `json:"green"`
	Amber int `json:"amber"`
	Red   int `json:"red"`

	UpdatedAt time.Time `json:"updated_at"`
}

type ReportSource interface {
	AllReports(ctx context.Context, unscoredOnly bool) ([]*dataquality.Report, error)
}

// Collector keeps the RAG distribution of the stored reports
type Collector struct {
	Source   ReportSource
	Interval time.Duration

	current atomic.Pointer[RecordsStats]
}

// Current returns the latest stats, nil before the first update
func (c *Collector) Current() *RecordsStats {
	return c.current.Load()
}

func (c *Collector) Update(ctx context.Context) error {
	reports, err := c.Source.AllReports(ctx, false)
	if err != nil {
		return err
	}

	c.current.Store(NewRecordsStats(reports, time.Now()))

	return nil
}

// Run updates the stats every interval until the context is cancelled
func (c *Collector) Run(ctx context.Context) {
	interval := c.Interval
	if interval == 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := c.Update(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to update records stats")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func NewRecordsStats(reports []*dataquality.Report, now time.Time) *RecordsStats {
	stats := &RecordsStats{
		Reports:   len(reports),
		UpdatedAt: now,
	}

	for _, report := range reports {
		if report.Score <= 0 {
			stats.Unscored++
			continue
		}

		stats.Scored++
		switch dataquality.FromScore(report.Score).Level {
		case dataquality.RAGGreen:
			stats.Green++
		case dataquality.RAGAmber:
			stats.Amber++
		case dataquality.RAGRed:
			stats.Red++
		}
	}

	return stats
}
