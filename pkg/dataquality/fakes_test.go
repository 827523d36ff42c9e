package dataquality

import (
	"context"
	"sync"
)

type fakeRevisions struct {
	counts map[int]RevisionCounts
	err    error
}

func (f *fakeRevisions) RevisionCounts(_ context.Context, reportID int) (RevisionCounts, error) {
	if f.err != nil {
		return RevisionCounts{}, f.err
	}

	return f.counts[reportID], nil
}

type fakeSummaries struct {
	summaries map[int]map[string]int
	err       error
}

func (f *fakeSummaries) ReportSummary(_ context.Context, reportID int) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.summaries[reportID], nil
}

type fakeScorer struct {
	score float64
	err   error
	calls int
}

func (f *fakeScorer) Calculate(_ context.Context, _ int) (float64, error) {
	f.calls++
	return f.score, f.err
}

type fakeScoreStore struct {
	mutex sync.Mutex
	saved map[int]float64
	err   error
}

func (f *fakeScoreStore) SaveScore(_ context.Context, reportID int, score float64) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.err != nil {
		return f.err
	}

	if f.saved == nil {
		f.saved = map[int]float64{}
	}
	f.saved[reportID] = score

	return nil
}
