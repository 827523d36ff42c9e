package dataquality

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDataQualityRAGStoredScore(t *testing.T) {
	scorer := &fakeScorer{score: 0.1}
	store := &fakeScoreStore{}

	rag, err := GetDataQualityRAG(t.Context(), &Report{ID: 1, Score: 0.95}, scorer, store)
	require.NoError(t, err)
	require.NotNil(t, rag)

	assert.Equal(t, RAGAmber, rag.Level)
	assert.Equal(t, 0, scorer.calls)
	assert.Empty(t, store.saved)
}

func TestGetDataQualityRAGCalculates(t *testing.T) {
	scorer := &fakeScorer{score: 1.0}
	store := &fakeScoreStore{}
	report := &Report{ID: 4}

	rag, err := GetDataQualityRAG(t.Context(), report, scorer, store)
	require.NoError(t, err)
	require.NotNil(t, rag)

	assert.Equal(t, RAGGreen, rag.Level)
	assert.Equal(t, "success", rag.Indicator)
	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, map[int]float64{4: 1.0}, store.saved)
	assert.Equal(t, 1.0, report.Score)
}

func TestGetDataQualityRAGUnavailable(t *testing.T) {
	scorer := &fakeScorer{err: &ScoreError{ReportID: 4, Err: ErrSummaryNotFound}}
	store := &fakeScoreStore{}

	rag, err := GetDataQualityRAG(t.Context(), &Report{ID: 4}, scorer, store)
	assert.NoError(t, err)
	assert.Nil(t, rag)
	assert.Empty(t, store.saved)
}

func TestGetDataQualityRAGErrors(t *testing.T) {
	t.Run("calculation", func(t *testing.T) {
		scorer := &fakeScorer{err: errors.New("boom")}

		rag, err := GetDataQualityRAG(t.Context(), &Report{ID: 4}, scorer, &fakeScoreStore{})
		assert.Error(t, err)
		assert.Nil(t, rag)
	})

	t.Run("persistence", func(t *testing.T) {
		errWrite := errors.New("write failed")
		scorer := &fakeScorer{score: 0.5}

		rag, err := GetDataQualityRAG(t.Context(), &Report{ID: 4}, scorer, &fakeScoreStore{err: errWrite})
		assert.ErrorIs(t, err, errWrite)
		assert.Nil(t, rag)
	})
}
