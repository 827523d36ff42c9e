package dataquality

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObservations() []Observation {
	return []Observation{
		{Name: "LineWarning", Weighting: 0.5, CheckBasis: CheckBasisLines},
		{Name: "DataSetWarning", Weighting: 0.3, CheckBasis: CheckBasisDataSet},
		{Name: "StopWarning", Weighting: 0.2, CheckBasis: CheckBasisStops},
	}
}

func TestCalculatorInputsSorted(t *testing.T) {
	calculator := NewCalculator(&fakeRevisions{}, &fakeSummaries{}, testObservations()...)

	inputs := calculator.Inputs()
	require.Len(t, inputs, 3)
	assert.Equal(t, "DataSetWarning", inputs[0].Observation)
	assert.Equal(t, "LineWarning", inputs[1].Observation)
	assert.Equal(t, "StopWarning", inputs[2].Observation)
	assert.Equal(t, CheckBasisDataSet, inputs[0].CheckBasis)
}

func TestCalculatorRegisterReplaces(t *testing.T) {
	calculator := NewCalculator(&fakeRevisions{}, &fakeSummaries{})
	calculator.Register(Observation{Name: "LineWarning", Weighting: 0.1, CheckBasis: CheckBasisLines})
	calculator.Register(Observation{Name: "LineWarning", Weighting: 0.4, CheckBasis: CheckBasisStops})

	inputs := calculator.Inputs()
	require.Len(t, inputs, 1)
	assert.Equal(t, 0.4, inputs[0].Weighting)
	assert.Equal(t, CheckBasisStops, inputs[0].CheckBasis)
}

func TestCalculate(t *testing.T) {
	revisions := &fakeRevisions{counts: map[int]RevisionCounts{
		7: {NumberOfLines: 10, NumberOfStops: 4, TimingPatterns: 3, VehicleJourneys: 12},
	}}

	tests := []struct {
		name     string
		summary  map[string]int
		expected float64
	}{
		{
			name:     "no observations recorded",
			summary:  map[string]int{},
			expected: 1.0,
		},
		{
			name:     "weighted by basis",
			summary:  map[string]int{"LineWarning": 2, "StopWarning": 1},
			expected: 0.85,
		},
		{
			name:     "data set observations collapse to one",
			summary:  map[string]int{"LineWarning": 2, "DataSetWarning": 5, "StopWarning": 1},
			expected: 0.55,
		},
		{
			name:     "observations outside the catalogue are ignored",
			summary:  map[string]int{"SomethingElse": 40},
			expected: 1.0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			summaries := &fakeSummaries{summaries: map[int]map[string]int{7: test.summary}}
			calculator := NewCalculator(revisions, summaries, testObservations()...)

			score, err := calculator.Calculate(t.Context(), 7)
			require.NoError(t, err)
			assert.InDelta(t, test.expected, score, 1e-9)
		})
	}
}

func TestCalculateDefaultCatalogueWithoutObservations(t *testing.T) {
	observations, err := WeightedObservations()
	require.NoError(t, err)

	calculator := NewCalculator(
		&fakeRevisions{counts: map[int]RevisionCounts{1: {NumberOfLines: 2, NumberOfStops: 20}}},
		&fakeSummaries{summaries: map[int]map[string]int{1: {}}},
		observations...,
	)

	score, err := calculator.Calculate(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestCalculateFloorsDenominators(t *testing.T) {
	calculator := NewCalculator(
		&fakeRevisions{counts: map[int]RevisionCounts{1: {}}},
		&fakeSummaries{summaries: map[int]map[string]int{1: {"LineWarning": 1}}},
		Observation{Name: "LineWarning", Weighting: 1.0, CheckBasis: CheckBasisLines},
	)

	score, err := calculator.Calculate(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCalculateRoundsToFivePlaces(t *testing.T) {
	calculator := NewCalculator(
		&fakeRevisions{counts: map[int]RevisionCounts{1: {NumberOfLines: 3}}},
		&fakeSummaries{summaries: map[int]map[string]int{1: {"LineWarning": 1}}},
		Observation{Name: "LineWarning", Weighting: 1.0, CheckBasis: CheckBasisLines},
	)

	score, err := calculator.Calculate(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.66667, score)
}

func TestCalculateErrors(t *testing.T) {
	errDatabase := errors.New("database unavailable")

	tests := []struct {
		name       string
		revisions  *fakeRevisions
		summaries  *fakeSummaries
		extra      *Observation
		expectedIs error
	}{
		{
			name:       "counts fail",
			revisions:  &fakeRevisions{err: errDatabase},
			summaries:  &fakeSummaries{},
			expectedIs: errDatabase,
		},
		{
			name:       "summary fails",
			revisions:  &fakeRevisions{},
			summaries:  &fakeSummaries{err: ErrSummaryNotFound},
			expectedIs: ErrSummaryNotFound,
		},
		{
			name:      "unknown check basis",
			revisions: &fakeRevisions{},
			summaries: &fakeSummaries{},
			extra:     &Observation{Name: "RouteWarning", Weighting: 0.1, CheckBasis: "routes"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			calculator := NewCalculator(test.revisions, test.summaries, testObservations()...)
			if test.extra != nil {
				calculator.Register(*test.extra)
			}

			_, err := calculator.Calculate(t.Context(), 3)
			require.Error(t, err)

			var scoreError *ScoreError
			require.True(t, errors.As(err, &scoreError))
			assert.Equal(t, 3, scoreError.ReportID)

			if test.expectedIs != nil {
				assert.ErrorIs(t, err, test.expectedIs)
			}
		})
	}
}
