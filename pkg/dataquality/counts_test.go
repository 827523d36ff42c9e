package dataquality

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsFromReport(t *testing.T) {
	source := &fakeRevisions{counts: map[int]RevisionCounts{
		1: {NumberOfLines: 3, NumberOfStops: 40, TimingPatterns: 6, VehicleJourneys: 90},
		2: {},
	}}

	counts, err := CountsFromReport(t.Context(), source, 1)
	require.NoError(t, err)
	assert.Equal(t, Counts{DataSet: 1, Lines: 3, Stops: 40, TimingPatterns: 6, VehicleJourneys: 90}, counts)

	counts, err = CountsFromReport(t.Context(), source, 2)
	require.NoError(t, err)
	assert.Equal(t, Counts{DataSet: 1, Lines: 1, Stops: 1, TimingPatterns: 1, VehicleJourneys: 1}, counts)
}

func TestCountsFromReportError(t *testing.T) {
	_, err := CountsFromReport(t.Context(), &fakeRevisions{err: ErrReportNotFound}, 1)
	assert.True(t, errors.Is(err, ErrReportNotFound))
}

func TestCountsBasis(t *testing.T) {
	counts := Counts{DataSet: 1, Lines: 2, Stops: 3, TimingPatterns: 4, VehicleJourneys: 5}

	tests := map[CheckBasis]int{
		CheckBasisDataSet:         1,
		CheckBasisLines:           2,
		CheckBasisStops:           3,
		CheckBasisTimingPatterns:  4,
		CheckBasisVehicleJourneys: 5,
	}

	for basis, expected := range tests {
		value, err := counts.Basis(basis)
		require.NoError(t, err)
		assert.Equal(t, expected, value, basis)
	}

	_, err := counts.Basis("routes")
	assert.Error(t, err)
}
