package dataquality

import (
	"context"
	"fmt"
)

// Counts holds the denominators used by the score calculation for one report.
// Every value is at least 1.
type Counts struct {
	DataSet         int `json:"data_set"`
	Lines           int `json:"lines"`
	Stops           int `json:"stops"`
	TimingPatterns  int `json:"timing_patterns"`
	VehicleJourneys int `json:"vehicle_journeys"`
}

// RevisionCounts are the raw values recorded against the dataset revision a report belongs to
type RevisionCounts struct {
	NumberOfLines   int
	NumberOfStops   int
	TimingPatterns  int
	VehicleJourneys int
}

type RevisionSource interface {
	RevisionCounts(ctx context.Context, reportID int) (RevisionCounts, error)
}

func CountsFromReport(ctx context.Context, source RevisionSource, reportID int) (Counts, error) {
	revision, err := source.RevisionCounts(ctx, reportID)
	if err != nil {
		return Counts{}, err
	}

	return NewCounts(revision), nil
}

func NewCounts(revision RevisionCounts) Counts {
	return Counts{
		DataSet:         1,
		Lines:           max(1, revision.NumberOfLines),
		Stops:           max(1, revision.NumberOfStops),
		TimingPatterns:  max(1, revision.TimingPatterns),
		VehicleJourneys: max(1, revision.VehicleJourneys),
	}
}

// Basis returns the denominator for a check basis
func (c Counts) Basis(basis CheckBasis) (int, error) {
	switch basis {
	case CheckBasisDataSet:
		return c.DataSet, nil
	case CheckBasisLines:
		return c.Lines, nil
	case CheckBasisStops:
		return c.Stops, nil
	case CheckBasisTimingPatterns:
		return c.TimingPatterns, nil
	case CheckBasisVehicleJourneys:
		return c.VehicleJourneys, nil
	}

	return 0, fmt.Errorf("unknown check basis %q", basis)
}
