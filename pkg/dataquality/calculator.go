package dataquality

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// ScoreInput is a registered observation kind used by the calculator
type ScoreInput struct {
	Observation string
	Weighting   float64
	CheckBasis  CheckBasis
}

// SummarySource provides the number of times each observation kind was recorded against a report
type SummarySource interface {
	ReportSummary(ctx context.Context, reportID int) (map[string]int, error)
}

// ScoreError signals that a score cannot be computed for a report
type ScoreError struct {
	ReportID int
	Err      error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("calculating data quality score for report %d: %s", e.ReportID, e.Err)
}

func (e *ScoreError) Unwrap() error {
	return e.Err
}

type Calculator struct {
	inputs map[string]ScoreInput

	revisions RevisionSource
	summaries SummarySource
}

func NewCalculator(revisions RevisionSource, summaries SummarySource, observations ...Observation) *Calculator {
	calculator := &Calculator{
		inputs:    map[string]ScoreInput{},
		revisions: revisions,
		summaries: summaries,
	}

	for _, observation := range observations {
		calculator.Register(observation)
	}

	return calculator
}

// Register adds an observation to the calculation, replacing any previous one with the same name
func (c *Calculator) Register(observation Observation) {
	c.inputs[observation.Name] = ScoreInput{
		Observation: observation.Name,
		Weighting:   observation.Weighting,
		CheckBasis:  observation.CheckBasis,
	}
}

func (c *Calculator) Inputs() []ScoreInput {
	inputs := make([]ScoreInput, 0, len(c.inputs))
	for _, input := range c.inputs {
		inputs = append(inputs, input)
	}

	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].Observation < inputs[j].Observation
	})

	return inputs
}

func (c *Calculator) Counts(ctx context.Context, reportID int) (Counts, error) {
	return CountsFromReport(ctx, c.revisions, reportID)
}

// Calculate returns the weighted data quality score of a report rounded to 5 decimal places.
// Any failure is returned as a *ScoreError.
func (c *Calculator) Calculate(ctx context.Context, reportID int) (float64, error) {
	counts, err := c.Counts(ctx, reportID)
	if err != nil {
		return 0, &ScoreError{ReportID: reportID, Err: err}
	}

	summary, err := c.summaries.ReportSummary(ctx, reportID)
	if err != nil {
		return 0, &ScoreError{ReportID: reportID, Err: err}
	}

	total, err := weightedTotal(c.Inputs(), counts, summary)
	if err != nil {
		return 0, &ScoreError{ReportID: reportID, Err: err}
	}

	return roundTo(total, 5), nil
}

func weightedTotal(inputs []ScoreInput, counts Counts, summary map[string]int) (float64, error) {
	total := 0.0

	for _, input := range inputs {
		observationCount := summary[input.Observation]

		// A data set can only be deficient once
		if input.CheckBasis == CheckBasisDataSet {
			if observationCount > 0 {
				observationCount = 1
			} else {
				observationCount = 0
			}
		}

		basisCount, err := counts.Basis(input.CheckBasis)
		if err != nil {
			return 0, err
		}
		if basisCount == 0 {
			return 0, fmt.Errorf("%s count is zero", input.CheckBasis)
		}

		total += (1.0 - float64(observationCount)/float64(basisCount)) * input.Weighting
	}

	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, fmt.Errorf("score is not a finite number")
	}

	return total, nil
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))

	return math.Round(value*scale) / scale
}
