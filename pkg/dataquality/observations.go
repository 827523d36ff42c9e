package dataquality

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed observations.yaml
var defaultObservations []byte

// Observation is one entry of the weighted observation catalogue
type Observation struct {
	Name       string     `yaml:"name" validate:"required"`
	Weighting  float64    `yaml:"weighting" validate:"gte=0,lte=1"`
	CheckBasis CheckBasis `yaml:"check_basis" validate:"required,oneof=data_set lines stops timing_patterns vehicle_journeys"`
}

type observationCatalogue struct {
	Observations []Observation `yaml:"observations" validate:"required,min=1,dive"`
}

// weightingTolerance absorbs float error when summing decimal weightings
const weightingTolerance = 1e-9

// WeightedObservations returns the built in catalogue
func WeightedObservations() ([]Observation, error) {
	return LoadObservations(bytes.NewReader(defaultObservations))
}

func LoadObservationsFile(path string) ([]Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadObservations(file)
}

// LoadObservations decodes and validates a YAML observation catalogue
func LoadObservations(reader io.Reader) ([]Observation, error) {
	var catalogue observationCatalogue

	if err := yaml.NewDecoder(reader).Decode(&catalogue); err != nil {
		return nil, fmt.Errorf("decoding observation catalogue: %w", err)
	}

	if err := validator.New().Struct(catalogue); err != nil {
		return nil, fmt.Errorf("validating observation catalogue: %w", err)
	}

	seen := map[string]bool{}
	total := 0.0
	for _, observation := range catalogue.Observations {
		if seen[observation.Name] {
			return nil, fmt.Errorf("observation %s registered more than once", observation.Name)
		}
		seen[observation.Name] = true

		total += observation.Weighting
	}

	if total > 1.0+weightingTolerance {
		return nil, fmt.Errorf("observation weightings sum to %.5f, must not exceed 1.0", total)
	}

	return catalogue.Observations, nil
}
