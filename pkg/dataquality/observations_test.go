package dataquality

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedObservations(t *testing.T) {
	observations, err := WeightedObservations()
	require.NoError(t, err)
	assert.Len(t, observations, 9)

	total := 0.0
	for _, observation := range observations {
		total += observation.Weighting
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestLoadObservations(t *testing.T) {
	tests := []struct {
		name     string
		document string
		valid    bool
	}{
		{
			name: "valid",
			document: `
observations:
  - name: StopMissingNaptanWarning
    weighting: 0.4
    check_basis: stops
  - name: IncorrectNOCWarning
    weighting: 0.6
    check_basis: data_set
`,
			valid: true,
		},
		{
			name: "weighting above one",
			document: `
observations:
  - name: StopMissingNaptanWarning
    weighting: 1.5
    check_basis: stops
`,
		},
		{
			name: "unknown check basis",
			document: `
observations:
  - name: StopMissingNaptanWarning
    weighting: 0.5
    check_basis: routes
`,
		},
		{
			name: "missing name",
			document: `
observations:
  - weighting: 0.5
    check_basis: stops
`,
		},
		{
			name: "duplicate name",
			document: `
observations:
  - name: StopMissingNaptanWarning
    weighting: 0.2
    check_basis: stops
  - name: StopMissingNaptanWarning
    weighting: 0.2
    check_basis: lines
`,
		},
		{
			name: "weightings sum above one",
			document: `
observations:
  - name: StopMissingNaptanWarning
    weighting: 0.6
    check_basis: stops
  - name: IncorrectNOCWarning
    weighting: 0.6
    check_basis: data_set
`,
		},
		{
			name:     "empty",
			document: `observations: []`,
		},
		{
			name:     "not yaml",
			document: `observations: [`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			observations, err := LoadObservations(strings.NewReader(test.document))
			if test.valid {
				require.NoError(t, err)
				assert.Len(t, observations, 2)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadCatalogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
observations:
  - name: FastTimingWarning
    weighting: 1
    check_basis: timing_patterns
`), 0o644))

	observations, err := LoadCatalogue(path)
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, "FastTimingWarning", observations[0].Name)
	assert.Equal(t, CheckBasisTimingPatterns, observations[0].CheckBasis)

	defaults, err := LoadCatalogue("")
	require.NoError(t, err)
	assert.Len(t, defaults, 9)

	_, err = LoadCatalogue(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
