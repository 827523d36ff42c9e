package dataquality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromScore(t *testing.T) {
	tests := []struct {
		score      float64
		level      RAGLevel
		indicator  string
		percentage string
	}{
		{score: 1.0, level: RAGGreen, indicator: "success", percentage: "100.0%"},
		{score: 0.9999, level: RAGAmber, indicator: "warning", percentage: "99.9%"},
		{score: 0.91, level: RAGAmber, indicator: "warning", percentage: "91.0%"},
		{score: 0.90005, level: RAGRed, indicator: "error", percentage: "90.0%"},
		{score: 0.9, level: RAGRed, indicator: "error", percentage: "90.0%"},
		{score: 0.33, level: RAGRed, indicator: "error", percentage: "33.0%"},
		{score: 0.29, level: RAGRed, indicator: "error", percentage: "29.0%"},
		{score: 0.005, level: RAGRed, indicator: "error", percentage: "0.5%"},
		{score: 0, level: RAGRed, indicator: "error", percentage: "0.0%"},
	}

	for _, test := range tests {
		t.Run(test.percentage, func(t *testing.T) {
			rag := FromScore(test.score)

			assert.Equal(t, test.level, rag.Level)
			assert.Equal(t, test.indicator, rag.Indicator)
			assert.Equal(t, test.percentage, rag.Percentage())
		})
	}
}

func TestFromScoreRoundsDown(t *testing.T) {
	assert.Equal(t, 0.999, FromScore(0.99999).Score)
	assert.Equal(t, 0.123, FromScore(0.1239).Score)
	assert.Equal(t, 0.57, FromScore(0.57).Score)

	rag := FromScore(0.9999999999)
	assert.Equal(t, 0.999, rag.Score)
	assert.Equal(t, RAGAmber, rag.Level)
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		fraction float64
		expected string
	}{
		{fraction: 0, expected: "0%"},
		{fraction: 0.001, expected: "1%"},
		{fraction: 0.009, expected: "1%"},
		{fraction: 0.123, expected: "12%"},
		{fraction: 0.5, expected: "50%"},
		{fraction: 0.986, expected: "99%"},
		{fraction: 0.995, expected: "99%"},
		{fraction: 0.9999, expected: "99%"},
		{fraction: 1, expected: "100%"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, FormatPercentage(test.fraction))
		})
	}
}
