package dataquality

import (
	"fmt"
	"math"
)

type RAG struct {
	Score     float64  `json:"score"`
	Level     RAGLevel `json:"rag_level"`
	Indicator string   `json:"indicator"`
}

// FromScore classifies a score, rounding it down first so 0.9999 is never reported as green
func FromScore(score float64) RAG {
	score = roundDown(score)

	switch {
	case score >= GreenThreshold:
		return RAG{Score: score, Level: RAGGreen, Indicator: IndicatorGreen}
	case score > AmberThreshold:
		return RAG{Score: score, Level: RAGAmber, Indicator: IndicatorAmber}
	default:
		return RAG{Score: score, Level: RAGRed, Indicator: IndicatorRed}
	}
}

// Percentage renders the score to one decimal place, eg 0.9999 -> "99.9%"
func (r RAG) Percentage() string {
	return fmt.Sprintf("%.1f%%", r.Score*100)
}

// roundDown truncates to three decimal places. The product is nudged up by one ulp so that
// representation error in values such as 0.29 does not drop a whole step.
func roundDown(score float64) float64 {
	return math.Floor(math.Nextafter(score*1000, math.Inf(1))) / 1000
}

// FormatPercentage renders a fraction as a whole percentage. Values just above 0 or just below 1
// are never shown as 0% or 100%.
func FormatPercentage(fraction float64) string {
	switch {
	case fraction > 0 && fraction < 0.01:
		return "1%"
	case fraction > 0.99 && fraction < 1:
		return "99%"
	}

	return fmt.Sprintf("%d%%", int(math.Round(fraction*100)))
}
