package dataquality

// CheckBasis selects which count an observation is normalised against
type CheckBasis string

const (
	CheckBasisDataSet         CheckBasis = "data_set"
	CheckBasisLines           CheckBasis = "lines"
	CheckBasisStops           CheckBasis = "stops"
	CheckBasisTimingPatterns  CheckBasis = "timing_patterns"
	CheckBasisVehicleJourneys CheckBasis = "vehicle_journeys"
)

type RAGLevel string

const (
	RAGRed   RAGLevel = "red"
	RAGAmber RAGLevel = "amber"
	RAGGreen RAGLevel = "green"
)

const (
	IndicatorRed   = "error"
	IndicatorAmber = "warning"
	IndicatorGreen = "success"
)

const (
	GreenThreshold = 1.0
	AmberThreshold = 0.9
)
