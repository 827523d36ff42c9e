package ppc

import (
	"strings"

	"github.com/travigo/dataquality/pkg/siri_vm"
	"github.com/travigo/dataquality/pkg/transxchange"
)

// ExactMatch compares two values after trimming surrounding whitespace. Case matters.
func ExactMatch(a string, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

type comparisonNotes struct {
	sirivmMissing string
	txcMissing    string
	mismatch      string
}

var (
	directionNotes = comparisonNotes{
		sirivmMissing: "DirectionRef not found in SIRI-VM data",
		txcMissing:    "Direction not found in timetable",
		mismatch:      "DirectionRef does not match Direction in timetable",
	}
	blockNotes = comparisonNotes{
		sirivmMissing: "BlockRef not found in SIRI-VM VehicleActivity",
		txcMissing:    "BlockNumber not found in timetable",
		mismatch:      "BlockRef does not match BlockNumber in timetable",
	}
	publishedLineNameNotes = comparisonNotes{
		sirivmMissing: "PublishedLineName not found in SIRI-VM VehicleActivity",
		txcMissing:    "LineName not found in timetable",
		mismatch:      "PublishedLineName does not match LineName in timetable",
	}
	destinationNotes = comparisonNotes{
		sirivmMissing: "DestinationRef not found in SIRI-VM VehicleActivity",
		txcMissing:    "Equivalent StopPointRef not found in timetable",
		mismatch:      "DestinationRef does not match final StopPointRef in timetable",
	}
	originNotes = comparisonNotes{
		sirivmMissing: "OriginRef not found in SIRI-VM VehicleActivity",
		txcMissing:    "Equivalent StopPointRef not found in timetable",
		mismatch:      "OriginRef does not match first StopPointRef in timetable",
	}
	destinationNameNotes = comparisonNotes{
		sirivmMissing: "DestinationName not found in SIRI-VM VehicleActivity",
		txcMissing:    "No DynamicDestinationDisplay or DestinationDisplay found in timetable",
		mismatch:      "DestinationName does not match any DynamicDestinationDisplay or DestinationDisplay found in timetable",
	}
)

// CompareJourney cross references the activity with the journey it was matched to
func CompareJourney(mvj siri_vm.MonitoredVehicleJourney, match *MatchedJourney, result *ValidationResult) {
	journeyPattern := match.JourneyPattern()

	var direction *transxchange.LocatedText
	if journeyPattern != nil {
		direction = journeyPattern.Direction
	}
	compareField(result, CategoryDirection, mvj.DirectionRef, direction, directionNotes)

	compareField(result, CategoryBlock, mvj.BlockRef, match.Journey.BlockNumber(), blockNotes)

	var lineName *transxchange.LocatedText
	if line := match.Document.Line(match.Journey.LineRef); line != nil {
		lineName = &line.LineName
	}
	compareField(result, CategoryPublishedLineName, mvj.PublishedLineName, lineName, publishedLineNameNotes)

	compareField(result, CategoryDestination, mvj.DestinationRef, match.Document.DestinationStopPointRef(journeyPattern), destinationNotes)
	compareField(result, CategoryOrigin, mvj.OriginRef, match.Document.OriginStopPointRef(journeyPattern), originNotes)

	compareDestinationName(result, mvj.DestinationName, match.Document.DestinationDisplays(journeyPattern))
}

func compareField(result *ValidationResult, category Category, sirivm *string, txc *transxchange.LocatedText, notes comparisonNotes) {
	field := category.Field()

	if sirivm == nil || strings.TrimSpace(*sirivm) == "" {
		result.AddError(category, notes.sirivmMissing)
		return
	}
	if txc == nil || txc.Text == "" {
		result.AddError(category, notes.txcMissing)
		return
	}

	line := txc.Line
	result.SetTXCValue(field, txc.Text, &line)

	if ExactMatch(*sirivm, txc.Text) {
		result.SetMatches(field)
		return
	}

	result.AddError(category, notes.mismatch)
}

// compareDestinationName accepts any of the displays of the journey pattern
func compareDestinationName(result *ValidationResult, sirivm *string, displays []*transxchange.LocatedText) {
	if sirivm == nil || strings.TrimSpace(*sirivm) == "" {
		result.AddError(CategoryDestinationName, destinationNameNotes.sirivmMissing)
		return
	}
	if len(displays) == 0 {
		result.AddError(CategoryDestinationName, destinationNameNotes.txcMissing)
		return
	}

	for _, display := range displays {
		if ExactMatch(*sirivm, display.Text) {
			line := display.Line
			result.SetTXCValue(FieldDestinationName, display.Text, &line)
			result.SetMatches(FieldDestinationName)
			return
		}
	}

	line := displays[0].Line
	result.SetTXCValue(FieldDestinationName, displays[0].Text, &line)
	result.AddError(CategoryDestinationName, destinationNameNotes.mismatch)
}
