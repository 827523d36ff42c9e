package ppc

import (
	"context"

	"github.com/travigo/dataquality/pkg/siri_vm"
	"github.com/travigo/dataquality/pkg/transxchange"
)

// JourneyMatcher finds the timetabled vehicle journey a vehicle activity is running.
// An activity that cannot be matched is reported with an *UncountedError; any other
// error means the timetables could not be read.
type JourneyMatcher interface {
	Match(ctx context.Context, activity siri_vm.VehicleActivity, result *ValidationResult) (*MatchedJourney, error)
}

type MatchedJourney struct {
	Document *transxchange.TransXChange
	Journey  *transxchange.VehicleJourney
	File     TimetableFile
}

func (m *MatchedJourney) JourneyPattern() *transxchange.JourneyPattern {
	return m.Document.JourneyPattern(m.Journey.JourneyPatternRef)
}
