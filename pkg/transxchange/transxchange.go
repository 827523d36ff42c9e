package transxchange

import (
	"errors"
	"strconv"
	"time"

	"github.com/travigo/dataquality/pkg/util"
)

var ErrIncompleteDateRange = errors.New("date range has no start or end date")
var ErrMissingRoot = errors.New("document has no TransXChange root element")

type TransXChange struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`
	RevisionNumber       string `xml:",attr"`
	FileName             string `xml:",attr"`
	SchemaVersion        string `xml:",attr"`

	Operators              []*Operator
	Services               []*Service
	JourneyPatternSections []*JourneyPatternSection
	VehicleJourneys        []*VehicleJourney
	ServicedOrganisations  []*ServicedOrganisation
}

// Revision returns the numeric RevisionNumber attribute of the root element
func (doc *TransXChange) Revision() (int, error) {
	return strconv.Atoi(doc.RevisionNumber)
}

func (doc *TransXChange) NationalOperatorCodes() []string {
	codes := []string{}
	for _, operator := range doc.Operators {
		if operator.NationalOperatorCode != "" {
			codes = append(codes, operator.NationalOperatorCode)
		}
	}

	return util.RemoveDuplicateStrings(codes, []string{})
}

func (doc *TransXChange) LineNames() []string {
	names := []string{}
	for _, service := range doc.Services {
		for _, line := range service.Lines {
			names = append(names, line.LineName.Text)
		}
	}

	return util.RemoveDuplicateStrings(names, []string{})
}

func (doc *TransXChange) ServiceCodes() []string {
	codes := []string{}
	for _, service := range doc.Services {
		codes = append(codes, service.ServiceCode)
	}

	return codes
}

// FirstService is the service the document-wide operating period and profile come from
func (doc *TransXChange) FirstService() *Service {
	if len(doc.Services) == 0 {
		return nil
	}

	return doc.Services[0]
}

// OperatingPeriod returns the start and end of the first service. A missing
// end date is returned as the zero time.
func (doc *TransXChange) OperatingPeriod() (time.Time, time.Time, error) {
	service := doc.FirstService()
	if service == nil || service.StartDate == "" {
		return time.Time{}, time.Time{}, errors.New("no OperatingPeriod")
	}

	start, err := time.Parse(util.YearMonthDayFormat, service.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("incorrectly formatted OperatingPeriod.StartDate")
	}

	if service.EndDate == "" {
		return start, time.Time{}, nil
	}

	end, err := time.Parse(util.YearMonthDayFormat, service.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("incorrectly formatted OperatingPeriod.EndDate")
	}

	return start, end, nil
}

// Service returns the service with the code, or the first service when the code is empty
func (doc *TransXChange) Service(code string) *Service {
	if code == "" {
		return doc.FirstService()
	}

	for _, service := range doc.Services {
		if service.ServiceCode == code {
			return service
		}
	}

	return nil
}

// JourneyPattern finds a journey pattern by id across every service
func (doc *TransXChange) JourneyPattern(id string) *JourneyPattern {
	for _, service := range doc.Services {
		if journeyPattern := service.JourneyPattern(id); journeyPattern != nil {
			return journeyPattern
		}
	}

	return nil
}

func (doc *TransXChange) JourneyPatternSection(id string) *JourneyPatternSection {
	for _, section := range doc.JourneyPatternSections {
		if section.ID == id {
			return section
		}
	}

	return nil
}

func (doc *TransXChange) Line(id string) *Line {
	for _, service := range doc.Services {
		if line := service.Line(id); line != nil {
			return line
		}
	}

	return nil
}

func (doc *TransXChange) ServicedOrganisation(code string) *ServicedOrganisation {
	for _, organisation := range doc.ServicedOrganisations {
		if organisation.OrganisationCode == code {
			return organisation
		}
	}

	return nil
}

// OperatingProfile returns the journey's own profile, falling back to the service profile
func (doc *TransXChange) OperatingProfile(journey *VehicleJourney) *OperatingProfile {
	if journey.OperatingProfile != nil {
		return journey.OperatingProfile
	}

	service := doc.Service(journey.ServiceRef)
	if service == nil {
		return nil
	}

	return service.OperatingProfile
}

// VehicleJourneysWithJourneyCode returns journeys whose TicketMachine JourneyCode equals code
func (doc *TransXChange) VehicleJourneysWithJourneyCode(code string) []*VehicleJourney {
	journeys := []*VehicleJourney{}
	for _, journey := range doc.VehicleJourneys {
		if journey.JourneyCode() != "" && journey.JourneyCode() == code {
			journeys = append(journeys, journey)
		}
	}

	return journeys
}

// OriginStopPointRef is the From StopPointRef of the first timing link in the first section of the pattern
func (doc *TransXChange) OriginStopPointRef(journeyPattern *JourneyPattern) *LocatedText {
	if journeyPattern == nil || len(journeyPattern.JourneyPatternSectionRefs) == 0 {
		return nil
	}

	section := doc.JourneyPatternSection(journeyPattern.JourneyPatternSectionRefs[0])
	if section == nil {
		return nil
	}

	link := section.FirstTimingLink()
	if link == nil {
		return nil
	}

	return link.From.StopPointRef
}

// DestinationStopPointRef is the To StopPointRef of the last timing link in the last section of the pattern
func (doc *TransXChange) DestinationStopPointRef(journeyPattern *JourneyPattern) *LocatedText {
	if journeyPattern == nil || len(journeyPattern.JourneyPatternSectionRefs) == 0 {
		return nil
	}

	section := doc.JourneyPatternSection(journeyPattern.JourneyPatternSectionRefs[len(journeyPattern.JourneyPatternSectionRefs)-1])
	if section == nil {
		return nil
	}

	link := section.LastTimingLink()
	if link == nil {
		return nil
	}

	return link.To.StopPointRef
}

// DestinationDisplays returns the DynamicDestinationDisplay values of the first section of the
// pattern, or the pattern's DestinationDisplay when there are none
func (doc *TransXChange) DestinationDisplays(journeyPattern *JourneyPattern) []*LocatedText {
	if journeyPattern == nil {
		return nil
	}

	displays := []*LocatedText{}

	if len(journeyPattern.JourneyPatternSectionRefs) > 0 {
		section := doc.JourneyPatternSection(journeyPattern.JourneyPatternSectionRefs[0])
		if section != nil {
			for _, link := range section.JourneyPatternTimingLinks {
				for _, display := range []*LocatedText{link.From.DynamicDestinationDisplay, link.To.DynamicDestinationDisplay} {
					if display != nil && !containsDisplay(displays, display.Text) {
						displays = append(displays, display)
					}
				}
			}
		}
	}

	if len(displays) == 0 && journeyPattern.DestinationDisplay != nil {
		displays = append(displays, journeyPattern.DestinationDisplay)
	}

	return displays
}

func containsDisplay(displays []*LocatedText, text string) bool {
	for _, display := range displays {
		if display.Text == text {
			return true
		}
	}

	return false
}
