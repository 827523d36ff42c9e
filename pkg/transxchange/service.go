package transxchange

type Service struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	ServiceCode           string
	PrivateCode           string
	RegisteredOperatorRef string
	StartDate             string `xml:"OperatingPeriod>StartDate"`
	EndDate               string `xml:"OperatingPeriod>EndDate"`

	OperatingProfile *OperatingProfile

	Lines []Line `xml:"Lines>Line"`

	Origin      string `xml:"StandardService>Origin"`
	Destination string `xml:"StandardService>Destination"`

	JourneyPatterns []JourneyPattern `xml:"StandardService>JourneyPattern"`
}

type Line struct {
	ID       string `xml:"id,attr"`
	LineName LocatedText
}

type JourneyPattern struct {
	ID string `xml:"id,attr"`

	DestinationDisplay        *LocatedText
	OperatorRef               string
	Direction                 *LocatedText
	RouteRef                  string
	JourneyPatternSectionRefs []string `xml:"JourneyPatternSectionRefs"`
}

// Line returns the line with the given id
func (s *Service) Line(id string) *Line {
	for i := range s.Lines {
		if s.Lines[i].ID == id {
			return &s.Lines[i]
		}
	}

	return nil
}

func (s *Service) JourneyPattern(id string) *JourneyPattern {
	for i := range s.JourneyPatterns {
		if s.JourneyPatterns[i].ID == id {
			return &s.JourneyPatterns[i]
		}
	}

	return nil
}

// HasLineName reports whether any line of the service is published under name
func (s *Service) HasLineName(name string) bool {
	for _, line := range s.Lines {
		if line.LineName.Text == name {
			return true
		}
	}

	return false
}
