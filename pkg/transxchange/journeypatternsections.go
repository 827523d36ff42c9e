package transxchange

type JourneyPatternSection struct {
	ID string `xml:"id,attr"`

	JourneyPatternTimingLinks []JourneyPatternTimingLink `xml:"JourneyPatternTimingLink"`
}

type JourneyPatternTimingLink struct {
	ID string `xml:"id,attr"`

	RouteLinkRef string
	RunTime      string

	From JourneyPatternTimingLinkPoint
	To   JourneyPatternTimingLinkPoint
}

type JourneyPatternTimingLinkPoint struct {
	ID             string `xml:"id,attr"`
	SequenceNumber string `xml:",attr"`

	Activity                  string
	DynamicDestinationDisplay *LocatedText
	StopPointRef              *LocatedText
	TimingStatus              string
}

func (s *JourneyPatternSection) FirstTimingLink() *JourneyPatternTimingLink {
	if len(s.JourneyPatternTimingLinks) == 0 {
		return nil
	}

	return &s.JourneyPatternTimingLinks[0]
}

func (s *JourneyPatternSection) LastTimingLink() *JourneyPatternTimingLink {
	if len(s.JourneyPatternTimingLinks) == 0 {
		return nil
	}

	return &s.JourneyPatternTimingLinks[len(s.JourneyPatternTimingLinks)-1]
}
