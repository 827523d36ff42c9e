package transxchange

type VehicleJourney struct {
	SequenceNumber string `xml:",attr"`

	PrivateCode        string
	OperatorRef        string
	VehicleJourneyCode string
	ServiceRef         string
	LineRef            string
	JourneyPatternRef  string
	DepartureTime      string

	Operational *Operational

	OperatingProfile *OperatingProfile
}

type Operational struct {
	TicketMachine *TicketMachine
	Block         *Block
}

type TicketMachine struct {
	JourneyCode string
}

type Block struct {
	Description string
	BlockNumber *LocatedText
}

// JourneyCode returns Operational/TicketMachine/JourneyCode, empty when absent
func (v *VehicleJourney) JourneyCode() string {
	if v.Operational == nil || v.Operational.TicketMachine == nil {
		return ""
	}

	return v.Operational.TicketMachine.JourneyCode
}

// BlockNumber returns Operational/Block/BlockNumber or nil
func (v *VehicleJourney) BlockNumber() *LocatedText {
	if v.Operational == nil || v.Operational.Block == nil {
		return nil
	}

	return v.Operational.Block.BlockNumber
}
