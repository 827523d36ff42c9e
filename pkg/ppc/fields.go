package ppc

type SirivmField string

const (
	FieldVersion                  SirivmField = "Version"
	FieldResponseTimestampSD      SirivmField = "ResponseTimestamp (ServiceDelivery)"
	FieldProducerRef              SirivmField = "ProducerRef"
	FieldResponseTimestampVMD     SirivmField = "ResponseTimestamp (VehicleMonitoringDelivery)"
	FieldRequestMessageRef        SirivmField = "RequestMessageRef"
	FieldValidUntil               SirivmField = "ValidUntil"
	FieldShortestPossibleCycle    SirivmField = "ShortestPossibleCycle"
	FieldRecordedAtTime           SirivmField = "RecordedAtTime"
	FieldItemIdentifier           SirivmField = "ItemIdentifier"
	FieldValidUntilTime           SirivmField = "ValidUntilTime"
	FieldLineRef                  SirivmField = "LineRef"
	FieldDirectionRef             SirivmField = "DirectionRef"
	FieldDataFrameRef             SirivmField = "DataFrameRef"
	FieldDatedVehicleJourneyRef   SirivmField = "DatedVehicleJourneyRef"
	FieldPublishedLineName        SirivmField = "PublishedLineName"
	FieldOperatorRef              SirivmField = "OperatorRef"
	FieldOriginRef                SirivmField = "OriginRef"
	FieldOriginName               SirivmField = "OriginName"
	FieldDestinationRef           SirivmField = "DestinationRef"
	FieldDestinationName          SirivmField = "DestinationName"
	FieldOriginAimedDepartureTime SirivmField = "OriginAimedDepartureTime"
	FieldLongitude                SirivmField = "Longitude"
	FieldLatitude                 SirivmField = "Latitude"
	FieldBearing                  SirivmField = "Bearing"
	FieldVehicleRef               SirivmField = "VehicleRef"
	FieldBlockRef                 SirivmField = "BlockRef"
	FieldDriverRef                SirivmField = "DriverRef"
)

// StandardFields is every tracked field in the column order of all_siri_vm_analysed.csv
var StandardFields = []SirivmField{
	FieldVersion,
	FieldResponseTimestampSD,
	FieldProducerRef,
	FieldResponseTimestampVMD,
	FieldRequestMessageRef,
	FieldValidUntil,
	FieldShortestPossibleCycle,
	FieldRecordedAtTime,
	FieldItemIdentifier,
	FieldValidUntilTime,
	FieldLineRef,
	FieldDirectionRef,
	FieldDataFrameRef,
	FieldDatedVehicleJourneyRef,
	FieldPublishedLineName,
	FieldOperatorRef,
	FieldOriginRef,
	FieldOriginName,
	FieldDestinationRef,
	FieldDestinationName,
	FieldOriginAimedDepartureTime,
	FieldLongitude,
	FieldLatitude,
	FieldBearing,
	FieldVehicleRef,
	FieldBlockRef,
	FieldDriverRef,
}

// SirivmToTXC names the TransXChange element each cross referenced SIRI-VM field is compared with
var SirivmToTXC = map[SirivmField]string{
	FieldOperatorRef:            "NationalOperatorCode",
	FieldLineRef:                "LineName",
	FieldDatedVehicleJourneyRef: "TicketMachine/JourneyCode",
	FieldDirectionRef:           "Direction",
	FieldBlockRef:               "Operational/Block/BlockNumber",
	FieldPublishedLineName:      "LineName",
	FieldOriginRef:              "StopPointRef",
	FieldDestinationRef:         "StopPointRef",
	FieldDestinationName:        "DynamicDestinationDisplay",
}

// MatchedFields is the order cross referenced fields appear in the daily summary
var MatchedFields = []SirivmField{
	FieldOperatorRef,
	FieldLineRef,
	FieldDatedVehicleJourneyRef,
	FieldDirectionRef,
	FieldBlockRef,
	FieldPublishedLineName,
	FieldOriginRef,
	FieldDestinationRef,
	FieldDestinationName,
}

type Category string

const (
	CategoryGeneral           Category = "General"
	CategoryDirection         Category = "DirectionRef"
	CategoryOrigin            Category = "OriginRef"
	CategoryDestination       Category = "DestinationRef"
	CategoryBlock             Category = "BlockRef"
	CategoryPublishedLineName Category = "PublishedLineName"
	CategoryDestinationName   Category = "DestinationName"
)

// ReportedCategories have their own mismatch sheet in the reports
var ReportedCategories = []Category{
	CategoryDirection,
	CategoryDestination,
	CategoryOrigin,
	CategoryBlock,
}

var categoryFields = map[Category]SirivmField{
	CategoryDirection:         FieldDirectionRef,
	CategoryOrigin:            FieldOriginRef,
	CategoryDestination:       FieldDestinationRef,
	CategoryBlock:             FieldBlockRef,
	CategoryPublishedLineName: FieldPublishedLineName,
	CategoryDestinationName:   FieldDestinationName,
}

// Field returns the SIRI-VM field a category compares, empty for CategoryGeneral
func (c Category) Field() SirivmField {
	return categoryFields[c]
}

type MiscField string

const (
	MiscFeedID           MiscField = "AVL data set ID BODS"
	MiscFeedName         MiscField = "AVL data set name BODS"
	MiscDatasetID        MiscField = "Timetable data set ID BODS"
	MiscTXCFileName      MiscField = "Timetable file name"
	MiscTXCRevision      MiscField = "Timetable revision number"
	MiscTXCDepartureTime MiscField = "DepartureTime in TXC"
)

const blockRefNotes = "Enforcement agency may consider this data as a mandatory field if you are " +
	"technologically enabled to generate it. Please work with your suppliers to ensure it is provided accurately"

const completelyMatchedField = "Completely matched ALL elements with timetable data (excluding BlockRef)"
