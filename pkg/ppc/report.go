package ppc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/travigo/dataquality/pkg/dataquality"
	"github.com/travigo/dataquality/pkg/util"
)

type Feed struct {
	ID   int    `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

type SummaryRow struct {
	SirivmField      string `csv:"SIRI field" json:"siri_field" bson:"siri_field"`
	TXCField         string `csv:"TXC match field" json:"txc_field" bson:"txc_field"`
	TotalAnalysed    int    `csv:"Total vehicleActivities analysed" json:"total_analysed" bson:"total_analysed"`
	TotalPopulated   int    `csv:"Total count of SIRI fields populated" json:"total_populated" bson:"total_populated"`
	PercentPopulated string `csv:"%populated" json:"percent_populated" bson:"percent_populated"`
	Matched          int    `csv:"Successful match with TXC" json:"matched" bson:"matched"`
	PercentMatched   string `csv:"%match" json:"percent_matched" bson:"percent_matched"`
	Notes            string `csv:"Notes" json:"notes" bson:"notes"`
}

type SiriAnalysedRow struct {
	Version                  string `csv:"Version" json:"version" bson:"version"`
	ResponseTimestampSD      string `csv:"ResponseTimestamp (ServiceDelivery)" json:"response_timestamp_sd" bson:"response_timestamp_sd"`
	ProducerRef              string `csv:"ProducerRef" json:"producer_ref" bson:"producer_ref"`
	ResponseTimestampVMD     string `csv:"ResponseTimestamp (VehicleMonitoringDelivery)" json:"response_timestamp_vmd" bson:"response_timestamp_vmd"`
	RequestMessageRef        string `csv:"RequestMessageRef" json:"request_message_ref" bson:"request_message_ref"`
	ValidUntil               string `csv:"ValidUntil" json:"valid_until" bson:"valid_until"`
	ShortestPossibleCycle    string `csv:"ShortestPossibleCycle" json:"shortest_possible_cycle" bson:"shortest_possible_cycle"`
	RecordedAtTime           string `csv:"RecordedAtTime" json:"recorded_at_time" bson:"recorded_at_time"`
	ItemIdentifier           string `csv:"ItemIdentifier" json:"item_identifier" bson:"item_identifier"`
	ValidUntilTime           string `csv:"ValidUntilTime" json:"valid_until_time" bson:"valid_until_time"`
	LineRef                  string `csv:"LineRef" json:"line_ref" bson:"line_ref"`
	DirectionRef             string `csv:"DirectionRef" json:"direction_ref" bson:"direction_ref"`
	DataFrameRef             string `csv:"DataFrameRef" json:"data_frame_ref" bson:"data_frame_ref"`
	DatedVehicleJourneyRef   string `csv:"DatedVehicleJourneyRef" json:"dated_vehicle_journey_ref" bson:"dated_vehicle_journey_ref"`
	PublishedLineName        string `csv:"PublishedLineName" json:"published_line_name" bson:"published_line_name"`
	OperatorRef              string `csv:"OperatorRef" json:"operator_ref" bson:"operator_ref"`
	OriginRef                string `csv:"OriginRef" json:"origin_ref" bson:"origin_ref"`
	OriginName               string `csv:"OriginName" json:"origin_name" bson:"origin_name"`
	DestinationRef           string `csv:"DestinationRef" json:"destination_ref" bson:"destination_ref"`
	DestinationName          string `csv:"DestinationName" json:"destination_name" bson:"destination_name"`
	OriginAimedDepartureTime string `csv:"OriginAimedDepartureTime" json:"origin_aimed_departure_time" bson:"origin_aimed_departure_time"`
	Longitude                string `csv:"Longitude" json:"longitude" bson:"longitude"`
	Latitude                 string `csv:"Latitude" json:"latitude" bson:"latitude"`
	Bearing                  string `csv:"Bearing" json:"bearing" bson:"bearing"`
	VehicleRef               string `csv:"VehicleRef" json:"vehicle_ref" bson:"vehicle_ref"`
	BlockRef                 string `csv:"BlockRef" json:"block_ref" bson:"block_ref"`
	DriverRef                string `csv:"DriverRef" json:"driver_ref" bson:"driver_ref"`
}

type UncountedRow struct {
	ResponseTimestamp      string `csv:"SD ResponseTimestamp" json:"response_timestamp" bson:"response_timestamp"`
	FeedName               string `csv:"AVL data set name BODS" json:"feed_name" bson:"feed_name"`
	FeedID                 string `csv:"AVL data set ID BODS" json:"feed_id" bson:"feed_id"`
	OperatorRef            string `csv:"OperatorRef" json:"operator_ref" bson:"operator_ref"`
	LineRef                string `csv:"LineRef" json:"line_ref" bson:"line_ref"`
	RecordedAtTime         string `csv:"RecordedAtTime" json:"recorded_at_time" bson:"recorded_at_time"`
	DatedVehicleJourneyRef string `csv:"DatedVehicleJourneyRef in SIRI" json:"dated_vehicle_journey_ref" bson:"dated_vehicle_journey_ref"`
	ErrorNote              string `csv:"Error note: Reason it could not be analysed against TXC" json:"error_note" bson:"error_note"`
}

// CategoryRowStart are the leading columns shared by every category sheet
type CategoryRowStart struct {
	ResponseTimestamp      string `csv:"SD ResponseTimestamp" json:"response_timestamp" bson:"response_timestamp"`
	RecordedAtTime         string `csv:"RecordedAtTime" json:"recorded_at_time" bson:"recorded_at_time"`
	FeedName               string `csv:"AVL data set name BODS" json:"feed_name" bson:"feed_name"`
	FeedID                 string `csv:"AVL data set ID BODS" json:"feed_id" bson:"feed_id"`
	DatedVehicleJourneyRef string `csv:"DatedVehicleJourneyRef in SIRI" json:"dated_vehicle_journey_ref" bson:"dated_vehicle_journey_ref"`
	VehicleRef             string `csv:"VehicleRef in SIRI" json:"vehicle_ref" bson:"vehicle_ref"`
	TimetableFileName      string `csv:"Timetable file name" json:"timetable_file_name" bson:"timetable_file_name"`
	TimetableDatasetID     string `csv:"Timetable data set ID BODS" json:"timetable_dataset_id" bson:"timetable_dataset_id"`
	DepartureTime          string `csv:"DepartureTime in TXC" json:"departure_time" bson:"departure_time"`
}

// CategoryRowEnd are the trailing columns shared by every category sheet
type CategoryRowEnd struct {
	SirivmLineNumber string `csv:"SIRI XML line number" json:"sirivm_line_number" bson:"sirivm_line_number"`
	TXCLineNumber    string `csv:"TransXChange XML line number" json:"txc_line_number" bson:"txc_line_number"`
	ErrorNote        string `csv:"Error note" json:"error_note" bson:"error_note"`
}

// CategoryRow is a mismatch of one compared pair. The category sheets rename the pair columns.
type CategoryRow struct {
	CategoryRowStart `bson:",inline"`
	SirivmValue      string `json:"sirivm_value" bson:"sirivm_value"`
	TXCValue         string `json:"txc_value" bson:"txc_value"`
	CategoryRowEnd   `bson:",inline"`
}

type DailyReport struct {
	Feed Feed      `json:"feed" bson:"feed"`
	Date time.Time `json:"date" bson:"date"`

	VehicleActivitiesAnalysed           int `json:"vehicle_activities_analysed" bson:"vehicle_activities_analysed"`
	VehicleActivitiesCompletelyMatching int `json:"vehicle_activities_completely_matching" bson:"vehicle_activities_completely_matching"`

	Summary         []SummaryRow               `json:"summary" bson:"summary"`
	AllSiriAnalysed []SiriAnalysedRow          `json:"all_siri_analysed" bson:"all_siri_analysed"`
	Uncounted       []UncountedRow             `json:"uncounted" bson:"uncounted"`
	Categories      map[Category][]CategoryRow `json:"categories" bson:"categories"`
}

// NewDailyReport compiles the results of a day's checks. Only activities matched to a
// timetable journey count towards the summary.
func NewDailyReport(feed Feed, date time.Time, results []*ValidationResult) *DailyReport {
	report := &DailyReport{
		Feed:            feed,
		Date:            util.TruncateToDate(date),
		AllSiriAnalysed: []SiriAnalysedRow{},
		Uncounted:       []UncountedRow{},
		Categories:      map[Category][]CategoryRow{},
	}
	for _, category := range ReportedCategories {
		report.Categories[category] = []CategoryRow{}
	}

	matched := []*ValidationResult{}
	for _, result := range results {
		report.AllSiriAnalysed = append(report.AllSiriAnalysed, siriAnalysedRow(result))

		if !result.JourneyMatched() {
			report.Uncounted = append(report.Uncounted, uncountedRow(result))
			continue
		}

		matched = append(matched, result)
		for _, category := range ReportedCategories {
			if !result.Matches(category.Field()) {
				report.Categories[category] = append(report.Categories[category], categoryRow(result, category))
			}
		}
	}

	report.VehicleActivitiesAnalysed = len(matched)
	report.Summary = summaryRows(matched)

	for _, result := range matched {
		if completelyMatched(result) {
			report.VehicleActivitiesCompletelyMatching++
		}
	}

	return report
}

func summaryRows(results []*ValidationResult) []SummaryRow {
	rows := []SummaryRow{}

	for _, field := range MatchedFields {
		row := SummaryRow{
			SirivmField:   string(field),
			TXCField:      SirivmToTXC[field],
			TotalAnalysed: len(results),
		}

		for _, result := range results {
			if result.SirivmValue(field) == nil {
				continue
			}

			row.TotalPopulated++
			if result.Matches(field) {
				row.Matched++
			}
		}

		row.PercentPopulated, row.PercentMatched = percentages(row.TotalAnalysed, row.TotalPopulated, row.Matched)
		if field == FieldBlockRef {
			row.Notes = blockRefNotes
		}

		rows = append(rows, row)
	}

	return rows
}

// percentages returns %populated of the analysed activities and %match of the populated fields
func percentages(analysed int, populated int, matched int) (string, string) {
	if analysed == 0 {
		return "-", "-"
	}

	percentMatched := dataquality.FormatPercentage(0)
	if populated > 0 {
		percentMatched = dataquality.FormatPercentage(float64(matched) / float64(populated))
	}

	return dataquality.FormatPercentage(float64(populated) / float64(analysed)), percentMatched
}

// completelyMatched is every cross referenced field except BlockRef matching the timetable
func completelyMatched(result *ValidationResult) bool {
	for _, field := range MatchedFields {
		if field == FieldBlockRef {
			continue
		}

		if !result.Matches(field) {
			return false
		}
	}

	return true
}

func siriAnalysedRow(result *ValidationResult) SiriAnalysedRow {
	value := func(field SirivmField) string {
		return prettyPrint(result.SirivmValue(field))
	}

	return SiriAnalysedRow{
		Version:                  value(FieldVersion),
		ResponseTimestampSD:      value(FieldResponseTimestampSD),
		ProducerRef:              value(FieldProducerRef),
		ResponseTimestampVMD:     value(FieldResponseTimestampVMD),
		RequestMessageRef:        value(FieldRequestMessageRef),
		ValidUntil:               value(FieldValidUntil),
		ShortestPossibleCycle:    value(FieldShortestPossibleCycle),
		RecordedAtTime:           value(FieldRecordedAtTime),
		ItemIdentifier:           value(FieldItemIdentifier),
		ValidUntilTime:           value(FieldValidUntilTime),
		LineRef:                  value(FieldLineRef),
		DirectionRef:             value(FieldDirectionRef),
		DataFrameRef:             value(FieldDataFrameRef),
		DatedVehicleJourneyRef:   value(FieldDatedVehicleJourneyRef),
		PublishedLineName:        value(FieldPublishedLineName),
		OperatorRef:              value(FieldOperatorRef),
		OriginRef:                value(FieldOriginRef),
		OriginName:               value(FieldOriginName),
		DestinationRef:           value(FieldDestinationRef),
		DestinationName:          value(FieldDestinationName),
		OriginAimedDepartureTime: value(FieldOriginAimedDepartureTime),
		Longitude:                value(FieldLongitude),
		Latitude:                 value(FieldLatitude),
		Bearing:                  value(FieldBearing),
		VehicleRef:               value(FieldVehicleRef),
		BlockRef:                 value(FieldBlockRef),
		DriverRef:                value(FieldDriverRef),
	}
}

func uncountedRow(result *ValidationResult) UncountedRow {
	errorNote := strings.Join(result.Errors(CategoryGeneral), "\n")

	codes := []string{}
	for _, code := range result.ErrorCodes() {
		codes = append(codes, string(code))
	}
	if len(codes) > 0 {
		errorNote = fmt.Sprintf("%s [%s]", errorNote, strings.Join(codes, " "))
	}

	return UncountedRow{
		ResponseTimestamp:      prettyPrint(result.SirivmValue(FieldResponseTimestampSD)),
		FeedName:               prettyPrint(result.Misc(MiscFeedName)),
		FeedID:                 prettyPrint(result.Misc(MiscFeedID)),
		OperatorRef:            prettyPrint(result.SirivmValue(FieldOperatorRef)),
		LineRef:                prettyPrint(result.SirivmValue(FieldLineRef)),
		RecordedAtTime:         prettyPrint(result.SirivmValue(FieldRecordedAtTime)),
		DatedVehicleJourneyRef: prettyPrint(result.SirivmValue(FieldDatedVehicleJourneyRef)),
		ErrorNote:              errorNote,
	}
}

func categoryRow(result *ValidationResult, category Category) CategoryRow {
	field := category.Field()

	return CategoryRow{
		CategoryRowStart: CategoryRowStart{
			ResponseTimestamp:      prettyPrint(result.SirivmValue(FieldResponseTimestampSD)),
			RecordedAtTime:         prettyPrint(result.SirivmValue(FieldRecordedAtTime)),
			FeedName:               prettyPrint(result.Misc(MiscFeedName)),
			FeedID:                 prettyPrint(result.Misc(MiscFeedID)),
			DatedVehicleJourneyRef: prettyPrint(result.SirivmValue(FieldDatedVehicleJourneyRef)),
			VehicleRef:             prettyPrint(result.SirivmValue(FieldVehicleRef)),
			TimetableFileName:      prettyPrint(result.Misc(MiscTXCFileName)),
			TimetableDatasetID:     prettyPrint(result.Misc(MiscDatasetID)),
			DepartureTime:          prettyPrint(result.Misc(MiscTXCDepartureTime)),
		},
		SirivmValue: prettyPrint(result.SirivmValue(field)),
		TXCValue:    prettyPrint(result.TXCValue(field)),
		CategoryRowEnd: CategoryRowEnd{
			SirivmLineNumber: prettyPrint(result.SirivmLineNumber(field)),
			TXCLineNumber:    prettyPrint(result.TXCLineNumber(field)),
			ErrorNote:        strings.Join(result.Errors(category), "\n"),
		},
	}
}

const isoDateTimeFormat = "2006-01-02T15:04:05.999999-07:00"

// prettyPrint renders a report cell, "-" for absent values
func prettyPrint(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case time.Time:
		return v.Format(isoDateTimeFormat)
	case string:
		return v
	case *string:
		if v == nil {
			return "-"
		}
		return *v
	case int:
		return strconv.Itoa(v)
	case *int:
		if v == nil {
			return "-"
		}
		return strconv.Itoa(*v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
