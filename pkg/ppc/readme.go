package ppc

import (
	"fmt"
	"strings"
)

const readmeIntro = `
Bus Open Data Service AVL to Timetables data matching

AVL to Timetable data matching
The AVL to Timetable matching zip contains a series of CSVs which give machine-readable results of the
sampled AVL and Timetable data that currently reside in BODS.

The matching report only covers the primary data sources on BODS: timetables data in TransXChange format
and bus location data in SIRI-VM format. Fares data is not included.

Daily random samples of vehicle activities are collected for each published feed, matched against the
timetables and collated into a weekly report along with a weekly summary score. Not every packet of data
is checked.

Please work with your technology suppliers to provide the most accurate data so that data consumers and
your passengers can benefit.

The zipped CSVs matching report
-   avl_to_timetable_match_summary.csv: how well the sampled vehicle activities matched the timetables,
        broken down per matching field.
-   blockref.csv: missing or mismatched BlockRef values against the timetable Block number.
-   destinationref.csv: missing or mismatched DestinationRef values against the
        JourneyPatternTimingLink/To/StopPointRef of the timetable.
-   directionref.csv: missing or mismatched DirectionRef values against the Direction of the
        JourneyPattern in the timetable.
-   originref.csv: missing or mismatched OriginRef values against the
        JourneyPatternTimingLink/From/StopPointRef of the timetable.
-   all_siri_vm_analysed.csv: every vehicle activity collected and analysed.
-   uncountedvehicleactivities.csv: vehicle activities that were collected but could not be analysed
        because no single timetabled journey could be identified.

Field definitions:
`

const readmeOutro = `
Process
A single journey has to be identified in both the SIRI-VM and TransXChange data before any values are
compared. The SIRI-VM vehicle activity is the starting point.

Step 1
Use OperatorRef and LineRef to find the TransXChange files for the operator and line, keeping the files
whose OperatingPeriod contains the date of the vehicle activity. If none are found the activity is not analysed.

Step 2
Search those files for vehicle journeys whose TicketMachine/JourneyCode matches the DatedVehicleJourneyRef.
If none are found the activity is not analysed.

Step 3
Keep the journeys with an OperatingProfile that applies to the day of the week of the vehicle activity.
If none remain the activity is not analysed.

Step 4
Keep the journeys from the file with the highest RevisionNumber.

Step 5
If more than one journey remains, use the serviced organisation working days of the OperatingProfile.
If more than one journey still remains the activity is not analysed.

Step 6
With a single journey identified the remaining pairs of values are compared. Values must be an exact
match of text and formatting.

Step 7
The Direction comes from the JourneyPattern of the journey. The OriginRef is compared with the StopPointRef
in the From element of the first JourneyPatternSection of the JourneyPattern, and the DestinationRef with
the StopPointRef in the To element of the last JourneyPatternSection.
`

type fieldDefinition struct {
	name       string
	definition string
}

var summaryDefinitions = []fieldDefinition{
	{"SIRI field", "SIRI-VM fields with an equivalent field in the TransXChange data. Values must be an absolute match of text and formatting."},
	{"TXC match field", "TransXChange fields with an equivalent field in the SIRI-VM data."},
	{"Total vehicleActivities analysed", "The number of vehicle activities collected from a feed and matched to a timetable journey."},
	{"Total count of SIRI fields populated", "The number of analysed vehicle activities with the SIRI-VM field populated."},
	{"%populated", "Percentage of analysed vehicle activities with the SIRI-VM field populated."},
	{"Successful match with TXC", "The number of populated SIRI-VM fields that matched the equivalent timetable field."},
	{"%match", "Percentage of populated SIRI-VM fields that matched the equivalent timetable field."},
	{"Notes", "Additional details to help publishers and suppliers provide accurate data."},
}

var sharedStartDefinitions = []fieldDefinition{
	{"SD ResponseTimestamp", "Time the response element was created."},
	{"RecordedAtTime", "Time at which the vehicle data was recorded."},
	{"AVL data set name BODS", "The BODS name of the AVL data feed."},
	{"AVL data set ID BODS", "The BODS ID of the AVL data feed."},
	{"DatedVehicleJourneyRef in SIRI", "Identifier of the vehicle journey being run. This must equal the TicketMachine/JourneyCode in the timetable."},
	{"VehicleRef in SIRI", "Reference to the vehicle making the journey."},
	{"Timetable file name", "The name of the TransXChange file the journey was found in."},
	{"Timetable data set ID BODS", "The BODS ID of the timetable data set."},
	{"DepartureTime in TXC", "The departure time from the first stop of the journey."},
}

var sharedEndDefinitions = []fieldDefinition{
	{"SIRI XML line number", "The line of the SIRI-VM document the value was found on."},
	{"TransXChange XML line number", "The line of the TransXChange document the value was found on."},
	{"Error note", "What did not match, in plain English."},
}

var uncountedDefinitions = []fieldDefinition{
	{"SD ResponseTimestamp", "Time the response element was created."},
	{"AVL data set name BODS", "The BODS name of the AVL data feed containing the activity."},
	{"AVL data set ID BODS", "The BODS ID of the AVL data feed containing the activity."},
	{"OperatorRef", "The National Operator Code of the operator."},
	{"LineRef", "Name or number by which the line is known to the public."},
	{"RecordedAtTime", "Time at which the vehicle data was recorded."},
	{"DatedVehicleJourneyRef in SIRI", "Identifier of the vehicle journey being run."},
	{"Error note: Reason it could not be analysed against TXC", "Why no single timetabled journey could be identified, followed by the error codes."},
}

func categoryDefinitions(sirivm fieldDefinition, txc fieldDefinition) []fieldDefinition {
	definitions := append([]fieldDefinition{}, sharedStartDefinitions...)
	definitions = append(definitions, sirivm, txc)
	return append(definitions, sharedEndDefinitions...)
}

func siriAnalysedDefinitions() []fieldDefinition {
	definitions := []fieldDefinition{}
	for _, field := range StandardFields {
		definitions = append(definitions, fieldDefinition{string(field), "Siri VM standard field"})
	}
	return definitions
}

// Readme is the text of txt_file_read_me.txt
func Readme() string {
	sections := []struct {
		file        string
		definitions []fieldDefinition
	}{
		{SummaryFileName, summaryDefinitions},
		{BlockRefFileName, categoryDefinitions(
			fieldDefinition{"BlockRef in SIRI", "Block the vehicle is running in SIRI-VM."},
			fieldDefinition{"BlockNumber in TXC", "Block number the vehicle is running in the timetable."},
		)},
		{DestinationRefFileName, categoryDefinitions(
			fieldDefinition{"DestinationRef in SIRI", "NaPTAN ATCO code of the destination of the journey."},
			fieldDefinition{"StopPointRef in TXC", "JourneyPatternTimingLink/To/StopPointRef of the last section of the journey pattern."},
		)},
		{DirectionRefFileName, categoryDefinitions(
			fieldDefinition{"DirectionRef in SIRI", "Direction of the journey."},
			fieldDefinition{"Direction from JourneyPattern in TXC", "Direction of the journey pattern in the timetable."},
		)},
		{OriginRefFileName, categoryDefinitions(
			fieldDefinition{"OriginRef in SIRI", "NaPTAN ATCO code of the origin of the journey."},
			fieldDefinition{"StopPointRef in TXC", "JourneyPatternTimingLink/From/StopPointRef of the first section of the journey pattern."},
		)},
		{SiriAnalysedFileName, siriAnalysedDefinitions()},
		{UncountedFileName, uncountedDefinitions},
	}

	var readme strings.Builder
	readme.WriteString(readmeIntro)

	for _, section := range sections {
		fmt.Fprintf(&readme, "\n%s\n%-45sDefinition\n", section.file, "Field name")
		for _, definition := range section.definitions {
			fmt.Fprintf(&readme, "%-45s%s\n", definition.name, definition.definition)
		}
	}

	readme.WriteString(readmeOutro)

	return readme.String()
}
