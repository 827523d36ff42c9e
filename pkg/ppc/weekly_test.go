package ppc

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyReport(t *testing.T, day int, activities int) *DailyReport {
	t.Helper()

	results := []*ValidationResult{}
	for i := 0; i < activities; i++ {
		result := matchedResult(FieldOperatorRef, FieldLineRef, FieldDatedVehicleJourneyRef, FieldPublishedLineName,
			FieldOriginRef, FieldDestinationRef, FieldDestinationName, FieldBlockRef)
		result.SetSirivmValue(FieldDirectionRef, "OUTBOUND", nil)
		result.SetTXCValue(FieldDirectionRef, "outbound", nil)
		result.AddError(CategoryDirection, directionNotes.mismatch)
		result.SetMisc(MiscFeedID, testFeed.ID)
		result.SetSirivmValue(FieldVehicleRef, "SCGH-15717", nil)

		results = append(results, result)
	}

	uncounted := NewValidationResult()
	uncounted.AddError(CategoryGeneral, string(ReasonDatedVehicleJourneyMissing))
	uncounted.AddErrorCode(CodeJourneyCode)
	results = append(results, uncounted)

	return NewDailyReport(testFeed, time.Date(2023, 3, day, 10, 0, 0, 0, time.UTC), results)
}

func TestAggregateWeekly(t *testing.T) {
	reports := []*DailyReport{
		dailyReport(t, 8, 3),
		dailyReport(t, 6, 1),
		dailyReport(t, 7, 0),
	}

	weekly := AggregateWeekly(reports)

	assert.Equal(t, testFeed.ID, weekly.FeedID)
	assert.Equal(t, time.Date(2023, 3, 6, 0, 0, 0, 0, time.UTC), weekly.Start)
	assert.Equal(t, time.Date(2023, 3, 8, 0, 0, 0, 0, time.UTC), weekly.End)
	assert.Equal(t, 4, weekly.VehicleActivitiesAnalysed)
	assert.Equal(t, 0, weekly.VehicleActivitiesCompletelyMatching)

	assert.Len(t, weekly.AllSiriAnalysed, 7)
	assert.Len(t, weekly.Uncounted, 3)
	assert.Len(t, weekly.Categories[CategoryDirection], 4)
	assert.Empty(t, weekly.Categories[CategoryBlock])

	require.Len(t, weekly.Summary, len(weeklySummaryFields)+1)
	for i, field := range weeklySummaryFields {
		assert.Equal(t, string(field), weekly.Summary[i].SirivmField)
		assert.Equal(t, "4", weekly.Summary[i].TotalAnalysed)
		assert.Equal(t, "4", weekly.Summary[i].TotalPopulated)
	}

	direction := weekly.Summary[2]
	assert.Equal(t, string(FieldDirectionRef), direction.SirivmField)
	assert.Equal(t, "0", direction.Matched)
	assert.Equal(t, "0%", direction.PercentMatched)
	assert.Equal(t, "100%", weekly.Summary[1].PercentMatched)
	assert.Equal(t, blockRefNotes, weekly.Summary[3].Notes)

	assert.Equal(t, WeeklySummaryRow{
		SirivmField:      completelyMatchedField,
		TXCField:         "-",
		TotalAnalysed:    "4",
		TotalPopulated:   "-",
		PercentPopulated: "-",
		Matched:          "0",
		PercentMatched:   "0%",
	}, weekly.Summary[len(weekly.Summary)-1])
}

func TestAggregateWeeklyEmpty(t *testing.T) {
	weekly := AggregateWeekly(nil)

	assert.Equal(t, 0, weekly.VehicleActivitiesAnalysed)
	require.Len(t, weekly.Summary, len(weeklySummaryFields)+1)
	for _, row := range weekly.Summary {
		assert.Equal(t, "-", row.PercentMatched)
	}
}

func TestWeeklyReportWriteZip(t *testing.T) {
	weekly := AggregateWeekly([]*DailyReport{dailyReport(t, 6, 2)})

	var buffer bytes.Buffer
	require.NoError(t, weekly.WriteZip(&buffer))

	archive, err := zip.NewReader(bytes.NewReader(buffer.Bytes()), int64(buffer.Len()))
	require.NoError(t, err)

	files := map[string]*zip.File{}
	names := []string{}
	for _, file := range archive.File {
		files[file.Name] = file
		names = append(names, file.Name)
	}
	assert.Equal(t, []string{
		SummaryFileName,
		SiriAnalysedFileName,
		UncountedFileName,
		DirectionRefFileName,
		DestinationRefFileName,
		OriginRefFileName,
		BlockRefFileName,
		ReadmeFileName,
	}, names)

	readFile := func(name string) string {
		reader, err := files[name].Open()
		require.NoError(t, err)
		defer reader.Close()

		content, err := io.ReadAll(reader)
		require.NoError(t, err)

		return string(content)
	}

	directionCSV := readFile(DirectionRefFileName)
	header := strings.SplitN(directionCSV, "\n", 2)[0]
	assert.Equal(t, "SD ResponseTimestamp,RecordedAtTime,AVL data set name BODS,AVL data set ID BODS,"+
		"DatedVehicleJourneyRef in SIRI,VehicleRef in SIRI,Timetable file name,Timetable data set ID BODS,"+
		"DepartureTime in TXC,DirectionRef in SIRI,Direction from JourneyPattern in TXC,"+
		"SIRI XML line number,TransXChange XML line number,Error note", header)

	directionRows := []*DirectionRefRow{}
	require.NoError(t, gocsv.UnmarshalString(directionCSV, &directionRows))
	require.Len(t, directionRows, 2)
	assert.Equal(t, "OUTBOUND", directionRows[0].SirivmValue)
	assert.Equal(t, "outbound", directionRows[0].TXCValue)
	assert.Equal(t, "SCGH-15717", directionRows[0].VehicleRef)
	assert.Equal(t, "42", directionRows[0].FeedID)
	assert.Equal(t, directionNotes.mismatch, directionRows[0].ErrorNote)

	summaryRows := []*WeeklySummaryRow{}
	require.NoError(t, gocsv.UnmarshalString(readFile(SummaryFileName), &summaryRows))
	require.Len(t, summaryRows, len(weeklySummaryFields)+1)
	assert.Equal(t, completelyMatchedField, summaryRows[len(summaryRows)-1].SirivmField)

	uncountedRows := []*UncountedRow{}
	require.NoError(t, gocsv.UnmarshalString(readFile(UncountedFileName), &uncountedRows))
	require.Len(t, uncountedRows, 1)
	assert.Equal(t, string(ReasonDatedVehicleJourneyMissing)+" [3.1]", uncountedRows[0].ErrorNote)

	assert.Equal(t, Readme(), readFile(ReadmeFileName))
}
