package ppc

import (
	"archive/zip"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/jinzhu/copier"
	"github.com/travigo/dataquality/pkg/dataquality"
)

const (
	SummaryFileName        = "avl_to_timetable_match_summary.csv"
	SiriAnalysedFileName   = "all_siri_vm_analysed.csv"
	UncountedFileName      = "uncountedvehicleactivities.csv"
	DirectionRefFileName   = "directionref.csv"
	DestinationRefFileName = "destinationref.csv"
	OriginRefFileName      = "originref.csv"
	BlockRefFileName       = "blockref.csv"
	ReadmeFileName         = "txt_file_read_me.txt"
)

// weeklySummaryFields is the row order of the weekly summary. LineRef always matches
// once a journey is found so it is left out.
var weeklySummaryFields = []SirivmField{
	FieldOperatorRef,
	FieldDatedVehicleJourneyRef,
	FieldDirectionRef,
	FieldBlockRef,
	FieldPublishedLineName,
	FieldOriginRef,
	FieldDestinationRef,
	FieldDestinationName,
}

type WeeklySummaryRow struct {
	SirivmField      string `csv:"SIRI field" json:"siri_field"`
	TXCField         string `csv:"TXC match field" json:"txc_field"`
	TotalAnalysed    string `csv:"Total vehicleActivities analysed" json:"total_analysed"`
	TotalPopulated   string `csv:"Total count of SIRI fields populated" json:"total_populated"`
	PercentPopulated string `csv:"%populated" json:"percent_populated"`
	Matched          string `csv:"Successful match with TXC" json:"matched"`
	PercentMatched   string `csv:"%match" json:"percent_matched"`
	Notes            string `csv:"Notes" json:"notes"`
}

type DirectionRefRow struct {
	CategoryRowStart
	SirivmValue string `csv:"DirectionRef in SIRI"`
	TXCValue    string `csv:"Direction from JourneyPattern in TXC"`
	CategoryRowEnd
}

type DestinationRefRow struct {
	CategoryRowStart
	SirivmValue string `csv:"DestinationRef in SIRI"`
	TXCValue    string `csv:"StopPointRef in TXC"`
	CategoryRowEnd
}

type OriginRefRow struct {
	CategoryRowStart
	SirivmValue string `csv:"OriginRef in SIRI"`
	TXCValue    string `csv:"StopPointRef in TXC"`
	CategoryRowEnd
}

type BlockRefRow struct {
	CategoryRowStart
	SirivmValue string `csv:"BlockRef in SIRI"`
	TXCValue    string `csv:"BlockNumber in TXC"`
	CategoryRowEnd
}

type WeeklyReport struct {
	FeedID int       `json:"feed_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`

	VehicleActivitiesAnalysed           int `json:"vehicle_activities_analysed"`
	VehicleActivitiesCompletelyMatching int `json:"vehicle_activities_completely_matching"`

	Summary         []WeeklySummaryRow         `json:"summary"`
	AllSiriAnalysed []SiriAnalysedRow          `json:"all_siri_analysed"`
	Uncounted       []UncountedRow             `json:"uncounted"`
	Categories      map[Category][]CategoryRow `json:"categories"`
}

type fieldTotals struct {
	analysed  int
	populated int
	matched   int
}

// AggregateWeekly combines daily reports into a single weekly report ordered by day
func AggregateWeekly(reports []*DailyReport) *WeeklyReport {
	sorted := make([]*DailyReport, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	weekly := &WeeklyReport{
		AllSiriAnalysed: []SiriAnalysedRow{},
		Uncounted:       []UncountedRow{},
		Categories:      map[Category][]CategoryRow{},
	}
	for _, category := range ReportedCategories {
		weekly.Categories[category] = []CategoryRow{}
	}

	totals := map[string]*fieldTotals{}
	for _, field := range weeklySummaryFields {
		totals[string(field)] = &fieldTotals{}
	}

	for i, report := range sorted {
		if i == 0 {
			weekly.FeedID = report.Feed.ID
			weekly.Start = report.Date
		}
		weekly.End = report.Date

		weekly.VehicleActivitiesAnalysed += report.VehicleActivitiesAnalysed
		weekly.VehicleActivitiesCompletelyMatching += report.VehicleActivitiesCompletelyMatching

		for _, row := range report.Summary {
			total, tracked := totals[row.SirivmField]
			if !tracked {
				continue
			}

			total.analysed += row.TotalAnalysed
			total.populated += row.TotalPopulated
			total.matched += row.Matched
		}

		weekly.AllSiriAnalysed = append(weekly.AllSiriAnalysed, report.AllSiriAnalysed...)
		weekly.Uncounted = append(weekly.Uncounted, report.Uncounted...)
		for _, category := range ReportedCategories {
			weekly.Categories[category] = append(weekly.Categories[category], report.Categories[category]...)
		}
	}

	for _, field := range weeklySummaryFields {
		total := totals[string(field)]
		percentPopulated, percentMatched := percentages(total.analysed, total.populated, total.matched)

		row := WeeklySummaryRow{
			SirivmField:      string(field),
			TXCField:         SirivmToTXC[field],
			TotalAnalysed:    strconv.Itoa(total.analysed),
			TotalPopulated:   strconv.Itoa(total.populated),
			PercentPopulated: percentPopulated,
			Matched:          strconv.Itoa(total.matched),
			PercentMatched:   percentMatched,
		}
		if field == FieldBlockRef {
			row.Notes = blockRefNotes
		}

		weekly.Summary = append(weekly.Summary, row)
	}

	completelyMatched := "-"
	if weekly.VehicleActivitiesAnalysed > 0 {
		completelyMatched = dataquality.FormatPercentage(float64(weekly.VehicleActivitiesCompletelyMatching) / float64(weekly.VehicleActivitiesAnalysed))
	}
	weekly.Summary = append(weekly.Summary, WeeklySummaryRow{
		SirivmField:      completelyMatchedField,
		TXCField:         "-",
		TotalAnalysed:    strconv.Itoa(weekly.VehicleActivitiesAnalysed),
		TotalPopulated:   "-",
		PercentPopulated: "-",
		Matched:          strconv.Itoa(weekly.VehicleActivitiesCompletelyMatching),
		PercentMatched:   completelyMatched,
	})

	return weekly
}

// WriteZip writes the weekly report as the zip of CSV sheets and the read me
func (w *WeeklyReport) WriteZip(writer io.Writer) error {
	archive := zip.NewWriter(writer)

	directionRows, err := categorySheet[DirectionRefRow](w.Categories[CategoryDirection])
	if err != nil {
		return err
	}
	destinationRows, err := categorySheet[DestinationRefRow](w.Categories[CategoryDestination])
	if err != nil {
		return err
	}
	originRows, err := categorySheet[OriginRefRow](w.Categories[CategoryOrigin])
	if err != nil {
		return err
	}
	blockRows, err := categorySheet[BlockRefRow](w.Categories[CategoryBlock])
	if err != nil {
		return err
	}

	sheets := []struct {
		name string
		rows any
	}{
		{SummaryFileName, &w.Summary},
		{SiriAnalysedFileName, &w.AllSiriAnalysed},
		{UncountedFileName, &w.Uncounted},
		{DirectionRefFileName, &directionRows},
		{DestinationRefFileName, &destinationRows},
		{OriginRefFileName, &originRows},
		{BlockRefFileName, &blockRows},
	}

	for _, sheet := range sheets {
		file, err := archive.Create(sheet.name)
		if err != nil {
			return err
		}

		if err := gocsv.Marshal(sheet.rows, file); err != nil {
			return err
		}
	}

	readme, err := archive.Create(ReadmeFileName)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(readme, Readme()); err != nil {
		return err
	}

	return archive.Close()
}

// categorySheet renames the compared pair columns of category rows for one sheet
func categorySheet[T any](rows []CategoryRow) ([]T, error) {
	sheet := []T{}

	if err := copier.Copy(&sheet, &rows); err != nil {
		return nil, err
	}

	return sheet, nil
}
