package ppc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/eko/gocache/lib/v4/store"
	"github.com/stretchr/testify/require"
	"github.com/travigo/dataquality/pkg/siri_vm"
)

type memoryTimetableSource struct {
	files     []TimetableFile
	documents map[string][]byte
	err       error

	fileCalls     int
	documentCalls int
}

func (m *memoryTimetableSource) TimetableFiles(_ context.Context, noc string, lineName string) ([]TimetableFile, error) {
	m.fileCalls++
	if m.err != nil {
		return nil, m.err
	}

	files := []TimetableFile{}
	for _, file := range m.files {
		if file.NationalOperatorCode != noc {
			continue
		}

		for _, name := range file.LineNames {
			if name == lineName {
				files = append(files, file)
				break
			}
		}
	}

	return files, nil
}

func (m *memoryTimetableSource) TimetableDocument(_ context.Context, file TimetableFile) ([]byte, error) {
	m.documentCalls++

	document, exists := m.documents[file.FileName]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTimetableNotFound, file.FileName)
	}

	return document, nil
}

// add registers a document under a file name in the dataset
func (m *memoryTimetableSource) add(datasetID int, fileName string, document []byte) {
	if m.documents == nil {
		m.documents = map[string][]byte{}
	}

	m.files = append(m.files, TimetableFile{
		DatasetID:            datasetID,
		RevisionID:           datasetID * 10,
		FileName:             fileName,
		NationalOperatorCode: "SCGH",
		LineNames:            []string{"22"},
		ServiceCode:          "PK0000402:22",
	})
	m.documents[fileName] = document
}

var errCacheMiss = errors.New("value not found in store")

type memoryCache struct {
	mutex  sync.Mutex
	values map[string]string
}

func (m *memoryCache) Get(_ context.Context, key any) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	value, exists := m.values[key.(string)]
	if !exists {
		return "", errCacheMiss
	}

	return value, nil
}

func (m *memoryCache) Set(_ context.Context, key any, object string, _ ...store.Option) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key.(string)] = object

	return nil
}

type fakeReportStore struct {
	mutex   sync.Mutex
	reports []*DailyReport
	err     error
}

func (f *fakeReportStore) SaveDailyReport(_ context.Context, report *DailyReport) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.err != nil {
		return f.err
	}

	for _, existing := range f.reports {
		if existing.Feed.ID == report.Feed.ID && existing.Date.Equal(report.Date) {
			return ErrDailyReportExists
		}
	}

	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeReportStore) DailyReport(_ context.Context, feedID int, date time.Time) (*DailyReport, error) {
	for _, report := range f.reports {
		if report.Feed.ID == feedID && report.Date.Equal(date) {
			return report, nil
		}
	}

	return nil, ErrDailyReportNotFound
}

func (f *fakeReportStore) DailyReports(_ context.Context, feedID int, start time.Time, end time.Time) ([]*DailyReport, error) {
	reports := []*DailyReport{}
	for _, report := range f.reports {
		if report.Feed.ID == feedID && !report.Date.Before(start) && !report.Date.After(end) {
			reports = append(reports, report)
		}
	}

	return reports, nil
}

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()

	content, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	return content
}

func loadSiri(t *testing.T) *siri_vm.Siri {
	t.Helper()

	siri, err := siri_vm.ParseBytes(readTestdata(t, "siri_sample.xml"))
	require.NoError(t, err)

	return siri
}

// line22Activity is the SCGH line 22 activity of the sample, running journey 65 on Thursday 9 March 2023
func line22Activity(t *testing.T) siri_vm.VehicleActivity {
	t.Helper()

	return loadSiri(t).VehicleActivities()[0]
}

func withJourneyRef(activity siri_vm.VehicleActivity, ref string) siri_vm.VehicleActivity {
	frame := *activity.MonitoredVehicleJourney.FramedVehicleJourneyRef
	frame.DatedVehicleJourneyRef = ref
	activity.MonitoredVehicleJourney.FramedVehicleJourneyRef = &frame

	return activity
}

func service22Source(t *testing.T) *memoryTimetableSource {
	t.Helper()

	source := &memoryTimetableSource{}
	source.add(7, "SCGH_22_outbound.xml", readTestdata(t, "service_22.xml"))

	return source
}
