package ppc

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/dataquality/pkg/siri_vm"
)

func requireUncounted(t *testing.T, err error, code ErrorCode) *UncountedError {
	t.Helper()

	var uncountedErr *UncountedError
	require.True(t, errors.As(err, &uncountedErr), "expected an uncounted error, got %v", err)
	assert.Equal(t, code, uncountedErr.Code)

	return uncountedErr
}

func TestVehicleJourneyFinderMatch(t *testing.T) {
	finder := &VehicleJourneyFinder{Source: service22Source(t)}
	result := NewValidationResult()

	match, err := finder.Match(t.Context(), line22Activity(t), result)
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Equal(t, "VJ65", match.Journey.VehicleJourneyCode)
	assert.Equal(t, "SCGH_22_outbound.xml", match.File.FileName)
	assert.Equal(t, "JP1", match.JourneyPattern().ID)

	assert.True(t, result.JourneyMatched())
	assert.True(t, result.Matches(FieldOperatorRef))
	assert.True(t, result.Matches(FieldLineRef))
	assert.True(t, result.Matches(FieldDatedVehicleJourneyRef))
	assert.Equal(t, "65", *result.TXCValue(FieldDatedVehicleJourneyRef))

	assert.Equal(t, 7, result.Misc(MiscDatasetID))
	assert.Equal(t, "SCGH_22_outbound.xml", result.Misc(MiscTXCFileName))
	assert.Equal(t, "3", result.Misc(MiscTXCRevision))
	assert.Equal(t, "09:55:00", result.Misc(MiscTXCDepartureTime))

	assert.Empty(t, result.Errors(CategoryGeneral))
	assert.Empty(t, result.ErrorCodes())
}

func TestVehicleJourneyFinderUncounted(t *testing.T) {
	tests := []struct {
		name     string
		activity func(t *testing.T) siri_vm.VehicleActivity
		code     ErrorCode
		reason   UncountedReason
	}{
		{
			name: "missing operator",
			activity: func(t *testing.T) siri_vm.VehicleActivity {
				activity := line22Activity(t)
				activity.MonitoredVehicleJourney.OperatorRef = " "
				return activity
			},
			code:   CodeSiriReferenceMissing,
			reason: ReasonOperatorRefMissing,
		},
		{
			name: "missing line",
			activity: func(t *testing.T) siri_vm.VehicleActivity {
				activity := line22Activity(t)
				activity.MonitoredVehicleJourney.LineRef = nil
				return activity
			},
			code:   CodeSiriReferenceMissing,
			reason: ReasonLineRefMissing,
		},
		{
			name: "no timetables for line",
			activity: func(t *testing.T) siri_vm.VehicleActivity {
				return loadSiri(t).VehicleActivities()[1]
			},
			code:   CodeTimetableFiles,
			reason: "No published TXC files found matching NOC SCGH and line name 8",
		},
		{
			name: "outside operating period",
			activity: func(t *testing.T) siri_vm.VehicleActivity {
				activity := line22Activity(t)
				activity.RecordedAtTime = time.Date(2023, 7, 5, 10, 0, 0, 0, time.UTC)
				return activity
			},
			code:   CodeOperatingPeriod,
			reason: ReasonNoTimetableInPeriod,
		},
		{
			name: "missing journey frame",
			activity: func(t *testing.T) siri_vm.VehicleActivity {
				activity := line22Activity(t)
				activity.MonitoredVehicleJourney.FramedVehicleJourneyRef = nil
				return activity
			},
			code:   CodeJourneyCode,
			reason: ReasonDatedVehicleJourneyMissing,
		},
		{
			name: "unknown journey code",
			activity: func(t *testing.T) siri_vm.VehicleActivity {
				return withJourneyRef(line22Activity(t), "99")
			},
			code:   CodeJourneyCode,
			reason: "No vehicle journeys found with JourneyCode '99'",
		},
		{
			name: "weekend journey on a thursday",
			activity: func(t *testing.T) siri_vm.VehicleActivity {
				return withJourneyRef(line22Activity(t), "66")
			},
			code:   CodeOperatingProfile,
			reason: ReasonNoApplicableProfile,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			finder := &VehicleJourneyFinder{Source: service22Source(t)}
			result := NewValidationResult()

			match, err := finder.Match(t.Context(), test.activity(t), result)
			assert.Nil(t, match)

			uncountedErr := requireUncounted(t, err, test.code)
			assert.Equal(t, test.reason, uncountedErr.Reason)

			assert.False(t, result.JourneyMatched())
			assert.Contains(t, result.Errors(CategoryGeneral), string(test.reason))
			assert.Equal(t, []ErrorCode{test.code}, result.ErrorCodes())
		})
	}
}

func TestVehicleJourneyFinderMultipleDatasets(t *testing.T) {
	source := service22Source(t)
	source.add(8, "other.xml", readTestdata(t, "service_22.xml"))

	finder := &VehicleJourneyFinder{Source: source}
	_, err := finder.Match(t.Context(), line22Activity(t), NewValidationResult())

	uncountedErr := requireUncounted(t, err, CodeTimetableFiles)
	assert.Equal(t, ReasonMultipleDatasets, uncountedErr.Reason)
}

func TestVehicleJourneyFinderHighestRevision(t *testing.T) {
	document := string(readTestdata(t, "service_22.xml"))

	source := &memoryTimetableSource{}
	source.add(7, "old.xml", []byte(strings.Replace(document, `RevisionNumber="3"`, `RevisionNumber="2"`, 1)))
	source.add(7, "current.xml", []byte(document))

	finder := &VehicleJourneyFinder{Source: source}
	result := NewValidationResult()

	match, err := finder.Match(t.Context(), line22Activity(t), result)
	require.NoError(t, err)
	assert.Equal(t, "current.xml", match.File.FileName)
	assert.Equal(t, "current.xml", result.Misc(MiscTXCFileName))
}

func TestVehicleJourneyFinderAmbiguousJourneys(t *testing.T) {
	document := string(readTestdata(t, "service_22.xml"))

	t.Run("single service code", func(t *testing.T) {
		source := &memoryTimetableSource{}
		source.add(7, "a.xml", []byte(document))
		source.add(7, "b.xml", []byte(document))

		_, err := (&VehicleJourneyFinder{Source: source}).Match(t.Context(), line22Activity(t), NewValidationResult())

		uncountedErr := requireUncounted(t, err, CodeMultipleJourneys)
		assert.Equal(t, ReasonMultipleJourneys, uncountedErr.Reason)
	})

	t.Run("different service codes", func(t *testing.T) {
		source := &memoryTimetableSource{}
		source.add(7, "a.xml", []byte(document))
		source.add(7, "b.xml", []byte(strings.ReplaceAll(document, "PK0000402:22", "PK0000402:22A")))

		_, err := (&VehicleJourneyFinder{Source: source}).Match(t.Context(), line22Activity(t), NewValidationResult())

		uncountedErr := requireUncounted(t, err, CodeMultipleServiceCodes)
		assert.Equal(t, ReasonMultipleServiceCodes, uncountedErr.Reason)
	})
}

func TestVehicleJourneyFinderServicedOrganisation(t *testing.T) {
	document := string(readTestdata(t, "service_22.xml"))
	notOnSchoolDays := strings.ReplaceAll(document, "DaysOfOperation>", "DaysOfNonOperation>")

	source := &memoryTimetableSource{}
	source.add(7, "school_days.xml", []byte(document))
	source.add(7, "school_holidays.xml", []byte(notOnSchoolDays))

	finder := &VehicleJourneyFinder{Source: source}

	// 9 March 2023 is a Thursday inside the KCC working days
	match, err := finder.Match(t.Context(), withJourneyRef(line22Activity(t), "70"), NewValidationResult())
	require.NoError(t, err)
	assert.Equal(t, "school_days.xml", match.File.FileName)
	assert.Equal(t, "VJ70", match.Journey.VehicleJourneyCode)

	// 16 February 2023 is a Thursday in the half term break
	activity := withJourneyRef(line22Activity(t), "70")
	activity.RecordedAtTime = time.Date(2023, 2, 16, 8, 0, 0, 0, time.UTC)

	match, err = finder.Match(t.Context(), activity, NewValidationResult())
	require.NoError(t, err)
	assert.Equal(t, "school_holidays.xml", match.File.FileName)
}

func TestVehicleJourneyFinderIgnoresUnreadableTimetables(t *testing.T) {
	source := service22Source(t)
	source.add(7, "broken.xml", []byte("<TransXChange><Services>"))

	result := NewValidationResult()
	match, err := (&VehicleJourneyFinder{Source: source}).Match(t.Context(), line22Activity(t), result)
	require.NoError(t, err)

	assert.Equal(t, "SCGH_22_outbound.xml", match.File.FileName)
	assert.Equal(t, []string{"Ignoring timetable broken.xml that could not be parsed"}, result.Errors(CategoryGeneral))
}

func TestVehicleJourneyFinderSourceError(t *testing.T) {
	sourceErr := errors.New("connection refused")
	finder := &VehicleJourneyFinder{Source: &memoryTimetableSource{err: sourceErr}}

	_, err := finder.Match(t.Context(), line22Activity(t), NewValidationResult())
	assert.ErrorIs(t, err, sourceErr)

	var uncountedErr *UncountedError
	assert.False(t, errors.As(err, &uncountedErr))
}
