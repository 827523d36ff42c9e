package ppc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/travigo/dataquality/pkg/siri_vm"
	"github.com/travigo/dataquality/pkg/transxchange"
	"github.com/travigo/dataquality/pkg/util"
)

// VehicleJourneyFinder narrows the published timetables for an operator and line
// down to the single vehicle journey an activity is running
type VehicleJourneyFinder struct {
	Source TimetableSource
}

type timetable struct {
	file     TimetableFile
	document *transxchange.TransXChange
}

type candidateJourney struct {
	timetable *timetable
	journey   *transxchange.VehicleJourney
}

func (f *VehicleJourneyFinder) Match(ctx context.Context, activity siri_vm.VehicleActivity, result *ValidationResult) (*MatchedJourney, error) {
	mvj := activity.MonitoredVehicleJourney

	noc := strings.TrimSpace(mvj.OperatorRef)
	if noc == "" {
		return nil, fail(result, ReasonOperatorRefMissing, CodeSiriReferenceMissing)
	}
	lineName := strings.TrimSpace(util.StringValue(mvj.LineRef))
	if lineName == "" {
		return nil, fail(result, ReasonLineRefMissing, CodeSiriReferenceMissing)
	}

	files, err := f.Source.TimetableFiles(ctx, noc, lineName)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fail(result, ReasonNoTimetableFiles(noc, lineName), CodeTimetableFiles)
	}
	if !singleDataset(files) {
		return nil, fail(result, ReasonMultipleDatasets, CodeTimetableFiles)
	}

	result.SetMisc(MiscDatasetID, files[0].DatasetID)
	result.SetTXCValue(FieldOperatorRef, noc, nil)
	result.SetMatches(FieldOperatorRef)
	result.SetTXCValue(FieldLineRef, lineName, nil)
	result.SetMatches(FieldLineRef)

	if activity.RecordedAtTime.IsZero() {
		return nil, fail(result, ReasonRecordedAtTimeMissing, CodeOperatingPeriod)
	}
	activityDate := activity.RecordedAtTime

	timetables, err := f.timetablesInOperatingPeriod(ctx, files, activityDate, result)
	if err != nil {
		return nil, err
	}
	if len(timetables) == 0 {
		return nil, fail(result, ReasonNoTimetableInPeriod, CodeOperatingPeriod)
	}

	journeyRef := mvj.DatedVehicleJourneyRef()
	if journeyRef == nil || strings.TrimSpace(*journeyRef) == "" {
		return nil, fail(result, ReasonDatedVehicleJourneyMissing, CodeJourneyCode)
	}

	candidates := journeysWithCode(timetables, strings.TrimSpace(*journeyRef))
	if len(candidates) == 0 {
		return nil, fail(result, ReasonNoJourneyCode(*journeyRef), CodeJourneyCode)
	}

	filterByOperatingProfile(&candidates, activityDate.Weekday())
	if len(candidates) == 0 {
		return nil, fail(result, ReasonNoApplicableProfile, CodeOperatingProfile)
	}

	filterByRevisionNumber(&candidates)
	if len(candidates) == 0 {
		return nil, fail(result, ReasonNoRevisionNumber, CodeRevisionNumber)
	}

	if len(candidates) > 1 {
		filterByServicedOrganisation(&candidates, activityDate, result)
		if len(candidates) == 0 {
			return nil, fail(result, ReasonNoApplicableProfile, CodeServicedOrganisation)
		}
	}

	if len(candidates) > 1 {
		if len(serviceCodes(candidates)) <= 1 {
			return nil, fail(result, ReasonMultipleJourneys, CodeMultipleJourneys)
		}

		return nil, fail(result, ReasonMultipleServiceCodes, CodeMultipleServiceCodes)
	}

	match := candidates[0]
	fileName := match.timetable.file.FileName
	if fileName == "" {
		fileName = match.timetable.document.FileName
	}

	result.SetTXCValue(FieldDatedVehicleJourneyRef, match.journey.JourneyCode(), nil)
	result.SetMatches(FieldDatedVehicleJourneyRef)
	result.SetJourneyMatched()
	result.SetMisc(MiscTXCFileName, fileName)
	result.SetMisc(MiscTXCRevision, match.timetable.document.RevisionNumber)
	result.SetMisc(MiscTXCDepartureTime, match.journey.DepartureTime)

	return &MatchedJourney{
		Document: match.timetable.document,
		Journey:  match.journey,
		File:     match.timetable.file,
	}, nil
}

func fail(result *ValidationResult, reason UncountedReason, code ErrorCode) *UncountedError {
	result.AddError(CategoryGeneral, string(reason))
	result.AddErrorCode(code)

	return uncounted(reason, code)
}

func singleDataset(files []TimetableFile) bool {
	for _, file := range files[1:] {
		if file.DatasetID != files[0].DatasetID {
			return false
		}
	}

	return true
}

// timetablesInOperatingPeriod loads every file and keeps those whose operating period covers the date.
// Documents that cannot be read are noted on the result and skipped.
func (f *VehicleJourneyFinder) timetablesInOperatingPeriod(ctx context.Context, files []TimetableFile, date time.Time, result *ValidationResult) ([]*timetable, error) {
	timetables := []*timetable{}

	for _, file := range files {
		content, err := f.Source.TimetableDocument(ctx, file)
		if err != nil {
			return nil, err
		}

		document, err := transxchange.ParseBytes(content)
		if err != nil {
			result.AddError(CategoryGeneral, fmt.Sprintf("Ignoring timetable %s that could not be parsed", file.FileName))
			continue
		}

		start, end, err := document.OperatingPeriod()
		if err != nil {
			result.AddError(CategoryGeneral, fmt.Sprintf("Ignoring timetable %s with %s", file.FileName, err))
			continue
		}

		if util.DateInRange(date, start, end) {
			timetables = append(timetables, &timetable{file: file, document: document})
		}
	}

	return timetables, nil
}

func journeysWithCode(timetables []*timetable, journeyCode string) []candidateJourney {
	candidates := []candidateJourney{}

	for _, timetable := range timetables {
		for _, journey := range timetable.document.VehicleJourneysWithJourneyCode(journeyCode) {
			candidates = append(candidates, candidateJourney{timetable: timetable, journey: journey})
		}
	}

	return candidates
}

func filterByOperatingProfile(candidates *[]candidateJourney, weekday time.Weekday) {
	util.InPlaceFilter(candidates, func(candidate candidateJourney) bool {
		profile := candidate.timetable.document.OperatingProfile(candidate.journey)
		if profile == nil || profile.HolidaysOnly() {
			return false
		}

		return profile.AppliesOn(weekday)
	})
}

// filterByRevisionNumber keeps the journeys from documents with the highest revision
func filterByRevisionNumber(candidates *[]candidateJourney) {
	highest := -1
	for _, candidate := range *candidates {
		if revision, err := candidate.timetable.document.Revision(); err == nil && revision > highest {
			highest = revision
		}
	}

	util.InPlaceFilter(candidates, func(candidate candidateJourney) bool {
		revision, err := candidate.timetable.document.Revision()
		return err == nil && revision == highest
	})
}

// filterByServicedOrganisation drops journeys that only run on an organisation's working
// days when the organisation is not working, and the reverse
func filterByServicedOrganisation(candidates *[]candidateJourney, date time.Time, result *ValidationResult) {
	util.InPlaceFilter(candidates, func(candidate candidateJourney) bool {
		profile := candidate.timetable.document.OperatingProfile(candidate.journey)
		if profile == nil || profile.ServicedOrganisationDayType == nil {
			return true
		}

		dayType := profile.ServicedOrganisationDayType
		var refs []string
		operating := true
		if dayType.DaysOfOperation != nil {
			refs = dayType.DaysOfOperation.WorkingDaysRefs
		} else if dayType.DaysOfNonOperation != nil {
			refs = dayType.DaysOfNonOperation.WorkingDaysRefs
			operating = false
		}
		if len(refs) == 0 {
			return true
		}

		organisation := candidate.timetable.document.ServicedOrganisation(refs[0])
		if organisation == nil {
			return true
		}

		working, err := organisation.WorkingOn(date)
		if errors.Is(err, transxchange.ErrIncompleteDateRange) {
			result.AddError(CategoryGeneral, fmt.Sprintf("Ignoring vehicle journey with sequence number %s, as Serviced organisation has no Start or End date", candidate.journey.SequenceNumber))
			return true
		} else if err != nil {
			result.AddError(CategoryGeneral, fmt.Sprintf("Ignoring vehicle journey with sequence number %s, as Serviced organisation has incorrectly formatted dates", candidate.journey.SequenceNumber))
			return true
		}

		return working == operating
	})
}

func serviceCodes(candidates []candidateJourney) []string {
	codes := []string{}

	for _, candidate := range candidates {
		code := candidate.journey.ServiceRef
		if code == "" {
			if service := candidate.timetable.document.FirstService(); service != nil {
				code = service.ServiceCode
			}
		}

		codes = append(codes, code)
	}

	return util.RemoveDuplicateStrings(codes, []string{})
}
