package ppc

import "fmt"

// UncountedReason explains why an activity could not be matched to a timetable journey.
// Matchers may use reasons of their own alongside the ones below.
type UncountedReason string

const (
	ReasonOperatorRefMissing         UncountedReason = "OperatorRef missing in SIRI-VM VehicleActivity"
	ReasonLineRefMissing             UncountedReason = "LineRef missing in SIRI-VM VehicleActivity"
	ReasonMultipleDatasets           UncountedReason = "Matched OperatorRef and LineRef in more than one dataset"
	ReasonRecordedAtTimeMissing      UncountedReason = "Recorded At Time missing in SIRI-VM VehicleActivity"
	ReasonNoTimetableInPeriod        UncountedReason = "No timetables found with VehicleActivity date in OperatingPeriod"
	ReasonDatedVehicleJourneyMissing UncountedReason = "DatedVehicleJourneyRef missing in SIRI-VM VehicleActivity"
	ReasonNoApplicableProfile        UncountedReason = "No vehicle journeys found with OperatingProfile applicable to VehicleActivity date"
	ReasonNoRevisionNumber           UncountedReason = "No RevisionNumber found in matching vehicle journeys"
	ReasonMultipleJourneys           UncountedReason = "Found more than one matching vehicle journey in timetables belonging to a single service code"
	ReasonMultipleServiceCodes       UncountedReason = "Found more than one matching vehicle journey in timetables belonging to different service codes"
)

func ReasonNoTimetableFiles(noc string, lineName string) UncountedReason {
	return UncountedReason(fmt.Sprintf("No published TXC files found matching NOC %s and line name %s", noc, lineName))
}

func ReasonNoJourneyCode(ref string) UncountedReason {
	return UncountedReason(fmt.Sprintf("No vehicle journeys found with JourneyCode '%s'", ref))
}

// ErrorCode identifies the finder step an activity was dropped at
type ErrorCode string

const (
	CodeSiriReferenceMissing ErrorCode = "1.1"
	CodeTimetableFiles       ErrorCode = "1.2"
	CodeOperatingPeriod      ErrorCode = "2.1"
	CodeJourneyCode          ErrorCode = "3.1"
	CodeOperatingProfile     ErrorCode = "4.1"
	CodeRevisionNumber       ErrorCode = "5.1"
	CodeServicedOrganisation ErrorCode = "6.1"
	CodeMultipleJourneys     ErrorCode = "6.2"
	CodeMultipleServiceCodes ErrorCode = "6.3"
)

// UncountedError is returned by a JourneyMatcher when an activity cannot be analysed
type UncountedError struct {
	Reason UncountedReason
	Code   ErrorCode
}

func (e *UncountedError) Error() string {
	if e.Code == "" {
		return string(e.Reason)
	}

	return fmt.Sprintf("%s [%s]", e.Reason, e.Code)
}

func uncounted(reason UncountedReason, code ErrorCode) *UncountedError {
	return &UncountedError{Reason: reason, Code: code}
}
