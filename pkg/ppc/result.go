package ppc

import (
	"strings"
	"time"

	"github.com/travigo/dataquality/pkg/siri_vm"
	"github.com/travigo/dataquality/pkg/util"
)

type FieldValidation struct {
	SirivmValue      any
	SirivmLineNumber *int

	TXCValue      *string
	TXCLineNumber *int

	Matches bool
}

// ValidationResult collects everything learnt about a single vehicle activity while it is checked
type ValidationResult struct {
	fields         map[SirivmField]*FieldValidation
	misc           map[MiscField]any
	errors         map[Category][]string
	errorCodes     []ErrorCode
	journeyMatched bool
}

func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		fields: map[SirivmField]*FieldValidation{},
		misc:   map[MiscField]any{},
		errors: map[Category][]string{},
	}
}

func (r *ValidationResult) field(field SirivmField) *FieldValidation {
	validation, exists := r.fields[field]
	if !exists {
		validation = &FieldValidation{}
		r.fields[field] = validation
	}

	return validation
}

// SetSirivmValue stores blank text as absent
func (r *ValidationResult) SetSirivmValue(field SirivmField, value any, line *int) {
	if text, isString := value.(string); isString && strings.TrimSpace(text) == "" {
		value = nil
		line = nil
	}

	validation := r.field(field)
	validation.SirivmValue = value
	validation.SirivmLineNumber = line
}

func (r *ValidationResult) SirivmValue(field SirivmField) any {
	if validation, exists := r.fields[field]; exists {
		return validation.SirivmValue
	}

	return nil
}

func (r *ValidationResult) SirivmLineNumber(field SirivmField) *int {
	if validation, exists := r.fields[field]; exists {
		return validation.SirivmLineNumber
	}

	return nil
}

func (r *ValidationResult) SetTXCValue(field SirivmField, value string, line *int) {
	validation := r.field(field)
	validation.TXCValue = &value
	validation.TXCLineNumber = line
}

func (r *ValidationResult) TXCValue(field SirivmField) *string {
	if validation, exists := r.fields[field]; exists {
		return validation.TXCValue
	}

	return nil
}

func (r *ValidationResult) TXCLineNumber(field SirivmField) *int {
	if validation, exists := r.fields[field]; exists {
		return validation.TXCLineNumber
	}

	return nil
}

func (r *ValidationResult) SetMatches(field SirivmField) {
	r.field(field).Matches = true
}

func (r *ValidationResult) Matches(field SirivmField) bool {
	if validation, exists := r.fields[field]; exists {
		return validation.Matches
	}

	return false
}

func (r *ValidationResult) SetMisc(field MiscField, value any) {
	r.misc[field] = value
}

func (r *ValidationResult) Misc(field MiscField) any {
	return r.misc[field]
}

func (r *ValidationResult) AddError(category Category, message string) {
	r.errors[category] = append(r.errors[category], message)
}

func (r *ValidationResult) Errors(category Category) []string {
	return r.errors[category]
}

// AddErrorCode records a finder error code once
func (r *ValidationResult) AddErrorCode(code ErrorCode) {
	for _, existing := range r.errorCodes {
		if existing == code {
			return
		}
	}

	r.errorCodes = append(r.errorCodes, code)
}

func (r *ValidationResult) ErrorCodes() []ErrorCode {
	return r.errorCodes
}

func (r *ValidationResult) SetJourneyMatched() {
	r.journeyMatched = true
}

func (r *ValidationResult) JourneyMatched() bool {
	return r.journeyMatched
}

// RecordSirivm copies the delivery header and every standard field of the activity onto the result
func (r *ValidationResult) RecordSirivm(header siri_vm.Header, activity siri_vm.VehicleActivity) {
	mvj := activity.MonitoredVehicleJourney

	r.SetSirivmValue(FieldVersion, header.Version, nil)
	r.SetSirivmValue(FieldResponseTimestampSD, header.ServiceDeliveryResponseTimestamp, nil)
	r.SetSirivmValue(FieldProducerRef, header.ProducerRef, nil)
	r.SetSirivmValue(FieldResponseTimestampVMD, header.VehicleMonitoringResponseTimestamp, nil)
	r.SetSirivmValue(FieldRequestMessageRef, header.RequestMessageRef, nil)
	r.SetSirivmValue(FieldValidUntil, header.ValidUntil, nil)
	r.SetSirivmValue(FieldShortestPossibleCycle, header.ShortestPossibleCycle, nil)

	r.SetSirivmValue(FieldRecordedAtTime, activity.RecordedAtTime, nil)
	r.SetSirivmValue(FieldItemIdentifier, optionalString(activity.ItemIdentifier), nil)
	r.SetSirivmValue(FieldValidUntilTime, activity.ValidUntilTime, nil)

	r.SetSirivmValue(FieldLineRef, optionalString(mvj.LineRef), nil)
	r.SetSirivmValue(FieldDirectionRef, optionalString(mvj.DirectionRef), mvj.DirectionRefLineNumber)
	if mvj.FramedVehicleJourneyRef != nil {
		r.SetSirivmValue(FieldDataFrameRef, mvj.FramedVehicleJourneyRef.DataFrameRef.Format(util.YearMonthDayFormat), nil)
	} else {
		r.SetSirivmValue(FieldDataFrameRef, nil, nil)
	}
	r.SetSirivmValue(FieldDatedVehicleJourneyRef, optionalString(mvj.DatedVehicleJourneyRef()), nil)
	r.SetSirivmValue(FieldPublishedLineName, optionalString(mvj.PublishedLineName), nil)
	r.SetSirivmValue(FieldOperatorRef, mvj.OperatorRef, nil)
	r.SetSirivmValue(FieldOriginRef, optionalString(mvj.OriginRef), mvj.OriginRefLineNumber)
	r.SetSirivmValue(FieldOriginName, optionalString(mvj.OriginName), nil)
	r.SetSirivmValue(FieldDestinationRef, optionalString(mvj.DestinationRef), mvj.DestinationRefLineNumber)
	r.SetSirivmValue(FieldDestinationName, optionalString(mvj.DestinationName), nil)
	r.SetSirivmValue(FieldOriginAimedDepartureTime, optionalTime(mvj.OriginAimedDepartureTime), nil)
	r.SetSirivmValue(FieldLongitude, mvj.VehicleLocation.Longitude, nil)
	r.SetSirivmValue(FieldLatitude, mvj.VehicleLocation.Latitude, nil)
	r.SetSirivmValue(FieldBearing, optionalFloat(mvj.Bearing), nil)
	r.SetSirivmValue(FieldVehicleRef, mvj.VehicleRef, nil)
	r.SetSirivmValue(FieldBlockRef, optionalString(mvj.BlockRef), mvj.BlockRefLineNumber)
	r.SetSirivmValue(FieldDriverRef, optionalString(mvj.DriverRef()), nil)
}

// Typed nil pointers would otherwise be stored as non-nil interface values

func optionalString(value *string) any {
	if value == nil {
		return nil
	}

	return *value
}

func optionalTime(value *time.Time) any {
	if value == nil {
		return nil
	}

	return *value
}

func optionalFloat(value *float64) any {
	if value == nil {
		return nil
	}

	return *value
}
