package ppc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dataquality/pkg/metrics"
	"github.com/travigo/dataquality/pkg/siri_vm"
)

// Engine runs the post publishing checks of a feed's vehicle activities against the published timetables
type Engine struct {
	Matcher JourneyMatcher
	Metrics *metrics.Metrics
}

// Check validates every activity and compiles the daily report. Activities that cannot be matched
// to a journey are reported as uncounted; a failure reading the timetables stops the run.
func (e *Engine) Check(ctx context.Context, feed Feed, header siri_vm.Header, activities []siri_vm.VehicleActivity) (*DailyReport, error) {
	results := make([]*ValidationResult, 0, len(activities))

	for _, activity := range activities {
		result, err := e.checkActivity(ctx, feed, header, activity)
		if err != nil {
			return nil, err
		}

		results = append(results, result)
	}

	report := NewDailyReport(feed, reportDate(header, activities), results)

	log.Info().
		Int("feed", feed.ID).
		Int("activities", len(activities)).
		Int("analysed", report.VehicleActivitiesAnalysed).
		Int("uncounted", len(report.Uncounted)).
		Int("completely_matching", report.VehicleActivitiesCompletelyMatching).
		Msg("Checked vehicle activities")

	return report, nil
}

func (e *Engine) checkActivity(ctx context.Context, feed Feed, header siri_vm.Header, activity siri_vm.VehicleActivity) (*ValidationResult, error) {
	result := NewValidationResult()
	result.RecordSirivm(header, activity)
	result.SetMisc(MiscFeedID, feed.ID)
	result.SetMisc(MiscFeedName, feed.Name)

	match, err := e.Matcher.Match(ctx, activity, result)

	var uncountedErr *UncountedError
	if errors.As(err, &uncountedErr) {
		log.Debug().
			Str("vehicle", activity.MonitoredVehicleJourney.VehicleRef).
			Str("code", string(uncountedErr.Code)).
			Msg(string(uncountedErr.Reason))
		e.Metrics.ActivityUncounted(string(uncountedErr.Code))

		return result, nil
	} else if err != nil {
		return nil, fmt.Errorf("matching vehicle %s: %w", activity.MonitoredVehicleJourney.VehicleRef, err)
	}

	CompareJourney(activity.MonitoredVehicleJourney, match, result)
	e.Metrics.ActivityAnalysed()

	return result, nil
}

// reportDate is the day of the delivery, falling back to the first activity
func reportDate(header siri_vm.Header, activities []siri_vm.VehicleActivity) time.Time {
	if !header.ServiceDeliveryResponseTimestamp.IsZero() {
		return header.ServiceDeliveryResponseTimestamp
	}

	if len(activities) > 0 && !activities[0].RecordedAtTime.IsZero() {
		return activities[0].RecordedAtTime
	}

	return time.Now()
}
