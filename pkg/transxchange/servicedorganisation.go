package transxchange

import (
	"time"

	"github.com/travigo/dataquality/pkg/util"
)

type ServicedOrganisation struct {
	OrganisationCode string
	PrivateCode      string
	Name             string

	WorkingDays []DateRange `xml:"WorkingDays>DateRange"`
	Holidays    []DateRange `xml:"Holidays>DateRange"`
}

type DateRange struct {
	StartDate   string
	EndDate     string
	Description string
}

// Contains reports whether the date falls inside the range. A range without
// both dates, or with dates that cannot be parsed, never contains anything.
func (r DateRange) Contains(date time.Time) (bool, error) {
	if r.StartDate == "" || r.EndDate == "" {
		return false, ErrIncompleteDateRange
	}

	start, err := time.Parse(util.YearMonthDayFormat, r.StartDate)
	if err != nil {
		return false, err
	}

	end, err := time.Parse(util.YearMonthDayFormat, r.EndDate)
	if err != nil {
		return false, err
	}

	return util.DateInRange(date, start, end), nil
}

// WorkingOn reports whether any of the organisation's working day ranges contain the date
func (s *ServicedOrganisation) WorkingOn(date time.Time) (bool, error) {
	for _, dateRange := range s.WorkingDays {
		inside, err := dateRange.Contains(date)
		if err != nil {
			return false, err
		}

		if inside {
			return true, nil
		}
	}

	return false, nil
}
