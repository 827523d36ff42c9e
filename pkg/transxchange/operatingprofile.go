package transxchange

import (
	"encoding/xml"
	"io"
	"time"
)

type OperatingProfile struct {
	RegularDayType              *RegularDayType
	ServicedOrganisationDayType *ServicedOrganisationDayType
	BankHolidayOperation        *BankHolidayOperation
}

type RegularDayType struct {
	DaysOfWeek   *DaysOfWeek
	HolidaysOnly *struct{}
}

type ServicedOrganisationDayType struct {
	DaysOfOperation    *ServicedOrganisationDays
	DaysOfNonOperation *ServicedOrganisationDays
}

type ServicedOrganisationDays struct {
	WorkingDaysRefs []string `xml:"WorkingDays>ServicedOrganisationRef"`
	HolidaysRefs    []string `xml:"Holidays>ServicedOrganisationRef"`
}

type BankHolidayOperation struct {
	DaysOfOperation    []string
	DaysOfNonOperation []string
}

func (b *BankHolidayOperation) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	elementChain := []string{}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		} else if err != nil {
			return err
		}

		switch ty := tok.(type) {
		case xml.StartElement:
			elementChain = append(elementChain, ty.Name.Local)

			if len(elementChain) == 2 {
				switch elementChain[0] {
				case "DaysOfOperation":
					b.DaysOfOperation = append(b.DaysOfOperation, ty.Name.Local)
				case "DaysOfNonOperation":
					b.DaysOfNonOperation = append(b.DaysOfNonOperation, ty.Name.Local)
				}
			}
		case xml.EndElement:
			if len(elementChain) == 0 {
				return nil
			}
			elementChain = elementChain[:len(elementChain)-1]
		}
	}
}

// DaysOfWeek is the set of days named by a DaysOfWeek element, with the
// TransXChange shorthand elements such as MondayToFriday expanded
type DaysOfWeek struct {
	Days map[time.Weekday]bool
}

var daysOfWeekElements = map[string][]time.Weekday{
	"Monday":           {time.Monday},
	"Tuesday":          {time.Tuesday},
	"Wednesday":        {time.Wednesday},
	"Thursday":         {time.Thursday},
	"Friday":           {time.Friday},
	"Saturday":         {time.Saturday},
	"Sunday":           {time.Sunday},
	"MondayToFriday":   {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	"MondayToSaturday": {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
	"MondayToSunday":   {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday},
	"Weekend":          {time.Saturday, time.Sunday},
	"NotMonday":        {time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday},
	"NotTuesday":       {time.Monday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday},
	"NotWednesday":     {time.Monday, time.Tuesday, time.Thursday, time.Friday, time.Saturday, time.Sunday},
	"NotThursday":      {time.Monday, time.Tuesday, time.Wednesday, time.Friday, time.Saturday, time.Sunday},
	"NotFriday":        {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Saturday, time.Sunday},
	"NotSaturday":      {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Sunday},
	"NotSunday":        {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
}

func (w *DaysOfWeek) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	w.Days = map[time.Weekday]bool{}
	depth := 0

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		} else if err != nil {
			return err
		}

		switch ty := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				for _, day := range daysOfWeekElements[ty.Name.Local] {
					w.Days[day] = true
				}
			}
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

func (w *DaysOfWeek) Includes(day time.Weekday) bool {
	if w == nil {
		return false
	}

	return w.Days[day]
}

// HolidaysOnly reports whether the profile only runs on holidays
func (o *OperatingProfile) HolidaysOnly() bool {
	return o.RegularDayType != nil && o.RegularDayType.HolidaysOnly != nil
}

func (o *OperatingProfile) DaysOfWeek() *DaysOfWeek {
	if o.RegularDayType == nil {
		return nil
	}

	return o.RegularDayType.DaysOfWeek
}

// AppliesOn reports whether the regular days of the profile include the weekday
func (o *OperatingProfile) AppliesOn(day time.Weekday) bool {
	if o.HolidaysOnly() {
		return false
	}

	return o.DaysOfWeek().Includes(day)
}
