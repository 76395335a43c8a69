// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"fmt"
	"time"
)

// DOB is a date of birth, exact or approximate, expressed as a date range.
type DOB struct {
	Common
	DateRange *DateRange
	Display   string
}

// DOBFromBirthYear covers the whole of the given year, which must be 2 or
// later.
func DOBFromBirthYear(year int) (*DOB, error) {
	if year < 2 {
		return nil, fmt.Errorf("%w: birth_year must be 2 or later", ErrInvalidArgument)
	}
	r, err := DateRangeFromYears(year, year)
	if err != nil {
		return nil, err
	}
	return &DOB{DateRange: r}, nil
}

// DOBFromBirthDate is an exact date of birth.
func DOBFromBirthDate(date time.Time) (*DOB, error) {
	if date.After(now()) {
		return nil, fmt.Errorf("%w: birth_date can't be in the future", ErrInvalidArgument)
	}
	r, err := NewDateRange(date, date)
	if err != nil {
		return nil, err
	}
	return &DOB{DateRange: r}, nil
}

// DOBFromAge covers every birth date consistent with the given age today.
func DOBFromAge(age int) (*DOB, error) {
	return DOBFromAgeRange(age, age)
}

// DOBFromAgeRange covers every birth date consistent with an age between
// startAge and endAge inclusive. Reversed bounds are swapped.
func DOBFromAgeRange(startAge, endAge int) (*DOB, error) {
	if startAge < 0 || endAge < 0 {
		return nil, fmt.Errorf("%w: start_age and end_age can't be negative", ErrInvalidArgument)
	}
	if startAge > endAge {
		startAge, endAge = endAge, startAge
	}
	t := today()
	start := t.AddDate(-endAge-1, 0, 1)
	end := t.AddDate(-startAge, 0, 0)
	r, err := NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return &DOB{DateRange: r}, nil
}

func (d *DOB) Kind() Kind { return KindDOB }

func (d *DOB) decode(m wireMap) error {
	if err := d.Common.decode(m); err != nil {
		return err
	}
	d.Display = m.str("display")
	var err error
	d.DateRange, err = m.dateRange("date_range")
	return err
}

func (d *DOB) ToWire() map[string]any {
	w := d.Common.writer()
	w.child("date_range", d.DateRange)
	w.child("display", d.Display)
	return w.m
}

func (d *DOB) Representation() string { return representation(KindDOB, d.ToWire()) }

// IsSearchable requires a date range.
func (d *DOB) IsSearchable() bool { return d.DateRange != nil }

// Age is the age in whole years of someone born on the range's midpoint.
// ok is false when there is no date range.
func (d *DOB) Age() (age int, ok bool) {
	if d.DateRange == nil {
		return 0, false
	}
	return ageOn(d.DateRange.Middle(), today()), true
}

// AgeRange returns the youngest and oldest ages the range allows. A one-sided
// range yields Age twice.
func (d *DOB) AgeRange() (low, high int, ok bool) {
	if d.DateRange == nil {
		return 0, 0, false
	}
	if d.DateRange.Start.IsZero() || d.DateRange.End.IsZero() {
		age, _ := d.Age()
		return age, age, true
	}
	t := today()
	return ageOn(d.DateRange.End, t), ageOn(d.DateRange.Start, t), true
}

func ageOn(birth, day time.Time) int {
	age := day.Year() - birth.Year()
	if birth.Month() > day.Month() || (birth.Month() == day.Month() && birth.Day() > day.Day()) {
		age--
	}
	return age
}

// String is Display, else the date range.
func (d *DOB) String() string {
	if d.Display != "" {
		return d.Display
	}
	if d.DateRange == nil {
		return ""
	}
	return d.DateRange.String()
}
