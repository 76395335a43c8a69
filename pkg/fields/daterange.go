// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// DateRange is a pair of dates used by DOB, Job and Education. At least one
// bound is set; when both are, Start is not after End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange returns a range over start and end, swapping them if start is
// after end. Zero times are absent bounds; both absent is an error.
func NewDateRange(start, end time.Time) (*DateRange, error) {
	if start.IsZero() && end.IsZero() {
		return nil, fmt.Errorf("%w: Start/End parameters missing", ErrInvalidArgument)
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		start, end = end, start
	}
	return &DateRange{Start: start, End: end}, nil
}

// DateRangeFromYears spans January 1 of startYear through December 31 of endYear.
// startYear must be at least 2: January 1 of year 1 is the zero time.Time,
// which would read as an absent bound.
func DateRangeFromYears(startYear, endYear int) (*DateRange, error) {
	if startYear < 2 || endYear < 2 {
		return nil, fmt.Errorf("%w: years must be 2 or later", ErrInvalidArgument)
	}
	return NewDateRange(
		time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(endYear, time.December, 31, 0, 0, 0, 0, time.UTC),
	)
}

// DateRangeFromWire decodes {"start": "YYYY-MM-DD", "end": "YYYY-MM-DD"}.
// Either bound may be missing.
func DateRangeFromWire(m map[string]any) (*DateRange, error) {
	w := normalize(m)
	start, err := w.date("start")
	if err != nil {
		return nil, err
	}
	end, err := w.date("end")
	if err != nil {
		return nil, err
	}
	return NewDateRange(start, end)
}

// ToWire encodes the set bounds.
func (r *DateRange) ToWire() map[string]any {
	m := map[string]any{}
	if !r.Start.IsZero() {
		m["start"] = r.Start.Format(DateFormat)
	}
	if !r.End.IsZero() {
		m["end"] = r.End.Format(DateFormat)
	}
	return m
}

// IsExact reports whether the range covers a single day.
func (r *DateRange) IsExact() bool {
	return r.Start.Equal(r.End)
}

// Middle returns the midpoint in whole days, or the only bound that is set.
func (r *DateRange) Middle() time.Time {
	switch {
	case r.Start.IsZero():
		return r.End
	case r.End.IsZero():
		return r.Start
	}
	// Unix seconds, since a time.Duration overflows past about 292 years.
	days := (r.End.Unix() - r.Start.Unix()) / secondsPerDay
	return r.Start.AddDate(0, 0, int(days/2))
}

// YearsRange returns the years of both bounds. ok is false when either is missing.
func (r *DateRange) YearsRange() (start, end int, ok bool) {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0, 0, false
	}
	return r.Start.Year(), r.End.Year(), true
}

// String renders "start - end", or the only bound that is set.
func (r *DateRange) String() string {
	switch {
	case !r.Start.IsZero() && !r.End.IsZero():
		return r.Start.Format(DateFormat) + " - " + r.End.Format(DateFormat)
	case !r.Start.IsZero():
		return r.Start.Format(DateFormat)
	}
	return r.End.Format(DateFormat)
}
