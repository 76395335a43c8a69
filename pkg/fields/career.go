// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import "strings"

// Job is an employment record.
type Job struct {
	Common
	Title        string
	Organization string
	Industry     string
	DateRange    *DateRange
	Display      string
}

func (j *Job) Kind() Kind { return KindJob }

func (j *Job) decode(m wireMap) error {
	if err := j.Common.decode(m); err != nil {
		return err
	}
	j.Title = m.str("title")
	j.Organization = m.str("organization")
	j.Industry = m.str("industry")
	j.Display = m.str("display")
	var err error
	j.DateRange, err = m.dateRange("date_range")
	return err
}

func (j *Job) ToWire() map[string]any {
	w := j.Common.writer()
	w.child("title", j.Title)
	w.child("organization", j.Organization)
	w.child("industry", j.Industry)
	w.child("date_range", j.DateRange)
	w.child("display", j.Display)
	return w.m
}

func (j *Job) Representation() string { return representation(KindJob, j.ToWire()) }

func (j *Job) IsSearchable() bool { return true }

// String is Display, else "title at organization".
func (j *Job) String() string {
	if j.Display != "" {
		return j.Display
	}
	switch {
	case j.Title != "" && j.Organization != "":
		return j.Title + " at " + j.Organization
	case j.Title != "":
		return j.Title
	}
	return j.Organization
}

// Education is a degree or school attendance.
type Education struct {
	Common
	Degree    string
	School    string
	DateRange *DateRange
	Display   string
}

func (e *Education) Kind() Kind { return KindEducation }

func (e *Education) decode(m wireMap) error {
	if err := e.Common.decode(m); err != nil {
		return err
	}
	e.Degree = m.str("degree")
	e.School = m.str("school")
	e.Display = m.str("display")
	var err error
	e.DateRange, err = m.dateRange("date_range")
	return err
}

func (e *Education) ToWire() map[string]any {
	w := e.Common.writer()
	w.child("degree", e.Degree)
	w.child("school", e.School)
	w.child("date_range", e.DateRange)
	w.child("display", e.Display)
	return w.m
}

func (e *Education) Representation() string { return representation(KindEducation, e.ToWire()) }

func (e *Education) IsSearchable() bool { return true }

// String is Display, else degree and school.
func (e *Education) String() string {
	if e.Display != "" {
		return e.Display
	}
	return strings.TrimSpace(strings.Join([]string{e.Degree, e.School}, " "))
}
