// Package date provides calendar dates and the moment-style layouts used to
// parse and format them.
package date

import "time"

const isoFormat = "2006-01-02"

// Date represents a calendar date without time or timezone.
// The underlying time is always midnight UTC so that comparisons and
// differences never depend on the local zone.
type Date struct {
	time.Time
}

// New creates a Date from year, month, day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar date of t as seen in t's own location.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(isoFormat)
}

// After reports whether d is a later calendar date than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Before reports whether d is an earlier calendar date than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}
