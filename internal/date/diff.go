package date

import "time"

const hoursPerDay = 24

// YearsBetween returns the number of whole calendar years from from to to.
// The result is negative when to precedes from. A February 29 start date
// completes its year on February 28 of non-leap years.
func YearsBetween(from, to Date) int {
	if to.Before(from) {
		return -YearsBetween(to, from)
	}
	years := to.Year() - from.Year()
	if addYears(from, years).After(to) {
		years--
	}
	return years
}

// DaysBetween returns the number of whole days from from to to.
func DaysBetween(from, to Date) int {
	return int(to.Sub(from.Time).Hours() / hoursPerDay)
}

// DaysIn returns the number of days in the given month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// addYears shifts d by n years, clamping the day to the target month's length.
func addYears(d Date, n int) Date {
	year := d.Year() + n
	day := min(d.Day(), DaysIn(year, d.Month()))
	return New(year, d.Month(), day)
}
