package domain

import "time"

// Date is a calendar date without a time component. It is comparable,
// so it can be used directly as a map key in the sync cache.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// String renders the date in ISO form, e.g. "2024-03-01".
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}
