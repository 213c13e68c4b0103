package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical calendar-date format used across the app.
	DateLayout = "2006-01-02"
	// ClockLayout is the canonical time-of-day format.
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD string in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseClock parses an HH:MM string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FirstDayOfMonth returns midnight on the 1st of the given month.
// Months are 1-indexed.
func FirstDayOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
}

// LastDayOfMonth returns midnight on the final day of the given month.
func LastDayOfMonth(year, month int) time.Time {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	return LastDayOfMonth(year, month).Day()
}

// DayOfWeek returns the weekday of the given date, 0=Sunday through
// 6=Saturday.
func DayOfWeek(year, month, day int) int {
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local).Weekday())
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Sunday || wd == time.Saturday
}

// IsSameDay reports whether two instants fall on the same calendar date,
// ignoring time-of-day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddDays shifts a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMonths shifts a date by n calendar months using Go's native
// normalization: Jan 31 plus one month lands on Mar 2 or Mar 3, not on the
// end of February.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// FormatDate substitutes the tokens YYYY, MM, DD, HH, mm and ss with
// zero-padded components of t. Anything else in the pattern passes through
// unchanged.
func FormatDate(t time.Time, pattern string) string {
	r := strings.NewReplacer(
		"YYYY", fmt.Sprintf("%04d", t.Year()),
		"MM", fmt.Sprintf("%02d", int(t.Month())),
		"DD", fmt.Sprintf("%02d", t.Day()),
		"HH", fmt.Sprintf("%02d", t.Hour()),
		"mm", fmt.Sprintf("%02d", t.Minute()),
		"ss", fmt.Sprintf("%02d", t.Second()),
	)
	return r.Replace(pattern)
}

// Cell is one position in a 6x7 month grid.
type Cell struct {
	Day   int
	Month int
	Year  int

	IsCurrentMonth bool
	IsToday        bool
	IsWeekend      bool
	HasEvents      bool
}

// Date returns the cell's date at local midnight.
func (c Cell) Date() time.Time {
	return time.Date(c.Year, time.Month(c.Month), c.Day, 0, 0, 0, 0, time.Local)
}

// GridSize is the fixed number of cells in a month grid: 6 rows of 7 days.
const GridSize = 42

// BuildCalendarGrid returns the 42 consecutive days rendered for a month
// view, starting on the Sunday on or before the 1st and spilling into the
// adjacent months as needed. Cells outside the target month are never
// marked as today, even when today falls inside the grid's spillover.
func BuildCalendarGrid(year, month int, today time.Time) []Cell {
	first := FirstDayOfMonth(year, month)
	start := AddDays(first, -DayOfWeek(year, month, 1))

	cells := make([]Cell, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		d := AddDays(start, i)
		current := int(d.Month()) == month && d.Year() == year
		cells = append(cells, Cell{
			Day:            d.Day(),
			Month:          int(d.Month()),
			Year:           d.Year(),
			IsCurrentMonth: current,
			IsToday:        current && IsSameDay(d, today),
			IsWeekend:      IsWeekend(d),
		})
	}
	return cells
}
