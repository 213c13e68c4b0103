package dateutil

import "time"

// Fixed-date holidays only. Movable feasts and regional calendars are out
// of scope; callers must treat a miss as "no holiday", not as an error.
var fixedHolidays = map[[2]int]string{
	{1, 1}:   "New Year's Day",
	{2, 14}:  "Valentine's Day",
	{3, 8}:   "International Women's Day",
	{5, 1}:   "Labour Day",
	{6, 1}:   "Children's Day",
	{9, 10}:  "Teachers' Day",
	{10, 1}:  "National Day",
	{12, 25}: "Christmas Day",
}

// FixedHoliday looks up the holiday name for a (month, day) pair.
func FixedHoliday(month, day int) (string, bool) {
	name, ok := fixedHolidays[[2]int{month, day}]
	return name, ok
}

// LunarInfo describes a date in the lunar calendar. The widget reserves a
// spot for this in day cells but no lunar library is wired up yet, so every
// field is empty.
type LunarInfo struct {
	Month    string
	Day      string
	Year     string
	Zodiac   string
	Festival string
}

// Lunar returns the lunar-calendar info for a date. Currently a stub.
func Lunar(_ time.Time) LunarInfo {
	return LunarInfo{}
}
