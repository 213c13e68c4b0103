package events

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/deskcal/internal/dateutil"
	"github.com/julianstephens/deskcal/internal/models"
)

// Options holds the tunable windows used by derived views. The literals the
// widget historically used (7-day upcoming window, 5-minute reminder
// tolerance) are defaults here, not constants.
type Options struct {
	UpcomingWindowDays   int
	ReminderToleranceMin int
}

// DefaultOptions returns the stock query windows.
func DefaultOptions() Options {
	return Options{
		UpcomingWindowDays:   7,
		ReminderToleranceMin: 5,
	}
}

// Query provides read-only derived views over a store's collection. It
// never mutates store state.
type Query struct {
	store *Store
	clock func() time.Time
	opts  Options
}

// NewQuery builds a query engine over the given store. Zero option fields
// fall back to defaults; a nil clock defaults to time.Now.
func NewQuery(store *Store, clock func() time.Time, opts Options) *Query {
	if clock == nil {
		clock = time.Now
	}
	def := DefaultOptions()
	if opts.UpcomingWindowDays <= 0 {
		opts.UpcomingWindowDays = def.UpcomingWindowDays
	}
	if opts.ReminderToleranceMin <= 0 {
		opts.ReminderToleranceMin = def.ReminderToleranceMin
	}
	return &Query{
		store: store,
		clock: clock,
		opts:  opts,
	}
}

// ByDate returns the events scheduled on the given calendar date, in
// display order: timed events first, ascending by time, then all-day
// events, each group keeping insertion order.
func (q *Query) ByDate(date time.Time) []models.Event {
	var out []models.Event
	for _, ev := range q.store.All() {
		d, err := dateutil.ParseDate(ev.Date)
		if err != nil {
			continue
		}
		if dateutil.IsSameDay(d, date) {
			out = append(out, ev)
		}
	}
	SortForDisplay(out)
	return out
}

// ByMonth returns the events whose date falls in the given month.
func (q *Query) ByMonth(year, month int) []models.Event {
	var out []models.Event
	for _, ev := range q.store.All() {
		d, err := dateutil.ParseDate(ev.Date)
		if err != nil {
			continue
		}
		if d.Year() == year && int(d.Month()) == month {
			out = append(out, ev)
		}
	}
	return out
}

// ByType returns the events carrying the given type tag.
func (q *Query) ByType(t models.EventType) []models.Event {
	var out []models.Event
	for _, ev := range q.store.All() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Today returns the events scheduled on the current date.
func (q *Query) Today() []models.Event {
	return q.ByDate(q.clock())
}

// Upcoming returns the events dated within [today, today+windowDays],
// inclusive on both ends, ascending by date. A non-positive window uses the
// configured default.
func (q *Query) Upcoming(windowDays int) []models.Event {
	if windowDays <= 0 {
		windowDays = q.opts.UpcomingWindowDays
	}

	today := midnight(q.clock())
	limit := dateutil.AddDays(today, windowDays)

	var out []models.Event
	for _, ev := range q.store.All() {
		d, err := dateutil.ParseDate(ev.Date)
		if err != nil {
			continue
		}
		if !d.Before(today) && !d.After(limit) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// Overdue returns the uncompleted events dated strictly before today.
func (q *Query) Overdue() []models.Event {
	today := midnight(q.clock())

	var out []models.Event
	for _, ev := range q.store.All() {
		if ev.Completed {
			continue
		}
		d, err := dateutil.ParseDate(ev.Date)
		if err != nil {
			continue
		}
		if d.Before(today) {
			out = append(out, ev)
		}
	}
	return out
}

// Search returns the events whose title or description contains the query,
// case-insensitively.
func (q *Query) Search(query string) []models.Event {
	needle := strings.ToLower(query)

	var out []models.Event
	for _, ev := range q.store.All() {
		if strings.Contains(strings.ToLower(ev.Title), needle) ||
			strings.Contains(strings.ToLower(ev.Description), needle) {
			out = append(out, ev)
		}
	}
	return out
}

// Stats summarizes the collection.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	DueToday       int `json:"due_today"`
	CompletionRate int `json:"completion_rate"` // percentage, 0 when empty
}

// Stats computes aggregate statistics over the collection.
func (q *Query) Stats() Stats {
	all := q.store.All()

	st := Stats{Total: len(all)}
	for _, ev := range all {
		if ev.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	st.Overdue = len(q.Overdue())
	st.DueToday = len(q.Today())
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// DueReminders returns the uncompleted, timed events scheduled today whose
// time-of-day is within the configured tolerance of now, inclusive. The
// comparison runs in minutes since midnight.
func (q *Query) DueReminders(now time.Time) []models.Event {
	nowMin := now.Hour()*60 + now.Minute()

	var out []models.Event
	for _, ev := range q.store.All() {
		if ev.Completed || ev.AllDay() {
			continue
		}
		d, err := dateutil.ParseDate(ev.Date)
		if err != nil || !dateutil.IsSameDay(d, now) {
			continue
		}
		evMin, err := dateutil.ParseClock(ev.Time)
		if err != nil {
			continue
		}
		diff := evMin - nowMin
		if diff < 0 {
			diff = -diff
		}
		if diff <= q.opts.ReminderToleranceMin {
			out = append(out, ev)
		}
	}
	return out
}

// MonthGrid returns the 42-cell calendar grid for a month with each cell's
// HasEvents flag filled in from the collection.
func (q *Query) MonthGrid(year, month int) []dateutil.Cell {
	cells := dateutil.BuildCalendarGrid(year, month, q.clock())

	dates := make(map[string]bool, q.store.Len())
	for _, ev := range q.store.All() {
		dates[ev.Date] = true
	}

	for i := range cells {
		cells[i].HasEvents = dates[cells[i].Date().Format(dateutil.DateLayout)]
	}
	return cells
}

// SortForDisplay orders events for a day listing: timed events before
// all-day ones, ascending by time among the timed. The sort is stable so
// ties keep insertion order.
func SortForDisplay(evs []models.Event) {
	sort.SliceStable(evs, func(i, j int) bool {
		a, b := evs[i], evs[j]
		switch {
		case a.AllDay():
			return false
		case b.AllDay():
			return true
		default:
			return a.Time < b.Time
		}
	})
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
