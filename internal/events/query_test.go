package events

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/deskcal/internal/dateutil"
	"github.com/julianstephens/deskcal/internal/models"
	"github.com/julianstephens/deskcal/internal/storage"
)

// fixedNow is a Friday. Tests that care about "today" pin the clock here.
var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

func setupQuery(t *testing.T) (*Store, *Query) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deskcal.json")
	p := storage.NewJSONStore(path)
	if err := p.Init(); err != nil {
		t.Fatalf("failed to initialize storage: %v", err)
	}
	t.Cleanup(func() { p.Close() })

	clock := func() time.Time { return fixedNow }
	store := NewStore(p, clock)
	return store, NewQuery(store, clock, Options{})
}

func titles(evs []models.Event) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.Title
	}
	return out
}

func TestByDate(t *testing.T) {
	store, q := setupQuery(t)

	store.Add(models.Event{Title: "Pay rent", Date: "2024-03-01", Time: "09:00"})
	store.Add(models.Event{Title: "Other day", Date: "2024-03-02"})

	got := q.ByDate(time.Date(2024, 3, 1, 18, 30, 0, 0, time.Local))
	if len(got) != 1 || got[0].Title != "Pay rent" {
		t.Errorf("ByDate = %v, want [Pay rent]", titles(got))
	}
}

func TestByDateDisplayOrder(t *testing.T) {
	store, q := setupQuery(t)

	store.Add(models.Event{Title: "all-day", Date: "2024-03-01"})
	store.Add(models.Event{Title: "noon", Date: "2024-03-01", Time: "12:00"})
	store.Add(models.Event{Title: "morning", Date: "2024-03-01", Time: "09:00"})

	got := titles(q.ByDate(fixedNow))
	want := []string{"morning", "noon", "all-day"}
	if len(got) != len(want) {
		t.Fatalf("ByDate returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ByDate order = %v, want %v", got, want)
		}
	}
}

func TestByMonth(t *testing.T) {
	store, q := setupQuery(t)

	store.Add(models.Event{Title: "in", Date: "2024-03-15"})
	store.Add(models.Event{Title: "other month", Date: "2024-04-01"})
	store.Add(models.Event{Title: "other year", Date: "2023-03-15"})

	got := q.ByMonth(2024, 3)
	if len(got) != 1 || got[0].Title != "in" {
		t.Errorf("ByMonth = %v, want [in]", titles(got))
	}
}

func TestByType(t *testing.T) {
	store, q := setupQuery(t)

	store.Add(models.Event{Title: "b-day", Date: "2024-03-10", Type: models.TypeBirthday})
	store.Add(models.Event{Title: "chore", Date: "2024-03-10"})

	got := q.ByType(models.TypeBirthday)
	if len(got) != 1 || got[0].Title != "b-day" {
		t.Errorf("ByType = %v, want [b-day]", titles(got))
	}
}

func TestUpcomingWindow(t *testing.T) {
	store, q := setupQuery(t)

	store.Add(models.Event{Title: "yesterday", Date: "2024-02-29"})
	store.Add(models.Event{Title: "today", Date: "2024-03-01"})
	store.Add(models.Event{Title: "boundary", Date: "2024-03-08"}) // today + 7
	store.Add(models.Event{Title: "past window", Date: "2024-03-09"})

	got := titles(q.Upcoming(0)) // default 7-day window
	want := []string{"today", "boundary"}
	if len(got) != len(want) {
		t.Fatalf("Upcoming = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Upcoming order = %v, want %v", got, want)
		}
	}

	// Narrower explicit window.
	got = titles(q.Upcoming(3))
	if len(got) != 1 || got[0] != "today" {
		t.Errorf("Upcoming(3) = %v, want [today]", got)
	}
}

func TestOverdue(t *testing.T) {
	store, q := setupQuery(t)

	store.Add(models.Event{Title: "late", Date: "2024-02-20"})
	done := store.Add(models.Event{Title: "late but done", Date: "2024-02-20"})
	store.ToggleComplete(done.ID)
	store.Add(models.Event{Title: "today", Date: "2024-03-01"})

	got := q.Overdue()
	if len(got) != 1 || got[0].Title != "late" {
		t.Errorf("Overdue = %v, want [late]", titles(got))
	}
}

func TestSearch(t *testing.T) {
	store, q := setupQuery(t)

	store.Add(models.Event{Title: "Dentist Appointment", Date: "2024-03-05"})
	store.Add(models.Event{Title: "Groceries", Description: "milk for the dentist visit", Date: "2024-03-06"})
	store.Add(models.Event{Title: "Unrelated", Date: "2024-03-07"})

	got := q.Search("DENTIST")
	if len(got) != 2 {
		t.Errorf("Search matched %v, want 2 events", titles(got))
	}

	if got := q.Search("nothing matches this"); len(got) != 0 {
		t.Errorf("Search = %v, want none", titles(got))
	}
}

func TestStats(t *testing.T) {
	store, q := setupQuery(t)

	store.Add(models.Event{Title: "overdue", Date: "2024-02-20"})
	store.Add(models.Event{Title: "today", Date: "2024-03-01"})
	done := store.Add(models.Event{Title: "done", Date: "2024-03-10"})
	store.ToggleComplete(done.ID)

	st := q.Stats()
	if st.Total != 3 || st.Completed != 1 || st.Pending != 2 {
		t.Errorf("counts = %+v", st)
	}
	if st.Overdue != 1 || st.DueToday != 1 {
		t.Errorf("derived counts = %+v", st)
	}
	if st.CompletionRate != 33 {
		t.Errorf("CompletionRate = %d, want 33", st.CompletionRate)
	}
}

func TestStatsEmptyCollection(t *testing.T) {
	_, q := setupQuery(t)

	st := q.Stats()
	if st.Total != 0 || st.CompletionRate != 0 {
		t.Errorf("empty stats = %+v, want zeroes", st)
	}
}

func TestDueReminders(t *testing.T) {
	store, q := setupQuery(t)

	store.Add(models.Event{Title: "Pay rent", Date: "2024-03-01", Time: "09:00"})
	store.Add(models.Event{Title: "all-day", Date: "2024-03-01"})
	store.Add(models.Event{Title: "tomorrow", Date: "2024-03-02", Time: "09:00"})
	done := store.Add(models.Event{Title: "done", Date: "2024-03-01", Time: "09:00"})
	store.ToggleComplete(done.ID)

	at := func(hh, mm int) time.Time {
		return time.Date(2024, 3, 1, hh, mm, 0, 0, time.Local)
	}

	// Inside the 5-minute tolerance.
	got := q.DueReminders(at(9, 3))
	if len(got) != 1 || got[0].Title != "Pay rent" {
		t.Errorf("DueReminders(09:03) = %v, want [Pay rent]", titles(got))
	}

	// Tolerance is inclusive.
	if got := q.DueReminders(at(9, 5)); len(got) != 1 {
		t.Errorf("DueReminders(09:05) = %v, want [Pay rent]", titles(got))
	}
	if got := q.DueReminders(at(8, 55)); len(got) != 1 {
		t.Errorf("DueReminders(08:55) = %v, want [Pay rent]", titles(got))
	}

	// Outside the tolerance.
	if got := q.DueReminders(at(9, 10)); len(got) != 0 {
		t.Errorf("DueReminders(09:10) = %v, want none", titles(got))
	}
}

func TestDueRemindersConfigurableTolerance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskcal.json")
	p := storage.NewJSONStore(path)
	if err := p.Init(); err != nil {
		t.Fatalf("failed to initialize storage: %v", err)
	}
	clock := func() time.Time { return fixedNow }
	store := NewStore(p, clock)
	q := NewQuery(store, clock, Options{ReminderToleranceMin: 1})

	store.Add(models.Event{Title: "tight", Date: "2024-03-01", Time: "09:00"})

	if got := q.DueReminders(time.Date(2024, 3, 1, 9, 3, 0, 0, time.Local)); len(got) != 0 {
		t.Errorf("DueReminders beyond 1-minute tolerance = %v, want none", titles(got))
	}
	if got := q.DueReminders(time.Date(2024, 3, 1, 9, 1, 0, 0, time.Local)); len(got) != 1 {
		t.Errorf("DueReminders within 1-minute tolerance = %v, want [tight]", titles(got))
	}
}

func TestQueriesNeverReturnDeleted(t *testing.T) {
	store, q := setupQuery(t)

	ev := store.Add(models.Event{Title: "doomed", Date: "2024-03-01"})
	store.Delete(ev.ID)

	if got := q.ByDate(fixedNow); len(got) != 0 {
		t.Errorf("ByDate = %v after delete", titles(got))
	}
	if got := q.ByMonth(2024, 3); len(got) != 0 {
		t.Errorf("ByMonth = %v after delete", titles(got))
	}
	if got := q.Search("doomed"); len(got) != 0 {
		t.Errorf("Search = %v after delete", titles(got))
	}
}

func TestMonthGrid(t *testing.T) {
	store, q := setupQuery(t)

	store.Add(models.Event{Title: "marked", Date: "2024-03-15"})
	// Spillover day from February in March's grid.
	store.Add(models.Event{Title: "spill", Date: "2024-02-26"})

	cells := q.MonthGrid(2024, 3)
	if len(cells) != dateutil.GridSize {
		t.Fatalf("grid has %d cells", len(cells))
	}

	var marked, spill, today bool
	for _, c := range cells {
		if c.Month == 3 && c.Day == 15 && c.HasEvents {
			marked = true
		}
		if c.Month == 2 && c.Day == 26 && c.HasEvents {
			spill = true
		}
		if c.IsToday {
			if c.Month != 3 || c.Day != 1 {
				t.Errorf("wrong cell marked today: %d-%d", c.Month, c.Day)
			}
			today = true
		}
	}
	if !marked {
		t.Error("event day not marked in grid")
	}
	if !spill {
		t.Error("adjacent-month event day not marked in grid")
	}
	if !today {
		t.Error("today not marked in grid")
	}
}
