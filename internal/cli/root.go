package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/deskcal/internal/config"
	"github.com/julianstephens/deskcal/internal/dateutil"
	"github.com/julianstephens/deskcal/internal/events"
	"github.com/julianstephens/deskcal/internal/models"
	"github.com/julianstephens/deskcal/internal/storage"
)

type Context struct {
	Provider storage.Provider
	Config   *config.Config

	Store *events.Store
	Query *events.Query
}

// Open loads the storage backend and builds the engine. Commands other than
// init call this first.
func (ctx *Context) Open() error {
	if err := ctx.Provider.Load(); err != nil {
		return err
	}
	ctx.Store = events.NewStore(ctx.Provider, time.Now)
	ctx.Query = events.NewQuery(ctx.Store, time.Now, events.Options{
		UpcomingWindowDays:   ctx.Config.UpcomingWindowDays,
		ReminderToleranceMin: ctx.Config.ReminderToleranceMin,
	})
	return nil
}

// resolveDate turns user input into a YYYY-MM-DD string, accepting "today"
// and "tomorrow" as shorthands.
func resolveDate(s string) (string, error) {
	switch strings.ToLower(s) {
	case "", "today":
		return time.Now().Format(dateutil.DateLayout), nil
	case "tomorrow":
		return dateutil.AddDays(time.Now(), 1).Format(dateutil.DateLayout), nil
	}

	if _, err := dateutil.ParseDate(s); err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD, 'today' or 'tomorrow'", s)
	}
	return s, nil
}

func parseEventType(s string) (models.EventType, error) {
	switch models.EventType(strings.ToLower(s)) {
	case models.TypeTodo:
		return models.TypeTodo, nil
	case models.TypeReminder:
		return models.TypeReminder, nil
	case models.TypeBirthday:
		return models.TypeBirthday, nil
	case models.TypeHoliday:
		return models.TypeHoliday, nil
	case models.TypeMeeting:
		return models.TypeMeeting, nil
	default:
		return "", fmt.Errorf("invalid event type %q (todo|reminder|birthday|holiday|meeting)", s)
	}
}

func validateClock(s string) error {
	if s == "" {
		return nil
	}
	_, err := dateutil.ParseClock(s)
	return err
}

func printEvents(evs []models.Event) {
	if len(evs) == 0 {
		fmt.Println("  No events")
		return
	}
	for _, ev := range evs {
		fmt.Println("  " + formatEventLine(ev))
	}
}

func formatEventLine(ev models.Event) string {
	mark := "[ ]"
	if ev.Completed {
		mark = "[x]"
	}

	when := ev.Date
	if !ev.AllDay() {
		when += " " + ev.Time
	} else {
		when += "      " // align with HH:MM column
	}

	line := fmt.Sprintf("%s %s  %-30s  %s", mark, when, ev.Title, ev.Type)
	if ev.Description != "" {
		line += "  - " + ev.Description
	}
	return fmt.Sprintf("%s  (%s)", line, shortID(ev.ID))
}

// shortID abbreviates an event id for display; full ids are still accepted
// everywhere an id is taken as input.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// findEvent resolves an id or unambiguous id prefix to a full event.
func findEvent(store *events.Store, id string) (models.Event, error) {
	if ev, ok := store.Get(id); ok {
		return ev, nil
	}

	var matches []models.Event
	for _, ev := range store.All() {
		if strings.HasPrefix(ev.ID, id) {
			matches = append(matches, ev)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Event{}, fmt.Errorf("no event with id %s", id)
	default:
		return models.Event{}, fmt.Errorf("id prefix %s is ambiguous (%d matches)", id, len(matches))
	}
}
