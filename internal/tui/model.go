package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/deskcal/internal/dateutil"
	"github.com/julianstephens/deskcal/internal/events"
	"github.com/julianstephens/deskcal/internal/models"
)

type SessionState int

const (
	StateMonth SessionState = iota
	StateAdding
	StateConfirmDelete
)

type EventFormModel struct {
	Title       string
	Date        string
	Time        string
	Type        models.EventType
	Description string
}

type Model struct {
	store *events.Store
	query *events.Query

	state SessionState
	keys  KeyMap
	help  help.Model

	year     int
	month    int
	selected time.Time

	dayEvents []models.Event
	listIndex int

	form       *huh.Form
	eventForm  *EventFormModel
	toDeleteID string

	now      time.Time
	width    int
	height   int
	quitting bool
}

func NewModel(store *events.Store, query *events.Query) Model {
	now := time.Now()
	m := Model{
		store:    store,
		query:    query,
		state:    StateMonth,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		year:     now.Year(),
		month:    int(now.Month()),
		selected: now,
		now:      now,
	}
	m.refreshDay()
	return m
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// refreshDay reloads the selected day's event list and clamps the list
// cursor.
func (m *Model) refreshDay() {
	m.dayEvents = m.query.ByDate(m.selected)
	if m.listIndex >= len(m.dayEvents) {
		m.listIndex = len(m.dayEvents) - 1
	}
	if m.listIndex < 0 {
		m.listIndex = 0
	}
}

// moveSelection shifts the selected day and follows it across month
// boundaries.
func (m *Model) moveSelection(days int) {
	m.selected = dateutil.AddDays(m.selected, days)
	m.year = m.selected.Year()
	m.month = int(m.selected.Month())
	m.listIndex = 0
	m.refreshDay()
}

// moveMonth shifts the displayed month, keeping the selection on the same
// day number where the target month has one.
func (m *Model) moveMonth(months int) {
	first := dateutil.FirstDayOfMonth(m.year, m.month)
	target := dateutil.AddMonths(first, months)
	m.year = target.Year()
	m.month = int(target.Month())

	day := m.selected.Day()
	if max := dateutil.DaysInMonth(m.year, m.month); day > max {
		day = max
	}
	m.selected = time.Date(m.year, time.Month(m.month), day, 0, 0, 0, 0, time.Local)
	m.listIndex = 0
	m.refreshDay()
}

func (m *Model) selectedEvent() *models.Event {
	if len(m.dayEvents) == 0 {
		return nil
	}
	return &m.dayEvents[m.listIndex]
}

func (m *Model) buildAddForm() {
	f := &EventFormModel{
		Date: m.selected.Format(dateutil.DateLayout),
		Type: models.TypeTodo,
	}
	m.eventForm = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&f.Title),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&f.Date).
				Validate(func(s string) error {
					_, err := dateutil.ParseDate(s)
					return err
				}),
			huh.NewInput().
				Title("Time").
				Description("HH:MM, leave blank for all-day").
				Value(&f.Time).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := dateutil.ParseClock(s)
					return err
				}),
			huh.NewSelect[models.EventType]().
				Title("Type").
				Options(
					huh.NewOption("Todo", models.TypeTodo),
					huh.NewOption("Reminder", models.TypeReminder),
					huh.NewOption("Birthday", models.TypeBirthday),
					huh.NewOption("Holiday", models.TypeHoliday),
					huh.NewOption("Meeting", models.TypeMeeting),
				).
				Value(&f.Type),
			huh.NewText().
				Title("Description").
				Lines(2).
				Value(&f.Description),
		),
	)
}

func (m *Model) submitAddForm() {
	f := m.eventForm
	m.store.Add(models.Event{
		Title:       f.Title,
		Date:        f.Date,
		Time:        f.Time,
		Type:        f.Type,
		Description: f.Description,
	})

	if d, err := dateutil.ParseDate(f.Date); err == nil {
		m.selected = d
		m.year = d.Year()
		m.month = int(d.Month())
	}
	m.refreshDay()
}
