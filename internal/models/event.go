package models

import "time"

// EventType tags what kind of calendar item an event is.
type EventType string

const (
	TypeTodo     EventType = "todo"
	TypeReminder EventType = "reminder"
	TypeBirthday EventType = "birthday"
	TypeHoliday  EventType = "holiday"
	TypeMeeting  EventType = "meeting"
)

// Event represents a single user-created calendar item.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`           // YYYY-MM-DD format
	Time        string    `json:"time,omitempty"` // HH:MM format; empty means all-day
	Type        EventType `json:"type"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AllDay reports whether the event has no time-of-day component.
func (e *Event) AllDay() bool {
	return e.Time == ""
}

// EventPatch carries the optional fields an update may change. Identity
// fields (ID, CreatedAt) are deliberately not representable here.
type EventPatch struct {
	Title       *string
	Date        *string
	Time        *string
	Type        *EventType
	Description *string
	Completed   *bool
}

// EventExport is the versioned envelope produced by a store export and
// accepted back by import.
type EventExport struct {
	Events     []Event   `json:"events"`
	ExportedAt time.Time `json:"exported_at"`
	Version    string    `json:"version"`
}
