package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	}

	switch m.state {
	case StateAdding:
		return m.updateAdding(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	default:
		return m.updateMonth(msg)
	}
}

func (m Model) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(keyMsg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveSelection(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.moveSelection(-7)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveSelection(7)

	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.moveMonth(-1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.moveMonth(1)

	case key.Matches(keyMsg, m.keys.Today):
		m.selected = m.now
		m.year = m.now.Year()
		m.month = int(m.now.Month())
		m.listIndex = 0
		m.refreshDay()

	case key.Matches(keyMsg, m.keys.NextEvent):
		if m.listIndex < len(m.dayEvents)-1 {
			m.listIndex++
		}
	case key.Matches(keyMsg, m.keys.PrevEvent):
		if m.listIndex > 0 {
			m.listIndex--
		}

	case key.Matches(keyMsg, m.keys.Add):
		m.state = StateAdding
		m.buildAddForm()
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Toggle):
		if ev := m.selectedEvent(); ev != nil {
			m.store.ToggleComplete(ev.ID)
			m.refreshDay()
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if ev := m.selectedEvent(); ev != nil {
			m.toDeleteID = ev.ID
			m.state = StateConfirmDelete
		}
	}

	return m, nil
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitAddForm()
		m.state = StateMonth
		return m, nil
	case huh.StateAborted:
		m.state = StateMonth
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.store.Delete(m.toDeleteID)
		m.toDeleteID = ""
		m.state = StateMonth
		m.refreshDay()
	case "n", "N", "esc", "q":
		m.toDeleteID = ""
		m.state = StateMonth
	}

	return m, nil
}
