package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/deskcal/internal/dateutil"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateAdding:
		return docStyle.Render(m.form.View())
	case StateConfirmDelete:
		return m.viewConfirmDelete()
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		panelStyle.Render(m.viewGrid()),
		panelStyle.Render(m.viewDay()),
	)

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStats(),
		m.help.View(m.keys),
	)

	return docStyle.Render(ui)
}

func (m Model) viewHeader() string {
	title := dateutil.FirstDayOfMonth(m.year, m.month).Format("January 2006")
	clock := clockStyle.Render(m.now.Format("Mon 15:04:05"))
	return lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render(title), " ", clock)
}

func (m Model) viewGrid() string {
	cells := m.query.MonthGrid(m.year, m.month)

	var b strings.Builder
	b.WriteString(weekdayHeaderStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	for row := 0; row < 6; row++ {
		for col := 0; col < 7; col++ {
			b.WriteString(m.renderCell(cells[row*7+col]))
		}
		if row < 5 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderCell(c dateutil.Cell) string {
	marker := " "
	if c.HasEvents {
		marker = "."
	}
	text := fmt.Sprintf("%3d%s", c.Day, marker)

	selected := c.IsCurrentMonth && dateutil.IsSameDay(c.Date(), m.selected)
	switch {
	case selected:
		return selectedCellStyle.Render(text)
	case c.IsToday:
		return todayCellStyle.Render(text)
	case !c.IsCurrentMonth:
		return adjacentCellStyle.Render(text)
	case c.IsWeekend:
		return weekendCellStyle.Render(text)
	default:
		return text
	}
}

func (m Model) viewDay() string {
	var b strings.Builder

	heading := m.selected.Format("Mon, Jan 2")
	if name, ok := dateutil.FixedHoliday(int(m.selected.Month()), m.selected.Day()); ok {
		heading += "  " + weekendCellStyle.Render(name)
	}
	b.WriteString(heading)
	b.WriteString("\n\n")

	if len(m.dayEvents) == 0 {
		b.WriteString(adjacentCellStyle.Render("No events"))
		return b.String()
	}

	for i, ev := range m.dayEvents {
		when := "all-day"
		if !ev.AllDay() {
			when = ev.Time
		}
		line := fmt.Sprintf("%-7s  %s", when, ev.Title)
		if ev.Completed {
			line = completedStyle.Render(line)
		}
		if i == m.listIndex {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(m.dayEvents)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewStats() string {
	st := m.query.Stats()
	reminders := len(m.query.DueReminders(m.now))

	line := fmt.Sprintf("%d events, %d pending, %d overdue, %d due today", st.Total, st.Pending, st.Overdue, st.DueToday)
	if reminders > 0 {
		line += "  " + dangerStyle.Render(fmt.Sprintf("%d reminder(s) due now", reminders))
	}
	return clockStyle.Render(line)
}

func (m Model) viewConfirmDelete() string {
	title := ""
	if ev, ok := m.store.Get(m.toDeleteID); ok {
		title = ev.Title
	}

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q?", title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
