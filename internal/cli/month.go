package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/deskcal/internal/dateutil"
)

var (
	monthTitleStyle = lipgloss.NewStyle().Bold(true)
	weekdayStyle    = lipgloss.NewStyle().Faint(true)
	todayStyle      = lipgloss.NewStyle().Reverse(true).Bold(true)
	weekendStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	adjacentStyle   = lipgloss.NewStyle().Faint(true)
)

type MonthCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM); defaults to the current month."`
}

func (c *MonthCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q, use YYYY-MM", c.Month)
		}
		year, month = t.Year(), int(t.Month())
	}

	cells := ctx.Query.MonthGrid(year, month)
	fmt.Println(renderMonth(year, month, cells))

	// Day detail below the grid when any current-month day has events.
	for _, ev := range ctx.Query.ByMonth(year, month) {
		fmt.Println("  " + formatEventLine(ev))
	}
	return nil
}

// renderMonth lays the 42 cells of a month grid out as six rows of seven
// columns, Sunday first.
func renderMonth(year, month int, cells []dateutil.Cell) string {
	var b strings.Builder

	title := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local).Format("January 2006")
	b.WriteString(monthTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(weekdayStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	for row := 0; row < 6; row++ {
		for col := 0; col < 7; col++ {
			b.WriteString(renderCell(cells[row*7+col]))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderCell(c dateutil.Cell) string {
	marker := " "
	if c.HasEvents {
		marker = "."
	}
	if _, ok := dateutil.FixedHoliday(c.Month, c.Day); ok && c.IsCurrentMonth {
		marker = "*"
	}

	text := fmt.Sprintf("%3d%s", c.Day, marker)
	switch {
	case c.IsToday:
		return todayStyle.Render(text)
	case !c.IsCurrentMonth:
		return adjacentStyle.Render(text)
	case c.IsWeekend:
		return weekendStyle.Render(text)
	default:
		return text
	}
}
