package cli

import (
	"fmt"
	"sort"

	"github.com/julianstephens/deskcal/internal/dateutil"
)

type ListCmd struct {
	Date     string `short:"d" help:"Only events on this date (YYYY-MM-DD or 'today')."`
	Type     string `short:"T" help:"Only events of this type."`
	Upcoming int    `short:"u" help:"Only events in the next N days (0 uses the configured window)." default:"-1"`
	Overdue  bool   `short:"o" help:"Only uncompleted past-date events."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	switch {
	case c.Overdue:
		fmt.Println("Overdue events:")
		printEvents(ctx.Query.Overdue())

	case c.Upcoming >= 0:
		fmt.Println("Upcoming events:")
		printEvents(ctx.Query.Upcoming(c.Upcoming))

	case c.Date != "":
		date, err := resolveDate(c.Date)
		if err != nil {
			return err
		}
		d, err := dateutil.ParseDate(date)
		if err != nil {
			return err
		}
		fmt.Printf("Events on %s:\n", date)
		printEvents(ctx.Query.ByDate(d))

	case c.Type != "":
		evType, err := parseEventType(c.Type)
		if err != nil {
			return err
		}
		fmt.Printf("Events of type %s:\n", evType)
		printEvents(ctx.Query.ByType(evType))

	default:
		all := ctx.Store.All()
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].Date < all[j].Date
		})
		fmt.Printf("All events (%d):\n", len(all))
		printEvents(all)
	}

	return nil
}
