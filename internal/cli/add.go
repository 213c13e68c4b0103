package cli

import (
	"fmt"

	"github.com/julianstephens/deskcal/internal/models"
)

type AddCmd struct {
	Title string `arg:"" help:"Event title."`
	Date  string `short:"d" help:"Event date (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
	Time  string `short:"t" help:"Event time (HH:MM); omit for an all-day event."`
	Type  string `short:"T" help:"Event type (todo|reminder|birthday|holiday|meeting)." default:"todo"`
	Desc  string `short:"D" help:"Event description."`
}

func (c *AddCmd) Validate() error {
	return validateClock(c.Time)
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	evType, err := parseEventType(c.Type)
	if err != nil {
		return err
	}

	ev := ctx.Store.Add(models.Event{
		Title:       c.Title,
		Date:        date,
		Time:        c.Time,
		Type:        evType,
		Description: c.Desc,
	})

	fmt.Printf("Added event: %s on %s (ID: %s)\n", ev.Title, ev.Date, shortID(ev.ID))
	return nil
}
