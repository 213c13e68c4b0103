package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/deskcal/internal/events"
	"github.com/julianstephens/deskcal/internal/models"
)

type EditCmd struct {
	ID    string  `arg:"" help:"Event id (or unambiguous prefix)."`
	Title *string `short:"n" help:"New title."`
	Date  *string `short:"d" help:"New date (YYYY-MM-DD, 'today' or 'tomorrow')."`
	Time  *string `short:"t" help:"New time (HH:MM); pass an empty string to make the event all-day."`
	Type  *string `short:"T" help:"New type (todo|reminder|birthday|holiday|meeting)."`
	Desc  *string `short:"D" help:"New description."`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	ev, err := findEvent(ctx.Store, c.ID)
	if err != nil {
		return err
	}

	patch := models.EventPatch{
		Title:       c.Title,
		Description: c.Desc,
	}
	if c.Date != nil {
		date, err := resolveDate(*c.Date)
		if err != nil {
			return err
		}
		patch.Date = &date
	}
	if c.Time != nil {
		if err := validateClock(*c.Time); err != nil {
			return err
		}
		patch.Time = c.Time
	}
	if c.Type != nil {
		evType, err := parseEventType(*c.Type)
		if err != nil {
			return err
		}
		patch.Type = &evType
	}

	updated, err := ctx.Store.Update(ev.ID, patch)
	if errors.Is(err, events.ErrNotFound) {
		return fmt.Errorf("no event with id %s", c.ID)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Updated event: %s\n", formatEventLine(updated))
	return nil
}
