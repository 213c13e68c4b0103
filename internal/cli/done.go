package cli

import "fmt"

type DoneCmd struct {
	ID string `arg:"" help:"Event id (or unambiguous prefix)."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	ev, err := findEvent(ctx.Store, c.ID)
	if err != nil {
		return err
	}

	toggled, err := ctx.Store.ToggleComplete(ev.ID)
	if err != nil {
		return err
	}

	state := "pending"
	if toggled.Completed {
		state = "completed"
	}
	fmt.Printf("Marked %s as %s\n", toggled.Title, state)
	return nil
}
