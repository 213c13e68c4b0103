package cli

import "fmt"

type DeleteCmd struct {
	ID string `arg:"" help:"Event id (or unambiguous prefix)."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	ev, err := findEvent(ctx.Store, c.ID)
	if err != nil {
		return err
	}

	if !ctx.Store.Delete(ev.ID) {
		return fmt.Errorf("no event with id %s", c.ID)
	}
	fmt.Printf("Deleted event: %s\n", ev.Title)
	return nil
}

type ClearCmd struct {
	Force bool `help:"Actually delete every event." required:""`
}

func (c *ClearCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	n := ctx.Store.Len()
	ctx.Store.ClearAll()
	fmt.Printf("Deleted %d events\n", n)
	return nil
}
