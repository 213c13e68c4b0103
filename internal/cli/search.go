package cli

import "fmt"

type SearchCmd struct {
	Query string `arg:"" help:"Text to match against titles and descriptions."`
}

func (c *SearchCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	matches := ctx.Query.Search(c.Query)
	fmt.Printf("Found %d events matching %q:\n", len(matches), c.Query)
	printEvents(matches)
	return nil
}
