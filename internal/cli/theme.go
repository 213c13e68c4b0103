package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/deskcal/internal/storage"
)

type ThemeCmd struct {
	Name string `arg:"" optional:"" help:"Theme to switch to; prints the current theme when omitted."`
}

// The engine treats the theme as an opaque blob owned by the widget layer;
// this command only moves it in and out of storage.
func (c *ThemeCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	if c.Name == "" {
		var current string
		err := ctx.Provider.Get(storage.KeyTheme, &current)
		if errors.Is(err, storage.ErrNotFound) {
			current = ctx.Config.Theme
		} else if err != nil {
			return err
		}
		fmt.Printf("Current theme: %s\n", current)
		return nil
	}

	if err := ctx.Provider.Save(storage.KeyTheme, c.Name); err != nil {
		return err
	}
	fmt.Printf("Theme set to: %s\n", c.Name)
	return nil
}
