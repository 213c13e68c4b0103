package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/deskcal/internal/cli"
	"github.com/julianstephens/deskcal/internal/config"
	"github.com/julianstephens/deskcal/internal/logger"
	"github.com/julianstephens/deskcal/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/deskcal/config.yaml"`
	Data    string `help:"Storage file path (overrides config)." type:"path"`

	Init   cli.InitCmd   `cmd:"" help:"Initialize deskcal storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Add    cli.AddCmd    `cmd:"" help:"Add an event."`
	List   cli.ListCmd   `cmd:"" help:"List events."`
	Month  cli.MonthCmd  `cmd:"" help:"Show a month grid."`
	Edit   cli.EditCmd   `cmd:"" help:"Edit an event."`
	Done   cli.DoneCmd   `cmd:"" help:"Toggle an event's completion."`
	Delete cli.DeleteCmd `cmd:"" help:"Delete an event."`
	Clear  cli.ClearCmd  `cmd:"" help:"Delete all events."`
	Search cli.SearchCmd `cmd:"" help:"Search events by text."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show event statistics."`
	Theme  cli.ThemeCmd  `cmd:"" help:"Show or set the widget theme."`
	Export cli.ExportCmd `cmd:"" help:"Export events to a snapshot file."`
	Import cli.ImportCmd `cmd:"" help:"Import events from a snapshot file."`
	Watch  cli.WatchCmd  `cmd:"" help:"Poll for due reminders."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("deskcal"),
		kong.Description("Desktop calendar widget / event engine"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	conf, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Data != "" {
		conf.StoragePath = CLI.Data
	}
	logger.SetLevel(logger.ParseLevel(conf.LogLevel))

	// Determine storage backend based on extension
	var provider storage.Provider
	if strings.HasSuffix(conf.StoragePath, ".json") {
		provider = storage.NewJSONStore(conf.StoragePath)
	} else {
		provider = storage.NewSQLiteStore(conf.StoragePath)
	}
	defer provider.Close()

	appCtx := &cli.Context{
		Provider: provider,
		Config:   conf,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
