package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/deskcal/internal/models"
	"github.com/julianstephens/deskcal/internal/remind"
)

type WatchCmd struct {
	Schedule string `short:"s" help:"Cron schedule for reminder polling (overrides config)."`
}

func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	spec := c.Schedule
	if spec == "" {
		spec = ctx.Config.ReminderCron
	}

	watcher := remind.New(ctx.Query, func(ev models.Event) {
		fmt.Printf("Reminder: %s at %s\n", ev.Title, ev.Time)
	}, nil)
	if err := watcher.Start(spec); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Printf("Watching for reminders (%s), press Ctrl+C to stop\n", spec)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	return nil
}
