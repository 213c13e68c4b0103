package cli

import "fmt"

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	st := ctx.Query.Stats()
	fmt.Printf("Total:      %d\n", st.Total)
	fmt.Printf("Completed:  %d (%d%%)\n", st.Completed, st.CompletionRate)
	fmt.Printf("Pending:    %d\n", st.Pending)
	fmt.Printf("Overdue:    %d\n", st.Overdue)
	fmt.Printf("Due today:  %d\n", st.DueToday)

	info, err := ctx.Provider.Usage()
	if err != nil {
		return err
	}
	fmt.Printf("Storage:    %d items, %d bytes (%s)\n", info.ItemCount, info.ByteSize, ctx.Provider.Path())
	return nil
}
