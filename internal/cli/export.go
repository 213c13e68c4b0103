package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/julianstephens/deskcal/internal/events"
	"github.com/julianstephens/deskcal/internal/models"
)

type ExportCmd struct {
	File string `arg:"" optional:"" help:"Output file; stdout when omitted."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	snapshot := ctx.Store.Export()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize export: %w", err)
	}

	if c.File == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(c.File, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.File, err)
	}
	fmt.Printf("Exported %d events to %s\n", len(snapshot.Events), c.File)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export file produced by 'deskcal export'."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	var snapshot models.EventExport
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}
	if snapshot.Version != "" && snapshot.Version != events.ExportVersion {
		fmt.Printf("Warning: export version %s differs from %s\n", snapshot.Version, events.ExportVersion)
	}

	imported, err := ctx.Store.Import(snapshot.Events)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d events\n", len(imported))
	return nil
}
