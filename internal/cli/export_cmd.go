package cli

import (
	"fmt"
	"os"

	"github.com/matrixxonek/RPG-Planner/internal/ics"
	"github.com/spf13/cobra"
)

// newExportCmd returns the "export" subcommand, which loads both remote
// collections and writes them as an iCalendar document.
func newExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all events and tasks as iCalendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.LoadAll(cmd.Context()); err != nil {
				return fmt.Errorf("loading items: %w", err)
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			return ics.Export(out, app.Store.Items())
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to file instead of stdout")
	return cmd
}
