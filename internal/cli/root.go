package cli

import (
	"github.com/matrixxonek/RPG-Planner/internal/editor"
	"github.com/matrixxonek/RPG-Planner/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App holds the wired dependencies used by CLI commands and the TUI.
type App struct {
	Store   *store.Store
	Session *editor.Session
	Log     *logrus.Entry

	// IsInteractive reports whether stdin is a terminal. The TUI refuses
	// to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "rpgplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "rpgplan",
		Short: "Calendar planner for events and tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return cmd.Help()
			}
			return RunTUI(app)
		},
	}

	root.AddCommand(
		newServeCmd(app),
		newExportCmd(app),
	)

	return root
}
