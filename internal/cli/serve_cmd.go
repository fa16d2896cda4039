package cli

import (
	"fmt"
	"net/http"

	"github.com/matrixxonek/RPG-Planner/internal/server"
	"github.com/spf13/cobra"
)

// newServeCmd returns the "serve" subcommand, which runs the backend the
// planner syncs against: two REST collections over a SQLite database.
func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the sync backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading server config: %w", err)
			}

			db, err := server.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			srv := server.New(server.NewEventRepo(db), server.NewTaskRepo(db), app.Log)
			app.Log.WithField("addr", cfg.Addr).Info("listening")
			return http.ListenAndServe(cfg.Addr, srv.Handler())
		},
	}
}
