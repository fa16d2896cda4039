package main

import (
	"fmt"
	"os"

	"github.com/matrixxonek/RPG-Planner/internal/api"
	"github.com/matrixxonek/RPG-Planner/internal/cli"
	"github.com/matrixxonek/RPG-Planner/internal/editor"
	"github.com/matrixxonek/RPG-Planner/internal/store"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfgPath, err := api.DefaultConfigPath()
	if err != nil {
		return err
	}
	cfg, err := api.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client := api.NewClient(cfg.BaseURL)
	syncStore := store.New(client, client)

	app := &cli.App{
		Store:   syncStore,
		Session: editor.NewSession(syncStore),
		Log:     logrus.NewEntry(log),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
