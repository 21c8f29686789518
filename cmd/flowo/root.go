package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/flowo/internal/config"
	"github.com/sandeepkv93/flowo/internal/update"
)

type options struct {
	configPath string
	dbPath     string
	auth       string
	logFile    string
	desktop    bool
	seedDemo   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "flowo",
		Short:        "Household maintenance tracker for the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  flowo

  # Keep data between runs and start from the demo properties
  flowo --db ~/.flowo/flowo.db --seed-demo

  # Print every stored task with its due status
  flowo tasks --db ~/.flowo/flowo.db
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultConfigPath(), "YAML config file (skipped when missing)")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path (empty keeps data in memory)")
	flags.StringVar(&opts.auth, "auth", "", "Auth backend (local|firebase)")
	flags.StringVar(&opts.logFile, "log-file", "", "Log file for the TUI")
	flags.BoolVar(&opts.desktop, "desktop-notifications", false, "Show reminders as desktop notifications")
	flags.BoolVar(&opts.seedDemo, "seed-demo", false, "Add the demo properties and tasks to an empty store")

	cmd.AddCommand(newTasksCmd(opts))
	return cmd
}

// resolve loads the layered config and applies only the flags the user set.
func (o *options) resolve(cmd *cobra.Command) (config.RuntimeConfig, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.RuntimeConfig{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DatabasePath = o.dbPath
	}
	if flags.Changed("auth") {
		cfg.AuthBackend = o.auth
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("desktop-notifications") {
		cfg.DesktopNotifications = o.desktop
	}
	if flags.Changed("seed-demo") {
		cfg.SeedDemoData = o.seedDemo
	}
	if err := cfg.Validate(); err != nil {
		return config.RuntimeConfig{}, err
	}
	return cfg, nil
}

func runTUI(ctx context.Context, cfg config.RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := log.New(io.Discard, "", 0)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "flowo")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.New(f, "flowo ", log.LstdFlags)
	}

	svc, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	program := tea.NewProgram(update.NewModel(update.Deps{
		App:       svc.app,
		Bridge:    svc.bridge,
		Engine:    svc.engine,
		Reminders: svc.reminders,
		Platform:  svc.platform,
		Config:    cfg,
		Logger:    logger,
	}), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("flowo failed: %w", err)
	}
	return nil
}
