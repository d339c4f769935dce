package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/docshell/internal/app"
	"github.com/dshills/docshell/internal/config"
	"github.com/dshills/docshell/internal/host/terminal"
	"github.com/dshills/docshell/internal/statestore"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docshell [files...]",
		Short: "A multi-document editing shell with undo/redo",
		Long: `docshell opens documents in tabs, runs actions on them from the toolbar
and keyboard, and keeps a per-document undo/redo history.

Without files, the documents open at the end of the previous session are
restored.

Examples:
  docshell
  docshell notes.txt todo.txt
  docshell --config ./docshell.toml --log-level debug`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cfg, args)
		},
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "path to configuration file (default "+config.DefaultPath()+")")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("log-json", false, "write logs as JSON")
	flags.Bool("no-state", false, "do not restore or save the session")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docshell %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON, _ = flags.GetBool("log-json")
	}
	if noState, _ := flags.GetBool("no-state"); noState {
		cfg.State.Disabled = true
	}
	if cfg.Plugins.Dir == "" {
		cfg.Plugins.Dir = config.DefaultPluginDir()
	}
	return cfg, cfg.Validate()
}

// openStore opens the session store, falling back to memory if state is
// disabled or the database cannot be opened.
func openStore(cfg *config.Config, logger *slog.Logger) statestore.Store {
	if cfg.State.Disabled {
		return statestore.NewMemory()
	}
	store, err := statestore.OpenBadger(statestore.Options{Path: cfg.StatePath()})
	if err != nil {
		logger.Warn("state store unavailable", "path", cfg.StatePath(), "error", err)
		return statestore.NewMemory()
	}
	return store
}

func run(cfg *config.Config, files []string) error {
	logFile, err := app.OpenLogFile(cfg.LogPath())
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Log.Level),
		JSON:   cfg.Log.JSON,
		Output: logFile,
	})
	logger.Info("starting", "version", version, "files", len(files))

	store := openStore(cfg, logger)
	defer store.Close()

	screen, err := terminal.NewScreen()
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	host := terminal.New(screen, logger)
	defer host.Close()

	application, err := app.New(app.Options{
		Config:    cfg,
		Window:    host,
		Dialogs:   host,
		Confirmer: host,
		Views:     host.NewView,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer application.Close()

	if len(files) > 0 {
		err = application.OpenFiles(files)
	} else if !cfg.State.Disabled {
		_, err = application.RestoreState(store)
	}
	if err != nil {
		logger.Warn("some files could not be opened", "error", err)
		host.SetStatus(err.Error())
	}
	application.EnsureDocument()

	if n := len(application.Warnings()); n > 0 {
		host.SetStatus(fmt.Sprintf("%d startup problem(s), see %s", n, cfg.LogPath()))
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)
	go func() {
		<-signals
		host.Interrupt()
	}()

	runErr := host.Run(application)

	if !cfg.State.Disabled {
		state := application.ExitState()
		state.Width, state.Height = host.Size()
		if err := application.SaveState(store, state); err != nil {
			logger.Warn("saving session failed", "error", err)
		}
	}
	logger.Info("stopped")
	return runErr
}
