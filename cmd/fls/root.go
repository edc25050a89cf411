package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fls/internal/clipboard"
	"fls/internal/config"
	"fls/internal/controller"
	"fls/internal/deleter"
	"fls/internal/lister"
	"fls/internal/log"
	"fls/internal/opener"
	"fls/internal/tui"
	"fls/internal/watcher"
)

type flags struct {
	config      string
	dryRun      bool
	concurrency int
	excludes    []string
	noWatch     bool
	logFile     string
	debug       bool
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *flags) {
	f := &flags{}
	cmd := &cobra.Command{
		Use:     "fls [dir]",
		Short:   "Browse, filter and delete files from the terminal",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			cfg, err := loadConfig(cmd, *f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), dir, cfg, *f)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&f.config, "config", "", "config file (default is $XDG_CONFIG_HOME/fls/config.yaml)")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "d", false, "Do not delete anything; simulate deletion")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "c", 0, "Number of deletes running at once (default NumCPU)")
	cmd.Flags().StringArrayVarP(&f.excludes, "exclude", "x", nil, "Glob pattern to hide (can repeat). Matches full path or basename.")
	cmd.Flags().BoolVar(&f.noWatch, "no-watch", false, "Do not re-list when the directory changes on disk")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Log at debug level")
	return cmd, f
}

// loadConfig reads the config file and applies flags given on the command
// line over it.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.config != "" {
		cfg, err = config.LoadFile(f.config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if cmd.Flags().Changed("no-watch") {
		cfg.Watch = !f.noWatch
	}
	cfg.Excludes = append(cfg.Excludes, f.excludes...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, dir string, cfg *config.Config, f flags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	closer, err := log.Setup(f.logFile, f.debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", absDir)
	}

	l, err := lister.New(lister.Options{Excludes: cfg.Excludes})
	if err != nil {
		return err
	}
	keys, err := cfg.KeyMap()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := controller.Options{
		Context:   ctx,
		Lister:    l,
		Deleter:   deleter.New(cfg.Concurrency, cfg.DryRun),
		Opener:    opener.New(),
		Clipboard: clipboard.New(),
		Keys:      &keys,
	}
	viewOpts := tui.Options{Theme: cfg.Theme, DryRun: cfg.DryRun}

	if cfg.Watch {
		w, err := watcher.New(watcher.DefaultDelay)
		if err != nil {
			log.Warnf("auto-refresh disabled: %v", err)
		} else {
			defer w.Close()
			opts.Watcher = w
			viewOpts.Events = w.Events()
		}
	}

	log.WithFields(log.F("dir", absDir), log.F("dry_run", cfg.DryRun), log.F("concurrency", cfg.Concurrency)).
		Info("starting")
	return tui.Run(controller.New(absDir, opts), viewOpts)
}
