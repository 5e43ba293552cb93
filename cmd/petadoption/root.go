package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pet-adoption/internal/app"
	"pet-adoption/internal/config"
	"pet-adoption/internal/input"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/terminal"
)

var (
	version = "dev"
	commit  = "none"
)

func execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type flags struct {
	configPath string
	dataDir    string
	logLevel   string
	logFormat  string
	logFile    string
}

func newRootCmd() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:           "petadoption",
		Short:         "Pet adoption record manager",
		Long:          "Interactive menu for managing user accounts, pet records and adoption applications.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Flags(), f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&f.dataDir, "data-dir", "", "Directory holding the data files")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")
	pf.StringVar(&f.logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "petadoption version %s (commit: %s)\n", version, commit)
			return err
		},
	}
}

// resolveConfig aplica precedencia flag > env > archivo > default.
func resolveConfig(fs *pflag.FlagSet, f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	if fs.Changed("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if fs.Changed("log-file") {
		cfg.LogFile = f.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		lf, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer lf.Close()
		logOut = lf
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "petadoption",
		Out:    logOut,
	})
	for _, w := range cfg.Warnings {
		log.Warn("config warning", map[string]any{"warning": w})
	}

	var secret input.SecretReader
	if terminal.IsTerminal(os.Stdin) {
		secret = terminal.New(os.Stdin, os.Stdout)
	}

	engine, err := app.New(app.Options{
		Config:       cfg,
		Logger:       log,
		In:           os.Stdin,
		Out:          os.Stdout,
		SecretReader: secret,
	})
	if err != nil {
		log.Error("startup failed", map[string]any{"error": err.Error()})
		return err
	}

	log.Info("session started", map[string]any{"data_dir": cfg.DataDir, "version": version})
	return engine.Run(ctx)
}
