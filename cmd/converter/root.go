package main

import (
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mixtli/dungeon-lab-sub000/internal/config"
)

// cliOptions holds the flags shared by every command
type cliOptions struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "converter",
		Short: "Convert raw 5e content into typed documents",
		Long: `converter reads 5etools-style source files, or the dnd5e API, and turns
each creature, item, spell, class, species, background, action and language
record into a validated document.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (.toml or .yaml)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before CONTENT_* variables are read")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")

	cmd.AddCommand(newConvertCommand(opts))
	cmd.AddCommand(newCategoriesCommand(opts))
	cmd.AddCommand(newVerifyCommand(opts))
	return cmd
}

// load reads the env file and config, applies the logging flags and
// installs the default logger
func (o *cliOptions) load(cmd *cobra.Command) error {
	if o.envFile != "" {
		// A missing env file is normal
		_ = godotenv.Load(o.envFile)
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg))
	return nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == config.LogJSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
