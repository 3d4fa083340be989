package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tordrt/holocron/internal/config"
	"github.com/tordrt/holocron/internal/logging"
)

// app carries state resolved once per invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// flagAliases maps subcommand flags onto config keys whose names differ.
var flagAliases = map[string]map[string]string{
	"seed": {
		"file": "seed_file",
	},
	"diagram": {
		"format": "diagram_format",
		"output": "diagram_output",
	},
	"docs": {
		"format":     "docs_format",
		"output-dir": "docs_dir",
	},
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "holocron",
		Short: "Build and document the Star Wars catalog schema",
		Long: `Holocron declares the Star Wars reference catalog (characters, films, planets,
vehicles, starships, species, users and their favorites) as a relational model.
It creates the tables on PostgreSQL, MySQL or SQLite, loads fixtures, and draws
the schema as an ER diagram or schema reference.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return a.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./holocron.yaml)")
	rootCmd.PersistentFlags().String("database-url", "", "database URL (postgres://, mysql:// or sqlite://)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	rootCmd.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newDiagramCmd(a),
		newDocsCmd(a),
	)
	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags(), flagAliases[cmd.Name()])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	if cfg.FileUsed != "" {
		logger.Debug("config loaded", "file", cfg.FileUsed)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// parseTableList splits a comma-separated table list, dropping blanks.
func parseTableList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var tables []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}
	return tables
}

// openOutput returns stdout for "" or "-", otherwise a created file.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == config.StdoutPath {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("holocron failed", "error", err)
		os.Exit(1)
	}
}
