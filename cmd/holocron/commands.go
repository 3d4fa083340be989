package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tordrt/holocron"
	"github.com/tordrt/holocron/internal/schema"
	"github.com/tordrt/holocron/internal/seed"
	"github.com/tordrt/holocron/internal/store"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return holocron.Migrate(cmd.Context(), a.cfg.DatabaseURL, a.logger)
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a catalog fixture into the database",
		Long: `Seed inserts a YAML fixture in dependency order: planets, species and films
first, then the records that reference them, then join records and favorites.
Without --file the embedded slice of the original trilogy is loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			fx, err := loadFixture(a.cfg.SeedFile)
			if err != nil {
				return err
			}

			s, err := store.Open(ctx, a.cfg.DatabaseURL, a.logger)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if migrate {
				if err := s.Migrate(ctx); err != nil {
					return err
				}
			}

			n, err := seed.Apply(ctx, s, fx)
			if err != nil {
				return fmt.Errorf("failed to seed catalog: %w", err)
			}
			a.logger.Info("catalog seeded", "records", n)
			return nil
		},
	}

	cmd.Flags().String("file", "", "fixture file (default: embedded fixture)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "create the tables before seeding")
	return cmd
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.LoadFile(path)
}

// schemaFlags are shared by the commands that render the schema.
type schemaFlags struct {
	fromDB     bool
	tables     string
	exclude    string
	schemaName string
}

func (f *schemaFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.fromDB, "from-db", false, "read the schema from the database instead of the declared models")
	cmd.Flags().StringVarP(&f.tables, "tables", "t", "", "specific tables (comma-separated, optional)")
	cmd.Flags().StringVar(&f.exclude, "exclude", "", "tables to leave out (comma-separated)")
	cmd.Flags().StringVarP(&f.schemaName, "schema", "s", "", "database schema with --from-db (default: public for PostgreSQL)")
}

func (f *schemaFlags) load(cmd *cobra.Command, a *app) (*schema.Schema, error) {
	opts := &holocron.Options{
		Tables:        parseTableList(f.tables),
		ExcludeTables: parseTableList(f.exclude),
		SchemaName:    f.schemaName,
	}
	if !f.fromDB {
		return holocron.DescribeCatalog(opts)
	}
	a.logger.Debug("reading schema from database")
	return holocron.ExtractSchema(cmd.Context(), a.cfg.DatabaseURL, opts)
}

func newDiagramCmd(a *app) *cobra.Command {
	var sf schemaFlags

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Draw the catalog as an entity-relationship diagram",
		Long: `Diagram renders the schema as a Mermaid erDiagram or a Graphviz DOT graph.
The output defaults to diagram.mmd or diagram.dot; use --output - for stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sf.load(cmd, a)
			if err != nil {
				return err
			}

			path := a.cfg.DiagramPath()
			w, closeFn, err := openOutput(path, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := holocron.RenderDiagram(s, a.cfg.DiagramFormat, w); err != nil {
				_ = closeFn()
				return err
			}
			if err := closeFn(); err != nil {
				return fmt.Errorf("failed to close output file: %w", err)
			}

			a.logger.Info("diagram written", "format", a.cfg.DiagramFormat, "output", path, "tables", len(s.Tables))
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().StringP("format", "f", "", "diagram format: mermaid or dot")
	cmd.Flags().StringP("output", "o", "", "output file, - for stdout")
	return cmd
}

func newDocsCmd(a *app) *cobra.Command {
	var (
		sf         schemaFlags
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Write a schema reference in text or markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DocsDir != "" && outputFile != "" {
				return fmt.Errorf("cannot use both --output-dir and --output flags")
			}

			s, err := sf.load(cmd, a)
			if err != nil {
				return err
			}

			if a.cfg.DocsDir != "" {
				if err := holocron.FormatSchema(s, &holocron.OutputOptions{OutputDir: a.cfg.DocsDir, Format: a.cfg.DocsFormat}); err != nil {
					return err
				}
				a.logger.Info("schema docs written", "dir", a.cfg.DocsDir, "tables", len(s.Tables))
				return nil
			}

			w, closeFn, err := openOutput(outputFile, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := holocron.FormatSchema(s, &holocron.OutputOptions{Writer: w, Format: a.cfg.DocsFormat}); err != nil {
				_ = closeFn()
				return err
			}
			return closeFn()
		},
	}

	sf.register(cmd)
	cmd.Flags().StringP("format", "f", "", "output format: text or markdown")
	cmd.Flags().StringP("output-dir", "d", "", "directory for multi-file output")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	return cmd
}
