// Package config loads holocron settings from defaults, a YAML file, HOLOCRON_*
// environment variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/tordrt/holocron/internal/db"
	"github.com/tordrt/holocron/internal/formatter"
	"github.com/tordrt/holocron/internal/logging"
)

// EnvPrefix is stripped from environment variables before they become keys:
// HOLOCRON_DATABASE_URL sets database_url.
const EnvPrefix = "HOLOCRON_"

// Defaults
const (
	DefaultDatabaseURL   = "sqlite://holocron.db"
	DefaultLogLevel      = "info"
	DefaultDiagramFormat = formatter.FormatMermaid
	DefaultDocsFormat    = formatter.FormatMarkdown
)

// StdoutPath selects standard output wherever a file path is expected.
const StdoutPath = "-"

var configFileNames = []string{"holocron.yaml", "holocron.yml"}

// Config is the resolved configuration shared by every command.
type Config struct {
	DatabaseURL   string `koanf:"database_url"`
	LogLevel      string `koanf:"log_level"`
	LogFormat     string `koanf:"log_format"`
	DiagramFormat string `koanf:"diagram_format"`
	DiagramOutput string `koanf:"diagram_output"`
	DocsFormat    string `koanf:"docs_format"`
	DocsDir       string `koanf:"docs_dir"`
	SeedFile      string `koanf:"seed_file"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

// Load resolves the configuration. cfgFile names an explicit config file; when empty,
// holocron.yaml or holocron.yml in the working directory is used if present. Only flags
// that were set on the command line are applied. Flag names are converted from
// kebab-case to snake_case unless aliases maps them to a different key.
func Load(cfgFile string, flags *pflag.FlagSet, aliases map[string]string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"database_url":   DefaultDatabaseURL,
		"log_level":      DefaultLogLevel,
		"log_format":     logging.FormatText,
		"diagram_format": DefaultDiagramFormat,
		"diagram_output": "",
		"docs_format":    DefaultDocsFormat,
		"docs_dir":       "",
		"seed_file":      "",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	fileUsed, err := findConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if fileUsed != "" {
		if err := k.Load(file.Provider(fileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", fileUsed, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			if key, ok := aliases[f.Name]; ok {
				return key, posflag.FlagVal(flags, f)
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = fileUsed
	return &cfg, nil
}

// findConfigFile returns the explicit path, which must exist, or the first default
// config file present in the working directory.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("database_url is required"))
	} else if _, _, err := db.ParseURL(c.DatabaseURL); err != nil {
		errs = append(errs, fmt.Errorf("database_url: %w", err))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.LogFormat != logging.FormatText && c.LogFormat != logging.FormatJSON {
		errs = append(errs, fmt.Errorf("log_format: must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.LogFormat))
	}
	if !formatter.IsDiagram(c.DiagramFormat) {
		errs = append(errs, fmt.Errorf("diagram_format: must be %q or %q, got %q", formatter.FormatMermaid, formatter.FormatDOT, c.DiagramFormat))
	}
	if c.DocsFormat != formatter.FormatText && c.DocsFormat != formatter.FormatMarkdown {
		errs = append(errs, fmt.Errorf("docs_format: must be %q or %q, got %q", formatter.FormatText, formatter.FormatMarkdown, c.DocsFormat))
	}

	return errors.Join(errs...)
}

// DiagramPath returns where the diagram goes: the configured path, StdoutPath, or
// "diagram" with the format's extension.
func (c *Config) DiagramPath() string {
	if c.DiagramOutput != "" {
		return c.DiagramOutput
	}
	return "diagram" + formatter.DiagramExtension(c.DiagramFormat)
}
