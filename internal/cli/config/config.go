// Package config loads the schemamap CLI configuration.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/syssam/schemamap/compiler/reverse"
	"github.com/syssam/schemamap/dialect"
)

// Defaults.
const (
	DefaultOutput   = "yaml"
	DefaultSnapshot = "schemamap.msgpack"
	EnvPrefix       = "SCHEMAMAP_"
)

// Table names may be schema-qualified ("app.user"), so map keys must not
// be split on ".".
const delim = "/"

// configFiles are looked up in the working directory when no file is given.
var configFiles = []string{"schemamap.yaml", "schemamap.yml"}

type (
	// Config is the resolved CLI configuration.
	Config struct {
		Dialect    string `koanf:"dialect"`
		DSN        string `koanf:"dsn"`
		Snapshot   string `koanf:"snapshot"`
		Schema     string `koanf:"schema"`
		Namespace  string `koanf:"namespace"`
		Repository string `koanf:"repository"`
		// ForeignKeys overrides the probed capability when set.
		ForeignKeys *bool  `koanf:"foreign_keys"`
		Output      string `koanf:"output"`
		Verbose     bool   `koanf:"verbose"`
		// ClassNames maps table names to class names.
		ClassNames map[string]string `koanf:"class_names"`
		// FieldNames maps table names to column names to field names.
		FieldNames map[string]map[string]string `koanf:"field_names"`
		// Prefixes maps table name prefixes to namespaces.
		Prefixes    map[string]string `koanf:"prefixes"`
		CrossSchema []CrossSchemaRule `koanf:"cross_schema"`

		// File is the configuration file that was loaded, if any.
		File string `koanf:"-"`
	}

	// CrossSchemaRule allows or denies relationships between two schemas.
	CrossSchemaRule struct {
		From  string `koanf:"from"`
		To    string `koanf:"to"`
		Allow bool   `koanf:"allow"`
	}
)

// findConfigFile returns the explicit path, or the first default file
// present in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load resolves the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(delim)

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"output":  DefaultOutput,
		"verbose": false,
	}, delim), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: SCHEMAMAP_FOREIGN_KEYS -> foreign_keys
	if err := k.Load(env.Provider(EnvPrefix, delim, func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, delim, k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
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
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and normalizes the dialect name.
func (c *Config) Validate() error {
	if c.Dialect != "" {
		d, err := dialect.Normalize(c.Dialect)
		if err != nil {
			return err
		}
		c.Dialect = d
	}
	switch c.Output {
	case "yaml", "json":
	default:
		return fmt.Errorf("invalid output format %q (want yaml or json)", c.Output)
	}
	return nil
}

// HasDatabase reports whether a live database connection is configured.
func (c *Config) HasDatabase() bool {
	return c.Dialect != "" && c.DSN != ""
}

// ReverseOptions translates the configuration into inferencer options.
// Map entries are applied in key order.
func (c *Config) ReverseOptions(logger *slog.Logger) []reverse.Option {
	opts := []reverse.Option{
		reverse.WithNamespace(c.Namespace),
		reverse.WithRepositoryClass(c.Repository),
		reverse.WithSchemaFilter(c.Schema),
	}
	if logger != nil {
		opts = append(opts, reverse.WithLogger(logger))
	}
	if c.ForeignKeys != nil {
		opts = append(opts, reverse.WithForeignKeyConstraints(*c.ForeignKeys))
	}
	for _, table := range sortedKeys(c.ClassNames) {
		opts = append(opts, reverse.WithClassName(table, c.ClassNames[table]))
	}
	for _, table := range sortedKeys(c.FieldNames) {
		columns := c.FieldNames[table]
		for _, column := range sortedKeys(columns) {
			opts = append(opts, reverse.WithFieldName(table, column, columns[column]))
		}
	}
	for _, prefix := range sortedKeys(c.Prefixes) {
		opts = append(opts, reverse.WithNamespacePrefix(prefix, c.Prefixes[prefix]))
	}
	for _, r := range c.CrossSchema {
		opts = append(opts, reverse.WithCrossSchema(r.From, r.To, r.Allow))
	}
	return opts
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type (
	configKey struct{}
	loggerKey struct{}
)

// NewContext returns a context carrying the configuration and logger.
func NewContext(ctx context.Context, cfg *Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the configuration stored in ctx, or the defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{Output: DefaultOutput}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
