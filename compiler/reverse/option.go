package reverse

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/syssam/schemamap/mapping"
)

// Config holds the naming overrides and policies of an Inferencer.
type Config struct {
	// Namespace is prepended to every generated class name.
	Namespace string
	// RepositoryClass is copied into every entity mapping.
	RepositoryClass string
	// ClassNames maps lower-case table names to class names.
	ClassNames map[string]string
	// FieldNames maps lower-case table names to lower-case column names to
	// field names.
	FieldNames map[string]map[string]string
	// Prefixes maps lower-case table name prefixes to namespaces.
	Prefixes map[string]string
	// SchemaFilter restricts the snapshot to one schema. Unqualified tables
	// always pass.
	SchemaFilter string
	// CrossSchema lists explicit cross-schema expansion decisions.
	CrossSchema map[SchemaPair]bool
	// ForeignKeys overrides the platform capability flag when set.
	ForeignKeys *bool
	Logger      *slog.Logger
}

// Option configures an Inferencer.
type Option func(*Config) error

// WithNamespace sets the target namespace for generated class names.
// Segments are separated by ".", e.g. "App.Model".
func WithNamespace(ns string) Option {
	return func(c *Config) error {
		c.Namespace = strings.Trim(ns, mapping.NamespaceSeparator)
		return nil
	}
}

// WithRepositoryClass sets the default custom repository class name.
func WithRepositoryClass(name string) Option {
	return func(c *Config) error {
		c.RepositoryClass = name
		return nil
	}
}

// WithClassName overrides the class name inferred for a table.
func WithClassName(table, class string) Option {
	return func(c *Config) error {
		if table == "" {
			return NewConfigError("ClassName", nil, "table cannot be empty")
		}
		if class == "" {
			return NewConfigError("ClassName", table, "class name cannot be empty")
		}
		if c.ClassNames == nil {
			c.ClassNames = make(map[string]string)
		}
		c.ClassNames[strings.ToLower(table)] = class
		return nil
	}
}

// WithFieldName overrides the field name inferred for a column.
func WithFieldName(table, column, field string) Option {
	return func(c *Config) error {
		if table == "" || column == "" {
			return NewConfigError("FieldName", table+"."+column, "table and column cannot be empty")
		}
		if field == "" {
			return NewConfigError("FieldName", table+"."+column, "field name cannot be empty")
		}
		if c.FieldNames == nil {
			c.FieldNames = make(map[string]map[string]string)
		}
		t := strings.ToLower(table)
		if c.FieldNames[t] == nil {
			c.FieldNames[t] = make(map[string]string)
		}
		c.FieldNames[t][strings.ToLower(column)] = field
		return nil
	}
}

// WithNamespacePrefix maps tables whose name starts with prefix into
// namespace. The prefix is stripped before the class name is derived.
func WithNamespacePrefix(prefix, namespace string) Option {
	return func(c *Config) error {
		if prefix == "" {
			return NewConfigError("NamespacePrefix", nil, "prefix cannot be empty")
		}
		if c.Prefixes == nil {
			c.Prefixes = make(map[string]string)
		}
		c.Prefixes[strings.ToLower(prefix)] = strings.Trim(namespace, mapping.NamespaceSeparator)
		return nil
	}
}

// WithSchemaFilter restricts inference to the tables of one schema.
func WithSchemaFilter(schema string) Option {
	return func(c *Config) error {
		c.SchemaFilter = schema
		return nil
	}
}

// WithCrossSchema records whether relationships from tables of schema from
// to tables of schema to may be inferred.
func WithCrossSchema(from, to string, allow bool) Option {
	return func(c *Config) error {
		if from == "" || to == "" {
			return NewConfigError("CrossSchema", from+" -> "+to, "schemas cannot be empty")
		}
		if c.CrossSchema == nil {
			c.CrossSchema = make(map[SchemaPair]bool)
		}
		c.CrossSchema[NewSchemaPair(from, to)] = allow
		return nil
	}
}

// WithForeignKeyConstraints overrides the foreign key capability reported
// by the schema source.
func WithForeignKeyConstraints(supported bool) Option {
	return func(c *Config) error {
		c.ForeignKeys = &supported
		return nil
	}
}

// WithLogger sets the logger for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
// All invalid options are reported in the returned error.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.ApplyAll(opts...); err != nil {
		return nil, err
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
