package load

import (
	"log/slog"
	"time"
)

// Option configures an Inspector or a snapshot capture.
type Option func(*options)

type options struct {
	defaultSchema string
	schemas       []string
	log           *slog.Logger
	slowQuery     time.Duration
}

func newOptions(opts []Option) *options {
	o := &options{slowQuery: 500 * time.Millisecond}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	return o
}

// WithDefaultSchema sets the schema whose tables are reported without a
// schema qualifier. It defaults to the connection's current schema.
func WithDefaultSchema(name string) Option {
	return func(o *options) {
		o.defaultSchema = name
	}
}

// WithSchemas restricts inspection to the named schemas.
func WithSchemas(names ...string) Option {
	return func(o *options) {
		o.schemas = append(o.schemas, names...)
	}
}

// WithLogger sets the logger for introspection warnings and query logs.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithSlowQueryThreshold sets the duration after which catalog queries
// are logged as slow.
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(o *options) {
		o.slowQuery = d
	}
}
