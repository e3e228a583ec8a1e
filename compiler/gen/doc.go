// Package gen renders inferred entity mappings as Go source.
//
// Each mapping.Entity becomes one file holding a struct with one field per
// mapped column, one field per association, a TableName method and a
// column list. Files are rendered with jennifer, formatted with goimports
// and written in parallel.
//
// # Usage
//
//	g, err := gen.NewGenerator("./entity",
//	    gen.WithPackage("entity"),
//	    gen.WithWorkers(4),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := g.Generate(ctx, entities); err != nil {
//	    return err
//	}
//
// # Type Mapping
//
//	string columns           string
//	integer columns          int64 (uint64 when unsigned)
//	bool, boolean            bool
//	float, double, decimal   float64
//	date, time, timestamp    time.Time
//	json, jsonb              json.RawMessage
//	blob, bytea, varbinary   []byte
//	anything else            any
//
// Nullable columns are rendered as pointers unless the Go type is already
// nillable.
//
// # Error Handling
//
//   - ConfigError: invalid generator options
//   - GenerationError: rendering, formatting or writing failed for an entity
//
// Both match their sentinel with errors.Is:
//
//	if errors.Is(err, gen.ErrGenerationFailed) {
//	    // ...
//	}
package gen
