package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/schemamap/mapping"
)

// Generator writes one Go file per entity with parallel execution
// and goimports formatting.
type Generator struct {
	cfg    *Config
	outDir string

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// NewGenerator creates a generator writing into outDir.
func NewGenerator(outDir string, opts ...Option) (*Generator, error) {
	if outDir == "" {
		return nil, NewConfigError("Target", nil, "missing target directory")
	}
	cfg := defaultConfig()
	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, outDir: outDir, metrics: &WriterMetrics{}}, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() Config { return *g.cfg }

// Metrics returns a copy of the generation metrics.
func (g *Generator) Metrics() WriterMetrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return *g.metrics
}

// FileName returns the file an entity is written to.
func FileName(e *mapping.Entity) string {
	return snake(e.TypeName()) + ".go"
}

// Generate writes all entities in parallel. Entities sharing a file
// name are rejected before anything is written.
func (g *Generator) Generate(ctx context.Context, entities []*mapping.Entity) error {
	seen := make(map[string]string, len(entities))
	for _, e := range entities {
		name := FileName(e)
		if prev, ok := seen[name]; ok {
			return NewGenerationError(e.Name, name, fmt.Sprintf("file already generated for %s", prev), nil)
		}
		seen[name] = e.Name
	}
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)
	for _, e := range entities {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.generateFile(e)
			}
		})
	}
	return eg.Wait()
}

// generateFile renders, formats and writes a single entity file.
func (g *Generator) generateFile(e *mapping.Entity) error {
	name := FileName(e)
	var buf bytes.Buffer
	if err := g.RenderEntity(e).Render(&buf); err != nil {
		return NewGenerationError(e.Name, name, "render", err)
	}

	fullPath := filepath.Join(g.outDir, name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := fullPath + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return NewGenerationError(e.Name, name, "format (unformatted written to "+debugPath+")", err)
	}
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return NewGenerationError(e.Name, name, "write", err)
	}

	g.mu.Lock()
	g.metrics.FilesGenerated++
	g.metrics.TotalBytes += int64(len(formatted))
	g.mu.Unlock()
	return nil
}
