package load

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/schemamap"
	"github.com/syssam/schemamap/compiler/reverse"
	"github.com/syssam/schemamap/schema"
)

// SnapshotVersion is the format version written by WriteSnapshot.
const SnapshotVersion = 1

// Snapshot is a captured set of table descriptions. It can be stored and
// later used as an offline Source.
type Snapshot struct {
	Version     int             `msgpack:"version"`
	Dialect     string          `msgpack:"dialect"`
	ForeignKeys bool            `msgpack:"foreign_keys"`
	CapturedAt  time.Time       `msgpack:"captured_at"`
	Tables      []*schema.Table `msgpack:"tables"`
}

var _ reverse.Source = (*Snapshot)(nil)

// Capture lists and describes every table of src. Tables that fail to
// describe are logged and left out.
func Capture(ctx context.Context, src reverse.Source, opts ...Option) (*Snapshot, error) {
	o := newOptions(opts)
	names, err := src.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: list tables: %w", err)
	}
	s := &Snapshot{
		Version:     SnapshotVersion,
		ForeignKeys: src.SupportsForeignKeyConstraints(),
		CapturedAt:  time.Now().UTC(),
	}
	if d, ok := src.(interface{ Dialect() string }); ok {
		s.Dialect = d.Dialect()
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := src.DescribeTable(ctx, name)
		if err != nil {
			o.log.Warn("skipping table", "table", name, "error", schemamap.NewIntrospectionError(name, err))
			continue
		}
		s.Tables = append(s.Tables, t)
	}
	return s, nil
}

// ListTables implements reverse.Source.
func (s *Snapshot) ListTables(context.Context) ([]string, error) {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names, nil
}

// DescribeTable implements reverse.Source.
func (s *Snapshot) DescribeTable(_ context.Context, name string) (*schema.Table, error) {
	i := slices.IndexFunc(s.Tables, func(t *schema.Table) bool {
		return strings.EqualFold(t.Name, name)
	})
	if i < 0 {
		return nil, fmt.Errorf("load: table %q not in snapshot", name)
	}
	return s.Tables[i], nil
}

// SupportsForeignKeyConstraints implements reverse.Source.
func (s *Snapshot) SupportsForeignKeyConstraints() bool { return s.ForeignKeys }

// WriteSnapshot encodes s with msgpack.
func WriteSnapshot(w io.Writer, s *Snapshot) error {
	if s.Version == 0 {
		s.Version = SnapshotVersion
	}
	if err := msgpack.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("load: encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	s := &Snapshot{}
	if err := msgpack.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("load: decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("load: unsupported snapshot version %d", s.Version)
	}
	return s, nil
}

// SaveSnapshot writes s to the named file.
func SaveSnapshot(path string, s *Snapshot) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("load: create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if err := WriteSnapshot(w, s); err != nil {
		return err
	}
	return w.Flush()
}

// LoadSnapshot reads a snapshot from the named file.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: open snapshot: %w", err)
	}
	defer f.Close()
	return ReadSnapshot(bufio.NewReader(f))
}
