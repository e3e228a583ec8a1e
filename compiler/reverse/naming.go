package reverse

import (
	"strings"
	"sync"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/schemamap/mapping"
	"github.com/syssam/schemamap/schema"
)

// idSuffix marks foreign key columns, e.g. "author_id".
const idSuffix = "_id"

// Namer resolves class and field names. Results are memoized and safe for
// concurrent use.
type Namer struct {
	cfg *Config

	mu      sync.Mutex
	classes map[string]string
	fields  map[fieldKey]string
}

type fieldKey struct {
	table, column string
	fk            bool
}

// NewNamer returns a Namer using the overrides of cfg.
func NewNamer(cfg *Config) *Namer {
	return &Namer{
		cfg:     cfg,
		classes: make(map[string]string),
		fields:  make(map[fieldKey]string),
	}
}

// ClassName returns the class name for a table. The resolution order is
// explicit override, longest matching prefix namespace, schema-qualified
// name and plain classification.
func (n *Namer) ClassName(table string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if name, ok := n.classes[table]; ok {
		return name
	}
	name := n.className(table)
	n.classes[table] = name
	return name
}

func (n *Namer) className(table string) string {
	lower := strings.ToLower(table)
	if class, ok := n.cfg.ClassNames[lower]; ok {
		return joinNamespace(n.cfg.Namespace, class)
	}
	if prefix, ns := n.longestPrefix(lower); prefix != "" {
		return joinNamespace(n.cfg.Namespace, ns, classify(lower[len(prefix):]))
	}
	if qn := schema.ParseQualifiedName(lower); qn.HasSchema() {
		return joinNamespace(n.cfg.Namespace, classify(qn.Schema), classify(qn.Name))
	}
	return joinNamespace(n.cfg.Namespace, classify(lower))
}

func (n *Namer) longestPrefix(table string) (prefix, namespace string) {
	for p, ns := range n.cfg.Prefixes {
		if len(p) > len(prefix) && len(p) < len(table) && strings.HasPrefix(table, p) {
			prefix, namespace = p, ns
		}
	}
	return prefix, namespace
}

// FieldName returns the field name for a column. A foreign key column
// loses its trailing "_id".
func (n *Namer) FieldName(table, column string, fk bool) string {
	key := fieldKey{table: table, column: column, fk: fk}
	n.mu.Lock()
	defer n.mu.Unlock()
	if name, ok := n.fields[key]; ok {
		return name
	}
	name := n.fieldName(table, column, fk)
	n.fields[key] = name
	return name
}

func (n *Namer) fieldName(table, column string, fk bool) string {
	if name, ok := n.override(table, column); ok {
		return name
	}
	column = strings.ToLower(column)
	if fk {
		column = stripID(column)
	}
	return camel(column)
}

func (n *Namer) override(table, column string) (string, bool) {
	name, ok := n.cfg.FieldNames[strings.ToLower(table)][strings.ToLower(column)]
	return name, ok
}

func stripID(s string) string {
	if t := strings.TrimSuffix(s, idSuffix); t != "" {
		return t
	}
	return s
}

func classify(s string) string {
	return inflect.Camelize(s)
}

func camel(s string) string {
	if s == "" {
		return s
	}
	return inflect.CamelizeDownFirst(s)
}

func plural(s string) string {
	return inflect.Pluralize(s)
}

// ucfirst upper-cases the first letter of s. Casers are stateful, so one
// is built per call.
func ucfirst(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

func joinNamespace(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(mapping.NamespaceSeparator)
		}
		b.WriteString(p)
	}
	return b.String()
}

func localName(table string) string {
	return schema.ParseQualifiedName(table).Name
}
