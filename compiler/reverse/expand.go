package reverse

import (
	"strings"

	"github.com/syssam/schemamap/schema"
)

// SchemaPair is a directed (from, to) pair of schema names. Names are
// stored lower-case.
type SchemaPair struct {
	From, To string
}

// NewSchemaPair returns the normalized pair.
func NewSchemaPair(from, to string) SchemaPair {
	return SchemaPair{From: strings.ToLower(from), To: strings.ToLower(to)}
}

// ExpansionPolicy decides whether a relationship may be inferred between
// two tables that may live in different schemas.
type ExpansionPolicy struct {
	allow map[SchemaPair]bool
}

// NewExpansionPolicy returns a policy backed by the given allow-list.
func NewExpansionPolicy(allow map[SchemaPair]bool) *ExpansionPolicy {
	return &ExpansionPolicy{allow: allow}
}

// CanExpand reports whether a relationship from table from to table to may
// be inferred:
//
//	target unqualified        -> allowed
//	source unqualified        -> denied
//	same schema               -> allowed
//	allow-list (from, to)     -> its value
//	otherwise                 -> denied
func (p *ExpansionPolicy) CanExpand(from, to string) bool {
	src, dst := schema.ParseQualifiedName(from), schema.ParseQualifiedName(to)
	switch {
	case !dst.HasSchema():
		return true
	case !src.HasSchema():
		return false
	case src.SameSchema(dst):
		return true
	}
	if p == nil {
		return false
	}
	return p.allow[NewSchemaPair(src.Schema, dst.Schema)]
}
