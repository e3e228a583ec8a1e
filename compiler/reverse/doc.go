// Package reverse infers object-relational mappings from a database schema.
//
// An Inferencer classifies a snapshot of tables into entity tables and join
// tables, then derives for each entity class its field mappings and its
// association mappings:
//
//   - many-to-many associations from the join tables that reference it,
//   - one-to-one and many-to-one associations from its own foreign keys,
//   - inverse one-to-one and one-to-many associations from the foreign keys
//     of other entity tables that reference it.
//
// Relationships between tables of different schemas are only inferred when
// an ExpansionPolicy allows them. Conditions that do not prevent a mapping,
// such as duplicate association names, are reported as diagnostics on the
// derived entity instead of errors.
//
// Basic usage:
//
//	inf, err := reverse.New(tables, reverse.WithNamespace("App"))
//	if err != nil {
//		return err
//	}
//	for _, class := range inf.ClassNames() {
//		e, err := inf.Map(class)
//		...
//	}
package reverse
