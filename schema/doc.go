// Package schema provides the immutable database snapshot that the
// reverse-engineering engine reads.
//
// A snapshot is a list of [Table] values, each with its ordered
// [Column] list, an optional primary key and its declared [ForeignKey]
// constraints. Snapshots are produced by the introspection layer
// (see compiler/load) or built by hand:
//
//	users := &schema.Table{
//	    Name: "user",
//	    Columns: []*schema.Column{
//	        {Name: "id", Type: schema.Integer("integer")},
//	        {Name: "email", Type: schema.String("varchar"), Length: schema.Size(255)},
//	    },
//	    PrimaryKey: []string{"id"},
//	}
//
// # Qualified Names
//
// Table names may carry a schema qualifier ("billing.invoice"). Use
// [ParseQualifiedName] or [Table.QualifiedName] to split them instead of
// searching for the separator at each call site.
//
// # Column Types
//
// Column types form a closed variant: [KindString], [KindInteger] and
// [KindOther]. The kind decides which type attributes are meaningful:
// Length and Fixed for strings, Unsigned for integers.
package schema
