// Package graphql exports inferred entity mappings as a GraphQL schema (SDL).
//
// Every entity becomes an object type named after its flattened class name.
// Scalar fields map to the built-in scalars, with Time and Map declared as
// custom scalars when date/time or JSON columns are present. To-one
// associations reference the target type and to-many associations are
// non-null lists of it.
//
//	g, err := graphql.NewGenerator(graphql.WithNodeInterface(true))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := g.Write(os.Stdout, entities); err != nil {
//		log.Fatal(err)
//	}
package graphql
