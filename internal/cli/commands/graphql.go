package commands

import (
	"github.com/spf13/cobra"

	"github.com/syssam/schemamap/contrib/graphql"
)

// NewGraphQLCommand creates the graphql command.
func NewGraphQLCommand() *cobra.Command {
	var node, ids bool
	cmd := &cobra.Command{
		Use:   "graphql [class...]",
		Short: "Print a GraphQL schema for the inferred entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			g, err := graphql.NewGenerator(graphql.WithNodeInterface(node), graphql.WithIDType(ids))
			if err != nil {
				return err
			}
			entities, err := c.Entities(cmd.Context(), args)
			if err != nil {
				return err
			}
			return g.Write(cmd.OutOrStdout(), entities)
		},
	}
	cmd.Flags().BoolVar(&node, "node", false, "declare the Relay Node interface")
	cmd.Flags().BoolVar(&ids, "ids", true, "map single-column identifiers to ID")
	return cmd
}
