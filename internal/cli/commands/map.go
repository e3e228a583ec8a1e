package commands

import (
	"github.com/spf13/cobra"

	"github.com/syssam/schemamap/mapping"
)

// NewMapCommand creates the map command.
func NewMapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "map [class...]",
		Short: "Print the inferred mapping metadata",
		Long: `Print the mapping of the given entity classes, or of every class when
none is given. Conditions met during inference are logged as warnings.`,
		Example: `  # All entities as YAML
  schemamap map --snapshot app.msgpack

  # One entity as JSON
  schemamap map Billing.Invoice -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			entities, err := c.Entities(cmd.Context(), args)
			if err != nil {
				return err
			}
			if c.Cfg.Output == "json" {
				return mapping.EncodeJSON(cmd.OutOrStdout(), entities...)
			}
			return mapping.EncodeYAML(cmd.OutOrStdout(), entities...)
		},
	}
}
