package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the inferred entity classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			inf, err := c.Inferencer(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, class := range inf.ClassNames() {
				if _, err := fmt.Fprintln(w, class); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
