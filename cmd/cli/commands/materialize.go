package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/services"
)

// MaterializeCmd creates the materialize command
func MaterializeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "materialize <month>",
		Short: "Generate the default roster for a month from the rotation matrices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			result, err := services.MaterializeMonth(app.Ctx, app.Database, app.Store, app.Logger, month)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Month %s materialized\n\n", result.Month)
			fmt.Printf("Operators: %d\n", result.Operators)
			fmt.Printf("Cells:     %d\n\n", result.Cells)

			return nil
		},
	}
}
