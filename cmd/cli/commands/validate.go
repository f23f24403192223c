package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/services"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <month>",
		Short: "Check the month against rest-hour and consecutive-day rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			violations, err := services.ValidateMonth(app.Ctx, app.Database, app.Store, app.Logger, app.Cfg.Rules(), month)
			if err != nil {
				return err
			}

			if len(violations) == 0 {
				fmt.Printf("\n✓ No violations found for %s\n\n", month)
				return nil
			}

			fmt.Printf("\n⚠ %d violations found for %s:\n\n", len(violations), month)
			for _, v := range violations {
				fmt.Printf("  %s day %2d: %s\n", v.OperatorID, v.Day, v.Message)
			}
			fmt.Println()

			return nil
		},
	}
}
