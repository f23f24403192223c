package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/services"
)

// AddUnavailabilityCmd creates the addUnavailability command
func AddUnavailabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addUnavailability <operator_id>",
		Short: "Mark an operator unavailable for emergency fills in a date window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")

			window, err := services.AddUnavailability(app.Ctx, app.Database, app.Logger, args[0], start, end)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Unavailability %s registered for %s\n\n", window.ID, window.OperatorID)

			return nil
		},
	}

	cmd.Flags().String("start", "", "First day of the window (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Last day of the window (YYYY-MM-DD)")

	return cmd
}
