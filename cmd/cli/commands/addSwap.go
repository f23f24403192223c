package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/services"
)

// AddSwapCmd creates the addSwap command
func AddSwapCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addSwap <operator_a> <operator_b>",
		Short: "Register a rotation swap between two operators",
		Long: `Register a time-bounded swap: within the window each operator resolves
the other's rotation pattern. Leave --start or --end empty for an open
window.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")

			swap, err := services.AddSwap(app.Ctx, app.Database, app.Logger, args[0], args[1], start, end)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Swap %s registered: %s ↔ %s\n\n", swap.ID, swap.OperatorA, swap.OperatorB)

			return nil
		},
	}

	cmd.Flags().String("start", "", "First day of the swap window (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Last day of the swap window (YYYY-MM-DD)")

	return cmd
}
