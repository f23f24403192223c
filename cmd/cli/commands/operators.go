package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/services"
)

// OperatorsCmd creates the operators command
func OperatorsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "operators",
		Short: "List the operator roster with rotation assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := services.LoadReference(app.Ctx, app.Database)
			if err != nil {
				return err
			}

			fmt.Printf("\n%-12s %-24s %-6s %-10s %-8s %-8s\n", "ID", "Name", "Rank", "Matrix", "Quality", "On-call")
			for _, op := range ref.Operators {
				status := ""
				if !op.Active {
					status = "  (inactive)"
				}
				onCall := "no"
				if op.OnCallEligible {
					onCall = "yes"
				}
				fmt.Printf("%-12s %-24s %-6d %-10s %-8.1f %-8s%s\n",
					op.ID, op.Name, op.Ordine, op.MatrixID, op.QualityScore, onCall, status)
			}
			fmt.Println()

			return nil
		},
	}
}
