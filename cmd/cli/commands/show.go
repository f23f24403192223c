package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/services"
)

// ShowCmd creates the show command
func ShowCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <month>",
		Short: "Print the month grid with per-operator hour totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			view, err := services.ViewMonth(app.Ctx, app.Database, app.Store, app.Logger, month)
			if err != nil {
				return err
			}

			if len(view.Rows) == 0 {
				fmt.Printf("\nNo roster cells for %s. Run 'materialize %s' first.\n\n", month, month)
				return nil
			}

			fmt.Printf("\nRoster for %s\n\n", month)
			fmt.Printf("%-24s", "Operator")
			for day := 1; day <= view.Days; day++ {
				fmt.Printf("%4d", day)
			}
			fmt.Printf("  %8s\n", "Hours")

			for _, row := range view.Rows {
				fmt.Printf("%-24s", row.Operator.Name)
				for _, code := range row.Codes {
					if code == "" {
						code = "·"
					}
					fmt.Printf("%4s", code)
				}
				fmt.Printf("  %8.1f\n", row.Hours)
			}
			fmt.Println()

			return nil
		},
	}
}
