package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/services"
	"github.com/lucabaldini/turnario/pkg/core/suggestion"
)

// SuggestCmd creates the suggest command
func SuggestCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <month>",
		Short: "Propose operators to fill coverage deficits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}
			onCall, _ := cmd.Flags().GetBool("on-call")

			targets, err := app.Cfg.Targets(month)
			if err != nil {
				return err
			}

			suggestions, err := services.SuggestFills(app.Ctx, app.Database, app.Store, app.Logger, targets, month,
				suggestion.Options{OnCallOnly: onCall})
			if err != nil {
				return err
			}

			if len(suggestions) == 0 {
				fmt.Printf("\n✓ No deficits found for %s\n\n", month)
				return nil
			}

			fmt.Printf("\n%d suggestions for %s:\n\n", len(suggestions), month)
			for _, s := range suggestions {
				fmt.Printf("  day %2d %-13s → %s (%s, quality %.1f)",
					s.Day, s.Category, s.OperatorName, s.OperatorID, s.QualityScore)
				if s.Missing > 1 {
					fmt.Printf("  [%d still missing]", s.Missing)
				}
				fmt.Println()
			}
			fmt.Println("\nUse 'apply' to assign a suggestion, or re-run after applying to close remaining gaps.")

			return nil
		},
	}

	cmd.Flags().Bool("on-call", false, "Restrict candidates to on-call eligible operators")

	return cmd
}
