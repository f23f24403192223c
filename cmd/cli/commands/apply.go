package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/services"
)

// ApplyCmd creates the apply command, the confirmation step that turns a
// suggestion into an actual assignment
func ApplyCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <month> <operator_id> <day> <shift_code>",
		Short: "Assign a suggested fill, recorded as an extra-work override",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}
			day, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("day must be a number: %w", err)
			}
			note, _ := cmd.Flags().GetString("note")

			applications := []services.AppliedSuggestion{{
				OperatorID: args[1],
				Day:        day,
				ShiftCode:  args[3],
				Note:       note,
			}}

			if err := services.ApplySuggestions(app.Ctx, app.Database, app.Store, app.Logger, app.Cfg.Rules(), month, applications); err != nil {
				return err
			}

			fmt.Printf("\n✓ Applied: %s day %d → %s\n\n", args[1], day, args[3])

			return nil
		},
	}

	cmd.Flags().String("note", "", "Reason for the fill, stored on the cell")

	return cmd
}
