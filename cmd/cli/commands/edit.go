package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/services"
)

// EditCmd creates the edit command
func EditCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <month> <operator_id> <day> <shift_code>",
		Short: "Manually assign a shift code to an operator-day",
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

			req := services.EditRequest{
				Month:        month,
				OperatorID:   args[1],
				Day:          day,
				NewShiftCode: args[3],
				Reason:       note,
			}

			if err := services.EditCell(app.Ctx, app.Database, app.Store, app.Logger, app.Cfg.Rules(), req); err != nil {
				return err
			}

			cell := app.Store.GetCell(month, args[1], day)
			fmt.Printf("\n✓ Cell updated: %s day %d → %s\n", args[1], day, cell.Turno)
			if cell.OriginalTurno != "" && cell.OriginalTurno != cell.Turno {
				fmt.Printf("  (was %s)\n", cell.OriginalTurno)
			}
			for _, violation := range cell.Violations {
				fmt.Printf("  ⚠ %s\n", violation)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("note", "", "Reason for the change, stored on the cell")

	return cmd
}
