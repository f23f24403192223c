package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/services"
)

// UndoCmd creates the undo command. Undo is only meaningful within a
// session that has performed edits, so the interactive command is where
// it earns its keep.
func UndoCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <month>",
		Short: "Revert the last roster mutation in this session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			applied, err := services.Undo(app.Ctx, app.Database, app.Store, app.Logger, month)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Println("\nNothing to undo in this session.")
				return nil
			}

			fmt.Printf("\n✓ Undo applied for %s\n\n", month)
			return nil
		},
	}
}

// RedoCmd creates the redo command
func RedoCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "redo <month>",
		Short: "Reapply the last undone roster mutation in this session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			applied, err := services.Redo(app.Ctx, app.Database, app.Store, app.Logger, month)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Println("\nNothing to redo in this session.")
				return nil
			}

			fmt.Printf("\n✓ Redo applied for %s\n\n", month)
			return nil
		},
	}
}
