package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
	"github.com/lucabaldini/turnario/pkg/db"
)

// Undo restores the previous roster state and persists the affected
// month. Returns false when there is nothing to undo.
func Undo(ctx context.Context, database db.RosterStore, store *roster.Store, logger *zap.Logger, month model.MonthKey) (bool, error) {
	if !store.Undo() {
		logger.Info("Nothing to undo")
		return false, nil
	}

	logger.Info("Undo applied", zap.String("month", string(month)))

	if err := SaveMonth(ctx, database, store, month); err != nil {
		return true, err
	}
	return true, nil
}

// Redo reapplies the most recently undone state and persists the
// affected month. Returns false when the redo stack is empty.
func Redo(ctx context.Context, database db.RosterStore, store *roster.Store, logger *zap.Logger, month model.MonthKey) (bool, error) {
	if !store.Redo() {
		logger.Info("Nothing to redo")
		return false, nil
	}

	logger.Info("Redo applied", zap.String("month", string(month)))

	if err := SaveMonth(ctx, database, store, month); err != nil {
		return true, err
	}
	return true, nil
}
