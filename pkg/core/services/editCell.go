package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
	"github.com/lucabaldini/turnario/pkg/db"
)

// EditRequest is a cell edit coming from the modal/UI collaborator
type EditRequest struct {
	Month        model.MonthKey
	OperatorID   string
	Day          int
	NewShiftCode string
	Reason       string
	Extra        *model.ExtraWork
}

// EditCell applies a single manual edit: snapshots history, writes the
// cell through the override layer, revalidates the operator's month, and
// persists. An unresolvable operator id rejects the request before
// anything is applied.
func EditCell(ctx context.Context, database db.Database, store *roster.Store, logger *zap.Logger, rules model.ValidationRules, req EditRequest) error {
	logger.Info("Editing cell",
		zap.String("month", string(req.Month)),
		zap.String("operator_id", req.OperatorID),
		zap.Int("day", req.Day),
		zap.String("new_code", req.NewShiftCode))

	ref, err := LoadReference(ctx, database)
	if err != nil {
		return err
	}

	if ref.FindOperator(req.OperatorID) == nil {
		return fmt.Errorf("unknown operator id %q", req.OperatorID)
	}

	if err := loadMonthIfAbsent(ctx, database, store, req.Month); err != nil {
		return err
	}

	snapshotBeforeEdit(store)

	modType := model.ModChange
	patch := roster.CellPatch{
		Turno:   &req.NewShiftCode,
		ModType: &modType,
	}
	if req.Reason != "" {
		patch.Note = &req.Reason
	}
	if req.Extra != nil {
		patch.Extra = req.Extra
		extraMod := model.ModExtra
		patch.ModType = &extraMod
	}

	if err := store.SetCell(req.Month, req.OperatorID, req.Day, patch); err != nil {
		return fmt.Errorf("failed to set cell: %w", err)
	}

	store.Snapshot()

	if err := revalidate(store, ref, rules, []string{req.OperatorID}, req.Month); err != nil {
		return err
	}

	if err := SaveMonth(ctx, database, store, req.Month); err != nil {
		return err
	}

	logger.Info("Cell edited",
		zap.String("operator_id", req.OperatorID),
		zap.Int("day", req.Day))
	return nil
}

// BulkEdit applies the same shift code to several operator-days as one
// undoable action. An empty target code or any unresolvable operator id
// rejects the whole request: there is no partial application.
func BulkEdit(ctx context.Context, database db.Database, store *roster.Store, logger *zap.Logger, rules model.ValidationRules, month model.MonthKey, requests []EditRequest) error {
	if len(requests) == 0 {
		return nil
	}

	logger.Info("Applying bulk edit",
		zap.String("month", string(month)),
		zap.Int("cells", len(requests)))

	ref, err := LoadReference(ctx, database)
	if err != nil {
		return err
	}

	days, err := month.Days()
	if err != nil {
		return err
	}

	// Validate everything up front: bulk edits apply fully or not at all
	operatorIDs := make([]string, 0, len(requests))
	for _, req := range requests {
		if req.NewShiftCode == "" {
			return fmt.Errorf("bulk edit requires a target shift code")
		}
		if ref.FindOperator(req.OperatorID) == nil {
			return fmt.Errorf("unknown operator id %q", req.OperatorID)
		}
		if req.Day < 1 || req.Day > days {
			return fmt.Errorf("day %d out of range for month %s", req.Day, month)
		}
		operatorIDs = append(operatorIDs, req.OperatorID)
	}

	if err := loadMonthIfAbsent(ctx, database, store, month); err != nil {
		return err
	}

	snapshotBeforeEdit(store)

	for _, req := range requests {
		modType := model.ModChange
		patch := roster.CellPatch{
			Turno:   &req.NewShiftCode,
			ModType: &modType,
		}
		if req.Reason != "" {
			patch.Note = &req.Reason
		}
		if err := store.SetCell(month, req.OperatorID, req.Day, patch); err != nil {
			return fmt.Errorf("failed to set cell for operator %s day %d: %w", req.OperatorID, req.Day, err)
		}
	}

	// One snapshot for the whole batch so it undoes as a unit
	store.Snapshot()

	if err := revalidate(store, ref, rules, operatorIDs, month); err != nil {
		return err
	}

	return SaveMonth(ctx, database, store, month)
}

// snapshotBeforeEdit seeds the history baseline so the first edit of a
// session can be undone. Later edits find the baseline already in place.
func snapshotBeforeEdit(store *roster.Store) {
	if store.HistoryDepth() == 0 {
		store.Snapshot()
	}
}
