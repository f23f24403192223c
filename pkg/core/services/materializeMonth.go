package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
	"github.com/lucabaldini/turnario/pkg/db"
)

// MaterializeResult summarizes a materialization run
type MaterializeResult struct {
	Month     model.MonthKey
	Operators int
	Cells     int
}

// MaterializeMonth loads any persisted cells for the month into the
// store, fills the gaps from the rotation engine, and persists the
// result. It is idempotent: manually-set and mod-tagged cells survive
// untouched.
func MaterializeMonth(ctx context.Context, database db.Database, store *roster.Store, logger *zap.Logger, month model.MonthKey) (*MaterializeResult, error) {
	logger.Info("Materializing month", zap.String("month", string(month)))

	ref, err := LoadReference(ctx, database)
	if err != nil {
		return nil, err
	}
	logger.Debug("Reference data loaded",
		zap.Int("operators", len(ref.Operators)),
		zap.Int("matrices", len(ref.Matrices)),
		zap.Int("swaps", len(ref.Swaps)),
		zap.Int("schemes", len(ref.Schemes)))

	// Pull persisted cells first so manual edits from earlier sessions
	// stay sticky
	if err := loadMonthIfAbsent(ctx, database, store, month); err != nil {
		return nil, err
	}

	if err := store.MaterializeMonth(ref.Engine(), ref.Operators, month); err != nil {
		return nil, fmt.Errorf("failed to materialize month %s: %w", month, err)
	}

	if err := SaveMonth(ctx, database, store, month); err != nil {
		return nil, err
	}

	cells := store.MonthCells(month)
	logger.Info("Month materialized",
		zap.String("month", string(month)),
		zap.Int("cells", len(cells)))

	return &MaterializeResult{
		Month:     month,
		Operators: len(ref.Operators),
		Cells:     len(cells),
	}, nil
}

// loadMonthIfAbsent hydrates a month's cells from persistence when the
// in-memory store has none for it yet. A corrupted persisted month fails
// here, at the load boundary, keeping the compute paths total.
func loadMonthIfAbsent(ctx context.Context, database db.RosterStore, store *roster.Store, month model.MonthKey) error {
	if len(store.Roster()[month]) > 0 {
		return nil
	}

	records, err := database.GetRosterCells(ctx, string(month))
	if err != nil {
		return fmt.Errorf("failed to fetch roster cells for %s: %w", month, err)
	}
	if len(records) == 0 {
		return nil
	}

	cells, err := db.CellsToModel(records)
	if err != nil {
		return fmt.Errorf("failed to convert roster cells for %s: %w", month, err)
	}

	target := store.MonthCells(month)
	for key, cell := range cells {
		target[key] = cell
	}
	return nil
}

// SaveMonth persists a month's cells. Called only after the in-memory
// state is consistent.
func SaveMonth(ctx context.Context, database db.RosterStore, store *roster.Store, month model.MonthKey) error {
	records := db.CellsFromModel(month, store.MonthCells(month))
	if err := database.ReplaceRosterCells(ctx, string(month), records); err != nil {
		return fmt.Errorf("failed to persist roster cells for %s: %w", month, err)
	}
	return nil
}
