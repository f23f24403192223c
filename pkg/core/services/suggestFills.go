package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucabaldini/turnario/pkg/core/coverage"
	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
	"github.com/lucabaldini/turnario/pkg/core/suggestion"
	"github.com/lucabaldini/turnario/pkg/db"
)

// SuggestFills aggregates the month, extracts coverage deficits, and
// proposes one operator per deficit. It never mutates roster state:
// applying a suggestion is a separate, user-confirmed step.
func SuggestFills(ctx context.Context, database db.Database, store *roster.Store, logger *zap.Logger, targets coverage.Targets, month model.MonthKey, opts suggestion.Options) ([]suggestion.Suggestion, error) {
	logger.Info("Computing emergency fill suggestions",
		zap.String("month", string(month)),
		zap.Bool("on_call_only", opts.OnCallOnly))

	ref, err := LoadReference(ctx, database)
	if err != nil {
		return nil, err
	}

	if err := loadMonthIfAbsent(ctx, database, store, month); err != nil {
		return nil, err
	}

	aggregator := coverage.NewAggregator(ref.Catalog, ref.Operators, targets)
	counts, err := aggregator.Aggregate(store, month)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate coverage for %s: %w", month, err)
	}

	deficits := aggregator.Deficits(counts)
	logger.Debug("Deficits extracted", zap.Int("count", len(deficits)))

	suggestions := suggestion.Suggest(store, ref.Operators, month, deficits, opts)
	logger.Info("Suggestions computed",
		zap.Int("deficits", len(deficits)),
		zap.Int("suggestions", len(suggestions)))

	return suggestions, nil
}

// AppliedSuggestion is one confirmed suggestion with the shift code the
// user chose for it
type AppliedSuggestion struct {
	OperatorID string
	Day        int
	ShiftCode  string
	Note       string
}

// ApplySuggestions writes confirmed suggestions through the override
// layer as a single undoable action, snapshotting history first, then
// revalidates and persists.
func ApplySuggestions(ctx context.Context, database db.Database, store *roster.Store, logger *zap.Logger, rules model.ValidationRules, month model.MonthKey, applications []AppliedSuggestion) error {
	if len(applications) == 0 {
		return nil
	}

	logger.Info("Applying suggestions",
		zap.String("month", string(month)),
		zap.Int("count", len(applications)))

	ref, err := LoadReference(ctx, database)
	if err != nil {
		return err
	}

	days, err := month.Days()
	if err != nil {
		return err
	}

	operatorIDs := make([]string, 0, len(applications))
	for _, app := range applications {
		if app.ShiftCode == "" {
			return fmt.Errorf("suggestion for operator %s day %d has no shift code", app.OperatorID, app.Day)
		}
		if ref.FindOperator(app.OperatorID) == nil {
			return fmt.Errorf("unknown operator id %q", app.OperatorID)
		}
		if app.Day < 1 || app.Day > days {
			return fmt.Errorf("day %d out of range for month %s", app.Day, month)
		}
		operatorIDs = append(operatorIDs, app.OperatorID)
	}

	if err := loadMonthIfAbsent(ctx, database, store, month); err != nil {
		return err
	}

	snapshotBeforeEdit(store)

	for _, app := range applications {
		modType := model.ModExtra
		patch := roster.CellPatch{
			Turno:   &app.ShiftCode,
			ModType: &modType,
		}
		if app.Note != "" {
			patch.Note = &app.Note
		}
		if err := store.SetCell(month, app.OperatorID, app.Day, patch); err != nil {
			return fmt.Errorf("failed to apply suggestion for operator %s day %d: %w", app.OperatorID, app.Day, err)
		}
	}

	store.Snapshot()

	if err := revalidate(store, ref, rules, operatorIDs, month); err != nil {
		return err
	}

	return SaveMonth(ctx, database, store, month)
}
