package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
	"github.com/lucabaldini/turnario/pkg/core/validation"
	"github.com/lucabaldini/turnario/pkg/db"
)

// CellViolation reports one validation finding for display
type CellViolation struct {
	OperatorID string
	Day        int
	Message    string
}

// ValidateMonth recomputes the violation set for every operator in the
// month and returns the findings. Findings annotate cells; they never
// reject the roster.
func ValidateMonth(ctx context.Context, database db.Database, store *roster.Store, logger *zap.Logger, rules model.ValidationRules, month model.MonthKey) ([]CellViolation, error) {
	logger.Info("Validating month",
		zap.String("month", string(month)),
		zap.Float64("min_rest_hours", rules.MinRestHours),
		zap.Int("max_consecutive_days", rules.MaxConsecutiveDays))

	ref, err := LoadReference(ctx, database)
	if err != nil {
		return nil, err
	}

	if err := loadMonthIfAbsent(ctx, database, store, month); err != nil {
		return nil, err
	}

	if err := revalidate(store, ref, rules, ref.OperatorIDs(), month); err != nil {
		return nil, err
	}

	violations := collectViolations(store, ref.OperatorIDs(), month)
	logger.Info("Validation complete",
		zap.String("month", string(month)),
		zap.Int("violations", len(violations)))

	return violations, nil
}

// revalidate runs the validation engine over the given operators
func revalidate(store *roster.Store, ref *Reference, rules model.ValidationRules, operatorIDs []string, month model.MonthKey) error {
	engine := validation.NewEngine(ref.Catalog, rules)
	if err := engine.Validate(store, operatorIDs, month); err != nil {
		return fmt.Errorf("failed to validate month %s: %w", month, err)
	}
	return nil
}

// collectViolations flattens the per-cell findings for reporting
func collectViolations(store *roster.Store, operatorIDs []string, month model.MonthKey) []CellViolation {
	var violations []CellViolation
	days, err := month.Days()
	if err != nil {
		return violations
	}

	for _, operatorID := range operatorIDs {
		for day := 1; day <= days; day++ {
			cell := store.GetCell(month, operatorID, day)
			if cell == nil {
				continue
			}
			for _, message := range cell.Violations {
				violations = append(violations, CellViolation{
					OperatorID: operatorID,
					Day:        day,
					Message:    message,
				})
			}
		}
	}

	return violations
}
