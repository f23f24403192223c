package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucabaldini/turnario/pkg/core/coverage"
	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
	"github.com/lucabaldini/turnario/pkg/db"
)

// CoverageReport aggregates the month into per-day headcount, quality
// averages, and traffic-light status per category
func CoverageReport(ctx context.Context, database db.Database, store *roster.Store, logger *zap.Logger, targets coverage.Targets, month model.MonthKey) ([]coverage.DailyCounts, error) {
	logger.Info("Building coverage report", zap.String("month", string(month)))

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

	critical := 0
	for _, day := range counts {
		for _, status := range day.Status {
			if status == coverage.StatusCritical {
				critical++
			}
		}
	}
	logger.Info("Coverage report built",
		zap.String("month", string(month)),
		zap.Int("days", len(counts)),
		zap.Int("critical", critical))

	return counts, nil
}
