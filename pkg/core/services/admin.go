package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucabaldini/turnario/pkg/db"
)

// AddSwap registers a time-bounded rotation identity exchange between
// two operators. Both ids must resolve and the window must be ordered.
func AddSwap(ctx context.Context, database db.Database, logger *zap.Logger, operatorA, operatorB, startDate, endDate string) (*db.Swap, error) {
	if operatorA == operatorB {
		return nil, fmt.Errorf("a swap needs two distinct operators")
	}

	ref, err := LoadReference(ctx, database)
	if err != nil {
		return nil, err
	}
	if ref.FindOperator(operatorA) == nil {
		return nil, fmt.Errorf("unknown operator id %q", operatorA)
	}
	if ref.FindOperator(operatorB) == nil {
		return nil, fmt.Errorf("unknown operator id %q", operatorB)
	}

	if err := checkWindow(startDate, endDate); err != nil {
		return nil, err
	}

	swap := &db.Swap{
		ID:        uuid.New().String(),
		OperatorA: operatorA,
		OperatorB: operatorB,
		StartDate: startDate,
		EndDate:   endDate,
	}

	logger.Info("Adding swap",
		zap.String("id", swap.ID),
		zap.String("operator_a", operatorA),
		zap.String("operator_b", operatorB),
		zap.String("start", startDate),
		zap.String("end", endDate))

	if err := database.InsertSwap(ctx, swap); err != nil {
		return nil, fmt.Errorf("failed to insert swap: %w", err)
	}
	return swap, nil
}

// AddUnavailability records a window during which an operator must not
// be proposed for emergency fills
func AddUnavailability(ctx context.Context, database db.Database, logger *zap.Logger, operatorID, startDate, endDate string) (*db.OperatorUnavailability, error) {
	ref, err := LoadReference(ctx, database)
	if err != nil {
		return nil, err
	}
	if ref.FindOperator(operatorID) == nil {
		return nil, fmt.Errorf("unknown operator id %q", operatorID)
	}

	if err := checkWindow(startDate, endDate); err != nil {
		return nil, err
	}

	window := &db.OperatorUnavailability{
		ID:         uuid.New().String(),
		OperatorID: operatorID,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	logger.Info("Adding unavailability",
		zap.String("id", window.ID),
		zap.String("operator_id", operatorID),
		zap.String("start", startDate),
		zap.String("end", endDate))

	if err := database.InsertOperatorUnavailability(ctx, window); err != nil {
		return nil, fmt.Errorf("failed to insert unavailability: %w", err)
	}
	return window, nil
}

// checkWindow validates an inclusive date window. Either side may be
// empty (open window).
func checkWindow(startDate, endDate string) error {
	var start, end time.Time
	var err error

	if startDate != "" {
		if start, err = time.Parse("2006-01-02", startDate); err != nil {
			return fmt.Errorf("invalid start date %q: %w", startDate, err)
		}
	}
	if endDate != "" {
		if end, err = time.Parse("2006-01-02", endDate); err != nil {
			return fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
	}
	if startDate != "" && endDate != "" && end.Before(start) {
		return fmt.Errorf("end date %s precedes start date %s", endDate, startDate)
	}
	return nil
}
