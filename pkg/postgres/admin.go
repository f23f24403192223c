package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lucabaldini/turnario/pkg/db"
)

// parseDatePtr converts a "2006-01-02" string to a nullable DATE value
func parseDatePtr(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return &t, nil
}

// InsertSwap inserts a new swap record
func (d *DB) InsertSwap(ctx context.Context, swap *db.Swap) error {
	start, err := parseDatePtr(swap.StartDate)
	if err != nil {
		return fmt.Errorf("swap start date: %w", err)
	}
	end, err := parseDatePtr(swap.EndDate)
	if err != nil {
		return fmt.Errorf("swap end date: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO swap (id, operator_a, operator_b, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
	`, swap.ID, swap.OperatorA, swap.OperatorB, start, end)
	if err != nil {
		return fmt.Errorf("failed to insert swap: %w", err)
	}
	return nil
}

// InsertOperatorUnavailability inserts a new unavailability window
func (d *DB) InsertOperatorUnavailability(ctx context.Context, window *db.OperatorUnavailability) error {
	start, err := parseDatePtr(window.StartDate)
	if err != nil {
		return fmt.Errorf("unavailability start date: %w", err)
	}
	end, err := parseDatePtr(window.EndDate)
	if err != nil {
		return fmt.Errorf("unavailability end date: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO operator_unavailability (id, operator_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
	`, window.ID, window.OperatorID, start, end)
	if err != nil {
		return fmt.Errorf("failed to insert operator unavailability: %w", err)
	}
	return nil
}
