package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lucabaldini/turnario/pkg/db"
)

// formatDatePtr renders a nullable DATE column as "2006-01-02" or ""
func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// GetOperators retrieves all operator records
func (d *DB) GetOperators(ctx context.Context) ([]db.Operator, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, ordine, matrix_id, start_date, end_date,
		       active, counted, quality_score, on_call_eligible
		FROM operator
		ORDER BY ordine
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query operators: %w", err)
	}
	defer rows.Close()

	var operators []db.Operator
	for rows.Next() {
		var o db.Operator
		var startDate, endDate *time.Time
		if err := rows.Scan(&o.ID, &o.Name, &o.Ordine, &o.MatrixID, &startDate, &endDate,
			&o.Active, &o.Counted, &o.QualityScore, &o.OnCallEligible); err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}
		o.StartDate = formatDatePtr(startDate)
		o.EndDate = formatDatePtr(endDate)
		operators = append(operators, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operators: %w", err)
	}

	return operators, nil
}

// GetOperatorUnavailability retrieves all unavailability windows
func (d *DB) GetOperatorUnavailability(ctx context.Context) ([]db.OperatorUnavailability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, operator_id, start_date, end_date
		FROM operator_unavailability
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query operator unavailability: %w", err)
	}
	defer rows.Close()

	var windows []db.OperatorUnavailability
	for rows.Next() {
		var w db.OperatorUnavailability
		var startDate, endDate *time.Time
		if err := rows.Scan(&w.ID, &w.OperatorID, &startDate, &endDate); err != nil {
			return nil, fmt.Errorf("failed to scan operator unavailability: %w", err)
		}
		w.StartDate = formatDatePtr(startDate)
		w.EndDate = formatDatePtr(endDate)
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operator unavailability: %w", err)
	}

	return windows, nil
}

// GetShiftTypes retrieves all shift type records
func (d *DB) GetShiftTypes(ctx context.Context) ([]db.ShiftType, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT code, label, start_time, end_time, duration_hours, hour_mode, operative
		FROM shift_type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift types: %w", err)
	}
	defer rows.Close()

	var types []db.ShiftType
	for rows.Next() {
		var t db.ShiftType
		if err := rows.Scan(&t.Code, &t.Label, &t.StartTime, &t.EndTime,
			&t.DurationHours, &t.HourMode, &t.Operative); err != nil {
			return nil, fmt.Errorf("failed to scan shift type: %w", err)
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift types: %w", err)
	}

	return types, nil
}

// GetRotationMatrices retrieves all rotation matrix records
func (d *DB) GetRotationMatrices(ctx context.Context) ([]db.RotationMatrix, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, sequence, color, start_date, end_date
		FROM rotation_matrix
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rotation matrices: %w", err)
	}
	defer rows.Close()

	var matrices []db.RotationMatrix
	for rows.Next() {
		var m db.RotationMatrix
		var startDate, endDate *time.Time
		if err := rows.Scan(&m.ID, &m.Name, &m.Sequence, &m.Color, &startDate, &endDate); err != nil {
			return nil, fmt.Errorf("failed to scan rotation matrix: %w", err)
		}
		m.StartDate = formatDatePtr(startDate)
		m.EndDate = formatDatePtr(endDate)
		matrices = append(matrices, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rotation matrices: %w", err)
	}

	return matrices, nil
}

// GetSwaps retrieves all swap records
func (d *DB) GetSwaps(ctx context.Context) ([]db.Swap, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, operator_a, operator_b, start_date, end_date
		FROM swap
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query swaps: %w", err)
	}
	defer rows.Close()

	var swaps []db.Swap
	for rows.Next() {
		var s db.Swap
		var startDate, endDate *time.Time
		if err := rows.Scan(&s.ID, &s.OperatorA, &s.OperatorB, &startDate, &endDate); err != nil {
			return nil, fmt.Errorf("failed to scan swap: %w", err)
		}
		s.StartDate = formatDatePtr(startDate)
		s.EndDate = formatDatePtr(endDate)
		swaps = append(swaps, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swaps: %w", err)
	}

	return swaps, nil
}

// GetOrderingSchemes retrieves all ordering scheme records
func (d *DB) GetOrderingSchemes(ctx context.Context) ([]db.OrderingScheme, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, effective_from
		FROM ordering_scheme
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ordering schemes: %w", err)
	}
	defer rows.Close()

	var schemes []db.OrderingScheme
	for rows.Next() {
		var s db.OrderingScheme
		if err := rows.Scan(&s.ID, &s.Name, &s.EffectiveFrom); err != nil {
			return nil, fmt.Errorf("failed to scan ordering scheme: %w", err)
		}
		schemes = append(schemes, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ordering schemes: %w", err)
	}

	return schemes, nil
}

// GetSchemeEntries retrieves all scheme entry records
func (d *DB) GetSchemeEntries(ctx context.Context) ([]db.SchemeEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT scheme_id, operator_id, position, source_operator_id
		FROM scheme_entry
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheme entries: %w", err)
	}
	defer rows.Close()

	var entries []db.SchemeEntry
	for rows.Next() {
		var e db.SchemeEntry
		var source *string
		if err := rows.Scan(&e.SchemeID, &e.OperatorID, &e.Position, &source); err != nil {
			return nil, fmt.Errorf("failed to scan scheme entry: %w", err)
		}
		if source != nil {
			e.SourceOperatorID = *source
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scheme entries: %w", err)
	}

	return entries, nil
}
