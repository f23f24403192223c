package postgres

import (
	"context"
	"fmt"

	"github.com/lucabaldini/turnario/pkg/db"
)

// GetRosterCells retrieves all cell records for a month.
// Row presence encodes cell presence, so an absent row and a row with an
// empty turno are distinct states.
func (d *DB) GetRosterCells(ctx context.Context, month string) ([]db.RosterCell, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT month, operator_id, day, turno, note, manually_set, original_turno,
		       mod_type, extra_type, extra_start, extra_end, extra_bonus_hours,
		       extra_bonus_paid, extra_note, assignment_tag_id, duration_override
		FROM roster_cell
		WHERE month = $1
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster cells: %w", err)
	}
	defer rows.Close()

	var cells []db.RosterCell
	for rows.Next() {
		var c db.RosterCell
		if err := rows.Scan(&c.Month, &c.OperatorID, &c.Day, &c.Turno, &c.Note,
			&c.ManuallySet, &c.OriginalTurno, &c.ModType, &c.ExtraType, &c.ExtraStart,
			&c.ExtraEnd, &c.ExtraBonusHours, &c.ExtraBonusPaid, &c.ExtraNote,
			&c.AssignmentTagID, &c.DurationOverride); err != nil {
			return nil, fmt.Errorf("failed to scan roster cell: %w", err)
		}
		cells = append(cells, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster cells: %w", err)
	}

	return cells, nil
}

// ReplaceRosterCells replaces the persisted cell set for a month in a
// single transaction. Persistence runs only after the in-memory state is
// consistent, so a full replace keeps the stored month in step with the
// live roster.
func (d *DB) ReplaceRosterCells(ctx context.Context, month string, cells []db.RosterCell) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM roster_cell WHERE month = $1`, month); err != nil {
		return fmt.Errorf("failed to clear roster cells: %w", err)
	}

	for _, c := range cells {
		_, err := tx.Exec(ctx, `
			INSERT INTO roster_cell (
				month, operator_id, day, turno, note, manually_set, original_turno,
				mod_type, extra_type, extra_start, extra_end, extra_bonus_hours,
				extra_bonus_paid, extra_note, assignment_tag_id, duration_override
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`, c.Month, c.OperatorID, c.Day, c.Turno, c.Note, c.ManuallySet, c.OriginalTurno,
			c.ModType, c.ExtraType, c.ExtraStart, c.ExtraEnd, c.ExtraBonusHours,
			c.ExtraBonusPaid, c.ExtraNote, c.AssignmentTagID, c.DurationOverride)
		if err != nil {
			return fmt.Errorf("failed to insert roster cell: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
