package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
	"github.com/lucabaldini/turnario/pkg/db"
)

// OperatorMonth is one grid row: the operator, their cell codes by day,
// and the month's hour total
type OperatorMonth struct {
	Operator model.Operator
	Codes    []string
	Hours    float64
}

// MonthView is the month grid handed to the presentation layer
type MonthView struct {
	Month model.MonthKey
	Days  int
	Rows  []OperatorMonth
}

// ViewMonth builds the read-only month grid: one row per operator with a
// cell in the month, codes by day, and hour totals per the catalog's
// hour modes.
func ViewMonth(ctx context.Context, database db.Database, store *roster.Store, logger *zap.Logger, month model.MonthKey) (*MonthView, error) {
	logger.Debug("Building month view", zap.String("month", string(month)))

	ref, err := LoadReference(ctx, database)
	if err != nil {
		return nil, err
	}

	if err := loadMonthIfAbsent(ctx, database, store, month); err != nil {
		return nil, err
	}

	days, err := month.Days()
	if err != nil {
		return nil, err
	}

	view := &MonthView{Month: month, Days: days}

	for _, op := range ref.Operators {
		row := OperatorMonth{Operator: op, Codes: make([]string, days)}
		present := false

		for day := 1; day <= days; day++ {
			cell := store.GetCell(month, op.ID, day)
			if cell == nil {
				continue
			}
			present = true
			row.Codes[day-1] = cell.Turno
			row.Hours += store.CellHours(ref.Catalog, month, op.ID, day)
		}

		if present {
			view.Rows = append(view.Rows, row)
		}
	}

	return view, nil
}
