// Package roster holds the mutable roster state: the sticky manual-edit
// layer over the rotation baseline, hour accounting, and the bounded
// undo/redo history that wraps every mutation.
package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/rotation"
)

// Store owns the monthly roster map and its history. It is the single
// entry point for reads and writes of cell data; collaborators never
// touch the map directly.
type Store struct {
	roster  model.MonthlyRoster
	history *History
}

// NewStore creates an empty store with the given history capacity
func NewStore(historyCapacity int) *Store {
	return &Store{
		roster:  make(model.MonthlyRoster),
		history: NewHistory(historyCapacity),
	}
}

// NewStoreWithRoster creates a store over an existing roster map, e.g.
// one loaded from persistence
func NewStoreWithRoster(roster model.MonthlyRoster, historyCapacity int) *Store {
	if roster == nil {
		roster = make(model.MonthlyRoster)
	}
	return &Store{
		roster:  roster,
		history: NewHistory(historyCapacity),
	}
}

// Roster exposes the full roster map for persistence and aggregation.
// Callers must not mutate it directly.
func (s *Store) Roster() model.MonthlyRoster {
	return s.roster
}

// MonthCells returns the cell set for a month, creating it lazily
func (s *Store) MonthCells(month model.MonthKey) model.MonthCells {
	cells, ok := s.roster[month]
	if !ok {
		cells = make(model.MonthCells)
		s.roster[month] = cells
	}
	return cells
}

// GetCell returns the cell for an operator-day, or nil if absent.
// "No cell" and "cell present with empty code" are distinct states.
func (s *Store) GetCell(month model.MonthKey, operatorID string, day int) *model.RosterCell {
	cells, ok := s.roster[month]
	if !ok {
		return nil
	}
	return cells[model.CellKey{OperatorID: operatorID, Day: day}]
}

// MaterializeMonth fills the month's cells from the rotation engine.
// It is idempotent: cells that are manually set or mod-tagged are never
// recomputed, and recomputing an untouched cell preserves its note.
// Operators are included when their active window overlaps the month.
func (s *Store) MaterializeMonth(engine *rotation.Engine, operators []model.Operator, month model.MonthKey) error {
	monthStart, err := month.Time()
	if err != nil {
		return err
	}
	days, err := month.Days()
	if err != nil {
		return err
	}
	monthEnd := monthStart.AddDate(0, 0, days-1)

	cells := s.MonthCells(month)

	for i := range operators {
		op := &operators[i]
		if !overlapsWindow(op, monthStart, monthEnd) {
			continue
		}

		for day := 1; day <= days; day++ {
			date := monthStart.AddDate(0, 0, day-1)
			if !(model.DateRange{Start: op.StartDate, End: op.EndDate}).Contains(date) {
				continue
			}

			key := model.CellKey{OperatorID: op.ID, Day: day}
			cell, exists := cells[key]

			// Sticky layer: manual and mod-tagged cells are never
			// silently recomputed
			if exists && (cell.ManuallySet || cell.ModType != model.ModNone) {
				continue
			}

			turno := engine.Resolve(op.ID, date)
			if !exists {
				cells[key] = &model.RosterCell{Turno: turno}
				continue
			}
			cell.Turno = turno
		}
	}

	// Seed the history baseline so the first manual edit can be undone
	if s.history.Len() == 0 {
		s.history.Snapshot(s.roster)
	}

	return nil
}

// overlapsWindow reports whether an operator was active at any point of
// the month. Deactivated operators without an end date are excluded.
func overlapsWindow(op *model.Operator, monthStart, monthEnd time.Time) bool {
	if !op.Active && op.EndDate.IsZero() {
		return false
	}
	if !op.StartDate.IsZero() && model.DateOnly(op.StartDate).After(monthEnd) {
		return false
	}
	if !op.EndDate.IsZero() && model.DateOnly(op.EndDate).Before(monthStart) {
		return false
	}
	return true
}

// CellPatch describes a manual edit to a cell. Nil fields are left
// unchanged.
type CellPatch struct {
	Turno            *string
	Note             *string
	ModType          *model.ModType
	Extra            *model.ExtraWork
	ClearExtra       bool
	AssignmentTagID  *string
	DurationOverride *float64
}

// SetCell applies a manual edit. On the first manual write to a
// previously unmodified cell the current code is copied into
// OriginalTurno, preserving the pre-override baseline for substitutive
// hour accounting; later writes in the same streak never overwrite it.
//
// Assigning a paid-leave code on a Sunday stores the rest code instead:
// leave does not accrue on the weekly rest day.
//
// The caller is responsible for snapshotting history around the edit
// (see Store.Snapshot); services snapshot once per user action so that
// bulk edits undo as a unit.
func (s *Store) SetCell(month model.MonthKey, operatorID string, day int, patch CellPatch) error {
	monthStart, err := month.Time()
	if err != nil {
		return err
	}
	days, err := month.Days()
	if err != nil {
		return err
	}
	if day < 1 || day > days {
		return fmt.Errorf("day %d out of range for month %s", day, month)
	}

	cells := s.MonthCells(month)
	key := model.CellKey{OperatorID: operatorID, Day: day}

	cell, exists := cells[key]
	if !exists {
		cell = &model.RosterCell{}
		cells[key] = cell
	}

	if patch.Turno != nil {
		newTurno := *patch.Turno

		date := monthStart.AddDate(0, 0, day-1)
		if date.Weekday() == time.Sunday && isLeaveCode(newTurno) {
			newTurno = model.CodeRest
		}

		if !cell.ManuallySet {
			cell.OriginalTurno = cell.Turno
		}
		cell.Turno = newTurno
		cell.ManuallySet = true
	}

	if patch.Note != nil {
		cell.Note = *patch.Note
	}
	if patch.ModType != nil {
		cell.ModType = *patch.ModType
	}
	if patch.Extra != nil {
		extra := *patch.Extra
		cell.Extra = &extra
	}
	if patch.ClearExtra {
		cell.Extra = nil
	}
	if patch.AssignmentTagID != nil {
		cell.AssignmentTagID = *patch.AssignmentTagID
	}
	if patch.DurationOverride != nil {
		d := *patch.DurationOverride
		cell.DurationOverride = &d
	}

	return nil
}

// isLeaveCode reports whether the code means paid leave
func isLeaveCode(code string) bool {
	return strings.EqualFold(code, model.CodeLeave)
}

// CellHours returns the hours a cell contributes to its operator's
// total, honoring the shift type's hour mode:
//   - hourly: the nominal duration, or the cell's duration override
//   - substitutive: the pre-override shift's duration, not the
//     substitute's own
//   - zero: nothing
//
// Extra-work bonus hours are added on top.
func (s *Store) CellHours(catalog model.ShiftCatalog, month model.MonthKey, operatorID string, day int) float64 {
	cell := s.GetCell(month, operatorID, day)
	if cell == nil {
		return 0
	}

	hours := 0.0

	if st, ok := catalog.Lookup(cell.Turno); ok {
		switch st.HourMode {
		case model.HourModeHourly:
			if cell.DurationOverride != nil {
				hours = *cell.DurationOverride
			} else {
				hours = st.DurationHours
			}
		case model.HourModeSubstitutive:
			if original, found := catalog.Lookup(cell.OriginalTurno); found {
				hours = original.DurationHours
			}
		case model.HourModeZero:
			// contributes nothing
		}
	}

	if cell.Extra != nil {
		hours += cell.Extra.BonusHours
	}

	return hours
}

// Snapshot pushes a deep copy of the current roster onto the undo stack
func (s *Store) Snapshot() {
	s.history.Snapshot(s.roster)
}

// Undo restores the previous roster state. Returns false when there is
// nothing to undo.
func (s *Store) Undo() bool {
	restored, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.roster = restored
	return true
}

// Redo reapplies the most recently undone state. Returns false when the
// redo stack is empty.
func (s *Store) Redo() bool {
	restored, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.roster = restored
	return true
}

// HistoryDepth returns the number of undo entries currently held
func (s *Store) HistoryDepth() int {
	return s.history.Len()
}

// CanUndo reports whether an undo would have an effect
func (s *Store) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether a redo would have an effect
func (s *Store) CanRedo() bool {
	return s.history.CanRedo()
}
