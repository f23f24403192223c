package model

import (
	"fmt"
	"time"
)

// ModType is the one-letter modification tag recorded on a manually
// edited cell
type ModType string

const (
	ModNone   ModType = ""
	ModChange ModType = "C" // shift changed by hand
	ModSwap   ModType = "S" // single-cell trade between two operators
	ModExtra  ModType = "E" // extra work added on top of the shift
)

// ExtraWork describes additional duty attached to a cell beyond its
// regular shift
type ExtraWork struct {
	Type       string
	Start      string // "HH:MM"
	End        string // "HH:MM"
	BonusHours float64
	BonusPaid  bool
	Note       string
}

// RosterCell holds the resolved state of one operator-day
type RosterCell struct {
	// Turno is the resolved shift code. Empty string means no shift.
	Turno string

	Note string

	// ManuallySet marks cells written by hand. Manually-set cells are
	// never silently recomputed by materialization.
	ManuallySet bool

	// OriginalTurno preserves the code that existed before the first
	// manual override of an uninterrupted override streak. It is set at
	// most once per streak so that substitutive hour accounting always
	// sees the pre-override baseline.
	OriginalTurno string

	ModType ModType

	Extra *ExtraWork

	// AssignmentTagID is an optional secondary duty label
	AssignmentTagID string

	// Violations holds validation findings for this cell. Findings are
	// data, not errors: they annotate the cell and never block a write.
	Violations []string

	// DurationOverride replaces the shift type's nominal duration for
	// hour accounting (e.g. partial-leave hours)
	DurationOverride *float64
}

// Clone returns a deep copy of the cell
func (c *RosterCell) Clone() *RosterCell {
	clone := *c
	if c.Extra != nil {
		extra := *c.Extra
		clone.Extra = &extra
	}
	if c.DurationOverride != nil {
		d := *c.DurationOverride
		clone.DurationOverride = &d
	}
	if c.Violations != nil {
		clone.Violations = make([]string, len(c.Violations))
		copy(clone.Violations, c.Violations)
	}
	return &clone
}

// MonthKey identifies a roster month as "YYYY-MM"
type MonthKey string

// MonthKeyFor returns the month key for a date
func MonthKeyFor(date time.Time) MonthKey {
	return MonthKey(date.Format("2006-01"))
}

// Time returns the first day of the month in UTC
func (k MonthKey) Time() (time.Time, error) {
	t, err := time.Parse("2006-01", string(k))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", k, err)
	}
	return t, nil
}

// Days returns the number of days in the month
func (k MonthKey) Days() (int, error) {
	start, err := k.Time()
	if err != nil {
		return 0, err
	}
	return start.AddDate(0, 1, -1).Day(), nil
}

// Prev returns the key of the previous month
func (k MonthKey) Prev() (MonthKey, error) {
	start, err := k.Time()
	if err != nil {
		return "", err
	}
	return MonthKeyFor(start.AddDate(0, -1, 0)), nil
}

// CellKey addresses a cell within a month
type CellKey struct {
	OperatorID string
	Day        int
}

// MonthCells is the cell set of one roster month
type MonthCells map[CellKey]*RosterCell

// Clone returns a deep copy of the month's cells
func (m MonthCells) Clone() MonthCells {
	clone := make(MonthCells, len(m))
	for key, cell := range m {
		clone[key] = cell.Clone()
	}
	return clone
}

// MonthlyRoster maps month keys to their cell sets. Entries are created
// lazily and persist indefinitely.
type MonthlyRoster map[MonthKey]MonthCells

// Clone returns a deep copy of the full roster
func (r MonthlyRoster) Clone() MonthlyRoster {
	clone := make(MonthlyRoster, len(r))
	for month, cells := range r {
		clone[month] = cells.Clone()
	}
	return clone
}

// ValidationRules is the externally supplied labor-rest configuration
type ValidationRules struct {
	MinRestHours       float64
	MaxConsecutiveDays int
}
