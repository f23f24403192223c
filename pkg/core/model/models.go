package model

import (
	"strings"
	"time"
)

// Well-known shift codes with special handling in the engine.
// These mirror the codes the operators use on the printed roster.
const (
	CodeRest          = "R"   // weekly rest day
	CodeLeave         = "F"   // paid leave (ferie)
	CodeSick          = "MAL" // sick leave
	CodeAbsence       = "ASS" // unjustified/other absence
	CodeNight         = "N"   // night shift
	CodePostNightRest = "SN"  // rest day following a night shift
)

// HourMode determines how a shift contributes to an operator's hour total
type HourMode string

const (
	// HourModeHourly counts the shift's own nominal duration
	HourModeHourly HourMode = "hourly"

	// HourModeZero contributes no hours (rest days, absences)
	HourModeZero HourMode = "zero"

	// HourModeSubstitutive inherits the duration of the shift it replaced,
	// not its own. Used for leave codes that stand in for a worked shift.
	HourModeSubstitutive HourMode = "substitutive"
)

// IsValid reports whether the hour mode is one of the known modes
func (m HourMode) IsValid() bool {
	return m == HourModeHourly || m == HourModeZero || m == HourModeSubstitutive
}

// DateRange is an inclusive calendar-date window.
// A zero Start or End means the range is open on that side.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the given date falls inside the range.
// Comparison is by calendar date, not timestamp.
func (r DateRange) Contains(date time.Time) bool {
	d := DateOnly(date)
	if !r.Start.IsZero() && d.Before(DateOnly(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(DateOnly(r.End)) {
		return false
	}
	return true
}

// DateOnly normalizes a time to midnight UTC so that calendar-date
// comparisons are not affected by time-of-day or timezone
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Operator represents a member of the operator pool
type Operator struct {
	ID   string
	Name string

	// Ordine is the operator's ordinal rank, used to derive the phase
	// offset within a rotation matrix and the default display order
	Ordine int

	// MatrixID is the rotation matrix this operator follows
	MatrixID string

	// Active window. Operators are never deleted, only deactivated.
	StartDate time.Time
	EndDate   time.Time

	Active bool

	// Counted marks operators included in the hour-total summaries of
	// the external rendering collaborator. The engine carries it as
	// pass-through reference data and never branches on it.
	Counted bool

	// QualityScore is a numeric weight used in coverage-quality averaging
	// and to rank emergency-fill candidates
	QualityScore float64

	// OnCallEligible marks operators who may be called in for
	// on-call-only coverage deficits
	OnCallEligible bool

	// Unavailability windows during which the operator must not be
	// proposed for emergency fills
	Unavailability []DateRange
}

// ActiveOn reports whether the operator's active window covers the date
func (o *Operator) ActiveOn(date time.Time) bool {
	if !o.Active {
		return false
	}
	return DateRange{Start: o.StartDate, End: o.EndDate}.Contains(date)
}

// UnavailableOn reports whether the date falls inside any declared
// unavailability window
func (o *Operator) UnavailableOn(date time.Time) bool {
	for _, r := range o.Unavailability {
		if r.Contains(date) {
			return true
		}
	}
	return false
}

// ShiftType describes a shift code and its time/hour semantics
type ShiftType struct {
	// Code is the short roster code. Codes are unique case-insensitively.
	Code  string
	Label string

	// StartTime and EndTime are "HH:MM" times of day. An EndTime earlier
	// than StartTime means the shift crosses midnight.
	StartTime string
	EndTime   string

	// DurationHours is the nominal paid duration
	DurationHours float64

	HourMode HourMode

	// Operative shifts count toward coverage and consecutive-day runs
	Operative bool
}

// ShiftCatalog is a lookup of shift types by code, case-insensitive
type ShiftCatalog map[string]ShiftType

// NewShiftCatalog builds a catalog from a list of shift types
func NewShiftCatalog(types []ShiftType) ShiftCatalog {
	catalog := make(ShiftCatalog, len(types))
	for _, st := range types {
		catalog[strings.ToUpper(st.Code)] = st
	}
	return catalog
}

// Lookup finds a shift type by code. The second return value reports
// whether the code is known.
func (c ShiftCatalog) Lookup(code string) (ShiftType, bool) {
	st, ok := c[strings.ToUpper(code)]
	return st, ok
}

// RotationMatrix is an immutable cyclic pattern of shift codes
type RotationMatrix struct {
	ID   string
	Name string

	// Sequence is the ordered cycle of shift codes. Index arithmetic is
	// modulo len(Sequence).
	Sequence []string

	// Color tag used by the rendering collaborator
	Color string

	// Validity window
	StartDate time.Time
	EndDate   time.Time
}

// Swap is a time-bounded identity exchange between two operators.
// Within the window, shift generation for either operator uses the other
// operator's matrix and rotation offset. This is a full exchange for
// scheduling purposes, not a single-cell trade.
type Swap struct {
	ID        string
	OperatorA string
	OperatorB string
	StartDate time.Time
	EndDate   time.Time
}

// ActiveOn reports whether the swap window covers the date
// (inclusive both ends, compared as calendar dates)
func (s *Swap) ActiveOn(date time.Time) bool {
	return DateRange{Start: s.StartDate, End: s.EndDate}.Contains(date)
}

// Counterpart returns the other operator of the pair, or "" if the given
// operator is not part of the swap
func (s *Swap) Counterpart(operatorID string) string {
	switch operatorID {
	case s.OperatorA:
		return s.OperatorB
	case s.OperatorB:
		return s.OperatorA
	}
	return ""
}

// OrderingScheme remaps operator display order and/or rotation source
// from a given month onward. The effective scheme for a date is the one
// with the latest EffectiveFrom month not after that date.
type OrderingScheme struct {
	ID   string
	Name string

	// EffectiveFrom is the first month (normalized to its first day)
	// the scheme applies to
	EffectiveFrom time.Time

	// OperatorOrder is the explicit display ordering of operator ids
	OperatorOrder []string

	// RotationSource maps an operator id to the operator whose matrix
	// and offset it should follow under this scheme
	RotationSource map[string]string
}

// EffectiveScheme picks the scheme in force on the given date, or nil if
// none applies
func EffectiveScheme(schemes []OrderingScheme, date time.Time) *OrderingScheme {
	d := DateOnly(date)
	var best *OrderingScheme
	for i := range schemes {
		s := &schemes[i]
		if s.EffectiveFrom.After(d) {
			continue
		}
		if best == nil || s.EffectiveFrom.After(best.EffectiveFrom) {
			best = s
		}
	}
	return best
}
