package db

// Operator represents a database operator record
type Operator struct {
	ID             string
	Name           string
	Ordine         int
	MatrixID       string
	StartDate      string // "2006-01-02", empty when open
	EndDate        string
	Active         bool
	Counted        bool
	QualityScore   float64
	OnCallEligible bool
}

// OperatorUnavailability represents a declared unavailability window
type OperatorUnavailability struct {
	ID         string
	OperatorID string
	StartDate  string
	EndDate    string
}

// ShiftType represents a database shift type record
type ShiftType struct {
	Code          string
	Label         string
	StartTime     string // "HH:MM"
	EndTime       string
	DurationHours float64
	HourMode      string
	Operative     bool
}

// RotationMatrix represents a database rotation matrix record.
// Sequence is stored as a comma-separated list of shift codes.
type RotationMatrix struct {
	ID        string
	Name      string
	Sequence  string
	Color     string
	StartDate string
	EndDate   string
}

// Swap represents a database swap record
type Swap struct {
	ID        string
	OperatorA string
	OperatorB string
	StartDate string
	EndDate   string
}

// OrderingScheme represents a database ordering scheme record
type OrderingScheme struct {
	ID            string
	Name          string
	EffectiveFrom string // "2006-01", first month the scheme applies to
}

// SchemeEntry is one operator's position (and optional rotation source)
// within an ordering scheme
type SchemeEntry struct {
	SchemeID         string
	OperatorID       string
	Position         int
	SourceOperatorID string // empty when the operator keeps its own rotation
}

// RosterCell represents a persisted roster cell. Row presence encodes
// cell presence: a cell with an empty code is stored as a row with an
// empty turno, which is distinct from no row at all.
type RosterCell struct {
	Month            string // "2006-01"
	OperatorID       string
	Day              int
	Turno            string
	Note             string
	ManuallySet      bool
	OriginalTurno    string
	ModType          string
	ExtraType        string
	ExtraStart       string
	ExtraEnd         string
	ExtraBonusHours  float64
	ExtraBonusPaid   bool
	ExtraNote        string
	AssignmentTagID  string
	DurationOverride *float64
}
