package db

import "context"

// ReferenceStore provides the read-mostly reference data maintained by
// the external settings collaborator. The engine re-reads it on every
// materialize/resolve cycle.
type ReferenceStore interface {
	GetOperators(ctx context.Context) ([]Operator, error)
	GetOperatorUnavailability(ctx context.Context) ([]OperatorUnavailability, error)
	GetShiftTypes(ctx context.Context) ([]ShiftType, error)
	GetRotationMatrices(ctx context.Context) ([]RotationMatrix, error)
	GetSwaps(ctx context.Context) ([]Swap, error)
	GetOrderingSchemes(ctx context.Context) ([]OrderingScheme, error)
	GetSchemeEntries(ctx context.Context) ([]SchemeEntry, error)
}

// RosterStore persists roster cells per month
type RosterStore interface {
	GetRosterCells(ctx context.Context, month string) ([]RosterCell, error)
	ReplaceRosterCells(ctx context.Context, month string, cells []RosterCell) error
}

// AdminStore covers the few reference-data writes the CLI offers;
// the full CRUD surface belongs to the external settings collaborator
type AdminStore interface {
	InsertSwap(ctx context.Context, swap *Swap) error
	InsertOperatorUnavailability(ctx context.Context, window *OperatorUnavailability) error
}

// Database combines all store interfaces
type Database interface {
	ReferenceStore
	RosterStore
	AdminStore
}
