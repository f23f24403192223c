package services

import (
	"context"
	"fmt"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/rotation"
	"github.com/lucabaldini/turnario/pkg/db"
)

// Reference bundles the read-mostly reference data the engine needs.
// It is reloaded on every service call: the external settings
// collaborator may change operators, matrices, swaps or schemes between
// calls.
type Reference struct {
	Operators []model.Operator
	Catalog   model.ShiftCatalog
	Matrices  []model.RotationMatrix
	Swaps     []model.Swap
	Schemes   []model.OrderingScheme
}

// Engine builds a rotation engine over the reference data
func (r *Reference) Engine() *rotation.Engine {
	return rotation.NewEngine(r.Operators, r.Matrices, r.Swaps, r.Schemes)
}

// OperatorIDs returns the ids of all operators
func (r *Reference) OperatorIDs() []string {
	ids := make([]string, len(r.Operators))
	for i, op := range r.Operators {
		ids[i] = op.ID
	}
	return ids
}

// FindOperator resolves an operator by id, or nil when unknown
func (r *Reference) FindOperator(operatorID string) *model.Operator {
	for i := range r.Operators {
		if r.Operators[i].ID == operatorID {
			return &r.Operators[i]
		}
	}
	return nil
}

// LoadReference fetches and converts all reference data from the
// database
func LoadReference(ctx context.Context, database db.ReferenceStore) (*Reference, error) {
	operatorRecords, err := database.GetOperators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch operators: %w", err)
	}
	unavailability, err := database.GetOperatorUnavailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch operator unavailability: %w", err)
	}
	operators, err := db.OperatorsToModel(operatorRecords, unavailability)
	if err != nil {
		return nil, fmt.Errorf("failed to convert operators: %w", err)
	}

	typeRecords, err := database.GetShiftTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift types: %w", err)
	}
	types, err := db.ShiftTypesToModel(typeRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to convert shift types: %w", err)
	}

	matrixRecords, err := database.GetRotationMatrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rotation matrices: %w", err)
	}
	matrices, err := db.MatricesToModel(matrixRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to convert rotation matrices: %w", err)
	}

	swapRecords, err := database.GetSwaps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swaps: %w", err)
	}
	swaps, err := db.SwapsToModel(swapRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to convert swaps: %w", err)
	}

	schemeRecords, err := database.GetOrderingSchemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ordering schemes: %w", err)
	}
	schemeEntries, err := database.GetSchemeEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheme entries: %w", err)
	}
	schemes, err := db.SchemesToModel(schemeRecords, schemeEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to convert ordering schemes: %w", err)
	}

	return &Reference{
		Operators: operators,
		Catalog:   model.NewShiftCatalog(types),
		Matrices:  matrices,
		Swaps:     swaps,
		Schemes:   schemes,
	}, nil
}
