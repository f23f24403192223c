// Package rotation computes the default shift for an operator on a date
// from cyclic rotation matrices, applying ordering-scheme remaps and
// time-bounded swaps before the matrix lookup.
package rotation

import (
	"sort"
	"time"

	"github.com/lucabaldini/turnario/pkg/core/model"
)

// Engine resolves default shift codes from reference data. The reference
// data is read-mostly: callers rebuild the engine whenever operators,
// matrices, swaps or schemes change.
type Engine struct {
	operators []model.Operator
	matrices  map[string]model.RotationMatrix
	swaps     []model.Swap
	schemes   []model.OrderingScheme

	operatorsByID map[string]*model.Operator
}

// NewEngine creates an engine over the given reference data
func NewEngine(operators []model.Operator, matrices []model.RotationMatrix, swaps []model.Swap, schemes []model.OrderingScheme) *Engine {
	matrixMap := make(map[string]model.RotationMatrix, len(matrices))
	for _, m := range matrices {
		matrixMap[m.ID] = m
	}

	operatorMap := make(map[string]*model.Operator, len(operators))
	for i := range operators {
		operatorMap[operators[i].ID] = &operators[i]
	}

	return &Engine{
		operators:     operators,
		matrices:      matrixMap,
		swaps:         swaps,
		schemes:       schemes,
		operatorsByID: operatorMap,
	}
}

// rotationIdentity is the matrix and phase source used for a lookup.
// Swaps and scheme remaps redirect it away from the operator itself.
type rotationIdentity struct {
	matrixID string
	offsetID string
}

// Resolve computes the default shift code for an operator on a date.
// Returns "" when no shift can be resolved (unknown operator, missing
// matrix, empty sequence, or matrix without a start date). Reference-data
// gaps yield "no shift" rather than an error.
func (e *Engine) Resolve(operatorID string, date time.Time) string {
	op, ok := e.operatorsByID[operatorID]
	if !ok {
		return ""
	}

	identity := e.effectiveIdentity(op, date)

	matrix, ok := e.matrices[identity.matrixID]
	if !ok || len(matrix.Sequence) == 0 || matrix.StartDate.IsZero() {
		return ""
	}

	offset := e.offsetIndex(identity.matrixID, identity.offsetID)

	daysSinceStart := daysBetween(matrix.StartDate, date)

	// Matrices may start after the queried date, so the modulo must be
	// normalized back into [0, len)
	length := len(matrix.Sequence)
	index := ((daysSinceStart+offset)%length + length) % length

	return matrix.Sequence[index]
}

// effectiveIdentity applies the ordering-scheme rotation-source remap and
// then any active swap to determine whose matrix and offset to use
func (e *Engine) effectiveIdentity(op *model.Operator, date time.Time) rotationIdentity {
	identity := rotationIdentity{matrixID: op.MatrixID, offsetID: op.ID}

	// Scheme remap first: the scheme may point this operator at another
	// operator's rotation source
	if scheme := model.EffectiveScheme(e.schemes, date); scheme != nil {
		if sourceID, ok := scheme.RotationSource[op.ID]; ok {
			if source, exists := e.operatorsByID[sourceID]; exists {
				identity.matrixID = source.MatrixID
				identity.offsetID = source.ID
			}
		}
	}

	// An active swap is a full identity exchange: the counterpart's
	// matrix and offset apply for the whole window
	if counterpartID := e.activeSwapCounterpart(identity.offsetID, date); counterpartID != "" {
		if counterpart, exists := e.operatorsByID[counterpartID]; exists {
			identity.matrixID = counterpart.MatrixID
			identity.offsetID = counterpart.ID
		}
	}

	return identity
}

// activeSwapCounterpart finds the counterpart of the first swap covering
// the date for the given operator, or "" if none is active
func (e *Engine) activeSwapCounterpart(operatorID string, date time.Time) string {
	for i := range e.swaps {
		swap := &e.swaps[i]
		if !swap.ActiveOn(date) {
			continue
		}
		if counterpart := swap.Counterpart(operatorID); counterpart != "" {
			return counterpart
		}
	}
	return ""
}

// offsetIndex computes the phase offset: the position of the offset
// operator among all active operators sharing the matrix, sorted by
// ordinal rank. Returns 0 if the operator is not found (fallback, not an
// error).
func (e *Engine) offsetIndex(matrixID, offsetOperatorID string) int {
	var sharing []*model.Operator
	for i := range e.operators {
		op := &e.operators[i]
		if op.Active && op.MatrixID == matrixID {
			sharing = append(sharing, op)
		}
	}

	sort.SliceStable(sharing, func(i, j int) bool {
		return sharing[i].Ordine < sharing[j].Ordine
	})

	for position, op := range sharing {
		if op.ID == offsetOperatorID {
			return position
		}
	}

	return 0
}

// daysBetween returns the whole calendar days from a to b (negative when
// b precedes a)
func daysBetween(a, b time.Time) int {
	from := model.DateOnly(a)
	to := model.DateOnly(b)
	return int(to.Sub(from).Hours() / 24)
}
