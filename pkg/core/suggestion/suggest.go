// Package suggestion proposes operators to fill coverage deficits.
// The heuristic is greedy best-quality-first: it is not an optimizing
// scheduler and produces at most one candidate per deficit entry.
package suggestion

import (
	"sort"
	"strings"

	"github.com/lucabaldini/turnario/pkg/core/coverage"
	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
)

// Suggestion proposes one operator for one deficit. Applying it is a
// separate, user-confirmed write through the roster store.
type Suggestion struct {
	Day          int
	Category     coverage.Category
	OperatorID   string
	OperatorName string
	QualityScore float64

	// Missing is carried over from the deficit so the confirmation
	// collaborator can show how much of the gap remains
	Missing int
}

// Options tunes candidate eligibility
type Options struct {
	// OnCallOnly restricts candidates to operators flagged as eligible
	// for on-call coverage
	OnCallOnly bool
}

// Suggest returns at most one candidate per deficit, picking the
// available operator with the highest quality score. It never mutates
// roster state.
//
// A deficit with Missing > 1 still yields a single suggestion; callers
// re-run after applying if they want to close the rest of the gap.
func Suggest(store *roster.Store, operators []model.Operator, month model.MonthKey, deficits []coverage.Deficit, opts Options) []Suggestion {
	// Stable sort by quality descending, ties broken by original order
	ranked := make([]*model.Operator, 0, len(operators))
	for i := range operators {
		ranked = append(ranked, &operators[i])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].QualityScore > ranked[j].QualityScore
	})

	var suggestions []Suggestion

	for _, deficit := range deficits {
		for _, op := range ranked {
			if !eligible(store, op, month, deficit, opts) {
				continue
			}
			suggestions = append(suggestions, Suggestion{
				Day:          deficit.Day,
				Category:     deficit.Category,
				OperatorID:   op.ID,
				OperatorName: op.Name,
				QualityScore: op.QualityScore,
				Missing:      deficit.Missing,
			})
			break
		}
	}

	return suggestions
}

// eligible applies the emergency-eligibility rules for one operator and
// one deficit day
func eligible(store *roster.Store, op *model.Operator, month model.MonthKey, deficit coverage.Deficit, opts Options) bool {
	if !op.ActiveOn(deficit.Date) {
		return false
	}
	if op.UnavailableOn(deficit.Date) {
		return false
	}
	if opts.OnCallOnly && !op.OnCallEligible {
		return false
	}

	cell := store.GetCell(month, op.ID, deficit.Day)
	if cell == nil || cell.Turno == "" {
		return true
	}

	// A rest day can be sacrificed for an emergency. Sick leave,
	// absences, post-night rest, and any working assignment cannot.
	return strings.ToUpper(cell.Turno) == model.CodeRest
}
