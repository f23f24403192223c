package suggestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucabaldini/turnario/pkg/core/coverage"
	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
)

func date(day int) time.Time {
	return time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC)
}

func morningDeficit(day, missing int) coverage.Deficit {
	return coverage.Deficit{
		Day:      day,
		Date:     date(day),
		Category: coverage.CategoryMorning,
		Missing:  missing,
	}
}

func setCell(store *roster.Store, operatorID string, day int, code string) {
	cells := store.MonthCells("2026-01")
	cells[model.CellKey{OperatorID: operatorID, Day: day}] = &model.RosterCell{Turno: code}
}

func TestSuggest_PicksHighestQualityAvailable(t *testing.T) {
	operators := []model.Operator{
		{ID: "ana", Name: "Ana", Active: true, QualityScore: 9},
		{ID: "bruno", Name: "Bruno", Active: true, QualityScore: 7},
		{ID: "carla", Name: "Carla", Active: true, QualityScore: 5},
	}
	store := roster.NewStore(10)
	// Ana is already working that day; Bruno and Carla are free
	setCell(store, "ana", 5, "P")

	suggestions := Suggest(store, operators, "2026-01", []coverage.Deficit{morningDeficit(5, 1)}, Options{})

	require.Len(t, suggestions, 1)
	assert.Equal(t, "bruno", suggestions[0].OperatorID)
	assert.Equal(t, 5, suggestions[0].Day)
	assert.Equal(t, coverage.CategoryMorning, suggestions[0].Category)
	assert.Equal(t, 7.0, suggestions[0].QualityScore)
}

func TestSuggest_RestDayIsEligible(t *testing.T) {
	operators := []model.Operator{
		{ID: "ana", Name: "Ana", Active: true, QualityScore: 9},
	}
	store := roster.NewStore(10)
	setCell(store, "ana", 5, "R")

	suggestions := Suggest(store, operators, "2026-01", []coverage.Deficit{morningDeficit(5, 1)}, Options{})

	require.Len(t, suggestions, 1)
	assert.Equal(t, "ana", suggestions[0].OperatorID)
}

func TestSuggest_ExcludedCodes(t *testing.T) {
	store := roster.NewStore(10)
	setCell(store, "sick", 5, "MAL")
	setCell(store, "absent", 5, "ASS")
	setCell(store, "postnight", 5, "SN")
	setCell(store, "working", 5, "M7")

	operators := []model.Operator{
		{ID: "sick", Active: true, QualityScore: 9},
		{ID: "absent", Active: true, QualityScore: 8},
		{ID: "postnight", Active: true, QualityScore: 7},
		{ID: "working", Active: true, QualityScore: 6},
	}

	suggestions := Suggest(store, operators, "2026-01", []coverage.Deficit{morningDeficit(5, 1)}, Options{})
	assert.Empty(t, suggestions, "nobody eligible")
}

func TestSuggest_SkipsInactiveAndUnavailable(t *testing.T) {
	operators := []model.Operator{
		{ID: "gone", Active: false, QualityScore: 9},
		{ID: "away", Active: true, QualityScore: 8, Unavailability: []model.DateRange{
			{Start: date(1), End: date(10)},
		}},
		{ID: "free", Active: true, QualityScore: 3},
	}
	store := roster.NewStore(10)

	suggestions := Suggest(store, operators, "2026-01", []coverage.Deficit{morningDeficit(5, 1)}, Options{})

	require.Len(t, suggestions, 1)
	assert.Equal(t, "free", suggestions[0].OperatorID)

	// Outside the unavailability window the better operator is back
	suggestions = Suggest(store, operators, "2026-01", []coverage.Deficit{morningDeficit(15, 1)}, Options{})
	require.Len(t, suggestions, 1)
	assert.Equal(t, "away", suggestions[0].OperatorID)
}

func TestSuggest_OnCallOnly(t *testing.T) {
	operators := []model.Operator{
		{ID: "ana", Active: true, QualityScore: 9, OnCallEligible: false},
		{ID: "bruno", Active: true, QualityScore: 5, OnCallEligible: true},
	}
	store := roster.NewStore(10)

	suggestions := Suggest(store, operators, "2026-01", []coverage.Deficit{morningDeficit(5, 1)}, Options{OnCallOnly: true})
	require.Len(t, suggestions, 1)
	assert.Equal(t, "bruno", suggestions[0].OperatorID)

	// Without the restriction quality wins
	suggestions = Suggest(store, operators, "2026-01", []coverage.Deficit{morningDeficit(5, 1)}, Options{})
	require.Len(t, suggestions, 1)
	assert.Equal(t, "ana", suggestions[0].OperatorID)
}

func TestSuggest_OneSuggestionPerDeficit(t *testing.T) {
	operators := []model.Operator{
		{ID: "ana", Active: true, QualityScore: 9},
		{ID: "bruno", Active: true, QualityScore: 7},
	}
	store := roster.NewStore(10)

	// Two deficits on different days, one of them short by two
	deficits := []coverage.Deficit{
		morningDeficit(5, 2),
		morningDeficit(6, 1),
	}

	suggestions := Suggest(store, operators, "2026-01", deficits, Options{})

	require.Len(t, suggestions, 2, "one candidate per deficit, even when more are missing")
	assert.Equal(t, "ana", suggestions[0].OperatorID)
	assert.Equal(t, 2, suggestions[0].Missing)
	assert.Equal(t, "ana", suggestions[1].OperatorID)
}

func TestSuggest_QualityTiesKeepInputOrder(t *testing.T) {
	operators := []model.Operator{
		{ID: "first", Active: true, QualityScore: 5},
		{ID: "second", Active: true, QualityScore: 5},
	}
	store := roster.NewStore(10)

	suggestions := Suggest(store, operators, "2026-01", []coverage.Deficit{morningDeficit(5, 1)}, Options{})

	require.Len(t, suggestions, 1)
	assert.Equal(t, "first", suggestions[0].OperatorID, "stable sort keeps roster order on ties")
}
