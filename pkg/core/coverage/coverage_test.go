package coverage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
)

func testCatalog() model.ShiftCatalog {
	return model.NewShiftCatalog([]model.ShiftType{
		{Code: "M7", Label: "Morning 7h", HourMode: model.HourModeHourly, Operative: true},
		{Code: "DM", Label: "Morning double", HourMode: model.HourModeHourly, Operative: true},
		{Code: "P", Label: "Afternoon", HourMode: model.HourModeHourly, Operative: true},
		{Code: "N", Label: "Night", HourMode: model.HourModeHourly, Operative: true},
		{Code: "SN", Label: "Post-night rest", HourMode: model.HourModeZero},
		{Code: "R", Label: "Rest", HourMode: model.HourModeZero},
		{Code: "TURNO1", Label: "Servizio mattina", HourMode: model.HourModeHourly, Operative: true},
		{Code: "X9", Label: "Special duty", HourMode: model.HourModeHourly, Operative: true},
	})
}

func TestClassify_PrefixConvention(t *testing.T) {
	catalog := testCatalog()

	assert.Equal(t, CategoryMorning, Classify("M7", catalog))
	assert.Equal(t, CategoryMorning, Classify("DM", catalog))
	assert.Equal(t, CategoryAfternoon, Classify("P", catalog))
	assert.Equal(t, CategoryAfternoon, Classify("DP4", catalog))
	assert.Equal(t, CategoryNight, Classify("N", catalog))
	assert.Equal(t, CategoryPostNightRest, Classify("SN", catalog))
	assert.Equal(t, CategoryOther, Classify("R", catalog))
	assert.Equal(t, CategoryOther, Classify("", catalog))
	assert.Equal(t, CategoryOther, Classify("  ", catalog))

	// Lowercase input is normalized
	assert.Equal(t, CategoryMorning, Classify("m7", catalog))
}

func TestClassify_LabelFallback(t *testing.T) {
	catalog := testCatalog()

	// TURNO1 has no recognized prefix; its label says morning (Italian)
	assert.Equal(t, CategoryMorning, Classify("TURNO1", catalog))

	// Unclassifiable code with an unhelpful label
	assert.Equal(t, CategoryOther, Classify("X9", catalog))
}

func TestClassify_PrefixBeatsLabel(t *testing.T) {
	// The prefix convention wins even when it is arguably wrong: sick
	// leave starts with M and lands in Morning. Known limitation of the
	// heuristic.
	catalog := testCatalog()
	assert.Equal(t, CategoryMorning, Classify("MAL", catalog))
}

func TestClassifyStatus_MorningAfternoonTiers(t *testing.T) {
	for _, category := range []Category{CategoryMorning, CategoryAfternoon} {
		assert.Equal(t, StatusOK, ClassifyStatus(category, 5, 5))
		assert.Equal(t, StatusOK, ClassifyStatus(category, 6, 5), "surplus is fine")
		assert.Equal(t, StatusWarning, ClassifyStatus(category, 4, 5))
		assert.Equal(t, StatusCritical, ClassifyStatus(category, 3, 5))
		assert.Equal(t, StatusCritical, ClassifyStatus(category, 0, 5))
	}
}

func TestClassifyStatus_NightIsBinary(t *testing.T) {
	assert.Equal(t, StatusOK, ClassifyStatus(CategoryNight, 1, 1))
	assert.Equal(t, StatusCritical, ClassifyStatus(CategoryNight, 0, 1))
	assert.Equal(t, StatusCritical, ClassifyStatus(CategoryNight, 2, 1), "a night surplus is never a warning")
}

func TestClassifyStatus_PostNightRestSurplusIsCritical(t *testing.T) {
	assert.Equal(t, StatusOK, ClassifyStatus(CategoryPostNightRest, 1, 1))
	assert.Equal(t, StatusWarning, ClassifyStatus(CategoryPostNightRest, 0, 1))
	assert.Equal(t, StatusCritical, ClassifyStatus(CategoryPostNightRest, 2, 1))
}

func TestTargets_OptimalFor_OverridesApplyByDate(t *testing.T) {
	sunday := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)

	targets := Targets{
		Base: map[Category]int{CategoryMorning: 5, CategoryNight: 1},
		Overrides: []TargetOverride{{
			AppliesTo: func(date time.Time) bool { return date.Weekday() == time.Sunday },
			Optimal:   map[Category]int{CategoryMorning: 3},
		}},
	}

	optimal, defined := targets.OptimalFor(CategoryMorning, monday)
	require.True(t, defined)
	assert.Equal(t, 5, optimal)

	optimal, defined = targets.OptimalFor(CategoryMorning, sunday)
	require.True(t, defined)
	assert.Equal(t, 3, optimal)

	// Categories the override does not mention keep the base target
	optimal, defined = targets.OptimalFor(CategoryNight, sunday)
	require.True(t, defined)
	assert.Equal(t, 1, optimal)

	_, defined = targets.OptimalFor(CategoryAfternoon, monday)
	assert.False(t, defined)
}

func testOperators() []model.Operator {
	return []model.Operator{
		{ID: "ana", Ordine: 1, Active: true, QualityScore: 8},
		{ID: "bruno", Ordine: 2, Active: true, QualityScore: 6},
		{ID: "carla", Ordine: 3, Active: true, QualityScore: 4},
	}
}

func seedDay(store *roster.Store, month model.MonthKey, day int, codes map[string]string) {
	cells := store.MonthCells(month)
	for operatorID, code := range codes {
		cells[model.CellKey{OperatorID: operatorID, Day: day}] = &model.RosterCell{Turno: code}
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	store := roster.NewStore(10)
	seedDay(store, "2026-01", 1, map[string]string{
		"ana":   "M7",
		"bruno": "M7",
		"carla": "N",
	})
	seedDay(store, "2026-01", 2, map[string]string{
		"ana":   "P",
		"bruno": "R",
		"carla": "SN",
	})

	targets := Targets{Base: map[Category]int{
		CategoryMorning:       2,
		CategoryAfternoon:     2,
		CategoryNight:         1,
		CategoryPostNightRest: 1,
	}}

	aggregator := NewAggregator(testCatalog(), testOperators(), targets)
	counts, err := aggregator.Aggregate(store, "2026-01")
	require.NoError(t, err)
	require.Len(t, counts, 31)

	day1 := counts[0]
	assert.Equal(t, 2, day1.Headcount[CategoryMorning])
	assert.Equal(t, 1, day1.Headcount[CategoryNight])
	assert.Equal(t, StatusOK, day1.Status[CategoryMorning])
	assert.Equal(t, StatusOK, day1.Status[CategoryNight])
	assert.Equal(t, StatusWarning, day1.Status[CategoryPostNightRest], "no SN on a day after a night")
	assert.Equal(t, StatusCritical, day1.Status[CategoryAfternoon])

	// Quality average over the two morning operators: (8+6)/2
	assert.Equal(t, 7.0, day1.QualityAvg[CategoryMorning])

	day2 := counts[1]
	assert.Equal(t, 1, day2.Headcount[CategoryAfternoon])
	assert.Equal(t, 1, day2.Headcount[CategoryPostNightRest])
	assert.Equal(t, StatusWarning, day2.Status[CategoryAfternoon], "one short of the target")
	assert.Equal(t, StatusOK, day2.Status[CategoryPostNightRest])

	// Empty days are critical for every staffed category
	day3 := counts[2]
	assert.Equal(t, StatusCritical, day3.Status[CategoryMorning])
	assert.Equal(t, StatusCritical, day3.Status[CategoryNight])
}

func TestAggregator_QualityAvgExcludesNonOperative(t *testing.T) {
	store := roster.NewStore(10)
	// SN is zero-hour and non-operative: it counts heads but never
	// contributes to quality
	seedDay(store, "2026-01", 1, map[string]string{
		"ana":   "N",
		"carla": "SN",
	})

	aggregator := NewAggregator(testCatalog(), testOperators(), Targets{Base: map[Category]int{CategoryNight: 1}})
	counts, err := aggregator.Aggregate(store, "2026-01")
	require.NoError(t, err)

	day1 := counts[0]
	assert.Equal(t, 1, day1.Headcount[CategoryPostNightRest])
	assert.Equal(t, 8.0, day1.QualityAvg[CategoryNight])
	assert.NotContains(t, day1.QualityAvg, CategoryPostNightRest)
}

func TestAggregator_Deficits(t *testing.T) {
	store := roster.NewStore(10)
	seedDay(store, "2026-01", 1, map[string]string{
		"ana": "M7",
	})

	targets := Targets{Base: map[Category]int{
		CategoryMorning:       2,
		CategoryNight:         1,
		CategoryPostNightRest: 1,
	}}

	aggregator := NewAggregator(testCatalog(), testOperators(), targets)
	counts, err := aggregator.Aggregate(store, "2026-01")
	require.NoError(t, err)

	deficits := aggregator.Deficits(counts[:1])
	require.Len(t, deficits, 2, "morning short by one, night short by one; post-night rest is not fillable")

	byCategory := make(map[Category]Deficit)
	for _, d := range deficits {
		byCategory[d.Category] = d
	}
	assert.Equal(t, 1, byCategory[CategoryMorning].Missing)
	assert.Equal(t, 1, byCategory[CategoryNight].Missing)
	assert.NotContains(t, byCategory, CategoryPostNightRest)
}
