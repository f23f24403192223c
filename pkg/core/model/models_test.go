package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{Start: date(2026, time.January, 10), End: date(2026, time.January, 20)}

	assert.True(t, r.Contains(date(2026, time.January, 10)), "inclusive start")
	assert.True(t, r.Contains(date(2026, time.January, 20)), "inclusive end")
	assert.False(t, r.Contains(date(2026, time.January, 9)))
	assert.False(t, r.Contains(date(2026, time.January, 21)))

	// Time-of-day must not matter
	lateOnEndDay := time.Date(2026, time.January, 20, 23, 59, 0, 0, time.UTC)
	assert.True(t, r.Contains(lateOnEndDay))

	open := DateRange{}
	assert.True(t, open.Contains(date(1990, time.June, 1)))

	openEnd := DateRange{Start: date(2026, time.January, 10)}
	assert.True(t, openEnd.Contains(date(2030, time.January, 1)))
	assert.False(t, openEnd.Contains(date(2026, time.January, 9)))
}

func TestMonthKey(t *testing.T) {
	start, err := MonthKey("2026-02").Time()
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 1), start)

	days, err := MonthKey("2026-02").Days()
	require.NoError(t, err)
	assert.Equal(t, 28, days)

	days, err = MonthKey("2024-02").Days()
	require.NoError(t, err)
	assert.Equal(t, 29, days, "leap year")

	prev, err := MonthKey("2026-01").Prev()
	require.NoError(t, err)
	assert.Equal(t, MonthKey("2025-12"), prev)

	_, err = MonthKey("January 2026").Time()
	assert.Error(t, err)

	assert.Equal(t, MonthKey("2026-03"), MonthKeyFor(date(2026, time.March, 15)))
}

func TestShiftCatalog_CaseInsensitiveLookup(t *testing.T) {
	catalog := NewShiftCatalog([]ShiftType{{Code: "M7", Label: "Morning"}})

	st, ok := catalog.Lookup("m7")
	require.True(t, ok)
	assert.Equal(t, "M7", st.Code)

	_, ok = catalog.Lookup("X")
	assert.False(t, ok)
}

func TestSwap_Counterpart(t *testing.T) {
	swap := Swap{OperatorA: "ana", OperatorB: "bruno"}

	assert.Equal(t, "bruno", swap.Counterpart("ana"))
	assert.Equal(t, "ana", swap.Counterpart("bruno"))
	assert.Equal(t, "", swap.Counterpart("carla"))
}

func TestEffectiveScheme_LatestNotAfterDateWins(t *testing.T) {
	schemes := []OrderingScheme{
		{ID: "s1", EffectiveFrom: date(2026, time.January, 1)},
		{ID: "s2", EffectiveFrom: date(2026, time.March, 1)},
	}

	assert.Nil(t, EffectiveScheme(schemes, date(2025, time.December, 31)))
	assert.Equal(t, "s1", EffectiveScheme(schemes, date(2026, time.February, 10)).ID)
	assert.Equal(t, "s2", EffectiveScheme(schemes, date(2026, time.March, 1)).ID)
	assert.Equal(t, "s2", EffectiveScheme(schemes, date(2026, time.December, 1)).ID)
}

func TestRosterCell_CloneIsDeep(t *testing.T) {
	override := 4.0
	cell := &RosterCell{
		Turno:            "M7",
		Extra:            &ExtraWork{BonusHours: 2},
		DurationOverride: &override,
		Violations:       []string{"finding"},
	}

	clone := cell.Clone()
	clone.Extra.BonusHours = 99
	*clone.DurationOverride = 99
	clone.Violations[0] = "changed"

	assert.Equal(t, 2.0, cell.Extra.BonusHours)
	assert.Equal(t, 4.0, *cell.DurationOverride)
	assert.Equal(t, "finding", cell.Violations[0])
}

func TestHourMode_IsValid(t *testing.T) {
	assert.True(t, HourModeHourly.IsValid())
	assert.True(t, HourModeZero.IsValid())
	assert.True(t, HourModeSubstitutive.IsValid())
	assert.False(t, HourMode("weekly").IsValid())
}
