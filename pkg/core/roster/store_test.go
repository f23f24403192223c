package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/rotation"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testCatalog() model.ShiftCatalog {
	return model.NewShiftCatalog([]model.ShiftType{
		{Code: "M7", Label: "Morning", StartTime: "06:00", EndTime: "13:00", DurationHours: 7, HourMode: model.HourModeHourly, Operative: true},
		{Code: "P", Label: "Afternoon", StartTime: "13:00", EndTime: "20:00", DurationHours: 7, HourMode: model.HourModeHourly, Operative: true},
		{Code: "N", Label: "Night", StartTime: "20:00", EndTime: "06:00", DurationHours: 10, HourMode: model.HourModeHourly, Operative: true},
		{Code: "SN", Label: "Post-night rest", HourMode: model.HourModeZero},
		{Code: "R", Label: "Rest", HourMode: model.HourModeZero},
		{Code: "F", Label: "Leave", HourMode: model.HourModeSubstitutive},
	})
}

func testEngine(operators []model.Operator) *rotation.Engine {
	matrix := model.RotationMatrix{
		ID:        "m1",
		Sequence:  []string{"M7", "P", "N", "SN", "R"},
		StartDate: date(2026, time.January, 1),
	}
	return rotation.NewEngine(operators, []model.RotationMatrix{matrix}, nil, nil)
}

func activeOperators() []model.Operator {
	return []model.Operator{
		{ID: "ana", Name: "Ana", Ordine: 1, MatrixID: "m1", Active: true},
		{ID: "bruno", Name: "Bruno", Ordine: 2, MatrixID: "m1", Active: true},
	}
}

func TestStore_MaterializeMonth_FillsAllCells(t *testing.T) {
	operators := activeOperators()
	store := NewStore(10)

	err := store.MaterializeMonth(testEngine(operators), operators, "2026-01")
	require.NoError(t, err)

	cells := store.MonthCells("2026-01")
	assert.Len(t, cells, 62, "31 days for each of 2 operators")

	// Cells mirror the engine's resolution
	assert.Equal(t, "M7", store.GetCell("2026-01", "ana", 1).Turno)
	assert.Equal(t, "P", store.GetCell("2026-01", "ana", 2).Turno)
	assert.Equal(t, "P", store.GetCell("2026-01", "bruno", 1).Turno)
}

func TestStore_MaterializeMonth_SeedsHistoryBaseline(t *testing.T) {
	operators := activeOperators()
	store := NewStore(10)

	require.NoError(t, store.MaterializeMonth(testEngine(operators), operators, "2026-01"))
	assert.Equal(t, 1, store.HistoryDepth())

	// Re-materializing must not pile up baselines
	require.NoError(t, store.MaterializeMonth(testEngine(operators), operators, "2026-01"))
	assert.Equal(t, 1, store.HistoryDepth())
}

func TestStore_MaterializeMonth_ManualCellsSurvive(t *testing.T) {
	operators := activeOperators()
	store := NewStore(10)
	engine := testEngine(operators)

	require.NoError(t, store.MaterializeMonth(engine, operators, "2026-01"))

	code := "F"
	modType := model.ModChange
	require.NoError(t, store.SetCell("2026-01", "ana", 3, CellPatch{Turno: &code, ModType: &modType}))

	require.NoError(t, store.MaterializeMonth(engine, operators, "2026-01"))

	cell := store.GetCell("2026-01", "ana", 3)
	assert.Equal(t, "F", cell.Turno, "manual edit survives re-materialization")
	assert.Equal(t, "N", cell.OriginalTurno)

	// Untouched cells are recomputed as usual
	assert.Equal(t, "M7", store.GetCell("2026-01", "ana", 1).Turno)
}

func TestStore_MaterializeMonth_SkipsOperatorsOutsideWindow(t *testing.T) {
	operators := []model.Operator{
		{ID: "ana", Ordine: 1, MatrixID: "m1", Active: true},
		// Gone before the month starts
		{ID: "old", Ordine: 2, MatrixID: "m1", Active: false, EndDate: date(2025, time.June, 30)},
		// Deactivated with no end date recorded
		{ID: "ghost", Ordine: 3, MatrixID: "m1", Active: false},
		// Joins mid-month: only the covered days get cells
		{ID: "nino", Ordine: 4, MatrixID: "m1", Active: true, StartDate: date(2026, time.January, 20)},
	}
	store := NewStore(10)

	require.NoError(t, store.MaterializeMonth(testEngine(operators), operators, "2026-01"))

	assert.Nil(t, store.GetCell("2026-01", "old", 1))
	assert.Nil(t, store.GetCell("2026-01", "ghost", 1))
	assert.Nil(t, store.GetCell("2026-01", "nino", 19))
	assert.NotNil(t, store.GetCell("2026-01", "nino", 20))
	assert.NotNil(t, store.GetCell("2026-01", "nino", 31))
}

func TestStore_SetCell_RecordsOriginalTurnoOncePerStreak(t *testing.T) {
	operators := activeOperators()
	store := NewStore(10)
	require.NoError(t, store.MaterializeMonth(testEngine(operators), operators, "2026-01"))

	modType := model.ModChange

	first := "P"
	require.NoError(t, store.SetCell("2026-01", "ana", 1, CellPatch{Turno: &first, ModType: &modType}))
	cell := store.GetCell("2026-01", "ana", 1)
	assert.True(t, cell.ManuallySet)
	assert.Equal(t, "P", cell.Turno)
	assert.Equal(t, "M7", cell.OriginalTurno)

	// A second override in the same streak keeps the original baseline
	second := "N"
	require.NoError(t, store.SetCell("2026-01", "ana", 1, CellPatch{Turno: &second, ModType: &modType}))
	cell = store.GetCell("2026-01", "ana", 1)
	assert.Equal(t, "N", cell.Turno)
	assert.Equal(t, "M7", cell.OriginalTurno, "original code is set at most once per streak")
}

func TestStore_SetCell_SundayLeaveBecomesRest(t *testing.T) {
	store := NewStore(10)

	// 2026-02-01 is a Sunday
	leave := "F"
	require.NoError(t, store.SetCell("2026-02", "ana", 1, CellPatch{Turno: &leave}))
	assert.Equal(t, model.CodeRest, store.GetCell("2026-02", "ana", 1).Turno)

	// On a weekday the leave code is stored as given
	require.NoError(t, store.SetCell("2026-02", "ana", 2, CellPatch{Turno: &leave}))
	assert.Equal(t, "F", store.GetCell("2026-02", "ana", 2).Turno)
}

func TestStore_SetCell_DayOutOfRange(t *testing.T) {
	store := NewStore(10)
	code := "M7"

	err := store.SetCell("2026-02", "ana", 29, CellPatch{Turno: &code})
	assert.Error(t, err, "2026-02 has 28 days")

	err = store.SetCell("2026-02", "ana", 0, CellPatch{Turno: &code})
	assert.Error(t, err)
}

func TestStore_GetCell_DistinguishesAbsentFromEmpty(t *testing.T) {
	store := NewStore(10)

	assert.Nil(t, store.GetCell("2026-01", "ana", 1))

	empty := ""
	require.NoError(t, store.SetCell("2026-01", "ana", 1, CellPatch{Turno: &empty}))
	cell := store.GetCell("2026-01", "ana", 1)
	require.NotNil(t, cell)
	assert.Equal(t, "", cell.Turno)
}

func TestStore_CellHours_HourModes(t *testing.T) {
	catalog := testCatalog()
	operators := []model.Operator{{ID: "ana", Ordine: 1, MatrixID: "m1", Active: true}}
	store := NewStore(10)
	require.NoError(t, store.MaterializeMonth(testEngine(operators), operators, "2026-01"))

	// Ana's generated January: M7, P, N, SN, R, repeating

	// Hourly: nominal duration
	assert.Equal(t, 7.0, store.CellHours(catalog, "2026-01", "ana", 1))

	// Hourly with duration override (e.g. partial leave)
	override := 4.0
	require.NoError(t, store.SetCell("2026-01", "ana", 2, CellPatch{DurationOverride: &override}))
	assert.Equal(t, 4.0, store.CellHours(catalog, "2026-01", "ana", 2))

	// Substitutive: leave over the night shift inherits the night's hours
	modType := model.ModChange
	f := "F"
	require.NoError(t, store.SetCell("2026-01", "ana", 3, CellPatch{Turno: &f, ModType: &modType}))
	assert.Equal(t, 10.0, store.CellHours(catalog, "2026-01", "ana", 3))

	// Zero: rest contributes nothing
	assert.Equal(t, 0.0, store.CellHours(catalog, "2026-01", "ana", 5))

	// Extra-work bonus hours stack on top of the shift's own
	extra := model.ExtraWork{Type: "training", BonusHours: 2}
	require.NoError(t, store.SetCell("2026-01", "ana", 6, CellPatch{Extra: &extra}))
	assert.Equal(t, 9.0, store.CellHours(catalog, "2026-01", "ana", 6))

	// Absent cell
	assert.Equal(t, 0.0, store.CellHours(catalog, "2026-01", "bruno", 1))
}

func TestStore_UndoRedo_RoundTrip(t *testing.T) {
	operators := activeOperators()
	store := NewStore(10)
	require.NoError(t, store.MaterializeMonth(testEngine(operators), operators, "2026-01"))

	modType := model.ModChange

	// Two edits, each snapshotted as its own undoable action
	first := "F"
	require.NoError(t, store.SetCell("2026-01", "ana", 1, CellPatch{Turno: &first, ModType: &modType}))
	store.Snapshot()

	second := "R"
	require.NoError(t, store.SetCell("2026-01", "ana", 2, CellPatch{Turno: &second, ModType: &modType}))
	store.Snapshot()

	assert.Equal(t, "F", store.GetCell("2026-01", "ana", 1).Turno)
	assert.Equal(t, "R", store.GetCell("2026-01", "ana", 2).Turno)

	// Undo reverts the second edit only
	require.True(t, store.Undo())
	assert.Equal(t, "F", store.GetCell("2026-01", "ana", 1).Turno)
	assert.Equal(t, "P", store.GetCell("2026-01", "ana", 2).Turno)

	// Redo brings it back
	require.True(t, store.Redo())
	assert.Equal(t, "R", store.GetCell("2026-01", "ana", 2).Turno)

	// Undoing everything lands on the materialized baseline
	require.True(t, store.Undo())
	require.True(t, store.Undo())
	assert.Equal(t, "M7", store.GetCell("2026-01", "ana", 1).Turno)
	assert.False(t, store.Undo(), "baseline is the floor")
}
