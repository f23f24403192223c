package db

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lucabaldini/turnario/pkg/core/model"
)

// parseDate parses a "2006-01-02" date, treating "" as the zero time
// (open window side)
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// OperatorsToModel converts operator records and their unavailability
// windows to domain operators
func OperatorsToModel(records []Operator, unavailability []OperatorUnavailability) ([]model.Operator, error) {
	windows := make(map[string][]model.DateRange)
	for _, u := range unavailability {
		start, err := parseDate(u.StartDate)
		if err != nil {
			return nil, fmt.Errorf("unavailability %s: %w", u.ID, err)
		}
		end, err := parseDate(u.EndDate)
		if err != nil {
			return nil, fmt.Errorf("unavailability %s: %w", u.ID, err)
		}
		windows[u.OperatorID] = append(windows[u.OperatorID], model.DateRange{Start: start, End: end})
	}

	operators := make([]model.Operator, 0, len(records))
	for _, r := range records {
		start, err := parseDate(r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("operator %s: %w", r.ID, err)
		}
		end, err := parseDate(r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("operator %s: %w", r.ID, err)
		}
		operators = append(operators, model.Operator{
			ID:             r.ID,
			Name:           r.Name,
			Ordine:         r.Ordine,
			MatrixID:       r.MatrixID,
			StartDate:      start,
			EndDate:        end,
			Active:         r.Active,
			Counted:        r.Counted,
			QualityScore:   r.QualityScore,
			OnCallEligible: r.OnCallEligible,
			Unavailability: windows[r.ID],
		})
	}
	return operators, nil
}

// ShiftTypesToModel converts shift type records to domain shift types
func ShiftTypesToModel(records []ShiftType) ([]model.ShiftType, error) {
	types := make([]model.ShiftType, 0, len(records))
	for _, r := range records {
		mode := model.HourMode(strings.ToLower(r.HourMode))
		if !mode.IsValid() {
			return nil, fmt.Errorf("shift type %s: unknown hour mode %q", r.Code, r.HourMode)
		}
		types = append(types, model.ShiftType{
			Code:          r.Code,
			Label:         r.Label,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			DurationHours: r.DurationHours,
			HourMode:      mode,
			Operative:     r.Operative,
		})
	}
	return types, nil
}

// MatricesToModel converts matrix records to domain matrices. The stored
// sequence is a comma-separated list of shift codes.
func MatricesToModel(records []RotationMatrix) ([]model.RotationMatrix, error) {
	matrices := make([]model.RotationMatrix, 0, len(records))
	for _, r := range records {
		start, err := parseDate(r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("matrix %s: %w", r.ID, err)
		}
		end, err := parseDate(r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("matrix %s: %w", r.ID, err)
		}

		var sequence []string
		for _, code := range strings.Split(r.Sequence, ",") {
			code = strings.TrimSpace(code)
			if code != "" {
				sequence = append(sequence, code)
			}
		}

		matrices = append(matrices, model.RotationMatrix{
			ID:        r.ID,
			Name:      r.Name,
			Sequence:  sequence,
			Color:     r.Color,
			StartDate: start,
			EndDate:   end,
		})
	}
	return matrices, nil
}

// SwapsToModel converts swap records to domain swaps
func SwapsToModel(records []Swap) ([]model.Swap, error) {
	swaps := make([]model.Swap, 0, len(records))
	for _, r := range records {
		start, err := parseDate(r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("swap %s: %w", r.ID, err)
		}
		end, err := parseDate(r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("swap %s: %w", r.ID, err)
		}
		swaps = append(swaps, model.Swap{
			ID:        r.ID,
			OperatorA: r.OperatorA,
			OperatorB: r.OperatorB,
			StartDate: start,
			EndDate:   end,
		})
	}
	return swaps, nil
}

// SchemesToModel assembles ordering schemes from scheme records and
// their per-operator entries
func SchemesToModel(records []OrderingScheme, entries []SchemeEntry) ([]model.OrderingScheme, error) {
	entriesByScheme := make(map[string][]SchemeEntry)
	for _, e := range entries {
		entriesByScheme[e.SchemeID] = append(entriesByScheme[e.SchemeID], e)
	}

	schemes := make([]model.OrderingScheme, 0, len(records))
	for _, r := range records {
		effectiveFrom, err := time.Parse("2006-01", r.EffectiveFrom)
		if err != nil {
			return nil, fmt.Errorf("scheme %s: invalid effective-from month %q: %w", r.ID, r.EffectiveFrom, err)
		}

		schemeEntries := entriesByScheme[r.ID]
		sort.Slice(schemeEntries, func(i, j int) bool {
			return schemeEntries[i].Position < schemeEntries[j].Position
		})

		order := make([]string, 0, len(schemeEntries))
		sources := make(map[string]string)
		for _, e := range schemeEntries {
			order = append(order, e.OperatorID)
			if e.SourceOperatorID != "" {
				sources[e.OperatorID] = e.SourceOperatorID
			}
		}

		schemes = append(schemes, model.OrderingScheme{
			ID:             r.ID,
			Name:           r.Name,
			EffectiveFrom:  effectiveFrom,
			OperatorOrder:  order,
			RotationSource: sources,
		})
	}
	return schemes, nil
}

// CellsToModel converts persisted cell records into a month's cell map
func CellsToModel(records []RosterCell) (model.MonthCells, error) {
	cells := make(model.MonthCells, len(records))
	for _, r := range records {
		cell := &model.RosterCell{
			Turno:           r.Turno,
			Note:            r.Note,
			ManuallySet:     r.ManuallySet,
			OriginalTurno:   r.OriginalTurno,
			ModType:         model.ModType(r.ModType),
			AssignmentTagID: r.AssignmentTagID,
		}
		if r.ExtraType != "" || r.ExtraBonusHours != 0 || r.ExtraNote != "" {
			cell.Extra = &model.ExtraWork{
				Type:       r.ExtraType,
				Start:      r.ExtraStart,
				End:        r.ExtraEnd,
				BonusHours: r.ExtraBonusHours,
				BonusPaid:  r.ExtraBonusPaid,
				Note:       r.ExtraNote,
			}
		}
		if r.DurationOverride != nil {
			d := *r.DurationOverride
			cell.DurationOverride = &d
		}
		cells[model.CellKey{OperatorID: r.OperatorID, Day: r.Day}] = cell
	}
	return cells, nil
}

// CellsFromModel converts a month's cell map into persistable records.
// Validation findings are not persisted: they are recomputed after load.
func CellsFromModel(month model.MonthKey, cells model.MonthCells) []RosterCell {
	records := make([]RosterCell, 0, len(cells))
	for key, cell := range cells {
		record := RosterCell{
			Month:           string(month),
			OperatorID:      key.OperatorID,
			Day:             key.Day,
			Turno:           cell.Turno,
			Note:            cell.Note,
			ManuallySet:     cell.ManuallySet,
			OriginalTurno:   cell.OriginalTurno,
			ModType:         string(cell.ModType),
			AssignmentTagID: cell.AssignmentTagID,
		}
		if cell.Extra != nil {
			record.ExtraType = cell.Extra.Type
			record.ExtraStart = cell.Extra.Start
			record.ExtraEnd = cell.Extra.End
			record.ExtraBonusHours = cell.Extra.BonusHours
			record.ExtraBonusPaid = cell.Extra.BonusPaid
			record.ExtraNote = cell.Extra.Note
		}
		if cell.DurationOverride != nil {
			d := *cell.DurationOverride
			record.DurationOverride = &d
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].OperatorID != records[j].OperatorID {
			return records[i].OperatorID < records[j].OperatorID
		}
		return records[i].Day < records[j].Day
	})

	return records
}

// SequenceFromCodes joins shift codes into the stored sequence format
func SequenceFromCodes(codes []string) string {
	return strings.Join(codes, ",")
}

// FormatWindow formats an operator or matrix validity window for records
func FormatWindow(start, end time.Time) (string, string) {
	return formatDate(start), formatDate(end)
}
