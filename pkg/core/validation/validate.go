// Package validation checks the merged roster against labor-rest rules.
// Findings are first-class data attached to cells, never errors: they
// annotate an edit but do not block it.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
)

// restGapPattern matches the parenthesized hour value embedded in
// rest-rule violation messages. The emergency-severity consumer parses
// the gap back out of the message text, so the format is fixed.
var restGapPattern = regexp.MustCompile(`\((\d+(?:\.\d+)?)h\)`)

// ParseRestGap extracts the rest-gap hour value from a violation
// message. Returns false when the message carries no gap.
func ParseRestGap(message string) (float64, bool) {
	match := restGapPattern.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}
	gap, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return gap, true
}

// Engine runs rule checks over the merged roster
type Engine struct {
	catalog model.ShiftCatalog
	rules   model.ValidationRules
}

// NewEngine creates a validation engine for the given shift catalog and
// externally supplied rules
func NewEngine(catalog model.ShiftCatalog, rules model.ValidationRules) *Engine {
	return &Engine{catalog: catalog, rules: rules}
}

// Validate recomputes the violation set for the given operators and
// month. Existing violations on the month's cells are cleared first:
// there is no incremental diffing. Runs spanning the previous month
// boundary are taken into account, but violations are only recorded on
// cells of the target month.
func (e *Engine) Validate(store *roster.Store, operatorIDs []string, month model.MonthKey) error {
	monthStart, err := month.Time()
	if err != nil {
		return err
	}
	days, err := month.Days()
	if err != nil {
		return err
	}

	prevMonth, err := month.Prev()
	if err != nil {
		return err
	}
	prevStart, err := prevMonth.Time()
	if err != nil {
		return err
	}
	prevDays, err := prevMonth.Days()
	if err != nil {
		return err
	}

	for _, operatorID := range operatorIDs {
		// Clear previous findings for this operator
		for day := 1; day <= days; day++ {
			if cell := store.GetCell(month, operatorID, day); cell != nil {
				cell.Violations = nil
			}
		}

		// Build the chronological timeline: previous month's cells feed
		// rest gaps at day 1 and runs entering the month
		timeline := make([]dayEntry, 0, prevDays+days)
		for day := 1; day <= prevDays; day++ {
			timeline = append(timeline, dayEntry{
				date: prevStart.AddDate(0, 0, day-1),
				cell: store.GetCell(prevMonth, operatorID, day),
			})
		}
		for day := 1; day <= days; day++ {
			timeline = append(timeline, dayEntry{
				date:     monthStart.AddDate(0, 0, day-1),
				cell:     store.GetCell(month, operatorID, day),
				inTarget: true,
			})
		}

		e.checkRestHours(timeline)
		e.checkConsecutiveDays(timeline)
	}

	return nil
}

type dayEntry struct {
	date     time.Time
	cell     *model.RosterCell
	inTarget bool
}

// checkRestHours walks chronologically consecutive worked shifts and
// flags the later cell whenever the rest gap between end-of-shift and
// start-of-next-shift falls below the configured minimum. Shifts
// crossing midnight end on the following calendar day.
func (e *Engine) checkRestHours(timeline []dayEntry) {
	var lastEnd time.Time
	var lastCode string
	haveLast := false

	for _, entry := range timeline {
		if entry.cell == nil || entry.cell.Turno == "" {
			continue
		}

		st, ok := e.catalog.Lookup(entry.cell.Turno)
		if !ok || !st.Operative || st.StartTime == "" || st.EndTime == "" {
			continue
		}

		start, end, ok := shiftWindow(entry.date, st)
		if !ok {
			continue
		}

		if haveLast {
			gap := start.Sub(lastEnd).Hours()
			if gap < e.rules.MinRestHours && entry.inTarget {
				entry.cell.Violations = append(entry.cell.Violations, fmt.Sprintf(
					"Insufficient rest (%.1fh) between %s and %s: minimum %.0fh",
					gap, lastCode, st.Code, e.rules.MinRestHours,
				))
			}
		}

		lastEnd = end
		lastCode = st.Code
		haveLast = true
	}
}

// checkConsecutiveDays counts uninterrupted runs of operative shifts and
// flags every day beyond the configured maximum
func (e *Engine) checkConsecutiveDays(timeline []dayEntry) {
	run := 0

	for _, entry := range timeline {
		worked := false
		if entry.cell != nil && entry.cell.Turno != "" {
			if st, ok := e.catalog.Lookup(entry.cell.Turno); ok && st.Operative {
				worked = true
			}
		}

		if !worked {
			run = 0
			continue
		}

		run++
		if run > e.rules.MaxConsecutiveDays && entry.inTarget {
			entry.cell.Violations = append(entry.cell.Violations, fmt.Sprintf(
				"More than %d consecutive working days (day %d of the run)",
				e.rules.MaxConsecutiveDays, run,
			))
		}
	}
}

// shiftWindow resolves the absolute start and end of a shift on a date.
// An end time at or before the start time rolls over to the next
// calendar day.
func shiftWindow(date time.Time, st model.ShiftType) (time.Time, time.Time, bool) {
	start, err := atTimeOfDay(date, st.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := atTimeOfDay(date, st.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}

// atTimeOfDay combines a calendar date with an "HH:MM" time of day
func atTimeOfDay(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", hhmm, err)
	}
	d := model.DateOnly(date)
	return d.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}
