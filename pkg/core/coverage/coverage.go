// Package coverage aggregates the merged roster into per-day headcount
// and quality statistics per shift category, classified against target
// staffing levels.
package coverage

import (
	"strings"
	"time"

	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
)

// Category is a coverage bucket derived from a shift code
type Category string

const (
	CategoryMorning       Category = "Morning"
	CategoryAfternoon     Category = "Afternoon"
	CategoryNight         Category = "Night"
	CategoryPostNightRest Category = "PostNightRest"

	// CategoryOther collects unclassifiable codes. It is excluded from
	// coverage targets.
	CategoryOther Category = "Other"
)

// Status is the traffic-light classification of a day's coverage
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"

	// StatusUnknown marks unclassifiable categories or undefined targets
	StatusUnknown Status = "unknown"
)

// Classify maps a shift code to its coverage category.
//
// This is a documented heuristic, not a guaranteed-correct classifier:
// the prefix convention (M/DM morning, P/DP afternoon, N night, SN
// post-night rest) can misclassify user-defined codes that do not follow
// it. When the prefix gives nothing, the shift label is inspected for
// morning/afternoon keywords.
func Classify(code string, catalog model.ShiftCatalog) Category {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if upper == "" {
		return CategoryOther
	}

	switch {
	case upper == model.CodeNight:
		return CategoryNight
	case upper == model.CodePostNightRest:
		return CategoryPostNightRest
	case strings.HasPrefix(upper, "DM"), strings.HasPrefix(upper, "M"):
		return CategoryMorning
	case strings.HasPrefix(upper, "DP"), strings.HasPrefix(upper, "P"):
		return CategoryAfternoon
	}

	// Fallback: inspect the descriptive label
	if st, ok := catalog.Lookup(code); ok {
		label := strings.ToLower(st.Label)
		switch {
		case strings.Contains(label, "morning"), strings.Contains(label, "mattin"):
			return CategoryMorning
		case strings.Contains(label, "afternoon"), strings.Contains(label, "pomeriggio"):
			return CategoryAfternoon
		}
	}

	return CategoryOther
}

// ClassifyStatus applies the per-category status tiers:
//   - Morning/Afternoon: at target is OK, one short is a warning,
//     anything below is critical
//   - Night: binary, exact match or critical
//   - PostNightRest: exact match is OK, a shortfall is a warning, a
//     surplus is critical (it indicates miscounted rest shifts)
func ClassifyStatus(category Category, actual, optimal int) Status {
	switch category {
	case CategoryMorning, CategoryAfternoon:
		switch {
		case actual >= optimal:
			return StatusOK
		case actual == optimal-1:
			return StatusWarning
		default:
			return StatusCritical
		}
	case CategoryNight:
		if actual == optimal {
			return StatusOK
		}
		return StatusCritical
	case CategoryPostNightRest:
		switch {
		case actual == optimal:
			return StatusOK
		case actual < optimal:
			return StatusWarning
		default:
			return StatusCritical
		}
	}
	return StatusUnknown
}

// TargetOverride adjusts optimal staffing for dates matched by a
// predicate, e.g. an rrule covering Sundays and holidays
type TargetOverride struct {
	// AppliesTo reports whether the override covers the given date
	AppliesTo func(date time.Time) bool

	// Optimal holds the per-category staffing targets to apply.
	// Categories absent from the map keep the base target.
	Optimal map[Category]int
}

// Targets holds the optimal staffing configuration
type Targets struct {
	Base      map[Category]int
	Overrides []TargetOverride
}

// OptimalFor resolves the target for a category on a date. The last
// matching override wins. The second return value is false when no
// target is defined.
func (t Targets) OptimalFor(category Category, date time.Time) (int, bool) {
	optimal, defined := t.Base[category]

	for _, override := range t.Overrides {
		if override.AppliesTo == nil || !override.AppliesTo(date) {
			continue
		}
		if value, ok := override.Optimal[category]; ok {
			optimal = value
			defined = true
		}
	}

	return optimal, defined
}

// DailyCounts is the aggregation result for one day
type DailyCounts struct {
	Day  int
	Date time.Time

	// Headcount per category, all assigned shifts
	Headcount map[Category]int

	// QualityAvg is the average operator quality score per category,
	// computed over operative shifts only
	QualityAvg map[Category]float64

	// Status per category against the day's targets
	Status map[Category]Status
}

// Aggregator computes daily coverage for a month
type Aggregator struct {
	catalog   model.ShiftCatalog
	operators map[string]*model.Operator
	targets   Targets
}

// NewAggregator creates an aggregator over the given reference data
func NewAggregator(catalog model.ShiftCatalog, operators []model.Operator, targets Targets) *Aggregator {
	opMap := make(map[string]*model.Operator, len(operators))
	for i := range operators {
		opMap[operators[i].ID] = &operators[i]
	}
	return &Aggregator{catalog: catalog, operators: opMap, targets: targets}
}

// Aggregate produces the per-day coverage counts for a month
func (a *Aggregator) Aggregate(store *roster.Store, month model.MonthKey) ([]DailyCounts, error) {
	monthStart, err := month.Time()
	if err != nil {
		return nil, err
	}
	days, err := month.Days()
	if err != nil {
		return nil, err
	}

	results := make([]DailyCounts, 0, days)

	for day := 1; day <= days; day++ {
		date := monthStart.AddDate(0, 0, day-1)

		counts := DailyCounts{
			Day:        day,
			Date:       date,
			Headcount:  make(map[Category]int),
			QualityAvg: make(map[Category]float64),
			Status:     make(map[Category]Status),
		}

		qualitySum := make(map[Category]float64)
		qualityCount := make(map[Category]int)

		for operatorID, op := range a.operators {
			cell := store.GetCell(month, operatorID, day)
			if cell == nil || cell.Turno == "" {
				continue
			}

			category := Classify(cell.Turno, a.catalog)
			counts.Headcount[category]++

			if st, ok := a.catalog.Lookup(cell.Turno); ok && st.Operative {
				qualitySum[category] += op.QualityScore
				qualityCount[category]++
			}
		}

		for category, count := range qualityCount {
			if count > 0 {
				counts.QualityAvg[category] = qualitySum[category] / float64(count)
			}
		}

		for _, category := range []Category{CategoryMorning, CategoryAfternoon, CategoryNight, CategoryPostNightRest} {
			optimal, defined := a.targets.OptimalFor(category, date)
			if !defined {
				counts.Status[category] = StatusUnknown
				continue
			}
			counts.Status[category] = ClassifyStatus(category, counts.Headcount[category], optimal)
		}

		results = append(results, counts)
	}

	return results, nil
}

// Deficit describes a staffing shortfall on a day
type Deficit struct {
	Day      int
	Date     time.Time
	Category Category
	Missing  int
}

// Deficits extracts the fillable shortfalls from aggregated counts.
// Post-night rest is excluded: a missing SN is a miscount, not a slot an
// extra operator could fill.
func (a *Aggregator) Deficits(counts []DailyCounts) []Deficit {
	var deficits []Deficit

	for _, day := range counts {
		for _, category := range []Category{CategoryMorning, CategoryAfternoon, CategoryNight} {
			optimal, defined := a.targets.OptimalFor(category, day.Date)
			if !defined {
				continue
			}
			actual := day.Headcount[category]
			if actual < optimal {
				deficits = append(deficits, Deficit{
					Day:      day.Day,
					Date:     day.Date,
					Category: category,
					Missing:  optimal - actual,
				})
			}
		}
	}

	return deficits
}
