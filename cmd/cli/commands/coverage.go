package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucabaldini/turnario/pkg/core/coverage"
	"github.com/lucabaldini/turnario/pkg/core/services"
)

var statusSymbols = map[coverage.Status]string{
	coverage.StatusOK:       "✓",
	coverage.StatusWarning:  "!",
	coverage.StatusCritical: "✗",
	coverage.StatusUnknown:  "?",
}

// CoverageCmd creates the coverage command
func CoverageCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "coverage <month>",
		Short: "Show per-day staffing counts and status against the configured targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			targets, err := app.Cfg.Targets(month)
			if err != nil {
				return err
			}

			counts, err := services.CoverageReport(app.Ctx, app.Database, app.Store, app.Logger, targets, month)
			if err != nil {
				return err
			}

			fmt.Printf("\nCoverage for %s\n\n", month)
			fmt.Printf("%-12s %-10s %-10s %-8s %-8s\n", "Day", "Morning", "Afternoon", "Night", "PostN")
			for _, day := range counts {
				fmt.Printf("%2d %s   %s %-7d %s %-7d %s %-5d %s %-5d\n",
					day.Day, day.Date.Format("Mon"),
					statusSymbols[day.Status[coverage.CategoryMorning]], day.Headcount[coverage.CategoryMorning],
					statusSymbols[day.Status[coverage.CategoryAfternoon]], day.Headcount[coverage.CategoryAfternoon],
					statusSymbols[day.Status[coverage.CategoryNight]], day.Headcount[coverage.CategoryNight],
					statusSymbols[day.Status[coverage.CategoryPostNightRest]], day.Headcount[coverage.CategoryPostNightRest])
			}
			fmt.Println()

			return nil
		},
	}
}
