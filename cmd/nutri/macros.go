// ABOUTME: CLI commands for macro totals.
// ABOUTME: Totals one meal, one day, the last seven days, or the current week.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var macrosCmd = &cobra.Command{
	Use:     "macros",
	Aliases: []string{"mac"},
	Short:   "Show macro totals",
	Long: `Show macro totals computed from the meal log and the food catalog.

Items whose food was deleted, or whose quantity is zero or negative, are
left out of every total. Days are UTC days.

COMMANDS:

  meal <id>       Totals of one meal
  day [date]      Totals of one day (default today)
  week [date]     Sum over the seven days ending on date (default today)
  current         Energy per day of the current Monday-first week`,
}

var macrosMealCmd = &cobra.Command{
	Use:   "meal <id>",
	Short: "Totals of one meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		m, err := mealLog.GetMealByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get meal: %w", err)
		}
		if m == nil {
			return fmt.Errorf("meal not found: %d", id)
		}

		total, err := macros.CalcTotalMacrosForMeal(cmd.Context(), m)
		if err != nil {
			return fmt.Errorf("failed to total meal: %w", err)
		}

		printMealLine(m, nil)
		fmt.Printf("      %s\n", formatMacros(total))
		return nil
	},
}

var macrosDayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Totals of one day",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := models.DateKey(time.Now())
		if len(args) == 1 {
			date = args[0]
		}

		summary, err := macros.GetDailySummary(cmd.Context(), date)
		if err != nil {
			return fmt.Errorf("failed to total day: %w", err)
		}

		fmt.Println(bold.Sprint(summary.Date))
		if len(summary.Meals) == 0 {
			fmt.Println("No meals logged.")
			return nil
		}
		for _, mt := range summary.Meals {
			total := mt.Macros
			printMealLine(mt.Meal, &total)
		}
		fmt.Printf("Total: %s\n", formatMacros(summary.Total))
		return nil
	},
}

var macrosWeekCmd = &cobra.Command{
	Use:   "week [YYYY-MM-DD]",
	Short: "Sum over the seven days ending on a date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		end := time.Now().UTC()
		if len(args) == 1 {
			t, err := time.Parse(models.DateLayout, args[0])
			if err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", args[0])
			}
			end = t
		}

		total, err := macros.GetWeeklyMacros(cmd.Context(), end)
		if err != nil {
			return fmt.Errorf("failed to total week: %w", err)
		}

		start := end.AddDate(0, 0, -6)
		fmt.Println(bold.Sprintf("%s to %s", models.DateKey(start), models.DateKey(end)))
		fmt.Printf("Total: %s\n", formatMacros(total))
		return nil
	},
}

var macrosCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Energy per day of the current week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := macros.GetCurrentWeekMacros(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to total week: %w", err)
		}

		var peak, sum float64
		for _, d := range days {
			sum += d.Kcal
			if d.Kcal > peak {
				peak = d.Kcal
			}
		}

		for _, d := range days {
			fmt.Printf("%s %s %s %s\n", d.Day, faint.Sprint(d.Date), bar(d.Kcal, peak, 30), kcal(d.Kcal))
		}
		fmt.Printf("Total: %s\n", kcal(sum))
		return nil
	},
}

// bar draws v as a run of blocks scaled so that peak fills width.
func bar(v, peak float64, width int) string {
	n := 0
	if peak > 0 {
		n = int(v / peak * float64(width))
	}
	if n < 0 {
		n = 0
	}
	return strings.Repeat("█", n) + strings.Repeat(" ", width-n)
}

func init() {
	macrosCmd.AddCommand(macrosMealCmd)
	macrosCmd.AddCommand(macrosDayCmd)
	macrosCmd.AddCommand(macrosWeekCmd)
	macrosCmd.AddCommand(macrosCurrentCmd)
	rootCmd.AddCommand(macrosCmd)
}
