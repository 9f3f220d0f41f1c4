// ABOUTME: Output helpers shared by nutri commands.
// ABOUTME: Formats timestamps, macro lines and padded columns.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/models"
)

var (
	faint = color.New(color.Faint)
	bold  = color.New(color.Bold)
)

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// grams renders a quantity with at most two decimals.
func grams(v float64) string {
	return humanize.FtoaWithDigits(v, 2) + " g"
}

// kcal renders energy rounded to whole kilocalories with thousands separators.
func kcal(v float64) string {
	return humanize.Comma(int64(v+0.5)) + " kcal"
}

func formatMacros(m models.Macros) string {
	return fmt.Sprintf("%s  P %s  C %s  F %s  fiber %s  salt %s",
		kcal(m.Kcal), grams(m.Protein), grams(m.Carbs), grams(m.Fat), grams(m.Fiber), grams(m.Salt))
}

func formatID(id int64) string {
	return faint.Sprintf("#%-4d", id)
}

func printFood(f *models.FoodItem) {
	tag := ""
	if f.Type != nil {
		tag = faint.Sprintf(" [%s]", *f.Type)
	}
	fmt.Printf("%s %s%s\n", formatID(f.ID), padRight(truncate(f.Name, 28), 28), tag)
	fmt.Printf("      per 100 g: %s\n", formatMacros(f.Macros))
}

func printMealLine(m *models.Meal, total *models.Macros) {
	notes := ""
	if m.Notes != nil && *m.Notes != "" {
		notes = faint.Sprintf(" (%s)", truncate(*m.Notes, 30))
	}
	energy := ""
	if total != nil {
		energy = kcal(total.Kcal)
	}
	fmt.Printf("%s %s %s %s %s%s\n",
		formatID(m.ID),
		faint.Sprint(m.Datetime.Format("2006-01-02 15:04")),
		m.MealType.Emoji(),
		padRight(models.Capitalize(string(m.MealType)), 10),
		energy,
		notes)
}
