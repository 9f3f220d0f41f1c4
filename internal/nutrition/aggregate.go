// ABOUTME: Macro aggregation across meals, days and weeks.
// ABOUTME: Daily totals resolve every referenced food with one bulk read.
package nutrition

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutri/internal/models"
)

// DayLabels are the Monday-first single-letter weekday labels.
var DayLabels = [7]string{"M", "T", "W", "T", "F", "S", "S"}

// DayEnergy is one entry of the current-week energy series.
type DayEnergy struct {
	Day  string  `json:"day"`
	Date string  `json:"date"`
	Kcal float64 `json:"kcal"`
}

// MealTotal pairs a meal with the macros it contributes.
type MealTotal struct {
	Meal   *models.Meal  `json:"meal"`
	Macros models.Macros `json:"macros"`
}

// DailySummary is a day's meals with per-meal and overall totals.
type DailySummary struct {
	Date  string        `json:"date"`
	Meals []MealTotal   `json:"meals"`
	Total models.Macros `json:"total"`
}

// Aggregator computes macro totals from the catalog and meal log.
type Aggregator struct {
	catalog *Catalog
	meals   *MealLog
	logger  *log.Logger
	now     func() time.Time
}

// NewAggregator creates an aggregator. A nil logger uses the default.
func NewAggregator(catalog *Catalog, meals *MealLog, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{
		catalog: catalog,
		meals:   meals,
		logger:  logger.WithPrefix("macros"),
		now:     time.Now,
	}
}

// WithClock replaces the clock used by GetCurrentWeekMacros.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// CalcMacros scales a food's per-100g macros to grams.
func CalcMacros(food *models.FoodItem, grams float64) models.Macros {
	return models.CalcMacros(food, grams)
}

// CalcTotalMacrosForMeal sums the macros of a meal's items. Items with a
// non-positive quantity or a deleted food contribute nothing.
func (a *Aggregator) CalcTotalMacrosForMeal(ctx context.Context, meal *models.Meal) (models.Macros, error) {
	var total models.Macros
	if meal == nil {
		return total, nil
	}

	for _, item := range meal.Items {
		if item.QuantityGrams <= 0 {
			continue
		}
		food, err := a.catalog.GetFoodItemByID(ctx, item.FoodID)
		if err != nil {
			return models.Macros{}, fmt.Errorf("resolve food %d: %w", item.FoodID, err)
		}
		if food == nil {
			a.logger.Debug("skipping missing food", "meal_id", meal.ID, "food_id", item.FoodID)
			continue
		}
		total = total.Add(CalcMacros(food, item.QuantityGrams))
	}
	return total, nil
}

// GetDailySummary loads the meals of a UTC day (YYYY-MM-DD) and totals each
// of them and the whole day.
func (a *Aggregator) GetDailySummary(ctx context.Context, date string) (*DailySummary, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, invalid("date %q is not YYYY-MM-DD", date)
	}

	meals, err := a.meals.SearchMealsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("meals on %s: %w", date, err)
	}

	foods, err := a.catalog.GetFoodItemsByIDs(ctx, models.FoodIDs(meals...))
	if err != nil {
		return nil, fmt.Errorf("foods on %s: %w", date, err)
	}

	summary := &DailySummary{Date: date, Meals: make([]MealTotal, 0, len(meals))}
	for _, m := range meals {
		var mealTotal models.Macros
		for _, item := range m.Items {
			if item.QuantityGrams <= 0 {
				continue
			}
			food, ok := foods[item.FoodID]
			if !ok {
				a.logger.Debug("skipping missing food", "meal_id", m.ID, "food_id", item.FoodID)
				continue
			}
			mealTotal = mealTotal.Add(CalcMacros(food, item.QuantityGrams))
		}
		summary.Meals = append(summary.Meals, MealTotal{Meal: m, Macros: mealTotal})
		summary.Total = summary.Total.Add(mealTotal)
	}
	return summary, nil
}

// GetDailyMacros totals every meal on a UTC day (YYYY-MM-DD). Unlike
// SearchMealsByDate it does not accept partial prefixes such as "2025-07";
// those fail with ErrValidation.
func (a *Aggregator) GetDailyMacros(ctx context.Context, date string) (models.Macros, error) {
	summary, err := a.GetDailySummary(ctx, date)
	if err != nil {
		return models.Macros{}, err
	}
	return summary.Total, nil
}

// GetWeeklyMacros sums the seven UTC days ending at end, inclusive.
func (a *Aggregator) GetWeeklyMacros(ctx context.Context, end time.Time) (models.Macros, error) {
	var total models.Macros
	end = end.UTC()
	for i := 6; i >= 0; i-- {
		day, err := a.GetDailyMacros(ctx, models.DateKey(end.AddDate(0, 0, -i)))
		if err != nil {
			return models.Macros{}, err
		}
		total = total.Add(day)
	}
	return total, nil
}

// GetCurrentWeekMacros returns the energy of each day of the Monday-first
// UTC week containing now, Monday through Sunday.
func (a *Aggregator) GetCurrentWeekMacros(ctx context.Context) ([]DayEnergy, error) {
	monday := WeekStart(a.now())

	week := make([]DayEnergy, 0, len(DayLabels))
	for i, label := range DayLabels {
		date := models.DateKey(monday.AddDate(0, 0, i))
		day, err := a.GetDailyMacros(ctx, date)
		if err != nil {
			return nil, err
		}
		week = append(week, DayEnergy{Day: label, Date: date, Kcal: day.Kcal})
	}
	return week, nil
}

// WeekStart returns midnight UTC on the Monday of t's week. Sunday belongs
// to the week that started six days earlier.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
