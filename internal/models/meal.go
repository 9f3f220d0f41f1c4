// ABOUTME: Meal and MealItem models for the meal log.
// ABOUTME: Timestamps persist as fixed-width UTC ISO-8601 strings for prefix queries.
package models

import (
	"strings"
	"time"
)

// TimestampLayout is the persisted form of Meal.Datetime. It is fixed width
// and always UTC, so a date string like 2025-07-02 is a prefix of every
// timestamp on that day.
const TimestampLayout = "2006-01-02T15:04:05Z"

// DateLayout is the day granularity used by date queries.
const DateLayout = "2006-01-02"

// MealType is the category of a meal.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
	MealOther     MealType = "other"
)

// AllMealTypes returns all valid meal types.
var AllMealTypes = []MealType{
	MealBreakfast, MealLunch, MealDinner, MealSnack, MealOther,
}

// ParseMealType lower-cases and trims s, then checks it against AllMealTypes.
// Invalid or empty input returns false.
func ParseMealType(s string) (MealType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, mt := range AllMealTypes {
		if string(mt) == s {
			return mt, true
		}
	}
	return "", false
}

// MealItem references a food by ID with the eaten quantity in grams.
type MealItem struct {
	FoodID        int64   `json:"food_id" yaml:"food_id"`
	QuantityGrams float64 `json:"quantity_grams" yaml:"quantity_grams"`
}

// Meal is a logged eating occasion. ID is zero until first persisted.
type Meal struct {
	ID       int64      `json:"id,omitempty" yaml:"id,omitempty"`
	UserID   *int64     `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Datetime time.Time  `json:"datetime" yaml:"datetime"`
	MealType MealType   `json:"meal_type" yaml:"meal_type"`
	Items    []MealItem `json:"items" yaml:"items"`
	Notes    *string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewMeal creates an unsaved meal of the given type, timestamped now.
func NewMeal(mealType MealType) *Meal {
	return &Meal{
		Datetime: time.Now().UTC().Truncate(time.Second),
		MealType: mealType,
		Items:    []MealItem{},
	}
}

// WithDatetime sets the meal timestamp.
func (m *Meal) WithDatetime(t time.Time) *Meal {
	m.Datetime = t.UTC().Truncate(time.Second)
	return m
}

// WithNotes sets notes on the meal.
func (m *Meal) WithNotes(notes string) *Meal {
	m.Notes = &notes
	return m
}

// AddItem appends a food quantity to the meal.
func (m *Meal) AddItem(foodID int64, grams float64) *Meal {
	m.Items = append(m.Items, MealItem{FoodID: foodID, QuantityGrams: grams})
	return m
}

// FoodIDs returns the distinct food IDs referenced by the meals, in first-seen order.
func FoodIDs(meals ...*Meal) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, m := range meals {
		for _, it := range m.Items {
			if !seen[it.FoodID] {
				seen[it.FoodID] = true
				ids = append(ids, it.FoodID)
			}
		}
	}
	return ids
}

// FormatTimestamp renders t in the persisted layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a persisted timestamp, falling back to RFC 3339.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// DateKey returns the UTC day of t in DateLayout.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
