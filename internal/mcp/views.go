// ABOUTME: JSON shapes returned by MCP tools and resources.
// ABOUTME: Flattens models so every field has a plain JSON schema type.
package mcp

import (
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/nutrition"
)

type foodView struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type,omitempty"`
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
	Salt    float64 `json:"salt"`
}

type itemView struct {
	FoodID        int64   `json:"food_id"`
	QuantityGrams float64 `json:"quantity_grams"`
}

type mealView struct {
	ID       int64          `json:"id"`
	Datetime string         `json:"datetime"`
	MealType string         `json:"meal_type"`
	Items    []itemView     `json:"items"`
	Notes    string         `json:"notes,omitempty"`
	Macros   *models.Macros `json:"macros,omitempty"`
}

func toFoodView(f *models.FoodItem) foodView {
	v := foodView{
		ID:      f.ID,
		Name:    f.Name,
		Kcal:    f.Macros.Kcal,
		Protein: f.Macros.Protein,
		Carbs:   f.Macros.Carbs,
		Fat:     f.Macros.Fat,
		Fiber:   f.Macros.Fiber,
		Salt:    f.Macros.Salt,
	}
	if f.Type != nil {
		v.Type = string(*f.Type)
	}
	return v
}

func toFoodViews(foods []*models.FoodItem) []foodView {
	views := make([]foodView, 0, len(foods))
	for _, f := range foods {
		views = append(views, toFoodView(f))
	}
	return views
}

func toMealView(m *models.Meal, macros *models.Macros) mealView {
	v := mealView{
		ID:       m.ID,
		Datetime: models.FormatTimestamp(m.Datetime),
		MealType: string(m.MealType),
		Items:    make([]itemView, 0, len(m.Items)),
		Macros:   macros,
	}
	for _, it := range m.Items {
		v.Items = append(v.Items, itemView{FoodID: it.FoodID, QuantityGrams: it.QuantityGrams})
	}
	if m.Notes != nil {
		v.Notes = *m.Notes
	}
	return v
}

func toMealViews(meals []*models.Meal) []mealView {
	views := make([]mealView, 0, len(meals))
	for _, m := range meals {
		views = append(views, toMealView(m, nil))
	}
	return views
}

type dayView struct {
	Date  string        `json:"date"`
	Meals []mealView    `json:"meals"`
	Total models.Macros `json:"total"`
}

func toDayView(s *nutrition.DailySummary) dayView {
	v := dayView{Date: s.Date, Meals: make([]mealView, 0, len(s.Meals)), Total: s.Total}
	for _, mt := range s.Meals {
		macros := mt.Macros
		v.Meals = append(v.Meals, toMealView(mt.Meal, &macros))
	}
	return v
}
