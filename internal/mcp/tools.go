// ABOUTME: MCP tool implementations for the nutrition tracker.
// ABOUTME: Provides CRUD for foods and meals plus macro totals per meal, day and week.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/nutrition"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// Food catalog
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_food",
		Description: "Add a food to the catalog with its macros per 100 g",
	}, s.handleAddFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_foods",
		Description: "List every food in the catalog, optionally filtered by food type",
	}, s.handleListFoods)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_foods",
		Description: "Find foods whose name starts with the query (case-sensitive)",
	}, s.handleSearchFoods)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_food",
		Description: "Get a food by ID",
	}, s.handleGetFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_food",
		Description: "Replace a food's name, type and macros",
	}, s.handleUpdateFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_food",
		Description: "Delete a food. Meals that used it keep their items but stop counting them",
	}, s.handleDeleteFood)

	// Meal log
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_meal",
		Description: "Log a meal made of catalog foods and gram quantities",
	}, s.handleAddMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_meals",
		Description: "List meals, optionally filtered by meal type or date prefix (YYYY-MM-DD)",
	}, s.handleListMeals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_meal",
		Description: "Get a meal with its macro totals",
	}, s.handleGetMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_meal",
		Description: "Replace a meal's time, type, items and notes",
	}, s.handleUpdateMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_meal",
		Description: "Delete a meal",
	}, s.handleDeleteMeal)

	// Aggregation
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "meal_macros",
		Description: "Total macros of one meal",
	}, s.handleMealMacros)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "daily_macros",
		Description: "Meals and macro totals for one UTC day (defaults to today)",
	}, s.handleDailyMacros)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "weekly_macros",
		Description: "Macro totals for the seven days ending at a date (defaults to today)",
	}, s.handleWeeklyMacros)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "current_week",
		Description: "Energy per day for the current Monday-to-Sunday week",
	}, s.handleCurrentWeek)
}

// Tool input/output types

type foodInput struct {
	Name    string  `json:"name" jsonschema:"Food name"`
	Type    string  `json:"type,omitempty" jsonschema:"Food type: fruit, vegetable, meat, fish, supplement, beverage or other"`
	Kcal    float64 `json:"kcal,omitempty" jsonschema:"Energy in kcal per 100 g"`
	Protein float64 `json:"protein,omitempty" jsonschema:"Protein in grams per 100 g"`
	Carbs   float64 `json:"carbs,omitempty" jsonschema:"Carbohydrates in grams per 100 g"`
	Fat     float64 `json:"fat,omitempty" jsonschema:"Fat in grams per 100 g"`
	Fiber   float64 `json:"fiber,omitempty" jsonschema:"Fiber in grams per 100 g"`
	Salt    float64 `json:"salt,omitempty" jsonschema:"Salt in grams per 100 g"`
}

type updateFoodInput struct {
	ID      int64   `json:"id" jsonschema:"Food ID"`
	Name    string  `json:"name" jsonschema:"Food name"`
	Type    string  `json:"type,omitempty" jsonschema:"Food type, cleared when omitted"`
	Kcal    float64 `json:"kcal,omitempty" jsonschema:"Energy in kcal per 100 g"`
	Protein float64 `json:"protein,omitempty" jsonschema:"Protein in grams per 100 g"`
	Carbs   float64 `json:"carbs,omitempty" jsonschema:"Carbohydrates in grams per 100 g"`
	Fat     float64 `json:"fat,omitempty" jsonschema:"Fat in grams per 100 g"`
	Fiber   float64 `json:"fiber,omitempty" jsonschema:"Fiber in grams per 100 g"`
	Salt    float64 `json:"salt,omitempty" jsonschema:"Salt in grams per 100 g"`
}

type idInput struct {
	ID int64 `json:"id" jsonschema:"Record ID"`
}

type listFoodsInput struct {
	Type string `json:"type,omitempty" jsonschema:"Only foods of this type"`
}

type searchFoodsInput struct {
	Query string `json:"query" jsonschema:"Name prefix, case-sensitive"`
}

type foodOutput struct {
	Food    foodView `json:"food"`
	Message string   `json:"message"`
}

type foodsOutput struct {
	Foods []foodView `json:"foods"`
	Count int        `json:"count"`
}

type mealItemInput struct {
	FoodID        int64   `json:"food_id" jsonschema:"Catalog food ID"`
	QuantityGrams float64 `json:"quantity_grams" jsonschema:"Eaten quantity in grams"`
}

type mealInput struct {
	MealType string          `json:"meal_type" jsonschema:"Meal type: breakfast, lunch, dinner, snack or other"`
	Datetime string          `json:"datetime,omitempty" jsonschema:"When the meal was eaten (RFC 3339, YYYY-MM-DD HH:MM or YYYY-MM-DD), defaults to now"`
	Items    []mealItemInput `json:"items,omitempty" jsonschema:"Foods eaten in this meal"`
	Notes    string          `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type updateMealInput struct {
	ID       int64           `json:"id" jsonschema:"Meal ID"`
	MealType string          `json:"meal_type" jsonschema:"Meal type: breakfast, lunch, dinner, snack or other"`
	Datetime string          `json:"datetime,omitempty" jsonschema:"When the meal was eaten, defaults to now"`
	Items    []mealItemInput `json:"items,omitempty" jsonschema:"Foods eaten in this meal"`
	Notes    string          `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type listMealsInput struct {
	MealType string `json:"meal_type,omitempty" jsonschema:"Only meals of this type"`
	Date     string `json:"date,omitempty" jsonschema:"Timestamp prefix such as 2025-07-02 or 2025-07"`
}

type mealOutput struct {
	Meal    mealView `json:"meal"`
	Message string   `json:"message"`
}

type mealsOutput struct {
	Meals []mealView `json:"meals"`
	Count int        `json:"count"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type macrosOutput struct {
	Macros  models.Macros `json:"macros"`
	Message string        `json:"message"`
}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD (UTC), defaults to today"`
}

type weekOutput struct {
	Start string                `json:"start"`
	Days  []nutrition.DayEnergy `json:"days"`
	Total float64               `json:"total_kcal"`
}

type emptyInput struct{}

// Helpers

func (in foodInput) toFood() (*models.FoodItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", nutrition.ErrValidation)
	}

	f := models.NewFoodItem(name, models.Macros{
		Kcal:    in.Kcal,
		Protein: in.Protein,
		Carbs:   in.Carbs,
		Fat:     in.Fat,
		Fiber:   in.Fiber,
		Salt:    in.Salt,
	})
	if in.Type != "" {
		ft, ok := models.ParseFoodType(in.Type)
		if !ok {
			return nil, fmt.Errorf("%w: unknown food type: %s", nutrition.ErrValidation, in.Type)
		}
		f.WithType(ft)
	}
	return f, nil
}

func (s *Server) toMeal(in mealInput) (*models.Meal, error) {
	mt, ok := models.ParseMealType(in.MealType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown meal type: %s", nutrition.ErrValidation, in.MealType)
	}

	m := models.NewMeal(mt).WithDatetime(s.now())
	if in.Datetime != "" {
		t, err := parseDatetime(in.Datetime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", nutrition.ErrValidation, err)
		}
		m.WithDatetime(t)
	}
	for _, it := range in.Items {
		m.AddItem(it.FoodID, it.QuantityGrams)
	}
	if in.Notes != "" {
		m.WithNotes(in.Notes)
	}
	return m, nil
}

// parseDatetime accepts RFC 3339, "YYYY-MM-DD HH:MM" and bare dates, the
// latter two read as UTC.
func parseDatetime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime: %s", s)
}

// Tool handlers

func (s *Server) handleAddFood(ctx context.Context, req *mcp.CallToolRequest, input foodInput) (*mcp.CallToolResult, foodOutput, error) {
	f, err := input.toFood()
	if err != nil {
		return nil, foodOutput{}, err
	}

	if _, err := s.catalog.AddFoodItem(ctx, f); err != nil {
		return nil, foodOutput{}, fmt.Errorf("failed to add food: %w", err)
	}

	return nil, foodOutput{
		Food:    toFoodView(f),
		Message: fmt.Sprintf("Added %s: %.0f kcal per 100 g (ID: %d)", f.Name, f.Macros.Kcal, f.ID),
	}, nil
}

func (s *Server) handleListFoods(ctx context.Context, req *mcp.CallToolRequest, input listFoodsInput) (*mcp.CallToolResult, foodsOutput, error) {
	foods, err := s.catalog.GetFoodItems(ctx)
	if err != nil {
		return nil, foodsOutput{}, fmt.Errorf("failed to list foods: %w", err)
	}

	if input.Type != "" {
		ft, ok := models.ParseFoodType(input.Type)
		if !ok {
			return nil, foodsOutput{}, fmt.Errorf("unknown food type: %s", input.Type)
		}
		var filtered []*models.FoodItem
		for _, f := range foods {
			if f.Type != nil && *f.Type == ft {
				filtered = append(filtered, f)
			}
		}
		foods = filtered
	}

	return nil, foodsOutput{Foods: toFoodViews(foods), Count: len(foods)}, nil
}

func (s *Server) handleSearchFoods(ctx context.Context, req *mcp.CallToolRequest, input searchFoodsInput) (*mcp.CallToolResult, foodsOutput, error) {
	foods, err := s.catalog.SearchFoodItemsByName(ctx, input.Query)
	if err != nil {
		return nil, foodsOutput{}, fmt.Errorf("failed to search foods: %w", err)
	}
	return nil, foodsOutput{Foods: toFoodViews(foods), Count: len(foods)}, nil
}

func (s *Server) handleGetFood(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, foodOutput, error) {
	f, err := s.catalog.GetFoodItemByID(ctx, input.ID)
	if err != nil {
		return nil, foodOutput{}, fmt.Errorf("failed to get food: %w", err)
	}
	if f == nil {
		return nil, foodOutput{}, fmt.Errorf("food not found: %d", input.ID)
	}
	return nil, foodOutput{Food: toFoodView(f), Message: f.Name}, nil
}

func (s *Server) handleUpdateFood(ctx context.Context, req *mcp.CallToolRequest, input updateFoodInput) (*mcp.CallToolResult, foodOutput, error) {
	f, err := foodInput{
		Name: input.Name, Type: input.Type,
		Kcal: input.Kcal, Protein: input.Protein, Carbs: input.Carbs,
		Fat: input.Fat, Fiber: input.Fiber, Salt: input.Salt,
	}.toFood()
	if err != nil {
		return nil, foodOutput{}, err
	}
	f.ID = input.ID

	if err := s.catalog.UpdateFoodItem(ctx, f); err != nil {
		return nil, foodOutput{}, fmt.Errorf("failed to update food: %w", err)
	}

	return nil, foodOutput{
		Food:    toFoodView(f),
		Message: fmt.Sprintf("Updated food %d", f.ID),
	}, nil
}

func (s *Server) handleDeleteFood(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	f, err := s.catalog.GetFoodItemByID(ctx, input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to get food: %w", err)
	}
	if f == nil {
		return nil, simpleOutput{}, fmt.Errorf("food not found: %d", input.ID)
	}

	if err := s.catalog.DeleteFoodItem(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete food: %w", err)
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Deleted food: %s (ID: %d)", f.Name, f.ID)}, nil
}

func (s *Server) handleAddMeal(ctx context.Context, req *mcp.CallToolRequest, input mealInput) (*mcp.CallToolResult, mealOutput, error) {
	m, err := s.toMeal(input)
	if err != nil {
		return nil, mealOutput{}, err
	}

	if _, err := s.meals.AddMeal(ctx, m); err != nil {
		return nil, mealOutput{}, fmt.Errorf("failed to add meal: %w", err)
	}

	total, err := s.macros.CalcTotalMacrosForMeal(ctx, m)
	if err != nil {
		return nil, mealOutput{}, fmt.Errorf("failed to total meal: %w", err)
	}

	return nil, mealOutput{
		Meal:    toMealView(m, &total),
		Message: fmt.Sprintf("Logged %s with %d items, %.0f kcal (ID: %d)", m.MealType, len(m.Items), total.Kcal, m.ID),
	}, nil
}

func (s *Server) handleListMeals(ctx context.Context, req *mcp.CallToolRequest, input listMealsInput) (*mcp.CallToolResult, mealsOutput, error) {
	var mealType models.MealType
	if input.MealType != "" {
		mt, ok := models.ParseMealType(input.MealType)
		if !ok {
			return nil, mealsOutput{}, fmt.Errorf("unknown meal type: %s", input.MealType)
		}
		mealType = mt
	}

	var (
		meals []*models.Meal
		err   error
	)
	switch {
	case input.Date != "":
		meals, err = s.meals.SearchMealsByDate(ctx, input.Date)
	case mealType != "":
		meals, err = s.meals.SearchMealsByType(ctx, mealType)
	default:
		meals, err = s.meals.GetMeals(ctx)
	}
	if err != nil {
		return nil, mealsOutput{}, fmt.Errorf("failed to list meals: %w", err)
	}

	// Date search uses the index; a type filter on top narrows in memory.
	if input.Date != "" && mealType != "" {
		var filtered []*models.Meal
		for _, m := range meals {
			if m.MealType == mealType {
				filtered = append(filtered, m)
			}
		}
		meals = filtered
	}

	return nil, mealsOutput{Meals: toMealViews(meals), Count: len(meals)}, nil
}

func (s *Server) handleGetMeal(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, mealOutput, error) {
	m, err := s.meals.GetMealByID(ctx, input.ID)
	if err != nil {
		return nil, mealOutput{}, fmt.Errorf("failed to get meal: %w", err)
	}
	if m == nil {
		return nil, mealOutput{}, fmt.Errorf("meal not found: %d", input.ID)
	}

	total, err := s.macros.CalcTotalMacrosForMeal(ctx, m)
	if err != nil {
		return nil, mealOutput{}, fmt.Errorf("failed to total meal: %w", err)
	}

	return nil, mealOutput{
		Meal:    toMealView(m, &total),
		Message: fmt.Sprintf("%s at %s, %.0f kcal", m.MealType, models.FormatTimestamp(m.Datetime), total.Kcal),
	}, nil
}

func (s *Server) handleUpdateMeal(ctx context.Context, req *mcp.CallToolRequest, input updateMealInput) (*mcp.CallToolResult, mealOutput, error) {
	m, err := s.toMeal(mealInput{
		MealType: input.MealType,
		Datetime: input.Datetime,
		Items:    input.Items,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, mealOutput{}, err
	}

	if err := s.meals.UpdateMeal(ctx, input.ID, m); err != nil {
		return nil, mealOutput{}, fmt.Errorf("failed to update meal: %w", err)
	}

	return nil, mealOutput{
		Meal:    toMealView(m, nil),
		Message: fmt.Sprintf("Updated meal %d", m.ID),
	}, nil
}

func (s *Server) handleDeleteMeal(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	m, err := s.meals.GetMealByID(ctx, input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to get meal: %w", err)
	}
	if m == nil {
		return nil, simpleOutput{}, fmt.Errorf("meal not found: %d", input.ID)
	}

	if err := s.meals.DeleteMeal(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete meal: %w", err)
	}

	return nil, simpleOutput{Message: fmt.Sprintf("Deleted meal: %d", input.ID)}, nil
}

func (s *Server) handleMealMacros(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, macrosOutput, error) {
	m, err := s.meals.GetMealByID(ctx, input.ID)
	if err != nil {
		return nil, macrosOutput{}, fmt.Errorf("failed to get meal: %w", err)
	}
	if m == nil {
		return nil, macrosOutput{}, fmt.Errorf("meal not found: %d", input.ID)
	}

	total, err := s.macros.CalcTotalMacrosForMeal(ctx, m)
	if err != nil {
		return nil, macrosOutput{}, fmt.Errorf("failed to total meal: %w", err)
	}

	return nil, macrosOutput{
		Macros:  total,
		Message: fmt.Sprintf("Meal %d: %.0f kcal", m.ID, total.Kcal),
	}, nil
}

func (s *Server) handleDailyMacros(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, dayView, error) {
	date := input.Date
	if date == "" {
		date = s.today()
	}

	summary, err := s.macros.GetDailySummary(ctx, date)
	if err != nil {
		return nil, dayView{}, fmt.Errorf("failed to total day: %w", err)
	}

	return nil, toDayView(summary), nil
}

func (s *Server) handleWeeklyMacros(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, macrosOutput, error) {
	end := s.now().UTC()
	if input.Date != "" {
		t, err := time.Parse(models.DateLayout, input.Date)
		if err != nil {
			return nil, macrosOutput{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", nutrition.ErrValidation, input.Date)
		}
		end = t
	}

	total, err := s.macros.GetWeeklyMacros(ctx, end)
	if err != nil {
		return nil, macrosOutput{}, fmt.Errorf("failed to total week: %w", err)
	}

	start := end.AddDate(0, 0, -6)
	return nil, macrosOutput{
		Macros: total,
		Message: fmt.Sprintf("%s to %s: %.0f kcal",
			models.DateKey(start), models.DateKey(end), total.Kcal),
	}, nil
}

func (s *Server) handleCurrentWeek(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, weekOutput, error) {
	days, err := s.macros.GetCurrentWeekMacros(ctx)
	if err != nil {
		return nil, weekOutput{}, fmt.Errorf("failed to total week: %w", err)
	}

	out := weekOutput{Days: days}
	if len(days) > 0 {
		out.Start = days[0].Date
	}
	for _, d := range days {
		out.Total += d.Kcal
	}
	return nil, out, nil
}
