// ABOUTME: Export and import functionality for nutrition data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the format version written to every export.
const ExportVersion = "1.0"

// ExportData represents the full export format for nutrition data.
type ExportData struct {
	Version    string             `json:"version" yaml:"version"`
	ExportID   uuid.UUID          `json:"export_id" yaml:"export_id"`
	ExportedAt time.Time          `json:"exported_at" yaml:"exported_at"`
	Tool       string             `json:"tool" yaml:"tool"`
	Foods      []*models.FoodItem `json:"foods" yaml:"foods"`
	Meals      []*models.Meal     `json:"meals" yaml:"meals"`
}

// GetAllData retrieves all data for export.
func GetAllData(ctx context.Context, repo Repository) (*ExportData, error) {
	foods, err := repo.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}

	meals, err := repo.ListMeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	if foods == nil {
		foods = []*models.FoodItem{}
	}
	if meals == nil {
		meals = []*models.Meal{}
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportID:   uuid.New(),
		ExportedAt: time.Now().UTC(),
		Tool:       "nutri",
		Foods:      foods,
		Meals:      meals,
	}, nil
}

// ImportData writes exported records into repo. Records keep their IDs so
// meal items still point at the right foods; records without an ID are
// inserted fresh.
func ImportData(ctx context.Context, repo Repository, data *ExportData) error {
	for _, f := range data.Foods {
		if err := importFood(ctx, repo, f); err != nil {
			return fmt.Errorf("import food %q: %w", f.Name, err)
		}
	}

	for _, m := range data.Meals {
		if err := importMeal(ctx, repo, m); err != nil {
			return fmt.Errorf("import meal %d: %w", m.ID, err)
		}
	}

	return nil
}

func importFood(ctx context.Context, repo Repository, f *models.FoodItem) error {
	if f.ID == 0 {
		_, err := repo.InsertFood(ctx, f)
		return err
	}
	return repo.PutFood(ctx, f)
}

func importMeal(ctx context.Context, repo Repository, m *models.Meal) error {
	if m.ID == 0 {
		_, err := repo.InsertMeal(ctx, m)
		return err
	}
	return repo.PutMeal(ctx, m)
}

// ExportJSON exports all data as JSON.
func ExportJSON(ctx context.Context, repo Repository) ([]byte, error) {
	data, err := GetAllData(ctx, repo)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(ctx context.Context, repo Repository, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return ImportData(ctx, repo, &exportData)
}

type yamlFood struct {
	ID     int64         `yaml:"id"`
	Name   string        `yaml:"name"`
	Type   string        `yaml:"type,omitempty"`
	Per100 models.Macros `yaml:"per_100g"`
}

type yamlMeal struct {
	ID    int64             `yaml:"id"`
	Time  string            `yaml:"time"`
	Type  string            `yaml:"type"`
	Items []models.MealItem `yaml:"items"`
	Notes string            `yaml:"notes,omitempty"`
}

// ExportYAML exports all data as YAML with meals grouped by day.
func ExportYAML(ctx context.Context, repo Repository) ([]byte, error) {
	data, err := GetAllData(ctx, repo)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                `yaml:"version"`
		ExportID   string                `yaml:"export_id"`
		ExportedAt string                `yaml:"exported_at"`
		Tool       string                `yaml:"tool"`
		Foods      []yamlFood            `yaml:"foods"`
		Meals      map[string][]yamlMeal `yaml:"meals"`
	}{
		Version:    data.Version,
		ExportID:   data.ExportID.String(),
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Foods:      make([]yamlFood, 0, len(data.Foods)),
		Meals:      make(map[string][]yamlMeal),
	}

	for _, f := range data.Foods {
		yf := yamlFood{ID: f.ID, Name: f.Name, Per100: f.Macros}
		if f.Type != nil {
			yf.Type = string(*f.Type)
		}
		yamlData.Foods = append(yamlData.Foods, yf)
	}

	for _, m := range data.Meals {
		day := models.DateKey(m.Datetime)
		ym := yamlMeal{
			ID:    m.ID,
			Time:  m.Datetime.UTC().Format("15:04"),
			Type:  string(m.MealType),
			Items: m.Items,
		}
		if m.Notes != nil {
			ym.Notes = *m.Notes
		}
		yamlData.Meals[day] = append(yamlData.Meals[day], ym)
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown renders the food catalog and one section per day with
// per-meal and daily totals. If since is set, earlier meals are left out.
//
//nolint:gocognit // Linear rendering, split by section.
func ExportMarkdown(ctx context.Context, repo Repository, since *time.Time) (string, error) {
	foods, err := repo.ListFoods(ctx)
	if err != nil {
		return "", fmt.Errorf("list foods: %w", err)
	}
	meals, err := repo.ListMeals(ctx)
	if err != nil {
		return "", fmt.Errorf("list meals: %w", err)
	}

	if since != nil {
		var filtered []*models.Meal
		for _, m := range meals {
			if !m.Datetime.Before(*since) {
				filtered = append(filtered, m)
			}
		}
		meals = filtered
	}

	byID := make(map[int64]*models.FoodItem, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	var sb strings.Builder
	now := time.Now().UTC()

	sb.WriteString(fmt.Sprintf("# Nutrition Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("## Foods\n\n")
	sb.WriteString("| ID | Name | Type | kcal | Protein | Carbs | Fat | Fiber | Salt |\n")
	sb.WriteString("|----|------|------|------|---------|-------|-----|-------|------|\n")
	for _, f := range foods {
		ft := ""
		if f.Type != nil {
			ft = string(*f.Type)
		}
		m := f.Macros
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %.0f | %.1f | %.1f | %.1f | %.1f | %.2f |\n",
			f.ID, f.Name, ft, m.Kcal, m.Protein, m.Carbs, m.Fat, m.Fiber, m.Salt))
	}
	sb.WriteString("\n")

	// Group meals by day
	grouped := make(map[string][]*models.Meal)
	for _, m := range meals {
		day := models.DateKey(m.Datetime)
		grouped[day] = append(grouped[day], m)
	}

	days := make([]string, 0, len(grouped))
	for d := range grouped {
		days = append(days, d)
	}
	sort.Strings(days)

	for _, day := range days {
		dayMeals := grouped[day]
		sort.SliceStable(dayMeals, func(i, j int) bool {
			return dayMeals[i].Datetime.Before(dayMeals[j].Datetime)
		})

		sb.WriteString(fmt.Sprintf("## %s\n\n", day))
		sb.WriteString("| Time | Meal | Items | kcal | Protein | Carbs | Fat | Notes |\n")
		sb.WriteString("|------|------|-------|------|---------|-------|-----|-------|\n")

		var dayTotal models.Macros
		for _, m := range dayMeals {
			total, names := mealTotals(m, byID)
			dayTotal = dayTotal.Add(total)

			notes := ""
			if m.Notes != nil {
				notes = *m.Notes
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.0f | %.1f | %.1f | %.1f | %s |\n",
				m.Datetime.UTC().Format("15:04"), m.MealType, strings.Join(names, ", "),
				total.Kcal, total.Protein, total.Carbs, total.Fat, notes))
		}
		sb.WriteString(fmt.Sprintf("\n**Total:** %.0f kcal, %.1f g protein, %.1f g carbs, %.1f g fat, %.1f g fiber, %.2f g salt\n\n",
			dayTotal.Kcal, dayTotal.Protein, dayTotal.Carbs, dayTotal.Fat, dayTotal.Fiber, dayTotal.Salt))
	}

	return sb.String(), nil
}

// mealTotals sums a meal against the catalog and names its items.
// Non-positive quantities and deleted foods contribute nothing.
func mealTotals(m *models.Meal, foods map[int64]*models.FoodItem) (models.Macros, []string) {
	var total models.Macros
	names := make([]string, 0, len(m.Items))
	for _, item := range m.Items {
		f, ok := foods[item.FoodID]
		if !ok {
			names = append(names, fmt.Sprintf("#%d (deleted)", item.FoodID))
			continue
		}
		names = append(names, fmt.Sprintf("%s %.0fg", f.Name, item.QuantityGrams))
		if item.QuantityGrams <= 0 {
			continue
		}
		total = total.Add(models.CalcMacros(f, item.QuantityGrams))
	}
	return total, names
}
