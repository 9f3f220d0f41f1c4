// ABOUTME: Meal log service: CRUD and type/date search over meals.
// ABOUTME: Date search matches the stored UTC timestamp by prefix.
package nutrition

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
)

// MealLog manages logged meals.
type MealLog struct {
	repo   storage.MealRepository
	logger *log.Logger
}

// NewMealLog creates a meal log backed by repo. A nil logger uses the default.
func NewMealLog(repo storage.MealRepository, logger *log.Logger) *MealLog {
	if logger == nil {
		logger = log.Default()
	}
	return &MealLog{repo: repo, logger: logger.WithPrefix("meals")}
}

// AddMeal persists a new meal and returns its assigned ID.
func (l *MealLog) AddMeal(ctx context.Context, meal *models.Meal) (int64, error) {
	if meal == nil {
		return 0, invalid("meal is nil")
	}
	id, err := l.repo.InsertMeal(ctx, meal)
	if err != nil {
		return 0, err
	}
	l.logger.Debug("added meal", "id", id, "type", meal.MealType, "items", len(meal.Items))
	return id, nil
}

// GetMeals returns every meal in storage order.
func (l *MealLog) GetMeals(ctx context.Context) ([]*models.Meal, error) {
	return l.repo.ListMeals(ctx)
}

// GetMealByID returns the meal, or nil if it does not exist.
func (l *MealLog) GetMealByID(ctx context.Context, id int64) (*models.Meal, error) {
	return l.repo.GetMeal(ctx, id)
}

// UpdateMeal replaces the meal stored under id. The ID on meal is
// overwritten with id. An id of 0 fails with ErrMissingID before storage is
// touched.
func (l *MealLog) UpdateMeal(ctx context.Context, id int64, meal *models.Meal) error {
	if meal == nil {
		return invalid("meal is nil")
	}
	if id == 0 {
		return ErrMissingID
	}
	meal.ID = id
	if err := l.repo.PutMeal(ctx, meal); err != nil {
		return err
	}
	l.logger.Debug("updated meal", "id", id)
	return nil
}

// DeleteMeal removes a meal and its items.
func (l *MealLog) DeleteMeal(ctx context.Context, id int64) error {
	if err := l.repo.DeleteMeal(ctx, id); err != nil {
		return err
	}
	l.logger.Debug("deleted meal", "id", id)
	return nil
}

// SearchMealsByType returns all meals of exactly that type.
func (l *MealLog) SearchMealsByType(ctx context.Context, mealType models.MealType) ([]*models.Meal, error) {
	return l.repo.MealsByType(ctx, mealType)
}

// SearchMealsByDate returns meals whose stored timestamp starts with date.
// "2025-07-02" matches every meal on that UTC day; "2025-07" the whole month.
func (l *MealLog) SearchMealsByDate(ctx context.Context, date string) ([]*models.Meal, error) {
	return l.repo.MealsByDatePrefix(ctx, date)
}
