// ABOUTME: Repository interfaces for nutrition data storage.
// ABOUTME: Defines contract for food catalog and meal log persistence.
package storage

import (
	"context"
	"errors"

	"github.com/harperreed/nutri/internal/models"
)

// ErrMissingID is returned by put operations on records without an identity.
var ErrMissingID = errors.New("record has no id")

// FoodRepository persists food items.
//
// Get operations return nil with a nil error when the record does not exist.
// Delete is a no-op for missing records.
type FoodRepository interface {
	// InsertFood assigns a fresh identity, stores the food, sets f.ID and returns it.
	InsertFood(ctx context.Context, f *models.FoodItem) (int64, error)
	// PutFood replaces the record keyed by f.ID, creating it if absent.
	PutFood(ctx context.Context, f *models.FoodItem) error
	DeleteFood(ctx context.Context, id int64) error
	GetFood(ctx context.Context, id int64) (*models.FoodItem, error)
	// GetFoodsByIDs reads many foods at once. Missing IDs are absent from the map.
	GetFoodsByIDs(ctx context.Context, ids []int64) (map[int64]*models.FoodItem, error)
	// ListFoods returns all foods in identity order.
	ListFoods(ctx context.Context) ([]*models.FoodItem, error)
	// FoodsByNamePrefix returns foods whose name starts with prefix
	// (case-sensitive), ordered by name then identity.
	FoodsByNamePrefix(ctx context.Context, prefix string) ([]*models.FoodItem, error)
}

// MealRepository persists meals together with their items.
type MealRepository interface {
	InsertMeal(ctx context.Context, m *models.Meal) (int64, error)
	PutMeal(ctx context.Context, m *models.Meal) error
	DeleteMeal(ctx context.Context, id int64) error
	GetMeal(ctx context.Context, id int64) (*models.Meal, error)
	// ListMeals returns all meals in identity order.
	ListMeals(ctx context.Context) ([]*models.Meal, error)
	// MealsByType returns meals of exactly that type in identity order.
	MealsByType(ctx context.Context, mealType models.MealType) ([]*models.Meal, error)
	// MealsByDatePrefix returns meals whose persisted timestamp starts with
	// prefix, ordered by timestamp then identity.
	MealsByDatePrefix(ctx context.Context, prefix string) ([]*models.Meal, error)
}

// Repository is a complete storage backend.
type Repository interface {
	FoodRepository
	MealRepository

	Close() error
}
