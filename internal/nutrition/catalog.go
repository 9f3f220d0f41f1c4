// ABOUTME: Food catalog service: CRUD and name search over food items.
// ABOUTME: Wraps a FoodRepository; macros are not validated on write.
package nutrition

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
)

// Catalog manages the food catalog.
type Catalog struct {
	repo   storage.FoodRepository
	logger *log.Logger
}

// NewCatalog creates a catalog backed by repo. A nil logger uses the default.
func NewCatalog(repo storage.FoodRepository, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{repo: repo, logger: logger.WithPrefix("catalog")}
}

// AddFoodItem persists a new food and returns its assigned ID.
func (c *Catalog) AddFoodItem(ctx context.Context, food *models.FoodItem) (int64, error) {
	if food == nil {
		return 0, invalid("food is nil")
	}
	id, err := c.repo.InsertFood(ctx, food)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("added food", "id", id, "name", food.Name)
	return id, nil
}

// GetFoodItems returns every food in storage order.
func (c *Catalog) GetFoodItems(ctx context.Context) ([]*models.FoodItem, error) {
	return c.repo.ListFoods(ctx)
}

// UpdateFoodItem replaces the stored food with the same ID.
func (c *Catalog) UpdateFoodItem(ctx context.Context, food *models.FoodItem) error {
	if food == nil || food.ID == 0 {
		return ErrMissingID
	}
	if err := c.repo.PutFood(ctx, food); err != nil {
		return err
	}
	c.logger.Debug("updated food", "id", food.ID)
	return nil
}

// DeleteFoodItem removes a food. Meals that reference it keep the reference.
func (c *Catalog) DeleteFoodItem(ctx context.Context, id int64) error {
	if err := c.repo.DeleteFood(ctx, id); err != nil {
		return err
	}
	c.logger.Debug("deleted food", "id", id)
	return nil
}

// GetFoodItemByID returns the food, or nil if it does not exist.
func (c *Catalog) GetFoodItemByID(ctx context.Context, id int64) (*models.FoodItem, error) {
	return c.repo.GetFood(ctx, id)
}

// GetFoodItemsByIDs resolves many foods at once. Unknown IDs are absent.
func (c *Catalog) GetFoodItemsByIDs(ctx context.Context, ids []int64) (map[int64]*models.FoodItem, error) {
	return c.repo.GetFoodsByIDs(ctx, ids)
}

// SearchFoodItemsByName returns foods whose name starts with query,
// case-sensitively, in name order.
func (c *Catalog) SearchFoodItemsByName(ctx context.Context, query string) ([]*models.FoodItem, error) {
	return c.repo.FoodsByNamePrefix(ctx, query)
}
