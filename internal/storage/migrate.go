// ABOUTME: Data migration between nutrition storage backends.
// ABOUTME: Copies foods and meals from source to destination, preserving IDs.

package storage

import (
	"context"
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Foods int
	Meals int
}

// MigrateData copies all data from src to dst storage.
// Records are written with their source IDs so meal items keep pointing at
// the same foods. The destination should be empty before calling this function.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	foods, err := src.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source foods: %w", err)
	}

	for _, f := range foods {
		if err := dst.PutFood(ctx, f); err != nil {
			return nil, fmt.Errorf("put food %d: %w", f.ID, err)
		}
		summary.Foods++
	}

	meals, err := src.ListMeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source meals: %w", err)
	}

	for _, m := range meals {
		if err := dst.PutMeal(ctx, m); err != nil {
			return nil, fmt.Errorf("put meal %d: %w", m.ID, err)
		}
		summary.Meals++
	}

	return summary, nil
}

// HasData reports whether repo holds any food or meal.
func HasData(ctx context.Context, repo Repository) (bool, error) {
	foods, err := repo.ListFoods(ctx)
	if err != nil {
		return false, fmt.Errorf("list foods: %w", err)
	}
	if len(foods) > 0 {
		return true, nil
	}

	meals, err := repo.ListMeals(ctx)
	if err != nil {
		return false, fmt.Errorf("list meals: %w", err)
	}
	return len(meals) > 0, nil
}
