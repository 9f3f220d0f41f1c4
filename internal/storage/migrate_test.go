// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-badger, badger-to-sqlite, and round-trip migration.
package storage

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/nutri/internal/models"
)

// seedSample fills repo with two foods and two meals and returns them.
func seedSample(t *testing.T, repo Repository) ([]*models.FoodItem, []*models.Meal) {
	t.Helper()

	rice := mustInsertFood(t, repo, "Rice", models.Macros{Kcal: 130, Protein: 2.7, Carbs: 28, Fat: 0.3})
	rice.WithType(models.FoodOther)
	if err := repo.PutFood(context.Background(), rice); err != nil {
		t.Fatalf("PutFood failed: %v", err)
	}
	apple := mustInsertFood(t, repo, "Apple", models.Macros{Kcal: 52, Carbs: 14})

	lunch := mustInsertMeal(t, repo, models.NewMeal(models.MealLunch).
		WithDatetime(time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)).
		WithNotes("with curry").
		AddItem(rice.ID, 150).
		AddItem(apple.ID, 100))
	snack := mustInsertMeal(t, repo, models.NewMeal(models.MealSnack).
		WithDatetime(time.Date(2024, 3, 5, 16, 0, 0, 0, time.UTC)).
		AddItem(apple.ID, 80))

	return []*models.FoodItem{rice, apple}, []*models.Meal{lunch, snack}
}

func assertSameData(t *testing.T, src, dst Repository) {
	t.Helper()
	ctx := context.Background()

	srcFoods, _ := src.ListFoods(ctx)
	dstFoods, err := dst.ListFoods(ctx)
	if err != nil {
		t.Fatalf("ListFoods from dst failed: %v", err)
	}
	if len(srcFoods) != len(dstFoods) {
		t.Fatalf("Expected %d foods in dst, got %d", len(srcFoods), len(dstFoods))
	}
	for i := range srcFoods {
		s, d := srcFoods[i], dstFoods[i]
		if s.ID != d.ID || s.Name != d.Name || s.Macros != d.Macros {
			t.Errorf("Food %d mismatch: src %+v, dst %+v", i, s, d)
		}
		if (s.Type == nil) != (d.Type == nil) || (s.Type != nil && *s.Type != *d.Type) {
			t.Errorf("Food %d type mismatch: src %v, dst %v", i, s.Type, d.Type)
		}
	}

	srcMeals, _ := src.ListMeals(ctx)
	dstMeals, err := dst.ListMeals(ctx)
	if err != nil {
		t.Fatalf("ListMeals from dst failed: %v", err)
	}
	if len(srcMeals) != len(dstMeals) {
		t.Fatalf("Expected %d meals in dst, got %d", len(srcMeals), len(dstMeals))
	}
	for i := range srcMeals {
		s, d := srcMeals[i], dstMeals[i]
		if s.ID != d.ID || s.MealType != d.MealType || !s.Datetime.Equal(d.Datetime) {
			t.Errorf("Meal %d mismatch: src %+v, dst %+v", i, s, d)
		}
		if len(s.Items) != len(d.Items) {
			t.Errorf("Meal %d item count: src %d, dst %d", i, len(s.Items), len(d.Items))
			continue
		}
		for j := range s.Items {
			if s.Items[j] != d.Items[j] {
				t.Errorf("Meal %d item %d: src %+v, dst %+v", i, j, s.Items[j], d.Items[j])
			}
		}
	}
}

func TestMigrateDataSQLiteToBadger(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestBadger(t)
	seedSample(t, src)

	summary, err := MigrateData(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Foods != 2 {
		t.Errorf("Expected 2 migrated foods, got %d", summary.Foods)
	}
	if summary.Meals != 2 {
		t.Errorf("Expected 2 migrated meals, got %d", summary.Meals)
	}

	assertSameData(t, src, dst)

	// Indexes are rebuilt in the destination.
	day, err := dst.MealsByDatePrefix(context.Background(), "2024-03-05")
	if err != nil {
		t.Fatalf("MealsByDatePrefix failed: %v", err)
	}
	if len(day) != 2 {
		t.Errorf("Expected 2 meals by date in dst, got %d", len(day))
	}
	found, err := dst.FoodsByNamePrefix(context.Background(), "Ri")
	if err != nil {
		t.Fatalf("FoodsByNamePrefix failed: %v", err)
	}
	if len(found) != 1 {
		t.Errorf("Expected Rice by prefix in dst, got %d", len(found))
	}
}

func TestMigrateDataBadgerToSQLite(t *testing.T) {
	src := setupTestBadger(t)
	dst := setupTestDB(t)
	seedSample(t, src)

	summary, err := MigrateData(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Foods != 2 || summary.Meals != 2 {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	assertSameData(t, src, dst)
}

func TestMigrateDataEmptySource(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestBadger(t)

	summary, err := MigrateData(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Foods != 0 || summary.Meals != 0 {
		t.Errorf("Expected empty summary, got %+v", summary)
	}
}

func TestMigrateDataRoundTrip(t *testing.T) {
	first := setupTestDB(t)
	middle := setupTestBadger(t)
	last := setupTestDB(t)
	seedSample(t, first)

	if _, err := MigrateData(context.Background(), first, middle); err != nil {
		t.Fatalf("MigrateData sqlite->badger failed: %v", err)
	}
	if _, err := MigrateData(context.Background(), middle, last); err != nil {
		t.Fatalf("MigrateData badger->sqlite failed: %v", err)
	}

	assertSameData(t, first, last)
}

func TestMigrateDataKeepsDanglingReferences(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestBadger(t)
	foods, meals := seedSample(t, src)

	if err := src.DeleteFood(context.Background(), foods[0].ID); err != nil {
		t.Fatalf("DeleteFood failed: %v", err)
	}

	if _, err := MigrateData(context.Background(), src, dst); err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}

	got, err := dst.GetMeal(context.Background(), meals[0].ID)
	if err != nil || got == nil {
		t.Fatalf("GetMeal failed: %v", err)
	}
	if got.Items[0].FoodID != foods[0].ID {
		t.Errorf("Expected dangling food id %d to be kept, got %d", foods[0].ID, got.Items[0].FoodID)
	}
}

func TestHasData(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		has, err := HasData(ctx, repo)
		if err != nil {
			t.Fatalf("HasData failed: %v", err)
		}
		if has {
			t.Error("Expected empty repository to report no data")
		}

		m := mustInsertMeal(t, repo, models.NewMeal(models.MealSnack))
		has, err = HasData(ctx, repo)
		if err != nil {
			t.Fatalf("HasData failed: %v", err)
		}
		if !has {
			t.Error("Expected a repository with a meal to report data")
		}

		if err := repo.DeleteMeal(ctx, m.ID); err != nil {
			t.Fatalf("DeleteMeal failed: %v", err)
		}
		mustInsertFood(t, repo, "Apple", models.Macros{Kcal: 52})
		has, err = HasData(ctx, repo)
		if err != nil {
			t.Fatalf("HasData failed: %v", err)
		}
		if !has {
			t.Error("Expected a repository with a food to report data")
		}
	})
}
