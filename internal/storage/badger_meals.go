// ABOUTME: Meal operations for the Badger store.
// ABOUTME: Items live inside the meal record; date and type indexes point back by id.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/nutri/internal/models"
)

// normalizeMeal returns a copy of m in the exact shape SQLite would return it.
func normalizeMeal(m *models.Meal, id int64) *models.Meal {
	rec := *m
	rec.ID = id
	rec.Datetime = m.Datetime.UTC().Truncate(time.Second)
	rec.Items = append([]models.MealItem{}, m.Items...)
	return &rec
}

// InsertMeal stores a meal under a fresh ID.
func (b *BadgerStore) InsertMeal(ctx context.Context, m *models.Meal) (int64, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}

	id, err := b.nextID(b.mealSeq, mealPrefix)
	if err != nil {
		return 0, fmt.Errorf("insert meal: %w", err)
	}

	rec := normalizeMeal(m, id)
	if err := b.db.Update(func(txn *badger.Txn) error {
		return writeMeal(txn, rec)
	}); err != nil {
		return 0, fmt.Errorf("insert meal: %w", err)
	}

	m.ID = id
	return id, nil
}

// PutMeal replaces the whole meal record, creating it if needed.
func (b *BadgerStore) PutMeal(ctx context.Context, m *models.Meal) error {
	if m.ID == 0 {
		return fmt.Errorf("put meal: %w", ErrMissingID)
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	rec := normalizeMeal(m, m.ID)
	err := b.db.Update(func(txn *badger.Txn) error {
		if err := removeMeal(txn, rec.ID); err != nil {
			return err
		}
		return writeMeal(txn, rec)
	})
	if err != nil {
		return fmt.Errorf("put meal: %w", err)
	}
	return nil
}

// DeleteMeal removes a meal and its index entries.
func (b *BadgerStore) DeleteMeal(ctx context.Context, id int64) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if err := b.db.Update(func(txn *badger.Txn) error {
		return removeMeal(txn, id)
	}); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

// GetMeal retrieves a meal by ID, or nil if it does not exist.
func (b *BadgerStore) GetMeal(ctx context.Context, id int64) (*models.Meal, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var m *models.Meal
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		m, err = readMeal(txn, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	return m, nil
}

// ListMeals returns all meals in identity order.
func (b *BadgerStore) ListMeals(ctx context.Context) ([]*models.Meal, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var meals []*models.Meal
	err := b.db.View(func(txn *badger.Txn) error {
		values, err := scanValues(txn, []byte(mealPrefix))
		if err != nil {
			return err
		}
		for _, v := range values {
			m, err := decodeMeal(v)
			if err != nil {
				return err
			}
			meals = append(meals, m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

// MealsByType returns meals of the given type in identity order.
func (b *BadgerStore) MealsByType(ctx context.Context, mealType models.MealType) ([]*models.Meal, error) {
	// The separator pins the match to the whole type value.
	return b.mealsByIndex(ctx, mealTypeIdx+string(mealType)+idxSep)
}

// MealsByDatePrefix scans the date index for timestamps starting with prefix.
func (b *BadgerStore) MealsByDatePrefix(ctx context.Context, prefix string) ([]*models.Meal, error) {
	return b.mealsByIndex(ctx, mealDateIdx+prefix)
}

func (b *BadgerStore) mealsByIndex(ctx context.Context, prefix string) ([]*models.Meal, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var meals []*models.Meal
	err := b.db.View(func(txn *badger.Txn) error {
		for _, id := range scanIndex(txn, []byte(prefix)) {
			m, err := readMeal(txn, id)
			if err != nil {
				return err
			}
			if m != nil {
				meals = append(meals, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search meals: %w", err)
	}
	return meals, nil
}

func decodeMeal(v []byte) (*models.Meal, error) {
	var m models.Meal
	if err := json.Unmarshal(v, &m); err != nil {
		return nil, fmt.Errorf("decode meal: %w", err)
	}
	if m.Items == nil {
		m.Items = []models.MealItem{}
	}
	return &m, nil
}

func readMeal(txn *badger.Txn, id int64) (*models.Meal, error) {
	v, err := getValue(txn, recordKey(mealPrefix, id))
	if err != nil || v == nil {
		return nil, err
	}
	return decodeMeal(v)
}

func writeMeal(txn *badger.Txn, m *models.Meal) error {
	v, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode meal: %w", err)
	}
	if err := txn.Set(recordKey(mealPrefix, m.ID), v); err != nil {
		return err
	}
	if err := txn.Set(indexKey(mealDateIdx, models.FormatTimestamp(m.Datetime), m.ID), nil); err != nil {
		return err
	}
	return txn.Set(indexKey(mealTypeIdx, string(m.MealType), m.ID), nil)
}

// removeMeal deletes the record and its index entries if present.
func removeMeal(txn *badger.Txn, id int64) error {
	old, err := readMeal(txn, id)
	if err != nil || old == nil {
		return err
	}
	if err := txn.Delete(indexKey(mealDateIdx, models.FormatTimestamp(old.Datetime), id)); err != nil {
		return err
	}
	if err := txn.Delete(indexKey(mealTypeIdx, string(old.MealType), id)); err != nil {
		return err
	}
	return txn.Delete(recordKey(mealPrefix, id))
}
