// ABOUTME: FoodItem operations for the Badger store.
// ABOUTME: Maintains the name index used for prefix search.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/nutri/internal/models"
)

// InsertFood stores a new food under a fresh ID.
func (b *BadgerStore) InsertFood(ctx context.Context, f *models.FoodItem) (int64, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}

	id, err := b.nextID(b.foodSeq, foodPrefix)
	if err != nil {
		return 0, fmt.Errorf("insert food: %w", err)
	}

	rec := *f
	rec.ID = id
	if err := b.db.Update(func(txn *badger.Txn) error {
		return writeFood(txn, &rec)
	}); err != nil {
		return 0, fmt.Errorf("insert food: %w", err)
	}

	f.ID = id
	return id, nil
}

// PutFood replaces the whole food record, creating it if needed.
func (b *BadgerStore) PutFood(ctx context.Context, f *models.FoodItem) error {
	if f.ID == 0 {
		return fmt.Errorf("put food: %w", ErrMissingID)
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		if err := removeFood(txn, f.ID); err != nil {
			return err
		}
		return writeFood(txn, f)
	})
	if err != nil {
		return fmt.Errorf("put food: %w", err)
	}
	return nil
}

// DeleteFood removes a food by ID. Meals referencing it are left untouched.
func (b *BadgerStore) DeleteFood(ctx context.Context, id int64) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if err := b.db.Update(func(txn *badger.Txn) error {
		return removeFood(txn, id)
	}); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	return nil
}

// GetFood retrieves a food by ID, or nil if it does not exist.
func (b *BadgerStore) GetFood(ctx context.Context, id int64) (*models.FoodItem, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var f *models.FoodItem
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		f, err = readFood(txn, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}
	return f, nil
}

// GetFoodsByIDs loads every requested food in one read transaction.
func (b *BadgerStore) GetFoodsByIDs(ctx context.Context, ids []int64) (map[int64]*models.FoodItem, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	foods := make(map[int64]*models.FoodItem, len(ids))
	err := b.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if _, seen := foods[id]; seen {
				continue
			}
			f, err := readFood(txn, id)
			if err != nil {
				return err
			}
			if f != nil {
				foods[id] = f
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get foods: %w", err)
	}
	return foods, nil
}

// ListFoods returns all foods in identity order.
func (b *BadgerStore) ListFoods(ctx context.Context) ([]*models.FoodItem, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var foods []*models.FoodItem
	err := b.db.View(func(txn *badger.Txn) error {
		values, err := scanValues(txn, []byte(foodPrefix))
		if err != nil {
			return err
		}
		for _, v := range values {
			var f models.FoodItem
			if err := json.Unmarshal(v, &f); err != nil {
				return fmt.Errorf("decode food: %w", err)
			}
			foods = append(foods, &f)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

// FoodsByNamePrefix scans the name index for keys starting with prefix.
func (b *BadgerStore) FoodsByNamePrefix(ctx context.Context, prefix string) ([]*models.FoodItem, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var foods []*models.FoodItem
	err := b.db.View(func(txn *badger.Txn) error {
		for _, id := range scanIndex(txn, []byte(foodNameIdx+prefix)) {
			f, err := readFood(txn, id)
			if err != nil {
				return err
			}
			if f != nil {
				foods = append(foods, f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	return foods, nil
}

func readFood(txn *badger.Txn, id int64) (*models.FoodItem, error) {
	v, err := getValue(txn, recordKey(foodPrefix, id))
	if err != nil || v == nil {
		return nil, err
	}
	var f models.FoodItem
	if err := json.Unmarshal(v, &f); err != nil {
		return nil, fmt.Errorf("decode food %d: %w", id, err)
	}
	return &f, nil
}

func writeFood(txn *badger.Txn, f *models.FoodItem) error {
	v, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode food: %w", err)
	}
	if err := txn.Set(recordKey(foodPrefix, f.ID), v); err != nil {
		return err
	}
	return txn.Set(indexKey(foodNameIdx, f.Name, f.ID), nil)
}

// removeFood deletes the record and its index entry if present.
func removeFood(txn *badger.Txn, id int64) error {
	old, err := readFood(txn, id)
	if err != nil || old == nil {
		return err
	}
	if err := txn.Delete(indexKey(foodNameIdx, old.Name, id)); err != nil {
		return err
	}
	return txn.Delete(recordKey(foodPrefix, id))
}
