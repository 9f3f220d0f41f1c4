// ABOUTME: FoodItem CRUD operations for SQLite storage.
// ABOUTME: Implements FoodRepository with a name index for prefix search.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/nutri/internal/models"
)

const foodCols = `id, name, kcal, protein, carbs, fat, fiber, salt, food_type`

func scanFood(scanner interface{ Scan(...any) error }) (*models.FoodItem, error) {
	var f models.FoodItem
	var foodType sql.NullString

	err := scanner.Scan(
		&f.ID, &f.Name,
		&f.Macros.Kcal, &f.Macros.Protein, &f.Macros.Carbs,
		&f.Macros.Fat, &f.Macros.Fiber, &f.Macros.Salt,
		&foodType,
	)
	if err != nil {
		return nil, err
	}

	if foodType.Valid {
		ft := models.FoodType(foodType.String)
		f.Type = &ft
	}
	return &f, nil
}

func foodTypeArg(f *models.FoodItem) sql.NullString {
	if f.Type == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*f.Type), Valid: true}
}

// InsertFood stores a new food under a fresh ID. Any ID already set on f
// is ignored and overwritten.
func (d *DB) InsertFood(ctx context.Context, f *models.FoodItem) (int64, error) {
	m := f.Macros
	result, err := d.db.ExecContext(ctx,
		`INSERT INTO food_items (name, kcal, protein, carbs, fat, fiber, salt, food_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Name, m.Kcal, m.Protein, m.Carbs, m.Fat, m.Fiber, m.Salt, foodTypeArg(f))
	if err != nil {
		return 0, fmt.Errorf("insert food: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	f.ID = id
	return id, nil
}

// PutFood replaces the whole food record, creating it if needed.
func (d *DB) PutFood(ctx context.Context, f *models.FoodItem) error {
	if f.ID == 0 {
		return fmt.Errorf("put food: %w", ErrMissingID)
	}

	m := f.Macros
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO food_items (`+foodCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kcal = excluded.kcal,
			protein = excluded.protein,
			carbs = excluded.carbs,
			fat = excluded.fat,
			fiber = excluded.fiber,
			salt = excluded.salt,
			food_type = excluded.food_type`,
		f.ID, f.Name, m.Kcal, m.Protein, m.Carbs, m.Fat, m.Fiber, m.Salt, foodTypeArg(f))
	if err != nil {
		return fmt.Errorf("put food: %w", err)
	}
	return nil
}

// DeleteFood removes a food by ID. Meals referencing it are left untouched.
func (d *DB) DeleteFood(ctx context.Context, id int64) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM food_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	return nil
}

// GetFood retrieves a food by ID, or nil if it does not exist.
func (d *DB) GetFood(ctx context.Context, id int64) (*models.FoodItem, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+foodCols+` FROM food_items WHERE id = ?`, id)
	f, err := scanFood(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}
	return f, nil
}

// GetFoodsByIDs loads every requested food with a single query.
func (d *DB) GetFoodsByIDs(ctx context.Context, ids []int64) (map[int64]*models.FoodItem, error) {
	foods := make(map[int64]*models.FoodItem, len(ids))
	if len(ids) == 0 {
		return foods, nil
	}

	query := `SELECT ` + foodCols + ` FROM food_items WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := d.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("get foods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		foods[f.ID] = f
	}
	return foods, rows.Err()
}

// ListFoods returns all foods in insertion order.
func (d *DB) ListFoods(ctx context.Context) ([]*models.FoodItem, error) {
	return d.queryFoods(ctx, `SELECT `+foodCols+` FROM food_items ORDER BY id`)
}

// FoodsByNamePrefix returns foods whose name starts with prefix.
// The comparison is binary, so it is case-sensitive.
func (d *DB) FoodsByNamePrefix(ctx context.Context, prefix string) ([]*models.FoodItem, error) {
	return d.queryFoods(ctx, `
		SELECT `+foodCols+` FROM food_items
		WHERE name >= ? AND substr(name, 1, length(?)) = ?
		ORDER BY name, id`,
		prefix, prefix, prefix)
}

func (d *DB) queryFoods(ctx context.Context, query string, args ...any) ([]*models.FoodItem, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	var foods []*models.FoodItem
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
