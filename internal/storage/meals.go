// ABOUTME: Meal CRUD operations for SQLite storage.
// ABOUTME: Meals and their ordered items are written together in one transaction.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/nutri/internal/models"
)

const mealCols = `id, user_id, datetime, meal_type, notes`

func scanMeal(scanner interface{ Scan(...any) error }) (*models.Meal, error) {
	var m models.Meal
	var userID sql.NullInt64
	var datetime, mealType string
	var notes sql.NullString

	if err := scanner.Scan(&m.ID, &userID, &datetime, &mealType, &notes); err != nil {
		return nil, err
	}

	ts, err := models.ParseTimestamp(datetime)
	if err != nil {
		return nil, fmt.Errorf("meal %d: %w", m.ID, err)
	}
	m.Datetime = ts
	m.MealType = models.MealType(mealType)
	m.Items = []models.MealItem{}

	if userID.Valid {
		m.UserID = &userID.Int64
	}
	if notes.Valid {
		m.Notes = &notes.String
	}
	return &m, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

// InsertMeal stores a meal with its items under a fresh ID.
func (d *DB) InsertMeal(ctx context.Context, m *models.Meal) (int64, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ts := models.FormatTimestamp(m.Datetime)
	result, err := tx.ExecContext(ctx,
		`INSERT INTO meals (user_id, datetime, meal_type, notes) VALUES (?, ?, ?, ?)`,
		nullInt64(m.UserID), ts, string(m.MealType), nullString(m.Notes))
	if err != nil {
		return 0, fmt.Errorf("insert meal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	if err := insertMealItems(ctx, tx, id, m.Items); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	m.ID = id
	return id, nil
}

// PutMeal replaces the whole meal record, items included.
func (d *DB) PutMeal(ctx context.Context, m *models.Meal) error {
	if m.ID == 0 {
		return fmt.Errorf("put meal: %w", ErrMissingID)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO meals (`+mealCols+`) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			datetime = excluded.datetime,
			meal_type = excluded.meal_type,
			notes = excluded.notes`,
		m.ID, nullInt64(m.UserID), models.FormatTimestamp(m.Datetime), string(m.MealType), nullString(m.Notes))
	if err != nil {
		return fmt.Errorf("put meal: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM meal_items WHERE meal_id = ?`, m.ID); err != nil {
		return fmt.Errorf("clear meal items: %w", err)
	}
	if err := insertMealItems(ctx, tx, m.ID, m.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertMealItems(ctx context.Context, tx *sql.Tx, mealID int64, items []models.MealItem) error {
	for i, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO meal_items (meal_id, position, food_id, quantity_grams) VALUES (?, ?, ?, ?)`,
			mealID, i, item.FoodID, item.QuantityGrams)
		if err != nil {
			return fmt.Errorf("insert meal item: %w", err)
		}
	}
	return nil
}

// DeleteMeal removes a meal and its items.
func (d *DB) DeleteMeal(ctx context.Context, id int64) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM meal_items WHERE meal_id = ?`, id); err != nil {
		return fmt.Errorf("delete meal items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM meals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return tx.Commit()
}

// GetMeal retrieves a meal with its items, or nil if it does not exist.
func (d *DB) GetMeal(ctx context.Context, id int64) (*models.Meal, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+mealCols+` FROM meals WHERE id = ?`, id)
	m, err := scanMeal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}

	if err := d.attachItems(ctx, []*models.Meal{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMeals returns all meals in insertion order.
func (d *DB) ListMeals(ctx context.Context) ([]*models.Meal, error) {
	return d.queryMeals(ctx, `SELECT `+mealCols+` FROM meals ORDER BY id`)
}

// MealsByType returns meals of the given type.
func (d *DB) MealsByType(ctx context.Context, mealType models.MealType) ([]*models.Meal, error) {
	return d.queryMeals(ctx,
		`SELECT `+mealCols+` FROM meals WHERE meal_type = ? ORDER BY id`,
		string(mealType))
}

// MealsByDatePrefix returns meals whose stored timestamp starts with prefix.
// A prefix of "2024-03-05" selects that UTC day.
func (d *DB) MealsByDatePrefix(ctx context.Context, prefix string) ([]*models.Meal, error) {
	return d.queryMeals(ctx, `
		SELECT `+mealCols+` FROM meals
		WHERE datetime >= ? AND substr(datetime, 1, length(?)) = ?
		ORDER BY datetime, id`,
		prefix, prefix, prefix)
}

func (d *DB) queryMeals(ctx context.Context, query string, args ...any) ([]*models.Meal, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	var meals []*models.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := d.attachItems(ctx, meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// attachItems fills in Items for every meal using one query.
func (d *DB) attachItems(ctx context.Context, meals []*models.Meal) error {
	if len(meals) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Meal, len(meals))
	ids := make([]int64, 0, len(meals))
	for _, m := range meals {
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT meal_id, food_id, quantity_grams FROM meal_items
		WHERE meal_id IN (`+placeholders(len(ids))+`)
		ORDER BY meal_id, position`,
		int64Args(ids)...)
	if err != nil {
		return fmt.Errorf("load meal items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var mealID int64
		var item models.MealItem
		if err := rows.Scan(&mealID, &item.FoodID, &item.QuantityGrams); err != nil {
			return fmt.Errorf("scan meal item: %w", err)
		}
		if m, ok := byID[mealID]; ok {
			m.Items = append(m.Items, item)
		}
	}
	return rows.Err()
}
