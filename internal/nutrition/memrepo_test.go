package nutrition

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
)

// memRepo is an in-memory Repository that counts calls and can fail on demand.
type memRepo struct {
	foods  map[int64]models.FoodItem
	meals  map[int64]models.Meal
	nextID int64
	calls  map[string]int
	fail   error
}

var _ storage.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		foods: map[int64]models.FoodItem{},
		meals: map[int64]models.Meal{},
		calls: map[string]int{},
	}
}

func (r *memRepo) record(op string) error {
	r.calls[op]++
	return r.fail
}

func (r *memRepo) totalCalls() int {
	n := 0
	for _, c := range r.calls {
		n += c
	}
	return n
}

func (r *memRepo) InsertFood(_ context.Context, f *models.FoodItem) (int64, error) {
	if err := r.record("InsertFood"); err != nil {
		return 0, err
	}
	r.nextID++
	f.ID = r.nextID
	r.foods[f.ID] = *f
	return f.ID, nil
}

func (r *memRepo) PutFood(_ context.Context, f *models.FoodItem) error {
	if err := r.record("PutFood"); err != nil {
		return err
	}
	if f.ID == 0 {
		return storage.ErrMissingID
	}
	r.foods[f.ID] = *f
	return nil
}

func (r *memRepo) DeleteFood(_ context.Context, id int64) error {
	if err := r.record("DeleteFood"); err != nil {
		return err
	}
	delete(r.foods, id)
	return nil
}

func (r *memRepo) GetFood(_ context.Context, id int64) (*models.FoodItem, error) {
	if err := r.record("GetFood"); err != nil {
		return nil, err
	}
	f, ok := r.foods[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *memRepo) GetFoodsByIDs(_ context.Context, ids []int64) (map[int64]*models.FoodItem, error) {
	if err := r.record("GetFoodsByIDs"); err != nil {
		return nil, err
	}
	out := map[int64]*models.FoodItem{}
	for _, id := range ids {
		if f, ok := r.foods[id]; ok {
			f := f
			out[id] = &f
		}
	}
	return out, nil
}

func (r *memRepo) ListFoods(_ context.Context) ([]*models.FoodItem, error) {
	if err := r.record("ListFoods"); err != nil {
		return nil, err
	}
	var out []*models.FoodItem
	for _, f := range r.foods {
		f := f
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) FoodsByNamePrefix(ctx context.Context, prefix string) ([]*models.FoodItem, error) {
	all, err := r.ListFoods(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.FoodItem
	for _, f := range all {
		if strings.HasPrefix(f.Name, prefix) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRepo) InsertMeal(_ context.Context, m *models.Meal) (int64, error) {
	if err := r.record("InsertMeal"); err != nil {
		return 0, err
	}
	r.nextID++
	m.ID = r.nextID
	r.meals[m.ID] = *m
	return m.ID, nil
}

func (r *memRepo) PutMeal(_ context.Context, m *models.Meal) error {
	if err := r.record("PutMeal"); err != nil {
		return err
	}
	if m.ID == 0 {
		return storage.ErrMissingID
	}
	r.meals[m.ID] = *m
	return nil
}

func (r *memRepo) DeleteMeal(_ context.Context, id int64) error {
	if err := r.record("DeleteMeal"); err != nil {
		return err
	}
	delete(r.meals, id)
	return nil
}

func (r *memRepo) GetMeal(_ context.Context, id int64) (*models.Meal, error) {
	if err := r.record("GetMeal"); err != nil {
		return nil, err
	}
	m, ok := r.meals[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memRepo) ListMeals(_ context.Context) ([]*models.Meal, error) {
	if err := r.record("ListMeals"); err != nil {
		return nil, err
	}
	var out []*models.Meal
	for _, m := range r.meals {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) MealsByType(ctx context.Context, mealType models.MealType) ([]*models.Meal, error) {
	all, err := r.ListMeals(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Meal
	for _, m := range all {
		if m.MealType == mealType {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memRepo) MealsByDatePrefix(ctx context.Context, prefix string) ([]*models.Meal, error) {
	all, err := r.ListMeals(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Meal
	for _, m := range all {
		if strings.HasPrefix(models.FormatTimestamp(m.Datetime), prefix) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Datetime.Before(out[j].Datetime) })
	return out, nil
}

func (r *memRepo) Close() error { return nil }

var errBoom = errors.New("disk on fire")
