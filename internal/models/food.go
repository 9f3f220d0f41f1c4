// ABOUTME: FoodItem model and FoodType enum for the food catalog.
// ABOUTME: Macros on a food are stored per 100 grams.
package models

import "strings"

// FoodType is the optional category tag of a food.
type FoodType string

const (
	FoodFruit      FoodType = "fruit"
	FoodVegetable  FoodType = "vegetable"
	FoodMeat       FoodType = "meat"
	FoodFish       FoodType = "fish"
	FoodSupplement FoodType = "supplement"
	FoodBeverage   FoodType = "beverage"
	FoodOther      FoodType = "other"
)

// AllFoodTypes returns all valid food types.
var AllFoodTypes = []FoodType{
	FoodFruit, FoodVegetable, FoodMeat, FoodFish,
	FoodSupplement, FoodBeverage, FoodOther,
}

// ParseFoodType lower-cases s and checks it against AllFoodTypes.
func ParseFoodType(s string) (FoodType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, ft := range AllFoodTypes {
		if string(ft) == s {
			return ft, true
		}
	}
	return "", false
}

// FoodItem is a catalog entry. ID is zero until the food is first persisted.
type FoodItem struct {
	ID     int64     `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string    `json:"name" yaml:"name"`
	Macros Macros    `json:"macros" yaml:"macros"`
	Type   *FoodType `json:"type,omitempty" yaml:"type,omitempty"`
}

// NewFoodItem creates an unsaved food with the given per-100g macros.
func NewFoodItem(name string, macros Macros) *FoodItem {
	return &FoodItem{Name: name, Macros: macros}
}

// WithType sets the food category.
func (f *FoodItem) WithType(t FoodType) *FoodItem {
	f.Type = &t
	return f
}

// CalcMacros scales the food's per-100g macros to the given quantity.
// No rounding is applied.
func CalcMacros(food *FoodItem, grams float64) Macros {
	return food.Macros.Scale(grams / 100)
}
