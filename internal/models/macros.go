// ABOUTME: Macros value type for nutritional content.
// ABOUTME: Six additive fields, scaled per gram quantity for aggregation.
package models

// Macros holds the six tracked nutritional quantities.
// On a FoodItem the values are per 100 grams.
type Macros struct {
	Kcal    float64 `json:"kcal" yaml:"kcal"`
	Protein float64 `json:"protein" yaml:"protein"`
	Carbs   float64 `json:"carbs" yaml:"carbs"`
	Fat     float64 `json:"fat" yaml:"fat"`
	Fiber   float64 `json:"fiber" yaml:"fiber"`
	Salt    float64 `json:"salt" yaml:"salt"`
}

// Add returns the field-by-field sum of m and o.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Kcal:    m.Kcal + o.Kcal,
		Protein: m.Protein + o.Protein,
		Carbs:   m.Carbs + o.Carbs,
		Fat:     m.Fat + o.Fat,
		Fiber:   m.Fiber + o.Fiber,
		Salt:    m.Salt + o.Salt,
	}
}

// Scale multiplies every field by factor.
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Kcal:    m.Kcal * factor,
		Protein: m.Protein * factor,
		Carbs:   m.Carbs * factor,
		Fat:     m.Fat * factor,
		Fiber:   m.Fiber * factor,
		Salt:    m.Salt * factor,
	}
}

// IsZero reports whether every field is zero.
func (m Macros) IsZero() bool {
	return m == Macros{}
}
