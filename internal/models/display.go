// ABOUTME: Presentation helpers for meal categories.
// ABOUTME: Glyph per meal type and first-letter capitalization.
package models

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var mealEmoji = map[MealType]string{
	MealBreakfast: "🍳",
	MealLunch:     "🍽️",
	MealDinner:    "🌙",
	MealSnack:     "🍫",
}

// Emoji returns the display glyph for the meal type.
func (t MealType) Emoji() string {
	if e, ok := mealEmoji[t]; ok {
		return e
	}
	return "🍴"
}

// Capitalize upper-cases the first letter of s and leaves the rest unchanged.
func Capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	// Casers are stateful; one per call.
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}
