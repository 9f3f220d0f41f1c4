// ABOUTME: CLI commands for the meal log.
// ABOUTME: Supports add, list, show, update, and delete subcommands.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var (
	mealAt    string
	mealItems []string
	mealNotes string
	mealType  string
	mealDate  string
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"m"},
	Short:   "Manage the meal log",
	Long: `Log meals made of catalog foods and gram quantities.

Meal types: breakfast, lunch, dinner, snack, other

Items are given as <food id>:<grams>, once per food:
  nutri meal add lunch --item 1:150 --item 4:100

Times are stored in UTC. --at accepts "YYYY-MM-DD HH:MM", "YYYY-MM-DD"
or RFC 3339 and defaults to now.

COMMANDS:

  add      Log a meal
  list     List meals, filtered by --type or --date
  show     Show a meal with its items and totals
  update   Replace a meal
  delete   Delete a meal`,
}

var mealAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Log a meal",
	Long: `Log a meal.

Examples:
  nutri meal add breakfast --item 2:60 --item 5:200
  nutri meal add dinner --at "2025-07-02 19:30" --item 1:150 --notes "with curry"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mealFromFlags(args[0])
		if err != nil {
			return err
		}

		if _, err := mealLog.AddMeal(cmd.Context(), m); err != nil {
			return fmt.Errorf("failed to add meal: %w", err)
		}

		total, err := macros.CalcTotalMacrosForMeal(cmd.Context(), m)
		if err != nil {
			return fmt.Errorf("failed to total meal: %w", err)
		}

		color.Green("✓ Logged %s", m.MealType)
		printMealLine(m, &total)
		return nil
	},
}

var mealListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List meals",
	Long: `List logged meals.

FILTERING:

  --type    only meals of this type
  --date    only meals whose UTC timestamp starts with this prefix,
            e.g. 2025-07-02 for a day or 2025-07 for a month

EXAMPLES:

  nutri meal list
  nutri meal list --type snack
  nutri meal list --date 2025-07-02`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter models.MealType
		if mealType != "" {
			mt, ok := models.ParseMealType(mealType)
			if !ok {
				return fmt.Errorf("unknown meal type: %s", mealType)
			}
			filter = mt
		}

		var (
			meals []*models.Meal
			err   error
		)
		switch {
		case mealDate != "":
			meals, err = mealLog.SearchMealsByDate(cmd.Context(), mealDate)
		case filter != "":
			meals, err = mealLog.SearchMealsByType(cmd.Context(), filter)
		default:
			meals, err = mealLog.GetMeals(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}

		shown := 0
		for _, m := range meals {
			if filter != "" && m.MealType != filter {
				continue
			}
			total, err := macros.CalcTotalMacrosForMeal(cmd.Context(), m)
			if err != nil {
				return fmt.Errorf("failed to total meal %d: %w", m.ID, err)
			}
			printMealLine(m, &total)
			shown++
		}
		if shown == 0 {
			fmt.Println("No meals found.")
		}
		return nil
	},
}

var mealShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		m, err := mealLog.GetMealByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get meal: %w", err)
		}
		if m == nil {
			return fmt.Errorf("meal not found: %d", id)
		}

		foods, err := catalog.GetFoodItemsByIDs(cmd.Context(), models.FoodIDs(m))
		if err != nil {
			return fmt.Errorf("failed to resolve foods: %w", err)
		}
		total, err := macros.CalcTotalMacrosForMeal(cmd.Context(), m)
		if err != nil {
			return fmt.Errorf("failed to total meal: %w", err)
		}

		printMealLine(m, nil)
		for _, it := range m.Items {
			name := faint.Sprintf("#%d (deleted)", it.FoodID)
			energy := ""
			if f, ok := foods[it.FoodID]; ok {
				name = f.Name
				energy = kcal(models.CalcMacros(f, it.QuantityGrams).Kcal)
			}
			fmt.Printf("      %s %s %s\n", padRight(truncate(name, 24), 24), padRight(grams(it.QuantityGrams), 10), energy)
		}
		fmt.Printf("      Total: %s\n", formatMacros(total))
		return nil
	},
}

var mealUpdateCmd = &cobra.Command{
	Use:   "update <id> <type>",
	Short: "Replace a meal",
	Long: `Replace a meal's type, time, items and notes. Items not passed again
are dropped.

Examples:
  nutri meal update 7 lunch --at "2025-07-02 12:30" --item 1:200`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		m, err := mealFromFlags(args[1])
		if err != nil {
			return err
		}

		if err := mealLog.UpdateMeal(cmd.Context(), id, m); err != nil {
			return fmt.Errorf("failed to update meal: %w", err)
		}

		color.Green("✓ Updated meal %d", id)
		printMealLine(m, nil)
		return nil
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a meal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		m, err := mealLog.GetMealByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get meal: %w", err)
		}
		if m == nil {
			return fmt.Errorf("meal not found: %d", id)
		}

		if err := mealLog.DeleteMeal(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete meal: %w", err)
		}

		color.Yellow("✗ Deleted %s", m.MealType)
		printMealLine(m, nil)
		return nil
	},
}

func mealFromFlags(typeArg string) (*models.Meal, error) {
	mt, ok := models.ParseMealType(typeArg)
	if !ok {
		return nil, fmt.Errorf("unknown meal type: %s", typeArg)
	}

	m := models.NewMeal(mt).WithDatetime(time.Now().UTC())
	if mealAt != "" {
		t, err := parseTime(mealAt)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp: %s", mealAt)
		}
		m.WithDatetime(t)
	}

	for _, item := range mealItems {
		foodID, qty, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		m.AddItem(foodID, qty)
	}

	if mealNotes != "" {
		m.WithNotes(mealNotes)
	}
	return m, nil
}

// parseItem reads "<food id>:<grams>".
func parseItem(s string) (int64, float64, error) {
	idPart, qtyPart, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid item %q (want <food id>:<grams>)", s)
	}
	foodID, err := parseID(idPart)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid item %q: %w", s, err)
	}
	qty, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(qtyPart), "g"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid item %q: bad quantity", s)
	}
	return foodID, qty, nil
}

func addMealFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mealAt, "at", "", "timestamp (YYYY-MM-DD HH:MM, UTC)")
	cmd.Flags().StringArrayVarP(&mealItems, "item", "i", nil, "food and quantity as <food id>:<grams> (repeatable)")
	cmd.Flags().StringVar(&mealNotes, "notes", "", "notes for the meal")
}

func init() {
	addMealFlags(mealAddCmd)
	addMealFlags(mealUpdateCmd)
	mealListCmd.Flags().StringVarP(&mealType, "type", "t", "", "filter by meal type")
	mealListCmd.Flags().StringVarP(&mealDate, "date", "d", "", "filter by date prefix (YYYY-MM-DD)")

	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealShowCmd)
	mealCmd.AddCommand(mealUpdateCmd)
	mealCmd.AddCommand(mealDeleteCmd)
	rootCmd.AddCommand(mealCmd)
}
