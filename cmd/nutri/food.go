// ABOUTME: CLI commands for the food catalog.
// ABOUTME: Supports add, list, show, search, update, and delete subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var (
	foodKcal    float64
	foodProtein float64
	foodCarbs   float64
	foodFat     float64
	foodFiber   float64
	foodSalt    float64
	foodType    string
)

var foodCmd = &cobra.Command{
	Use:     "food",
	Aliases: []string{"f"},
	Short:   "Manage the food catalog",
	Long: `Manage the catalog of foods meals are made from.

Every food stores its macros per 100 g: kcal, protein, carbs, fat, fiber
and salt. The type is optional:
  fruit, vegetable, meat, fish, supplement, beverage, other

COMMANDS:

  add      Add a food
  list     List all foods
  show     Show one food
  search   Find foods by name prefix (case-sensitive)
  update   Replace a food's name, type and macros
  delete   Delete a food (meals keep their items but stop counting them)`,
}

var foodAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a food",
	Long: `Add a food to the catalog. Macros are per 100 g.

Examples:
  nutri food add Rice --kcal 130 --protein 2.7 --carbs 28 --fat 0.3 --fiber 0.4 --salt 0.01
  nutri food add "Green tea" --type beverage`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := foodFromFlags(strings.Join(args, " "))
		if err != nil {
			return err
		}

		if _, err := catalog.AddFoodItem(cmd.Context(), f); err != nil {
			return fmt.Errorf("failed to add food: %w", err)
		}

		color.Green("✓ Added %s", f.Name)
		printFood(f)
		return nil
	},
}

var foodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter models.FoodType
		if foodType != "" {
			ft, ok := models.ParseFoodType(foodType)
			if !ok {
				return fmt.Errorf("unknown food type: %s", foodType)
			}
			filter = ft
		}

		foods, err := catalog.GetFoodItems(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list foods: %w", err)
		}

		shown := 0
		for _, f := range foods {
			if filter != "" && (f.Type == nil || *f.Type != filter) {
				continue
			}
			printFood(f)
			shown++
		}
		if shown == 0 {
			fmt.Println("No foods found.")
		}
		return nil
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		f, err := catalog.GetFoodItemByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get food: %w", err)
		}
		if f == nil {
			return fmt.Errorf("food not found: %d", id)
		}

		printFood(f)
		return nil
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <prefix>",
	Short: "Find foods by name prefix",
	Long: `Find foods whose name starts with the given prefix. Matching is
case-sensitive: "Ap" finds Apple and Apricot but not "apple".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		foods, err := catalog.SearchFoodItemsByName(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to search foods: %w", err)
		}

		if len(foods) == 0 {
			fmt.Println("No foods found.")
			return nil
		}
		for _, f := range foods {
			printFood(f)
		}
		return nil
	},
}

var foodUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Replace a food",
	Long: `Replace a food's name, type and macros. Fields without a flag are reset,
so pass every macro you want to keep.

Examples:
  nutri food update 3 "Brown rice" --kcal 123 --protein 2.6 --carbs 25.6 --fat 1`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		f, err := foodFromFlags(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		f.ID = id

		if err := catalog.UpdateFoodItem(cmd.Context(), f); err != nil {
			return fmt.Errorf("failed to update food: %w", err)
		}

		color.Green("✓ Updated %s", f.Name)
		printFood(f)
		return nil
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a food",
	Long: `Delete a food by ID.

Meals that used the food keep their items. Those items no longer count
toward meal, day or week totals.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		f, err := catalog.GetFoodItemByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get food: %w", err)
		}
		if f == nil {
			return fmt.Errorf("food not found: %d", id)
		}

		if err := catalog.DeleteFoodItem(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete food: %w", err)
		}

		color.Yellow("✗ Deleted %s", f.Name)
		return nil
	},
}

func foodFromFlags(name string) (*models.FoodItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("food name is required")
	}

	f := models.NewFoodItem(name, models.Macros{
		Kcal:    foodKcal,
		Protein: foodProtein,
		Carbs:   foodCarbs,
		Fat:     foodFat,
		Fiber:   foodFiber,
		Salt:    foodSalt,
	})
	if foodType != "" {
		ft, ok := models.ParseFoodType(foodType)
		if !ok {
			return nil, fmt.Errorf("unknown food type: %s", foodType)
		}
		f.WithType(ft)
	}
	return f, nil
}

func addMacroFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&foodKcal, "kcal", 0, "energy in kcal per 100 g")
	cmd.Flags().Float64Var(&foodProtein, "protein", 0, "protein in g per 100 g")
	cmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "carbohydrates in g per 100 g")
	cmd.Flags().Float64Var(&foodFat, "fat", 0, "fat in g per 100 g")
	cmd.Flags().Float64Var(&foodFiber, "fiber", 0, "fiber in g per 100 g")
	cmd.Flags().Float64Var(&foodSalt, "salt", 0, "salt in g per 100 g")
	cmd.Flags().StringVarP(&foodType, "type", "t", "", "food type")
}

func init() {
	addMacroFlags(foodAddCmd)
	addMacroFlags(foodUpdateCmd)
	foodListCmd.Flags().StringVarP(&foodType, "type", "t", "", "filter by food type")

	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodShowCmd)
	foodCmd.AddCommand(foodSearchCmd)
	foodCmd.AddCommand(foodUpdateCmd)
	foodCmd.AddCommand(foodDeleteCmd)
	rootCmd.AddCommand(foodCmd)
}
