// ABOUTME: CLI command that serves the food catalog and meal log over MCP.
// ABOUTME: Uses the storage backend chosen by config, env or flags; stdio transport.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutri/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve foods, meals and macro totals over MCP (stdio)",
	Long: `Serve the nutri catalog, meal log and macro totals to an MCP client.

The server speaks MCP on stdin/stdout, so logs go to stderr only. It opens
the same store the other commands use; pick it with --backend/--data-dir,
NUTRI_BACKEND/NUTRI_DATA_DIR or the config file:

  nutri --backend badger --data-dir ~/nutri-data mcp

Client entry (e.g. claude_desktop_config.json):

  {"mcpServers": {"nutri": {"command": "nutri", "args": ["mcp"]}}}

Foods:   add_food, list_foods, search_foods, get_food, update_food, delete_food
Meals:   add_meal, list_meals, get_meal, update_meal, delete_meal
Totals:  meal_macros, daily_macros (YYYY-MM-DD), weekly_macros (7 days
         ending on a date), current_week (kcal per day, Monday first)

Meal timestamps are stored in UTC and day totals use UTC days.

Resources: nutri://today, nutri://week, nutri://catalog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info("mcp server starting", "backend", cfg.GetBackend())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
