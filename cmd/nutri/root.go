// ABOUTME: Root Cobra command for nutri CLI.
// ABOUTME: Opens storage and builds the nutrition services via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutri/internal/config"
	"github.com/harperreed/nutri/internal/logging"
	"github.com/harperreed/nutri/internal/nutrition"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/spf13/cobra"
)

var (
	flagBackend  string
	flagDataDir  string
	flagLogLevel string

	cfg     *config.Config
	repo    storage.Repository
	catalog *nutrition.Catalog
	mealLog *nutrition.MealLog
	macros  *nutrition.Aggregator
)

var rootCmd = &cobra.Command{
	Use:   "nutri",
	Short: "Food catalog and meal log with macro totals",
	Long: `Nutri is a CLI tool for logging meals and totalling their macros.

WHAT IT TRACKS:

  Foods   a catalog of foods with kcal, protein, carbs, fat, fiber and salt per 100 g
  Meals   breakfast, lunch, dinner, snack or other, made of foods and gram quantities
  Totals  macros per meal, per day, over the last seven days and this week

QUICK START:

  $ nutri food add Rice --kcal 130 --protein 2.7 --carbs 28 --fat 0.3
  $ nutri food search Ri                       # Find foods by name prefix
  $ nutri meal add lunch --item 1:150          # 150 g of food #1
  $ nutri macros day                           # Today's totals
  $ nutri macros current                       # Energy per day, Monday first

STORAGE:

  Data lives in ~/.local/share/nutri by default. Two backends are available:

    sqlite   nutri.db (default)
    badger   badger/ directory

  Pick one with --backend or NUTRI_BACKEND and move data between them
  with 'nutri migrate --to <backend>'.

MCP INTEGRATION:

  Run 'nutri mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "nutri": { "command": "nutri", "args": ["mcp"] }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		logger := logging.Setup(cfg.GetLogLevel())

		if err := closeStorage(); err != nil {
			return err
		}

		// migrate opens both backends itself.
		if cmd.Name() == "migrate" {
			return nil
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		logger.Debug("storage opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())

		catalog = nutrition.NewCatalog(repo, logger)
		mealLog = nutrition.NewMealLog(repo, logger)
		macros = nutrition.NewAggregator(catalog, mealLog, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStorage()
	},
}

// loadConfig layers the config file, the environment and the global flags.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}

	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func closeStorage() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	if err != nil {
		log.Warn("close storage", "err", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite or badger")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/nutri)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
}
