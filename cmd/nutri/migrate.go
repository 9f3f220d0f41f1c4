// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Moves foods and meals from the configured backend to another one.
package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/config"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate --to <backend>",
	Short: "Copy data to another storage backend",
	Long: `Copy every food and meal from the current backend to another one.

IDs are preserved, so meals keep pointing at the same foods. The
destination must be empty. The source is left untouched; switch over
with --backend, NUTRI_BACKEND or "backend" in ~/.config/nutri/config.json.

BACKENDS:

  sqlite   <data dir>/nutri.db
  badger   <data dir>/badger/

USAGE:

  nutri migrate --to badger --dry-run   # Show what would be copied
  nutri migrate --to badger             # Copy sqlite data to badger
  nutri --backend badger migrate --to sqlite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		from := cfg.GetBackend()

		dst := (&config.Config{Backend: migrateTo}).GetBackend()
		if migrateTo == "" {
			return fmt.Errorf("--to is required (one of sqlite, badger)")
		}
		if dst == from {
			return fmt.Errorf("source and destination are both %s", from)
		}

		src, err := cfg.OpenBackend(from)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", from, err)
		}
		defer closeRepo(src, from)

		if migrateDryRun {
			data, err := storage.GetAllData(ctx, src)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", from, err)
			}
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Printf("Would copy %s foods and %s meals from %s to %s\n",
				humanize.Comma(int64(len(data.Foods))), humanize.Comma(int64(len(data.Meals))), from, dst)
			return nil
		}

		target, err := cfg.OpenBackend(dst)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", dst, err)
		}
		defer closeRepo(target, dst)

		hasData, err := storage.HasData(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", dst, err)
		}
		if hasData {
			path, _ := cfg.StoragePath(dst)
			return fmt.Errorf("destination %s already has data (%s)", dst, path)
		}

		summary, err := storage.MigrateData(ctx, src, target)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s to %s", from, dst)
		fmt.Printf("  %s foods, %s meals\n",
			humanize.Comma(int64(summary.Foods)), humanize.Comma(int64(summary.Meals)))
		return nil
	},
}

func closeRepo(r storage.Repository, backend string) {
	if err := r.Close(); err != nil {
		log.Warn("close storage", "backend", backend, "err", err)
	}
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite or badger")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
