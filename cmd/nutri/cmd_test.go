// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against temp data directories on both backends.
package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date and time with space",
			input: "2025-01-31 08:30",
			want:  time.Date(2025, 1, 31, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "date and time with T",
			input: "2025-01-31T08:30",
			want:  time.Date(2025, 1, 31, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2025-01-31",
			want:  time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339",
			input: "2025-01-31T08:30:00Z",
			want:  time.Date(2025, 1, 31, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 with offset converts to UTC",
			input: "2025-01-31T08:30:00+05:00",
			want:  time.Date(2025, 1, 31, 3, 30, 0, 0, time.UTC),
		},
		{
			name:    "invalid format",
			input:   "31-01-2025",
			wantErr: true,
		},
		{
			name:    "invalid random string",
			input:   "not a date",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseTime(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("parseTime(%q) expected error, got nil", tt.input)
				}
				return
			}

			if err != nil {
				t.Fatalf("parseTime(%q) unexpected error: %v", tt.input, err)
			}
			if !result.Equal(tt.want) || result.Location() != time.UTC {
				t.Errorf("parseTime(%q) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "7", want: 7},
		{input: "#12", want: 12},
		{input: "0", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseItem(t *testing.T) {
	tests := []struct {
		input   string
		wantID  int64
		wantQty float64
		wantErr bool
	}{
		{input: "1:150", wantID: 1, wantQty: 150},
		{input: "4:87.5", wantID: 4, wantQty: 87.5},
		{input: "2:100g", wantID: 2, wantQty: 100},
		{input: "1-150", wantErr: true},
		{input: "x:150", wantErr: true},
		{input: "1:lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, qty, err := parseItem(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantQty, qty)
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string no truncation",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "needs truncation",
			input:  "hello world this is a long string",
			maxLen: 10,
			want:   "hello w...",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
		{
			name:   "very short maxLen",
			input:  "hello",
			maxLen: 3,
			want:   "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{
			name:   "needs padding",
			input:  "hi",
			length: 5,
			want:   "hi   ",
		},
		{
			name:   "exact length",
			input:  "hello",
			length: 5,
			want:   "hello",
		},
		{
			name:   "longer than length",
			input:  "hello world",
			length: 5,
			want:   "hello world",
		},
		{
			name:   "empty string",
			input:  "",
			length: 5,
			want:   "     ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padRight(tt.input, tt.length)
			if got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "195 kcal", kcal(195))
	assert.Equal(t, "1,235 kcal", kcal(1234.6))
	assert.Equal(t, "4.05 g", grams(4.05))
	assert.Equal(t, "150 g", grams(150))
	assert.Equal(t, "195 kcal  P 4.05 g  C 42 g  F 0.45 g  fiber 0.6 g  salt 0 g",
		formatMacros(models.Macros{Kcal: 195, Protein: 4.05, Carbs: 42, Fat: 0.45, Fiber: 0.6}))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "█████     ", bar(50, 100, 10))
	assert.Equal(t, "████", bar(100, 100, 4))
	assert.Equal(t, "    ", bar(0, 0, 4))
	assert.Equal(t, "    ", bar(-5, 10, 4))
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "nutri" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "nutri")
	}

	for _, name := range []string{"backend", "data-dir", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent string
		want   []string
	}{
		{"food", []string{"add", "delete", "list", "search", "show", "update"}},
		{"meal", []string{"add", "delete", "list", "show", "update"}},
		{"macros", []string{"current", "day", "meal", "week"}},
	}

	for _, tt := range tests {
		t.Run(tt.parent, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.parent})
			require.NoError(t, err)

			var names []string
			for _, sub := range cmd.Commands() {
				names = append(names, sub.Name())
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}

	for _, name := range []string{"export", "import", "migrate", "mcp"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestMCPCmdHelp(t *testing.T) {
	for _, want := range []string{
		"--backend", "NUTRI_DATA_DIR",
		"daily_macros", "current_week",
		"nutri://today", "nutri://week", "nutri://catalog",
	} {
		assert.Contains(t, mcpCmd.Long, want)
	}
}

func TestMealFlags(t *testing.T) {
	for _, name := range []string{"at", "item", "notes"} {
		assert.NotNil(t, mealAddCmd.Flags().Lookup(name), "meal add --%s", name)
		assert.NotNil(t, mealUpdateCmd.Flags().Lookup(name), "meal update --%s", name)
	}
	assert.NotNil(t, mealListCmd.Flags().Lookup("type"))
	assert.NotNil(t, mealListCmd.Flags().Lookup("date"))
}

func TestExportCmdValidArgs(t *testing.T) {
	assert.ElementsMatch(t, []string{"json", "yaml", "markdown"}, exportCmd.ValidArgs)
}

// resetFlags clears flag variables left over from earlier Execute calls.
func resetFlags() {
	flagBackend, flagDataDir, flagLogLevel = "", "", ""
	foodKcal, foodProtein, foodCarbs, foodFat, foodFiber, foodSalt = 0, 0, 0, 0, 0, 0
	foodType = ""
	mealAt, mealNotes, mealType, mealDate = "", "", "", ""
	mealItems = nil
	exportOutput, exportSince = "", ""
	migrateTo, migrateDryRun = "", false
}

// setupTestCLI returns a fresh data directory and isolates the config file.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	color.NoColor = true
	resetFlags()

	dataDir := t.TempDir()
	t.Cleanup(func() {
		_ = closeStorage()
		resetFlags()
	})
	return dataDir
}

// run executes the CLI against dataDir and returns what it printed to stdout.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	rootCmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w

	execErr := rootCmd.Execute()

	os.Stdout = stdout
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), execErr
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := run(t, dataDir, args...)
	require.NoError(t, err, "nutri %s", strings.Join(args, " "))
	return out
}

// openStore opens the sqlite store under dataDir once the CLI has released it.
func openStore(t *testing.T, dataDir string) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(dataDir, "nutri.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedRice(t *testing.T, dataDir string) {
	t.Helper()
	mustRun(t, dataDir, "food", "add", "Rice",
		"--kcal", "130", "--protein", "2.7", "--carbs", "28",
		"--fat", "0.3", "--fiber", "0.4", "--salt", "0.01", "--type", "other")
}

func TestFoodAddCmd(t *testing.T) {
	dataDir := setupTestCLI(t)

	seedRice(t, dataDir)
	mustRun(t, dataDir, "food", "add", "Green", "tea", "--type", "Beverage")

	foods, err := openStore(t, dataDir).ListFoods(context.Background())
	require.NoError(t, err)
	require.Len(t, foods, 2)

	assert.Equal(t, "Rice", foods[0].Name)
	assert.Equal(t, models.Macros{Kcal: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Fiber: 0.4, Salt: 0.01}, foods[0].Macros)
	require.NotNil(t, foods[0].Type)
	assert.Equal(t, models.FoodOther, *foods[0].Type)

	assert.Equal(t, "Green tea", foods[1].Name)
	require.NotNil(t, foods[1].Type)
	assert.Equal(t, models.FoodBeverage, *foods[1].Type)
}

func TestFoodAddCmdErrors(t *testing.T) {
	dataDir := setupTestCLI(t)

	_, err := run(t, dataDir, "food", "add", "Rock", "--type", "mineral")
	assert.ErrorContains(t, err, "unknown food type")

	_, err = run(t, dataDir, "food", "add", " ")
	assert.ErrorContains(t, err, "name is required")

	_, err = run(t, dataDir, "food", "add", "Rice", "--kcal", "lots")
	assert.Error(t, err)
}

func TestFoodListAndSearchCmd(t *testing.T) {
	dataDir := setupTestCLI(t)

	for _, name := range []string{"Banana", "Apricot", "apple", "Apple"} {
		mustRun(t, dataDir, "food", "add", name, "--type", "fruit")
	}
	mustRun(t, dataDir, "food", "add", "Rice")

	out := mustRun(t, dataDir, "food", "list")
	assert.Contains(t, out, "Rice")
	assert.Contains(t, out, "Banana")

	out = mustRun(t, dataDir, "food", "list", "--type", "fruit")
	assert.NotContains(t, out, "Rice")
	assert.Contains(t, out, "Banana")

	out = mustRun(t, dataDir, "food", "search", "Ap")
	assert.Contains(t, out, "Apple")
	assert.Contains(t, out, "Apricot")
	assert.NotContains(t, out, "apple")
	assert.NotContains(t, out, "Banana")

	out = mustRun(t, dataDir, "food", "search", "Zz")
	assert.Contains(t, out, "No foods found.")
}

func TestFoodShowUpdateDeleteCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedRice(t, dataDir)

	out := mustRun(t, dataDir, "food", "show", "1")
	assert.Contains(t, out, "Rice")
	assert.Contains(t, out, "130 kcal")

	mustRun(t, dataDir, "food", "update", "1", "Brown", "rice", "--kcal", "123")
	f, err := openStore(t, dataDir).GetFood(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "Brown rice", f.Name)
	assert.Equal(t, 123.0, f.Macros.Kcal)
	assert.Nil(t, f.Type, "update replaces the whole food")

	mustRun(t, dataDir, "food", "delete", "1")
	_, err = run(t, dataDir, "food", "delete", "1")
	assert.ErrorContains(t, err, "food not found: 1")

	_, err = run(t, dataDir, "food", "show", "1")
	assert.ErrorContains(t, err, "food not found: 1")
}

func TestMealAddCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedRice(t, dataDir)

	out := mustRun(t, dataDir, "meal", "add", "lunch",
		"--item", "1:150", "--at", "2025-07-02 12:30", "--notes", "with curry")
	assert.Contains(t, out, "195 kcal")

	meals, err := openStore(t, dataDir).ListMeals(context.Background())
	require.NoError(t, err)
	require.Len(t, meals, 1)

	m := meals[0]
	assert.Equal(t, models.MealLunch, m.MealType)
	assert.Equal(t, time.Date(2025, 7, 2, 12, 30, 0, 0, time.UTC), m.Datetime)
	assert.Equal(t, []models.MealItem{{FoodID: 1, QuantityGrams: 150}}, m.Items)
	require.NotNil(t, m.Notes)
	assert.Equal(t, "with curry", *m.Notes)
}

func TestMealAddCmdErrors(t *testing.T) {
	dataDir := setupTestCLI(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown type", []string{"meal", "add", "brunch"}, "unknown meal type"},
		{"bad timestamp", []string{"meal", "add", "lunch", "--at", "yesterday"}, "invalid timestamp"},
		{"bad item", []string{"meal", "add", "lunch", "--item", "1-150"}, "invalid item"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, dataDir, tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestMealListCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedRice(t, dataDir)

	mustRun(t, dataDir, "meal", "add", "breakfast", "--at", "2025-07-02 08:00", "--notes", "oats")
	mustRun(t, dataDir, "meal", "add", "lunch", "--at", "2025-07-02 12:00", "--item", "1:150", "--notes", "rice bowl")
	mustRun(t, dataDir, "meal", "add", "lunch", "--at", "2025-07-03 12:00", "--notes", "leftovers")

	out := mustRun(t, dataDir, "meal", "list")
	assert.Contains(t, out, "oats")
	assert.Contains(t, out, "leftovers")

	out = mustRun(t, dataDir, "meal", "list", "--type", "lunch")
	assert.NotContains(t, out, "oats")
	assert.Contains(t, out, "rice bowl")
	assert.Contains(t, out, "leftovers")

	out = mustRun(t, dataDir, "meal", "list", "--date", "2025-07-02")
	assert.Contains(t, out, "oats")
	assert.NotContains(t, out, "leftovers")

	out = mustRun(t, dataDir, "meal", "list", "--date", "2025-07-02", "--type", "lunch")
	assert.Contains(t, out, "rice bowl")
	assert.NotContains(t, out, "oats")

	out = mustRun(t, dataDir, "meal", "list", "--date", "2024")
	assert.Contains(t, out, "No meals found.")

	_, err := run(t, dataDir, "meal", "list", "--type", "brunch")
	assert.ErrorContains(t, err, "unknown meal type")
}

func TestMealShowUpdateDeleteCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedRice(t, dataDir)
	mustRun(t, dataDir, "food", "add", "Apple", "--kcal", "52")
	mustRun(t, dataDir, "meal", "add", "lunch", "--at", "2025-07-02 12:00", "--item", "1:150", "--item", "2:100")

	out := mustRun(t, dataDir, "meal", "show", "1")
	assert.Contains(t, out, "Rice")
	assert.Contains(t, out, "Apple")
	assert.Contains(t, out, "247 kcal")

	mustRun(t, dataDir, "food", "delete", "2")
	out = mustRun(t, dataDir, "meal", "show", "1")
	assert.Contains(t, out, "#2 (deleted)")
	assert.Contains(t, out, "Total: 195 kcal")

	mustRun(t, dataDir, "meal", "update", "1", "dinner", "--at", "2025-07-02 19:00", "--item", "1:100")
	m, err := openStore(t, dataDir).GetMeal(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, models.MealDinner, m.MealType)
	assert.Equal(t, []models.MealItem{{FoodID: 1, QuantityGrams: 100}}, m.Items)

	mustRun(t, dataDir, "meal", "delete", "1")
	_, err = run(t, dataDir, "meal", "delete", "1")
	assert.ErrorContains(t, err, "meal not found: 1")
	_, err = run(t, dataDir, "meal", "show", "1")
	assert.ErrorContains(t, err, "meal not found: 1")
}

func TestMacrosCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedRice(t, dataDir)
	mustRun(t, dataDir, "meal", "add", "lunch", "--at", "2025-07-02 12:00", "--item", "1:100")
	mustRun(t, dataDir, "meal", "add", "dinner", "--at", "2025-07-02 19:00", "--item", "1:50")
	mustRun(t, dataDir, "meal", "add", "lunch", "--at", "2025-06-30 12:00", "--item", "1:100")

	out := mustRun(t, dataDir, "macros", "meal", "1")
	assert.Contains(t, out, "130 kcal")

	out = mustRun(t, dataDir, "macros", "day", "2025-07-02")
	assert.Contains(t, out, "2025-07-02")
	assert.Contains(t, out, "Total: 195 kcal")

	out = mustRun(t, dataDir, "macros", "day", "2025-07-01")
	assert.Contains(t, out, "No meals logged.")

	out = mustRun(t, dataDir, "macros", "week", "2025-07-02")
	assert.Contains(t, out, "2025-06-26 to 2025-07-02")
	assert.Contains(t, out, "Total: 325 kcal")

	out = mustRun(t, dataDir, "macros", "current")
	assert.Contains(t, out, "Total:")
	assert.Equal(t, 8, strings.Count(out, "\n"))

	_, err := run(t, dataDir, "macros", "day", "July 2")
	assert.Error(t, err)
	_, err = run(t, dataDir, "macros", "week", "July 2")
	assert.ErrorContains(t, err, "invalid date format")
	_, err = run(t, dataDir, "macros", "meal", "42")
	assert.ErrorContains(t, err, "meal not found: 42")
}

func TestExportCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedRice(t, dataDir)
	mustRun(t, dataDir, "meal", "add", "lunch", "--at", "2025-07-02 12:00", "--item", "1:150")

	out := mustRun(t, dataDir, "export", "json")
	assert.Contains(t, out, `"tool": "nutri"`)
	assert.Contains(t, out, `"name": "Rice"`)

	out = mustRun(t, dataDir, "export", "yaml")
	assert.Contains(t, out, "per_100g")
	assert.Contains(t, out, "2025-07-02")

	out = mustRun(t, dataDir, "export", "markdown")
	assert.Contains(t, out, "## Foods")
	assert.Contains(t, out, "**Total:** 195 kcal")

	out = mustRun(t, dataDir, "export", "markdown", "--since", "2025-08-01")
	assert.NotContains(t, out, "**Total:**")

	_, err := run(t, dataDir, "export", "markdown", "--since", "invalid-date")
	assert.ErrorContains(t, err, "invalid date format")

	_, err = run(t, dataDir, "export", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestExportToFileAndImport(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedRice(t, dataDir)
	mustRun(t, dataDir, "meal", "add", "lunch", "--at", "2025-07-02 12:00", "--item", "1:150")

	backup := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, dataDir, "export", "json", "-o", backup)
	_, err := os.Stat(backup)
	require.NoError(t, err)

	restored := t.TempDir()
	mustRun(t, restored, "import", backup)

	store := openStore(t, restored)
	foods, err := store.ListFoods(context.Background())
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, int64(1), foods[0].ID)

	meals, err := store.ListMeals(context.Background())
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, []models.MealItem{{FoodID: 1, QuantityGrams: 150}}, meals[0].Items)
}

func TestImportCmdErrors(t *testing.T) {
	dataDir := setupTestCLI(t)

	_, err := run(t, dataDir, "import", "/nonexistent/file.json")
	assert.ErrorContains(t, err, "failed to read file")

	bad := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(bad, []byte("not valid json"), 0644))
	_, err = run(t, dataDir, "import", bad)
	assert.ErrorContains(t, err, "import failed")
}

func TestImportCmdWithoutIDs(t *testing.T) {
	dataDir := setupTestCLI(t)

	file := filepath.Join(t.TempDir(), "import.json")
	jsonData := `{
		"version": "1.0",
		"exported_at": "2025-07-02T12:00:00Z",
		"tool": "nutri",
		"foods": [{"name": "Apple", "macros": {"kcal": 52}}],
		"meals": []
	}`
	require.NoError(t, os.WriteFile(file, []byte(jsonData), 0644))

	mustRun(t, dataDir, "import", file)

	foods, err := openStore(t, dataDir).ListFoods(context.Background())
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Apple", foods[0].Name)
	assert.NotZero(t, foods[0].ID)
}

func TestBackendFlag(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, dataDir, "--backend", "badger", "food", "add", "Rice", "--kcal", "130")

	badgerDir := filepath.Join(dataDir, "badger")
	_, err := os.Stat(badgerDir)
	require.NoError(t, err)

	out := mustRun(t, dataDir, "--backend", "badger", "food", "list")
	assert.Contains(t, out, "Rice")

	out = mustRun(t, dataDir, "food", "list")
	assert.Contains(t, out, "No foods found.")

	_, err = run(t, dataDir, "--backend", "postgres", "food", "list")
	assert.ErrorContains(t, err, "unknown backend")
}

func TestMigrateCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	seedRice(t, dataDir)
	mustRun(t, dataDir, "meal", "add", "lunch", "--at", "2025-07-02 12:00", "--item", "1:150")

	out := mustRun(t, dataDir, "migrate", "--to", "badger", "--dry-run")
	assert.Contains(t, out, "Would copy 1 foods and 1 meals from sqlite to badger")

	out = mustRun(t, dataDir, "migrate", "--to", "badger")
	assert.Contains(t, out, "1 foods, 1 meals")

	out = mustRun(t, dataDir, "--backend", "badger", "macros", "day", "2025-07-02")
	assert.Contains(t, out, "Total: 195 kcal")

	_, err := run(t, dataDir, "migrate", "--to", "badger")
	assert.ErrorContains(t, err, "already has data")
}

func TestMigrateCmdErrors(t *testing.T) {
	dataDir := setupTestCLI(t)

	_, err := run(t, dataDir, "migrate")
	assert.ErrorContains(t, err, "--to is required")

	_, err = run(t, dataDir, "migrate", "--to", "sqlite")
	assert.ErrorContains(t, err, "both sqlite")

	_, err = run(t, dataDir, "migrate", "--to", "postgres")
	assert.ErrorContains(t, err, "unknown backend")
}
