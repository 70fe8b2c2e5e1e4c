package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mealhub/pkg/database"
)

func main() {
	var (
		ingredientsOut = flag.String("ingredients", "data/ingredients.csv", "output CSV path for the ingredient ledger")
		daysOut        = flag.String("days", "data/days.csv", "output CSV path for calendar days")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportIngredients(ctx, db, *ingredientsOut); err != nil {
		log.Fatalf("export ingredients failed: %v", err)
	}
	if err := exportDays(ctx, db, *daysOut); err != nil {
		log.Fatalf("export days failed: %v", err)
	}

	log.Printf("exported ledger to %s and calendar to %s", *ingredientsOut, *daysOut)
}

func exportIngredients(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "display_name", "stock", "category", "pinned", "no_prep_override"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT name, display_name, stock, category, pinned, no_prep_override
		FROM ingredients
		ORDER BY name
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name     string
			display  string
			stock    int
			category string
			pinned   int
			override sql.NullBool
		)
		if err := rows.Scan(&name, &display, &stock, &category, &pinned, &override); err != nil {
			return err
		}

		noPrep := ""
		if override.Valid {
			noPrep = strconv.FormatBool(override.Bool)
		}

		if err := w.Write([]string{
			name, display, strconv.Itoa(stock), category, strconv.Itoa(pinned), noPrep,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportDays(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	cols := []string{
		"date", "week_of", "adult_dinner", "adult_note",
		"breakfast_cereal", "breakfast_fruit", "breakfast_yogurt", "breakfast_meat", "breakfast_vegetable", "breakfast_consumed",
		"lunch_cereal", "lunch_fruit", "lunch_yogurt", "lunch_meat", "lunch_vegetable", "lunch_consumed",
		"dinner_cereal", "dinner_fruit", "dinner_yogurt", "dinner_meat", "dinner_vegetable", "dinner_consumed",
	}

	w := csv.NewWriter(f)
	if err := w.Write(cols); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT date, week_of, adult_dinner, adult_note,
			breakfast_cereal, breakfast_fruit, breakfast_yogurt, breakfast_meat, breakfast_vegetable, breakfast_consumed,
			lunch_cereal, lunch_fruit, lunch_yogurt, lunch_meat, lunch_vegetable, lunch_consumed,
			dinner_cereal, dinner_fruit, dinner_yogurt, dinner_meat, dinner_vegetable, dinner_consumed
		FROM days
		ORDER BY date
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}

		record := make([]string, len(cols))
		for i, v := range vals {
			switch t := v.(type) {
			case string:
				record[i] = t
			case int64:
				record[i] = strconv.FormatInt(t, 10)
			case []byte:
				record[i] = string(t)
			case nil:
				record[i] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
