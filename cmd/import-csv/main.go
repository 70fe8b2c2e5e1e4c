package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"mealhub/internal/inventory"
	"mealhub/pkg/database"
	"mealhub/pkg/models"
)

func main() {
	var (
		ingredientsIn = flag.String("ingredients", "data/ingredients.csv", "input CSV path for the ingredient ledger")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	n, err := importIngredients(ctx, db, *ingredientsIn)
	if err != nil {
		log.Fatalf("import ingredients failed: %v", err)
	}

	log.Printf("imported %d ingredient(s) from %s", n, *ingredientsIn)
}

func importIngredients(ctx context.Context, db *sql.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO ingredients (name, display_name, stock, category, pinned, no_prep_override)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			display_name = excluded.display_name,
			stock = excluded.stock,
			category = excluded.category,
			pinned = excluded.pinned,
			no_prep_override = excluded.no_prep_override,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(row) == 0 {
			continue
		}

		rawName := valueAt(header, row, "name")
		if rawName == "" {
			continue
		}
		name := inventory.Normalize(rawName)

		display := valueAt(header, row, "display_name")
		if display == "" {
			display = strings.TrimSpace(rawName)
		}

		stock, err := parseInt(valueAt(header, row, "stock"), 0)
		if err != nil {
			return count, fmt.Errorf("parse stock for %s: %w", name, err)
		}
		if stock < 0 {
			stock = 0
		}

		category := valueAt(header, row, "category")
		if !models.ValidCategory(category) {
			return count, fmt.Errorf("invalid category %q for %s", category, name)
		}

		pinned, err := parseInt(valueAt(header, row, "pinned"), 0)
		if err != nil {
			return count, fmt.Errorf("parse pinned for %s: %w", name, err)
		}

		override, err := parseNullBool(valueAt(header, row, "no_prep_override"))
		if err != nil {
			return count, fmt.Errorf("parse no_prep_override for %s: %w", name, err)
		}

		if _, err := stmt.ExecContext(ctx, name, display, stock, category, pinned, override); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func parseNullBool(raw string) (sql.NullBool, error) {
	if raw == "" {
		return sql.NullBool{}, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return sql.NullBool{}, err
	}
	return sql.NullBool{Bool: b, Valid: true}, nil
}
