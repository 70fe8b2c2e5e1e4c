package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"mealhub/pkg/models"
)

// Repo is the ingredient ledger: one row per normalized ingredient name,
// created lazily on first demand, consumption or manual adjustment.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Execer is satisfied by both *sql.DB and *sql.Tx so stock adjustments can run
// inside a caller-owned transaction (meal consumption commits the consumed flag
// and its adjustments together).
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// AdjustStockIn applies a relative stock change on ex. The row is upserted
// from zero if absent and the result is floored at zero: a delta that would
// drive stock negative clamps instead.
func AdjustStockIn(ctx context.Context, ex Execer, rawName string, delta int) error {
	name := Normalize(rawName)
	if name == "" {
		return fmt.Errorf("adjust stock: empty ingredient name")
	}
	display := strings.TrimSpace(rawName)

	_, err := ex.ExecContext(ctx, `
		INSERT INTO ingredients (name, display_name, stock)
		VALUES (?, ?, MAX(0, ?))
		ON CONFLICT(name) DO UPDATE SET
			stock = MAX(0, stock + ?),
			updated_at = CURRENT_TIMESTAMP
	`, name, display, delta, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}

func (r *Repo) AdjustStock(ctx context.Context, rawName string, delta int) (*models.Ingredient, error) {
	if err := AdjustStockIn(ctx, r.DB, rawName, delta); err != nil {
		return nil, err
	}
	return r.Get(ctx, rawName)
}

// SetStock writes an absolute stock value, upserting if absent.
func (r *Repo) SetStock(ctx context.Context, rawName string, value int) (*models.Ingredient, error) {
	name := Normalize(rawName)
	if name == "" {
		return nil, fmt.Errorf("set stock: empty ingredient name")
	}
	if value < 0 {
		value = 0
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO ingredients (name, display_name, stock)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			stock = excluded.stock,
			updated_at = CURRENT_TIMESTAMP
	`, name, strings.TrimSpace(rawName), value)
	if err != nil {
		return nil, fmt.Errorf("set stock: %w", err)
	}
	return r.Get(ctx, rawName)
}

// Pin marks an ingredient as always visible and records its category.
func (r *Repo) Pin(ctx context.Context, rawName, category string) (*models.Ingredient, error) {
	name := Normalize(rawName)
	if name == "" {
		return nil, fmt.Errorf("pin: empty ingredient name")
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO ingredients (name, display_name, category, pinned)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			pinned = 1,
			category = CASE WHEN excluded.category = '' THEN category ELSE excluded.category END,
			updated_at = CURRENT_TIMESTAMP
	`, name, strings.TrimSpace(rawName), category)
	if err != nil {
		return nil, fmt.Errorf("pin: %w", err)
	}
	return r.Get(ctx, rawName)
}

// Unpin clears the pinned flag. It never deletes the row.
func (r *Repo) Unpin(ctx context.Context, rawName string) (*models.Ingredient, error) {
	name := Normalize(rawName)
	_, err := r.DB.ExecContext(ctx, `
		UPDATE ingredients
		SET pinned = 0, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, name)
	if err != nil {
		return nil, fmt.Errorf("unpin: %w", err)
	}
	return r.Get(ctx, rawName)
}

// DeletePinned hard-deletes a row, but only while it is pinned. Returns false
// when no pinned row matched.
func (r *Repo) DeletePinned(ctx context.Context, rawName string) (bool, error) {
	name := Normalize(rawName)
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM ingredients
		WHERE name = ? AND pinned = 1
	`, name)
	if err != nil {
		return false, fmt.Errorf("delete pinned: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// SetNoPrepOverride stores the per-ingredient override; nil reverts to the
// category default.
func (r *Repo) SetNoPrepOverride(ctx context.Context, rawName string, value *bool) (*models.Ingredient, error) {
	name := Normalize(rawName)
	if name == "" {
		return nil, fmt.Errorf("set no-prep: empty ingredient name")
	}

	var stored any
	if value != nil {
		stored = *value
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO ingredients (name, display_name, no_prep_override)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			no_prep_override = excluded.no_prep_override,
			updated_at = CURRENT_TIMESTAMP
	`, name, strings.TrimSpace(rawName), stored)
	if err != nil {
		return nil, fmt.Errorf("set no-prep: %w", err)
	}
	return r.Get(ctx, rawName)
}

func (r *Repo) Get(ctx context.Context, rawName string) (*models.Ingredient, error) {
	name := Normalize(rawName)
	row := r.DB.QueryRowContext(ctx, `
		SELECT name, display_name, stock, category, pinned, no_prep_override
		FROM ingredients
		WHERE name = ?
	`, name)

	ing, err := scanIngredient(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// List returns every ledger row ordered by name.
func (r *Repo) List(ctx context.Context) ([]models.Ingredient, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT name, display_name, stock, category, pinned, no_prep_override
		FROM ingredients
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var out []models.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, *ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows ingredients: %w", err)
	}
	return out, nil
}

func scanIngredient(scan func(dest ...any) error) (*models.Ingredient, error) {
	var (
		ing      models.Ingredient
		pinned   int
		override sql.NullBool
	)
	if err := scan(&ing.Name, &ing.DisplayName, &ing.Stock, &ing.Category, &pinned, &override); err != nil {
		return nil, err
	}
	ing.Pinned = pinned != 0
	if override.Valid {
		v := override.Bool
		ing.NoPrepOverride = &v
	}
	return &ing, nil
}
