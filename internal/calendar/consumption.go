package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mealhub/internal/inventory"
	"mealhub/pkg/models"
)

// Service runs the consumption state machine. Each meal on a day is either
// Planned or Consumed; consuming decrements ledger stock once per non-empty
// role field and unconsuming gives it back. Flag write and stock adjustments
// share one transaction so they can never diverge.
type Service struct {
	DB   *sql.DB
	Repo *Repo
}

func NewService(db *sql.DB) *Service {
	return &Service{DB: db, Repo: NewRepo(db)}
}

// ConsumeMeal flips (date, meal) to Consumed and decrements stock for every
// non-empty role. A no-op (returning the unchanged day) when already consumed,
// so repeated calls never double-adjust. Returns nil when the day does not exist.
func (s *Service) ConsumeMeal(ctx context.Context, date time.Time, meal models.MealType) (*models.Day, error) {
	return s.setConsumed(ctx, date, meal, true)
}

// UnconsumeMeal is the inverse transition: flag back to Planned, stock +1 per
// non-empty role. Idempotent and nil on a missing day, same as ConsumeMeal.
func (s *Service) UnconsumeMeal(ctx context.Context, date time.Time, meal models.MealType) (*models.Day, error) {
	return s.setConsumed(ctx, date, meal, false)
}

func consumedColumn(meal models.MealType) string {
	switch meal {
	case models.MealBreakfast:
		return "breakfast_consumed"
	case models.MealLunch:
		return "lunch_consumed"
	case models.MealDinner:
		return "dinner_consumed"
	}
	return ""
}

func (s *Service) setConsumed(ctx context.Context, date time.Time, meal models.MealType, target bool) (*models.Day, error) {
	col := consumedColumn(meal)
	if col == "" {
		return nil, fmt.Errorf("set consumed: unknown meal %q", meal)
	}
	dateKey := date.Format(models.DateLayout)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin consume: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+dayColumns+`
		FROM days
		WHERE date = ?
	`, dateKey)
	day, err := scanDay(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load day for consume: %w", err)
	}

	m := day.MealOf(meal)
	if m.Consumed == target {
		// already in the target state
		return day, nil
	}

	flag := 0
	delta := 1
	if target {
		flag = 1
		delta = -1
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE days SET `+col+` = ? WHERE date = ?
	`, flag, dateKey); err != nil {
		return nil, fmt.Errorf("update consumed flag: %w", err)
	}

	for _, role := range models.Roles {
		raw := strings.TrimSpace(m.Field(role))
		if raw == "" {
			continue
		}
		if err := inventory.AdjustStockIn(ctx, tx, raw, delta); err != nil {
			return nil, fmt.Errorf("consume %s %s: %w", meal, role, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit consume: %w", err)
	}

	m.Consumed = target
	return day, nil
}
