package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mealhub/pkg/models"
)

// Repo owns the weekly calendar pages: one weeks row per Monday and seven
// days rows per week. Consumed flags live on the day row but are only
// written by the consumption service, never by UpdateDay.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const dayColumns = `
	date, week_of, adult_dinner, adult_note,
	breakfast_cereal, breakfast_fruit, breakfast_yogurt, breakfast_meat, breakfast_vegetable, breakfast_consumed,
	lunch_cereal, lunch_fruit, lunch_yogurt, lunch_meat, lunch_vegetable, lunch_consumed,
	dinner_cereal, dinner_fruit, dinner_yogurt, dinner_meat, dinner_vegetable, dinner_consumed`

func scanDay(scan func(dest ...any) error) (*models.Day, error) {
	var (
		d                      models.Day
		bCons, lCons, dinnCons int
	)
	err := scan(
		&d.Date, &d.WeekOf, &d.AdultDinner, &d.AdultNote,
		&d.Breakfast.Cereal, &d.Breakfast.Fruit, &d.Breakfast.Yogurt, &d.Breakfast.Meat, &d.Breakfast.Vegetable, &bCons,
		&d.Lunch.Cereal, &d.Lunch.Fruit, &d.Lunch.Yogurt, &d.Lunch.Meat, &d.Lunch.Vegetable, &lCons,
		&d.Dinner.Cereal, &d.Dinner.Fruit, &d.Dinner.Yogurt, &d.Dinner.Meat, &d.Dinner.Vegetable, &dinnCons,
	)
	if err != nil {
		return nil, err
	}
	d.Breakfast.Consumed = bCons != 0
	d.Lunch.Consumed = lCons != 0
	d.Dinner.Consumed = dinnCons != 0
	return &d, nil
}

// EnsureWeek creates the week row and its seven day rows if they do not
// exist yet, then returns the full page. weekOf must already be a Monday.
func (r *Repo) EnsureWeek(ctx context.Context, weekOf time.Time) (*models.Week, error) {
	weekKey := weekOf.Format(models.DateLayout)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin ensure week: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO weeks (week_of) VALUES (?)
		ON CONFLICT(week_of) DO NOTHING
	`, weekKey); err != nil {
		return nil, fmt.Errorf("insert week: %w", err)
	}

	for i := 0; i < 7; i++ {
		date := weekOf.AddDate(0, 0, i).Format(models.DateLayout)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO days (date, week_of) VALUES (?, ?)
			ON CONFLICT(date) DO NOTHING
		`, date, weekKey); err != nil {
			return nil, fmt.Errorf("insert day %s: %w", date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ensure week: %w", err)
	}

	return r.GetWeek(ctx, weekOf)
}

// GetWeek returns the page for the Monday weekOf, or nil if it was never created.
func (r *Repo) GetWeek(ctx context.Context, weekOf time.Time) (*models.Week, error) {
	weekKey := weekOf.Format(models.DateLayout)

	var exists int
	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM weeks WHERE week_of = ?
	`, weekKey).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check week: %w", err)
	}
	if exists == 0 {
		return nil, nil
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+dayColumns+`
		FROM days
		WHERE week_of = ?
		ORDER BY date
	`, weekKey)
	if err != nil {
		return nil, fmt.Errorf("list week days: %w", err)
	}
	defer rows.Close()

	week := &models.Week{WeekOf: weekKey}
	for rows.Next() {
		d, err := scanDay(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		week.Days = append(week.Days, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows week days: %w", err)
	}
	return week, nil
}

// GetDay returns one day row, or nil if it does not exist.
func (r *Repo) GetDay(ctx context.Context, date time.Time) (*models.Day, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+dayColumns+`
		FROM days
		WHERE date = ?
	`, date.Format(models.DateLayout))

	d, err := scanDay(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get day: %w", err)
	}
	return d, nil
}

// UpdateDay writes the editable fields of an existing day row: adult dinner,
// note and the fifteen role fields. Consumed flags are left untouched.
// Returns false when the day row does not exist.
func (r *Repo) UpdateDay(ctx context.Context, d models.Day) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE days SET
			adult_dinner = ?, adult_note = ?,
			breakfast_cereal = ?, breakfast_fruit = ?, breakfast_yogurt = ?, breakfast_meat = ?, breakfast_vegetable = ?,
			lunch_cereal = ?, lunch_fruit = ?, lunch_yogurt = ?, lunch_meat = ?, lunch_vegetable = ?,
			dinner_cereal = ?, dinner_fruit = ?, dinner_yogurt = ?, dinner_meat = ?, dinner_vegetable = ?
		WHERE date = ?
	`,
		d.AdultDinner, d.AdultNote,
		d.Breakfast.Cereal, d.Breakfast.Fruit, d.Breakfast.Yogurt, d.Breakfast.Meat, d.Breakfast.Vegetable,
		d.Lunch.Cereal, d.Lunch.Fruit, d.Lunch.Yogurt, d.Lunch.Meat, d.Lunch.Vegetable,
		d.Dinner.Cereal, d.Dinner.Fruit, d.Dinner.Yogurt, d.Dinner.Meat, d.Dinner.Vegetable,
		d.Date,
	)
	if err != nil {
		return false, fmt.Errorf("update day: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListUnconsumedBefore returns days strictly before the given date that still
// have at least one meal with consumed = 0, oldest first. The reconciler
// decides per meal whether anything was actually planned.
func (r *Repo) ListUnconsumedBefore(ctx context.Context, before time.Time) ([]models.Day, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+dayColumns+`
		FROM days
		WHERE date < ?
		  AND (breakfast_consumed = 0 OR lunch_consumed = 0 OR dinner_consumed = 0)
		ORDER BY date
	`, before.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("list unconsumed days: %w", err)
	}
	defer rows.Close()

	var out []models.Day
	for rows.Next() {
		d, err := scanDay(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows unconsumed days: %w", err)
	}
	return out, nil
}

// GetDaysBetween batch-fetches all day rows with from <= date <= to, in
// ascending date order, crossing week-page boundaries. Days that were never
// created are simply absent.
func (r *Repo) GetDaysBetween(ctx context.Context, from, to time.Time) ([]models.Day, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+dayColumns+`
		FROM days
		WHERE date >= ? AND date <= ?
		ORDER BY date
	`, from.Format(models.DateLayout), to.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("list days between: %w", err)
	}
	defer rows.Close()

	var out []models.Day
	for rows.Next() {
		d, err := scanDay(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows days between: %w", err)
	}
	return out, nil
}
