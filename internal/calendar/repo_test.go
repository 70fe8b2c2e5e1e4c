package calendar

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"mealhub/pkg/database"
	"mealhub/pkg/models"
)

func monday(t *testing.T) time.Time {
	t.Helper()
	return models.WeekOf(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
}

func seedDay(t *testing.T, repo *Repo, date time.Time, edit func(*models.Day)) {
	t.Helper()
	ctx := context.Background()

	if _, err := repo.EnsureWeek(ctx, models.WeekOf(date)); err != nil {
		t.Fatalf("EnsureWeek: %v", err)
	}
	day, err := repo.GetDay(ctx, date)
	if err != nil || day == nil {
		t.Fatalf("GetDay after EnsureWeek: day=%v err=%v", day, err)
	}
	if edit != nil {
		edit(day)
	}
	found, err := repo.UpdateDay(ctx, *day)
	if err != nil || !found {
		t.Fatalf("UpdateDay: found=%v err=%v", found, err)
	}
}

func TestRepo_EnsureWeekCreatesSevenDays(t *testing.T) {
	repo := NewRepo(database.OpenTest(t))
	ctx := context.Background()
	mon := monday(t)

	week, err := repo.EnsureWeek(ctx, mon)
	if err != nil {
		t.Fatalf("EnsureWeek: %v", err)
	}
	if len(week.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week.Days))
	}
	if week.Days[0].Date != mon.Format(models.DateLayout) {
		t.Errorf("first day should be the Monday, got %s", week.Days[0].Date)
	}

	// second call is a no-op, not a duplicate
	week, err = repo.EnsureWeek(ctx, mon)
	if err != nil {
		t.Fatalf("EnsureWeek again: %v", err)
	}
	if len(week.Days) != 7 {
		t.Errorf("expected 7 days after re-ensure, got %d", len(week.Days))
	}
}

func TestRepo_GetWeekMissing(t *testing.T) {
	repo := NewRepo(database.OpenTest(t))

	week, err := repo.GetWeek(context.Background(), monday(t))
	if err != nil {
		t.Fatalf("GetWeek: %v", err)
	}
	if week != nil {
		t.Errorf("expected nil for a never-created week, got %+v", week)
	}
}

func TestRepo_UpdateDayPreservesConsumedFlags(t *testing.T) {
	db := database.OpenTest(t)
	repo := NewRepo(db)
	ctx := context.Background()
	mon := monday(t)

	seedDay(t, repo, mon, func(d *models.Day) {
		d.Lunch.Meat = "chicken"
	})

	// flip the flag behind the repo's back, as the consumption service does
	if err := setConsumedRaw(db, mon, "lunch_consumed"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	seedDay(t, repo, mon, func(d *models.Day) {
		d.Lunch.Meat = "turkey"
		d.AdultDinner = "stew"
	})

	day, err := repo.GetDay(ctx, mon)
	if err != nil {
		t.Fatalf("GetDay: %v", err)
	}
	if day.Lunch.Meat != "turkey" || day.AdultDinner != "stew" {
		t.Errorf("edits lost: %+v", day)
	}
	if !day.Lunch.Consumed {
		t.Error("UpdateDay must not clear consumed flags")
	}
}

func setConsumedRaw(db *sql.DB, date time.Time, col string) error {
	_, err := db.Exec(`UPDATE days SET `+col+` = 1 WHERE date = ?`, date.Format(models.DateLayout))
	return err
}

func TestRepo_GetDaysBetweenSpansWeeks(t *testing.T) {
	repo := NewRepo(database.OpenTest(t))
	ctx := context.Background()
	mon := monday(t)
	nextMon := mon.AddDate(0, 0, 7)

	seedDay(t, repo, mon.AddDate(0, 0, 5), func(d *models.Day) { d.Lunch.Fruit = "apple" })
	seedDay(t, repo, nextMon.AddDate(0, 0, 1), func(d *models.Day) { d.Lunch.Fruit = "pear" })

	days, err := repo.GetDaysBetween(ctx, mon.AddDate(0, 0, 5), nextMon.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("GetDaysBetween: %v", err)
	}

	// Sat+Sun of week one, Mon+Tue+Wed of week two: both endpoints inclusive
	if len(days) != 5 {
		t.Fatalf("expected 5 days across both pages, got %d", len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i].Date <= days[i-1].Date {
			t.Fatalf("days out of order: %s after %s", days[i].Date, days[i-1].Date)
		}
	}
}
