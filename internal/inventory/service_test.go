package inventory

import (
	"context"
	"testing"
	"time"

	"mealhub/pkg/database"
	"mealhub/pkg/models"
)

// fixedDays serves a canned calendar window, standing in for the calendar repo.
type fixedDays struct {
	days []models.Day
}

func (f *fixedDays) GetDaysBetween(_ context.Context, from, to time.Time) ([]models.Day, error) {
	fromKey := from.Format(models.DateLayout)
	toKey := to.Format(models.DateLayout)

	var out []models.Day
	for _, d := range f.days {
		if d.Date >= fromKey && d.Date <= toKey {
			out = append(out, d)
		}
	}
	return out, nil
}

func date(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayWith(dateKey string, edit func(*models.Day)) models.Day {
	d := models.Day{Date: dateKey, WeekOf: models.WeekOf(date(dateKey)).Format(models.DateLayout)}
	if edit != nil {
		edit(&d)
	}
	return d
}

func findItem(items []Item, name string) *Item {
	for i := range items {
		if items[i].Ingredient == name {
			return &items[i]
		}
	}
	return nil
}

func TestGetInventory_SingleDemandNoStock(t *testing.T) {
	ledger := NewRepo(database.OpenTest(t))
	today := date("2026-03-02")

	svc := NewService(ledger, &fixedDays{days: []models.Day{
		dayWith("2026-03-02", func(d *models.Day) { d.Lunch.Meat = "chicken" }),
	}})

	view, err := svc.GetInventory(context.Background(), 7, today)
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}

	if len(view.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(view.Items))
	}
	it := view.Items[0]
	if it.Ingredient != "Chicken" || it.Needed != 1 || it.Stock != 0 || it.ToMake != 1 {
		t.Errorf("unexpected item: %+v", it)
	}
	if it.Category != "meat" {
		t.Errorf("expected category meat from role, got %q", it.Category)
	}
	if it.NoPrep {
		t.Error("meat is not no-prep by default")
	}
}

func TestGetInventory_CountsAcrossDaysAndMeals(t *testing.T) {
	ledger := NewRepo(database.OpenTest(t))
	ctx := context.Background()
	// Wednesday: the 7-day window runs through Tuesday of the next weekly page.
	today := date("2026-03-04")

	if _, err := ledger.SetStock(ctx, "Apple", 2); err != nil {
		t.Fatalf("SetStock: %v", err)
	}

	svc := NewService(ledger, &fixedDays{days: []models.Day{
		dayWith("2026-03-04", func(d *models.Day) {
			d.Breakfast.Fruit = "apple"
			d.Lunch.Fruit = "Apple "
			d.Dinner.Fruit = " APPLE"
		}),
		// on the following weekly page, still inside the window
		dayWith("2026-03-09", func(d *models.Day) {
			d.Breakfast.Fruit = "apple"
		}),
		// outside the lookahead window
		dayWith("2026-03-20", func(d *models.Day) {
			d.Breakfast.Fruit = "apple"
		}),
	}})

	view, err := svc.GetInventory(ctx, 7, today)
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}

	it := findItem(view.Items, "Apple")
	if it == nil {
		t.Fatal("expected an Apple item")
	}
	if it.Needed != 4 {
		t.Errorf("expected needed 4 (3 on Wednesday + 1 next week), got %d", it.Needed)
	}
	if it.Stock != 2 || it.ToMake != 2 {
		t.Errorf("expected stock 2 / toMake 2, got %d / %d", it.Stock, it.ToMake)
	}
	if it.DisplayName != "apple" {
		t.Errorf("expected first-seen display text, got %q", it.DisplayName)
	}
}

func TestGetInventory_ConsumedMealsDoNotCount(t *testing.T) {
	ledger := NewRepo(database.OpenTest(t))
	today := date("2026-03-02")

	svc := NewService(ledger, &fixedDays{days: []models.Day{
		dayWith("2026-03-02", func(d *models.Day) {
			d.Lunch.Meat = "chicken"
			d.Lunch.Consumed = true
			d.Dinner.Meat = "chicken"
		}),
	}})

	view, err := svc.GetInventory(context.Background(), 3, today)
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}

	it := findItem(view.Items, "Chicken")
	if it == nil {
		t.Fatal("expected a Chicken item")
	}
	if it.Needed != 1 {
		t.Errorf("consumed lunch must not count, got needed %d", it.Needed)
	}
	if view.Lookahead != 3 {
		t.Errorf("expected lookahead echoed, got %d", view.Lookahead)
	}
}

func TestGetInventory_OtherStockAndEmptyCalendar(t *testing.T) {
	ledger := NewRepo(database.OpenTest(t))
	ctx := context.Background()

	if _, err := ledger.SetStock(ctx, "Pear", 3); err != nil {
		t.Fatalf("SetStock: %v", err)
	}
	if _, err := ledger.Pin(ctx, "Yogurt", "yogurt"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	// zero stock, unpinned: invisible
	if _, err := ledger.SetStock(ctx, "Turnip", 0); err != nil {
		t.Fatalf("SetStock: %v", err)
	}

	svc := NewService(ledger, &fixedDays{})
	view, err := svc.GetInventory(ctx, 7, date("2026-03-02"))
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}

	if len(view.Items) != 0 {
		t.Errorf("empty calendar must yield no demand items, got %d", len(view.Items))
	}
	if len(view.OtherStock) != 2 {
		t.Fatalf("expected 2 otherStock rows, got %d", len(view.OtherStock))
	}
	yogurt := findItem(view.OtherStock, "Yogurt")
	if yogurt == nil || !yogurt.Pinned {
		t.Errorf("expected pinned Yogurt in otherStock, got %+v", yogurt)
	}
	if !yogurt.NoPrep {
		t.Error("yogurt category defaults to no-prep")
	}
	if findItem(view.OtherStock, "Turnip") != nil {
		t.Error("zero-stock unpinned row must stay hidden")
	}
}

func TestGetInventory_LedgerCategoryAndOverrideWin(t *testing.T) {
	ledger := NewRepo(database.OpenTest(t))
	ctx := context.Background()

	if _, err := ledger.Pin(ctx, "Rice", "cereal"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	no := false
	if _, err := ledger.SetNoPrepOverride(ctx, "Rice", &no); err != nil {
		t.Fatalf("SetNoPrepOverride: %v", err)
	}

	// demanded via the vegetable role, but the ledger says cereal
	svc := NewService(ledger, &fixedDays{days: []models.Day{
		dayWith("2026-03-02", func(d *models.Day) { d.Lunch.Vegetable = "rice" }),
	}})

	view, err := svc.GetInventory(ctx, 3, date("2026-03-02"))
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}

	it := findItem(view.Items, "Rice")
	if it == nil {
		t.Fatal("expected a Rice item")
	}
	if it.Category != "cereal" {
		t.Errorf("ledger category should win, got %q", it.Category)
	}
	if it.NoPrep {
		t.Error("explicit override false should win over cereal default")
	}
}
