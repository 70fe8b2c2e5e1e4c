package inventory

import (
	"context"
	"testing"

	"mealhub/pkg/database"
)

func TestRepo_AdjustStockFloorsAtZero(t *testing.T) {
	repo := NewRepo(database.OpenTest(t))
	ctx := context.Background()

	// fresh ledger, stock 0: a -5 delta clamps to 0, not -5
	ing, err := repo.AdjustStock(ctx, "Peas", -5)
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if ing.Stock != 0 {
		t.Errorf("expected stock 0 after underflow, got %d", ing.Stock)
	}

	// floor holds across any sequence of deltas
	deltas := []int{3, -1, -10, 4, -2, -2, -2}
	for _, d := range deltas {
		if ing, err = repo.AdjustStock(ctx, "Peas", d); err != nil {
			t.Fatalf("AdjustStock(%d): %v", d, err)
		}
		if ing.Stock < 0 {
			t.Fatalf("stock went negative (%d) after delta %d", ing.Stock, d)
		}
	}
}

func TestRepo_SetStockUpserts(t *testing.T) {
	repo := NewRepo(database.OpenTest(t))
	ctx := context.Background()

	ing, err := repo.SetStock(ctx, " chicken", 4)
	if err != nil {
		t.Fatalf("SetStock: %v", err)
	}
	if ing.Name != "Chicken" {
		t.Errorf("expected normalized name Chicken, got %q", ing.Name)
	}
	if ing.Stock != 4 {
		t.Errorf("expected stock 4, got %d", ing.Stock)
	}

	// equal-under-normalization spellings hit the same row
	ing, err = repo.AdjustStock(ctx, "CHICKEN ", -1)
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if ing.Stock != 3 {
		t.Errorf("expected stock 3, got %d", ing.Stock)
	}
}

func TestRepo_PinUnpinDelete(t *testing.T) {
	repo := NewRepo(database.OpenTest(t))
	ctx := context.Background()

	ing, err := repo.Pin(ctx, "Banana", "fruit")
	if err != nil {
		t.Fatalf("Pin: %v", err)
	}
	if !ing.Pinned || ing.Category != "fruit" {
		t.Errorf("expected pinned fruit, got %+v", ing)
	}

	ing, err = repo.Unpin(ctx, "Banana")
	if err != nil {
		t.Fatalf("Unpin: %v", err)
	}
	if ing == nil {
		t.Fatal("unpin must not delete the row")
	}
	if ing.Pinned {
		t.Error("expected pinned = false after unpin")
	}

	// deletePinned only removes rows that are currently pinned
	ok, err := repo.DeletePinned(ctx, "Banana")
	if err != nil {
		t.Fatalf("DeletePinned: %v", err)
	}
	if ok {
		t.Error("expected delete of unpinned row to report not found")
	}

	if _, err := repo.Pin(ctx, "Banana", "fruit"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	ok, err = repo.DeletePinned(ctx, "Banana")
	if err != nil {
		t.Fatalf("DeletePinned: %v", err)
	}
	if !ok {
		t.Error("expected pinned row to be deleted")
	}
	if ing, _ := repo.Get(ctx, "Banana"); ing != nil {
		t.Errorf("expected row gone, got %+v", ing)
	}
}

func TestRepo_RepinKeepsCategory(t *testing.T) {
	repo := NewRepo(database.OpenTest(t))
	ctx := context.Background()

	if _, err := repo.Pin(ctx, "Banana", "fruit"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	if _, err := repo.Unpin(ctx, "Banana"); err != nil {
		t.Fatalf("Unpin: %v", err)
	}

	// re-pin without a category keeps the stored one
	ing, err := repo.Pin(ctx, "Banana", "")
	if err != nil {
		t.Fatalf("Pin: %v", err)
	}
	if !ing.Pinned || ing.Category != "fruit" {
		t.Errorf("expected pinned fruit after category-less re-pin, got %+v", ing)
	}

	// an explicit category still overrides
	ing, err = repo.Pin(ctx, "Banana", "vegetable")
	if err != nil {
		t.Fatalf("Pin: %v", err)
	}
	if ing.Category != "vegetable" {
		t.Errorf("expected category vegetable, got %q", ing.Category)
	}
}

func TestRepo_NoPrepOverride(t *testing.T) {
	repo := NewRepo(database.OpenTest(t))
	ctx := context.Background()

	if _, err := repo.Pin(ctx, "Oats", "cereal"); err != nil {
		t.Fatalf("Pin: %v", err)
	}

	ing, err := repo.Get(ctx, "Oats")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ing.NoPrep() {
		t.Error("cereal defaults to no-prep")
	}

	no := false
	ing, err = repo.SetNoPrepOverride(ctx, "Oats", &no)
	if err != nil {
		t.Fatalf("SetNoPrepOverride: %v", err)
	}
	if ing.NoPrep() {
		t.Error("override false must win over the category default")
	}

	// nil reverts to the category default
	ing, err = repo.SetNoPrepOverride(ctx, "Oats", nil)
	if err != nil {
		t.Fatalf("SetNoPrepOverride(nil): %v", err)
	}
	if ing.NoPrepOverride != nil {
		t.Errorf("expected override cleared, got %v", *ing.NoPrepOverride)
	}
	if !ing.NoPrep() {
		t.Error("expected category default after revert")
	}
}
