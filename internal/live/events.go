package live

import "time"

const (
	MealConsumeEvent     = "meal.consume"
	MealUnconsumeEvent   = "meal.unconsume"
	DayUpdateEvent       = "day.update"
	InventoryUpdateEvent = "inventory.update"
)

// MealEvent announces a consumed-flag transition.
type MealEvent struct {
	Type string    `json:"type"`
	Date string    `json:"date"`
	Meal string    `json:"meal"`
	At   time.Time `json:"at"`
}

// DayEvent announces edited day fields.
type DayEvent struct {
	Type string    `json:"type"`
	Date string    `json:"date"`
	At   time.Time `json:"at"`
}

// InventoryEvent announces a ledger mutation.
type InventoryEvent struct {
	Type       string    `json:"type"`
	Ingredient string    `json:"ingredient"`
	Stock      int       `json:"stock"`
	At         time.Time `json:"at"`
}
