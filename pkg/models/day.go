package models

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Day is one calendar day on a weekly page.
type Day struct {
	Date        string `json:"date"`    // YYYY-MM-DD
	WeekOf      string `json:"week_of"` // Monday of the owning week
	AdultDinner string `json:"adult_dinner"`
	AdultNote   string `json:"adult_note"`
	Breakfast   Meal   `json:"baby_breakfast"`
	Lunch       Meal   `json:"baby_lunch"`
	Dinner      Meal   `json:"baby_dinner"`
}

// MealOf returns a pointer into the day for the given meal type.
func (d *Day) MealOf(mt MealType) *Meal {
	switch mt {
	case MealBreakfast:
		return &d.Breakfast
	case MealLunch:
		return &d.Lunch
	case MealDinner:
		return &d.Dinner
	}
	return nil
}

// Week is one weekly calendar page: seven days starting on a Monday.
type Week struct {
	WeekOf string `json:"week_of"`
	Days   []Day  `json:"days"`
}

// WeekOf returns the Monday of the week containing t, at midnight in t's location.
func WeekOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that started 6 days earlier
	}
	return t.AddDate(0, 0, 1-wd)
}
