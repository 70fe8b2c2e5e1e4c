package models

import "strings"

// MealType identifies one of the three baby meals on a calendar day.
type MealType string

const (
	MealBreakfast MealType = "baby_breakfast"
	MealLunch     MealType = "baby_lunch"
	MealDinner    MealType = "baby_dinner"
)

// MealTypes lists the meals in day order. Iteration order matters to the
// allocation walk, so this is the single place it is declared.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

func ParseMealType(s string) (MealType, bool) {
	switch MealType(s) {
	case MealBreakfast, MealLunch, MealDinner:
		return MealType(s), true
	}
	return "", false
}

// Role is one ingredient slot within a baby meal.
type Role string

const (
	RoleCereal    Role = "cereal"
	RoleFruit     Role = "fruit"
	RoleYogurt    Role = "yogurt"
	RoleMeat      Role = "meat"
	RoleVegetable Role = "vegetable"
)

// Roles lists the slots in declared order, the tie-break order used when
// walking a meal's fields.
var Roles = []Role{RoleCereal, RoleFruit, RoleYogurt, RoleMeat, RoleVegetable}

// Meal holds the free-text ingredient per role plus the shared consumed flag.
type Meal struct {
	Cereal    string `json:"cereal"`
	Fruit     string `json:"fruit"`
	Yogurt    string `json:"yogurt"`
	Meat      string `json:"meat"`
	Vegetable string `json:"vegetable"`
	Consumed  bool   `json:"consumed"`
}

// Empty reports whether no role has any text.
func (m *Meal) Empty() bool {
	for _, r := range Roles {
		if strings.TrimSpace(m.Field(r)) != "" {
			return false
		}
	}
	return true
}

// Field returns the raw text for one role.
func (m *Meal) Field(r Role) string {
	switch r {
	case RoleCereal:
		return m.Cereal
	case RoleFruit:
		return m.Fruit
	case RoleYogurt:
		return m.Yogurt
	case RoleMeat:
		return m.Meat
	case RoleVegetable:
		return m.Vegetable
	}
	return ""
}

// SetField overwrites the raw text for one role.
func (m *Meal) SetField(r Role, v string) {
	switch r {
	case RoleCereal:
		m.Cereal = v
	case RoleFruit:
		m.Fruit = v
	case RoleYogurt:
		m.Yogurt = v
	case RoleMeat:
		m.Meat = v
	case RoleVegetable:
		m.Vegetable = v
	}
}
