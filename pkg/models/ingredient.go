package models

// Ingredient categories; the empty string means "not categorized".
const (
	CategoryMeat      = "meat"
	CategoryVegetable = "vegetable"
	CategoryFruit     = "fruit"
	CategoryCereal    = "cereal"
	CategoryYogurt    = "yogurt"
)

func ValidCategory(c string) bool {
	switch c {
	case "", CategoryMeat, CategoryVegetable, CategoryFruit, CategoryCereal, CategoryYogurt:
		return true
	}
	return false
}

// noPrepDefaults maps category to its no-prep default. Cereal and yogurt are
// served as-is; everything else needs a preparation step.
var noPrepDefaults = map[string]bool{
	CategoryCereal: true,
	CategoryYogurt: true,
}

// NoPrepDefault returns the category default used when no override is set.
func NoPrepDefault(category string) bool {
	return noPrepDefaults[category]
}

// Ingredient is one ledger row, keyed by normalized name.
type Ingredient struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name,omitempty"`
	Stock          int    `json:"stock"`
	Category       string `json:"category"`
	Pinned         bool   `json:"pinned"`
	NoPrepOverride *bool  `json:"no_prep_override,omitempty"`
}

// NoPrep resolves the effective flag: override when set, category default otherwise.
func (i *Ingredient) NoPrep() bool {
	if i.NoPrepOverride != nil {
		return *i.NoPrepOverride
	}
	return NoPrepDefault(i.Category)
}
