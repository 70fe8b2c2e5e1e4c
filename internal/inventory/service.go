package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"mealhub/pkg/models"
)

// DaySource is the read-only slice of the calendar the engine needs. The
// calendar repo satisfies it; tests can substitute a fixture.
type DaySource interface {
	GetDaysBetween(ctx context.Context, from, to time.Time) ([]models.Day, error)
}

// Service computes the demand forecast and the allocation preview. Both are
// full rescans of a bounded window (at most 7 days of demand), never cached,
// so calendar edits show up on the next call.
type Service struct {
	Ledger *Repo
	Days   DaySource
}

func NewService(ledger *Repo, days DaySource) *Service {
	return &Service{Ledger: ledger, Days: days}
}

// ValidLookahead reports whether n is one of the supported window sizes.
func ValidLookahead(n int) bool {
	return n == 3 || n == 5 || n == 7
}

// Item is one row of the inventory view.
type Item struct {
	Ingredient  string `json:"ingredient"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	Needed      int    `json:"needed"`
	ToMake      int    `json:"toMake"`
	Pinned      bool   `json:"pinned"`
	NoPrep      bool   `json:"noPrep"`
}

// View is the full inventory report for one lookahead window.
type View struct {
	Items      []Item `json:"items"`
	OtherStock []Item `json:"otherStock"`
	Lookahead  int    `json:"lookahead"`
}

func roleCategory(r models.Role) string {
	// role names and ledger categories share a vocabulary
	return string(r)
}

type demandEntry struct {
	needed      int
	displayName string
	category    string
}

// GetInventory aggregates demand over [today, today+lookahead-1]: each
// non-empty role field of a not-yet-consumed meal counts one unit against its
// normalized ingredient. Ledger stock is joined in; toMake is the shortfall.
// Ledger rows untouched by demand but worth showing (stock > 0 or pinned)
// come back as OtherStock. Lookahead validation is the boundary's job.
func (s *Service) GetInventory(ctx context.Context, lookahead int, today time.Time) (*View, error) {
	days, err := s.Days.GetDaysBetween(ctx, today, today.AddDate(0, 0, lookahead-1))
	if err != nil {
		return nil, err
	}

	demand := make(map[string]*demandEntry)
	for i := range days {
		day := &days[i]
		for _, meal := range models.MealTypes {
			m := day.MealOf(meal)
			if m.Consumed {
				continue
			}
			for _, role := range models.Roles {
				raw := strings.TrimSpace(m.Field(role))
				if raw == "" {
					continue
				}
				name := Normalize(raw)
				e := demand[name]
				if e == nil {
					e = &demandEntry{displayName: raw, category: roleCategory(role)}
					demand[name] = e
				}
				e.needed++
			}
		}
	}

	ledger, err := s.Ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*models.Ingredient, len(ledger))
	for i := range ledger {
		byName[ledger[i].Name] = &ledger[i]
	}

	view := &View{Items: []Item{}, OtherStock: []Item{}, Lookahead: lookahead}

	for name, e := range demand {
		item := Item{
			Ingredient:  name,
			DisplayName: e.displayName,
			Category:    e.category,
			Needed:      e.needed,
		}
		if row := byName[name]; row != nil {
			item.Stock = row.Stock
			item.Pinned = row.Pinned
			if row.Category != "" {
				item.Category = row.Category
			}
			if row.NoPrepOverride != nil {
				item.NoPrep = *row.NoPrepOverride
			} else {
				item.NoPrep = models.NoPrepDefault(item.Category)
			}
		} else {
			item.NoPrep = models.NoPrepDefault(item.Category)
		}
		if item.ToMake = item.Needed - item.Stock; item.ToMake < 0 {
			item.ToMake = 0
		}
		view.Items = append(view.Items, item)
	}

	for i := range ledger {
		row := &ledger[i]
		if _, hasDemand := demand[row.Name]; hasDemand {
			continue
		}
		if row.Stock <= 0 && !row.Pinned {
			continue
		}
		display := row.DisplayName
		if display == "" {
			display = row.Name
		}
		view.OtherStock = append(view.OtherStock, Item{
			Ingredient:  row.Name,
			DisplayName: display,
			Category:    row.Category,
			Stock:       row.Stock,
			Pinned:      row.Pinned,
			NoPrep:      row.NoPrep(),
		})
	}

	sort.Slice(view.Items, func(i, j int) bool {
		return view.Items[i].Ingredient < view.Items[j].Ingredient
	})
	// ledger list is already name-ordered, OtherStock inherits that

	return view, nil
}
