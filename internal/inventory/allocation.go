package inventory

import (
	"context"
	"strings"
	"time"

	"mealhub/pkg/models"
)

// SlotStatus is the coverage verdict for one meal slot.
type SlotStatus string

const (
	StatusAllocated   SlotStatus = "allocated"
	StatusUnallocated SlotStatus = "unallocated"
	StatusConsumed    SlotStatus = "consumed"
)

// Allocation maps date -> field key ("baby_lunch_meat") -> status. Slots with
// no demand are absent, as are days with no slots at all.
type Allocation map[string]map[string]SlotStatus

// FieldKey names one meal slot the way the UI addresses it.
func FieldKey(meal models.MealType, role models.Role) string {
	return string(meal) + "_" + string(role)
}

// GetAllocation previews which future meal slots current stock covers. It
// walks [today, max(today+6, end of viewed week)] in date order, meals and
// roles in declared order, greedily assigning each ingredient's remaining
// stock to the earliest open demand. Consumed meals are reported as such
// without touching the pool. Display only: the ledger is never written.
//
// Earliest-first is optimal here: with a single uncosted unit pool per
// ingredient, covering a later slot instead of an earlier one can never
// cover more slots overall.
func (s *Service) GetAllocation(ctx context.Context, viewedWeek, today time.Time) (Allocation, error) {
	end := today.AddDate(0, 0, 6)
	if weekEnd := models.WeekOf(viewedWeek).AddDate(0, 0, 6); weekEnd.After(end) {
		end = weekEnd
	}

	days, err := s.Days.GetDaysBetween(ctx, today, end)
	if err != nil {
		return nil, err
	}

	ledger, err := s.Ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	remaining := make(map[string]int, len(ledger))
	for _, row := range ledger {
		remaining[row.Name] = row.Stock
	}

	alloc := make(Allocation)
	for i := range days {
		day := &days[i]
		var slots map[string]SlotStatus

		for _, meal := range models.MealTypes {
			m := day.MealOf(meal)
			for _, role := range models.Roles {
				raw := strings.TrimSpace(m.Field(role))
				if raw == "" {
					continue
				}

				var status SlotStatus
				switch {
				case m.Consumed:
					status = StatusConsumed
				default:
					name := Normalize(raw)
					if remaining[name] > 0 {
						remaining[name]--
						status = StatusAllocated
					} else {
						status = StatusUnallocated
					}
				}

				if slots == nil {
					slots = make(map[string]SlotStatus)
					alloc[day.Date] = slots
				}
				slots[FieldKey(meal, role)] = status
			}
		}
	}

	return alloc, nil
}
