package calendar

import (
	"context"
	"log"
	"strings"
	"time"

	"mealhub/pkg/models"
)

// Reconciler sweeps past meals that were planned but never marked consumed
// through the consumption state machine. It is driven by an injected interval
// and clock so tests (and the startup hook) call RunOnce directly instead of
// waiting on a timer.
type Reconciler struct {
	Service  *Service
	Interval time.Duration
	Now      func() time.Time
}

func NewReconciler(svc *Service, interval time.Duration) *Reconciler {
	return &Reconciler{Service: svc, Interval: interval, Now: time.Now}
}

// RunOnce consumes every (day, meal) strictly before today that has at least
// one non-empty role and consumed = 0. Idempotent: a second run with the same
// today finds nothing left to do. Returns the number of meals consumed.
func (r *Reconciler) RunOnce(ctx context.Context, today time.Time) (int, error) {
	days, err := r.Service.Repo.ListUnconsumedBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	consumed := 0
	for _, day := range days {
		for _, meal := range models.MealTypes {
			m := day.MealOf(meal)
			if m.Consumed || m.Empty() {
				continue
			}
			if _, err := r.Service.ConsumeMeal(ctx, mustParseDate(day.Date), meal); err != nil {
				return consumed, err
			}
			consumed++
		}
	}
	return consumed, nil
}

// Start blocks, running the sweep every Interval until ctx is cancelled.
func (r *Reconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.RunOnce(ctx, r.Now())
			if err != nil {
				log.Printf("[reconciler] sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[reconciler] auto-consumed %d past meal(s)", n)
			}
		}
	}
}

func mustParseDate(s string) time.Time {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(s))
	if err != nil {
		// dates come from our own storage; a parse failure is a programming error
		panic("calendar: bad stored date " + s)
	}
	return t
}
