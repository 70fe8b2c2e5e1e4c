// Package schedule serves the read-only feed consumed by the kitchen e-ink
// display. The device fetches the next three days, renders one page per day
// and deep-sleeps, so the payload stays small and flat.
package schedule

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mealhub/internal/calendar"
	"mealhub/pkg/models"
)

type Handler struct {
	Repo *calendar.Repo
}

func NewHandler(repo *calendar.Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/schedule/upcoming", h.upcoming)
}

type adultView struct {
	Dinner string `json:"dinner"`
	Note   string `json:"note"`
}

type babyView struct {
	Breakfast map[string]string `json:"breakfast"`
	Lunch     map[string]string `json:"lunch"`
	Dinner    map[string]string `json:"dinner"`
}

type dayView struct {
	Day   string    `json:"day"` // weekday name, e.g. "Monday"
	Date  string    `json:"date"`
	Adult adultView `json:"adult"`
	Baby  babyView  `json:"baby"`
}

func roleMap(m *models.Meal) map[string]string {
	out := make(map[string]string, len(models.Roles))
	for _, r := range models.Roles {
		out[string(r)] = m.Field(r)
	}
	return out
}

// upcoming returns today plus the next two days. Days the calendar never
// created come back blank rather than missing, so the display always has
// three pages.
func (h *Handler) upcoming(c *gin.Context) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	days, err := h.Repo.GetDaysBetween(c.Request.Context(), today, today.AddDate(0, 0, 2))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load schedule failed"})
		return
	}

	byDate := make(map[string]*models.Day, len(days))
	for i := range days {
		byDate[days[i].Date] = &days[i]
	}

	out := make([]dayView, 0, 3)
	for i := 0; i < 3; i++ {
		date := today.AddDate(0, 0, i)
		key := date.Format(models.DateLayout)

		day := byDate[key]
		if day == nil {
			day = &models.Day{Date: key}
		}

		out = append(out, dayView{
			Day:  date.Weekday().String(),
			Date: date.Format("01/02"),
			Adult: adultView{
				Dinner: day.AdultDinner,
				Note:   day.AdultNote,
			},
			Baby: babyView{
				Breakfast: roleMap(&day.Breakfast),
				Lunch:     roleMap(&day.Lunch),
				Dinner:    roleMap(&day.Dinner),
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"days": out})
}
