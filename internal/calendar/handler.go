package calendar

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mealhub/internal/live"
	"mealhub/pkg/models"
)

type Handler struct {
	Repo *Repo
	Svc  *Service
	Hub  *live.Hub
}

func NewHandler(repo *Repo, svc *Service, hub *live.Hub) *Handler {
	return &Handler{Repo: repo, Svc: svc, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/weeks/:weekOf", h.getWeek)
	rg.PUT("/weeks/:weekOf/days/:day", h.updateDay)
	rg.PUT("/weeks/:weekOf/days/:day/consume", h.consume)
	rg.PUT("/weeks/:weekOf/days/:day/unconsume", h.unconsume)
}

func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Param(name))
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// getWeek returns the weekly page, creating it on first view so the UI can
// always render seven editable days.
func (h *Handler) getWeek(c *gin.Context) {
	weekOf, ok := parseDateParam(c, "weekOf")
	if !ok {
		return
	}

	week, err := h.Repo.EnsureWeek(c.Request.Context(), models.WeekOf(weekOf))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load week failed"})
		return
	}
	c.JSON(http.StatusOK, week)
}

type updateDayReq struct {
	AdultDinner string      `json:"adult_dinner"`
	AdultNote   string      `json:"adult_note"`
	Breakfast   models.Meal `json:"baby_breakfast"`
	Lunch       models.Meal `json:"baby_lunch"`
	Dinner      models.Meal `json:"baby_dinner"`
}

func (h *Handler) updateDay(c *gin.Context) {
	weekOf, ok := parseDateParam(c, "weekOf")
	if !ok {
		return
	}
	day, ok := parseDateParam(c, "day")
	if !ok {
		return
	}

	monday := models.WeekOf(weekOf)
	if !models.WeekOf(day).Equal(monday) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day is not in the given week"})
		return
	}

	var req updateDayReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Repo.EnsureWeek(ctx, monday); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load week failed"})
		return
	}

	d := models.Day{
		Date:        day.Format(models.DateLayout),
		WeekOf:      monday.Format(models.DateLayout),
		AdultDinner: strings.TrimSpace(req.AdultDinner),
		AdultNote:   strings.TrimSpace(req.AdultNote),
		Breakfast:   req.Breakfast,
		Lunch:       req.Lunch,
		Dinner:      req.Dinner,
	}
	for _, meal := range models.MealTypes {
		m := d.MealOf(meal)
		for _, role := range models.Roles {
			m.SetField(role, strings.TrimSpace(m.Field(role)))
		}
	}

	found, err := h.Repo.UpdateDay(ctx, d)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save day failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "day not found"})
		return
	}

	saved, err := h.Repo.GetDay(ctx, day)
	if err != nil || saved == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load day failed"})
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastJSON(live.DayEvent{
			Type: live.DayUpdateEvent,
			Date: saved.Date,
			At:   time.Now().UTC(),
		})
	}
	c.JSON(http.StatusOK, saved)
}

type consumeReq struct {
	Meal string `json:"meal"`
}

func (h *Handler) consume(c *gin.Context) {
	h.setConsumed(c, true)
}

func (h *Handler) unconsume(c *gin.Context) {
	h.setConsumed(c, false)
}

func (h *Handler) setConsumed(c *gin.Context, target bool) {
	day, ok := parseDateParam(c, "day")
	if !ok {
		return
	}

	var req consumeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	meal, ok := models.ParseMealType(strings.TrimSpace(req.Meal))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "meal must be one of: baby_breakfast, baby_lunch, baby_dinner",
		})
		return
	}

	var (
		saved *models.Day
		err   error
	)
	if target {
		saved, err = h.Svc.ConsumeMeal(c.Request.Context(), day, meal)
	} else {
		saved, err = h.Svc.UnconsumeMeal(c.Request.Context(), day, meal)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "consume failed"})
		return
	}
	if saved == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "day not found"})
		return
	}

	if h.Hub != nil {
		eventType := live.MealConsumeEvent
		if !target {
			eventType = live.MealUnconsumeEvent
		}
		h.Hub.BroadcastJSON(live.MealEvent{
			Type: eventType,
			Date: saved.Date,
			Meal: string(meal),
			At:   time.Now().UTC(),
		})
	}
	c.JSON(http.StatusOK, saved)
}
