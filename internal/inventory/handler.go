package inventory

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mealhub/internal/live"
	"mealhub/pkg/models"
)

type Handler struct {
	Svc *Service
	Hub *live.Hub
}

func NewHandler(svc *Service, hub *live.Hub) *Handler {
	return &Handler{Svc: svc, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inventory", h.get)
	rg.GET("/inventory/allocation", h.allocation)
	rg.POST("/inventory", h.pin)
	rg.PUT("/inventory/:ingredient", h.update)
	rg.DELETE("/inventory/:ingredient", h.deletePinned)
}

func parseToday(c *gin.Context) (time.Time, bool) {
	q := strings.TrimSpace(c.Query("today"))
	if q == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), true
	}
	t, err := time.Parse(models.DateLayout, q)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "today must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

func (h *Handler) get(c *gin.Context) {
	lookahead := 7
	if q := strings.TrimSpace(c.Query("lookahead")); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || !ValidLookahead(n) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lookahead must be 3, 5 or 7"})
			return
		}
		lookahead = n
	}

	today, ok := parseToday(c)
	if !ok {
		return
	}

	view, err := h.Svc.GetInventory(c.Request.Context(), lookahead, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inventory failed"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) allocation(c *gin.Context) {
	today, ok := parseToday(c)
	if !ok {
		return
	}

	weekOf := today
	if q := strings.TrimSpace(c.Query("weekOf")); q != "" {
		t, err := time.Parse(models.DateLayout, q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weekOf must be YYYY-MM-DD"})
			return
		}
		weekOf = t
	}

	alloc, err := h.Svc.GetAllocation(c.Request.Context(), weekOf, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "allocation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"allocation": alloc})
}

type pinReq struct {
	Ingredient string `json:"ingredient"`
	Category   string `json:"category"`
}

func (h *Handler) pin(c *gin.Context) {
	var req pinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	req.Ingredient = strings.TrimSpace(req.Ingredient)
	if req.Ingredient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient required"})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	ing, err := h.Svc.Ledger.Pin(c.Request.Context(), req.Ingredient, req.Category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "pin failed"})
		return
	}

	h.broadcast(ing)
	c.JSON(http.StatusCreated, ing)
}

// updateReq carries exactly one ledger mutation. NoPrep stays raw so JSON
// null (revert to category default) is distinguishable from absent.
type updateReq struct {
	Stock    *int            `json:"stock"`
	Delta    *int            `json:"delta"`
	Pinned   *bool           `json:"pinned"`
	Category *string         `json:"category"`
	NoPrep   json.RawMessage `json:"noPrep"`
}

func (h *Handler) update(c *gin.Context) {
	name := strings.TrimSpace(c.Param("ingredient"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient required"})
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	set := 0
	for _, present := range []bool{req.Stock != nil, req.Delta != nil, req.Pinned != nil, req.NoPrep != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of stock, delta, pinned, noPrep required"})
		return
	}

	ctx := c.Request.Context()
	var (
		ing *models.Ingredient
		err error
	)

	switch {
	case req.Stock != nil:
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be >= 0"})
			return
		}
		ing, err = h.Svc.Ledger.SetStock(ctx, name, *req.Stock)

	case req.Delta != nil:
		ing, err = h.Svc.Ledger.AdjustStock(ctx, name, *req.Delta)

	case req.Pinned != nil:
		if *req.Pinned {
			category := ""
			if req.Category != nil {
				category = *req.Category
			}
			if !models.ValidCategory(category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
				return
			}
			ing, err = h.Svc.Ledger.Pin(ctx, name, category)
		} else {
			ing, err = h.Svc.Ledger.Unpin(ctx, name)
		}

	default: // noPrep
		var value *bool
		if string(req.NoPrep) != "null" {
			var b bool
			if jsonErr := json.Unmarshal(req.NoPrep, &b); jsonErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "noPrep must be true, false or null"})
				return
			}
			value = &b
		}
		ing, err = h.Svc.Ledger.SetNoPrepOverride(ctx, name, value)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if ing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}

	h.broadcast(ing)
	c.JSON(http.StatusOK, ing)
}

func (h *Handler) deletePinned(c *gin.Context) {
	name := strings.TrimSpace(c.Param("ingredient"))

	ok, err := h.Svc.Ledger.DeletePinned(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found or not pinned"})
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastJSON(live.InventoryEvent{
			Type:       live.InventoryUpdateEvent,
			Ingredient: Normalize(name),
			At:         time.Now().UTC(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) broadcast(ing *models.Ingredient) {
	if h.Hub == nil || ing == nil {
		return
	}
	h.Hub.BroadcastJSON(live.InventoryEvent{
		Type:       live.InventoryUpdateEvent,
		Ingredient: ing.Name,
		Stock:      ing.Stock,
		At:         time.Now().UTC(),
	})
}
