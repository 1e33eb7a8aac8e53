package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edgarmtz-git/multt-sub003/models"
	"github.com/edgarmtz-git/multt-sub003/schedule"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AvailabilityHandler struct {
	DB *gorm.DB
}

func (h *AvailabilityHandler) findStore(c *gin.Context) (*models.Store, bool) {
	var store models.Store
	if err := h.DB.Where("slug = ? AND is_active = ?", c.Param("slug"), true).First(&store).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return nil, false
	}
	return &store, true
}

// GetAvailability answers "is the store open at this instant, and under
// which operating period". The instant defaults to now and is interpreted
// as store-local wall clock.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	store, ok := h.findStore(c)
	if !ok {
		return
	}

	at, err := parseInstant(c.Query("at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sched, exceptions, err := loadScheduleSnapshot(h.DB, store.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store schedule not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule"})
		return
	}

	avail, err := schedule.IsOpenAt(sched, exceptions, at)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInstant) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instant"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve availability"})
		return
	}

	resp := gin.H{"open": avail.Open, "active_period": nil}
	if avail.ActivePeriod != nil {
		resp["active_period"] = periodJSON(*avail.ActivePeriod)
	}
	c.JSON(http.StatusOK, resp)
}

// GetSlots lists the future fulfillable windows for a store, bounded by
// its delivery policy's advance-notice floor and advance horizon.
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	store, ok := h.findStore(c)
	if !ok {
		return
	}

	from, err := parseInstant(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
	}

	sched, exceptions, err := loadScheduleSnapshot(h.DB, store.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store schedule not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule"})
		return
	}

	slots, err := schedule.NextSlots(sched, exceptions, from, limit)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInstant) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instant"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enumerate slots"})
		return
	}

	out := make([]gin.H, 0, len(slots))
	for _, s := range slots {
		out = append(out, gin.H{
			"date":     s.Date,
			"open":     s.Period.Open.String(),
			"close":    s.Period.Close.String(),
			"is_today": s.IsToday,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"scheduled_enabled": sched.Policy.Scheduled,
		"slots":             out,
	})
}

// GetZones lists a store's active delivery zones in display order, the set
// the storefront renders for zone selection at checkout.
func (h *AvailabilityHandler) GetZones(c *gin.Context) {
	store, ok := h.findStore(c)
	if !ok {
		return
	}

	var zones []models.DeliveryZone
	if err := h.DB.Where("store_id = ? AND is_active = ?", store.ID, true).
		Order("sort_order").Find(&zones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch zones"})
		return
	}

	c.JSON(http.StatusOK, zones)
}
