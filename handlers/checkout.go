package handlers

import (
	"errors"
	"net/http"

	"github.com/edgarmtz-git/multt-sub003/models"
	"github.com/edgarmtz-git/multt-sub003/schedule"
	"github.com/edgarmtz-git/multt-sub003/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckoutHandler struct {
	DB *gorm.DB
}

type quoteRequest struct {
	StoreSlug   string  `json:"store_slug" binding:"required"`
	ZoneID      string  `json:"zone_id" binding:"required"`
	Subtotal    float64 `json:"subtotal" binding:"gte=0"`
	Fulfillment string  `json:"fulfillment" binding:"required,oneof=immediate scheduled pickup"`
	At          string  `json:"at"` // test/display override; empty means now
	Slot        *struct {
		Date  string `json:"date" binding:"required"`
		Open  string `json:"open" binding:"required"`
		Close string `json:"close" binding:"required"`
	} `json:"requested_slot"`
}

// QuoteCheckout resolves the delivery fee tier for a zone and couples it
// with the store's availability verdict into a single checkout-eligibility
// decision. On rejection the fee still rides along so the storefront can
// show "delivery costs $X, but we're currently closed".
func (h *CheckoutHandler) QuoteCheckout(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var store models.Store
	if err := h.DB.Where("slug = ? AND is_active = ?", req.StoreSlug, true).First(&store).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	zoneID, err := uuid.Parse(req.ZoneID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone_id"})
		return
	}
	var zoneRow models.DeliveryZone
	if err := h.DB.Where("id = ? AND store_id = ?", zoneID, store.ID).First(&zoneRow).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		return
	}

	now, err := parseInstant(req.At)
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

	// Whether a fulfillment path is offered at all is decided here, not in
	// the engine; the engine only judges the path it is asked about.
	fulfillment := schedule.Fulfillment(req.Fulfillment)
	if msg, ok := fulfillmentOffered(sched.Policy, fulfillment); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	engReq := schedule.CheckoutRequest{Fulfillment: fulfillment}
	if req.Slot != nil {
		open, err := schedule.ParseTimeOfDay(req.Slot.Open)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requested_slot open time"})
			return
		}
		close, err := schedule.ParseTimeOfDay(req.Slot.Close)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requested_slot close time"})
			return
		}
		engReq.Slot = &schedule.SlotRef{Date: req.Slot.Date, Open: open, Close: close}
	}

	zone, err := engineZone(&zoneRow)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unsupported zone configuration"})
		return
	}

	decision, err := schedule.ResolveCheckout(zone, req.Subtotal, sched, exceptions, now, engReq)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInstant) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instant"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve checkout"})
		return
	}

	resp := gin.H{
		"fee":      decision.Fee,
		"eligible": decision.Eligible,
	}
	if decision.EstimatedTime != nil {
		resp["estimated_time"] = *decision.EstimatedTime
	}
	if decision.Reason != "" {
		resp["reason"] = string(decision.Reason)
	}
	c.JSON(http.StatusOK, resp)
}

func fulfillmentOffered(p schedule.Policy, f schedule.Fulfillment) (string, bool) {
	switch f {
	case schedule.FulfillmentImmediate:
		if !p.Enabled {
			return "Delivery is not enabled for this store", false
		}
		if !p.Immediate {
			return "Immediate orders are not accepted by this store", false
		}
	case schedule.FulfillmentScheduled:
		if !p.Enabled {
			return "Delivery is not enabled for this store", false
		}
		if !p.Scheduled {
			return "Scheduled orders are not accepted by this store", false
		}
	case schedule.FulfillmentPickup:
		if !p.Pickup {
			return "Pickup is not offered by this store", false
		}
	}
	return "", true
}
