package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/edgarmtz-git/multt-sub003/models"
	"github.com/edgarmtz-git/multt-sub003/schedule"
	"github.com/edgarmtz-git/multt-sub003/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreConfigHandler serves the store-owner configuration surface: the
// weekly schedule aggregate, calendar-date exceptions and delivery zones.
type StoreConfigHandler struct {
	DB *gorm.DB
}

type dayRequest struct {
	DayOfWeek int  `json:"day_of_week" binding:"gte=0,lte=6"`
	IsOpen    bool `json:"is_open"`
	Periods   []struct {
		Open  string `json:"open" binding:"required"`
		Close string `json:"close" binding:"required"`
	} `json:"periods"`
}

type policyRequest struct {
	Enabled           bool `json:"enabled"`
	Immediate         bool `json:"immediate"`
	Scheduled         bool `json:"scheduled"`
	Pickup            bool `json:"pickup"`
	MinAdvanceHours   int  `json:"min_advance_hours"`
	MaxAdvanceDays    int  `json:"max_advance_days"`
	UseOperatingHours bool `json:"use_operating_hours"`
}

type scheduleUpdateRequest struct {
	Days   []dayRequest  `json:"days" binding:"required"`
	Policy policyRequest `json:"policy" binding:"required"`
}

func (h *StoreConfigHandler) GetSchedule(c *gin.Context) {
	storeID, _ := c.Get("store_id")

	var days []models.ScheduleDay
	if err := h.DB.Preload("Periods", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Where("store_id = ?", storeID).Order("day_of_week").Find(&days).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}

	var policy models.DeliveryPolicy
	if err := h.DB.Where("store_id = ?", storeID).First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch delivery policy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "policy": policy})
}

// UpdateSchedule replaces the store's whole UnifiedSchedule aggregate: all
// 7 weekday rows plus the delivery policy, in one transaction. Partial
// patches are not supported; the normalizer validates the complete
// aggregate before anything is written.
func (h *StoreConfigHandler) UpdateSchedule(c *gin.Context) {
	storeID, _ := c.Get("store_id")

	var req scheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	dayInputs := make([]schedule.DayInput, 0, len(req.Days))
	for _, d := range req.Days {
		in := schedule.DayInput{Weekday: time.Weekday(d.DayOfWeek), IsOpen: d.IsOpen}
		for _, p := range d.Periods {
			in.Periods = append(in.Periods, schedule.PeriodInput{Open: p.Open, Close: p.Close})
		}
		dayInputs = append(dayInputs, in)
	}

	canonical, err := schedule.Normalize(dayInputs, schedule.Policy{
		Enabled:           req.Policy.Enabled,
		Immediate:         req.Policy.Immediate,
		Scheduled:         req.Policy.Scheduled,
		Pickup:            req.Policy.Pickup,
		MinAdvanceHours:   req.Policy.MinAdvanceHours,
		MaxAdvanceDays:    req.Policy.MaxAdvanceDays,
		UseOperatingHours: req.Policy.UseOperatingHours,
	})
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   verr.Error(),
				"kind":    string(verr.Kind),
				"weekday": int(verr.Weekday),
				"index":   verr.Index,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule"})
		return
	}

	sid := storeID.(uuid.UUID)
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		// Wholesale replacement: clear the previous aggregate first.
		var oldDays []models.ScheduleDay
		if err := tx.Where("store_id = ?", sid).Find(&oldDays).Error; err != nil {
			return err
		}
		for _, d := range oldDays {
			if err := tx.Where("schedule_day_id = ?", d.ID).Delete(&models.SchedulePeriod{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("store_id = ?", sid).Delete(&models.ScheduleDay{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", sid).Delete(&models.DeliveryPolicy{}).Error; err != nil {
			return err
		}

		for dow := time.Sunday; dow <= time.Saturday; dow++ {
			canonDay := canonical.Week[dow]
			day := models.ScheduleDay{
				StoreID:   sid,
				DayOfWeek: int(dow),
				IsOpen:    canonDay.IsOpen,
			}
			if err := tx.Create(&day).Error; err != nil {
				return err
			}
			for i, p := range canonDay.Periods {
				period := models.SchedulePeriod{
					ScheduleDayID: day.ID,
					OpenTime:      p.Open.String(),
					CloseTime:     p.Close.String(),
					Position:      i,
				}
				if err := tx.Create(&period).Error; err != nil {
					return err
				}
			}
		}

		policy := models.DeliveryPolicy{
			StoreID:           sid,
			Enabled:           canonical.Policy.Enabled,
			Immediate:         canonical.Policy.Immediate,
			Scheduled:         canonical.Policy.Scheduled,
			Pickup:            canonical.Policy.Pickup,
			MinAdvanceHours:   canonical.Policy.MinAdvanceHours,
			MaxAdvanceDays:    canonical.Policy.MaxAdvanceDays,
			UseOperatingHours: canonical.Policy.UseOperatingHours,
		}
		return tx.Create(&policy).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule"})
		return
	}

	// Return the persisted aggregate as re-read, not the request echoed.
	var days []models.ScheduleDay
	h.DB.Preload("Periods", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Where("store_id = ?", sid).Order("day_of_week").Find(&days)
	var policy models.DeliveryPolicy
	h.DB.Where("store_id = ?", sid).First(&policy)

	c.JSON(http.StatusOK, gin.H{"days": days, "policy": policy})
}

type exceptionRequest struct {
	Date    string `json:"date" binding:"required"`
	Closed  bool   `json:"closed"`
	Reason  string `json:"reason"`
	Periods []struct {
		Open  string `json:"open" binding:"required"`
		Close string `json:"close" binding:"required"`
	} `json:"periods"`
}

func (h *StoreConfigHandler) GetExceptions(c *gin.Context) {
	storeID, _ := c.Get("store_id")

	var rows []models.ScheduleException
	if err := h.DB.Preload("Periods", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Where("store_id = ?", storeID).Order("date").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch exceptions"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *StoreConfigHandler) CreateException(c *gin.Context) {
	storeID, _ := c.Get("store_id")

	var req exceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	in := schedule.ExceptionInput{Date: req.Date, Closed: req.Closed}
	for _, p := range req.Periods {
		in.Periods = append(in.Periods, schedule.PeriodInput{Open: p.Open, Close: p.Close})
	}
	normalized, err := schedule.NormalizeExceptions([]schedule.ExceptionInput{in})
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "kind": string(verr.Kind)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exception"})
		return
	}

	var existing models.ScheduleException
	if err := h.DB.Where("store_id = ? AND date = ?", storeID, req.Date).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An exception for this date already exists"})
		return
	}

	row := models.ScheduleException{
		StoreID: storeID.(uuid.UUID),
		Date:    normalized[0].Date,
		Closed:  normalized[0].Closed,
		Reason:  req.Reason,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exception"})
		return
	}
	for i, p := range normalized[0].Periods {
		period := models.ExceptionPeriod{
			ExceptionID: row.ID,
			OpenTime:    p.Open.String(),
			CloseTime:   p.Close.String(),
			Position:    i,
		}
		if err := h.DB.Create(&period).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exception"})
			return
		}
	}

	h.DB.Preload("Periods").Where("id = ?", row.ID).First(&row)
	c.JSON(http.StatusCreated, row)
}

func (h *StoreConfigHandler) DeleteException(c *gin.Context) {
	storeID, _ := c.Get("store_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exception id"})
		return
	}

	var row models.ScheduleException
	if err := h.DB.Where("id = ? AND store_id = ?", id, storeID).First(&row).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exception not found"})
		return
	}

	h.DB.Where("exception_id = ?", row.ID).Delete(&models.ExceptionPeriod{})
	if err := h.DB.Delete(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exception"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exception deleted"})
}

type zoneRequest struct {
	Name                  string   `json:"name" binding:"required"`
	ZoneType              string   `json:"zone_type"`
	FixedPrice            float64  `json:"fixed_price" binding:"gte=0"`
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold"`
	EstimatedTime         *int     `json:"estimated_time"`
	SortOrder             int      `json:"sort_order"`
	IsActive              *bool    `json:"is_active"`
}

func (h *StoreConfigHandler) GetZones(c *gin.Context) {
	storeID, _ := c.Get("store_id")

	var zones []models.DeliveryZone
	if err := h.DB.Where("store_id = ?", storeID).Order("sort_order").Find(&zones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch zones"})
		return
	}

	c.JSON(http.StatusOK, zones)
}

func (h *StoreConfigHandler) CreateZone(c *gin.Context) {
	storeID, _ := c.Get("store_id")

	var req zoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.ZoneType == "" {
		req.ZoneType = models.ZoneTypeFixed
	}
	if !models.AllowedZoneTypes[req.ZoneType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown zone_type"})
		return
	}

	zone := models.DeliveryZone{
		StoreID:               storeID.(uuid.UUID),
		Name:                  req.Name,
		ZoneType:              req.ZoneType,
		FixedPrice:            req.FixedPrice,
		FreeDeliveryThreshold: req.FreeDeliveryThreshold,
		EstimatedTime:         req.EstimatedTime,
		SortOrder:             req.SortOrder,
		IsActive:              true,
	}
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&zone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create zone"})
		return
	}

	c.JSON(http.StatusCreated, zone)
}

func (h *StoreConfigHandler) UpdateZone(c *gin.Context) {
	storeID, _ := c.Get("store_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone id"})
		return
	}

	var zone models.DeliveryZone
	if err := h.DB.Where("id = ? AND store_id = ?", id, storeID).First(&zone).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		return
	}

	var req zoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.ZoneType != "" && !models.AllowedZoneTypes[req.ZoneType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown zone_type"})
		return
	}

	zone.Name = req.Name
	if req.ZoneType != "" {
		zone.ZoneType = req.ZoneType
	}
	zone.FixedPrice = req.FixedPrice
	zone.FreeDeliveryThreshold = req.FreeDeliveryThreshold
	zone.EstimatedTime = req.EstimatedTime
	zone.SortOrder = req.SortOrder
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&zone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update zone"})
		return
	}

	c.JSON(http.StatusOK, zone)
}

func (h *StoreConfigHandler) DeleteZone(c *gin.Context) {
	storeID, _ := c.Get("store_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone id"})
		return
	}

	var zone models.DeliveryZone
	if err := h.DB.Where("id = ? AND store_id = ?", id, storeID).First(&zone).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		return
	}

	if err := h.DB.Delete(&zone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete zone"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Zone deleted"})
}
