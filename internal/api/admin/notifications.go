package admin

import (
	"net/http"
	"strconv"
	"time"

	"membership-app/database"
	"membership-app/internal/domain/notifications"
	"membership-app/internal/domain/pricing"

	"github.com/gin-gonic/gin"
)

// ListEmailLogs pages through the email audit log, optionally filtered by
// status or type.
func ListEmailLogs(c *gin.Context) {
	query := database.DB.Model(&notifications.EmailLog{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if emailType := c.Query("type"); emailType != "" {
		query = query.Where("email_type = ?", emailType)
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	var logs []notifications.EmailLog
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load email logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}

// ListNotificationSettings returns the enable/disable switch per type.
func ListNotificationSettings(c *gin.Context) {
	var settings []notifications.NotificationSetting
	if err := database.DB.Order("notification_type ASC").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// ToggleNotificationSetting flips whether a notification type is sent at all.
func ToggleNotificationSetting(c *gin.Context) {
	notificationType := c.Param("type")

	var body struct {
		IsEnabled *bool `json:"is_enabled"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.IsEnabled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_enabled is required"})
		return
	}

	res := database.DB.Model(&notifications.NotificationSetting{}).
		Where("notification_type = ?", notificationType).
		Updates(map[string]interface{}{
			"is_enabled": *body.IsEnabled,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown notification type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification_type": notificationType, "is_enabled": *body.IsEnabled})
}

// ListDiscounts lists discount rules; pass ?active=true for live ones only.
func ListDiscounts(c *gin.Context) {
	query := database.DB.Model(&pricing.Discount{})
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var discounts []pricing.Discount
	if err := query.Order("created_at DESC").Find(&discounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load discounts"})
		return
	}

	c.JSON(http.StatusOK, discounts)
}

// CreateDiscount creates a discount rule that events and appointment types
// can attach.
func CreateDiscount(c *gin.Context) {
	var body struct {
		Name           string     `json:"name"`
		Description    string     `json:"description"`
		DiscountType   string     `json:"discount_type"`
		Value          float64    `json:"value"`
		MembershipTier *string    `json:"membership_tier"`
		IsIncluded     bool       `json:"is_included"`
		PriceOverride  *float64   `json:"price_override"`
		ValidFrom      *time.Time `json:"valid_from"`
		ValidUntil     *time.Time `json:"valid_until"`
		MaxUses        *int       `json:"max_uses"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if body.MaxUses != nil && *body.MaxUses < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_uses must be at least 1"})
		return
	}

	switch body.DiscountType {
	case pricing.DiscountTypePercentage:
		if body.Value < 0 || body.Value > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage value must be between 0 and 100"})
			return
		}
	case pricing.DiscountTypeFixed:
		if body.Value < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Fixed value must not be negative"})
			return
		}
	default:
		if !body.IsIncluded && body.PriceOverride == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount type"})
			return
		}
	}

	discount := pricing.Discount{
		Name:           body.Name,
		Description:    body.Description,
		DiscountType:   body.DiscountType,
		Value:          body.Value,
		MembershipTier: body.MembershipTier,
		IsIncluded:     body.IsIncluded,
		PriceOverride:  body.PriceOverride,
		ValidFrom:      body.ValidFrom,
		ValidUntil:     body.ValidUntil,
		MaxUses:        body.MaxUses,
		IsActive:       true,
	}
	if err := database.DB.Create(&discount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create discount"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": discount.ID})
}
