package events

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"membership-app/database"
	"membership-app/internal/domain/activity"
	"membership-app/internal/domain/events"
	"membership-app/internal/domain/memberships"
	"membership-app/internal/domain/notifications"
	"membership-app/internal/domain/pricing"
	"membership-app/internal/domain/users"
	"membership-app/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type EventResponse struct {
	ID            uint          `json:"id"`
	Slug          string        `json:"slug"`
	Title         string        `json:"title"`
	Summary       string        `json:"summary,omitempty"`
	Description   string        `json:"description,omitempty"`
	Category      string        `json:"category,omitempty"`
	Format        string        `json:"format,omitempty"`
	Location      string        `json:"location,omitempty"`
	Country       string        `json:"country,omitempty"`
	IsVirtual     bool          `json:"is_virtual"`
	Currency      string        `json:"currency"`
	StartDate     *time.Time    `json:"start_date"`
	EndDate       *time.Time    `json:"end_date"`
	Capacity      int           `json:"capacity"`
	SpotsLeft     *int          `json:"spots_left"`
	IsFull        bool          `json:"is_full"`
	PublishStatus string        `json:"publish_status"`
	Featured      bool          `json:"featured"`
	Pricing       pricing.Quote `json:"pricing"`
}

func toEventResponse(e *events.Event, quote pricing.Quote) EventResponse {
	resp := EventResponse{
		ID:            e.ID,
		Slug:          e.Slug,
		Title:         e.Title,
		Summary:       e.Summary,
		Description:   e.Description,
		Category:      e.Category,
		Format:        e.Format,
		Location:      e.Location,
		Country:       e.Country,
		IsVirtual:     e.IsVirtual,
		Currency:      e.Currency,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		Capacity:      e.Capacity,
		IsFull:        e.IsFull(),
		PublishStatus: e.PublishStatus,
		Featured:      e.Featured,
		Pricing:       quote,
	}
	if left, ok := e.SpotsLeft(); ok {
		resp.SpotsLeft = &left
	}
	return resp
}

// callerTier resolves the paid tier of the authenticated caller, or takes an
// explicit membership_type query param on public endpoints so the frontend
// can preview tier prices. Nil means base price.
func callerTier(c *gin.Context) *string {
	if userID := c.GetUint("user_id"); userID != 0 {
		active, err := memberships.ResolveActive(database.DB, userID)
		if err == nil && active != nil {
			tier := active.Tier
			return &tier
		}
		return nil
	}

	if param := c.Query("membership_type"); memberships.IsValidTier(param) {
		tier := param
		return &tier
	}
	return nil
}

// ListEvents lists published events. Admins may pass ?status= to see drafts
// and archived events too.
func ListEvents(c *gin.Context) {
	status := events.PublishStatusPublished
	if requested := c.Query("status"); requested != "" && c.GetString("role") == "admin" {
		status = requested
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	var list []events.Event
	err := database.DB.
		Where("publish_status = ?", status).
		Order("featured DESC, start_date ASC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load events"})
		return
	}

	tier := callerTier(c)
	out := make([]EventResponse, 0, len(list))
	for i := range list {
		quote, err := events.QuoteFor(database.DB, list[i].ID, list[i].BasePrice, tier)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price events"})
			return
		}
		out = append(out, toEventResponse(&list[i], quote))
	}

	c.JSON(http.StatusOK, gin.H{"events": out, "count": len(out)})
}

// GetEvent returns one event by slug with pricing for the caller's tier.
func GetEvent(c *gin.Context) {
	slug := c.Param("slug")

	var event events.Event
	if err := database.DB.Where("slug = ?", slug).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if event.PublishStatus != events.PublishStatusPublished && c.GetString("role") != "admin" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	quote, err := events.QuoteFor(database.DB, event.ID, event.BasePrice, callerTier(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price event"})
		return
	}

	c.JSON(http.StatusOK, toEventResponse(&event, quote))
}

// RegisterForEvent books a spot for the caller. The price is quoted for the
// caller's tier and snapshotted on the registration; free registrations are
// confirmed immediately.
func RegisterForEvent(c *gin.Context) {
	userID := c.GetUint("user_id")

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	var event events.Event
	if err := database.DB.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if event.PublishStatus != events.PublishStatusPublished {
		c.JSON(http.StatusConflict, gin.H{"error": "Event is not open for registration"})
		return
	}

	var existing events.EventRegistration
	err = database.DB.
		Where("event_id = ? AND user_id = ? AND status != ?", event.ID, userID, events.RegistrationStatusCancelled).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already registered for this event"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check registration"})
		return
	}

	tier := callerTier(c)
	quote, err := events.QuoteFor(database.DB, event.ID, event.BasePrice, tier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price event"})
		return
	}

	if err := events.TakeSpot(database.DB, event.ID); err != nil {
		if errors.Is(err, events.ErrEventFull) {
			c.JSON(http.StatusConflict, gin.H{"error": "Event is at capacity"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	registration := events.EventRegistration{
		EventID:         event.ID,
		UserID:          userID,
		Reference:       uuid.NewString(),
		MembershipType:  tier,
		BasePrice:       quote.BasePrice,
		FinalPrice:      quote.FinalPrice,
		DiscountApplied: quote.DiscountApplied,
		Status:          events.InitialRegistrationStatus(quote.FinalPrice),
	}
	if err := database.DB.Create(&registration).Error; err != nil {
		// Give the spot back; the registration row never existed.
		_ = events.ReleaseSpot(database.DB, event.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	if quote.Discount != nil {
		_ = pricing.IncrementUse(database.DB, quote.Discount.ID)
	}

	activity.Record(database.DB, activity.Log{
		UserID:      userID,
		Action:      activity.ActionRegisterEvent,
		EntityType:  "event_registration",
		EntityID:    registration.ID,
		Description: fmt.Sprintf("Se registró al evento %s (%s)", event.Title, registration.Reference),
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})

	var user users.User
	if err := database.DB.First(&user, userID).Error; err == nil {
		subject, html := notify.EventRegistrationEmail(&user, &event, &registration)
		notify.Send(c.Request.Context(), notify.Email{
			Type:              notifications.TypeEventRegistration,
			RecipientID:       &user.ID,
			RecipientEmail:    user.Email,
			RecipientName:     user.FullName(),
			Subject:           subject,
			HTML:              html,
			RelatedEntityType: "event_registration",
			RelatedEntityID:   registration.ID,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"registration_id": registration.ID,
		"reference":       registration.Reference,
		"status":          registration.Status,
		"final_price":     registration.FinalPrice,
	})
}

// CancelRegistration cancels the caller's registration. The status flip is a
// conditional UPDATE so a double cancel cannot release the spot twice.
func CancelRegistration(c *gin.Context) {
	userID := c.GetUint("user_id")

	registrationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration id"})
		return
	}

	var registration events.EventRegistration
	err = database.DB.
		Where("id = ? AND user_id = ?", registrationID, userID).
		First(&registration).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	res := database.DB.Model(&events.EventRegistration{}).
		Where("id = ? AND status != ?", registration.ID, events.RegistrationStatusCancelled).
		Update("status", events.RegistrationStatusCancelled)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel registration"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Registration is already cancelled"})
		return
	}

	if err := events.ReleaseSpot(database.DB, registration.EventID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release spot"})
		return
	}

	activity.Record(database.DB, activity.Log{
		UserID:      userID,
		Action:      activity.ActionCancelRegistration,
		EntityType:  "event_registration",
		EntityID:    registration.ID,
		Description: fmt.Sprintf("Canceló el registro %s", registration.Reference),
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})

	var event events.Event
	var user users.User
	if database.DB.First(&event, registration.EventID).Error == nil &&
		database.DB.First(&user, userID).Error == nil {
		subject, html := notify.EventCancellationEmail(&user, &event)
		notify.Send(c.Request.Context(), notify.Email{
			Type:              notifications.TypeEventCancellation,
			RecipientID:       &user.ID,
			RecipientEmail:    user.Email,
			RecipientName:     user.FullName(),
			Subject:           subject,
			HTML:              html,
			RelatedEntityType: "event_registration",
			RelatedEntityID:   registration.ID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": events.RegistrationStatusCancelled})
}

// ListMyRegistrations lists the caller's registrations, newest first.
func ListMyRegistrations(c *gin.Context) {
	userID := c.GetUint("user_id")

	var list []events.EventRegistration
	err := database.DB.
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load registrations"})
		return
	}

	c.JSON(http.StatusOK, list)
}
