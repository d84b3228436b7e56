package events

import (
	"net/http"
	"strconv"
	"time"

	"membership-app/database"
	"membership-app/internal/domain/events"

	"github.com/gin-gonic/gin"
)

type eventInput struct {
	Title                   string     `json:"title"`
	Summary                 string     `json:"summary"`
	Description             string     `json:"description"`
	Category                string     `json:"category"`
	Format                  string     `json:"format"`
	Tags                    string     `json:"tags"`
	Location                string     `json:"location"`
	Country                 string     `json:"country"`
	IsVirtual               *bool      `json:"is_virtual"`
	Currency                string     `json:"currency"`
	BasePrice               *float64   `json:"base_price"`
	Capacity                *int       `json:"capacity"`
	StartDate               *time.Time `json:"start_date"`
	EndDate                 *time.Time `json:"end_date"`
	RegistrationDeadline    *time.Time `json:"registration_deadline"`
	HasCertificate          *bool      `json:"has_certificate"`
	CertificateInstructions string     `json:"certificate_instructions"`
	Featured                *bool      `json:"featured"`
}

// CreateEvent creates a draft event with a unique slug derived from the title.
func CreateEvent(c *gin.Context) {
	var body eventInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	slug, err := events.UniqueSlug(database.DB, events.Slugify(body.Title), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate slug"})
		return
	}

	event := events.Event{
		Slug:                    slug,
		Title:                   body.Title,
		Summary:                 body.Summary,
		Description:             body.Description,
		Category:                body.Category,
		Format:                  body.Format,
		Tags:                    body.Tags,
		Location:                body.Location,
		Country:                 body.Country,
		CertificateInstructions: body.CertificateInstructions,
		PublishStatus:           events.PublishStatusDraft,
		StartDate:               body.StartDate,
		EndDate:                 body.EndDate,
		RegistrationDeadline:    body.RegistrationDeadline,
	}
	if body.IsVirtual != nil {
		event.IsVirtual = *body.IsVirtual
	} else {
		event.IsVirtual = true
	}
	if body.Currency != "" {
		event.Currency = body.Currency
	}
	if body.BasePrice != nil {
		event.BasePrice = *body.BasePrice
	}
	if body.Capacity != nil && *body.Capacity >= 0 {
		event.Capacity = *body.Capacity
	}
	if body.HasCertificate != nil {
		event.HasCertificate = *body.HasCertificate
	}
	if body.Featured != nil {
		event.Featured = *body.Featured
	}

	if err := database.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": event.ID, "slug": event.Slug})
}

// UpdateEvent updates event fields. A changed title gets a fresh unique slug
// so URLs stay readable.
func UpdateEvent(c *gin.Context) {
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

	var body eventInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if body.Title != "" && body.Title != event.Title {
		slug, err := events.UniqueSlug(database.DB, events.Slugify(body.Title), event.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate slug"})
			return
		}
		event.Title = body.Title
		event.Slug = slug
	}
	if body.Summary != "" {
		event.Summary = body.Summary
	}
	if body.Description != "" {
		event.Description = body.Description
	}
	if body.Category != "" {
		event.Category = body.Category
	}
	if body.Format != "" {
		event.Format = body.Format
	}
	if body.Tags != "" {
		event.Tags = body.Tags
	}
	if body.Location != "" {
		event.Location = body.Location
	}
	if body.Country != "" {
		event.Country = body.Country
	}
	if body.IsVirtual != nil {
		event.IsVirtual = *body.IsVirtual
	}
	if body.Currency != "" {
		event.Currency = body.Currency
	}
	if body.BasePrice != nil {
		event.BasePrice = *body.BasePrice
	}
	if body.Capacity != nil && *body.Capacity >= 0 {
		event.Capacity = *body.Capacity
	}
	if body.StartDate != nil {
		event.StartDate = body.StartDate
	}
	if body.EndDate != nil {
		event.EndDate = body.EndDate
	}
	if body.RegistrationDeadline != nil {
		event.RegistrationDeadline = body.RegistrationDeadline
	}
	if body.HasCertificate != nil {
		event.HasCertificate = *body.HasCertificate
	}
	if body.CertificateInstructions != "" {
		event.CertificateInstructions = body.CertificateInstructions
	}
	if body.Featured != nil {
		event.Featured = *body.Featured
	}

	if err := database.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": event.ID, "slug": event.Slug})
}

// SetPublishStatus moves an event between draft, published and archived.
func SetPublishStatus(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	switch body.Status {
	case events.PublishStatusDraft, events.PublishStatusPublished, events.PublishStatusArchived:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publish status"})
		return
	}

	res := database.DB.Model(&events.Event{}).
		Where("id = ?", eventID).
		Update("publish_status", body.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": eventID, "publish_status": body.Status})
}

// AttachDiscount links an existing discount rule to an event with a priority.
func AttachDiscount(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	var body struct {
		DiscountID uint `json:"discount_id"`
		Priority   int  `json:"priority"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.DiscountID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount_id is required"})
		return
	}
	if body.Priority <= 0 {
		body.Priority = 1
	}

	var event events.Event
	if err := database.DB.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	join := events.EventDiscount{
		EventID:    event.ID,
		DiscountID: body.DiscountID,
		Priority:   body.Priority,
	}
	if err := database.DB.Create(&join).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach discount"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": join.ID})
}

// ListEventRegistrations lists registrations for one event, for admins.
func ListEventRegistrations(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	var list []events.EventRegistration
	err = database.DB.
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load registrations"})
		return
	}

	c.JSON(http.StatusOK, list)
}
