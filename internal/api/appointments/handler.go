package appointments

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"membership-app/database"
	"membership-app/internal/domain/activity"
	"membership-app/internal/app/http/middleware"
	"membership-app/internal/domain/appointments"
	"membership-app/internal/domain/memberships"
	"membership-app/internal/domain/notifications"
	"membership-app/internal/domain/pricing"
	"membership-app/internal/domain/users"
	"membership-app/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const slotListLimit = 50

type TypeResponse struct {
	ID              uint          `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	ServiceCategory string        `json:"service_category"`
	DurationMinutes int           `json:"duration_minutes"`
	Currency        string        `json:"currency"`
	IsVirtual       bool          `json:"is_virtual"`
	Pricing         pricing.Quote `json:"pricing"`
}

// ListTypes lists active appointment types priced for the caller's tier.
func ListTypes(c *gin.Context) {
	var tier *string
	if active := middleware.MembershipFromContext(c); active != nil {
		tier = &active.Tier
	} else if userID := c.GetUint("user_id"); userID != 0 {
		if active, err := memberships.ResolveActive(database.DB, userID); err == nil && active != nil {
			tier = &active.Tier
		}
	}

	var types []appointments.AppointmentType
	err := database.DB.
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&types).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load appointment types"})
		return
	}

	out := make([]TypeResponse, 0, len(types))
	for i := range types {
		t := &types[i]
		quote, err := appointments.QuoteFor(database.DB, t.ID, t.BasePrice, tier)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price appointment types"})
			return
		}
		out = append(out, TypeResponse{
			ID:              t.ID,
			Name:            t.Name,
			Description:     t.Description,
			ServiceCategory: t.ServiceCategory,
			DurationMinutes: t.DurationMinutes,
			Currency:        t.Currency,
			IsVirtual:       t.IsVirtual,
			Pricing:         quote,
		})
	}

	c.JSON(http.StatusOK, gin.H{"appointment_types": out})
}

// ListAvailableSlots lists bookable future slots, optionally filtered by
// appointment type.
func ListAvailableSlots(c *gin.Context) {
	query := database.DB.
		Preload("Advisor").
		Preload("Advisor.User").
		Where("is_available = ? AND start_datetime > ?", true, time.Now().UTC())

	if raw := c.Query("type_id"); raw != "" {
		typeID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type_id"})
			return
		}
		query = query.Where("appointment_type_id = ?", typeID)
	}

	var slots []appointments.AppointmentSlot
	err := query.
		Order("start_datetime ASC").
		Limit(slotListLimit).
		Find(&slots).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load slots"})
		return
	}

	type slotResponse struct {
		ID                uint      `json:"id"`
		AppointmentTypeID uint      `json:"appointment_type_id"`
		AdvisorID         uint      `json:"advisor_id"`
		AdvisorName       string    `json:"advisor_name"`
		StartDatetime     time.Time `json:"start_datetime"`
		EndDatetime       time.Time `json:"end_datetime"`
		RemainingSeats    int       `json:"remaining_seats"`
	}
	out := make([]slotResponse, 0, len(slots))
	for i := range slots {
		s := &slots[i]
		out = append(out, slotResponse{
			ID:                s.ID,
			AppointmentTypeID: s.AppointmentTypeID,
			AdvisorID:         s.AdvisorID,
			AdvisorName:       s.Advisor.User.FullName(),
			StartDatetime:     s.StartDatetime,
			EndDatetime:       s.EndDatetime,
			RemainingSeats:    s.RemainingSeats(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"slots": out})
}

// BookAppointment reserves a seat on a slot for the caller. Requires an
// active membership; the membership guard has already resolved the tier.
func BookAppointment(c *gin.Context) {
	userID := c.GetUint("user_id")

	active := middleware.MembershipFromContext(c)
	if active == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "An active membership is required"})
		return
	}

	var body struct {
		SlotID    uint   `json:"slot_id"`
		UserNotes string `json:"user_notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SlotID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot_id is required"})
		return
	}

	var slot appointments.AppointmentSlot
	err := database.DB.
		Preload("AppointmentType").
		First(&slot, body.SlotID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
		return
	}
	if !slot.StartDatetime.After(time.Now().UTC()) {
		c.JSON(http.StatusConflict, gin.H{"error": "Slot is in the past"})
		return
	}

	tier := active.Tier
	quote, err := appointments.QuoteFor(database.DB, slot.AppointmentTypeID, slot.AppointmentType.BasePrice, &tier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price appointment"})
		return
	}

	if err := appointments.ReserveSeat(database.DB, slot.ID); err != nil {
		if errors.Is(err, appointments.ErrSlotFull) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slot has no remaining seats"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book appointment"})
		return
	}

	status := appointments.StatusPending
	if !slot.AppointmentType.RequiresConfirmation {
		status = appointments.StatusConfirmed
	}

	appointment := appointments.Appointment{
		Reference:         uuid.NewString(),
		AppointmentTypeID: slot.AppointmentTypeID,
		AdvisorID:         slot.AdvisorID,
		SlotID:            slot.ID,
		UserID:            userID,
		MembershipType:    &tier,
		StartDatetime:     slot.StartDatetime,
		EndDatetime:       slot.EndDatetime,
		Status:            status,
		BasePrice:         quote.BasePrice,
		FinalPrice:        quote.FinalPrice,
		DiscountApplied:   quote.DiscountApplied,
		UserNotes:         body.UserNotes,
	}
	if err := database.DB.Create(&appointment).Error; err != nil {
		_ = appointments.ReleaseSeat(database.DB, slot.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book appointment"})
		return
	}

	if quote.Discount != nil {
		_ = pricing.IncrementUse(database.DB, quote.Discount.ID)
	}

	activity.Record(database.DB, activity.Log{
		UserID:      userID,
		Action:      activity.ActionBookAppointment,
		EntityType:  "appointment",
		EntityID:    appointment.ID,
		Description: fmt.Sprintf("Reservó la cita %s", appointment.Reference),
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})

	var user users.User
	if err := database.DB.First(&user, userID).Error; err == nil {
		subject, html := notify.AppointmentBookedEmail(&user, &appointment, slot.AppointmentType.Name)
		notify.Send(c.Request.Context(), notify.Email{
			Type:              notifications.TypeAppointmentBooked,
			RecipientID:       &user.ID,
			RecipientEmail:    user.Email,
			RecipientName:     user.FullName(),
			Subject:           subject,
			HTML:              html,
			RelatedEntityType: "appointment",
			RelatedEntityID:   appointment.ID,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment_id": appointment.ID,
		"reference":      appointment.Reference,
		"status":         appointment.Status,
		"final_price":    appointment.FinalPrice,
	})
}

// CancelAppointment cancels the caller's appointment. Members must give
// enough notice; admins may cancel anything not yet started.
func CancelAppointment(c *gin.Context) {
	userID := c.GetUint("user_id")
	isAdmin := c.GetString("role") == "admin"

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	var appointment appointments.Appointment
	query := database.DB.Preload("AppointmentType")
	if !isAdmin {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.First(&appointment, appointmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	if err := appointments.CanCancel(&appointment, isAdmin, time.Now().UTC()); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "Appointment is already cancelled"})
		case errors.Is(err, appointments.ErrAlreadyStarted):
			c.JSON(http.StatusConflict, gin.H{"error": "Appointment has already started"})
		case errors.Is(err, appointments.ErrCancelWindowClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Appointments must be cancelled at least 12 hours in advance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		}
		return
	}

	res := database.DB.Model(&appointments.Appointment{}).
		Where("id = ? AND status != ?", appointment.ID, appointments.StatusCancelled).
		Updates(map[string]interface{}{
			"status":              appointments.StatusCancelled,
			"cancellation_reason": body.Reason,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Appointment is already cancelled"})
		return
	}

	if err := appointments.ReleaseSeat(database.DB, appointment.SlotID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release seat"})
		return
	}

	activity.Record(database.DB, activity.Log{
		UserID:      userID,
		Action:      activity.ActionCancelAppointment,
		EntityType:  "appointment",
		EntityID:    appointment.ID,
		Description: fmt.Sprintf("Canceló la cita %s", appointment.Reference),
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})

	var user users.User
	if err := database.DB.First(&user, appointment.UserID).Error; err == nil {
		subject, html := notify.AppointmentCancellationEmail(&user, &appointment, body.Reason)
		notify.Send(c.Request.Context(), notify.Email{
			Type:              notifications.TypeAppointmentCancelled,
			RecipientID:       &user.ID,
			RecipientEmail:    user.Email,
			RecipientName:     user.FullName(),
			Subject:           subject,
			HTML:              html,
			RelatedEntityType: "appointment",
			RelatedEntityID:   appointment.ID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": appointments.StatusCancelled})
}

// ListMyAppointments lists the caller's appointments, newest first.
func ListMyAppointments(c *gin.Context) {
	userID := c.GetUint("user_id")

	var list []appointments.Appointment
	err := database.DB.
		Preload("AppointmentType").
		Where("user_id = ?", userID).
		Order("start_datetime DESC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load appointments"})
		return
	}

	c.JSON(http.StatusOK, list)
}
