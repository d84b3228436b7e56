package appointments

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"membership-app/database"
	"membership-app/internal/domain/activity"
	"membership-app/internal/domain/appointments"
	"membership-app/internal/domain/notifications"
	"membership-app/internal/domain/users"
	"membership-app/internal/notify"

	"github.com/gin-gonic/gin"
)

// ConfirmAppointment marks an appointment as advisor-confirmed. Confirming
// twice is a no-op, so the confirmation email only goes out once.
func ConfirmAppointment(c *gin.Context) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}

	var appointment appointments.Appointment
	err = database.DB.
		Preload("AppointmentType").
		First(&appointment, appointmentID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	if appointment.Status == appointments.StatusCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot confirm a cancelled appointment"})
		return
	}
	if appointment.Status == appointments.StatusConfirmed {
		c.JSON(http.StatusOK, gin.H{"status": appointments.StatusConfirmed})
		return
	}

	now := time.Now().UTC()
	res := database.DB.Model(&appointments.Appointment{}).
		Where("id = ? AND status = ?", appointment.ID, appointments.StatusPending).
		Updates(map[string]interface{}{
			"status":               appointments.StatusConfirmed,
			"advisor_confirmed":    true,
			"advisor_confirmed_at": now,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm appointment"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Appointment is no longer pending"})
		return
	}
	appointment.Status = appointments.StatusConfirmed

	activity.Record(database.DB, activity.Log{
		UserID:      c.GetUint("user_id"),
		Action:      activity.ActionConfirmAppointment,
		EntityType:  "appointment",
		EntityID:    appointment.ID,
		Description: fmt.Sprintf("Confirmó la cita %s", appointment.Reference),
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})

	var user users.User
	if err := database.DB.First(&user, appointment.UserID).Error; err == nil {
		subject, html := notify.AppointmentConfirmationEmail(&user, &appointment, appointment.AppointmentType.Name)
		notify.Send(c.Request.Context(), notify.Email{
			Type:              notifications.TypeAppointmentConfirmed,
			RecipientID:       &user.ID,
			RecipientEmail:    user.Email,
			RecipientName:     user.FullName(),
			Subject:           subject,
			HTML:              html,
			RelatedEntityType: "appointment",
			RelatedEntityID:   appointment.ID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": appointments.StatusConfirmed})
}

// CreateType creates an appointment type and its advisor assignments.
func CreateType(c *gin.Context) {
	var body struct {
		Name                 string  `json:"name"`
		Description          string  `json:"description"`
		ServiceCategory      string  `json:"service_category"`
		DurationMinutes      int     `json:"duration_minutes"`
		BasePrice            float64 `json:"base_price"`
		Currency             string  `json:"currency"`
		IsVirtual            *bool   `json:"is_virtual"`
		RequiresConfirmation *bool   `json:"requires_confirmation"`
		DisplayOrder         int     `json:"display_order"`
		AdvisorIDs           []uint  `json:"advisor_ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	appointmentType := appointments.AppointmentType{
		Name:            body.Name,
		Description:     body.Description,
		ServiceCategory: body.ServiceCategory,
		DurationMinutes: body.DurationMinutes,
		BasePrice:       body.BasePrice,
		DisplayOrder:    body.DisplayOrder,
		IsActive:        true,
	}
	if appointmentType.ServiceCategory == "" {
		appointmentType.ServiceCategory = "general"
	}
	if appointmentType.DurationMinutes <= 0 {
		appointmentType.DurationMinutes = 60
	}
	if body.Currency != "" {
		appointmentType.Currency = body.Currency
	}
	appointmentType.IsVirtual = body.IsVirtual == nil || *body.IsVirtual
	appointmentType.RequiresConfirmation = body.RequiresConfirmation == nil || *body.RequiresConfirmation

	if err := database.DB.Create(&appointmentType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment type"})
		return
	}

	for i, advisorID := range body.AdvisorIDs {
		assignment := appointments.AppointmentAdvisor{
			AppointmentTypeID: appointmentType.ID,
			AdvisorID:         advisorID,
			Priority:          i + 1,
			IsActive:          true,
		}
		if err := database.DB.Create(&assignment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign advisor"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"id": appointmentType.ID})
}

// AttachTypeDiscount links a discount rule to an appointment type.
func AttachTypeDiscount(c *gin.Context) {
	typeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type id"})
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

	var appointmentType appointments.AppointmentType
	if err := database.DB.First(&appointmentType, typeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment type not found"})
		return
	}

	join := appointments.AppointmentTypeDiscount{
		AppointmentTypeID: appointmentType.ID,
		DiscountID:        body.DiscountID,
		Priority:          body.Priority,
	}
	if err := database.DB.Create(&join).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach discount"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": join.ID})
}

// CreateSlot opens a manual slot. The end time is derived from the type's
// duration, never taken from the request.
func CreateSlot(c *gin.Context) {
	var body struct {
		AppointmentTypeID uint      `json:"appointment_type_id"`
		AdvisorID         uint      `json:"advisor_id"`
		StartDatetime     time.Time `json:"start_datetime"`
		Capacity          int       `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.AppointmentTypeID == 0 || body.AdvisorID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointment_type_id and advisor_id are required"})
		return
	}
	if body.StartDatetime.IsZero() || !body.StartDatetime.After(time.Now().UTC()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_datetime must be in the future"})
		return
	}

	var appointmentType appointments.AppointmentType
	if err := database.DB.First(&appointmentType, body.AppointmentTypeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment type not found"})
		return
	}
	var advisor appointments.Advisor
	if err := database.DB.First(&advisor, body.AdvisorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advisor not found"})
		return
	}

	capacity := body.Capacity
	if capacity < 1 {
		capacity = 1
	}

	slot := appointments.AppointmentSlot{
		AppointmentTypeID: appointmentType.ID,
		AdvisorID:         advisor.ID,
		StartDatetime:     body.StartDatetime,
		EndDatetime:       body.StartDatetime.Add(appointmentType.Duration()),
		Capacity:          capacity,
		IsAvailable:       true,
		CreatedBy:         c.GetUint("user_id"),
	}
	if err := database.DB.Create(&slot).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create slot"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": slot.ID, "end_datetime": slot.EndDatetime})
}

// ListAdvisors lists advisor profiles with their linked users.
func ListAdvisors(c *gin.Context) {
	var advisors []appointments.Advisor
	err := database.DB.
		Preload("User").
		Where("is_active = ?", true).
		Find(&advisors).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load advisors"})
		return
	}

	c.JSON(http.StatusOK, advisors)
}

// CreateAdvisor promotes a user into an advisor profile.
func CreateAdvisor(c *gin.Context) {
	var body struct {
		UserID          uint   `json:"user_id"`
		Headline        string `json:"headline"`
		Bio             string `json:"bio"`
		Specializations string `json:"specializations"`
		MeetingURL      string `json:"meeting_url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, body.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	advisor := appointments.Advisor{
		UserID:          user.ID,
		Headline:        body.Headline,
		Bio:             body.Bio,
		Specializations: body.Specializations,
		MeetingURL:      body.MeetingURL,
		IsActive:        true,
	}
	if err := database.DB.Create(&advisor).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already an advisor"})
		return
	}

	if !user.IsAdvisor {
		database.DB.Model(&user).Update("is_advisor", true)
	}

	c.JSON(http.StatusCreated, gin.H{"id": advisor.ID})
}
