package routes

import (
	adminapi "membership-app/internal/api/admin"
	appointmentsapi "membership-app/internal/api/appointments"
	authapi "membership-app/internal/api/auth"
	"membership-app/internal/api/billing"
	eventsapi "membership-app/internal/api/events"
	membershipsapi "membership-app/internal/api/memberships"
	stripewebhooks "membership-app/internal/api/stripewebhook"
	"membership-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public catalog, priced at base rate (or ?membership_type= preview)
	r.GET("/events", eventsapi.ListEvents)
	r.GET("/events/:slug", eventsapi.GetEvent)
	r.GET("/appointment-types", appointmentsapi.ListTypes)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", membershipsapi.GetCurrentUser)
	auth.GET("/membership", membershipsapi.GetUserMembership)
	auth.GET("/benefits", membershipsapi.ListBenefits)
	auth.GET("/payments", billing.GetPaymentHistory)
	auth.POST("/create-payment-intent", billing.CreatePaymentIntent)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/events/:id/register", eventsapi.RegisterForEvent)
	auth.POST("/registrations/:id/cancel", eventsapi.CancelRegistration)
	auth.GET("/registrations", eventsapi.ListMyRegistrations)

	auth.GET("/appointments", appointmentsapi.ListMyAppointments)
	auth.POST("/appointments/:id/cancel", appointmentsapi.CancelAppointment)

	// Members only
	member := auth.Group("/")
	member.Use(middleware.RequireActiveMembership())
	member.GET("/appointment-slots", appointmentsapi.ListAvailableSlots)
	member.POST("/appointments", appointmentsapi.BookAppointment)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.GetDashboardStats)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/user/:id/active", adminapi.SetUserActive)
	admin.GET("/payments", adminapi.ListAllPayments)

	admin.POST("/events", eventsapi.CreateEvent)
	admin.PUT("/events/:id", eventsapi.UpdateEvent)
	admin.POST("/events/:id/status", eventsapi.SetPublishStatus)
	admin.POST("/events/:id/discounts", eventsapi.AttachDiscount)
	admin.GET("/events/:id/registrations", eventsapi.ListEventRegistrations)

	admin.POST("/appointment-types", appointmentsapi.CreateType)
	admin.POST("/appointment-types/:id/discounts", appointmentsapi.AttachTypeDiscount)
	admin.POST("/appointment-slots", appointmentsapi.CreateSlot)
	admin.POST("/appointments/:id/confirm", appointmentsapi.ConfirmAppointment)
	admin.GET("/advisors", appointmentsapi.ListAdvisors)
	admin.POST("/advisors", appointmentsapi.CreateAdvisor)

	admin.GET("/discounts", adminapi.ListDiscounts)
	admin.POST("/discounts", adminapi.CreateDiscount)
	admin.GET("/email-logs", adminapi.ListEmailLogs)
	admin.GET("/activity-logs", adminapi.ListActivityLogs)
	admin.GET("/notification-settings", adminapi.ListNotificationSettings)
	admin.POST("/notification-settings/:type", adminapi.ToggleNotificationSetting)
}
