package database

import (
	"errors"
	"fmt"
	"log"
	"os"

	"membership-app/internal/domain/activity"
	"membership-app/internal/domain/appointments"
	"membership-app/internal/domain/billing"
	"membership-app/internal/domain/events"
	"membership-app/internal/domain/memberships"
	"membership-app/internal/domain/notifications"
	"membership-app/internal/domain/pricing"
	"membership-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// core
		&users.User{},
		&memberships.Membership{},
		&memberships.Subscription{},
		&memberships.Benefit{},
		&billing.Payment{},

		// pricing
		&pricing.Discount{},

		// events
		&events.Event{},
		&events.EventDiscount{},
		&events.EventRegistration{},

		// appointments
		&appointments.Advisor{},
		&appointments.AppointmentType{},
		&appointments.AppointmentAdvisor{},
		&appointments.AppointmentTypeDiscount{},
		&appointments.AppointmentSlot{},
		&appointments.Appointment{},

		// notifications
		&notifications.EmailLog{},
		&notifications.NotificationSetting{},

		// audit
		&activity.Log{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	seedNotificationSettings()
	seedBenefits()

	fmt.Println("✅ Connected and migrated successfully")
}

// seedNotificationSettings creates an enabled setting row per notification
// type so the admin panel can toggle them.
func seedNotificationSettings() {
	for _, notificationType := range notifications.AllTypes {
		var existing notifications.NotificationSetting
		err := DB.Where("notification_type = ?", notificationType).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			DB.Create(&notifications.NotificationSetting{
				NotificationType: notificationType,
				IsEnabled:        true,
			})
		}
	}
}

func seedBenefits() {
	benefits := []memberships.Benefit{
		{Name: "Acceso a Revistas", Description: "Acceso completo a la biblioteca de revistas especializadas", MembershipType: memberships.TierBasic},
		{Name: "Base de Datos", Description: "Acceso a bases de datos de investigación", MembershipType: memberships.TierBasic},
		{Name: "Asesoría de Publicación", Description: "Sesiones de asesoría para publicaciones académicas", MembershipType: memberships.TierPremium},
		{Name: "Soporte Prioritario", Description: "Soporte técnico prioritario", MembershipType: memberships.TierPremium},
	}

	for _, benefit := range benefits {
		var existing memberships.Benefit
		err := DB.Where("name = ?", benefit.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			benefit.IsActive = true
			DB.Create(&benefit)
		}
	}
}
