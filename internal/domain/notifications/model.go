package notifications

import "time"

const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Notification type keys. Each has a NotificationSetting row that can disable
// it globally.
const (
	TypeWelcome              = "welcome"
	TypeMembershipPayment    = "membership_payment"
	TypeMembershipExpiring   = "membership_expiring"
	TypeMembershipExpired    = "membership_expired"
	TypeMembershipRenewed    = "membership_renewed"
	TypeEventRegistration    = "event_registration"
	TypeEventCancellation    = "event_cancellation"
	TypeEventConfirmation    = "event_confirmation"
	TypeEventUpdate          = "event_update"
	TypeAppointmentBooked    = "appointment_booked"
	TypeAppointmentConfirmed = "appointment_confirmation"
	TypeAppointmentCancelled = "appointment_cancellation"
	TypeAppointmentReminder  = "appointment_reminder"
)

// AllTypes lists every notification type so settings rows can be seeded.
var AllTypes = []string{
	TypeWelcome,
	TypeMembershipPayment,
	TypeMembershipExpiring,
	TypeMembershipExpired,
	TypeMembershipRenewed,
	TypeEventRegistration,
	TypeEventCancellation,
	TypeEventConfirmation,
	TypeEventUpdate,
	TypeAppointmentBooked,
	TypeAppointmentConfirmed,
	TypeAppointmentCancelled,
	TypeAppointmentReminder,
}

// EmailLog is the audit record of every send attempt outcome, success or not.
type EmailLog struct {
	ID             uint `gorm:"primaryKey"`
	FromEmail      string
	RecipientID    *uint `gorm:"index"`
	RecipientEmail string
	RecipientName  string
	Subject        string
	HTMLContent    string `gorm:"type:text"`
	EmailType      string `gorm:"type:varchar(50);index"`

	RelatedEntityType *string `gorm:"type:varchar(50)"`
	RelatedEntityID   *uint

	Status       string `gorm:"type:varchar(20)"`
	ErrorMessage string
	RetryCount   int
	SentAt       *time.Time
	CreatedAt    time.Time `gorm:"index"`
}

// NotificationSetting gates whether sends of a type are attempted at all.
type NotificationSetting struct {
	ID               uint   `gorm:"primaryKey"`
	NotificationType string `gorm:"not null;uniqueIndex:idx_notification_settings_type"`
	IsEnabled        bool   `gorm:"default:true"`
	UpdatedAt        time.Time
}
