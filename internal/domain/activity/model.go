package activity

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// Action names recorded in the activity log.
const (
	ActionRegisterEvent      = "register_event"
	ActionCancelRegistration = "cancel_registration"
	ActionBookAppointment    = "book_appointment"
	ActionCancelAppointment  = "cancel_appointment"
	ActionConfirmAppointment = "confirm_appointment"
	ActionPayment            = "payment"
)

// Log is the per-user audit trail of mutating actions, separate from the
// email log.
type Log struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Action      string `gorm:"type:varchar(50);not null;index"`
	EntityType  string `gorm:"type:varchar(50)"`
	EntityID    uint
	Description string
	IPAddress   string    `gorm:"type:varchar(45)"`
	UserAgent   string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"index"`
}

// Record writes one audit entry. Best effort: the action it describes has
// already happened, so a write failure is logged and swallowed.
func Record(db *gorm.DB, entry Log) {
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("Error writing activity log: %v", err)
	}
}
