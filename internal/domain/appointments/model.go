package appointments

import (
	"time"

	"membership-app/internal/domain/pricing"
	"membership-app/internal/domain/users"
)

// Advisor is a user extension profile. Advisors own slots and are assigned to
// appointment types through a priority-ordered join.
type Advisor struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"not null;uniqueIndex:idx_advisors_user_id"`
	User            users.User
	Headline        string
	Bio             string
	Specializations string
	MeetingURL      string
	IsActive        bool `gorm:"default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type AppointmentType struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"not null"`
	Description     string
	ServiceCategory string `gorm:"default:'general'"`
	DurationMinutes int    `gorm:"default:60"`
	IsGroupAllowed  bool   `gorm:"default:false"`
	MaxParticipants int    `gorm:"default:1"`

	BasePrice float64 `gorm:"default:0"`
	Currency  string  `gorm:"type:varchar(3);default:'USD'"`

	IsVirtual            bool `gorm:"default:true"`
	RequiresConfirmation bool `gorm:"default:true"`
	DisplayOrder         int  `gorm:"default:1"`
	IsActive             bool `gorm:"default:true"`

	AdvisorAssignments []AppointmentAdvisor
	Discounts          []AppointmentTypeDiscount

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration converts the configured minutes into a time.Duration; slot end
// times are derived as start + Duration.
func (t *AppointmentType) Duration() time.Duration {
	minutes := t.DurationMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

type AppointmentAdvisor struct {
	ID                uint `gorm:"primaryKey"`
	AppointmentTypeID uint `gorm:"not null;index"`
	AdvisorID         uint `gorm:"not null"`
	Advisor           Advisor
	Priority          int  `gorm:"default:1"`
	IsActive          bool `gorm:"default:true"`
}

type AppointmentTypeDiscount struct {
	ID                uint `gorm:"primaryKey"`
	AppointmentTypeID uint `gorm:"not null;index"`
	DiscountID        uint `gorm:"not null"`
	Discount          pricing.Discount
	Priority          int `gorm:"default:1"`
}

type AppointmentSlot struct {
	ID                uint `gorm:"primaryKey"`
	AppointmentTypeID uint `gorm:"not null;index"`
	AppointmentType   AppointmentType
	AdvisorID         uint `gorm:"not null;index"`
	Advisor           Advisor

	StartDatetime time.Time `gorm:"not null"`
	EndDatetime   time.Time `gorm:"not null"`

	// Invariant: 0 <= ReservedSeats <= Capacity. IsAvailable flips to false
	// exactly when ReservedSeats reaches Capacity; both are only mutated
	// through ReserveSeat/ReleaseSeat.
	Capacity      int  `gorm:"default:1"`
	ReservedSeats int  `gorm:"default:0"`
	IsAvailable   bool `gorm:"default:true"`

	IsAutoGenerated bool `gorm:"default:false"`
	CreatedBy       uint
	CreatedAt       time.Time
}

func (s *AppointmentSlot) RemainingSeats() int {
	left := s.Capacity - s.ReservedSeats
	if left < 0 {
		return 0
	}
	return left
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

type Appointment struct {
	ID        uint   `gorm:"primaryKey"`
	Reference string `gorm:"uniqueIndex:idx_appointments_reference"`

	AppointmentTypeID uint `gorm:"not null;index"`
	AppointmentType   AppointmentType
	AdvisorID         uint `gorm:"not null"`
	Advisor           Advisor
	SlotID            uint `gorm:"not null;index"`
	Slot              AppointmentSlot
	UserID            uint `gorm:"not null;index"`
	User              users.User

	MembershipType *string `gorm:"type:varchar(50)"`
	IsGroup        bool    `gorm:"default:false"`

	StartDatetime time.Time `gorm:"not null"`
	EndDatetime   time.Time `gorm:"not null"`

	Status string `gorm:"type:varchar(20);default:'pending'"`

	BasePrice       float64 `gorm:"default:0"`
	FinalPrice      float64 `gorm:"default:0"`
	DiscountApplied float64 `gorm:"default:0"`

	UserNotes          string
	CancellationReason string
	AdvisorConfirmed   bool `gorm:"default:false"`
	AdvisorConfirmedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
