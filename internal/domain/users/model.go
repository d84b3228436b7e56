package users

import (
	"time"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	FirstName    string
	LastName     string
	Phone        string
	Role         string `gorm:"default:'user'"`
	IsActive     bool   `gorm:"default:true"`
	IsAdvisor    bool   `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
