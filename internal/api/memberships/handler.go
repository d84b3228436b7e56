package memberships

import (
	"net/http"
	"time"

	"membership-app/database"
	"membership-app/internal/domain/memberships"
	"membership-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type MeResponse struct {
	ID         uint                `json:"id"`
	Email      string              `json:"email"`
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name"`
	Phone      string              `json:"phone,omitempty"`
	Role       string              `json:"role"`
	Membership *MembershipResponse `json:"membership"`
}

type MembershipResponse struct {
	Tier      string    `json:"type"`
	Source    string    `json:"source"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
}

func toMembershipResponse(active *memberships.ActiveMembership) *MembershipResponse {
	if active == nil {
		return nil
	}
	return &MembershipResponse{
		Tier:      active.Tier,
		Source:    active.Source,
		StartDate: active.StartDate,
		EndDate:   active.EndDate,
		IsActive:  true,
	}
}

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	active, err := memberships.ResolveActive(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve membership"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
		Role:       user.Role,
		Membership: toMembershipResponse(active),
	})
}

// GetUserMembership answers the caller's paid tier, 404 when there is none.
func GetUserMembership(c *gin.Context) {
	userID := c.GetUint("user_id")

	active, err := memberships.ResolveActive(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve membership"})
		return
	}
	if active == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active membership found"})
		return
	}

	c.JSON(http.StatusOK, toMembershipResponse(active))
}

// ListBenefits lists the benefits of the caller's tier; no paid tier means no
// benefit listing.
func ListBenefits(c *gin.Context) {
	userID := c.GetUint("user_id")

	active, err := memberships.ResolveActive(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve membership"})
		return
	}
	if active == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "An active membership is required to access benefits"})
		return
	}

	var benefits []memberships.Benefit
	err = database.DB.
		Where("membership_type = ? AND is_active = ?", active.Tier, true).
		Find(&benefits).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load benefits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"membership_type": active.Tier,
		"benefits":        benefits,
	})
}
