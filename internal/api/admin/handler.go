package admin

import (
	"net/http"
	"strconv"
	"time"

	"membership-app/database"
	"membership-app/internal/domain/activity"
	"membership-app/internal/domain/billing"
	"membership-app/internal/domain/memberships"
	"membership-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats aggregates the numbers shown on the admin dashboard:
// user count, revenue, and active members per tier.
func GetDashboardStats(c *gin.Context) {
	var totalUsers int64
	if err := database.DB.Model(&users.User{}).Count(&totalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	var totalRevenueCents int64
	err := database.DB.Model(&billing.Payment{}).
		Where("status = ?", billing.PaymentStatusSucceeded).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&totalRevenueCents).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	var recentRevenueCents int64
	since := time.Now().UTC().AddDate(0, 0, -30)
	err = database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at > ?", billing.PaymentStatusSucceeded, since).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&recentRevenueCents).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	now := time.Now().UTC()
	membersByTier := gin.H{}
	for _, tier := range []string{memberships.TierBasic, memberships.TierPremium, memberships.TierEnterprise} {
		var count int64
		err := database.DB.Model(&memberships.Subscription{}).
			Where("membership_type = ? AND status = ? AND end_date > ?",
				tier, memberships.SubscriptionStatusActive, now).
			Count(&count).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
			return
		}
		membersByTier[tier] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":          totalUsers,
		"total_revenue_cents":  totalRevenueCents,
		"recent_revenue_cents": recentRevenueCents,
		"members_by_tier":      membersByTier,
	})
}

type UserSummary struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsAdvisor  bool      `json:"is_advisor"`
	CreatedAt  time.Time `json:"created_at"`
	Membership *string   `json:"membership_type"`
}

// ListAllUsers lists every user with their resolved paid tier.
func ListAllUsers(c *gin.Context) {
	var list []users.User
	if err := database.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]UserSummary, 0, len(list))
	for i := range list {
		u := &list[i]
		summary := UserSummary{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role,
			IsActive:  u.IsActive,
			IsAdvisor: u.IsAdvisor,
			CreatedAt: u.CreatedAt,
		}
		if active, err := memberships.ResolveActive(database.DB, u.ID); err == nil && active != nil {
			tier := active.Tier
			summary.Membership = &tier
		}
		out = append(out, summary)
	}

	c.JSON(http.StatusOK, gin.H{"users": out, "count": len(out)})
}

// GetUserDetails returns one user with membership and payment history.
func GetUserDetails(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	active, err := memberships.ResolveActive(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve membership"})
		return
	}

	var payments []billing.Payment
	err = database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var subscriptions []memberships.Subscription
	err = database.DB.
		Where("user_id = ?", user.ID).
		Order("end_date DESC").
		Find(&subscriptions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"first_name":  user.FirstName,
			"last_name":   user.LastName,
			"phone":       user.Phone,
			"role":        user.Role,
			"is_active":   user.IsActive,
			"is_advisor":  user.IsAdvisor,
			"created_at":  user.CreatedAt,
			"auth_method": user.AuthProvider,
		},
		"active_membership": active,
		"payments":          payments,
		"subscriptions":     subscriptions,
	})
}

// ListAllPayments lists payments across all users, newest first.
func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	err := database.DB.
		Order("created_at DESC").
		Limit(200).
		Find(&payments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// ListActivityLogs pages through the user action audit trail, optionally
// filtered by user or action.
func ListActivityLogs(c *gin.Context) {
	query := database.DB.Model(&activity.Log{})

	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
		query = query.Where("user_id = ?", userID)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	var logs []activity.Log
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}

// SetUserActive enables or disables a user account.
func SetUserActive(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var body struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_active is required"})
		return
	}

	res := database.DB.Model(&users.User{}).
		Where("id = ?", userID).
		Update("is_active", *body.IsActive)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": userID, "is_active": *body.IsActive})
}
