package middleware

import (
	"net/http"

	"membership-app/database"
	"membership-app/internal/domain/memberships"

	"github.com/gin-gonic/gin"
)

// RequireActiveMembership blocks callers without a valid paid tier. The
// resolved membership is stashed in the context so handlers don't re-query.
func RequireActiveMembership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		active, err := memberships.ResolveActive(database.DB, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve membership"})
			return
		}
		if active == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "An active membership is required",
			})
			return
		}

		c.Set("membership", active)
		c.Next()
	}
}

// MembershipFromContext returns the membership stored by the guard, or nil.
func MembershipFromContext(c *gin.Context) *memberships.ActiveMembership {
	value, exists := c.Get("membership")
	if !exists {
		return nil
	}
	active, ok := value.(*memberships.ActiveMembership)
	if !ok {
		return nil
	}
	return active
}
