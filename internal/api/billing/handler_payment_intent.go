package billing

import (
	"fmt"
	"net/http"
	"time"

	"membership-app/config"
	"membership-app/database"
	"membership-app/internal/domain/activity"
	"membership-app/internal/domain/billing"
	"membership-app/internal/domain/memberships"
	"membership-app/internal/domain/notifications"
	"membership-app/internal/domain/users"
	"membership-app/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/paymentintent"
)

const subscriptionDays = 365

// CreatePaymentIntent starts a membership purchase. In demo mode the payment
// succeeds immediately and the subscription is created on the spot; in real
// mode the intent stays pending until the webhook confirms it.
func CreatePaymentIntent(c *gin.Context) {
	var body struct {
		MembershipType string `json:"membership_type"`
		Amount         int64  `json:"amount"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	tierAmount, ok := memberships.CheckoutAmountCents(body.MembershipType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership type"})
		return
	}
	amount := body.Amount
	if amount <= 0 {
		amount = tierAmount
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}
	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if config.PAYMENT_DEMO_MODE {
		fakeIntentID := fmt.Sprintf("pi_demo_%d_%d", user.ID, time.Now().UnixNano())

		payment := billing.Payment{
			UserID:                user.ID,
			StripePaymentIntentID: fakeIntentID,
			AmountCents:           amount,
			MembershipType:        body.MembershipType,
			Status:                billing.PaymentStatusSucceeded,
		}
		if err := database.DB.Create(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
			return
		}

		subscription, err := ActivateSubscription(&payment)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
			return
		}

		activity.Record(database.DB, activity.Log{
			UserID:      user.ID,
			Action:      activity.ActionPayment,
			EntityType:  "payment",
			EntityID:    payment.ID,
			Description: fmt.Sprintf("Pagó la membresía %s", payment.MembershipType),
			IPAddress:   c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
		})

		subject, html := notify.PaymentConfirmationEmail(&user, &payment, subscription)
		notify.Send(c.Request.Context(), notify.Email{
			Type:              notifications.TypeMembershipPayment,
			RecipientID:       &user.ID,
			RecipientEmail:    user.Email,
			RecipientName:     user.FullName(),
			Subject:           subject,
			HTML:              html,
			RelatedEntityType: "payment",
			RelatedEntityID:   payment.ID,
		})

		c.JSON(http.StatusOK, gin.H{
			"client_secret": "demo_client_secret",
			"payment_id":    payment.ID,
			"demo_mode":     true,
		})
		return
	}

	stripe.Key = config.STRIPE_SECRET_KEY
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Metadata: map[string]string{
			"user_id":         fmt.Sprint(user.ID),
			"membership_type": body.MembershipType,
		},
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create payment intent", "details": err.Error()})
		return
	}

	payment := billing.Payment{
		UserID:                user.ID,
		StripePaymentIntentID: intent.ID,
		AmountCents:           amount,
		MembershipType:        body.MembershipType,
		Status:                billing.PaymentStatusPending,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_secret": intent.ClientSecret,
		"payment_id":    payment.ID,
		"demo_mode":     false,
	})
}

// ActivateSubscription creates the one-year subscription a succeeded payment
// buys. Shared by the demo path and the webhook.
func ActivateSubscription(payment *billing.Payment) (*memberships.Subscription, error) {
	now := time.Now().UTC()
	subscription := memberships.Subscription{
		UserID:         payment.UserID,
		PaymentID:      payment.ID,
		MembershipType: payment.MembershipType,
		Status:         memberships.SubscriptionStatusActive,
		StartDate:      now,
		EndDate:        now.AddDate(0, 0, subscriptionDays),
	}
	if err := database.DB.Create(&subscription).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return &subscription, nil
}

func GetPaymentHistory(c *gin.Context) {
	userID := c.GetUint("user_id")

	var payments []billing.Payment
	err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
