package stripewebhooks

import (
	"fmt"

	"membership-app/database"
	"membership-app/internal/api/billing"
	"membership-app/internal/domain/activity"
	domainbilling "membership-app/internal/domain/billing"
	"membership-app/internal/domain/notifications"
	"membership-app/internal/domain/users"
	"membership-app/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

// handlePaymentIntentSucceeded marks our payment row succeeded, activates the
// subscription it bought and sends the confirmation email. Already-succeeded
// payments are acknowledged without a second subscription.
func handlePaymentIntentSucceeded(c *gin.Context, intent *stripe.PaymentIntent) error {
	var payment domainbilling.Payment
	err := database.DB.Where("stripe_payment_intent_id = ?", intent.ID).First(&payment).Error
	if err != nil {
		return fmt.Errorf("payment not found for intent %s: %w", intent.ID, err)
	}

	if payment.Status == domainbilling.PaymentStatusSucceeded {
		return nil
	}

	if err := database.DB.Model(&domainbilling.Payment{}).
		Where("id = ?", payment.ID).
		Update("status", domainbilling.PaymentStatusSucceeded).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	payment.Status = domainbilling.PaymentStatusSucceeded

	subscription, err := billing.ActivateSubscription(&payment)
	if err != nil {
		return err
	}

	var user users.User
	if err := database.DB.First(&user, payment.UserID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	activity.Record(database.DB, activity.Log{
		UserID:      user.ID,
		Action:      activity.ActionPayment,
		EntityType:  "payment",
		EntityID:    payment.ID,
		Description: fmt.Sprintf("Pagó la membresía %s", payment.MembershipType),
	})

	// Confirmation mail is best effort; the subscription stands either way.
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

	return nil
}
