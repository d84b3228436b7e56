package notify

import (
	"context"
	"log"
	"time"

	"membership-app/internal/domain/appointments"
	"membership-app/internal/domain/memberships"
	"membership-app/internal/domain/notifications"
	"membership-app/internal/domain/users"

	"gorm.io/gorm"
)

var expiryWarningDays = []int{30, 15, 7, 1}

var reminderHours = []int{24, 48}

// Worker periodically scans for expiring memberships and upcoming
// appointments and sends reminder emails. Each item commits independently;
// duplicate sends are suppressed with an email-log lookback window rather
// than a lock.
type Worker struct {
	db     *gorm.DB
	mailer *Mailer
}

func NewWorker(db *gorm.DB, mailer *Mailer) *Worker {
	return &Worker{db: db, mailer: mailer}
}

// Start runs the periodic checks until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	log.Println("Notification worker started")
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Notification worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	w.checkExpiringMemberships(ctx)
	w.checkAppointmentReminders(ctx)
}

func (w *Worker) checkExpiringMemberships(ctx context.Context) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for _, daysLeft := range expiryWarningDays {
		dayStart := today.AddDate(0, 0, daysLeft)
		dayEnd := dayStart.Add(24 * time.Hour)

		var subs []memberships.Subscription
		err := w.db.WithContext(ctx).
			Where("status = ? AND end_date >= ? AND end_date < ?", memberships.SubscriptionStatusActive, dayStart, dayEnd).
			Find(&subs).Error
		if err != nil {
			log.Printf("Error fetching expiring subscriptions: %v", err)
			continue
		}

		for i := range subs {
			sub := &subs[i]
			var user users.User
			if err := w.db.First(&user, sub.UserID).Error; err != nil {
				continue
			}
			if w.alreadySent(user.ID, notifications.TypeMembershipExpiring, now.Add(-24*time.Hour)) {
				continue
			}
			subject, html := MembershipExpiringEmail(&user, sub, daysLeft)
			if w.mailer.Send(ctx, Email{
				Type:              notifications.TypeMembershipExpiring,
				RecipientID:       &user.ID,
				RecipientEmail:    user.Email,
				RecipientName:     user.FullName(),
				Subject:           subject,
				HTML:              html,
				RelatedEntityType: "subscription",
				RelatedEntityID:   sub.ID,
			}) {
				log.Printf("✅ Expiry warning sent to %s (%d days left)", user.Email, daysLeft)
			}
		}
	}

	w.markExpired(ctx, now)
}

// markExpired flips overdue subscriptions to expired and notifies the owner.
func (w *Worker) markExpired(ctx context.Context, now time.Time) {
	var overdue []memberships.Subscription
	err := w.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", memberships.SubscriptionStatusActive, now).
		Find(&overdue).Error
	if err != nil {
		log.Printf("Error fetching overdue subscriptions: %v", err)
		return
	}

	for i := range overdue {
		sub := &overdue[i]
		err := w.db.Model(&memberships.Subscription{}).
			Where("id = ?", sub.ID).
			Update("status", memberships.SubscriptionStatusExpired).Error
		if err != nil {
			log.Printf("Error expiring subscription %d: %v", sub.ID, err)
			continue
		}

		var user users.User
		if err := w.db.First(&user, sub.UserID).Error; err != nil {
			continue
		}
		if w.alreadySent(user.ID, notifications.TypeMembershipExpired, now.Add(-24*time.Hour)) {
			continue
		}
		subject, html := MembershipExpiredEmail(&user, sub)
		w.mailer.Send(ctx, Email{
			Type:              notifications.TypeMembershipExpired,
			RecipientID:       &user.ID,
			RecipientEmail:    user.Email,
			RecipientName:     user.FullName(),
			Subject:           subject,
			HTML:              html,
			RelatedEntityType: "subscription",
			RelatedEntityID:   sub.ID,
		})
	}
}

func (w *Worker) checkAppointmentReminders(ctx context.Context) {
	now := time.Now().UTC()

	for _, hoursBefore := range reminderHours {
		reminderTime := now.Add(time.Duration(hoursBefore) * time.Hour)
		windowStart := reminderTime.Add(-30 * time.Minute)
		windowEnd := reminderTime.Add(30 * time.Minute)

		var appts []appointments.Appointment
		err := w.db.WithContext(ctx).
			Preload("AppointmentType").
			Where("status = ? AND start_datetime >= ? AND start_datetime <= ?",
				appointments.StatusConfirmed, windowStart, windowEnd).
			Find(&appts).Error
		if err != nil {
			log.Printf("Error fetching appointments for reminders: %v", err)
			continue
		}

		for i := range appts {
			appt := &appts[i]
			var user users.User
			if err := w.db.First(&user, appt.UserID).Error; err != nil {
				continue
			}
			if w.alreadySent(user.ID, notifications.TypeAppointmentReminder, now.Add(-2*time.Hour)) {
				continue
			}
			subject, html := AppointmentReminderEmail(&user, appt, appt.AppointmentType.Name, hoursBefore)
			if w.mailer.Send(ctx, Email{
				Type:              notifications.TypeAppointmentReminder,
				RecipientID:       &user.ID,
				RecipientEmail:    user.Email,
				RecipientName:     user.FullName(),
				Subject:           subject,
				HTML:              html,
				RelatedEntityType: "appointment",
				RelatedEntityID:   appt.ID,
			}) {
				log.Printf("✅ Reminder sent to %s: appointment in %d hours", user.Email, hoursBefore)
			}
		}
	}
}

// alreadySent checks the email log for a delivered notification of the same
// type inside the lookback window.
func (w *Worker) alreadySent(recipientID uint, emailType string, since time.Time) bool {
	var count int64
	err := w.db.Model(&notifications.EmailLog{}).
		Where("recipient_id = ? AND email_type = ? AND status = ? AND created_at >= ?",
			recipientID, emailType, notifications.StatusSent, since).
		Count(&count).Error
	if err != nil {
		return false
	}
	return count > 0
}
