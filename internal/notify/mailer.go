package notify

import (
	"context"
	"log"
	"time"

	"membership-app/internal/domain/notifications"

	"gorm.io/gorm"
)

const (
	maxHTMLAuditLen  = 5000
	maxErrorAuditLen = 1000
)

// Email is a templated notification to one recipient. Type selects the
// enable/disable gate and tags the audit record.
type Email struct {
	Type           string
	RecipientID    *uint
	RecipientEmail string
	RecipientName  string
	Subject        string
	HTML           string

	RelatedEntityType string
	RelatedEntityID   uint
}

// Mailer delivers emails with bounded retries and audits every terminal
// outcome in the email log. It never panics or returns an error past this
// boundary; callers get a bool and may ignore it.
type Mailer struct {
	db         *gorm.DB
	sender     Sender
	from       string
	maxRetries int
	retryDelay time.Duration
}

func NewMailer(db *gorm.DB, sender Sender, from string) *Mailer {
	return &Mailer{
		db:         db,
		sender:     sender,
		from:       from,
		maxRetries: 3,
		retryDelay: 2 * time.Second,
	}
}

// Send attempts delivery up to maxRetries times with linearly increasing
// backoff. Disabled notification types are audited as skipped without a
// single attempt.
func (m *Mailer) Send(ctx context.Context, e Email) bool {
	if !m.typeEnabled(e.Type) {
		log.Printf("Notification type %s disabled, skipping email to %s", e.Type, e.RecipientEmail)
		m.audit(e, notifications.StatusSkipped, "", 0, nil)
		return false
	}

	var lastErr error
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		err := m.sender.Send(ctx, Message{To: e.RecipientEmail, Subject: e.Subject, HTML: e.HTML})
		if err == nil {
			now := time.Now().UTC()
			m.audit(e, notifications.StatusSent, "", attempt-1, &now)
			return true
		}

		lastErr = err
		log.Printf("Error sending email (attempt %d/%d): %v", attempt, m.maxRetries, err)
		if attempt < m.maxRetries {
			time.Sleep(m.Backoff(attempt))
		}
	}

	log.Printf("❌ Email to %s failed after %d attempts", e.RecipientEmail, m.maxRetries)
	m.audit(e, notifications.StatusFailed, lastErr.Error(), m.maxRetries, nil)
	return false
}

// Backoff returns the wait after a failed attempt: retryDelay × attempt.
func (m *Mailer) Backoff(attempt int) time.Duration {
	return m.retryDelay * time.Duration(attempt)
}

func (m *Mailer) typeEnabled(notificationType string) bool {
	var setting notifications.NotificationSetting
	err := m.db.Where("notification_type = ?", notificationType).First(&setting).Error
	if err != nil {
		// No settings row means the type was never disabled.
		return true
	}
	return setting.IsEnabled
}

func (m *Mailer) audit(e Email, status, errMsg string, retryCount int, sentAt *time.Time) {
	entry := notifications.EmailLog{
		FromEmail:      m.from,
		RecipientID:    e.RecipientID,
		RecipientEmail: e.RecipientEmail,
		RecipientName:  e.RecipientName,
		Subject:        e.Subject,
		HTMLContent:    Truncate(e.HTML, maxHTMLAuditLen),
		EmailType:      e.Type,
		Status:         status,
		ErrorMessage:   Truncate(errMsg, maxErrorAuditLen),
		RetryCount:     retryCount,
		SentAt:         sentAt,
	}
	if e.RelatedEntityType != "" {
		entityType := e.RelatedEntityType
		entityID := e.RelatedEntityID
		entry.RelatedEntityType = &entityType
		entry.RelatedEntityID = &entityID
	}

	if err := m.db.Create(&entry).Error; err != nil {
		log.Printf("Error writing email log: %v", err)
	}
}

// Truncate caps s at n bytes for audit storage.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var std *Mailer

// Setup wires the package-level mailer used by the handlers.
func Setup(db *gorm.DB, sender Sender, from string) {
	std = NewMailer(db, sender, from)
}

// Send dispatches through the package-level mailer. Safe to call before
// Setup; it just reports false.
func Send(ctx context.Context, e Email) bool {
	if std == nil {
		log.Println("Mailer not configured, dropping email:", e.Subject)
		return false
	}
	return std.Send(ctx, e)
}
