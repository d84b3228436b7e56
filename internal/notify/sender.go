package notify

import (
	"context"
	"fmt"
	"net/smtp"
)

// Message is one outbound email handed to a transport.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message. The SMTP implementation is the real
// transport; tests plug in fakes.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends mail through a plain-auth SMTP relay.
type SMTPSender struct {
	Host     string
	Port     string
	From     string
	Password string
}

func NewSMTPSender(host, port, from, password string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, From: from, Password: password}
}

func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)

	message := []byte("Subject: " + msg.Subject + "\r\n" +
		"From: " + s.From + "\r\n" +
		"To: " + msg.To + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		msg.HTML + "\r\n")

	if err := smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{msg.To}, message); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
