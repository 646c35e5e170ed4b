// Package notify delivers the assembled report by email. Delivery failure is
// non-fatal for the run; the caller logs and moves on.
package notify

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Notifier hands a pre-formatted report off to an outbound channel.
type Notifier interface {
	Send(subject, body string) error
}

// Mailer sends plain-text reports over SMTP with STARTTLS.
type Mailer struct {
	host     string
	port     int
	sender   string
	password string
	to       string
}

// NewMailer creates a Mailer for the given SMTP account.
func NewMailer(host string, port int, sender, password, to string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
		to:       to,
	}
}

// Send delivers one plain-text message.
func (m *Mailer) Send(subject, body string) error {
	mail := email.NewEmail()
	mail.From = m.sender
	mail.To = []string{m.to}
	mail.Subject = subject
	mail.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.sender, m.password, m.host)
	tlsCfg := &tls.Config{ServerName: m.host}
	if err := mail.SendWithStartTLS(addr, auth, tlsCfg); err != nil {
		return fmt.Errorf("mail delivery failed: %w", err)
	}
	return nil
}
