package integrations

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends plain-text email over SMTP with STARTTLS.
type Mailer struct {
	host string
	port int
	user string
	pass string
}

// NewMailer creates a Mailer. Missing credentials are allowed; Send will
// report that SMTP is not configured.
func NewMailer(host string, port int, user, pass string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass}
}

// Send delivers a message to a single recipient and returns a status string.
func (m *Mailer) Send(to, subject, body string) string {
	if m.host == "" || m.user == "" || m.pass == "" {
		return "SMTP credentials not set."
	}

	msg := strings.Join([]string{
		"From: " + m.user,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := smtp.SendMail(addr, auth, m.user, []string{to}, []byte(msg)); err != nil {
		return fmt.Sprintf("Failed to send email: %v", err)
	}

	return fmt.Sprintf("Email sent to %s.", to)
}
