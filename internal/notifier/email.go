package notifier

import (
	"fmt"
	"net/smtp"
	"strings"
)

// EmailNotifier sends reports over SMTP.
type EmailNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
	Subject  string
}

// NewEmailNotifier creates a notifier with the default subject line.
func NewEmailNotifier(host string, port int, username, password, from string, to []string) *EmailNotifier {
	return &EmailNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
		Subject:  "SwingSentinel Alert",
	}
}

func (e *EmailNotifier) Name() string { return "email" }

// Send delivers the message to every configured recipient.
func (e *EmailNotifier) Send(text string) error {
	if e.Host == "" || e.From == "" || len(e.To) == 0 {
		return fmt.Errorf("email notifier not configured: host, from, and to are required")
	}
	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	var auth smtp.Auth
	if e.Username != "" {
		auth = smtp.PlainAuth("", e.Username, e.Password, e.Host)
	}
	if err := smtp.SendMail(addr, auth, e.From, e.To, e.buildMessage(text)); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}
	return nil
}

// buildMessage assembles the RFC 5322 headers and body.
func (e *EmailNotifier) buildMessage(text string) []byte {
	var b strings.Builder
	b.WriteString("From: " + e.From + "\r\n")
	b.WriteString("To: " + strings.Join(e.To, ", ") + "\r\n")
	b.WriteString("Subject: " + e.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(text)
	return []byte(b.String())
}
