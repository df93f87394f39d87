// internal/mailer/mailer.go
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"leadflow-backend/internal/config"
	"leadflow-backend/internal/model"
)

// Sender is the delivery collaborator. Any non-nil error means the message
// did not go out; the engine does not classify the reason further.
type Sender interface {
	Send(to, name, subject, body string) error
}

// SMTPSender delivers follow-up emails over SMTP with STARTTLS.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender builds a sender from configuration.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Send delivers one email. The body is wrapped in the standard follow-up
// HTML envelope with the recipient's name in the greeting.
func (s *SMTPSender) Send(to, name, subject, body string) error {
	if s.host == "" || s.username == "" || s.password == "" {
		return fmt.Errorf("smtp sender misconfigured: set host, username and password")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	fmt.Fprintf(&msg, "<h2>Hi %s,</h2>\n<p>%s</p>\n<p>Best regards,<br>Sales Team</p>\r\n", name, body)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.username, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// Subject builds the follow-up subject line from the lead's product interest.
func Subject(lead *model.Lead) string {
	return fmt.Sprintf("Following up on your %s inquiry", lead.ProductInterest)
}

// ResolveMessage substitutes lead placeholders into a message template.
func ResolveMessage(template string, lead *model.Lead) string {
	resolved := template
	resolved = strings.ReplaceAll(resolved, "{name}", lead.Name)
	resolved = strings.ReplaceAll(resolved, "{category}", string(lead.Category))
	resolved = strings.ReplaceAll(resolved, "{product_interest}", lead.ProductInterest)
	return resolved
}
