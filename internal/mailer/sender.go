package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/signalist/signalist/internal/digest"
)

// Sender delivers a rendered digest. Delivery and retry belong to the
// transport behind this interface, not to the consumer loop.
type Sender interface {
	Send(email digest.Email) error
}

// SMTPConfig holds the transport settings for the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers digests over plain-auth SMTP.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates an SMTP-backed sender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.From == "" {
		cfg.From = "Signalist Intelligence <intelligence@signalist.app>"
	}
	return &SMTPSender{cfg: cfg}
}

// Send delivers one email as a text/html message.
func (s *SMTPSender) Send(email digest.Email) error {
	headers := map[string]string{
		"From":         s.cfg.From,
		"To":           email.To,
		"Subject":      email.Subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	var msg strings.Builder
	for k, v := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, v)
	}
	msg.WriteString("\r\n")
	msg.WriteString(email.HTML)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := smtp.SendMail(addr, auth, envelopeAddr(s.cfg.From), []string{email.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send digest email: %w", err)
	}
	return nil
}

// envelopeAddr strips a display name down to the bare address SMTP expects.
func envelopeAddr(from string) string {
	if i := strings.IndexByte(from, '<'); i >= 0 {
		if j := strings.IndexByte(from[i:], '>'); j > 0 {
			return from[i+1 : i+j]
		}
	}
	return from
}
