// Package mail sends the HTML notification mails over SMTP.
package mail

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

// ErrNotConfigured is returned when SMTP_HOST is empty
var ErrNotConfigured = errors.New("smtp not configured")

// Settings are read from SMTP_* on every send so tests and reloads see changes
type Settings struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

func LoadSettings() Settings {
	return Settings{
		Host:     env.GetEnv("SMTP_HOST", ""),
		Port:     env.GetEnv("SMTP_PORT", "587"),
		Username: env.GetEnv("SMTP_USERNAME", ""),
		Password: env.GetEnv("SMTP_PASSWORD", ""),
		Sender:   env.GetEnv("SMTP_SENDER", "no-reply@gritgym.ph"),
	}
}

// Configured reports whether an SMTP host is set
func Configured() bool {
	return LoadSettings().Host != ""
}

// buildMessage renders the headers and body. Subjects are Q-encoded so peso signs survive.
func buildMessage(from, to, subject, body string, date time.Time) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", date.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}

// SendMail delivers one HTML mail to a single recipient
func SendMail(to, subject, body string) error {
	s := LoadSettings()
	if s.Host == "" {
		return ErrNotConfigured
	}

	var auth smtp.Auth
	if s.Username != "" && s.Password != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	addr := net.JoinHostPort(s.Host, s.Port)
	msg := buildMessage(s.Sender, to, subject, body, time.Now())
	if err := smtp.SendMail(addr, auth, s.Sender, []string{to}, msg); err != nil {
		return fmt.Errorf("send to %s via %s: %w", to, addr, err)
	}
	log.Infof("[Mail] Sent %q to %s", subject, to)
	return nil
}
