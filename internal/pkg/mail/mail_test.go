package mail

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendMailWithoutHost(t *testing.T) {
	t.Setenv("SMTP_HOST", "")

	assert.False(t, Configured())
	assert.ErrorIs(t, SendMail("member@example.com", "Hello", "<p>hi</p>"), ErrNotConfigured)
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_SENDER", "")

	s := LoadSettings()
	assert.True(t, Configured())
	assert.Equal(t, "587", s.Port)
	assert.Equal(t, "no-reply@gritgym.ph", s.Sender)
}

func TestBuildMessage(t *testing.T) {
	date := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	msg := string(buildMessage("desk@gritgym.ph", "juan@example.com", "Paid ₱1,200", "<p>ok</p>", date))

	head, body, found := strings.Cut(msg, "\r\n\r\n")
	assert.True(t, found)
	assert.Equal(t, "<p>ok</p>", body)
	assert.Contains(t, head, "To: juan@example.com\r\n")
	assert.Contains(t, head, "Subject: =?utf-8?q?")
	assert.NotContains(t, head, "₱")
	assert.Contains(t, head, "Date: Sun, 01 Mar 2026 09:00:00 +0000")
	assert.Contains(t, head, "Content-Type: text/html; charset=UTF-8")
}
