package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/party-rsvp-backend/config"
)

func TestBuildMIMEMessage(t *testing.T) {
	raw, err := buildMIMEMessage("Party RSVP <party@example.com>", Message{
		To:      []string{"host@example.com", "cohost@example.com"},
		Subject: "New RSVP: Zoë is coming",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	})
	require.NoError(t, err)
	s := string(raw)

	assert.True(t, strings.HasPrefix(s, "From: Party RSVP <party@example.com>\r\n"))
	assert.Contains(t, s, "To: host@example.com, cohost@example.com\r\n")
	assert.Contains(t, s, "Subject: =?UTF-8?q?")
	assert.Contains(t, s, "MIME-Version: 1.0\r\n")
	assert.Contains(t, s, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, s, "plain body")
	assert.Contains(t, s, "<p>html body</p>")
	assert.Less(t, strings.Index(s, "text/plain"), strings.Index(s, "text/html"))
}

func TestBuildMIMEMessageSkipsEmptyParts(t *testing.T) {
	raw, err := buildMIMEMessage("a@example.com", Message{To: []string{"b@example.com"}, Subject: "hi", Text: "only text"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), "text/plain")
	assert.NotContains(t, string(raw), "text/html")
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "a@example.com", formatAddress("", "a@example.com"))
	assert.Equal(t, "Host <a@example.com>", formatAddress("Host", "a@example.com"))
}

func TestNewMailerFallsBackToNoop(t *testing.T) {
	m, err := NewMailer(&config.Config{MailProvider: "smtp"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "noop", m.Name())
	assert.NoError(t, m.Send(context.Background(), Message{To: []string{"x@example.com"}}))
}

func TestNewMailerPicksConfiguredTransport(t *testing.T) {
	m, err := NewMailer(&config.Config{
		MailProvider: "smtp",
		MailServer:   "smtp.example.com",
		MailPort:     "587",
		MailUsername: "user@example.com",
		MailPassword: "secret",
	}, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, "smtp", m.Name())
	assert.Equal(t, "user@example.com", m.(*SMTPMailer).FromAddr)

	m, err = NewMailer(&config.Config{
		MailProvider:       "ses",
		MailDefaultSender:  "party@example.com",
		SESRegion:          "us-east-1",
		SESAccessKeyID:     "AKIA",
		SESSecretAccessKey: "secret",
	}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "ses", m.Name())
}
