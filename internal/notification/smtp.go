package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/sharath018/party-rsvp-backend/config"
	"github.com/sharath018/party-rsvp-backend/internal/apperror"
)

const smtpDialTimeout = 10 * time.Second

// SMTPMailer sends through a plain SMTP relay, upgrading with STARTTLS when
// MAIL_USE_TLS is set.
type SMTPMailer struct {
	Host     string
	Port     string
	UseTLS   bool
	Username string
	Password string
	FromName string
	FromAddr string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	from := cfg.MailDefaultSender
	if from == "" {
		from = cfg.MailUsername
	}
	return &SMTPMailer{
		Host:     cfg.MailServer,
		Port:     cfg.MailPort,
		UseTLS:   cfg.MailUseTLS,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		FromName: cfg.MailFromName,
		FromAddr: from,
	}
}

func (e *SMTPMailer) Name() string { return "smtp" }

func (e *SMTPMailer) Send(ctx context.Context, msg Message) error {
	body, err := buildMIMEMessage(formatAddress(e.FromName, e.FromAddr), msg)
	if err != nil {
		return &apperror.TransportError{Provider: e.Name(), Err: err}
	}
	if err := e.send(ctx, msg.To, body); err != nil {
		return &apperror.TransportError{Provider: e.Name(), Err: err}
	}
	return nil
}

func (e *SMTPMailer) send(ctx context.Context, to []string, message []byte) error {
	addr := net.JoinHostPort(e.Host, e.Port)

	dialer := &net.Dialer{Timeout: smtpDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, e.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open SMTP session: %w", err)
	}
	defer client.Close()

	if e.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: e.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err = client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if e.Username != "" {
		auth := smtp.PlainAuth("", e.Username, e.Password, e.Host)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}

	if err = client.Mail(e.FromAddr); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, recipient := range to {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = writer.Write(message); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return client.Quit()
}

// buildMIMEMessage renders a multipart/alternative message with a text and an
// HTML part.
func buildMIMEMessage(from string, msg Message) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=\"UTF-8\"", msg.Text},
		{"text/html; charset=\"UTF-8\"", msg.HTML},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	headers := [][2]string{
		{"From", from},
		{"To", strings.Join(msg.To, ", ")},
		{"Subject", mime.QEncoding.Encode("UTF-8", msg.Subject)},
		{"Date", time.Now().UTC().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary())},
	}
	for _, h := range headers {
		fmt.Fprintf(&out, "%s: %s\r\n", h[0], h[1])
	}
	out.WriteString("\r\n")
	out.Write(body.Bytes())
	return out.Bytes(), nil
}
