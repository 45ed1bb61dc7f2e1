package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
)

// Config is the SMTP relay used for contact messages.
type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
	ToEmail   string
}

// EmailService handles sending emails via SMTP
type EmailService struct {
	cfg      Config
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
}

func NewEmailService(cfg Config) *EmailService {
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.Username
	}
	return &EmailService{cfg: cfg, sendMail: smtp.SendMail}
}

var contactEmailTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>New portfolio message</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <h2>New message from your portfolio</h2>
  <p><strong>From:</strong> {{.SenderName}} ({{.SenderEmail}})</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <div style="border-left: 4px solid #0066cc; padding: 12px; white-space: pre-wrap;">{{.Message}}</div>
  <p style="color: #888; font-size: 12px;">Reply directly to this email to answer {{.SenderName}}.</p>
</body>
</html>`))

// BuildContactMessage renders the MIME message relayed to the site owner.
func (s *EmailService) BuildContactMessage(data ContactEmailData) ([]byte, error) {
	var body bytes.Buffer
	if err := contactEmailTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	// Header values come from visitors; strip CR/LF so they cannot inject headers.
	subject := "Portfolio contact: " + headerSafe(data.Subject)

	msg := fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.cfg.FromEmail,
		s.cfg.ToEmail,
		headerSafe(data.SenderEmail),
		subject,
		body.String(),
	)
	return []byte(msg), nil
}

// SendContactEmail sends a contact form email to the configured recipient
func (s *EmailService) SendContactEmail(data ContactEmailData) error {
	msg, err := s.BuildContactMessage(data)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	if err := s.sendMail(addr, auth, s.cfg.FromEmail, []string{s.cfg.ToEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.ToEmail != ""
}

func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
