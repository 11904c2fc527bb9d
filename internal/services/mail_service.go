package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"path/filepath"
	"strings"

	"github.com/plfelter/verbatims-utn-vdl/internal/config"
)

// MailService sends confirmation emails over SMTP. When the SMTP
// settings are missing it stays disabled and sending is a logged no-op,
// which keeps local development working without a mail server.
type MailService struct {
	Host    string
	Port    string
	User    string
	Pass    string
	From    string
	SiteURL string
	Enabled bool
}

func NewMailService(cfg *config.Config) *MailService {
	enabled := cfg.SMTPHost != "" && cfg.SMTPPort != "" && cfg.SMTPUser != "" && cfg.SMTPPass != "" && cfg.SMTPFrom != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:    cfg.SMTPHost,
		Port:    cfg.SMTPPort,
		User:    cfg.SMTPUser,
		Pass:    cfg.SMTPPass,
		From:    cfg.SMTPFrom,
		SiteURL: cfg.SiteURL,
		Enabled: enabled,
	}
}

// SendConfirmation mails the confirmation link for a freshly created
// comment or answer. It is synchronous: the record is already persisted
// when this runs, and a failure here leaves it pending with no retry,
// so the caller must see the error.
func (s *MailService) SendConfirmation(email, token, contentType string, contentID uint) error {
	confirmURL := fmt.Sprintf("%s/confirm/%s/%d/%s", s.SiteURL, contentType, contentID, token)

	body, err := s.parseTemplate("confirmation.html", map[string]string{
		"ContentType": contentType,
		"ConfirmURL":  confirmURL,
	})
	if err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}

	subject := "Merci de confirmer votre message"
	return s.send([]string{email}, subject, body)
}

func (s *MailService) send(to []string, subject, body string) error {
	if !s.Enabled {
		log.Printf("MailService disabled, skipping mail to %v: %s", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: Verbatims UTN <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

	if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
		log.Printf("Failed to send email to %v: %v", to, err)
		return fmt.Errorf("send mail: %w", err)
	}
	log.Printf("Email sent to %v: %s", to, subject)
	return nil
}

func (s *MailService) parseTemplate(templateName string, data interface{}) (string, error) {
	path := filepath.Join("web", "templates", "email", templateName)
	t, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}
