package services

import (
	"fmt"
	"log"
	"time"

	"case_cockpit_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	TextBody string
}

// BuildSyncFailureAlert composes the alert sent when a background remote
// sync keeps failing
func BuildSyncFailureAlert(cfg *config.Config, syncErr error) *Email {
	body := fmt.Sprintf(
		"The scheduled backup sync failed at %s.\n\nError: %v\n\nLocal data is intact; the next run will retry.",
		time.Now().Format(time.RFC1123), syncErr,
	)
	return &Email{
		To:       []string{cfg.AlertEmailTo},
		Subject:  "Case Cockpit: backup sync failed",
		TextBody: body,
	}
}

// SendEmail sends an email using the Resend API. In test mode the message
// is logged instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		log.Printf("=== EMAIL (test mode, not sent) ===\nTo: %v\nSubject: %s\n%s\n===", email.To, email.Subject, email.TextBody)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Text:    email.TextBody,
	}

	if _, err := client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendEmailAsync sends an email without blocking the caller
func SendEmailAsync(cfg *config.Config, email *Email) {
	go func() {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending email: %v", err)
		}
	}()
}
