package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"photodrive/internal/config"
)

// EmailService defines an interface for sending transactional emails.
type EmailService interface {
	// SendShareNotification tells a grantee that a folder was shared with
	// them. Best effort: callers must not fail the share on a send error.
	SendShareNotification(to, folderName, ownerEmail string) error
}

// SMTPEmailService is a concrete implementation of EmailService using SMTP.
type SMTPEmailService struct {
	cfg config.Email
	// remoteURL is the base URL of the front-end application.
	remoteURL string
}

// NewSMTPEmailService creates a new SMTPEmailService.
func NewSMTPEmailService(cfg config.Email, remoteURL string) *SMTPEmailService {
	return &SMTPEmailService{
		cfg:       cfg,
		remoteURL: remoteURL,
	}
}

// send performs the actual email sending via SMTP using PlainAuth. The
// username is the from-address and the password is the API key.
func (s *SMTPEmailService) send(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.cfg.Address, s.cfg.APIKey, s.cfg.Host)

	// RFC 822 message: From, To, Subject headers then the body.
	msg := []byte(strings.ReplaceAll(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.cfg.Address, to, subject, body),
		"\n", "\r\n"),
	)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	return smtp.SendMail(addr, auth, s.cfg.Address, []string{to}, msg)
}

// SendShareNotification sends a note to the grantee with a link back to the
// application. The folder's passcode is deliberately not included; the owner
// communicates it out of band.
func (s *SMTPEmailService) SendShareNotification(to, folderName, ownerEmail string) error {
	subject := fmt.Sprintf("%s shared a photo folder with you", ownerEmail)
	body := fmt.Sprintf(
		"The folder %q was shared with your account. Sign in at %s to view it. "+
			"You will need the folder passcode from the owner to see the photos.",
		folderName, s.remoteURL,
	)

	return s.send(to, subject, body)
}
