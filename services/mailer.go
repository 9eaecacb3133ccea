package services

import (
	"github.com/serenemind/portal_backend/utils"
)

// Mailer delivers one-time passwords out-of-band. The SMTP implementation
// lives in utils; tests substitute a fake.
type Mailer interface {
	SendOTP(email, name, code string) error
}

// SMTPMailer sends codes through the configured SMTP server
type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

func (m *SMTPMailer) SendOTP(email, name, code string) error {
	return utils.SendOTPEmail(email, name, code)
}
