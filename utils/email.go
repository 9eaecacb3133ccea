// utils/email.go
package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendOTPEmail sends the verification code to the recipient over SMTP.
// The caller must treat a non-nil error as a failed dispatch: the account
// stays unverified and the user has to request a new code.
func SendOTPEmail(email, name, otp string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	fromEmail := os.Getenv("FROM_EMAIL")
	if fromEmail == "" {
		fromEmail = smtpUser
	}

	if smtpHost == "" || smtpPortStr == "" || smtpUser == "" || smtpPass == "" {
		return fmt.Errorf("missing SMTP configuration")
	}

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		return fmt.Errorf("invalid SMTP port: %v", err)
	}

	subject := "Your Verification OTP - SereneMind Portal"
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; background: #f4f4f4;">
			<div style="max-width: 600px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px;">
				<h2 style="color: #2d5a27;">Verify Your Email</h2>
				<p>Hello %s,</p>
				<p>Your One-Time Password (OTP) is:</p>
				<h1 style="background: #2d5a27; color: white; padding: 15px; text-align: center; border-radius: 8px; letter-spacing: 5px;">%s</h1>
				<p style="color: #666;">This OTP will expire in 10 minutes.</p>
				<p style="color: #666;">If you didn't request this, please ignore this email.</p>
			</div>
		</div>
	`, name, otp)

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
