package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends a plain-text message. Delivery is best-effort: callers log
// failures and continue with the primary operation.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// VerificationBody formats the signup verification message.
func VerificationBody(username, code string) (subject, body string) {
	subject = "Verify your Blossom account"
	body = fmt.Sprintf("Hi %s!\n\nYour Blossom verification code is: %s\n\nIt expires in 30 minutes.", username, code)
	return subject, body
}

// PasswordResetBody formats the forgot-password OTP message.
func PasswordResetBody(username, code string) (subject, body string) {
	subject = "OTP for password reset"
	body = fmt.Sprintf("Hi %s!\n\nPlease enter this OTP in the app: %s\n\nIt expires in 15 minutes.", username, code)
	return subject, body
}
