package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"tasknest/config"
)

// SendWelcomeEmail greets a freshly registered user. Callers treat failures
// as non-fatal; registration never fails because SMTP is down.
func SendWelcomeEmail(email string) error {
	if config.AppConfig.SMTPHost == "" {
		// Mail delivery is optional in development
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.AppConfig.FromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Tasknest")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour account is ready. Log in and create your first task.\n", email))

	d := gomail.NewDialer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUsername,
		config.AppConfig.SMTPPassword,
	)

	return d.DialAndSend(m)
}
