package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/fitaafita/backend/config"
	"github.com/fitaafita/backend/models"
)

// sendMail delivers a plain-text message through the configured SMTP
// transport. Templating is out of scope; the messages are deliberately
// simple text.
func sendMail(to, subject, body string) error {
	host := config.GetEnv("EMAIL_HOST", "")
	if host == "" {
		return fmt.Errorf("EMAIL_HOST not configured")
	}
	port := config.GetEnv("EMAIL_PORT", "587")
	username := config.GetEnv("EMAIL_USERNAME", "")
	password := config.GetEnv("EMAIL_PASSWORD", "")
	from := config.GetEnv("EMAIL_FROM", "noreply@fitaafita.example")

	msg := strings.Join([]string{
		"From: Fita a Fita <" + from + ">",
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return smtp.SendMail(host+":"+port, auth, from, []string{to}, []byte(msg))
}

func firstName(user *models.User) string {
	return strings.SplitN(user.Name, " ", 2)[0]
}

// SendConfirmationEmail mails the signup confirmation link
func SendConfirmationEmail(user *models.User, url string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to Fita a Fita! Please confirm your email address by visiting:\n\n%s\n\nThe link is valid for 10 minutes.",
		firstName(user), url,
	)
	return sendMail(user.Email, "Confirm your Fita a Fita account", body)
}

// SendPasswordResetEmail mails the password reset link
func SendPasswordResetEmail(user *models.User, url string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nForgot your password? Submit a new one at:\n\n%s\n\nThe link is valid for 10 minutes. If you didn't request a reset, ignore this email.",
		firstName(user), url,
	)
	return sendMail(user.Email, "Your password reset token (valid for 10 minutes)", body)
}
