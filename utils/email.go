package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfigured reports whether SMTP settings are present in the environment.
func EmailConfigured() bool {
	return os.Getenv("SMTP_HOST") != ""
}

// SendOTPEmail sends a login one-time code to the user's email.
func SendOTPEmail(email, code string) error {
	subject := "Your MediCore login code"
	plain := "Your one-time login code is: " + code + "\nIt expires in 5 minutes."
	html := `
	<!DOCTYPE html>
	<html>
	<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
		<div style="background-color: #ffffff; margin: 0 auto; padding: 20px; border-radius: 8px; max-width: 600px;">
			<h1 style="color: #333333;">Login Code</h1>
			<p style="color: #666666;">Your one-time login code is:</p>
			<p style="font-weight: bold; color: #007bff; font-size: 24px;">` + code + `</p>
			<p style="color: #666666;">It expires in 5 minutes. If you did not request it, please ignore this email.</p>
		</div>
	</body>
	</html>
	`
	return sendEmail(email, subject, plain, html)
}

// SendPlainEmail sends a plain-text message, used for best-effort notifications.
func SendPlainEmail(email, subject, body string) error {
	return sendEmail(email, subject, body, "")
}

func sendEmail(to, subject, plainBody, htmlBody string) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		log.Printf("Invalid SMTP_PORT value: %v", err)
		return err
	}

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}
