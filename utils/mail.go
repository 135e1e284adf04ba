package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
)

type EmailData struct {
	Code    string
	Message string
}

// SendEmail delivers an HTML email rendered from the given template. When
// SMTP is not configured the message is logged to stdout instead so the
// registration and reset flows keep working in development.
func SendEmail(emailTo string, emailSubject string, data EmailData, templatePath string) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	smtpServer := os.Getenv("SMTP_SERVER")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPassword := os.Getenv("SMTP_PASSWORD")

	if smtpServer == "" || smtpUser == "" || smtpPassword == "" {
		log.Printf("SMTP not configured - would send %q to %s with code %s", emailSubject, emailTo, data.Code)
		return nil
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = smtpUser
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		from,
		emailTo,
		emailSubject,
		body.String(),
	)

	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	auth := smtp.PlainAuth("", smtpUser, smtpPassword, smtpServer)
	if err := smtp.SendMail(smtpServer+":"+port, auth, from, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
