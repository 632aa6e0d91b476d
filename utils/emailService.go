package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms-educate/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		// Email is optional; skip quietly when no sender is configured.
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS Educate <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// SendEnrollmentEmail sends the enrollment confirmation. Called best-effort
// after the enrollment row is committed.
func SendEnrollmentEmail(email, name string, courseID uint) {
	if email == "" {
		return
	}
	body := fmt.Sprintf(`
		<h3>Hi %s,</h3>
		<p>You are enrolled! Your course (id %d) is now available in your learner dashboard.</p>
		<p>Happy learning!</p>`, name, courseID)
	_ = SendEmail([]string{email}, "Enrollment confirmed", body)
}
