package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms_backend/config"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

// SendCoursePublishedEmail notifies an instructor that their course went live
func SendCoursePublishedEmail(email, instructorName, courseTitle string) error {
	subject := fmt.Sprintf("Your course \"%s\" is now live", courseTitle)

	body := fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
			<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
				<h2 style="color: #00004D;">Course Published</h2>
				<p>Hi %s,</p>
				<p>Your course <strong>%s</strong> has been published and is now visible to students.</p>
				<p style="color: #888; font-size: 12px;">You are receiving this because you are listed as the course instructor.</p>
			</div>
		</body>
	</html>`, instructorName, courseTitle)

	return SendEmail([]string{email}, subject, body)
}
