package utils

import (
	"fmt"
	"lms/config"
	"log"
	"net/smtp"
)

// SendEnrollmentEmail sends an email notification when a user enrolls in a course
func SendEnrollmentEmail(email, userName, courseTitle string) error {
	subject := "Subject: Enrollment Confirmation\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">You're enrolled!</h2>
					<p style="font-size: 16px; color: #555555;">Hi %s,</p>
					<p style="font-size: 16px; color: #555555;">You have been enrolled in <b>%s</b>. Head to your dashboard to start learning.</p>
				</div>
			</body>
		</html>
	`, userName, courseTitle)

	return sendMail(email, subject, body)
}

// SendCertificateEmail sends an email notification when a certificate is issued
func SendCertificateEmail(email, userName, courseTitle, certificateNumber, verificationID string) error {
	subject := "Subject: Your Course Certificate\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Congratulations, %s!</h2>
					<p style="font-size: 16px; color: #555555;">You completed <b>%s</b>.</p>
					<p style="font-size: 16px; color: #555555;">Certificate number: <b>%s</b></p>
					<p style="font-size: 14px; color: #999999;">Anyone can verify this certificate with code %s.</p>
				</div>
			</body>
		</html>
	`, userName, courseTitle, certificateNumber, verificationID)

	return sendMail(email, subject, body)
}

func sendMail(to, subject, body string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password
	if from == "" || password == "" {
		log.Println("Email sender not configured, skipping email to", to)
		return nil
	}

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message); err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}
