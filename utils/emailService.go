package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"tka-lms/config"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: TKA Prep <%s>\r\n", from)
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

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E3A8A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.content h2 { color: #1E3A8A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2563EB; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>TKA PREP</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 TKA Prep. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a freshly registered user
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to TKA Prep"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>TKA Prep</strong>! Your account has been successfully created.</p>
		<p>Browse the course catalog, watch the video lessons, and take the quizzes to track your progress toward the exam.</p>
		<a class="btn" href="%s">Start Learning</a>
	`, name, config.AppConfig.FrontendURL)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendLessonReminderEmail nudges a user about an unfinished lesson
func SendLessonReminderEmail(email, name, lessonTitle string) {
	subject := "Keep going: finish your lesson on TKA Prep"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You started <strong>%s</strong> but haven't passed its quiz yet.</p>
		<p>A score of 70%% or higher marks the lesson as completed. You're closer than you think!</p>
		<a class="btn" href="%s">Resume Lesson</a>
	`, name, lessonTitle, config.AppConfig.FrontendURL)

	go SendEmail([]string{email}, subject, getEmailTemplate("Your Lesson Is Waiting", body))
}
