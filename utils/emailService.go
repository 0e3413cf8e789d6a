package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"sprout/config"
)

// SendEmail sends an HTML email through the configured SMTP relay
func SendEmail(to []string, subject string, htmlBody string) error {
	cfg := config.AppConfig

	from := cfg.EmailSender
	password := cfg.EmailPassword

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Sprout <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, cfg.SMTPHost)

	err := smtp.SendMail(cfg.SMTPHost+":"+cfg.SMTPPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the Sprout HTML shell
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #18453B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A1A; line-height: 1.6; }
			.content h2 { color: #18453B; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #18453B; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F5E9; padding: 15px; border-radius: 4px; border-left: 4px solid #18453B; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>SPROUT</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Sprout. Financial literacy for every student.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(email, firstName string) {
	subject := "Welcome to Sprout"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to <strong>Sprout</strong>! Your account has been created.</p>
		<p>Enroll in a course, complete lessons, and start building your money skills - and your XP.</p>
	`, firstName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Aboard!", body))
}

// SendPasswordResetEmail delivers a reset link with a one-time token
func SendPasswordResetEmail(email, firstName, token string) {
	subject := "Reset your Sprout password"
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", config.AppConfig.AppBaseURL, token)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset your password. The link below is valid for one hour.</p>
		<a class="btn" href="%s">Reset Password</a>
		<p>If you didn't ask for this, you can safely ignore this email.</p>
	`, firstName, resetURL)

	go SendEmail([]string{email}, subject, getEmailTemplate("Password Reset", body))
}

// SendAssignmentReminderEmail nudges a student about an approaching deadline
func SendAssignmentReminderEmail(email, firstName, courseTitle string, dueDateStr string) {
	subject := "Assignment due soon: " + courseTitle
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your assignment for <strong>%s</strong> is due on <strong>%s</strong>.</p>
		<div class="info-box">
			Finish the remaining lessons and quizzes before the deadline to keep your streak going.
		</div>
	`, firstName, courseTitle, dueDateStr)

	go SendEmail([]string{email}, subject, getEmailTemplate("Deadline Reminder", body))
}
