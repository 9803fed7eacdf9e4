package service

import (
	"context"
	"fmt"

	"jobunya-carrental-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey      string
	fromEmail   string
	fromName    string
	siteBaseURL string
}

func NewEmailService(apiKey, fromEmail, fromName, siteBaseURL string) EmailService {
	return &emailService{
		apiKey:      apiKey,
		fromEmail:   fromEmail,
		fromName:    fromName,
		siteBaseURL: siteBaseURL,
	}
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendVerificationEmail(ctx context.Context, email, name string, uid int32, token string) error {
	link := fmt.Sprintf("%s/verify-email?uid=%d&token=%s", s.siteBaseURL, uid, token)
	subject := "Verify your email address"
	plainText := fmt.Sprintf("Hello %s,\n\nPlease verify your email address by visiting:\n\n%s\n\nIf you did not create an account, you can ignore this message.", name, link)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Welcome, %s</h2>
				<p>Please confirm your email address to activate your account.</p>
				<p><a href="%s">Verify email</a></p>
			</body>
		</html>
	`, name, link)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendPasswordResetEmail(ctx context.Context, email, name string, uid int32, token string) error {
	link := fmt.Sprintf("%s/reset-password?uid=%d&token=%s", s.siteBaseURL, uid, token)
	subject := "Reset your password"
	plainText := fmt.Sprintf("Hello %s,\n\nA password reset was requested for your account. Visit the link below to choose a new password:\n\n%s\n\nIf you did not request this, no action is needed.", name, link)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Password reset</h2>
				<p>Hello %s, a password reset was requested for your account.</p>
				<p><a href="%s">Choose a new password</a></p>
			</body>
		</html>
	`, name, link)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name, vehicleName string, booking *domain.Booking) error {
	subject := fmt.Sprintf("Booking received: %s", vehicleName)
	plainText := fmt.Sprintf("Hello %s,\n\nYour booking for %s from %s to %s has been received and is pending confirmation.\nTotal: %.2f",
		name, vehicleName, booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"), float64(booking.TotalPriceCents)/100)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Booking received</h2>
				<p>Hello %s, your booking for <strong>%s</strong> (%s to %s) is pending confirmation.</p>
			</body>
		</html>
	`, name, vehicleName, booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"))
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendBookingStatusUpdate(ctx context.Context, email, name, vehicleName string, status domain.BookingStatus) error {
	subject := fmt.Sprintf("Booking update: %s", vehicleName)
	plainText := fmt.Sprintf("Hello %s,\n\nYour booking for %s is now: %s.", name, vehicleName, status)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<p>Hello %s, your booking for <strong>%s</strong> is now: <strong>%s</strong>.</p>
			</body>
		</html>
	`, name, vehicleName, status)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendPickupReminder(ctx context.Context, email, name, vehicleName, startDate string) error {
	subject := fmt.Sprintf("Pickup reminder: %s", vehicleName)
	plainText := fmt.Sprintf("Hello %s,\n\nA reminder that your rental of %s starts on %s.", name, vehicleName, startDate)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<p>Hello %s, your rental of <strong>%s</strong> starts on <strong>%s</strong>.</p>
			</body>
		</html>
	`, name, vehicleName, startDate)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendDamageStatusUpdate(ctx context.Context, email, name string, reportID int32, status domain.DamageReportStatus) error {
	subject := fmt.Sprintf("Damage report #%d update", reportID)
	plainText := fmt.Sprintf("Hello %s,\n\nYour damage report #%d is now: %s.", name, reportID, status)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<p>Hello %s, your damage report <strong>#%d</strong> is now: <strong>%s</strong>.</p>
			</body>
		</html>
	`, name, reportID, status)
	return s.send(email, name, subject, plainText, htmlContent)
}
