package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"

	"foodshare/internal/models"
)

type EmailService struct {
	Client *resend.Client
	From   string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("FROM_EMAIL")

	log.Printf("📧 Email Service Initialized (Resend)")
	log.Printf("   - From Email: %s", fromEmail)

	if apiKey == "" {
		log.Printf("⚠️  WARNING: RESEND_API_KEY is empty, claim emails disabled")
		return &EmailService{}
	}
	if fromEmail == "" {
		log.Printf("⚠️  WARNING: FROM_EMAIL is empty!")
		fromEmail = "onboarding@resend.dev" // Resend's default test email
	}

	return &EmailService{
		Client: resend.NewClient(apiKey),
		From:   fromEmail,
	}
}

// SendClaimNotice emails the donor about a committed claim. Best effort:
// the claim itself already succeeded and the notification row is persisted.
func (es *EmailService) SendClaimNotice(to string, notification *models.Notification) error {
	if es.Client == nil {
		return nil
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body>
    <h2>Your listing has a new claim</h2>
    <p>%s</p>
    <p><strong>Claimant contact details:</strong></p>
    <ul>
        <li>Name: %s</li>
        <li>Email: %s</li>
        <li>Phone: %s</li>
        <li>Address: %s</li>
    </ul>
    <p>This is an automated message, please do not reply.</p>
</body>
</html>
	`, notification.Message,
		notification.ReceiverName,
		notification.ReceiverEmail,
		notification.ReceiverPhone,
		notification.ReceiverAddress)

	params := &resend.SendEmailRequest{
		From:    es.From,
		To:      []string{to},
		Subject: fmt.Sprintf("New claim on %q", notification.ListingTitle),
		Html:    htmlBody,
	}

	sent, err := es.Client.Emails.Send(params)
	if err != nil {
		log.Printf("❌ Resend API Error: %v", err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("✅ Claim email sent to: %s (ID: %s)", to, sent.Id)
	return nil
}
