package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"venuebook-backend/internal/config"
	"venuebook-backend/internal/logger"
)

type emailService struct {
	client   *sendgrid.Client
	from     *mail.Email
	disabled bool
}

// NewEmailService builds the SendGrid-backed email channel. An empty API key
// disables sending, which keeps local development working without a key.
func NewEmailService(cfg config.EmailConfig) EmailService {
	s := &emailService{
		from:     mail.NewEmail(cfg.FromName, cfg.From),
		disabled: cfg.APIKey == "",
	}
	if !s.disabled {
		s.client = sendgrid.NewSendClient(cfg.APIKey)
	}
	return s
}

func (s *emailService) SendRegistrationApproved(ctx context.Context, email, name, venueName string) error {
	subject := "Your venue registration has been approved"
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour venue %q has been approved and is now visible to customers.\n\nThe VenueBook Team",
		name, venueName)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your venue <strong>%s</strong> has been approved and is now visible to customers.</p><p>The VenueBook Team</p>",
		name, venueName)
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *emailService) SendRegistrationRejected(ctx context.Context, email, name, reason string) error {
	subject := "Your venue registration was not approved"
	plain := fmt.Sprintf(
		"Hi %s,\n\nUnfortunately your venue registration was not approved.\n\nReason: %s\n\nYou can update the rejected sections and resubmit from your dashboard.\n\nThe VenueBook Team",
		name, reason)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Unfortunately your venue registration was not approved.</p><p><strong>Reason:</strong> %s</p><p>You can update the rejected sections and resubmit from your dashboard.</p><p>The VenueBook Team</p>",
		name, reason)
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *emailService) SendPendingReviewReminder(ctx context.Context, email, name string, pendingCount int32) error {
	subject := fmt.Sprintf("%d venue registration(s) awaiting review", pendingCount)
	plain := fmt.Sprintf(
		"Hi %s,\n\nThere are %d venue registration(s) waiting for review. Please take a look when you can.\n\nThe VenueBook Team",
		name, pendingCount)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>There are <strong>%d</strong> venue registration(s) waiting for review. Please take a look when you can.</p><p>The VenueBook Team</p>",
		name, pendingCount)
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *emailService) send(ctx context.Context, email, name, subject, plain, html string) error {
	if s.disabled {
		logger.Warn("Email sending disabled, skipping", "to", email, "subject", subject)
		return nil
	}

	logger.ExternalServiceCall("sendgrid", "send", "to", email, "subject", subject)
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail(name, email), plain, html)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	if resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status", resp.StatusCode)
	return nil
}
