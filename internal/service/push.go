package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"venuebook-backend/internal/logger"
)

type fcmSender struct {
	client *messaging.Client
}

// NewFCMSender builds the Firebase Cloud Messaging push channel from a
// service-account credentials file.
func NewFCMSender(ctx context.Context, credentialsFile string) (PushSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fcm client: %w", err)
	}
	return &fcmSender{client: client}, nil
}

func (s *fcmSender) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	logger.ExternalServiceCall("fcm", "send", "title", title)

	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	_, err := s.client.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "send", err)
	return err
}
