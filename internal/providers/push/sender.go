package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/blessnhq/blessn/internal/config"
)

// ErrSendFailed reports that the push service did not accept the message.
var ErrSendFailed = errors.New("push send failed")

type Notification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Sender delivers a push notification to a single device token.
type Sender interface {
	Send(ctx context.Context, registrationID string, notification Notification) error
}

const fcmSendURL = "https://fcm.googleapis.com/fcm/send"

type fcmSender struct {
	sendURL   string
	serverKey string
	client    *http.Client
	log       *zap.Logger
}

func NewFCMSender(cfg config.Config, log *zap.Logger) Sender {
	return &fcmSender{
		sendURL:   fcmSendURL,
		serverKey: cfg.FCMServerKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.Named("provider.fcm"),
	}
}

func (s *fcmSender) Send(ctx context.Context, registrationID string, notification Notification) error {
	payload := map[string]any{
		"to": registrationID,
		"notification": map[string]string{
			"title": notification.Title,
			"body":  notification.Body,
		},
	}
	if len(notification.Data) > 0 {
		payload["data"] = notification.Data
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.sendURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "key="+s.serverKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("push send failed", zap.Error(err))
		return ErrSendFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("push send rejected", zap.Int("status", resp.StatusCode))
		return ErrSendFailed
	}

	var result struct {
		Failure int `json:"failure"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && result.Failure > 0 {
		return ErrSendFailed
	}
	return nil
}
