package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/blessnhq/blessn/internal/config"
)

// ErrPublishFailed reports that the realtime network rejected a message.
var ErrPublishFailed = errors.New("chat publish failed")

// Publisher fans chat messages out to the realtime network. Message history
// and read state stay in our own database; the network is delivery only.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) error
}

const pubnubBaseURL = "https://ps.pndsn.com"

type pubnubPublisher struct {
	baseURL      string
	publishKey   string
	subscribeKey string
	uuid         string
	client       *http.Client
	log          *zap.Logger
}

func NewPubNubPublisher(cfg config.Config, log *zap.Logger) Publisher {
	return &pubnubPublisher{
		baseURL:      pubnubBaseURL,
		publishKey:   cfg.PubNubPublishKey,
		subscribeKey: cfg.PubNubSubscribeKey,
		uuid:         cfg.PubNubUUID,
		client:       &http.Client{Timeout: 10 * time.Second},
		log:          log.Named("provider.pubnub"),
	}
}

func (p *pubnubPublisher) Publish(ctx context.Context, channel string, message any) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/publish/%s/%s/0/%s/0/%s?uuid=%s",
		p.baseURL,
		url.PathEscape(p.publishKey),
		url.PathEscape(p.subscribeKey),
		url.PathEscape(channel),
		url.PathEscape(string(payload)),
		url.QueryEscape(p.uuid),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error("publish failed", zap.String("channel", channel), zap.Error(err))
		return ErrPublishFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.Warn("publish rejected", zap.String("channel", channel), zap.Int("status", resp.StatusCode))
		return ErrPublishFailed
	}
	return nil
}
