package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyKeane94/toad/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type relayRequest struct {
	From string `json:"from"`
	Message
}

// RelaySender posts messages as JSON to an HTTP mail relay.
type RelaySender struct {
	log    *zap.SugaredLogger
	from   string
	client *resty.Client
}

// NewRelaySender configures the relay client with retries.
func NewRelaySender(cfg config.MailConfig, log *zap.SugaredLogger) *RelaySender {
	client := resty.New().
		SetBaseURL(cfg.HTTPURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.HTTPToken != "" {
		client.SetAuthToken(cfg.HTTPToken)
	}
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r.StatusCode() >= 500
	})

	return &RelaySender{log: log.Named("mailer.relay"), from: cfg.From, client: client}
}

// Send posts msg to the relay.
func (s *RelaySender) Send(ctx context.Context, msg Message) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(relayRequest{From: s.from, Message: msg}).
		Post("")
	if err != nil {
		return fmt.Errorf("relay send: %w", err)
	}
	if resp.IsError() {
		s.log.Errorw("relay rejected mail", "status", resp.StatusCode(), "to", msg.To)
		return fmt.Errorf("relay send: status %d", resp.StatusCode())
	}
	return nil
}
