// Package mailer sends transactional and outreach email.
package mailer

import (
	"context"
	"fmt"

	"github.com/RoyKeane94/toad/config"

	"go.uber.org/zap"
)

// Message is a plain text email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the sender selected by mail.transport.
func New(cfg config.MailConfig, log *zap.SugaredLogger) (Sender, error) {
	switch cfg.Transport {
	case config.MailSMTP:
		return NewSMTPSender(cfg, log)
	case config.MailHTTP:
		return NewRelaySender(cfg, log), nil
	case config.MailLog, "":
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}

// LogSender only logs messages. Used in development.
type LogSender struct {
	log *zap.SugaredLogger
}

// NewLogSender constructs a LogSender.
func NewLogSender(log *zap.SugaredLogger) *LogSender {
	return &LogSender{log: log.Named("mailer.log")}
}

// Send logs the message.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Infow("mail", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
