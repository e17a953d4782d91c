package mailer

import (
	"context"
	"fmt"

	"github.com/RoyKeane94/toad/config"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	log    *zap.SugaredLogger
	from   string
	client *mail.Client
}

// NewSMTPSender configures an SMTP client. No connection is made until Send.
func NewSMTPSender(cfg config.MailConfig, log *zap.SugaredLogger) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}
	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPSender{log: log.Named("mailer.smtp"), from: cfg.From, client: client}, nil
}

// Send delivers msg over a fresh SMTP session.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	s.log.Debugw("mail sent", "to", msg.To)
	return nil
}
