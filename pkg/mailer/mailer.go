package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/krishna45-ux/DC-Physics-3/pkg/config"
)

// Message is a plain-text outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Mailer delivers messages. Delivery is fire-and-forget from the caller's
// perspective: a failed send is logged and dropped, never retried here.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New selects a transport based on configuration.
func New(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Provider == "sendgrid" && cfg.SendgridAPIKey != "" {
		return &SendgridMailer{
			apiKey: cfg.SendgridAPIKey,
			from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
			logger: logger,
		}
	}
	return &ConsoleMailer{logger: logger}
}

// SendgridMailer delivers mail through the SendGrid v3 API.
type SendgridMailer struct {
	apiKey string
	from   *sgmail.Email
	logger *zap.Logger
}

// Send submits a single message to SendGrid.
func (m *SendgridMailer) Send(ctx context.Context, msg Message) error {
	to := sgmail.NewEmail(msg.ToName, msg.To)
	content := sgmail.NewSingleEmail(m.from, msg.Subject, to, msg.Body, "")

	req := sendgrid.GetRequest(m.apiKey, "/v3/mail/send", "https://api.sendgrid.com")
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(content)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body)
	}

	m.logger.Debug("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

// ConsoleMailer writes messages to the log. Used in development where no
// real transport is configured.
type ConsoleMailer struct {
	logger *zap.Logger
}

// Send logs the message instead of delivering it.
func (m *ConsoleMailer) Send(ctx context.Context, msg Message) error {
	m.logger.Info("email (console transport)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
