package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/skillsync-team/meeting-service/internal/usecase/notification"
	"github.com/skillsync-team/meeting-service/pkg/config"
)

// Client is the SMTP delivery gateway. Every send is bounded by the
// configured socket timeout and the caller's context; a timed-out send is
// reported as a failure like any other.
type Client struct {
	client   *gomail.Client
	fromAddr string
	fromName string
	logger   *zap.Logger
}

// NewClient creates the SMTP client. Configuration is validated at
// startup (config.Validate), so missing credentials never surface here.
func NewClient(cfg *config.SMTPConfig, logger *zap.Logger) (*Client, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTimeout(cfg.Timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &Client{
		client:   client,
		fromAddr: cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   logger,
	}, nil
}

// Send delivers one rendered message. Implements notification.Gateway.
func (c *Client) Send(ctx context.Context, msg *notification.Message) error {
	m := gomail.NewMsg()
	if err := m.FromFormat(c.fromName, c.fromAddr); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.AddToFormat(msg.ToName, msg.ToAddress); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", msg.ToAddress, err)
	}

	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	}

	if err := c.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	c.logger.Debug("smtp message sent",
		zap.String("kind", string(msg.Kind)),
		zap.String("to", msg.ToAddress),
	)
	return nil
}

// Ensure Client implements the delivery gateway interface
var _ notification.Gateway = (*Client)(nil)
