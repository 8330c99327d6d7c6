package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// Message is one outbound email with both HTML and plain-text bodies.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer sends a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SESMailer delivers mail through AWS SES.
type SESMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
	logger      *zap.Logger
}

// NewSESMailer builds an SES-backed mailer using the default AWS credential
// chain for the given region.
func NewSESMailer(ctx context.Context, region, fromAddress, fromName string, logger *zap.Logger) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SESMailer{
		client:      ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
		logger:      logger,
	}, nil
}

// Send delivers the message. Failures are returned to the caller; the API
// surfaces them rather than queueing retries.
func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	source := m.fromAddress
	if m.fromName != "" {
		source = fmt.Sprintf("%s <%s>", m.fromName, m.fromAddress)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(msg.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(msg.HTMLBody),
				},
				Text: &types.Content{
					Data: aws.String(msg.TextBody),
				},
			},
		},
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		m.logger.Error("failed to send email via ses",
			zap.String("to", msg.To),
			zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("message_id", aws.ToString(result.MessageId)))
	return nil
}
