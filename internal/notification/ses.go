package notification

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/sharath018/party-rsvp-backend/config"
	"github.com/sharath018/party-rsvp-backend/internal/apperror"
)

// SESMailer sends through Amazon SES with static credentials.
type SESMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

func NewSESMailer(cfg *config.Config) (*SESMailer, error) {
	if cfg.MailDefaultSender == "" {
		return nil, errors.New("ses mailer: MAIL_DEFAULT_SENDER is required")
	}
	awsCfg := aws.Config{
		Region: cfg.SESRegion,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.SESAccessKeyID, cfg.SESSecretAccessKey, ""),
		),
	}
	return &SESMailer{
		client:      ses.NewFromConfig(awsCfg),
		fromAddress: cfg.MailDefaultSender,
		fromName:    cfg.MailFromName,
	}, nil
}

func (s *SESMailer) Name() string { return "ses" }

func (s *SESMailer) Send(ctx context.Context, msg Message) error {
	input := &ses.SendEmailInput{
		Source: aws.String(formatAddress(s.fromName, s.fromAddress)),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if msg.HTML != "" {
		input.Message.Body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")}
	}
	if msg.Text != "" {
		input.Message.Body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return &apperror.TransportError{Provider: s.Name(), Err: err}
	}
	return nil
}
