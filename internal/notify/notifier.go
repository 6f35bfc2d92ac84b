// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"negotiation-experiments/internal/batch"
	apperrors "negotiation-experiments/internal/common/errors"
	"negotiation-experiments/internal/common/logger"
)

// Interfaces over the AWS clients for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Config selects the notification channels. Long batches run unattended, so
// a summary lands in the operator's inbox instead of a terminal nobody is
// watching.
type Config struct {
	Region      string
	EmailFrom   string
	EmailTo     string
	PhoneNumber string
}

// Notifier sends batch summaries over SES email and, optionally, SNS SMS.
// Implements batch.Notifier.
type Notifier struct {
	config    Config
	sesClient SESService
	snsClient SNSService
	logger    logger.Logger
}

func New(ctx context.Context, cfg Config, log logger.Logger) (*Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotificationFailed, "load AWS config", err)
	}
	return &Notifier{
		config:    cfg,
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
		logger:    log,
	}, nil
}

// NewWithClients injects the AWS services. Used by tests.
func NewWithClients(cfg Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Notifier {
	return &Notifier{config: cfg, sesClient: sesClient, snsClient: snsClient, logger: log}
}

// BatchCompleted sends the summary on every configured channel. Channels
// fail independently; the first error is returned after all sends were
// attempted.
func (n *Notifier) BatchCompleted(ctx context.Context, summary batch.Summary) error {
	var firstErr error

	if n.config.EmailTo != "" {
		if err := n.sendEmail(ctx, summary); err != nil {
			n.logger.WithError(err).Error("Summary email failed", map[string]interface{}{
				"run_id": summary.RunID,
			})
			firstErr = err
		}
	}
	if n.config.PhoneNumber != "" {
		if err := n.sendSMS(ctx, summary); err != nil {
			n.logger.WithError(err).Error("Summary SMS failed", map[string]interface{}{
				"run_id": summary.RunID,
			})
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (n *Notifier) sendEmail(ctx context.Context, summary batch.Summary) error {
	subject := fmt.Sprintf("Experiment batch %s: %d/%d completed", shortRunID(summary.RunID),
		summary.Completed, summary.Total)
	body := FormatSummary(summary)

	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.config.EmailTo},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.config.EmailFrom),
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeNotificationFailed, "ses send failed", err)
	}
	return nil
}

func (n *Notifier) sendSMS(ctx context.Context, summary batch.Summary) error {
	message := fmt.Sprintf("Batch %s done: %d ok, %d failed, %s",
		shortRunID(summary.RunID), summary.Completed, summary.Failed,
		summary.Duration.Round(time.Second).String())

	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(n.config.PhoneNumber),
		Message:     aws.String(message),
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeNotificationFailed, "sns publish failed", err)
	}
	return nil
}

// FormatSummary renders the human-readable report shared by email bodies and
// the CLI epilogue.
func FormatSummary(summary batch.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run ID:        %s\n", summary.RunID)
	fmt.Fprintf(&b, "Model:         %s\n", summary.Model)
	fmt.Fprintf(&b, "Output:        %s\n", summary.OutputPath)
	fmt.Fprintf(&b, "Started:       %s\n", summary.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Duration:      %s\n", summary.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "Trials:        %d\n", summary.Total)
	fmt.Fprintf(&b, "Completed:     %d\n", summary.Completed)
	fmt.Fprintf(&b, "Failed:        %d\n", summary.Failed)
	fmt.Fprintf(&b, "Extracted:     %d\n", summary.Extracted)
	fmt.Fprintf(&b, "Cache hits:    %d\n", summary.Cached)
	if summary.MeanWillingnessToPay != nil {
		fmt.Fprintf(&b, "WTP:           min %.2f / mean %.2f / max %.2f\n",
			*summary.MinWillingnessToPay, *summary.MeanWillingnessToPay, *summary.MaxWillingnessToPay)
	}
	if summary.MeanOffer != nil {
		fmt.Fprintf(&b, "Offer:         min %.2f / mean %.2f / max %.2f\n",
			*summary.MinOffer, *summary.MeanOffer, *summary.MaxOffer)
	}
	if summary.Cancelled {
		b.WriteString("Status:        CANCELLED\n")
	}
	return b.String()
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
