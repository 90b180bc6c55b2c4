package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"payproof/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendReviewAlert(ctx context.Context, toEmail string, alert port.ReviewAlert) error {
	subject := fmt.Sprintf("Review needed: %s (%s)", alert.FileName, alert.DocType)
	htmlBody := buildReviewAlertHTML(alert)
	textBody := fmt.Sprintf(
		"A parsed document needs manual review.\n\nFile: %s\nType: %s\nResult ID: %s\nConfidence: %.2f\nWarnings: %d\n\nPayProof",
		alert.FileName, alert.DocType, alert.ResultID, alert.Confidence, alert.WarningCount,
	)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReviewAlertHTML(alert port.ReviewAlert) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Document needs review</h2>
  <p>A parsed document fell below the confidence threshold or failed validation:</p>
  <table style="border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">File</td><td style="padding: 4px 0;">%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Type</td><td style="padding: 4px 0;">%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Result ID</td><td style="padding: 4px 0;">%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Confidence</td><td style="padding: 4px 0;">%.2f</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Warnings</td><td style="padding: 4px 0;">%d</td></tr>
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">PayProof - Income Document Verification</p>
</body>
</html>`, alert.FileName, alert.DocType, alert.ResultID, alert.Confidence, alert.WarningCount)
}
