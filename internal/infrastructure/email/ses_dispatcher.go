package email

import (
	"context"
	"errors"
	"log"
	"os"

	"poolops/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

var ErrMissingSender = errors.New("missing APPROVAL_EMAIL_SENDER")

// SESDispatcher sends approval emails through Amazon SES.
//
// Env vars:
//   - APPROVAL_EMAIL_SENDER (required; verified SES identity)
//   - AWS_REGION (default: us-east-1)
type SESDispatcher struct {
	client *sesv2.Client
	sender string
}

var _ interfaces.IEmailDispatcher = (*SESDispatcher)(nil)

func NewSESDispatcher(ctx context.Context) (*SESDispatcher, error) {
	sender := os.Getenv("APPROVAL_EMAIL_SENDER")
	if sender == "" {
		return nil, ErrMissingSender
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	log.Printf("[email][ses] dispatcher initialized sender=%s region=%s", sender, region)
	return &SESDispatcher{client: sesv2.NewFromConfig(cfg), sender: sender}, nil
}

func (d *SESDispatcher) Send(ctx context.Context, email interfaces.ApprovalEmail) error {
	log.Printf("[email][ses] send start estimate_id=%s to=%s cc=%d", email.EstimateID, email.To, len(email.CC))

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(d.sender),
		Destination: &types.Destination{
			ToAddresses: []string{email.To},
			CcAddresses: email.CC,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(email.Subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(email.Body)},
				},
			},
		},
	}

	out, err := d.client.SendEmail(ctx, input)
	if err != nil {
		log.Printf("[email][ses] send failed estimate_id=%s err=%v", email.EstimateID, err)
		return err
	}
	log.Printf("[email][ses] send success estimate_id=%s message_id=%s", email.EstimateID, aws.ToString(out.MessageId))
	return nil
}
