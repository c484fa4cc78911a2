package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	twilio "github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const whatsappPrefix = "whatsapp:"

// TwilioOptions contains the settings of the Twilio sender
type TwilioOptions struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string
	Timeout    time.Duration
}

// TwilioSender sends reminders as WhatsApp or SMS messages through Twilio
type TwilioSender struct {
	opts   TwilioOptions
	client *twilio.RestClient
}

// NewTwilioSender creates a sender. Missing credentials are not an error
// here; Validate reports them before any send is attempted.
func NewTwilioSender(opts TwilioOptions) *TwilioSender {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	s := &TwilioSender{opts: opts}
	if opts.AccountSID != "" && opts.AuthToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: opts.AccountSID,
			Password: opts.AuthToken,
		})
		s.client.SetTimeout(opts.Timeout)
	}
	return s
}

// Validate implements Sender
func (s *TwilioSender) Validate() error {
	var missing []string
	if s.opts.AccountSID == "" {
		missing = append(missing, "TWILIO_ACCOUNT_SID")
	}
	if s.opts.AuthToken == "" {
		missing = append(missing, "TWILIO_AUTH_TOKEN")
	}
	if s.opts.To == "" {
		missing = append(missing, "REMINDER_NOTIFY_TO")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// SendLeadReminder implements Sender
func (s *TwilioSender) SendLeadReminder(ctx context.Context, msg LeadReminder) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(s.opts.From)
	params.SetTo(s.recipient())
	params.SetBody(FormatLeadReminder(msg))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		var restErr *twilioclient.TwilioRestError
		if errors.As(err, &restErr) {
			return "", fmt.Errorf("twilio send failed: %d %s", restErr.Code, restErr.Message)
		}
		return "", fmt.Errorf("twilio send failed: %w", err)
	}

	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// recipient matches the channel of the destination to the sender number
func (s *TwilioSender) recipient() string {
	to := s.opts.To
	if strings.HasPrefix(s.opts.From, whatsappPrefix) && !strings.HasPrefix(to, whatsappPrefix) {
		return whatsappPrefix + to
	}
	return to
}
