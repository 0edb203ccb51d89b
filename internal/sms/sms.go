// Package sms delivers one-time passwords by text message.
package sms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dhaval523/WorkJunction/internal/upstream"
	twilio "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender delivers a text body to an E.164 number.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type TwilioSender struct {
	client  *twilio.RestClient
	from    string
	breaker *upstream.Breaker
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from:    from,
		breaker: upstream.NewBreaker("twilio"),
	}
}

func (s *TwilioSender) Send(_ context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := upstream.Do(s.breaker, func() (*twilioApi.ApiV2010Message, error) {
		return s.client.Api.CreateMessage(params)
	})
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}

// LogSender writes messages to the log instead of sending them. Used when
// Twilio is not configured outside production.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, body string) error {
	slog.Warn("sms delivery disabled, message logged instead", "to", to, "body", body)
	return nil
}

// E164 prefixes a national number with the country code.
func E164(countryCode, national string) string {
	return countryCode + national
}
