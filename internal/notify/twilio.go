package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const twilioAPIURL = "https://api.twilio.com"

// TwilioNotifier posts messages to the Twilio REST API. Only the single
// message-create call is implemented; retries and status callbacks are the
// channel's concern, not ours.
type TwilioNotifier struct {
	accountSID string
	authToken  string
	from       string
	logger     *zap.Logger

	APIURL     string
	HTTPClient *http.Client
}

// NewTwilioNotifier builds a notifier sending from the given channel
// address (e.g. "whatsapp:+14155238886").
func NewTwilioNotifier(accountSID, authToken, from string, logger *zap.Logger) *TwilioNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TwilioNotifier{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		logger:     logger,
		APIURL:     twilioAPIURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *TwilioNotifier) Send(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", n.APIURL, n.accountSID)

	form := url.Values{}
	form.Set("From", n.from)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building twilio request: %w", err)
	}
	req.SetBasicAuth(n.accountSID, n.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("twilio returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	n.logger.Debug("twilio message accepted", zap.String("to", to))
	return nil
}
