package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"lounge-inventory/models"
)

const twilioAPIBase = "https://api.twilio.com"

// WhatsAppChannel delivers restock alerts through the Twilio WhatsApp
// messaging endpoint.
type WhatsAppChannel struct {
	accountSID string
	authToken  string
	from       string
	to         string

	apiBase string
	client  *http.Client
}

// NewWhatsAppChannel creates the WhatsApp channel. Missing credentials or
// destination leave the channel unconfigured: Send reports
// models.ErrChannelUnavailable and the engine proceeds without it.
func NewWhatsAppChannel(accountSID, authToken, from, to string) *WhatsAppChannel {
	return &WhatsAppChannel{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
		apiBase:    twilioAPIBase,
		client:     http.DefaultClient,
	}
}

// Name implements Channel.
func (c *WhatsAppChannel) Name() string {
	return ChannelWhatsApp
}

// Send implements Channel.
func (c *WhatsAppChannel) Send(ctx context.Context, alert models.RestockAlert) error {
	if c.accountSID == "" || c.authToken == "" || c.to == "" {
		return models.ErrChannelUnavailable
	}

	peakTag := ""
	priority := "Normal"
	if alert.IsPeakHour {
		peakTag = " *PEAK HOURS - URGENT*"
		priority = "HIGH"
	}
	body := fmt.Sprintf("📦 *Restock Alert*%s\n\n*Item:* %s\n*Quantity:* %d\n*Priority:* %s",
		peakTag, alert.ItemName, alert.Quantity, priority)

	to := c.to
	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	form := url.Values{}
	form.Set("From", c.from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.apiBase, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientDelivery, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: twilio returned %d: %s", models.ErrTransientDelivery, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
