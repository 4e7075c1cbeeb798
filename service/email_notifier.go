package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"lounge-inventory/models"
)

// EmailChannel delivers restock alerts to the warehouse over the Gmail API.
type EmailChannel struct {
	client    *gmail.Service
	sender    string
	warehouse string
}

// NewEmailChannel creates the email channel. When credentialsPath, sender or
// warehouse is empty the channel stays unconfigured: Send reports
// models.ErrChannelUnavailable and the engine proceeds without it.
// credentialsPath should be the path to the Service Account JSON file.
func NewEmailChannel(credentialsPath, sender, warehouse string) (*EmailChannel, error) {
	if credentialsPath == "" || sender == "" || warehouse == "" {
		return &EmailChannel{}, nil
	}

	ctx := context.Background()
	client, err := gmail.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &EmailChannel{
		client:    client,
		sender:    sender,
		warehouse: warehouse,
	}, nil
}

// Name implements Channel.
func (c *EmailChannel) Name() string {
	return ChannelEmail
}

// Send implements Channel.
func (c *EmailChannel) Send(ctx context.Context, alert models.RestockAlert) error {
	if c.client == nil {
		return models.ErrChannelUnavailable
	}

	peakNote := ""
	priority := "Normal"
	if alert.IsPeakHour {
		peakNote = " [PEAK HOURS - URGENT]"
		priority = "HIGH - Peak flight hours active"
	}

	body := fmt.Sprintf(
		"RESTOCK ORDER%s\r\n\r\nItem: %s\r\nQuantity Needed: %d\r\nPriority: %s\r\n\r\nPlease dispatch to Airport Lounge immediately.\r\n",
		peakNote, alert.ItemName, alert.Quantity, priority)

	raw := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Restock Request: %s%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		c.sender, c.warehouse, alert.ItemName, peakNote, body)

	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString([]byte(raw))}
	if _, err := c.client.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientDelivery, err)
	}
	return nil
}
