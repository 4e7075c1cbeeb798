package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"lounge-inventory/models"
)

// Channel names used as keys in dispatch results and on the order record.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// Channel is one independent notification transport.
type Channel interface {
	Name() string
	// Send delivers the alert or reports why it could not.
	// models.ErrChannelUnavailable means the channel has no configured
	// destination and was skipped.
	Send(ctx context.Context, alert models.RestockAlert) error
}

// NotifierInterface defines the contract for notification fan-out.
type NotifierInterface interface {
	// Dispatch attempts every channel and reports per-channel success.
	// It never returns an error: a failed or skipped channel is false in
	// the result, and one channel's failure does not prevent the others.
	Dispatch(ctx context.Context, alert models.RestockAlert) map[string]bool
}

// Notifier fans an alert out to all configured channels concurrently,
// bounded by a single timeout. No retry queue: a failed delivery is only
// re-attempted by the next restock event.
type Notifier struct {
	channels []Channel
	timeout  time.Duration
}

// NewNotifier creates a Notifier over the given channels.
func NewNotifier(timeout time.Duration, channels ...Channel) *Notifier {
	return &Notifier{channels: channels, timeout: timeout}
}

// Ensure Notifier implements NotifierInterface
var _ NotifierInterface = (*Notifier)(nil)

// Dispatch runs each channel in its own goroutine and joins them under the
// configured timeout. A channel that outlives the timeout counts as failed.
func (n *Notifier) Dispatch(ctx context.Context, alert models.RestockAlert) map[string]bool {
	results := make(map[string]bool, len(n.channels))

	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ch := range n.channels {
		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()

			err := ch.Send(sendCtx, alert)
			switch {
			case err == nil:
				log.Printf("✓ %s alert sent: %s x%d", ch.Name(), alert.ItemName, alert.Quantity)
			case errors.Is(err, models.ErrChannelUnavailable):
				log.Printf("[%s skipped] restock: %s x%d", ch.Name(), alert.ItemName, alert.Quantity)
			default:
				log.Printf("❌ %s alert failed for %s: %v", ch.Name(), alert.ItemName, err)
			}

			mu.Lock()
			results[ch.Name()] = err == nil
			mu.Unlock()
		}(ch)
	}
	wg.Wait()

	return results
}
