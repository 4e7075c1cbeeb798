package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lounge-inventory/models"
)

// stubChannel is a scriptable notification channel.
type stubChannel struct {
	name  string
	err   error
	delay time.Duration
	calls int
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) Send(ctx context.Context, alert models.RestockAlert) error {
	c.calls++
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return c.err
}

var testAlert = models.RestockAlert{ItemName: "Johnnie Walker Black", Quantity: 85, IsPeakHour: true}

func TestNotifier_AllChannelsSucceed(t *testing.T) {
	email := &stubChannel{name: ChannelEmail}
	whatsapp := &stubChannel{name: ChannelWhatsApp}
	n := NewNotifier(time.Second, email, whatsapp)

	results := n.Dispatch(context.Background(), testAlert)

	assert.Equal(t, map[string]bool{ChannelEmail: true, ChannelWhatsApp: true}, results)
	assert.Equal(t, 1, email.calls)
	assert.Equal(t, 1, whatsapp.calls)
}

func TestNotifier_FailureDoesNotPreventOtherChannels(t *testing.T) {
	email := &stubChannel{name: ChannelEmail, err: errors.New("smtp handshake refused")}
	whatsapp := &stubChannel{name: ChannelWhatsApp}
	n := NewNotifier(time.Second, email, whatsapp)

	results := n.Dispatch(context.Background(), testAlert)

	assert.Equal(t, map[string]bool{ChannelEmail: false, ChannelWhatsApp: true}, results)
	assert.Equal(t, 1, whatsapp.calls, "whatsapp must still be attempted")
}

func TestNotifier_UnconfiguredChannelIsSkippedNotFatal(t *testing.T) {
	email := &stubChannel{name: ChannelEmail, err: models.ErrChannelUnavailable}
	whatsapp := &stubChannel{name: ChannelWhatsApp}
	n := NewNotifier(time.Second, email, whatsapp)

	results := n.Dispatch(context.Background(), testAlert)

	assert.False(t, results[ChannelEmail])
	assert.True(t, results[ChannelWhatsApp])
}

func TestNotifier_SlowChannelIsBoundedByTimeout(t *testing.T) {
	slow := &stubChannel{name: ChannelEmail, delay: 5 * time.Second}
	fast := &stubChannel{name: ChannelWhatsApp}
	n := NewNotifier(50*time.Millisecond, slow, fast)

	start := time.Now()
	results := n.Dispatch(context.Background(), testAlert)

	assert.Less(t, time.Since(start), time.Second, "dispatch must not wait out the slow channel")
	assert.False(t, results[ChannelEmail])
	assert.True(t, results[ChannelWhatsApp])
}

func TestNotifier_NoChannels(t *testing.T) {
	n := NewNotifier(time.Second)
	assert.Empty(t, n.Dispatch(context.Background(), testAlert))
}

func TestEmailChannel_UnconfiguredReportsUnavailable(t *testing.T) {
	ch, err := NewEmailChannel("", "", "")
	require.NoError(t, err)

	err = ch.Send(context.Background(), testAlert)
	assert.ErrorIs(t, err, models.ErrChannelUnavailable)
}

func TestWhatsAppChannel_UnconfiguredReportsUnavailable(t *testing.T) {
	ch := NewWhatsAppChannel("", "", "whatsapp:+14155238886", "")

	err := ch.Send(context.Background(), testAlert)
	assert.ErrorIs(t, err, models.ErrChannelUnavailable)
}
