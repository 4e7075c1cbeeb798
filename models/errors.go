package models

import "errors"

var (
	// ErrItemNotFound is returned when an inventory item id is unknown.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrOrderNotFound is returned when a restock order id is unknown.
	ErrOrderNotFound = errors.New("restock order not found")

	// ErrAlreadyFulfilled is returned on a second fulfillment attempt for the same order.
	ErrAlreadyFulfilled = errors.New("restock order already fulfilled")

	// ErrChannelUnavailable marks a notification channel with no configured
	// credentials or destination. Skipped, never fatal.
	ErrChannelUnavailable = errors.New("notification channel not configured")

	// ErrTransientDelivery wraps a notification attempt that reached the
	// channel but failed. Not retried; the next order re-attempts delivery.
	ErrTransientDelivery = errors.New("notification delivery failed")
)
