package service

import (
	"context"

	"lounge-inventory/models"
)

// ReplenishmentServiceInterface defines the contract for the replenishment engine.
type ReplenishmentServiceInterface interface {
	// EvaluateAll sweeps the whole inventory: reclassifies every item and
	// places automatic restock orders where stock is at or below the
	// effective threshold. Item-local failures are counted, not fatal.
	EvaluateAll(ctx context.Context) (*EvaluationSummary, error)

	// CreateOrder places a restock order for one item. The auto path is
	// deduplicated against an existing pending order ((nil, nil) no-op);
	// the manual path always creates a new order. An unknown item yields
	// models.ErrItemNotFound.
	CreateOrder(ctx context.Context, itemID int64, triggeredBy models.TriggerSource) (*models.RestockOrder, error)

	// FulfillOrder marks an order delivered and credits its quantity back
	// to the item's stock atomically. Returns models.ErrOrderNotFound or
	// models.ErrAlreadyFulfilled as typed results.
	FulfillOrder(ctx context.Context, orderID int64) (*models.RestockOrder, *models.InventoryItem, error)
}
