package repository

import (
	"context"
	"time"

	"lounge-inventory/models"
)

// ItemRepositoryInterface defines the contract for inventory item storage.
// Read-by-id returns (nil, nil) when the item does not exist.
type ItemRepositoryInterface interface {
	ListAll(ctx context.Context) ([]models.InventoryItem, error)
	GetByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	Insert(ctx context.Context, item *models.InventoryItem) (int64, error)
	SetStatus(ctx context.Context, id int64, status models.ItemStatus, updatedAt time.Time) error
	SetStock(ctx context.Context, id int64, stock int, updatedAt time.Time) error
	AddStock(ctx context.Context, id int64, delta int, updatedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

// OrderRepositoryInterface defines the contract for the restock ledger.
//
// InsertIfNoPending is the duplicate guard for the automatic path: the
// pending check and the insert execute as one atomic storage operation, so
// overlapping sweeps cannot both order the same item. Insert is the
// unconditional variant used by the manual path.
//
// Fulfill applies the order transition and the stock credit as a single
// atomic unit. reclassify computes the item's new status from its
// post-credit state; the returned item is nil when the order's item was
// deleted after creation.
type OrderRepositoryInterface interface {
	ListAll(ctx context.Context) ([]models.RestockOrder, error)
	GetByID(ctx context.Context, id int64) (*models.RestockOrder, error)
	FindPending(ctx context.Context, itemID int64) (*models.RestockOrder, error)
	Insert(ctx context.Context, order *models.RestockOrder) (int64, error)
	InsertIfNoPending(ctx context.Context, order *models.RestockOrder) (int64, bool, error)
	SetNotificationOutcome(ctx context.Context, id int64, emailSent, whatsappSent bool) error
	Fulfill(ctx context.Context, orderID int64, now time.Time,
		reclassify func(item models.InventoryItem) models.ItemStatus) (*models.RestockOrder, *models.InventoryItem, error)
}
