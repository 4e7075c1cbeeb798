package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"lounge-inventory/db"
	"lounge-inventory/models"
)

// OrderRepository handles database operations for the restock ledger
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

const orderColumns = "id, item_id, item_name, quantity_ordered, triggered_by, is_peak_hour, email_sent, whatsapp_sent, status, triggered_at"

func scanOrder(row interface{ Scan(...any) error }) (*models.RestockOrder, error) {
	var order models.RestockOrder
	var itemID sql.NullInt64
	err := row.Scan(
		&order.ID,
		&itemID,
		&order.ItemName,
		&order.QuantityOrdered,
		&order.TriggeredBy,
		&order.IsPeakHour,
		&order.EmailSent,
		&order.WhatsAppSent,
		&order.Status,
		&order.TriggeredAt,
	)
	if err != nil {
		return nil, err
	}
	if itemID.Valid {
		order.ItemID = &itemID.Int64
	}
	return &order, nil
}

// ListAll returns the ledger, newest first.
func (r *OrderRepository) ListAll(ctx context.Context) ([]models.RestockOrder, error) {
	query := "SELECT " + orderColumns + " FROM restock_orders ORDER BY triggered_at DESC, id DESC"

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list restock orders: %w", err)
	}
	defer rows.Close()

	var orders []models.RestockOrder
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restock order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate restock orders: %w", err)
	}
	return orders, nil
}

// GetByID returns one order, or (nil, nil) when the id is unknown.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.RestockOrder, error) {
	query := db.Rebind("SELECT " + orderColumns + " FROM restock_orders WHERE id = ?")

	order, err := scanOrder(db.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restock order %d: %w", id, err)
	}
	return order, nil
}

// FindPending returns the pending order for an item, or (nil, nil) when none exists.
func (r *OrderRepository) FindPending(ctx context.Context, itemID int64) (*models.RestockOrder, error) {
	query := db.Rebind("SELECT " + orderColumns + " FROM restock_orders WHERE item_id = ? AND status = 'pending' ORDER BY id ASC LIMIT 1")

	order, err := scanOrder(db.DB.QueryRowContext(ctx, query, itemID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pending order for item %d: %w", itemID, err)
	}
	return order, nil
}

// Insert creates an order unconditionally. Used by the manual path, which
// deliberately ignores existing pending orders.
func (r *OrderRepository) Insert(ctx context.Context, order *models.RestockOrder) (int64, error) {
	query := db.Rebind(`INSERT INTO restock_orders
		(item_id, item_name, quantity_ordered, triggered_by, is_peak_hour, email_sent, whatsapp_sent, status, triggered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := db.DB.QueryRowContext(ctx, query,
		nullableItemID(order.ItemID), order.ItemName, order.QuantityOrdered, order.TriggeredBy,
		order.IsPeakHour, order.EmailSent, order.WhatsAppSent, order.Status, order.TriggeredAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert restock order: %w", err)
	}
	return id, nil
}

// InsertIfNoPending creates an order only if the item has no pending order.
// The existence check and the insert are a single SQL statement, so two
// overlapping sweeps cannot both pass the guard. Returns the new id and
// whether a row was created.
func (r *OrderRepository) InsertIfNoPending(ctx context.Context, order *models.RestockOrder) (int64, bool, error) {
	query := db.Rebind(`INSERT INTO restock_orders
		(item_id, item_name, quantity_ordered, triggered_by, is_peak_hour, email_sent, whatsapp_sent, status, triggered_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM restock_orders WHERE item_id = ? AND status = 'pending'
		)
		RETURNING id`)

	var id int64
	err := db.DB.QueryRowContext(ctx, query,
		nullableItemID(order.ItemID), order.ItemName, order.QuantityOrdered, order.TriggeredBy,
		order.IsPeakHour, order.EmailSent, order.WhatsAppSent, order.Status, order.TriggeredAt,
		nullableItemID(order.ItemID)).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert restock order: %w", err)
	}
	return id, true, nil
}

// SetNotificationOutcome records per-channel delivery results on the order.
func (r *OrderRepository) SetNotificationOutcome(ctx context.Context, id int64, emailSent, whatsappSent bool) error {
	query := db.Rebind("UPDATE restock_orders SET email_sent = ?, whatsapp_sent = ? WHERE id = ?")

	if _, err := db.DB.ExecContext(ctx, query, emailSent, whatsappSent, id); err != nil {
		return fmt.Errorf("failed to record notification outcome for order %d: %w", id, err)
	}
	return nil
}

// Fulfill marks an order fulfilled and credits its quantity back to the
// item, in one transaction. A crash can never leave the stock credited with
// the order still pending, or the reverse.
func (r *OrderRepository) Fulfill(ctx context.Context, orderID int64, now time.Time,
	reclassify func(item models.InventoryItem) models.ItemStatus) (*models.RestockOrder, *models.InventoryItem, error) {

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := scanOrder(tx.QueryRowContext(ctx,
		db.Rebind("SELECT "+orderColumns+" FROM restock_orders WHERE id = ?"), orderID))
	if err == sql.ErrNoRows {
		return nil, nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load order %d: %w", orderID, err)
	}
	if order.Status == models.OrderFulfilled {
		return nil, nil, models.ErrAlreadyFulfilled
	}

	// Guarded transition; a concurrent fulfillment loses here.
	res, err := tx.ExecContext(ctx,
		db.Rebind("UPDATE restock_orders SET status = 'fulfilled' WHERE id = ? AND status = 'pending'"), orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fulfill order %d: %w", orderID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, nil, models.ErrAlreadyFulfilled
	}
	order.Status = models.OrderFulfilled

	var item *models.InventoryItem
	if order.ItemID != nil {
		_, err = tx.ExecContext(ctx,
			db.Rebind("UPDATE inventory_items SET current_stock = current_stock + ?, last_updated = ? WHERE id = ?"),
			order.QuantityOrdered, now, *order.ItemID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to credit stock for item %d: %w", *order.ItemID, err)
		}

		item, err = scanItem(tx.QueryRowContext(ctx,
			db.Rebind("SELECT "+itemColumns+" FROM inventory_items WHERE id = ?"), *order.ItemID))
		if err == sql.ErrNoRows {
			// Item deleted after the order was placed; the ledger entry
			// still completes.
			item = nil
			log.Printf("order %d fulfilled for deleted item %d", orderID, *order.ItemID)
		} else if err != nil {
			return nil, nil, fmt.Errorf("failed to reload item %d: %w", *order.ItemID, err)
		}

		if item != nil {
			status := reclassify(*item)
			if _, err := tx.ExecContext(ctx,
				db.Rebind("UPDATE inventory_items SET status = ? WHERE id = ?"), status, item.ID); err != nil {
				return nil, nil, fmt.Errorf("failed to reclassify item %d: %w", item.ID, err)
			}
			item.Status = status
			item.LastUpdated = now
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit fulfillment of order %d: %w", orderID, err)
	}
	return order, item, nil
}

func nullableItemID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
