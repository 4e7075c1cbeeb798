package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lounge-inventory/db"
	"lounge-inventory/models"
)

// ItemRepository handles database operations for inventory items
type ItemRepository struct{}

// NewItemRepository creates a new ItemRepository
func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

// Ensure ItemRepository implements ItemRepositoryInterface
var _ ItemRepositoryInterface = (*ItemRepository)(nil)

const itemColumns = "id, name, category, current_stock, base_threshold, max_capacity, unit, status, last_updated"

func scanItem(row interface{ Scan(...any) error }) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.CurrentStock,
		&item.BaseThreshold,
		&item.MaxCapacity,
		&item.Unit,
		&item.Status,
		&item.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListAll returns every inventory item. The status-descending ordering is
// observable API behavior and is kept as-is.
func (r *ItemRepository) ListAll(ctx context.Context) ([]models.InventoryItem, error) {
	query := "SELECT " + itemColumns + " FROM inventory_items ORDER BY status DESC, id ASC"

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory items: %w", err)
	}
	return items, nil
}

// GetByID returns one item, or (nil, nil) when the id is unknown.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	query := db.Rebind("SELECT " + itemColumns + " FROM inventory_items WHERE id = ?")

	item, err := scanItem(db.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item %d: %w", id, err)
	}
	return item, nil
}

// Insert creates an item and returns its generated id.
func (r *ItemRepository) Insert(ctx context.Context, item *models.InventoryItem) (int64, error) {
	query := db.Rebind(`INSERT INTO inventory_items
		(name, category, current_stock, base_threshold, max_capacity, unit, status, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	status := item.Status
	if status == "" {
		status = models.StatusOK
	}

	var id int64
	err := db.DB.QueryRowContext(ctx, query,
		item.Name, item.Category, item.CurrentStock, item.BaseThreshold,
		item.MaxCapacity, item.Unit, status, item.LastUpdated).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return id, nil
}

// SetStatus persists a reclassified status.
func (r *ItemRepository) SetStatus(ctx context.Context, id int64, status models.ItemStatus, updatedAt time.Time) error {
	query := db.Rebind("UPDATE inventory_items SET status = ?, last_updated = ? WHERE id = ?")

	res, err := db.DB.ExecContext(ctx, query, status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to set status for item %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrItemNotFound
	}
	return nil
}

// SetStock overwrites the current stock level.
func (r *ItemRepository) SetStock(ctx context.Context, id int64, stock int, updatedAt time.Time) error {
	query := db.Rebind("UPDATE inventory_items SET current_stock = ?, last_updated = ? WHERE id = ?")

	res, err := db.DB.ExecContext(ctx, query, stock, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to set stock for item %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrItemNotFound
	}
	return nil
}

// AddStock credits delta units to the current stock.
func (r *ItemRepository) AddStock(ctx context.Context, id int64, delta int, updatedAt time.Time) error {
	query := db.Rebind("UPDATE inventory_items SET current_stock = current_stock + ?, last_updated = ? WHERE id = ?")

	res, err := db.DB.ExecContext(ctx, query, delta, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to add stock for item %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrItemNotFound
	}
	return nil
}

// Delete removes an item. Existing orders keep their denormalized item name;
// their item reference dangles by design.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	query := db.Rebind("DELETE FROM inventory_items WHERE id = ?")

	res, err := db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrItemNotFound
	}
	return nil
}
