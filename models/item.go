package models

import "time"

// ItemStatus classifies how close an item is to running out.
type ItemStatus string

const (
	StatusOK       ItemStatus = "ok"
	StatusLow      ItemStatus = "low"
	StatusCritical ItemStatus = "critical"
)

// InventoryItem represents a consumable tracked by the lounge.
type InventoryItem struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	CurrentStock  int        `json:"current_stock"`
	BaseThreshold int        `json:"base_threshold"`
	MaxCapacity   int        `json:"max_capacity"`
	Unit          string     `json:"unit"`
	Status        ItemStatus `json:"status"`
	LastUpdated   time.Time  `json:"last_updated"`
}

// CreateItemRequest represents the request body for adding an item
type CreateItemRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	CurrentStock  int    `json:"current_stock"`
	BaseThreshold int    `json:"base_threshold"`
	MaxCapacity   int    `json:"max_capacity"`
	Unit          string `json:"unit"`
}

// UpdateStockRequest represents the request body for setting an item's stock
type UpdateStockRequest struct {
	CurrentStock int `json:"current_stock"`
}
