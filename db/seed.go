package db

import (
	"context"
	"fmt"
	"log"
	"time"
)

type seedItem struct {
	name          string
	category      string
	currentStock  int
	baseThreshold int
	maxCapacity   int
	unit          string
}

// The reference lounge stocklist.
var seedItems = []seedItem{
	{"Johnnie Walker Black", "liquor", 15, 20, 100, "bottles"},
	{"Hendricks Gin", "liquor", 8, 15, 60, "bottles"},
	{"Moet Champagne", "liquor", 4, 10, 50, "bottles"},
	{"Absolut Vodka", "liquor", 6, 12, 80, "bottles"},
	{"Jack Daniels", "liquor", 18, 20, 90, "bottles"},
	{"Orange Juice", "beverage", 30, 40, 150, "cartons"},
	{"Mineral Water", "beverage", 55, 60, 200, "bottles"},
	{"Coca Cola", "beverage", 20, 30, 120, "cans"},
	{"Tonic Water", "beverage", 10, 20, 80, "cans"},
	{"Red Bull", "beverage", 5, 15, 60, "cans"},
	{"Mixed Nuts", "food", 12, 25, 100, "units"},
	{"Croissants", "food", 8, 20, 60, "units"},
	{"Cheese Platter", "food", 3, 10, 30, "units"},
	{"Fruit Basket", "food", 5, 10, 40, "units"},
	{"Sandwich Platter", "food", 6, 15, 50, "units"},
}

// Seed inserts the reference stocklist when the items table is empty.
// Safe to run on every start; it never duplicates rows.
func Seed(ctx context.Context) error {
	var count int
	if err := DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory_items").Scan(&count); err != nil {
		return fmt.Errorf("failed to count inventory items: %w", err)
	}
	if count > 0 {
		log.Printf("DB already has %d items, skipping seed", count)
		return nil
	}

	query := Rebind(`INSERT INTO inventory_items
		(name, category, current_stock, base_threshold, max_capacity, unit, status, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, 'ok', ?)`)

	now := time.Now()
	for _, item := range seedItems {
		if _, err := DB.ExecContext(ctx, query,
			item.name, item.category, item.currentStock, item.baseThreshold,
			item.maxCapacity, item.unit, now); err != nil {
			return fmt.Errorf("failed to seed item %s: %w", item.name, err)
		}
	}

	log.Printf("✓ Seeded %d items", len(seedItems))
	return nil
}
