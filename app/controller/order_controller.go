package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"lounge-inventory/models"
	"lounge-inventory/repository"
	"lounge-inventory/service"
)

// OrderController handles HTTP requests for restock orders
type OrderController struct {
	repository repository.OrderRepositoryInterface
	engine     service.ReplenishmentServiceInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface, engine service.ReplenishmentServiceInterface) *OrderController {
	return &OrderController{
		repository: repo,
		engine:     engine,
	}
}

// List handles GET /orders
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.repository.ListAll(r.Context())
	if err != nil {
		log.Printf("❌ List: failed to list orders: %v", err)
		http.Error(w, "Failed to list orders", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []models.RestockOrder{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// ManualOrder handles POST /orders/manual/{itemId}. Manual orders bypass the
// pending-order guard on purpose: staff can always force a reorder.
func (c *OrderController) ManualOrder(w http.ResponseWriter, r *http.Request) {
	itemID, ok := trailingID(w, r.URL.Path, "/orders/manual/")
	if !ok {
		return
	}

	order, err := c.engine.CreateOrder(r.Context(), itemID, models.TriggeredByManual)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ ManualOrder: failed for item %d: %v", itemID, err)
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// FulfillResponse pairs the fulfilled order with the updated item state.
// Item is null when the order's item was deleted after creation.
type FulfillResponse struct {
	Order *models.RestockOrder  `json:"order"`
	Item  *models.InventoryItem `json:"item"`
}

// Fulfill handles PUT /orders/{id}/fulfill
func (c *OrderController) Fulfill(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/fulfill")
	orderID, ok := trailingID(w, path, "/orders/")
	if !ok {
		return
	}

	order, item, err := c.engine.FulfillOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, models.ErrAlreadyFulfilled):
			http.Error(w, "Order already fulfilled", http.StatusConflict)
		default:
			log.Printf("❌ Fulfill: failed for order %d: %v", orderID, err)
			http.Error(w, "Failed to fulfill order", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, FulfillResponse{Order: order, Item: item})
}
