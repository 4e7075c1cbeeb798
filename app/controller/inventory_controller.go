package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lounge-inventory/models"
	"lounge-inventory/repository"
	"lounge-inventory/service"
)

// InventoryController handles HTTP requests for inventory items
type InventoryController struct {
	repository repository.ItemRepositoryInterface
	engine     service.ReplenishmentServiceInterface
}

// NewInventoryController creates a new InventoryController
func NewInventoryController(repo repository.ItemRepositoryInterface, engine service.ReplenishmentServiceInterface) *InventoryController {
	return &InventoryController{
		repository: repo,
		engine:     engine,
	}
}

// List handles GET /inventory
func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.repository.ListAll(r.Context())
	if err != nil {
		log.Printf("❌ List: failed to list inventory: %v", err)
		http.Error(w, "Failed to list inventory", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /inventory
func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name cannot be empty", http.StatusBadRequest)
		return
	}
	if req.CurrentStock < 0 || req.BaseThreshold < 0 {
		http.Error(w, "current_stock and base_threshold must not be negative", http.StatusBadRequest)
		return
	}
	if req.MaxCapacity < req.BaseThreshold {
		http.Error(w, "max_capacity must be at least base_threshold", http.StatusBadRequest)
		return
	}

	item := &models.InventoryItem{
		Name:          strings.TrimSpace(req.Name),
		Category:      strings.TrimSpace(req.Category),
		CurrentStock:  req.CurrentStock,
		BaseThreshold: req.BaseThreshold,
		MaxCapacity:   req.MaxCapacity,
		Unit:          strings.TrimSpace(req.Unit),
		Status:        models.StatusOK,
		LastUpdated:   time.Now(),
	}

	id, err := c.repository.Insert(r.Context(), item)
	if err != nil {
		log.Printf("❌ Create: failed to insert item: %v", err)
		http.Error(w, "Failed to add item", http.StatusInternalServerError)
		return
	}
	item.ID = id

	log.Printf("✓ Create: item #%d %s added", item.ID, item.Name)
	writeJSON(w, http.StatusCreated, item)
}

// UpdateStock handles PUT /inventory/{id}
func (c *InventoryController) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := trailingID(w, r.URL.Path, "/inventory/")
	if !ok {
		return
	}

	var req models.UpdateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.CurrentStock < 0 {
		http.Error(w, "current_stock must not be negative", http.StatusBadRequest)
		return
	}

	if err := c.repository.SetStock(r.Context(), id, req.CurrentStock, time.Now()); err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ UpdateStock: failed to set stock for item %d: %v", id, err)
		http.Error(w, "Failed to update stock", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Stock updated"})
}

// Delete handles DELETE /inventory/{id}
func (c *InventoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := trailingID(w, r.URL.Path, "/inventory/")
	if !ok {
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Delete: failed to delete item %d: %v", id, err)
		http.Error(w, "Failed to delete item", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

// Evaluate handles POST /inventory/evaluate — a manual trigger of the sweep
// the scheduler runs periodically.
func (c *InventoryController) Evaluate(w http.ResponseWriter, r *http.Request) {
	summary, err := c.engine.EvaluateAll(r.Context())
	if err != nil {
		log.Printf("❌ Evaluate: sweep failed: %v", err)
		http.Error(w, "Evaluation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ failed to encode response: %v", err)
	}
}

// trailingID parses the numeric id that follows prefix in the request path.
func trailingID(w http.ResponseWriter, path, prefix string) (int64, bool) {
	raw := strings.TrimSuffix(strings.TrimPrefix(path, prefix), "/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
