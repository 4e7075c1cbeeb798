package router

import (
	"net/http"
	"strings"

	"lounge-inventory/app/controller"
)

type Controllers struct {
	Inventory *controller.InventoryController
	Order     *controller.OrderController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Inventory collection - handles both GET (list) and POST (create)
	http.HandleFunc("/inventory", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Inventory.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Inventory.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Manual trigger of the periodic sweep
	http.HandleFunc("/inventory/evaluate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		controllers.Inventory.Evaluate(w, r)
	})

	// Inventory item by id - PUT (set stock) and DELETE
	http.HandleFunc("/inventory/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			controllers.Inventory.UpdateStock(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Inventory.Delete(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Order ledger
	http.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Order.List(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Manual restock order for an item
	http.HandleFunc("/orders/manual/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		controllers.Order.ManualOrder(w, r)
	})

	// Order actions
	http.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/fulfill") && r.Method == http.MethodPut {
			controllers.Order.Fulfill(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})
}
