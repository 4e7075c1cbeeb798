package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"lounge-inventory/models"
	"lounge-inventory/peak"
	"lounge-inventory/repository"
)

// ReplenishmentService is the core engine: it reclassifies item status,
// decides when restock orders must be created, enforces the
// one-pending-order-per-item guard on the automatic path, and fans out
// delivery notifications without ever failing the underlying state update.
type ReplenishmentService struct {
	items    repository.ItemRepositoryInterface
	orders   repository.OrderRepositoryInterface
	calendar *peak.Calendar
	notifier NotifierInterface

	// now is swappable so time-dependent branches are testable.
	now func() time.Time
}

// NewReplenishmentService creates the engine over its collaborators.
func NewReplenishmentService(
	items repository.ItemRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	calendar *peak.Calendar,
	notifier NotifierInterface,
) *ReplenishmentService {
	return &ReplenishmentService{
		items:    items,
		orders:   orders,
		calendar: calendar,
		notifier: notifier,
		now:      time.Now,
	}
}

// Ensure ReplenishmentService implements ReplenishmentServiceInterface
var _ ReplenishmentServiceInterface = (*ReplenishmentService)(nil)

// ClassifyStatus is the pure status classification. The critical boundary is
// half the base threshold (integer division) and is peak-insensitive; peak
// hours only ever widen the low boundary via the effective threshold.
func ClassifyStatus(currentStock, baseThreshold, effectiveThreshold int) models.ItemStatus {
	if currentStock <= baseThreshold/2 {
		return models.StatusCritical
	}
	if currentStock <= effectiveThreshold {
		return models.StatusLow
	}
	return models.StatusOK
}

// EvaluationSummary reports what one sweep did.
type EvaluationSummary struct {
	RunID         string `json:"run_id"`
	IsPeakHour    bool   `json:"is_peak_hour"`
	Evaluated     int    `json:"evaluated"`
	StatusChanged int    `json:"status_changed"`
	OrdersCreated int    `json:"orders_created"`
	Errors        int    `json:"errors"`
}

// EvaluateAll runs one full sweep. Items are independent: a store or
// notification failure on one item is logged and counted, and the sweep
// continues with the rest.
func (s *ReplenishmentService) EvaluateAll(ctx context.Context) (*EvaluationSummary, error) {
	runID := uuid.NewString()
	now := s.now()

	summary := &EvaluationSummary{
		RunID:      runID,
		IsPeakHour: s.calendar.IsPeakHour(now),
	}

	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	log.Printf("🔄 [%s] evaluating %d items (peak=%v)", runID, len(items), summary.IsPeakHour)

	for _, item := range items {
		summary.Evaluated++

		effective := s.calendar.EffectiveThreshold(item.BaseThreshold, now)
		status := ClassifyStatus(item.CurrentStock, item.BaseThreshold, effective)

		if status != item.Status {
			if err := s.items.SetStatus(ctx, item.ID, status, now); err != nil {
				log.Printf("❌ [%s] failed to update status of %s: %v", runID, item.Name, err)
				summary.Errors++
				continue
			}
			summary.StatusChanged++
		}

		if item.CurrentStock <= effective {
			order, err := s.CreateOrder(ctx, item.ID, models.TriggeredByAuto)
			if err != nil {
				// The item vanished between list and read; nothing to order.
				if errors.Is(err, models.ErrItemNotFound) {
					continue
				}
				log.Printf("❌ [%s] failed to create order for %s: %v", runID, item.Name, err)
				summary.Errors++
				continue
			}
			if order != nil {
				summary.OrdersCreated++
			}
		}
	}

	log.Printf("✓ [%s] sweep done: %d evaluated, %d reclassified, %d orders, %d errors",
		runID, summary.Evaluated, summary.StatusChanged, summary.OrdersCreated, summary.Errors)
	return summary, nil
}

// CreateOrder places a restock order for quantity maxCapacity - currentStock
// at call time. The peak flag is snapshotted onto the order. Automatic
// orders are deduplicated against an existing pending order via one atomic
// storage operation; manual orders never are. Notification failures are
// recorded on the order but never fail the creation.
func (s *ReplenishmentService) CreateOrder(ctx context.Context, itemID int64, triggeredBy models.TriggerSource) (*models.RestockOrder, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item %d: %w", itemID, err)
	}
	if item == nil {
		return nil, models.ErrItemNotFound
	}

	now := s.now()
	order := &models.RestockOrder{
		ItemID:          &item.ID,
		ItemName:        item.Name,
		QuantityOrdered: item.MaxCapacity - item.CurrentStock,
		TriggeredBy:     triggeredBy,
		IsPeakHour:      s.calendar.IsPeakHour(now),
		Status:          models.OrderPending,
		TriggeredAt:     now,
	}

	if triggeredBy == models.TriggeredByAuto {
		id, created, err := s.orders.InsertIfNoPending(ctx, order)
		if err != nil {
			return nil, fmt.Errorf("failed to insert restock order for %s: %w", item.Name, err)
		}
		if !created {
			return nil, nil
		}
		order.ID = id
	} else {
		id, err := s.orders.Insert(ctx, order)
		if err != nil {
			return nil, fmt.Errorf("failed to insert restock order for %s: %w", item.Name, err)
		}
		order.ID = id
	}

	log.Printf("📦 restock order #%d: %s x%d (%s, peak=%v)",
		order.ID, order.ItemName, order.QuantityOrdered, order.TriggeredBy, order.IsPeakHour)

	if s.notifier != nil {
		outcome := s.notifier.Dispatch(ctx, models.RestockAlert{
			ItemName:   item.Name,
			Quantity:   order.QuantityOrdered,
			IsPeakHour: order.IsPeakHour,
		})
		order.EmailSent = outcome[ChannelEmail]
		order.WhatsAppSent = outcome[ChannelWhatsApp]

		if err := s.orders.SetNotificationOutcome(ctx, order.ID, order.EmailSent, order.WhatsAppSent); err != nil {
			log.Printf("❌ failed to record notification outcome for order %d: %v", order.ID, err)
		}
	}

	return order, nil
}

// FulfillOrder marks an order delivered, credits its quantity back to the
// item's stock, and reclassifies the item with thresholds evaluated at the
// current time, which may differ from the peak state at creation.
func (s *ReplenishmentService) FulfillOrder(ctx context.Context, orderID int64) (*models.RestockOrder, *models.InventoryItem, error) {
	now := s.now()

	order, item, err := s.orders.Fulfill(ctx, orderID, now, func(it models.InventoryItem) models.ItemStatus {
		effective := s.calendar.EffectiveThreshold(it.BaseThreshold, now)
		return ClassifyStatus(it.CurrentStock, it.BaseThreshold, effective)
	})
	if err != nil {
		return nil, nil, err
	}

	if item != nil {
		log.Printf("✓ order #%d fulfilled: %s now at %d %s (%s)",
			order.ID, item.Name, item.CurrentStock, item.Unit, item.Status)
	} else {
		log.Printf("✓ order #%d fulfilled (item no longer exists)", order.ID)
	}
	return order, item, nil
}
