package models

import "time"

// TriggerSource records whether an order came from the periodic sweep or a staff request.
type TriggerSource string

const (
	TriggeredByAuto   TriggerSource = "auto"
	TriggeredByManual TriggerSource = "manual"
)

// OrderStatus is the lifecycle state of a restock order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderFulfilled OrderStatus = "fulfilled"
)

// RestockOrder represents one entry in the restock ledger.
// ItemID is nil when the referenced item was deleted after the order was placed.
// ItemName and IsPeakHour are snapshots taken at creation time.
type RestockOrder struct {
	ID              int64         `json:"id"`
	ItemID          *int64        `json:"item_id"`
	ItemName        string        `json:"item_name"`
	QuantityOrdered int           `json:"quantity_ordered"`
	TriggeredBy     TriggerSource `json:"triggered_by"`
	IsPeakHour      bool          `json:"is_peak_hour"`
	EmailSent       bool          `json:"email_sent"`
	WhatsAppSent    bool          `json:"whatsapp_sent"`
	Status          OrderStatus   `json:"status"`
	TriggeredAt     time.Time     `json:"triggered_at"`
}

// RestockAlert is the payload handed to notification channels.
type RestockAlert struct {
	ItemName   string
	Quantity   int
	IsPeakHour bool
}
