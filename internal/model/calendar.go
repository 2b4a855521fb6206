package model

// Calendar event categories the notification engine cares about.
type EventCategory string

const (
	CategoryConsultation EventCategory = "consultation"
	CategoryParts        EventCategory = "parts"
	CategoryEvent        EventCategory = "event"
)

// Parts event statuses. An empty status on a parts event is treated as a
// pending delivery.
const (
	PartsStatusOrdered  = "ordered"
	PartsStatusDelivery = "delivery"
)

// CalendarEvent is a scheduling entry from the shop calendar. The engine
// reads these; it never writes them.
type CalendarEvent struct {
	// ID is the store-assigned identifier of the calendar record.
	ID int64 `json:"id"`

	// Category classifies the entry (use Category* constants).
	Category EventCategory `json:"category"`

	// Title is the entry's display text (part description, event name).
	Title string `json:"title"`

	// Date is the local calendar date, YYYY-MM-DD.
	Date string `json:"date"`

	// Time is the local time of day, HH:mm. Empty for date-only entries.
	Time string `json:"time,omitempty"`

	// PartsStatus applies to parts entries only (use PartsStatus* constants).
	PartsStatus string `json:"partsStatus,omitempty"`

	// Linkage to the rest of the shop data.
	CustomerID   int64  `json:"customerId,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
	TechnicianID int64  `json:"technicianId,omitempty"`
	WorkOrderID  int64  `json:"workOrderId,omitempty"`
	SaleID       int64  `json:"saleId,omitempty"`

	// Supplier links for parts entries.
	OrderURL    string `json:"orderUrl,omitempty"`
	TrackingURL string `json:"trackingUrl,omitempty"`
}
