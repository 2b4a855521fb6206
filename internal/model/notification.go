package model

import "time"

// Kind identifies the rule category that produced a notification.
type Kind string

const (
	KindConsultation  Kind = "consultation"
	KindPartsDelivery Kind = "parts_delivery"
	KindEvent         Kind = "event"
	KindTechSchedule  Kind = "tech_schedule"
	KindDailyDigest   Kind = "daily_digest"
)

// NotificationRecord is one persisted notification.
type NotificationRecord struct {
	// ID is assigned by the store on first insert.
	ID int64 `json:"id"`

	// Key is the stable de-duplication identity. Two runs over the same
	// source state derive the same key, so reconciliation upserts instead
	// of duplicating.
	Key string `json:"key"`

	// Kind identifies which rule category produced this notification.
	Kind Kind `json:"kind"`

	// Title is the short human-readable headline.
	Title string `json:"title"`

	// Message is the optional longer body text.
	Message string `json:"message,omitempty"`

	// CreatedAt is set once on first insert and never overwritten by
	// later reconciliation runs.
	CreatedAt time.Time `json:"createdAt"`

	// EventAt is the timestamp of the underlying calendar fact, when the
	// fact has one.
	EventAt *time.Time `json:"eventAt,omitempty"`

	// Linkage back to the source entities, when known.
	CalendarEventID int64 `json:"calendarEventId,omitempty"`
	WorkOrderID     int64 `json:"workOrderId,omitempty"`
	SaleID          int64 `json:"saleId,omitempty"`
	CustomerID      int64 `json:"customerId,omitempty"`

	// Date and Time are display copies of the fact's local calendar date
	// (YYYY-MM-DD) and time of day (HH:mm).
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`

	// OrderURL and TrackingURL link out to the supplier for parts facts.
	OrderURL    string `json:"orderUrl,omitempty"`
	TrackingURL string `json:"trackingUrl,omitempty"`

	// ReadAt is nil while unread. It is set when the user reads the
	// notification and is never cleared by reconciliation.
	ReadAt *time.Time `json:"readAt,omitempty"`
}

// Equal reports whether two records agree on every semantic field.
// Reconciliation uses it to skip no-op writes.
func (n NotificationRecord) Equal(o NotificationRecord) bool {
	return n.Key == o.Key &&
		n.Kind == o.Kind &&
		n.Title == o.Title &&
		n.Message == o.Message &&
		n.CreatedAt.Equal(o.CreatedAt) &&
		timePtrEqual(n.EventAt, o.EventAt) &&
		n.CalendarEventID == o.CalendarEventID &&
		n.WorkOrderID == o.WorkOrderID &&
		n.SaleID == o.SaleID &&
		n.CustomerID == o.CustomerID &&
		n.Date == o.Date &&
		n.Time == o.Time &&
		n.OrderURL == o.OrderURL &&
		n.TrackingURL == o.TrackingURL &&
		timePtrEqual(n.ReadAt, o.ReadAt)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
