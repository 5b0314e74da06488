package ports

import (
	"context"
	"time"
)

// AnalyticsEvent is a write-only fact row describing one applied delivery
// outcome. Events are appended after the order store commit; they never
// influence the outcome of the operation that produced them.
type AnalyticsEvent struct {
	OrderID          string    `json:"order_id"`
	DeliveryStatus   string    `json:"delivery_status"`
	DeliveredBy      string    `json:"delivered_by"`
	OrderValue       float64   `json:"order_value"`
	PaymentMethod    string    `json:"payment_method"`
	CustomerVerified bool      `json:"customer_verified"`
	HasProof         bool      `json:"has_proof"`
	HasFeedback      bool      `json:"has_feedback"`
	FailureReason    string    `json:"failure_reason,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// AnalyticsPublisher appends delivery analytics events to the analytics
// store. Publish errors are logged and swallowed by callers: the delivery
// itself has already committed when an event is emitted.
type AnalyticsPublisher interface {
	Publish(ctx context.Context, event AnalyticsEvent) error
}
