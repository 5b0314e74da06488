package order

import (
	"fmt"

	"deliveryops/internal/pkg/errs"
)

// Status represents the fulfillment state of an order as stored in the
// order store. The delivery workflow only ever moves an order from one of
// the deliverable states into one of the terminal delivery states:
//
//	confirmed ─┐
//	packed    ─┤                  ┌─> delivered
//	shipped   ─┼─ (deliverable) ──┼─> failed_delivery
//	out_for_delivery ─┘           └─> returned
//
// Terminal delivery states accept no further transitions. Statuses outside
// both sets (for example a freshly placed order) belong to upstream
// subsystems; the workflow rejects them without mutation.
type Status string

const (
	// Unknown represents a missing or undefined status value.
	Unknown Status = ""

	// Deliverable states: a delivery outcome may legally be applied.
	Confirmed      Status = "confirmed"
	Packed         Status = "packed"
	Shipped        Status = "shipped"
	OutForDelivery Status = "out_for_delivery"

	// Terminal delivery states: the workflow is the last writer.
	Delivered      Status = "delivered"
	FailedDelivery Status = "failed_delivery"
	Returned       Status = "returned"
)

// String returns the wire-format status literal.
func (s Status) String() string {
	return string(s)
}

// Validate checks that the status carries a value. Unrecognized literals
// are accepted: orders pass through upstream fulfillment states this
// service does not own.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsRequiredError("status")
	}
	return nil
}

// DeliverableStatuses returns the statuses from which a delivery outcome
// may be applied, in workflow order.
func DeliverableStatuses() []Status {
	return []Status{Confirmed, Packed, Shipped, OutForDelivery}
}

// IsDeliverable reports whether a delivery outcome may be applied from this status.
func (s Status) IsDeliverable() bool {
	switch s {
	case Confirmed, Packed, Shipped, OutForDelivery:
		return true
	default:
		return false
	}
}

// IsTerminalDelivery reports whether this status is a terminal delivery state.
func (s Status) IsTerminalDelivery() bool {
	switch s {
	case Delivered, FailedDelivery, Returned:
		return true
	default:
		return false
	}
}

// Deliver transitions the status to Delivered.
// Valid only from a deliverable state.
func (s Status) Deliver() (Status, error) {
	if err := s.validateDeliverable("deliver"); err != nil {
		return Unknown, err
	}
	return Delivered, nil
}

// Fail transitions the status to FailedDelivery.
// Valid only from a deliverable state.
func (s Status) Fail() (Status, error) {
	if err := s.validateDeliverable("fail"); err != nil {
		return Unknown, err
	}
	return FailedDelivery, nil
}

// Return transitions the status to Returned.
// Valid only from a deliverable state.
func (s Status) Return() (Status, error) {
	if err := s.validateDeliverable("return"); err != nil {
		return Unknown, err
	}
	return Returned, nil
}

func (s Status) validateDeliverable(action string) error {
	if !s.IsDeliverable() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a deliverable status, cannot %s the order", s.String(), action),
		)
	}
	return nil
}
