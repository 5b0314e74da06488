package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrDeliveryValidationFailed is the sentinel behind every delivery
// validation rule violation. Use errors.Is to classify, and inspect the
// concrete ValidationError for the rule that fired.
var ErrDeliveryValidationFailed = errors.New("delivery validation failed")

// ErrOrderNotDeliverable is the sentinel behind NotDeliverableError.
var ErrOrderNotDeliverable = errors.New("order is not in a deliverable state")

// Validation rule identifiers reported in ValidationError.Rule.
const (
	RuleCustomerVerification  = "customer_verification"
	RuleCodPaymentCollection  = "cod_payment_collection"
	RuleFailureReasonRequired = "failure_reason_required"
)

// ValidationError reports which delivery validation rule rejected a
// request. No store mutation has happened when it is returned.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDeliveryValidationFailed, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrDeliveryValidationFailed
}

// NotDeliverableError reports that an order's current status admits no
// delivery outcome. Terminal orders land here too, which is what makes
// re-processing an already delivered order a rejected no-op.
type NotDeliverableError struct {
	OrderID string
	Status  Status
}

func (e *NotDeliverableError) Error() string {
	return fmt.Sprintf("%s: order %s is in status %q", ErrOrderNotDeliverable, e.OrderID, e.Status)
}

func (e *NotDeliverableError) Unwrap() error {
	return ErrOrderNotDeliverable
}

// PaymentRecord documents a cash-on-delivery collection taken at the door.
type PaymentRecord struct {
	ID          string
	Amount      float64
	Method      string
	Status      string
	CollectedBy string
	CollectedAt time.Time
}

// NewPaymentRecord creates a completed COD payment record for the given amount.
func NewPaymentRecord(amount float64, collectedBy string, collectedAt time.Time) PaymentRecord {
	return PaymentRecord{
		ID:          "PAY-" + uuid.NewString(),
		Amount:      amount,
		Method:      "cod",
		Status:      "completed",
		CollectedBy: collectedBy,
		CollectedAt: collectedAt,
	}
}

// DeliveryResult is the immutable record of one applied delivery outcome.
type DeliveryResult struct {
	OrderID          string
	Status           Status
	Message          string
	Timestamp        time.Time
	PaymentCollected *float64
	Proof            *DeliveryProof
	CustomerFeedback string
}
