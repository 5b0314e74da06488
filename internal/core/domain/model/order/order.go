package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"deliveryops/internal/core/domain/model/kernel"
	"deliveryops/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// PaymentMethodCod is the case-insensitive payment method literal that
// triggers the payment-collection rule.
const PaymentMethodCod = "cod"

// Order is the aggregate root for the delivery workflow. It is created
// externally by the order-placement subsystem and referenced here by
// (order id, customer e-mail); the workflow engine is the last writer of
// the delivery-specific fields once the order reaches a terminal state.
//
// Invariants:
//   - order id and customer e-mail are valid value objects
//   - order total is non-negative
//   - a delivery outcome may only be applied from a deliverable status
//   - terminal statuses accept no further outcome
type Order struct {
	id            kernel.OrderID
	customerEmail kernel.Email
	customerName  string
	address       string

	status        Status
	paymentMethod string
	paymentStatus string
	orderTotal    float64

	deliveryTime     *time.Time
	deliveredBy      string
	deliveryProof    *DeliveryProof
	customerFeedback string
	deliveryNotes    string

	failureReason      string
	failedDeliveryTime *time.Time
	attemptedBy        string

	returnReason string
	returnedTime *time.Time
	returnedBy   string
	returnNotes  string

	paymentRecord *PaymentRecord

	isConstructed bool
}

// Snapshot is the exported projection of an Order's fields. It is used to
// restore aggregates from persistence and to expose order details on
// operation results without leaking the aggregate itself.
type Snapshot struct {
	OrderID       string
	CustomerEmail string
	CustomerName  string
	Address       string

	Status        Status
	PaymentMethod string
	PaymentStatus string
	OrderTotal    float64

	DeliveryTime     *time.Time
	DeliveredBy      string
	DeliveryProof    *DeliveryProof
	CustomerFeedback string
	DeliveryNotes    string

	FailureReason      string
	FailedDeliveryTime *time.Time
	AttemptedBy        string

	ReturnReason string
	ReturnedTime *time.Time
	ReturnedBy   string
	ReturnNotes  string

	PaymentRecord *PaymentRecord
}

// NewOrder creates an Order in the given fulfillment status. Used by tests
// and fixtures; production orders arrive through RestoreOrder.
func NewOrder(
	id kernel.OrderID,
	customerEmail kernel.Email,
	status Status,
	paymentMethod string,
	orderTotal float64,
) (*Order, error) {
	return RestoreOrder(Snapshot{
		OrderID:       id.String(),
		CustomerEmail: customerEmail.String(),
		Status:        status,
		PaymentMethod: paymentMethod,
		OrderTotal:    orderTotal,
	})
}

// RestoreOrder reconstructs an Order aggregate from a persistence snapshot,
// re-validating the identifying value objects and the total.
func RestoreOrder(s Snapshot) (*Order, error) {
	id, err := kernel.NewOrderID(s.OrderID)
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(s.CustomerEmail)
	if err != nil {
		return nil, err
	}

	if statusErr := s.Status.Validate(); statusErr != nil {
		return nil, statusErr
	}

	if s.OrderTotal < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order total",
			fmt.Errorf("%v is negative", s.OrderTotal),
		)
	}

	return &Order{
		id:                 id,
		customerEmail:      email,
		customerName:       s.CustomerName,
		address:            s.Address,
		status:             s.Status,
		paymentMethod:      s.PaymentMethod,
		paymentStatus:      s.PaymentStatus,
		orderTotal:         s.OrderTotal,
		deliveryTime:       s.DeliveryTime,
		deliveredBy:        s.DeliveredBy,
		deliveryProof:      s.DeliveryProof,
		customerFeedback:   s.CustomerFeedback,
		deliveryNotes:      s.DeliveryNotes,
		failureReason:      s.FailureReason,
		failedDeliveryTime: s.FailedDeliveryTime,
		attemptedBy:        s.AttemptedBy,
		returnReason:       s.ReturnReason,
		returnedTime:       s.ReturnedTime,
		returnedBy:         s.ReturnedBy,
		returnNotes:        s.ReturnNotes,
		paymentRecord:      s.PaymentRecord,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// CustomerEmail returns the partition attribute of the order store.
func (o *Order) CustomerEmail() kernel.Email {
	return o.customerEmail
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// OrderTotal returns the order's total value.
func (o *Order) OrderTotal() float64 {
	return o.orderTotal
}

// PaymentMethod returns the payment method literal as stored.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// PaymentRecord returns the COD collection record, or nil when none exists.
func (o *Order) PaymentRecord() *PaymentRecord {
	return o.paymentRecord
}

// IsCashOnDelivery reports whether the order is paid cash-on-delivery.
// The comparison is case-insensitive, matching how the payment method is
// recorded upstream.
func (o *Order) IsCashOnDelivery() bool {
	return strings.EqualFold(strings.TrimSpace(o.paymentMethod), PaymentMethodCod)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Snapshot returns the exported projection of the aggregate's fields.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		OrderID:            o.id.String(),
		CustomerEmail:      o.customerEmail.String(),
		CustomerName:       o.customerName,
		Address:            o.address,
		Status:             o.status,
		PaymentMethod:      o.paymentMethod,
		PaymentStatus:      o.paymentStatus,
		OrderTotal:         o.orderTotal,
		DeliveryTime:       o.deliveryTime,
		DeliveredBy:        o.deliveredBy,
		DeliveryProof:      o.deliveryProof,
		CustomerFeedback:   o.customerFeedback,
		DeliveryNotes:      o.deliveryNotes,
		FailureReason:      o.failureReason,
		FailedDeliveryTime: o.failedDeliveryTime,
		AttemptedBy:        o.attemptedBy,
		ReturnReason:       o.returnReason,
		ReturnedTime:       o.returnedTime,
		ReturnedBy:         o.returnedBy,
		ReturnNotes:        o.returnNotes,
		PaymentRecord:      o.paymentRecord,
	}
}

// ApplyOutcome validates and applies one terminal delivery outcome.
//
// The order must be in a deliverable status; otherwise NotDeliverableError
// is returned and nothing is mutated. Validation rules are enforced before
// any mutation:
//   - a successful outcome requires customer verification
//   - a successful outcome on a COD order requires payment collection
//   - failed and returned outcomes require a failure reason of at least
//     MinFailureReasonLength characters
//
// On success the aggregate's status and delivery fields are updated and a
// DeliveryResult snapshot of the outcome is returned. Persistence is the
// caller's job: the write must be conditional on the status the order had
// before this call so that concurrent attempts cannot both commit.
func (o *Order) ApplyOutcome(outcome Outcome, performedBy string, now time.Time) (DeliveryResult, error) {
	if err := o.Validate(); err != nil {
		return DeliveryResult{}, err
	}

	if !o.status.IsDeliverable() {
		return DeliveryResult{}, &NotDeliverableError{OrderID: o.id.String(), Status: o.status}
	}

	switch v := outcome.(type) {
	case SuccessfulOutcome:
		return o.applySuccessful(v, performedBy, now)
	case FailedOutcome:
		return o.applyFailed(v, performedBy, now)
	case ReturnedOutcome:
		return o.applyReturned(v, performedBy, now)
	default:
		return DeliveryResult{}, errs.NewValueIsInvalidErrorWithCause(
			"delivery outcome",
			fmt.Errorf("unsupported outcome variant %T", outcome),
		)
	}
}

func (o *Order) applySuccessful(v SuccessfulOutcome, performedBy string, now time.Time) (DeliveryResult, error) {
	if !v.CustomerVerified {
		return DeliveryResult{}, &ValidationError{
			Rule:    RuleCustomerVerification,
			Message: "customer verification is required for successful delivery",
		}
	}

	if o.IsCashOnDelivery() && !v.PaymentWasCollected() {
		return DeliveryResult{}, &ValidationError{
			Rule:    RuleCodPaymentCollection,
			Message: "payment collection must be confirmed for cash-on-delivery orders",
		}
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return DeliveryResult{}, err
	}

	o.status = newStatus
	o.deliveryTime = &now
	o.deliveredBy = performedBy
	if v.Proof != nil {
		proof := *v.Proof
		o.deliveryProof = &proof
	}
	if v.CustomerFeedback != "" {
		o.customerFeedback = v.CustomerFeedback
	}

	result := DeliveryResult{
		OrderID:          o.id.String(),
		Status:           o.status,
		Message:          fmt.Sprintf("Order %s delivered successfully", o.id),
		Timestamp:        now,
		Proof:            o.deliveryProof,
		CustomerFeedback: o.customerFeedback,
	}

	if o.IsCashOnDelivery() && v.PaymentWasCollected() {
		record := NewPaymentRecord(o.orderTotal, performedBy, now)
		o.paymentRecord = &record
		o.paymentStatus = "completed"

		amount := record.Amount
		result.PaymentCollected = &amount
	}

	return result, nil
}

func (o *Order) applyFailed(v FailedOutcome, performedBy string, now time.Time) (DeliveryResult, error) {
	if err := validateFailureReason(v.Reason); err != nil {
		return DeliveryResult{}, err
	}

	newStatus, err := o.status.Fail()
	if err != nil {
		return DeliveryResult{}, err
	}

	o.status = newStatus
	o.failureReason = v.Reason
	o.failedDeliveryTime = &now
	if performedBy != "" {
		o.attemptedBy = performedBy
	}
	if v.Notes != "" {
		o.deliveryNotes = v.Notes
	}

	return DeliveryResult{
		OrderID:   o.id.String(),
		Status:    o.status,
		Message:   fmt.Sprintf("Delivery of order %s failed: %s", o.id, v.Reason),
		Timestamp: now,
	}, nil
}

func (o *Order) applyReturned(v ReturnedOutcome, performedBy string, now time.Time) (DeliveryResult, error) {
	if err := validateFailureReason(v.Reason); err != nil {
		return DeliveryResult{}, err
	}

	newStatus, err := o.status.Return()
	if err != nil {
		return DeliveryResult{}, err
	}

	o.status = newStatus
	o.returnReason = v.Reason
	o.returnedTime = &now
	if performedBy != "" {
		o.returnedBy = performedBy
	}
	if v.Notes != "" {
		o.returnNotes = v.Notes
	}

	return DeliveryResult{
		OrderID:   o.id.String(),
		Status:    o.status,
		Message:   fmt.Sprintf("Order %s returned: %s", o.id, v.Reason),
		Timestamp: now,
	}, nil
}

func validateFailureReason(reason string) error {
	if len(strings.TrimSpace(reason)) < MinFailureReasonLength {
		return &ValidationError{
			Rule:    RuleFailureReasonRequired,
			Message: fmt.Sprintf("a failure reason of at least %d characters is required for failed and returned deliveries", MinFailureReasonLength),
		}
	}
	return nil
}
