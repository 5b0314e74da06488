package order

import (
	"fmt"
	"strings"
	"time"

	"deliveryops/internal/pkg/errs"
)

// Wire literals for the three recognized delivery outcomes.
const (
	OutcomeSuccessful = "successful"
	OutcomeFailed     = "failed"
	OutcomeReturned   = "returned"
)

// MinFailureReasonLength is the minimum length of a failure or return
// reason. Couriers must record something more useful than "n/a".
const MinFailureReasonLength = 5

// Outcome is the tagged union of the three delivery outcomes. Validation
// and field updates dispatch on the concrete variant, not on a status
// string. The interface is sealed: only SuccessfulOutcome, FailedOutcome
// and ReturnedOutcome implement it.
type Outcome interface {
	// TargetStatus returns the terminal status this outcome leads to.
	TargetStatus() Status

	// Literal returns the wire-format outcome literal.
	Literal() string

	isOutcome()
}

// DeliveryProof captures the evidence collected at the doorstep.
type DeliveryProof struct {
	SignatureObtained bool
	PhotoTaken        bool
	Timestamp         time.Time
}

// SuccessfulOutcome is the outcome of a completed delivery.
type SuccessfulOutcome struct {
	// CustomerVerified must be true; unverified successful deliveries are rejected.
	CustomerVerified bool

	// PaymentCollected reports whether payment was taken at the door.
	// Nil means the courier did not record it. Required true for COD orders.
	PaymentCollected *bool

	// Proof is the optional delivery evidence snapshot.
	Proof *DeliveryProof

	// CustomerFeedback is optional free-text feedback taken at delivery.
	CustomerFeedback string
}

func (SuccessfulOutcome) TargetStatus() Status { return Delivered }
func (SuccessfulOutcome) Literal() string      { return OutcomeSuccessful }
func (SuccessfulOutcome) isOutcome()           {}

// PaymentWasCollected reports whether the courier confirmed payment collection.
func (o SuccessfulOutcome) PaymentWasCollected() bool {
	return o.PaymentCollected != nil && *o.PaymentCollected
}

// FailedOutcome is the outcome of a delivery attempt that could not be completed.
type FailedOutcome struct {
	// Reason is required and explains why the delivery failed.
	Reason string

	// Notes are optional courier notes on the attempt.
	Notes string
}

func (FailedOutcome) TargetStatus() Status { return FailedDelivery }
func (FailedOutcome) Literal() string      { return OutcomeFailed }
func (FailedOutcome) isOutcome()           {}

// ReturnedOutcome is the outcome of a delivery refused or sent back by the customer.
type ReturnedOutcome struct {
	// Reason is required and explains why the order came back.
	Reason string

	// Notes are optional courier notes on the return.
	Notes string
}

func (ReturnedOutcome) TargetStatus() Status { return Returned }
func (ReturnedOutcome) Literal() string      { return OutcomeReturned }
func (ReturnedOutcome) isOutcome()           {}

// OutcomeParams carries the flat request fields from which an Outcome
// variant is built. It mirrors the tool-call boundary one to one.
type OutcomeParams struct {
	CustomerVerified  bool
	PaymentCollected  *bool
	SignatureObtained bool
	PhotoTaken        bool
	FailureReason     string
	CustomerFeedback  string
	DeliveryNotes     string
}

// ParseOutcome maps a wire-format delivery status literal and its
// accompanying fields onto the matching Outcome variant. Unrecognized
// literals fail with an invalid-value error; the caller never reaches the
// order store in that case.
func ParseOutcome(literal string, params OutcomeParams) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(literal)) {
	case OutcomeSuccessful:
		var proof *DeliveryProof
		if params.SignatureObtained || params.PhotoTaken {
			proof = &DeliveryProof{
				SignatureObtained: params.SignatureObtained,
				PhotoTaken:        params.PhotoTaken,
				Timestamp:         time.Now().UTC(),
			}
		}
		return SuccessfulOutcome{
			CustomerVerified: params.CustomerVerified,
			PaymentCollected: params.PaymentCollected,
			Proof:            proof,
			CustomerFeedback: params.CustomerFeedback,
		}, nil

	case OutcomeFailed:
		return FailedOutcome{
			Reason: strings.TrimSpace(params.FailureReason),
			Notes:  params.DeliveryNotes,
		}, nil

	case OutcomeReturned:
		return ReturnedOutcome{
			Reason: strings.TrimSpace(params.FailureReason),
			Notes:  params.DeliveryNotes,
		}, nil

	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"delivery_status",
			fmt.Errorf("%q is not one of successful, failed, returned", literal),
		)
	}
}
