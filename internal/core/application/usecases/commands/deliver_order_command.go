// Package commands contains the write-side operations of the delivery
// workflow. Commands are constructor-validated value objects; handlers
// load the aggregate, apply domain rules and persist through a
// conditional write so concurrent attempts on the same order cannot both
// commit.
package commands

import (
	"errors"

	"deliveryops/internal/core/domain/model/kernel"
	"deliveryops/internal/core/domain/model/order"
	"deliveryops/internal/pkg/guard"
)

var (
	ErrDeliverOrderCommandIsNotConstructed = errors.New(
		"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
	)
	ErrOutcomeIsRequired = errors.New("delivery outcome is required")
)

// DefaultPerformedBy is stamped on delivery records when the caller does
// not identify the courier or operator performing the delivery.
const DefaultPerformedBy = "system"

// DeliverOrderCommand requests that one terminal delivery outcome be
// applied to one order.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.OrderID
	outcome     order.Outcome
	performedBy string

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a command to apply a delivery outcome.
// The order id must be valid and the outcome must be one of the
// recognized variants; an empty performedBy falls back to
// DefaultPerformedBy.
func NewDeliverOrderCommand(
	orderID kernel.OrderID,
	outcome order.Outcome,
	performedBy string,
) (DeliverOrderCommand, error) {
	cmd := DeliverOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOutcome(outcome),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	cmd.performedBy = performedBy
	if cmd.performedBy == "" {
		cmd.performedBy = DefaultPerformedBy
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to deliver.
func (c DeliverOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Outcome returns the delivery outcome variant to apply.
func (c DeliverOrderCommand) Outcome() order.Outcome {
	return c.outcome
}

// PerformedBy returns who performed the delivery.
func (c DeliverOrderCommand) PerformedBy() string {
	return c.performedBy
}

func (c *DeliverOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeliverOrderCommand) setOutcome(outcome order.Outcome) error {
	if outcome == nil {
		return ErrOutcomeIsRequired
	}

	c.outcome = outcome
	return nil
}
