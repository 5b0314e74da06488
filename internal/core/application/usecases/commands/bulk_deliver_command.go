package commands

import (
	"errors"

	"deliveryops/internal/core/domain/model/order"
	"deliveryops/internal/pkg/guard"
)

var (
	ErrBulkDeliverCommandIsNotConstructed = errors.New(
		"BulkDeliverCommand must be created via NewBulkDeliverCommand constructor",
	)
	ErrEmptyBatch = errors.New("bulk delivery batch must contain at least one request")
)

// BulkDeliveryInstruction is one raw per-item request inside a bulk
// batch. It stays unparsed until the bulk handler processes it, so that a
// malformed item fails on its own instead of rejecting the whole batch.
type BulkDeliveryInstruction struct {
	OrderID        string
	DeliveryStatus string
	Params         order.OutcomeParams
}

// BulkDeliverCommand requests delivery outcomes for a batch of orders.
// Items are independent: a failure for one order never blocks or rolls
// back the others.
type BulkDeliverCommand struct { //nolint:recvcheck //using for validation
	instructions []BulkDeliveryInstruction
	performedBy  string

	guard guard.ConstructorGuard
}

// NewBulkDeliverCommand creates a bulk delivery command.
// The batch must contain at least one instruction; an empty performedBy
// falls back to DefaultPerformedBy.
func NewBulkDeliverCommand(
	instructions []BulkDeliveryInstruction,
	performedBy string,
) (BulkDeliverCommand, error) {
	if len(instructions) == 0 {
		return BulkDeliverCommand{}, ErrEmptyBatch
	}

	if performedBy == "" {
		performedBy = DefaultPerformedBy
	}

	return BulkDeliverCommand{
		instructions: instructions,
		performedBy:  performedBy,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkDeliverCommand) Validate() error {
	return c.guard.Validate(ErrBulkDeliverCommandIsNotConstructed)
}

// Instructions returns the per-item delivery requests in input order.
func (c BulkDeliverCommand) Instructions() []BulkDeliveryInstruction {
	return c.instructions
}

// PerformedBy returns who performed the deliveries in this batch.
func (c BulkDeliverCommand) PerformedBy() string {
	return c.performedBy
}
