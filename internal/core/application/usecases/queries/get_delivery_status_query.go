// Package queries contains the read-side operations of the delivery
// workflow. Query handlers read the order store directly and project rows
// into response structs; they never touch the domain aggregates.
package queries

import (
	"errors"

	"deliveryops/internal/core/domain/model/kernel"
	"deliveryops/internal/pkg/guard"
)

var ErrGetDeliveryStatusQueryIsNotConstructed = errors.New(
	"GetDeliveryStatusQuery must be created via NewGetDeliveryStatusQuery constructor",
)

// GetDeliveryStatusQuery requests the current delivery state of one order.
type GetDeliveryStatusQuery struct {
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewGetDeliveryStatusQuery creates a delivery status query for the given order.
func NewGetDeliveryStatusQuery(orderID string) (GetDeliveryStatusQuery, error) {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return GetDeliveryStatusQuery{}, err
	}

	return GetDeliveryStatusQuery{
		orderID: id,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatusQueryIsNotConstructed)
}

// OrderID returns the identifier of the order being queried.
func (q GetDeliveryStatusQuery) OrderID() kernel.OrderID {
	return q.orderID
}
