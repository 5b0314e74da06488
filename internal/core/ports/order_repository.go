package ports

import (
	"context"

	"deliveryops/internal/core/domain/model/kernel"
	"deliveryops/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates
// against the order store. The store is shared with upstream subsystems:
// this service never creates or deletes orders, it only reads them and
// applies delivery-field updates.
type OrderRepository interface {
	// Get retrieves an order by its identifier.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// UpdateDelivery persists the aggregate's delivery fields with a write
	// conditional on expectedStatus, the status the order had when it was
	// loaded. A concurrent delivery attempt that committed first makes the
	// condition fail; the loser receives errs.VersionConflictError and must
	// not assume any mutation took place.
	UpdateDelivery(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// GetAllInDeliverableStates retrieves orders currently awaiting a
	// delivery outcome. Used for operational backlog reporting.
	GetAllInDeliverableStates(ctx context.Context) ([]*order.Order, error)
}
