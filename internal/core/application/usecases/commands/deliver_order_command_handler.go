package commands

import (
	"context"
	"log/slog"
	"time"

	"deliveryops/internal/core/domain/model/order"
	"deliveryops/internal/core/ports"
)

// DeliverOrderResult carries the outcome of a processed delivery command:
// the immutable delivery record plus a snapshot of the updated order.
type DeliverOrderResult struct {
	Delivery order.DeliveryResult
	Order    order.Snapshot
}

// DeliverOrderCommandHandler executes the delivery workflow for a single
// order: fetch, validate, apply the outcome, persist conditionally, then
// emit one analytics event.
//
// The fetch and the write form one logical transaction: the write is
// conditional on the status observed at fetch time, so of two concurrent
// attempts on the same order exactly one commits and the other fails with
// a version conflict.
type DeliverOrderCommandHandler struct {
	orders    ports.OrderRepository
	analytics ports.AnalyticsPublisher
	logger    *slog.Logger
}

// NewDeliverOrderCommandHandler creates a handler for delivery commands.
func NewDeliverOrderCommandHandler(
	orders ports.OrderRepository,
	analytics ports.AnalyticsPublisher,
	logger *slog.Logger,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		orders:    orders,
		analytics: analytics,
		logger:    logger.With("component", "deliver_order_handler"),
	}
}

// Handle processes one delivery command. Validation failures, missing
// orders, lost conditional writes and store errors are all returned as
// errors without an analytics event; the event is emitted only after the
// order store committed, and a failed emit is logged and swallowed.
func (h *DeliverOrderCommandHandler) Handle(
	ctx context.Context,
	cmd DeliverOrderCommand,
) (DeliverOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeliverOrderResult{}, err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return DeliverOrderResult{}, err
	}

	expectedStatus := aggregate.Status()

	result, err := aggregate.ApplyOutcome(cmd.Outcome(), cmd.PerformedBy(), time.Now().UTC())
	if err != nil {
		return DeliverOrderResult{}, err
	}

	if err = h.orders.UpdateDelivery(ctx, aggregate, expectedStatus); err != nil {
		return DeliverOrderResult{}, err
	}

	event := buildAnalyticsEvent(aggregate, cmd, result)
	if publishErr := h.analytics.Publish(ctx, event); publishErr != nil {
		// The delivery already committed; analytics is a non-critical
		// side effect and must not fail the operation.
		h.logger.WarnContext(ctx, "analytics event dropped",
			"order_id", cmd.OrderID().String(),
			"delivery_status", result.Status.String(),
			"error", publishErr,
		)
	}

	return DeliverOrderResult{
		Delivery: result,
		Order:    aggregate.Snapshot(),
	}, nil
}

func buildAnalyticsEvent(
	aggregate *order.Order,
	cmd DeliverOrderCommand,
	result order.DeliveryResult,
) ports.AnalyticsEvent {
	snapshot := aggregate.Snapshot()

	event := ports.AnalyticsEvent{
		OrderID:        snapshot.OrderID,
		DeliveryStatus: result.Status.String(),
		DeliveredBy:    cmd.PerformedBy(),
		OrderValue:     snapshot.OrderTotal,
		PaymentMethod:  snapshot.PaymentMethod,
		HasProof:       snapshot.DeliveryProof != nil,
		HasFeedback:    snapshot.CustomerFeedback != "",
		OccurredAt:     result.Timestamp,
	}

	switch v := cmd.Outcome().(type) {
	case order.SuccessfulOutcome:
		event.CustomerVerified = v.CustomerVerified
	case order.FailedOutcome:
		event.FailureReason = snapshot.FailureReason
	case order.ReturnedOutcome:
		event.FailureReason = snapshot.ReturnReason
	}

	return event
}
