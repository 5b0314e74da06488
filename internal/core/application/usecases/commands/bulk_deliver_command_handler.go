package commands

import (
	"context"

	"golang.org/x/sync/errgroup"

	"deliveryops/internal/core/domain/model/kernel"
	"deliveryops/internal/core/domain/model/order"
)

// BulkItemResult is the per-item outcome inside a bulk batch result.
type BulkItemResult struct {
	OrderID      string
	Success      bool
	Message      string
	ErrorDetails string
	Delivery     *order.DeliveryResult
}

// BulkDeliverResult aggregates a processed bulk batch. Results holds one
// entry per input item, preserving input order regardless of how items
// were scheduled.
type BulkDeliverResult struct {
	Total      int
	Successful int
	Failed     int
	Success    bool
	Results    []BulkItemResult
}

// BulkDeliverCommandHandler fans the single-order delivery workflow out
// over a batch. Items run concurrently up to a configured limit; each
// item commits or fails on its own, there is no batch-level transaction.
type BulkDeliverCommandHandler struct {
	deliverHandler DeliverOrderCommandHandler
	concurrency    int
}

// NewBulkDeliverCommandHandler creates a handler fanning out to the given
// single-order handler, with at most concurrency items in flight. A limit
// below one behaves as strictly sequential processing.
func NewBulkDeliverCommandHandler(
	deliverHandler DeliverOrderCommandHandler,
	concurrency int,
) BulkDeliverCommandHandler {
	if concurrency < 1 {
		concurrency = 1
	}
	return BulkDeliverCommandHandler{
		deliverHandler: deliverHandler,
		concurrency:    concurrency,
	}
}

// Handle processes the batch and aggregates per-item outcomes. It never
// aborts early: every item surfaces its own error independently in the
// result list, and the overall success flag is true only when every item
// succeeded.
func (h *BulkDeliverCommandHandler) Handle(
	ctx context.Context,
	cmd BulkDeliverCommand,
) (BulkDeliverResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkDeliverResult{}, err
	}

	instructions := cmd.Instructions()
	results := make([]BulkItemResult, len(instructions))

	g := &errgroup.Group{}
	g.SetLimit(h.concurrency)

	for i, instruction := range instructions {
		g.Go(func() error {
			results[i] = h.deliverOne(ctx, instruction, cmd.PerformedBy())
			return nil
		})
	}

	// Item failures land in the result list, never in the group error.
	_ = g.Wait()

	aggregate := BulkDeliverResult{
		Total:   len(results),
		Results: results,
	}
	for _, item := range results {
		if item.Success {
			aggregate.Successful++
		} else {
			aggregate.Failed++
		}
	}
	aggregate.Success = aggregate.Failed == 0

	return aggregate, nil
}

func (h *BulkDeliverCommandHandler) deliverOne(
	ctx context.Context,
	instruction BulkDeliveryInstruction,
	performedBy string,
) BulkItemResult {
	failure := func(err error) BulkItemResult {
		return BulkItemResult{
			OrderID:      instruction.OrderID,
			Success:      false,
			Message:      "delivery not applied",
			ErrorDetails: err.Error(),
		}
	}

	orderID, err := kernel.NewOrderID(instruction.OrderID)
	if err != nil {
		return failure(err)
	}

	outcome, err := order.ParseOutcome(instruction.DeliveryStatus, instruction.Params)
	if err != nil {
		return failure(err)
	}

	deliverCmd, err := NewDeliverOrderCommand(orderID, outcome, performedBy)
	if err != nil {
		return failure(err)
	}

	result, err := h.deliverHandler.Handle(ctx, deliverCmd)
	if err != nil {
		return failure(err)
	}

	delivery := result.Delivery
	return BulkItemResult{
		OrderID:  instruction.OrderID,
		Success:  true,
		Message:  delivery.Message,
		Delivery: &delivery,
	}
}
