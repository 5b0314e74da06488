package commands_test

import (
	"testing"

	"deliveryops/internal/core/application/usecases/commands"
	"deliveryops/internal/core/domain/model/kernel"
	"deliveryops/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func orderIDMatcher(id string) any {
	return mock.MatchedBy(func(orderID kernel.OrderID) bool {
		return orderID.String() == id
	})
}

func TestBulkDeliverCommandHandler_Handle_MixedBatch(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	analytics := new(MockAnalyticsPublisher)

	// B1 delivers, B3 fails validation in the domain (no reason), B2 never
	// reaches the repository because its literal is unrecognized.
	b1 := storedOrder(t, "B1", order.OutForDelivery, "card", 20.00)
	b3 := storedOrder(t, "B3", order.Shipped, "card", 30.00)

	repo.On("Get", ctx, orderIDMatcher("B1")).Return(b1, nil).Once()
	repo.On("UpdateDelivery", ctx, b1, order.OutForDelivery).Return(nil).Once()
	repo.On("Get", ctx, orderIDMatcher("B3")).Return(b3, nil).Once()
	analytics.On("Publish", ctx, mock.AnythingOfType("ports.AnalyticsEvent")).Return(nil).Once()

	deliverHandler := commands.NewDeliverOrderCommandHandler(repo, analytics, discardLogger())
	h := commands.NewBulkDeliverCommandHandler(deliverHandler, 1)

	cmd, err := commands.NewBulkDeliverCommand([]commands.BulkDeliveryInstruction{
		{
			OrderID:        "B1",
			DeliveryStatus: "successful",
			Params:         order.OutcomeParams{CustomerVerified: true},
		},
		{
			OrderID:        "B2",
			DeliveryStatus: "teleported",
		},
		{
			OrderID:        "B3",
			DeliveryStatus: "failed",
		},
	}, "courier-7")
	require.NoError(t, err)

	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 2, result.Failed)
	assert.False(t, result.Success)

	require.Len(t, result.Results, 3)
	assert.Equal(t, "B1", result.Results[0].OrderID)
	assert.True(t, result.Results[0].Success)
	require.NotNil(t, result.Results[0].Delivery)
	assert.Equal(t, order.Delivered, result.Results[0].Delivery.Status)

	assert.Equal(t, "B2", result.Results[1].OrderID)
	assert.False(t, result.Results[1].Success)
	assert.Contains(t, result.Results[1].ErrorDetails, "teleported")

	assert.Equal(t, "B3", result.Results[2].OrderID)
	assert.False(t, result.Results[2].Success)
	assert.Contains(t, result.Results[2].ErrorDetails, "failure reason")

	repo.AssertExpectations(t)
	analytics.AssertExpectations(t)
}

func TestBulkDeliverCommandHandler_Handle_AllSucceed(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	analytics := new(MockAnalyticsPublisher)
	analytics.On("Publish", ctx, mock.AnythingOfType("ports.AnalyticsEvent")).Return(nil)

	ids := []string{"C1", "C2", "C3", "C4"}
	instructions := make([]commands.BulkDeliveryInstruction, 0, len(ids))
	for _, id := range ids {
		aggregate := storedOrder(t, id, order.OutForDelivery, "card", 15.00)
		repo.On("Get", ctx, orderIDMatcher(id)).Return(aggregate, nil).Once()
		repo.On("UpdateDelivery", ctx, aggregate, order.OutForDelivery).Return(nil).Once()

		instructions = append(instructions, commands.BulkDeliveryInstruction{
			OrderID:        id,
			DeliveryStatus: "successful",
			Params:         order.OutcomeParams{CustomerVerified: true},
		})
	}

	deliverHandler := commands.NewDeliverOrderCommandHandler(repo, analytics, discardLogger())
	h := commands.NewBulkDeliverCommandHandler(deliverHandler, 2)

	cmd, err := commands.NewBulkDeliverCommand(instructions, "courier-7")
	require.NoError(t, err)

	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 4, result.Successful)
	assert.Zero(t, result.Failed)
	for i, id := range ids {
		assert.Equal(t, id, result.Results[i].OrderID, "input order must be preserved")
	}

	repo.AssertExpectations(t)
}

func TestBulkDeliverCommandHandler_Handle_UnconstructedCommand(t *testing.T) {
	deliverHandler := commands.NewDeliverOrderCommandHandler(
		new(MockOrderRepository), new(MockAnalyticsPublisher), discardLogger(),
	)
	h := commands.NewBulkDeliverCommandHandler(deliverHandler, 2)

	var cmd commands.BulkDeliverCommand
	_, err := h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, commands.ErrBulkDeliverCommandIsNotConstructed)
}
