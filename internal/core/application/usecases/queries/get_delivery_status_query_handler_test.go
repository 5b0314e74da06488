package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliveryops/internal/core/application/usecases/queries"
	"deliveryops/internal/core/domain/model/order"
	"deliveryops/internal/pkg/errs"
)

type fakeQueryClient struct {
	queryFn func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

func (f *fakeQueryClient) Query(
	ctx context.Context,
	params *dynamodb.QueryInput,
	optFns ...func(*dynamodb.Options),
) (*dynamodb.QueryOutput, error) {
	return f.queryFn(ctx, params, optFns...)
}

func itemFromMap(t *testing.T, fields map[string]any) map[string]types.AttributeValue {
	t.Helper()

	item, err := attributevalue.MarshalMap(fields)
	require.NoError(t, err)
	return item
}

func statusQuery(t *testing.T, orderID string) queries.GetDeliveryStatusQuery {
	t.Helper()

	query, err := queries.NewGetDeliveryStatusQuery(orderID)
	require.NoError(t, err)
	return query
}

func TestGetDeliveryStatusQueryHandler_PendingOrderHasNoDeliveryDetails(t *testing.T) {
	client := &fakeQueryClient{
		queryFn: func(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			assert.Equal(t, "orders", *params.TableName)
			assert.Equal(t, "order_id-index", *params.IndexName)
			assert.Equal(t, "order_id = :id", *params.KeyConditionExpression)

			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					itemFromMap(t, map[string]any{
						"order_id":       "ORD-3001",
						"customer_email": "dana@example.com",
						"customer_name":  "Dana",
						"address":        "12 Harbor Rd",
						"status":         "shipped",
						"payment_method": "card",
						"order_total":    42.50,
					}),
				},
			}, nil
		},
	}
	handler := queries.NewGetDeliveryStatusQueryHandler(client, "orders", "order_id-index")

	response, err := handler.Handle(t.Context(), statusQuery(t, "ORD-3001"))

	require.NoError(t, err)
	assert.Equal(t, "ORD-3001", response.Order.OrderID)
	assert.Equal(t, "dana@example.com", response.Order.CustomerEmail)
	assert.Equal(t, order.Shipped, response.Status)
	assert.Nil(t, response.DeliveryDetails)
}

func TestGetDeliveryStatusQueryHandler_DeliveredOrderIncludesProofAndPayment(t *testing.T) {
	deliveredAt := time.Date(2026, 3, 14, 16, 20, 0, 0, time.UTC)
	client := &fakeQueryClient{
		queryFn: func(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					itemFromMap(t, map[string]any{
						"order_id":       "ORD-3002",
						"customer_email": "omar@example.com",
						"status":         "delivered",
						"payment_method": "cod",
						"order_total":    150.00,
						"delivered_by":   "driver-7",
						"delivery_time":  deliveredAt,
						"delivery_proof": map[string]any{
							"signature_obtained": true,
							"photo_taken":        true,
							"timestamp":          deliveredAt,
						},
						"customer_feedback": "left at the door as asked",
						"payment_record": map[string]any{
							"id":           "PAY-abc",
							"amount":       150.00,
							"method":       "cod",
							"status":       "completed",
							"collected_by": "driver-7",
							"collected_at": deliveredAt,
						},
					}),
				},
			}, nil
		},
	}
	handler := queries.NewGetDeliveryStatusQueryHandler(client, "orders", "order_id-index")

	response, err := handler.Handle(t.Context(), statusQuery(t, "ORD-3002"))

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, response.Status)
	require.NotNil(t, response.DeliveryDetails)
	assert.Equal(t, "driver-7", response.DeliveryDetails.DeliveredBy)
	assert.True(t, response.DeliveryDetails.SignatureObtained)
	assert.True(t, response.DeliveryDetails.PhotoTaken)
	assert.Equal(t, "left at the door as asked", response.DeliveryDetails.CustomerFeedback)
	require.NotNil(t, response.DeliveryDetails.PaymentRecord)
	assert.Equal(t, 150.00, response.DeliveryDetails.PaymentRecord.Amount)
	assert.Equal(t, "completed", response.DeliveryDetails.PaymentRecord.Status)
}

func TestGetDeliveryStatusQueryHandler_FailedOrderIncludesFailureFields(t *testing.T) {
	failedAt := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	client := &fakeQueryClient{
		queryFn: func(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					itemFromMap(t, map[string]any{
						"order_id":             "ORD-3003",
						"customer_email":       "lea@example.com",
						"status":               "failed_delivery",
						"payment_method":       "card",
						"order_total":          19.99,
						"failure_reason":       "customer not home after two attempts",
						"failed_delivery_time": failedAt,
						"attempted_by":         "driver-2",
					}),
				},
			}, nil
		},
	}
	handler := queries.NewGetDeliveryStatusQueryHandler(client, "orders", "order_id-index")

	response, err := handler.Handle(t.Context(), statusQuery(t, "ORD-3003"))

	require.NoError(t, err)
	assert.Equal(t, order.FailedDelivery, response.Status)
	require.NotNil(t, response.DeliveryDetails)
	assert.Equal(t, "customer not home after two attempts", response.DeliveryDetails.FailureReason)
	assert.Equal(t, "driver-2", response.DeliveryDetails.AttemptedBy)
	require.NotNil(t, response.DeliveryDetails.FailedDeliveryTime)
	assert.True(t, failedAt.Equal(*response.DeliveryDetails.FailedDeliveryTime))
	assert.Nil(t, response.DeliveryDetails.PaymentRecord)
}

func TestGetDeliveryStatusQueryHandler_UnknownOrderReturnsNotFound(t *testing.T) {
	client := &fakeQueryClient{
		queryFn: func(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{}, nil
		},
	}
	handler := queries.NewGetDeliveryStatusQueryHandler(client, "orders", "order_id-index")

	_, err := handler.Handle(t.Context(), statusQuery(t, "ORD-9999"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetDeliveryStatusQueryHandler_QueryFailurePropagates(t *testing.T) {
	client := &fakeQueryClient{
		queryFn: func(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			return nil, errors.New("throughput exceeded")
		},
	}
	handler := queries.NewGetDeliveryStatusQueryHandler(client, "orders", "order_id-index")

	_, err := handler.Handle(t.Context(), statusQuery(t, "ORD-3001"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "throughput exceeded")
}

func TestGetDeliveryStatusQueryHandler_RejectsUnconstructedQuery(t *testing.T) {
	client := &fakeQueryClient{
		queryFn: func(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			t.Fatal("store must not be queried for an invalid query object")
			return nil, nil
		},
	}
	handler := queries.NewGetDeliveryStatusQueryHandler(client, "orders", "order_id-index")

	_, err := handler.Handle(t.Context(), queries.GetDeliveryStatusQuery{})

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDeliveryStatusQueryIsNotConstructed)
}
