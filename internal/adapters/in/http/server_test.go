package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	deliveryhttp "deliveryops/internal/adapters/in/http"
	"deliveryops/internal/core/application/usecases/commands"
	"deliveryops/internal/core/application/usecases/queries"
	"deliveryops/internal/core/domain/model/kernel"
	"deliveryops/internal/core/domain/model/order"
	"deliveryops/internal/core/ports"
	"deliveryops/internal/generated/servers"
	"deliveryops/internal/pkg/errs"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateDelivery(
	ctx context.Context, aggregate *order.Order, expectedStatus order.Status,
) error {
	args := m.Called(ctx, aggregate, expectedStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllInDeliverableStates(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAnalyticsPublisher struct {
	mock.Mock
}

func (m *MockAnalyticsPublisher) Publish(ctx context.Context, event ports.AnalyticsEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fakeQueryClient struct {
	items []map[string]types.AttributeValue
	err   error
}

func (f *fakeQueryClient) Query(
	_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options),
) (*dynamodb.QueryOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.QueryOutput{Items: f.items}, nil
}

type fixture struct {
	repo      *MockOrderRepository
	analytics *MockAnalyticsPublisher
	query     *fakeQueryClient
	echo      *echo.Echo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:      new(MockOrderRepository),
		analytics: new(MockAnalyticsPublisher),
		query:     &fakeQueryClient{},
		echo:      echo.New(),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deliverHandler := commands.NewDeliverOrderCommandHandler(f.repo, f.analytics, logger)
	bulkHandler := commands.NewBulkDeliverCommandHandler(deliverHandler, 2)
	statusHandler := queries.NewGetDeliveryStatusQueryHandler(f.query, "orders", "order_id-index")

	server := deliveryhttp.NewServer(deliverHandler, bulkHandler, statusHandler)
	servers.RegisterHandlers(f.echo, server)
	return f
}

func (f *fixture) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func storedOrder(t *testing.T, id string, status order.Status, paymentMethod string) *order.Order {
	t.Helper()

	aggregate, err := order.RestoreOrder(order.Snapshot{
		OrderID:       id,
		CustomerEmail: "buyer@example.com",
		Status:        status,
		PaymentMethod: paymentMethod,
		OrderTotal:    150.00,
	})
	require.NoError(t, err)
	return aggregate
}

func orderIDMatcher(id string) any {
	return mock.MatchedBy(func(oid kernel.OrderID) bool {
		return oid.String() == id
	})
}

func TestDeliverOrder_SuccessfulCodDelivery(t *testing.T) {
	f := newFixture(t)

	aggregate := storedOrder(t, "ORD-1001", order.OutForDelivery, "cod")
	f.repo.On("Get", mock.Anything, orderIDMatcher("ORD-1001")).Return(aggregate, nil).Once()
	f.repo.On("UpdateDelivery", mock.Anything, aggregate, order.OutForDelivery).Return(nil).Once()
	f.analytics.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	rec := f.request(t, http.MethodPost, "/api/v1/tools/deliver_order", `{
		"order_id": "ORD-1001",
		"delivery_status": "successful",
		"performed_by": "driver-7",
		"customer_verified": true,
		"payment_collected": true,
		"signature_obtained": true
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var response servers.DeliverOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "delivered", response.Delivery.Status)
	require.NotNil(t, response.Delivery.PaymentCollected)
	assert.Equal(t, 150.00, *response.Delivery.PaymentCollected)
	require.NotNil(t, response.Delivery.Proof)
	assert.True(t, response.Delivery.Proof.SignatureObtained)

	f.repo.AssertExpectations(t)
	f.analytics.AssertExpectations(t)
}

func TestDeliverOrder_FailedWithoutReason_Returns422(t *testing.T) {
	f := newFixture(t)

	aggregate := storedOrder(t, "ORD-1002", order.Shipped, "card")
	f.repo.On("Get", mock.Anything, orderIDMatcher("ORD-1002")).Return(aggregate, nil).Once()

	rec := f.request(t, http.MethodPost, "/api/v1/tools/deliver_order", `{
		"order_id": "ORD-1002",
		"delivery_status": "failed"
	}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var response servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, int32(http.StatusUnprocessableEntity), response.Code)
	assert.Contains(t, response.Message, "failure reason")
	require.NotNil(t, response.ErrorDetails)
	assert.Contains(t, *response.ErrorDetails, "failure_reason")

	f.repo.AssertNotCalled(t, "UpdateDelivery", mock.Anything, mock.Anything, mock.Anything)
	f.analytics.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDeliverOrder_UnknownOutcomeLiteral_Returns400(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/tools/deliver_order", `{
		"order_id": "ORD-1003",
		"delivery_status": "teleported"
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	f.repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestDeliverOrder_UnknownOrder_Returns404(t *testing.T) {
	f := newFixture(t)

	f.repo.On("Get", mock.Anything, orderIDMatcher("ORD-9999")).
		Return(nil, errs.NewObjectNotFoundError("order", "ORD-9999")).Once()

	rec := f.request(t, http.MethodPost, "/api/v1/tools/deliver_order", `{
		"order_id": "ORD-9999",
		"delivery_status": "successful",
		"customer_verified": true
	}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeliverOrder_ConcurrentModification_Returns409(t *testing.T) {
	f := newFixture(t)

	aggregate := storedOrder(t, "ORD-1004", order.OutForDelivery, "card")
	f.repo.On("Get", mock.Anything, orderIDMatcher("ORD-1004")).Return(aggregate, nil).Once()
	f.repo.On("UpdateDelivery", mock.Anything, aggregate, order.OutForDelivery).
		Return(errs.NewVersionConflictError("order status", "ORD-1004", "out_for_delivery")).Once()

	rec := f.request(t, http.MethodPost, "/api/v1/tools/deliver_order", `{
		"order_id": "ORD-1004",
		"delivery_status": "successful",
		"customer_verified": true
	}`)

	require.Equal(t, http.StatusConflict, rec.Code)

	var response servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, int32(http.StatusConflict), response.Code)
	assert.NotNil(t, response.ErrorDetails)

	f.analytics.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestBulkDeliverOrders_MixedBatch_ReportsPerItemResults(t *testing.T) {
	f := newFixture(t)

	good := storedOrder(t, "ORD-2001", order.OutForDelivery, "card")
	f.repo.On("Get", mock.Anything, orderIDMatcher("ORD-2001")).Return(good, nil).Once()
	f.repo.On("UpdateDelivery", mock.Anything, good, order.OutForDelivery).Return(nil).Once()
	f.repo.On("Get", mock.Anything, orderIDMatcher("ORD-2003")).
		Return(storedOrder(t, "ORD-2003", order.Shipped, "card"), nil).Once()
	f.analytics.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	rec := f.request(t, http.MethodPost, "/api/v1/tools/bulk_deliver_orders", `{
		"performed_by": "driver-4",
		"deliveries": [
			{"order_id": "ORD-2001", "delivery_status": "successful", "customer_verified": true},
			{"order_id": "ORD-2002", "delivery_status": "teleported"},
			{"order_id": "ORD-2003", "delivery_status": "failed"}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var response servers.BulkDeliverResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, 3, response.Total)
	assert.Equal(t, 1, response.Successful)
	assert.Equal(t, 2, response.Failed)
	require.Len(t, response.Results, 3)
	assert.True(t, response.Results[0].Success)
	assert.False(t, response.Results[1].Success)
	require.NotNil(t, response.Results[1].ErrorDetails)
	assert.Contains(t, *response.Results[1].ErrorDetails, "teleported")
	assert.False(t, response.Results[2].Success)
}

func TestBulkDeliverOrders_EmptyBatch_Returns400(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/tools/bulk_deliver_orders", `{"deliveries": []}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDeliveryStatus_PendingOrder_HasNoDeliveryDetails(t *testing.T) {
	f := newFixture(t)

	item, err := attributevalue.MarshalMap(map[string]any{
		"order_id":       "ORD-3001",
		"customer_email": "dana@example.com",
		"customer_name":  "Dana",
		"status":         "shipped",
		"payment_method": "card",
		"order_total":    42.50,
	})
	require.NoError(t, err)
	f.query.items = []map[string]types.AttributeValue{item}

	rec := f.request(t, http.MethodGet, "/api/v1/tools/delivery_status/ORD-3001", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var response servers.DeliveryStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "shipped", response.Status)
	assert.Equal(t, "ORD-3001", response.Order.OrderId)
	assert.Nil(t, response.DeliveryDetails)
}

func TestGetDeliveryStatus_DeliveredOrder_IncludesDetails(t *testing.T) {
	f := newFixture(t)

	deliveredAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	item, err := attributevalue.MarshalMap(map[string]any{
		"order_id":       "ORD-3002",
		"customer_email": "omar@example.com",
		"status":         "delivered",
		"payment_method": "cod",
		"order_total":    150.00,
		"delivered_by":   "driver-7",
		"delivery_time":  deliveredAt,
		"payment_record": map[string]any{
			"id":     "PAY-abc",
			"amount": 150.00,
			"method": "cod",
			"status": "completed",
		},
	})
	require.NoError(t, err)
	f.query.items = []map[string]types.AttributeValue{item}

	rec := f.request(t, http.MethodGet, "/api/v1/tools/delivery_status/ORD-3002", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var response servers.DeliveryStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.DeliveryDetails)
	require.NotNil(t, response.DeliveryDetails.DeliveredBy)
	assert.Equal(t, "driver-7", *response.DeliveryDetails.DeliveredBy)
	require.NotNil(t, response.DeliveryDetails.PaymentRecord)
	assert.Equal(t, 150.00, response.DeliveryDetails.PaymentRecord.Amount)
}

func TestGetDeliveryStatus_UnknownOrder_Returns404(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodGet, "/api/v1/tools/delivery_status/ORD-9999", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var response servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Contains(t, response.Message, "ORD-9999")
}
