// Package http exposes the delivery workflow as the service's tool-call
// endpoints. Every response carries a success flag and a human-readable
// message so callers can relay results verbatim.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"deliveryops/internal/core/application/usecases/commands"
	"deliveryops/internal/core/application/usecases/queries"
	"deliveryops/internal/core/domain/model/kernel"
	"deliveryops/internal/core/domain/model/order"
	"deliveryops/internal/generated/servers"
	"deliveryops/internal/metrics"
	"deliveryops/internal/pkg/errs"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	deliverOrderHandler commands.DeliverOrderCommandHandler
	bulkDeliverHandler  commands.BulkDeliverCommandHandler

	// Query handlers
	getDeliveryStatusHandler queries.GetDeliveryStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	bulkDeliverHandler commands.BulkDeliverCommandHandler,
	getDeliveryStatusHandler queries.GetDeliveryStatusQueryHandler,
) *Server {
	return &Server{
		deliverOrderHandler:      deliverOrderHandler,
		bulkDeliverHandler:       bulkDeliverHandler,
		getDeliveryStatusHandler: getDeliveryStatusHandler,
	}
}

// DeliverOrder handles POST /api/v1/tools/deliver_order - applies one
// delivery outcome to one order.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	var request servers.DeliverOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID, err := kernel.NewOrderID(request.OrderId)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	outcome, err := order.ParseOutcome(string(request.DeliveryStatus), outcomeParams(
		request.CustomerVerified,
		request.PaymentCollected,
		request.SignatureObtained,
		request.PhotoTaken,
		request.FailureReason,
		request.CustomerFeedback,
		request.DeliveryNotes,
	))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid delivery status: "+err.Error())
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, outcome, deref(request.PerformedBy))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid delivery request: "+err.Error())
	}

	result, err := s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return deliveryErrorResponse(ctx, err)
	}

	metrics.DeliveriesTotal.WithLabelValues(outcome.Literal()).Inc()

	return ctx.JSON(http.StatusOK, servers.DeliverOrderResponse{
		Success:  true,
		Message:  result.Delivery.Message,
		Delivery: toDeliveryResult(result.Delivery),
	})
}

// BulkDeliverOrders handles POST /api/v1/tools/bulk_deliver_orders -
// applies delivery outcomes to a batch of orders. The batch always answers
// 200: per-order failures are reported inside the result list.
func (s *Server) BulkDeliverOrders(ctx echo.Context) error {
	var request servers.BulkDeliverRequest
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	instructions := make([]commands.BulkDeliveryInstruction, len(request.Deliveries))
	for i, item := range request.Deliveries {
		instructions[i] = commands.BulkDeliveryInstruction{
			OrderID:        item.OrderId,
			DeliveryStatus: item.DeliveryStatus,
			Params: outcomeParams(
				item.CustomerVerified,
				item.PaymentCollected,
				item.SignatureObtained,
				item.PhotoTaken,
				item.FailureReason,
				item.CustomerFeedback,
				item.DeliveryNotes,
			),
		}
	}

	cmd, err := commands.NewBulkDeliverCommand(instructions, deref(request.PerformedBy))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid bulk request: "+err.Error())
	}

	result, err := s.bulkDeliverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to process bulk delivery")
	}

	metrics.BulkDeliveriesTotal.Inc()

	items := make([]servers.BulkItemResult, len(result.Results))
	for i, item := range result.Results {
		items[i] = servers.BulkItemResult{
			OrderId: item.OrderID,
			Success: item.Success,
			Message: item.Message,
		}
		if item.ErrorDetails != "" {
			details := item.ErrorDetails
			items[i].ErrorDetails = &details
		}
		if item.Delivery != nil {
			delivery := toDeliveryResult(*item.Delivery)
			items[i].Delivery = &delivery
		}
	}

	return ctx.JSON(http.StatusOK, servers.BulkDeliverResponse{
		Success:    result.Success,
		Message:    bulkMessage(result),
		Total:      result.Total,
		Successful: result.Successful,
		Failed:     result.Failed,
		Results:    items,
	})
}

// GetDeliveryStatus handles GET /api/v1/tools/delivery_status/{order_id} -
// returns the order's delivery state projection.
func (s *Server) GetDeliveryStatus(ctx echo.Context, orderId string) error {
	query, err := queries.NewGetDeliveryStatusQuery(orderId)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	response, err := s.getDeliveryStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "Order not found: "+orderId)
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to read order status")
	}

	return ctx.JSON(http.StatusOK, toStatusResponse(response))
}

// deliveryErrorResponse maps workflow errors onto the endpoint's status
// codes. Validation rejections answer 422, not-deliverable orders included,
// so callers can tell a rule violation from a malformed request.
func deliveryErrorResponse(ctx echo.Context, err error) error {
	var validationErr *order.ValidationError
	switch {
	case errors.As(err, &validationErr):
		metrics.DeliveryValidationFailuresTotal.WithLabelValues(validationErr.Rule).Inc()
		return errorResponseWithDetails(ctx, http.StatusUnprocessableEntity,
			validationErr.Message, validationErr.Rule)
	case errors.Is(err, order.ErrOrderNotDeliverable):
		return errorResponse(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrVersionConflict):
		metrics.DeliveryConflictsTotal.Inc()
		return errorResponseWithDetails(ctx, http.StatusConflict,
			"Order was modified concurrently, delivery not applied", err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to apply delivery outcome")
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Success: false,
		Code:    int32(code),
		Message: message,
	})
}

func errorResponseWithDetails(ctx echo.Context, code int, message, details string) error {
	return ctx.JSON(code, servers.Error{
		Success:      false,
		Code:         int32(code),
		Message:      message,
		ErrorDetails: &details,
	})
}

func bulkMessage(result commands.BulkDeliverResult) string {
	if result.Success {
		return "All deliveries applied"
	}
	return "Some deliveries were not applied"
}

func outcomeParams(
	customerVerified *bool,
	paymentCollected *bool,
	signatureObtained *bool,
	photoTaken *bool,
	failureReason *string,
	customerFeedback *string,
	deliveryNotes *string,
) order.OutcomeParams {
	return order.OutcomeParams{
		CustomerVerified:  customerVerified != nil && *customerVerified,
		PaymentCollected:  paymentCollected,
		SignatureObtained: signatureObtained != nil && *signatureObtained,
		PhotoTaken:        photoTaken != nil && *photoTaken,
		FailureReason:     deref(failureReason),
		CustomerFeedback:  deref(customerFeedback),
		DeliveryNotes:     deref(deliveryNotes),
	}
}

func toDeliveryResult(result order.DeliveryResult) servers.DeliveryResult {
	out := servers.DeliveryResult{
		OrderId:          result.OrderID,
		Status:           result.Status.String(),
		Message:          result.Message,
		Timestamp:        result.Timestamp,
		PaymentCollected: result.PaymentCollected,
	}
	if result.Proof != nil {
		timestamp := result.Proof.Timestamp
		out.Proof = &servers.DeliveryProof{
			SignatureObtained: result.Proof.SignatureObtained,
			PhotoTaken:        result.Proof.PhotoTaken,
			Timestamp:         &timestamp,
		}
	}
	if result.CustomerFeedback != "" {
		feedback := result.CustomerFeedback
		out.CustomerFeedback = &feedback
	}
	return out
}

func toStatusResponse(response queries.GetDeliveryStatusQueryResponse) servers.DeliveryStatusResponse {
	status := response.Status.String()
	total := response.Order.OrderTotal

	out := servers.DeliveryStatusResponse{
		Success: true,
		Message: "Order " + response.Order.OrderID + " is " + status,
		Status:  status,
		Order: servers.OrderInfo{
			OrderId:       response.Order.OrderID,
			CustomerEmail: response.Order.CustomerEmail,
			CustomerName:  optional(response.Order.CustomerName),
			Address:       optional(response.Order.Address),
			OrderTotal:    &total,
			PaymentMethod: optional(response.Order.PaymentMethod),
			Status:        status,
		},
	}

	if response.DeliveryDetails == nil {
		return out
	}

	d := response.DeliveryDetails
	details := &servers.DeliveryDetails{
		DeliveredBy:        optional(d.DeliveredBy),
		DeliveryTime:       d.DeliveryTime,
		CustomerFeedback:   optional(d.CustomerFeedback),
		FailureReason:      optional(d.FailureReason),
		FailedDeliveryTime: d.FailedDeliveryTime,
		AttemptedBy:        optional(d.AttemptedBy),
		ReturnReason:       optional(d.ReturnReason),
		ReturnedTime:       d.ReturnedTime,
		ReturnedBy:         optional(d.ReturnedBy),
		Notes:              optional(d.Notes),
	}
	if response.Status == order.Delivered {
		signature := d.SignatureObtained
		photo := d.PhotoTaken
		details.SignatureObtained = &signature
		details.PhotoTaken = &photo
	}
	if d.PaymentRecord != nil {
		collectedAt := d.PaymentRecord.CollectedAt
		details.PaymentRecord = &servers.PaymentRecord{
			Id:          d.PaymentRecord.ID,
			Amount:      d.PaymentRecord.Amount,
			Method:      d.PaymentRecord.Method,
			Status:      d.PaymentRecord.Status,
			CollectedBy: optional(d.PaymentRecord.CollectedBy),
			CollectedAt: &collectedAt,
		}
	}
	out.DeliveryDetails = details

	return out
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
