package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"deliveryops/internal/core/domain/model/order"
	"deliveryops/internal/pkg/errs"
)

// DynamoQueryAPI is the slice of the DynamoDB client used by query handlers.
type DynamoQueryAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// OrderInfo is the basic order projection returned for every status query,
// whatever state the order is in.
type OrderInfo struct {
	OrderID       string
	CustomerEmail string
	CustomerName  string
	Address       string
	OrderTotal    float64
	PaymentMethod string
}

// PaymentRecordInfo is the projection of an attached COD payment record.
type PaymentRecordInfo struct {
	ID          string
	Amount      float64
	Method      string
	Status      string
	CollectedBy string
	CollectedAt time.Time
}

// DeliveryDetails carries the terminal-state detail fields. Only the
// fields matching the order's terminal status are populated.
type DeliveryDetails struct {
	DeliveredBy       string
	DeliveryTime      *time.Time
	SignatureObtained bool
	PhotoTaken        bool
	CustomerFeedback  string

	FailureReason      string
	FailedDeliveryTime *time.Time
	AttemptedBy        string

	ReturnReason string
	ReturnedTime *time.Time
	ReturnedBy   string

	Notes         string
	PaymentRecord *PaymentRecordInfo
}

// GetDeliveryStatusQueryResponse is the full status projection.
// DeliveryDetails is nil unless the order is in a terminal delivery state.
type GetDeliveryStatusQueryResponse struct {
	Order           OrderInfo
	Status          order.Status
	DeliveryDetails *DeliveryDetails
}

// orderRow mirrors the order item as stored in DynamoDB. The read model
// is deliberately independent of the repository's write-side mapping.
type orderRow struct {
	OrderID       string  `dynamodbav:"order_id"`
	CustomerEmail string  `dynamodbav:"customer_email"`
	CustomerName  string  `dynamodbav:"customer_name"`
	Address       string  `dynamodbav:"address"`
	Status        string  `dynamodbav:"status"`
	PaymentMethod string  `dynamodbav:"payment_method"`
	OrderTotal    float64 `dynamodbav:"order_total"`

	DeliveryTime     *time.Time `dynamodbav:"delivery_time"`
	DeliveredBy      string     `dynamodbav:"delivered_by"`
	CustomerFeedback string     `dynamodbav:"customer_feedback"`
	DeliveryNotes    string     `dynamodbav:"delivery_notes"`

	DeliveryProof *struct {
		SignatureObtained bool      `dynamodbav:"signature_obtained"`
		PhotoTaken        bool      `dynamodbav:"photo_taken"`
		Timestamp         time.Time `dynamodbav:"timestamp"`
	} `dynamodbav:"delivery_proof"`

	FailureReason      string     `dynamodbav:"failure_reason"`
	FailedDeliveryTime *time.Time `dynamodbav:"failed_delivery_time"`
	AttemptedBy        string     `dynamodbav:"attempted_by"`

	ReturnReason string     `dynamodbav:"return_reason"`
	ReturnedTime *time.Time `dynamodbav:"returned_time"`
	ReturnedBy   string     `dynamodbav:"returned_by"`
	ReturnNotes  string     `dynamodbav:"return_notes"`

	PaymentRecord *struct {
		ID          string    `dynamodbav:"id"`
		Amount      float64   `dynamodbav:"amount"`
		Method      string    `dynamodbav:"method"`
		Status      string    `dynamodbav:"status"`
		CollectedBy string    `dynamodbav:"collected_by"`
		CollectedAt time.Time `dynamodbav:"collected_at"`
	} `dynamodbav:"payment_record"`
}

// GetDeliveryStatusQueryHandler reads one order's delivery state from the
// order store via the order-id index.
type GetDeliveryStatusQueryHandler struct {
	client    DynamoQueryAPI
	tableName string
	indexName string
}

// NewGetDeliveryStatusQueryHandler creates a handler querying the given
// table through its order-id global secondary index.
func NewGetDeliveryStatusQueryHandler(
	client DynamoQueryAPI,
	tableName string,
	indexName string,
) GetDeliveryStatusQueryHandler {
	return GetDeliveryStatusQueryHandler{
		client:    client,
		tableName: tableName,
		indexName: indexName,
	}
}

// Handle executes the status query. The same query asked twice with no
// intervening delivery returns identical results: the handler performs a
// single read and derives everything from that one row.
func (h GetDeliveryStatusQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatusQuery,
) (GetDeliveryStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryStatusQueryResponse{}, err
	}

	out, err := h.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(h.tableName),
		IndexName:              aws.String(h.indexName),
		KeyConditionExpression: aws.String("order_id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: query.OrderID().String()},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return GetDeliveryStatusQueryResponse{}, fmt.Errorf("query order %s: %w", query.OrderID(), err)
	}
	if len(out.Items) == 0 {
		return GetDeliveryStatusQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var row orderRow
	if err := attributevalue.UnmarshalMap(out.Items[0], &row); err != nil {
		return GetDeliveryStatusQueryResponse{}, fmt.Errorf("unmarshal order %s: %w", query.OrderID(), err)
	}

	return projectRow(row), nil
}

func projectRow(row orderRow) GetDeliveryStatusQueryResponse {
	response := GetDeliveryStatusQueryResponse{
		Order: OrderInfo{
			OrderID:       row.OrderID,
			CustomerEmail: row.CustomerEmail,
			CustomerName:  row.CustomerName,
			Address:       row.Address,
			OrderTotal:    row.OrderTotal,
			PaymentMethod: row.PaymentMethod,
		},
		Status: order.Status(row.Status),
	}

	if !response.Status.IsTerminalDelivery() {
		return response
	}

	details := &DeliveryDetails{}
	switch response.Status {
	case order.Delivered:
		details.DeliveredBy = row.DeliveredBy
		details.DeliveryTime = row.DeliveryTime
		details.CustomerFeedback = row.CustomerFeedback
		details.Notes = row.DeliveryNotes
		if row.DeliveryProof != nil {
			details.SignatureObtained = row.DeliveryProof.SignatureObtained
			details.PhotoTaken = row.DeliveryProof.PhotoTaken
		}
		if row.PaymentRecord != nil {
			details.PaymentRecord = &PaymentRecordInfo{
				ID:          row.PaymentRecord.ID,
				Amount:      row.PaymentRecord.Amount,
				Method:      row.PaymentRecord.Method,
				Status:      row.PaymentRecord.Status,
				CollectedBy: row.PaymentRecord.CollectedBy,
				CollectedAt: row.PaymentRecord.CollectedAt,
			}
		}
	case order.FailedDelivery:
		details.FailureReason = row.FailureReason
		details.FailedDeliveryTime = row.FailedDeliveryTime
		details.AttemptedBy = row.AttemptedBy
		details.Notes = row.DeliveryNotes
	case order.Returned:
		details.ReturnReason = row.ReturnReason
		details.ReturnedTime = row.ReturnedTime
		details.ReturnedBy = row.ReturnedBy
		details.Notes = row.ReturnNotes
	}

	response.DeliveryDetails = details
	return response
}
