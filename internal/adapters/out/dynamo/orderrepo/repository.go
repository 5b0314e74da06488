package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"deliveryops/internal/core/domain/model/kernel"
	"deliveryops/internal/core/domain/model/order"
	"deliveryops/internal/pkg/errs"
)

// OrderIDIndexName is the global secondary index keyed by order id alone.
const OrderIDIndexName = "order_id-index"

// DynamoAPI is the slice of the DynamoDB client the repository depends on.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoOrderRepository implements OrderRepository on a DynamoDB table keyed
// by (customer_email, order_id).
type DynamoOrderRepository struct {
	client    DynamoAPI
	tableName string
}

// NewDynamoOrderRepository creates a new DynamoDB order repository.
func NewDynamoOrderRepository(client DynamoAPI, tableName string) *DynamoOrderRepository {
	return &DynamoOrderRepository{
		client:    client,
		tableName: tableName,
	}
}

// Add saves a new order item. Orders are normally written by the upstream
// placement subsystem; this exists for provisioning and fixtures.
func (r *DynamoOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(fromDomain(aggregate))
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", aggregate.ID(), err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put order %s: %w", aggregate.ID(), err)
	}
	return nil
}

// Get retrieves an order by ID through the order-id index.
func (r *DynamoOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(OrderIDIndexName),
		KeyConditionExpression: aws.String("order_id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id.String()},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query order %s: %w", id, err)
	}
	if len(out.Items) == 0 {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	var dto OrderDTO
	if err := attributevalue.UnmarshalMap(out.Items[0], &dto); err != nil {
		return nil, fmt.Errorf("unmarshal order %s: %w", id, err)
	}

	return toDomain(dto)
}

// UpdateDelivery commits the delivery-related attributes of the aggregate.
// The write is conditional on the status the order had when the aggregate was
// loaded: if another writer moved the order first, the condition fails and
// a version conflict error is returned with nothing written.
func (r *DynamoOrderRepository) UpdateDelivery(
	ctx context.Context,
	aggregate *order.Order,
	expectedStatus order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	updateExpr, names, values, err := buildDeliveryUpdate(aggregate.Snapshot())
	if err != nil {
		return fmt.Errorf("build delivery update for order %s: %w", aggregate.ID(), err)
	}
	values[":expected"] = &types.AttributeValueMemberS{Value: expectedStatus.String()}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"customer_email": &types.AttributeValueMemberS{Value: aggregate.CustomerEmail().String()},
			"order_id":       &types.AttributeValueMemberS{Value: aggregate.ID().String()},
		},
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String("#status = :expected"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		// A missing item also fails the condition. Get always precedes this
		// write, so the item existed moments ago and a conflict is the
		// accurate report either way: the record is no longer in the state
		// the caller observed.
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return errs.NewVersionConflictErrorWithCause(
				"order status", aggregate.ID().String(), expectedStatus.String(), err)
		}
		return fmt.Errorf("update order %s: %w", aggregate.ID(), err)
	}
	return nil
}

// GetAllInDeliverableStates retrieves every order still awaiting a delivery
// outcome. Used by the pending-deliveries job; scans the full table.
func (r *DynamoOrderRepository) GetAllInDeliverableStates(ctx context.Context) ([]*order.Order, error) {
	statuses := order.DeliverableStatuses()
	placeholders := make([]string, 0, len(statuses))
	values := make(map[string]types.AttributeValue, len(statuses))
	for i, status := range statuses {
		placeholder := fmt.Sprintf(":s%d", i)
		placeholders = append(placeholders, placeholder)
		values[placeholder] = &types.AttributeValueMemberS{Value: status.String()}
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          aws.String("#status IN (" + strings.Join(placeholders, ", ") + ")"),
		ExpressionAttributeNames:  map[string]string{"#status": "status"},
		ExpressionAttributeValues: values,
	}

	var orders []*order.Order
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan deliverable orders: %w", err)
		}

		for _, item := range out.Items {
			var dto OrderDTO
			if err := attributevalue.UnmarshalMap(item, &dto); err != nil {
				return nil, fmt.Errorf("unmarshal order item: %w", err)
			}

			aggregate, err := toDomain(dto)
			if err != nil {
				return nil, err
			}
			orders = append(orders, aggregate)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	return orders, nil
}

// buildDeliveryUpdate produces the SET expression for the delivery fields of
// a terminal snapshot. Only attributes relevant to the reached status are
// written; the rest of the item is left untouched.
func buildDeliveryUpdate(s order.Snapshot) (string, map[string]string, map[string]types.AttributeValue, error) {
	names := map[string]string{"#status": "status"}
	values := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: s.Status.String()},
	}
	clauses := []string{"#status = :status"}

	set := func(attr string, value any) error {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal attribute %s: %w", attr, err)
		}

		placeholder := fmt.Sprintf("#a%d", len(names))
		valuePlaceholder := fmt.Sprintf(":v%d", len(values))
		names[placeholder] = attr
		values[valuePlaceholder] = av
		clauses = append(clauses, placeholder+" = "+valuePlaceholder)
		return nil
	}

	var err error
	switch s.Status {
	case order.Delivered:
		err = setAll(set, map[string]any{
			"delivery_time": s.DeliveryTime,
			"delivered_by":  s.DeliveredBy,
		})
		if err == nil && s.DeliveryProof != nil {
			err = set("delivery_proof", DeliveryProofDTO{
				SignatureObtained: s.DeliveryProof.SignatureObtained,
				PhotoTaken:        s.DeliveryProof.PhotoTaken,
				Timestamp:         s.DeliveryProof.Timestamp,
			})
		}
		if err == nil && s.CustomerFeedback != "" {
			err = set("customer_feedback", s.CustomerFeedback)
		}
		if err == nil && s.PaymentRecord != nil {
			err = set("payment_status", s.PaymentStatus)
			if err == nil {
				err = set("payment_record", PaymentRecordDTO{
					ID:          s.PaymentRecord.ID,
					Amount:      s.PaymentRecord.Amount,
					Method:      s.PaymentRecord.Method,
					Status:      s.PaymentRecord.Status,
					CollectedBy: s.PaymentRecord.CollectedBy,
					CollectedAt: s.PaymentRecord.CollectedAt,
				})
			}
		}
	case order.FailedDelivery:
		err = setAll(set, map[string]any{
			"failure_reason":       s.FailureReason,
			"failed_delivery_time": s.FailedDeliveryTime,
		})
		if err == nil && s.AttemptedBy != "" {
			err = set("attempted_by", s.AttemptedBy)
		}
		if err == nil && s.DeliveryNotes != "" {
			err = set("delivery_notes", s.DeliveryNotes)
		}
	case order.Returned:
		err = setAll(set, map[string]any{
			"return_reason": s.ReturnReason,
			"returned_time": s.ReturnedTime,
		})
		if err == nil && s.ReturnedBy != "" {
			err = set("returned_by", s.ReturnedBy)
		}
		if err == nil && s.ReturnNotes != "" {
			err = set("return_notes", s.ReturnNotes)
		}
	default:
		return "", nil, nil, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a terminal delivery status", s.Status),
		)
	}
	if err != nil {
		return "", nil, nil, err
	}

	return "SET " + strings.Join(clauses, ", "), names, values, nil
}

func setAll(set func(attr string, value any) error, attrs map[string]any) error {
	for attr, value := range attrs {
		if err := set(attr, value); err != nil {
			return err
		}
	}
	return nil
}
