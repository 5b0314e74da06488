// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// their DynamoDB item representation.
package orderrepo

import (
	"time"

	"deliveryops/internal/core/domain/model/order"
)

// OrderDTO represents the DynamoDB item structure for persisting order
// aggregates. The table is keyed by customer e-mail (partition) and order id
// (sort); the order-id global secondary index serves lookups by id alone.
type OrderDTO struct {
	CustomerEmail string  `dynamodbav:"customer_email"`
	OrderID       string  `dynamodbav:"order_id"`
	CustomerName  string  `dynamodbav:"customer_name,omitempty"`
	Address       string  `dynamodbav:"address,omitempty"`
	Status        string  `dynamodbav:"status"`
	PaymentMethod string  `dynamodbav:"payment_method,omitempty"`
	PaymentStatus string  `dynamodbav:"payment_status,omitempty"`
	OrderTotal    float64 `dynamodbav:"order_total"`

	DeliveryTime     *time.Time        `dynamodbav:"delivery_time,omitempty"`
	DeliveredBy      string            `dynamodbav:"delivered_by,omitempty"`
	DeliveryProof    *DeliveryProofDTO `dynamodbav:"delivery_proof,omitempty"`
	CustomerFeedback string            `dynamodbav:"customer_feedback,omitempty"`
	DeliveryNotes    string            `dynamodbav:"delivery_notes,omitempty"`

	FailureReason      string     `dynamodbav:"failure_reason,omitempty"`
	FailedDeliveryTime *time.Time `dynamodbav:"failed_delivery_time,omitempty"`
	AttemptedBy        string     `dynamodbav:"attempted_by,omitempty"`

	ReturnReason string     `dynamodbav:"return_reason,omitempty"`
	ReturnedTime *time.Time `dynamodbav:"returned_time,omitempty"`
	ReturnedBy   string     `dynamodbav:"returned_by,omitempty"`
	ReturnNotes  string     `dynamodbav:"return_notes,omitempty"`

	PaymentRecord *PaymentRecordDTO `dynamodbav:"payment_record,omitempty"`
}

// DeliveryProofDTO represents the embedded delivery proof attribute.
type DeliveryProofDTO struct {
	SignatureObtained bool      `dynamodbav:"signature_obtained"`
	PhotoTaken        bool      `dynamodbav:"photo_taken"`
	Timestamp         time.Time `dynamodbav:"timestamp"`
}

// PaymentRecordDTO represents the embedded COD payment record attribute.
type PaymentRecordDTO struct {
	ID          string    `dynamodbav:"id"`
	Amount      float64   `dynamodbav:"amount"`
	Method      string    `dynamodbav:"method"`
	Status      string    `dynamodbav:"status"`
	CollectedBy string    `dynamodbav:"collected_by"`
	CollectedAt time.Time `dynamodbav:"collected_at"`
}

// fromDomain converts an order domain aggregate to its item representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	dto := OrderDTO{
		CustomerEmail:      s.CustomerEmail,
		OrderID:            s.OrderID,
		CustomerName:       s.CustomerName,
		Address:            s.Address,
		Status:             s.Status.String(),
		PaymentMethod:      s.PaymentMethod,
		PaymentStatus:      s.PaymentStatus,
		OrderTotal:         s.OrderTotal,
		DeliveryTime:       s.DeliveryTime,
		DeliveredBy:        s.DeliveredBy,
		CustomerFeedback:   s.CustomerFeedback,
		DeliveryNotes:      s.DeliveryNotes,
		FailureReason:      s.FailureReason,
		FailedDeliveryTime: s.FailedDeliveryTime,
		AttemptedBy:        s.AttemptedBy,
		ReturnReason:       s.ReturnReason,
		ReturnedTime:       s.ReturnedTime,
		ReturnedBy:         s.ReturnedBy,
		ReturnNotes:        s.ReturnNotes,
	}

	if s.DeliveryProof != nil {
		dto.DeliveryProof = &DeliveryProofDTO{
			SignatureObtained: s.DeliveryProof.SignatureObtained,
			PhotoTaken:        s.DeliveryProof.PhotoTaken,
			Timestamp:         s.DeliveryProof.Timestamp,
		}
	}

	if s.PaymentRecord != nil {
		dto.PaymentRecord = &PaymentRecordDTO{
			ID:          s.PaymentRecord.ID,
			Amount:      s.PaymentRecord.Amount,
			Method:      s.PaymentRecord.Method,
			Status:      s.PaymentRecord.Status,
			CollectedBy: s.PaymentRecord.CollectedBy,
			CollectedAt: s.PaymentRecord.CollectedAt,
		}
	}

	return dto
}

// toDomain converts a DynamoDB item DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	s := order.Snapshot{
		OrderID:            dto.OrderID,
		CustomerEmail:      dto.CustomerEmail,
		CustomerName:       dto.CustomerName,
		Address:            dto.Address,
		Status:             order.Status(dto.Status),
		PaymentMethod:      dto.PaymentMethod,
		PaymentStatus:      dto.PaymentStatus,
		OrderTotal:         dto.OrderTotal,
		DeliveryTime:       dto.DeliveryTime,
		DeliveredBy:        dto.DeliveredBy,
		CustomerFeedback:   dto.CustomerFeedback,
		DeliveryNotes:      dto.DeliveryNotes,
		FailureReason:      dto.FailureReason,
		FailedDeliveryTime: dto.FailedDeliveryTime,
		AttemptedBy:        dto.AttemptedBy,
		ReturnReason:       dto.ReturnReason,
		ReturnedTime:       dto.ReturnedTime,
		ReturnedBy:         dto.ReturnedBy,
		ReturnNotes:        dto.ReturnNotes,
	}

	if dto.DeliveryProof != nil {
		s.DeliveryProof = &order.DeliveryProof{
			SignatureObtained: dto.DeliveryProof.SignatureObtained,
			PhotoTaken:        dto.DeliveryProof.PhotoTaken,
			Timestamp:         dto.DeliveryProof.Timestamp,
		}
	}

	if dto.PaymentRecord != nil {
		s.PaymentRecord = &order.PaymentRecord{
			ID:          dto.PaymentRecord.ID,
			Amount:      dto.PaymentRecord.Amount,
			Method:      dto.PaymentRecord.Method,
			Status:      dto.PaymentRecord.Status,
			CollectedBy: dto.PaymentRecord.CollectedBy,
			CollectedAt: dto.PaymentRecord.CollectedAt,
		}
	}

	return order.RestoreOrder(s)
}
