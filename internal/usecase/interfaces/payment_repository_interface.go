package interfaces

import (
	"context"

	"poolops/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for EstimatePayment.
//
//go:generate mockgen -source=payment_repository_interface.go -destination=mocks/payment_repository_mock.go -package=mock_interfaces
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.EstimatePayment) (entities.EstimatePayment, error)
	GetByID(ctx context.Context, id string) (entities.EstimatePayment, error)
	ListByEstimateID(ctx context.Context, estimateID string) ([]entities.EstimatePayment, error)
}
