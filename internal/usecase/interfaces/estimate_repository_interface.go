package interfaces

import (
	"context"
	"errors"

	"poolops/internal/domain/entities"
)

// ErrVersionConflict is returned by Update when the estimate was modified
// concurrently (the stored version no longer matches the caller's copy).
var ErrVersionConflict = errors.New("estimate version conflict")

// IEstimateRepository abstracts DynamoDB persistence for Estimate.
//
// Not-found is reported as a zero-value estimate (empty ID), not an error.
// Update persists the full entity in one conditional write so a status change
// and its side-effect fields are never observable apart.
//
//go:generate mockgen -source=estimate_repository_interface.go -destination=mocks/estimate_repository_mock.go -package=mock_interfaces
type IEstimateRepository interface {
	List(ctx context.Context, status entities.EstimateStatus) ([]entities.Estimate, error)
	ListByProperty(ctx context.Context, propertyID string) ([]entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	GetByApprovalToken(ctx context.Context, token string) (entities.Estimate, error)
	Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	Update(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	Delete(ctx context.Context, id string) error
}
