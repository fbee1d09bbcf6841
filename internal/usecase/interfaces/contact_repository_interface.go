package interfaces

import (
	"context"

	"poolops/internal/domain/entities"
)

// IContactRepository looks up the people attached to a property, used for
// approval-email recipient resolution.
//
//go:generate mockgen -source=contact_repository_interface.go -destination=mocks/contact_repository_mock.go -package=mock_interfaces
type IContactRepository interface {
	GetPropertyContacts(ctx context.Context, propertyID string) ([]entities.Contact, error)
	GetBillingContacts(ctx context.Context, propertyID string) ([]entities.Contact, error)
}
