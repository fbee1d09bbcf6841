package interfaces

import (
	"context"

	"poolops/internal/domain/entities"
)

// IQuickBooksTokenStore persists the single QuickBooks OAuth connection.
// Load returns a zero-value token when no connection has been stored.
//
//go:generate mockgen -source=quickbooks_token_store_interface.go -destination=mocks/quickbooks_token_store_mock.go -package=mock_interfaces
type IQuickBooksTokenStore interface {
	Load(ctx context.Context) (entities.QuickBooksToken, error)
	Save(ctx context.Context, t entities.QuickBooksToken) error
	Delete(ctx context.Context) error
}
