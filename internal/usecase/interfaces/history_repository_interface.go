package interfaces

import (
	"context"

	"poolops/internal/domain/entities"
)

// IHistoryRepository abstracts DynamoDB persistence for the append-only
// estimate history log.
//
//go:generate mockgen -source=history_repository_interface.go -destination=mocks/history_repository_mock.go -package=mock_interfaces
type IHistoryRepository interface {
	Create(ctx context.Context, l entities.HistoryLog) (entities.HistoryLog, error)
	List(ctx context.Context, filter entities.HistoryFilter) ([]entities.HistoryLog, error)
}
