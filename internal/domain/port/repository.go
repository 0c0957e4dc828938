package port

import (
	"context"
	"errors"

	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/event"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/model"
	"github.com/kwansodan/ifrs9pro-backend-sub001/internal/domain/valueobject"
)

// ErrNotFound is returned by repositories when no matching result exists.
var ErrNotFound = errors.New("not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// StagingResultRepository persists and retrieves staging results. Results
// are append-only; FindLatest returns the most recent by creation time.
type StagingResultRepository interface {
	Save(ctx context.Context, result model.StagingResult) error
	FindLatest(ctx context.Context, portfolioID string, m valueobject.ProvisioningModel) (model.StagingResult, error)
}

// CalculationResultRepository persists and retrieves calculation results.
type CalculationResultRepository interface {
	Save(ctx context.Context, result model.CalculationResult) error
	FindLatest(ctx context.Context, portfolioID string, m valueobject.ProvisioningModel) (model.CalculationResult, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
