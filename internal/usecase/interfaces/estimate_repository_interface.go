package interfaces

import (
	"context"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
)

// IEstimateRepository abstracts DynamoDB persistence for estimate documents.
//
// The estimator must be able to:
//   - list every stored estimate for the dashboard
//   - fetch one estimate by ID for detail/edit/export
//   - persist a new or fully re-derived document (Put is create-or-replace)
//   - delete an estimate

type IEstimateRepository interface {
	List(ctx context.Context) ([]entities.EstimateDocument, error)
	GetByID(ctx context.Context, id string) (entities.EstimateDocument, error)
	Put(ctx context.Context, doc entities.EstimateDocument) (entities.EstimateDocument, error)
	Delete(ctx context.Context, id string) error
}
