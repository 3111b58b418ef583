package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ReviewRepository defines the persistence interface for reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)
	FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*Review, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, error)
}
