package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
)

// CreateReviewRequest represents a request to review a product
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// UpdateReviewRequest represents a request to change an existing review
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductReviewsResponse bundles a product's reviews with the average rating
type ProductReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ReviewService handles product review operations
type ReviewService struct {
	reviewRepo review.ReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo review.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

// Create adds a review. A user may review a product only once.
func (s *ReviewService) Create(ctx context.Context, productID, userID uuid.UUID, userName string, req CreateReviewRequest) (*ReviewResponse, error) {
	existing, err := s.reviewRepo.FindByProductAndUser(ctx, productID, userID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "You have already reviewed this product")
	}

	r, err := review.NewReview(productID, userID, userName, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// Update changes the caller's own review
func (s *ReviewService) Update(ctx context.Context, reviewID, callerID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !r.IsOwnedBy(callerID) {
		return nil, shared.ErrForbidden
	}
	if err := r.Update(req.Rating, req.Comment); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// ListByProduct retrieves a product's reviews and average rating
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*ProductReviewsResponse, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	average, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, ToReviewResponse(&reviews[i]))
	}

	return &ProductReviewsResponse{Reviews: responses, AverageRating: average}, nil
}

// Delete removes a review. Allowed for the owner or an admin.
func (s *ReviewService) Delete(ctx context.Context, reviewID, callerID uuid.UUID, isAdmin bool) error {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !isAdmin && !r.IsOwnedBy(callerID) {
		return shared.ErrForbidden
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}
