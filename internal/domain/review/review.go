package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Review is a customer rating for a product. A user may hold at most one
// review per product; the uniqueness is enforced by the repository.
type Review struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_reviews_product_user,unique;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_reviews_product_user,unique;not null"`
	UserName  string    `gorm:"type:varchar(100)"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a new review
func NewReview(productID, userID uuid.UUID, userName string, rating int, comment string) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		UserID:            userID,
		UserName:          userName,
		Rating:            rating,
		Comment:           comment,
	}, nil
}

// Update changes the rating and comment of an existing review
func (r *Review) Update(rating int, comment string) error {
	if err := validateRating(rating); err != nil {
		return err
	}

	r.Rating = rating
	r.Comment = comment
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// IsOwnedBy returns true if the review belongs to the given user
func (r *Review) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}
