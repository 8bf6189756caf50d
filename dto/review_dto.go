package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/models"
)

// CreateReviewRequest represents the body of a review creation. Tour and
// user default from the nested route and the authenticated identity when
// omitted.
type CreateReviewRequest struct {
	Review string  `json:"review" binding:"required"`
	Rating float64 `json:"rating" binding:"required,gte=1,lte=5"`
	Tour   string  `json:"tour"`
	User   string  `json:"user"`
}

// ToModel converts the request into a Review document
func (r *CreateReviewRequest) ToModel() (*models.Review, error) {
	review := &models.Review{
		Review: r.Review,
		Rating: r.Rating,
	}

	if r.Tour != "" {
		id, err := primitive.ObjectIDFromHex(r.Tour)
		if err != nil {
			return nil, err
		}
		review.Tour = id
	}
	if r.User != "" {
		id, err := primitive.ObjectIDFromHex(r.User)
		if err != nil {
			return nil, err
		}
		review.User = id
	}
	return review, nil
}

// UpdateReviewRequest represents a partial review update
type UpdateReviewRequest struct {
	Review *string  `json:"review"`
	Rating *float64 `json:"rating" binding:"omitempty,gte=1,lte=5"`
}

// ApplyTo copies the set fields onto an existing review
func (r *UpdateReviewRequest) ApplyTo(review *models.Review) {
	if r.Review != nil {
		review.Review = *r.Review
	}
	if r.Rating != nil {
		review.Rating = *r.Rating
	}
}
