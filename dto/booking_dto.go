package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/models"
)

// CreateBookingRequest represents an administrative booking creation
type CreateBookingRequest struct {
	Tour  string  `json:"tour" binding:"required"`
	User  string  `json:"user" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

// ToModel converts the request into a Booking document
func (r *CreateBookingRequest) ToModel() (*models.Booking, error) {
	tourID, err := primitive.ObjectIDFromHex(r.Tour)
	if err != nil {
		return nil, err
	}
	userID, err := primitive.ObjectIDFromHex(r.User)
	if err != nil {
		return nil, err
	}
	return &models.Booking{Tour: tourID, User: userID, Price: r.Price}, nil
}

// UpdateBookingRequest represents a partial booking update
type UpdateBookingRequest struct {
	Price *float64 `json:"price" binding:"omitempty,gt=0"`
	Paid  *bool    `json:"paid"`
}

// ApplyTo copies the set fields onto an existing booking
func (r *UpdateBookingRequest) ApplyTo(booking *models.Booking) {
	if r.Price != nil {
		booking.Price = *r.Price
	}
	if r.Paid != nil {
		booking.Paid = *r.Paid
	}
}

// CheckoutSession is the provider-issued checkout session handed back to the
// frontend.
type CheckoutSession struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}
