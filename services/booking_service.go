package services

import (
	"context"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/dto"
	"github.com/fitaafita/backend/models"
	"github.com/fitaafita/backend/utils"
)

var checkoutClient = NewCheckoutClient()

// GetCheckoutSession creates a payment provider session for a tour booking.
// frontendURL is where the provider redirects the visitor afterwards.
func GetCheckoutSession(ctx context.Context, tourID primitive.ObjectID, user *models.User, frontendURL string) (*dto.CheckoutSession, error) {
	tour, err := tourRepo.FindByID(ctx, tourID)
	if err != nil {
		return nil, utils.NewAppError("There is no tour with that ID", http.StatusNotFound)
	}

	params := CheckoutParams{
		AmountCents:   int64(tour.Price * 100),
		Currency:      "usd",
		ProductName:   fmt.Sprintf("%s Tour", tour.Name),
		Description:   tour.Summary,
		CustomerEmail: user.Email,
		ClientRef:     tour.ID.Hex(),
		SuccessURL: fmt.Sprintf("%s/?tour=%s&user=%s&price=%v",
			frontendURL, tour.ID.Hex(), user.ID.Hex(), tour.Price),
		CancelURL: fmt.Sprintf("%s/tour/%s", frontendURL, tour.Slug),
	}

	return checkoutClient.CreateSession(ctx, params)
}

// CreateCheckoutBooking records a paid booking from the checkout success
// redirect parameters.
func CreateCheckoutBooking(ctx context.Context, tourID, userID primitive.ObjectID, price float64) (*models.Booking, error) {
	booking := &models.Booking{Tour: tourID, User: userID, Price: price}
	booking.ApplyDefaults()
	if err := booking.Validate(); err != nil {
		return nil, utils.NewAppError(err.Error(), http.StatusBadRequest)
	}
	if err := bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}
