package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/dto"
	"github.com/fitaafita/backend/models"
)

// UpdateMe applies the self-service profile fields (name, email, photo) to
// the logged-in user. Password changes are rejected upstream.
func UpdateMe(ctx context.Context, userID primitive.ObjectID, req dto.UpdateMeRequest, photo string) (*models.User, error) {
	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(*req.Email)
	}
	if photo != "" {
		fields["photo"] = photo
	}
	if len(fields) == 0 {
		return userRepo.FindByID(ctx, userID)
	}
	return userRepo.SetFields(ctx, userID, fields)
}

// DeleteMe soft-deletes the logged-in user's account
func DeleteMe(ctx context.Context, userID primitive.ObjectID) error {
	return userRepo.Deactivate(ctx, userID)
}

// MyTours lists the tours the user has booked
func MyTours(ctx context.Context, userID primitive.ObjectID) ([]models.Tour, error) {
	bookings, err := bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tourIDs := make([]primitive.ObjectID, 0, len(bookings))
	for _, booking := range bookings {
		tourIDs = append(tourIDs, booking.Tour)
	}
	if len(tourIDs) == 0 {
		return []models.Tour{}, nil
	}

	return tourRepo.FindByIDs(ctx, tourIDs)
}

// UserBookings lists all bookings of a user, with tour names populated
func UserBookings(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	bookings, err := bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := bookingRepo.Populate(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
