package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/database"
	"github.com/fitaafita/backend/models"
)

// BookingRepository handles database operations for bookings
type BookingRepository struct {
	*Repository[models.Booking]
}

// NewBookingRepository creates a new booking repository instance
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{newRepository[models.Booking]("bookings", nil)}
}

// FindByUser retrieves all bookings made by a user
func (r *BookingRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	return r.Find(ctx, bson.M{"user": userID}, nil)
}

// Populate fills in the tour name on a batch of bookings
func (r *BookingRepository) Populate(ctx context.Context, bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	tourIDs := make([]primitive.ObjectID, 0, len(bookings))
	for _, booking := range bookings {
		tourIDs = append(tourIDs, booking.Tour)
	}

	cursor, err := database.Collection("tours").Find(ctx, bson.M{"_id": bson.M{"$in": tourIDs}})
	if err != nil {
		return err
	}
	var tours []models.Tour
	if err := cursor.All(ctx, &tours); err != nil {
		return err
	}

	names := map[primitive.ObjectID]string{}
	for i := range tours {
		names[tours[i].ID] = tours[i].Name
	}
	for i := range bookings {
		bookings[i].TourName = names[bookings[i].Tour]
	}
	return nil
}
