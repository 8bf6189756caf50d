package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/database"
	"github.com/fitaafita/backend/models"
)

// ReviewRepository handles database operations for reviews
type ReviewRepository struct {
	*Repository[models.Review]
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{newRepository[models.Review]("reviews", nil)}
}

// ratingsAggregate mirrors the $group stage of AggregateRatings
type ratingsAggregate struct {
	NRating   int     `bson:"nRating"`
	AvgRating float64 `bson:"avgRating"`
}

// AggregateRatings computes the review count and average rating over all
// surviving reviews of a tour. With no reviews left it reports the defaults
// (quantity 0, average 4.5).
func (r *ReviewRepository) AggregateRatings(ctx context.Context, tourID primitive.ObjectID) (quantity int, average float64, err error) {
	pipeline := []bson.M{
		{"$match": bson.M{"tour": tourID}},
		{"$group": bson.M{
			"_id":       "$tour",
			"nRating":   bson.M{"$sum": 1},
			"avgRating": bson.M{"$avg": "$rating"},
		}},
	}

	stats := []ratingsAggregate{}
	if err = r.Aggregate(ctx, pipeline, &stats); err != nil {
		return 0, 0, err
	}

	quantity, average = ratingsOrDefault(stats)
	return quantity, average, nil
}

// ratingsOrDefault unpacks the aggregation result, falling back to the
// pristine-tour defaults when no reviews remain.
func ratingsOrDefault(stats []ratingsAggregate) (int, float64) {
	if len(stats) == 0 {
		return 0, 4.5
	}
	return stats[0].NRating, stats[0].AvgRating
}

// Populate fills in the author snapshot and tour name on a batch of reviews
func (r *ReviewRepository) Populate(ctx context.Context, reviews []models.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	userIDs := make([]primitive.ObjectID, 0, len(reviews))
	tourIDs := make([]primitive.ObjectID, 0, len(reviews))
	for _, review := range reviews {
		userIDs = append(userIDs, review.User)
		tourIDs = append(tourIDs, review.Tour)
	}

	authors := map[primitive.ObjectID]*models.ReviewAuthor{}
	cursor, err := database.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
	if err != nil {
		return err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return err
	}
	for i := range users {
		authors[users[i].ID] = &models.ReviewAuthor{Name: users[i].Name, Photo: users[i].Photo}
	}

	tourNames := map[primitive.ObjectID]string{}
	cursor, err = database.Collection("tours").Find(ctx, bson.M{"_id": bson.M{"$in": tourIDs}})
	if err != nil {
		return err
	}
	var tours []models.Tour
	if err := cursor.All(ctx, &tours); err != nil {
		return err
	}
	for i := range tours {
		tourNames[tours[i].ID] = tours[i].Name
	}

	for i := range reviews {
		reviews[i].UserInfo = authors[reviews[i].User]
		reviews[i].TourName = tourNames[reviews[i].Tour]
	}
	return nil
}

// FindByTour retrieves all reviews of a tour
func (r *ReviewRepository) FindByTour(ctx context.Context, tourID primitive.ObjectID) ([]models.Review, error) {
	return r.Find(ctx, bson.M{"tour": tourID}, nil)
}
