package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/dto"
	"github.com/fitaafita/backend/models"
)

// notSecret hides secret tours from every default list read
var notSecret = bson.M{"secretTour": bson.M{"$ne": true}}

// TourRepository handles database operations for tours
type TourRepository struct {
	*Repository[models.Tour]
}

// NewTourRepository creates a new tour repository instance
func NewTourRepository() *TourRepository {
	return &TourRepository{newRepository[models.Tour]("tours", notSecret)}
}

// FindByIDs retrieves the non-secret tours with the given IDs
func (r *TourRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tour, error) {
	return r.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// UpdateRatings writes a recomputed ratings aggregate onto a tour
func (r *TourRepository) UpdateRatings(ctx context.Context, tourID primitive.ObjectID, quantity int, average float64) error {
	_, err := r.coll().UpdateByID(ctx, tourID, bson.M{"$set": bson.M{
		"ratingsQuantity": quantity,
		"ratingsAverage":  models.RoundRating(average),
	}})
	return err
}

// Stats groups non-secret tours with an average rating of at least 4.5 by
// difficulty, sorted ascending by average price.
func (r *TourRepository) Stats(ctx context.Context) ([]dto.TourStats, error) {
	pipeline := []bson.M{
		{"$match": notSecret},
		{"$match": bson.M{"ratingsAverage": bson.M{"$gte": 4.5}}},
		{"$group": bson.M{
			"_id":        "$difficulty",
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}},
		{"$sort": bson.M{"avgPrice": 1}},
	}

	stats := []dto.TourStats{}
	if err := r.Aggregate(ctx, pipeline, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlyPlan counts tour starts per calendar month of the given year,
// busiest months first, top 6.
func (r *TourRepository) MonthlyPlan(ctx context.Context, year int) ([]dto.MonthlyPlanEntry, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	pipeline := []bson.M{
		{"$match": notSecret},
		{"$unwind": "$startDates"},
		{"$match": bson.M{"startDates": bson.M{"$gte": from, "$lte": to}}},
		{"$group": bson.M{
			"_id":           bson.M{"$month": "$startDates"},
			"numTourStarts": bson.M{"$sum": 1},
			"tours":         bson.M{"$push": "$name"},
		}},
		{"$addFields": bson.M{
			"month": bson.M{"$arrayElemAt": bson.A{monthNames, bson.M{"$subtract": bson.A{"$_id", 1}}}},
		}},
		{"$project": bson.M{"_id": 0}},
		{"$sort": bson.M{"numTourStarts": -1}},
		{"$limit": 6},
	}

	plan := []dto.MonthlyPlanEntry{}
	if err := r.Aggregate(ctx, pipeline, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Within finds non-secret tours whose start location lies inside the sphere
// cap of the given angular radius around lng/lat.
func (r *TourRepository) Within(ctx context.Context, lat, lng, radius float64) ([]models.Tour, error) {
	filter := bson.M{
		"startLocation": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radius},
			},
		},
	}
	return r.Find(ctx, filter, nil)
}

// Distances computes the distance from lng/lat to every tour's start
// location, scaled by the unit multiplier. $geoNear must be the first
// pipeline stage, so this is the one aggregation without the secret-tour
// match in front.
func (r *TourRepository) Distances(ctx context.Context, lat, lng, multiplier float64) ([]dto.TourDistance, error) {
	pipeline := []bson.M{
		{"$geoNear": bson.M{
			"near": bson.M{
				"type":        "Point",
				"coordinates": bson.A{lng, lat},
			},
			"distanceField":      "distance",
			"distanceMultiplier": multiplier,
		}},
		{"$project": bson.M{"distance": 1, "name": 1}},
	}

	distances := []dto.TourDistance{}
	if err := r.Aggregate(ctx, pipeline, &distances); err != nil {
		return nil, err
	}
	return distances, nil
}

// EarthRadiusFor converts a surface distance into the angular radius used by
// $centerSphere. Supported units are "mi" and "km".
func EarthRadiusFor(distance float64, unit string) (float64, error) {
	switch unit {
	case "mi":
		return distance / 3963.2, nil
	case "km":
		return distance / 6378.1, nil
	default:
		return 0, fmt.Errorf("unknown unit %q", unit)
	}
}

// DistanceMultiplierFor converts meters into the requested unit
func DistanceMultiplierFor(unit string) (float64, error) {
	switch unit {
	case "mi":
		return 0.000621371, nil
	case "km":
		return 0.001, nil
	default:
		return 0, fmt.Errorf("unknown unit %q", unit)
	}
}
