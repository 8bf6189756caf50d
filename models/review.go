package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review represents a user's review of a tour. The (tour, user) pair is
// unique: one review per user per tour, enforced by a compound index.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Review    string             `bson:"review" json:"review"`
	Rating    float64            `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Tour      primitive.ObjectID `bson:"tour" json:"tour"`
	User      primitive.ObjectID `bson:"user" json:"user"`

	// Populated author snapshot, never persisted
	UserInfo *ReviewAuthor `bson:"-" json:"userInfo,omitempty"`
	TourName string        `bson:"-" json:"tourName,omitempty"`
}

// ReviewAuthor is the slice of the user document exposed with a review
type ReviewAuthor struct {
	Name  string `bson:"name" json:"name"`
	Photo string `bson:"photo" json:"photo"`
}

// SetID stores the database-generated identifier
func (r *Review) SetID(id primitive.ObjectID) {
	r.ID = id
}

// ApplyDefaults stamps the creation time on a new review
func (r *Review) ApplyDefaults() {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
}

// Validate checks the review's own constraints
func (r *Review) Validate() error {
	if r.Review == "" {
		return errors.New("Review can not be empty")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("Rating must be between 1.0 and 5.0")
	}
	if r.Tour.IsZero() {
		return errors.New("Review must belong to a tour")
	}
	if r.User.IsZero() {
		return errors.New("Review must belong to a user")
	}
	return nil
}
