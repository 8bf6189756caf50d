package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking links a user to a tour they paid for
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tour      primitive.ObjectID `bson:"tour" json:"tour"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Price     float64            `bson:"price" json:"price"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Paid      bool               `bson:"paid" json:"paid"`

	// Populated tour name, never persisted
	TourName string `bson:"-" json:"tourName,omitempty"`
}

// SetID stores the database-generated identifier
func (b *Booking) SetID(id primitive.ObjectID) {
	b.ID = id
}

// ApplyDefaults stamps creation time and marks the booking paid
func (b *Booking) ApplyDefaults() {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	b.Paid = true
}

// Validate checks the booking's required references
func (b *Booking) Validate() error {
	if b.Tour.IsZero() {
		return errors.New("Booking must belong to a tour")
	}
	if b.User.IsZero() {
		return errors.New("Booking must belong to a user")
	}
	if b.Price <= 0 {
		return errors.New("Booking must have a price")
	}
	return nil
}
