package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReviewValidate(t *testing.T) {
	valid := func() *Review {
		return &Review{
			Review: "Loved every minute of it",
			Rating: 5,
			Tour:   primitive.NewObjectID(),
			User:   primitive.NewObjectID(),
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid review, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Review)
	}{
		{"empty text", func(r *Review) { r.Review = "" }},
		{"rating below one", func(r *Review) { r.Rating = 0.5 }},
		{"rating above five", func(r *Review) { r.Rating = 5.5 }},
		{"missing tour", func(r *Review) { r.Tour = primitive.NilObjectID }},
		{"missing user", func(r *Review) { r.User = primitive.NilObjectID }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			review := valid()
			tc.mutate(review)
			if err := review.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestBookingDefaultsAndValidate(t *testing.T) {
	booking := &Booking{
		Tour:  primitive.NewObjectID(),
		User:  primitive.NewObjectID(),
		Price: 497,
	}
	booking.ApplyDefaults()

	if !booking.Paid {
		t.Error("expected booking to default to paid")
	}
	if booking.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}
	if err := booking.Validate(); err != nil {
		t.Errorf("expected valid booking, got %v", err)
	}

	booking.Price = 0
	if err := booking.Validate(); err == nil {
		t.Error("expected error for zero price")
	}
}
