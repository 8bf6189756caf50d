package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func validTour() *Tour {
	return &Tour{
		Name:       "The Forest Hiker",
		Duration:   7,
		Difficulty: DifficultyEasy,
		Price:      497,
		Summary:    "Breathtaking hike through the Canadian Banff National Park",
		ImageCover: "tour-1-cover.jpg",
	}
}

func TestTourValidate(t *testing.T) {
	t.Run("accepts a complete tour", func(t *testing.T) {
		tour := validTour()
		tour.ApplyDefaults()
		if err := tour.Validate(); err != nil {
			t.Fatalf("expected valid tour, got %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(*Tour)
	}{
		{"name too short", func(tour *Tour) { tour.Name = "Short" }},
		{"name too long", func(tour *Tour) { tour.Name = strings.Repeat("a", 41) }},
		{"unknown difficulty", func(tour *Tour) { tour.Difficulty = "extreme" }},
		{"rating above five", func(tour *Tour) { tour.RatingsAverage = 5.1 }},
		{"missing price", func(tour *Tour) { tour.Price = 0 }},
		{"discount at price", func(tour *Tour) {
			discount := tour.Price
			tour.PriceDiscount = &discount
		}},
		{"discount above price", func(tour *Tour) {
			discount := tour.Price + 100
			tour.PriceDiscount = &discount
		}},
		{"missing summary", func(tour *Tour) { tour.Summary = "" }},
		{"missing cover image", func(tour *Tour) { tour.ImageCover = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tour := validTour()
			tour.ApplyDefaults()
			tc.mutate(tour)
			if err := tour.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	t.Run("discount below price passes", func(t *testing.T) {
		tour := validTour()
		tour.ApplyDefaults()
		discount := tour.Price - 100
		tour.PriceDiscount = &discount
		if err := tour.Validate(); err != nil {
			t.Errorf("expected valid tour, got %v", err)
		}
	})
}

func TestTourApplyDefaults(t *testing.T) {
	t.Run("generates slug and default rating", func(t *testing.T) {
		tour := validTour()
		tour.ApplyDefaults()

		if tour.Slug != "the-forest-hiker" {
			t.Errorf("expected slug the-forest-hiker, got %q", tour.Slug)
		}
		if tour.RatingsAverage != 4.5 {
			t.Errorf("expected default rating 4.5, got %v", tour.RatingsAverage)
		}
		if tour.CreatedAt.IsZero() {
			t.Error("expected createdAt to be set")
		}
	})

	t.Run("existing rating is rounded, not replaced", func(t *testing.T) {
		tour := validTour()
		tour.RatingsAverage = 4.666666
		tour.ApplyDefaults()

		if tour.RatingsAverage != 4.7 {
			t.Errorf("expected 4.7, got %v", tour.RatingsAverage)
		}
	})
}

func TestRoundRating(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{4.666666, 4.7},
		{4.5, 4.5},
		{3.24, 3.2},
		{1, 1},
	}

	for _, tc := range cases {
		if got := RoundRating(tc.in); got != tc.want {
			t.Errorf("RoundRating(%v) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestTourMarshalJSON(t *testing.T) {
	tour := validTour()
	tour.ApplyDefaults()

	raw, err := json.Marshal(tour)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded["durationWeeks"] != 1.0 {
		t.Errorf("expected durationWeeks 1, got %v", decoded["durationWeeks"])
	}
	if _, leaked := decoded["reviews"]; leaked {
		t.Error("expected empty reviews to be omitted")
	}
}
