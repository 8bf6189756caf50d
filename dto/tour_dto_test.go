package dto

import (
	"testing"

	"github.com/fitaafita/backend/models"
)

func TestUpdateTourApplyTo(t *testing.T) {
	base := func() *models.Tour {
		tour := &models.Tour{
			Name:           "The Forest Hiker",
			Duration:       7,
			Difficulty:     models.DifficultyEasy,
			RatingsAverage: 4.5,
			Price:          497,
			Summary:        "A walk in the woods",
			ImageCover:     "cover.jpg",
		}
		tour.Slugify()
		return tour
	}

	t.Run("nil fields leave the tour untouched", func(t *testing.T) {
		tour := base()
		req := UpdateTourRequest{}

		if err := req.ApplyTo(tour); err != nil {
			t.Fatalf("ApplyTo failed: %v", err)
		}
		if tour.Name != "The Forest Hiker" || tour.Price != 497 {
			t.Errorf("unexpected mutation: %+v", tour)
		}
	})

	t.Run("name change regenerates the slug", func(t *testing.T) {
		tour := base()
		name := "The Mountain Climber"
		req := UpdateTourRequest{Name: &name}

		if err := req.ApplyTo(tour); err != nil {
			t.Fatalf("ApplyTo failed: %v", err)
		}
		if tour.Slug != "the-mountain-climber" {
			t.Errorf("expected regenerated slug, got %q", tour.Slug)
		}
	})

	t.Run("price-only change survives validation against discount", func(t *testing.T) {
		tour := base()
		discount := 400.0
		tour.PriceDiscount = &discount

		price := 300.0
		req := UpdateTourRequest{Price: &price}
		if err := req.ApplyTo(tour); err != nil {
			t.Fatalf("ApplyTo failed: %v", err)
		}

		if err := tour.Validate(); err == nil {
			t.Error("expected merged document to fail the discount rule")
		}
	})

	t.Run("bad guide id rejected", func(t *testing.T) {
		tour := base()
		req := UpdateTourRequest{Guides: []string{"not-an-object-id"}}

		if err := req.ApplyTo(tour); err == nil {
			t.Error("expected ObjectID parse error")
		}
	})
}

func TestCreateTourToModel(t *testing.T) {
	req := CreateTourRequest{
		Name:       "The Forest Hiker",
		Duration:   7,
		Difficulty: "easy",
		Price:      497,
		Summary:    "A walk in the woods",
		ImageCover: "cover.jpg",
		Guides:     []string{"65f1c0ffee0000000000abcd"},
	}

	tour, err := req.ToModel()
	if err != nil {
		t.Fatalf("ToModel failed: %v", err)
	}

	if tour.Difficulty != models.DifficultyEasy {
		t.Errorf("expected easy difficulty, got %q", tour.Difficulty)
	}
	if len(tour.Guides) != 1 || tour.Guides[0].Hex() != "65f1c0ffee0000000000abcd" {
		t.Errorf("guides not parsed: %v", tour.Guides)
	}
}
