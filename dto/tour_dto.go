package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/models"
)

// CreateTourRequest represents the body of a tour creation. The ltfield tag
// keeps any discount strictly below the regular price.
type CreateTourRequest struct {
	Name          string            `json:"name" binding:"required,min=10,max=40"`
	Duration      int               `json:"duration" binding:"required"`
	MaxGroupSize  int               `json:"maxGroupSize" binding:"required"`
	Difficulty    string            `json:"difficulty" binding:"required,oneof=easy medium difficult"`
	Price         float64           `json:"price" binding:"required,gt=0"`
	PriceDiscount *float64          `json:"priceDiscount" binding:"omitempty,ltfield=Price"`
	Summary       string            `json:"summary" binding:"required"`
	Description   string            `json:"description"`
	ImageCover    string            `json:"imageCover" binding:"required"`
	Images        []string          `json:"images"`
	StartDates    []time.Time       `json:"startDates"`
	SecretTour    bool              `json:"secretTour"`
	StartLocation *models.Location  `json:"startLocation"`
	Locations     []models.Location `json:"locations"`
	Guides        []string          `json:"guides"`
}

// ToModel converts the request into a Tour document
func (r *CreateTourRequest) ToModel() (*models.Tour, error) {
	guides, err := parseObjectIDs(r.Guides)
	if err != nil {
		return nil, err
	}

	return &models.Tour{
		Name:          r.Name,
		Duration:      r.Duration,
		MaxGroupSize:  r.MaxGroupSize,
		Difficulty:    models.Difficulty(r.Difficulty),
		Price:         r.Price,
		PriceDiscount: r.PriceDiscount,
		Summary:       r.Summary,
		Description:   r.Description,
		ImageCover:    r.ImageCover,
		Images:        r.Images,
		StartDates:    r.StartDates,
		SecretTour:    r.SecretTour,
		StartLocation: r.StartLocation,
		Locations:     r.Locations,
		Guides:        guides,
	}, nil
}

// UpdateTourRequest represents a partial tour update; nil fields are left
// untouched.
type UpdateTourRequest struct {
	Name          *string           `json:"name" binding:"omitempty,min=10,max=40"`
	Duration      *int              `json:"duration"`
	MaxGroupSize  *int              `json:"maxGroupSize"`
	Difficulty    *string           `json:"difficulty" binding:"omitempty,oneof=easy medium difficult"`
	Price         *float64          `json:"price" binding:"omitempty,gt=0"`
	PriceDiscount *float64          `json:"priceDiscount"`
	Summary       *string           `json:"summary"`
	Description   *string           `json:"description"`
	ImageCover    *string           `json:"imageCover"`
	Images        []string          `json:"images"`
	StartDates    []time.Time       `json:"startDates"`
	SecretTour    *bool             `json:"secretTour"`
	StartLocation *models.Location  `json:"startLocation"`
	Locations     []models.Location `json:"locations"`
	Guides        []string          `json:"guides"`
}

// ApplyTo copies the set fields onto an existing tour. The caller re-runs
// the tour's validation afterwards, so cross-field rules like
// priceDiscount < price hold against the merged document.
func (r *UpdateTourRequest) ApplyTo(tour *models.Tour) error {
	if r.Name != nil {
		tour.Name = *r.Name
		tour.Slugify()
	}
	if r.Duration != nil {
		tour.Duration = *r.Duration
	}
	if r.MaxGroupSize != nil {
		tour.MaxGroupSize = *r.MaxGroupSize
	}
	if r.Difficulty != nil {
		tour.Difficulty = models.Difficulty(*r.Difficulty)
	}
	if r.Price != nil {
		tour.Price = *r.Price
	}
	if r.PriceDiscount != nil {
		tour.PriceDiscount = r.PriceDiscount
	}
	if r.Summary != nil {
		tour.Summary = *r.Summary
	}
	if r.Description != nil {
		tour.Description = *r.Description
	}
	if r.ImageCover != nil {
		tour.ImageCover = *r.ImageCover
	}
	if r.Images != nil {
		tour.Images = r.Images
	}
	if r.StartDates != nil {
		tour.StartDates = r.StartDates
	}
	if r.SecretTour != nil {
		tour.SecretTour = *r.SecretTour
	}
	if r.StartLocation != nil {
		tour.StartLocation = r.StartLocation
	}
	if r.Locations != nil {
		tour.Locations = r.Locations
	}
	if r.Guides != nil {
		guides, err := parseObjectIDs(r.Guides)
		if err != nil {
			return err
		}
		tour.Guides = guides
	}
	return nil
}

func parseObjectIDs(raw []string) ([]primitive.ObjectID, error) {
	if raw == nil {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
