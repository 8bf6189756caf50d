package models

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty represents tour difficulty levels
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// Location is a GeoJSON point with a display address
type Location struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Day         int       `bson:"day,omitempty" json:"day,omitempty"`
}

// Tour represents a bookable tour
type Tour struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name"`
	Slug            string               `bson:"slug" json:"slug"`
	Duration        int                  `bson:"duration" json:"duration"`
	MaxGroupSize    int                  `bson:"maxGroupSize" json:"maxGroupSize"`
	Difficulty      Difficulty           `bson:"difficulty" json:"difficulty"`
	RatingsAverage  float64              `bson:"ratingsAverage" json:"ratingsAverage"`
	RatingsQuantity int                  `bson:"ratingsQuantity" json:"ratingsQuantity"`
	Price           float64              `bson:"price" json:"price"`
	PriceDiscount   *float64             `bson:"priceDiscount,omitempty" json:"priceDiscount,omitempty"`
	Summary         string               `bson:"summary" json:"summary"`
	Description     string               `bson:"description,omitempty" json:"description,omitempty"`
	ImageCover      string               `bson:"imageCover" json:"imageCover"`
	Images          []string             `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	StartDates      []time.Time          `bson:"startDates,omitempty" json:"startDates,omitempty"`
	SecretTour      bool                 `bson:"secretTour" json:"secretTour"`
	StartLocation   *Location            `bson:"startLocation,omitempty" json:"startLocation,omitempty"`
	Locations       []Location           `bson:"locations,omitempty" json:"locations,omitempty"`
	Guides          []primitive.ObjectID `bson:"guides,omitempty" json:"guides,omitempty"`

	// Populated on detail reads, never persisted
	Reviews []Review `bson:"-" json:"reviews,omitempty"`
}

// SetID stores the database-generated identifier
func (t *Tour) SetID(id primitive.ObjectID) {
	t.ID = id
}

// DurationWeeks is the derived duration in weeks
func (t *Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// MarshalJSON adds the durationWeeks virtual field to the serialized tour
func (t Tour) MarshalJSON() ([]byte, error) {
	type alias Tour
	return json.Marshal(struct {
		alias
		DurationWeeks float64 `json:"durationWeeks"`
	}{
		alias:         alias(t),
		DurationWeeks: t.DurationWeeks(),
	})
}

// ApplyDefaults fills in the values a freshly created tour gets: creation
// time, the 4.5 starting rating, and the slug derived from the name.
func (t *Tour) ApplyDefaults() {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.RatingsAverage == 0 {
		t.RatingsAverage = 4.5
	}
	t.RatingsAverage = RoundRating(t.RatingsAverage)
	t.Slugify()
}

// Slugify derives the slug from the tour name
func (t *Tour) Slugify() {
	t.Slug = slug.Make(t.Name)
}

// Validate checks the cross-field constraints that binding tags can not
// express against the document as a whole. Run on create and after every
// partial update.
func (t *Tour) Validate() error {
	if len(t.Name) < 10 || len(t.Name) > 40 {
		return errors.New("A tour name must have between 10 and 40 characters")
	}
	switch t.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
	default:
		return errors.New("Difficulty is either: easy, medium, difficult")
	}
	if t.RatingsAverage < 1 || t.RatingsAverage > 5 {
		return errors.New("Rating must be between 1.0 and 5.0")
	}
	if t.Price <= 0 {
		return errors.New("A tour must have a price")
	}
	if t.PriceDiscount != nil && *t.PriceDiscount >= t.Price {
		return errors.New("Discount price should be below regular price")
	}
	if t.Summary == "" {
		return errors.New("A tour must have a summary")
	}
	if t.ImageCover == "" {
		return errors.New("A tour must have a cover image")
	}
	return nil
}

// RoundRating rounds a ratings average to one decimal place
func RoundRating(rating float64) float64 {
	return math.Round(rating*10) / 10
}
