package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalcAverageRatings recomputes a tour's ratings aggregate from all of its
// surviving reviews and writes it back, falling back to (0, 4.5) when none
// remain. Called in a detached goroutine after every review write, so the
// aggregate is eventually consistent with the reviews: under concurrent
// writes to the same tour the last recomputation wins.
func CalcAverageRatings(tourID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	quantity, average, err := reviewRepo.AggregateRatings(ctx, tourID)
	if err != nil {
		log.Error().Err(err).Str("tourId", tourID.Hex()).Msg("failed to aggregate ratings")
		return
	}

	if err := tourRepo.UpdateRatings(ctx, tourID, quantity, average); err != nil {
		log.Error().Err(err).Str("tourId", tourID.Hex()).Msg("failed to update tour ratings")
	}
}
