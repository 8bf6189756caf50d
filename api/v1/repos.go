package v1

import "github.com/fitaafita/backend/repositories"

// Shared repository instances for the handlers
var (
	tourRepo    = repositories.NewTourRepository()
	userRepo    = repositories.NewUserRepository()
	reviewRepo  = repositories.NewReviewRepository()
	bookingRepo = repositories.NewBookingRepository()
)
