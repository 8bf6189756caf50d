package services

import "github.com/fitaafita/backend/repositories"

// Shared repository instances for the service layer
var (
	userRepo    = repositories.NewUserRepository()
	tourRepo    = repositories.NewTourRepository()
	reviewRepo  = repositories.NewReviewRepository()
	bookingRepo = repositories.NewBookingRepository()
)
