package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/config"
	"github.com/fitaafita/backend/dto"
	"github.com/fitaafita/backend/middleware"
	"github.com/fitaafita/backend/models"
	"github.com/fitaafita/backend/services"
	"github.com/fitaafita/backend/utils"
)

func bindCreateBooking(c *gin.Context) (*models.Booking, error) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return req.ToModel()
}

func applyBookingUpdate(c *gin.Context, booking *models.Booking) error {
	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return err
	}
	req.ApplyTo(booking)
	return nil
}

func prepareBooking(c *gin.Context, booking *models.Booking) error {
	booking.ApplyDefaults()
	if err := booking.Validate(); err != nil {
		return utils.NewAppError(err.Error(), http.StatusBadRequest)
	}
	return nil
}

// Booking CRUD built from the generic factory
var (
	GetAllBookings = getAll(bookingRepo.Repository, nil, hooks[models.Booking]{})
	GetBooking     = getOne(bookingRepo.Repository, hooks[models.Booking]{})
	CreateBooking  = createOne(bookingRepo.Repository, bindCreateBooking, hooks[models.Booking]{preSave: prepareBooking})
	UpdateBooking  = updateOne(bookingRepo.Repository, applyBookingUpdate, hooks[models.Booking]{})
	DeleteBooking  = deleteOne(bookingRepo.Repository, hooks[models.Booking]{})
)

// GetCheckoutSession opens a payment session for the tour in the path
func GetCheckoutSession(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(utils.NewAppError("You are not logged in! Please log in to get access", http.StatusUnauthorized))
		return
	}

	tourID, err := primitive.ObjectIDFromHex(c.Param("tourId"))
	if err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	frontend := config.GetEnv("FRONTEND_URL", requestBaseURL(c))
	session, err := services.GetCheckoutSession(ctx, tourID, user, frontend)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"session": session,
	})
}

// CreateBookingCheckout records the booking encoded in the success redirect
// query string, then forwards the visitor to the frontend with the query
// stripped. The query is trusted as-is until provider webhooks are wired up.
func CreateBookingCheckout(c *gin.Context) {
	tourParam := c.Query("tour")
	userParam := c.Query("user")
	priceParam := c.Query("price")

	frontend := config.GetEnv("FRONTEND_URL", requestBaseURL(c))

	if tourParam == "" || userParam == "" || priceParam == "" {
		c.Redirect(http.StatusFound, frontend+"/")
		return
	}

	tourID, err := primitive.ObjectIDFromHex(tourParam)
	if err != nil {
		c.Error(err)
		return
	}
	userID, err := primitive.ObjectIDFromHex(userParam)
	if err != nil {
		c.Error(err)
		return
	}
	price, err := strconv.ParseFloat(priceParam, 64)
	if err != nil {
		c.Error(utils.NewAppError("Invalid price", http.StatusBadRequest))
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	if _, err := services.CreateCheckoutBooking(ctx, tourID, userID, price); err != nil {
		c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, frontend+"/")
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"service": "fita-a-fita-api",
			"time":    time.Now().UTC().Format(time.RFC3339),
		},
	})
}
