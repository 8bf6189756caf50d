package v1

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fitaafita/backend/dto"
	"github.com/fitaafita/backend/models"
	"github.com/fitaafita/backend/repositories"
	"github.com/fitaafita/backend/services"
	"github.com/fitaafita/backend/utils"
)

// tourImageDir is where resized tour images are persisted
const tourImageDir = "public/img/tours"

func bindCreateTour(c *gin.Context) (*models.Tour, error) {
	var req dto.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return req.ToModel()
}

// loadTourReviews eager-loads the tour's reviews for the detail response
func loadTourReviews(ctx context.Context, tour *models.Tour) error {
	reviews, err := reviewRepo.FindByTour(ctx, tour.ID)
	if err != nil {
		return err
	}
	if err := reviewRepo.Populate(ctx, reviews); err != nil {
		return err
	}
	tour.Reviews = reviews
	return nil
}

// applyTourUpdate merges a partial update into a loaded tour. A JSON body
// updates any field; a multipart body replaces the cover image and up to
// three gallery images, resized server-side.
func applyTourUpdate(c *gin.Context, tour *models.Tour) error {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			return utils.NewAppError("Invalid multipart body", http.StatusBadRequest)
		}

		if covers := form.File["imageCover"]; len(covers) > 0 {
			name, err := services.SaveResizedJPEG(covers[0], tourImageDir,
				"tour-"+tour.ID.Hex()+"-cover", services.TourImageWidth, services.TourImageHeight)
			if err != nil {
				return err
			}
			tour.ImageCover = name
		}

		if images := form.File["images"]; len(images) > 0 {
			if len(images) > 3 {
				images = images[:3]
			}
			names := make([]string, 0, len(images))
			for i, file := range images {
				name, err := services.SaveResizedJPEG(file, tourImageDir,
					"tour-"+tour.ID.Hex()+"-"+strconv.Itoa(i+1), services.TourImageWidth, services.TourImageHeight)
				if err != nil {
					return err
				}
				names = append(names, name)
			}
			tour.Images = names
		}

		return nil
	}

	var req dto.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return err
	}
	return req.ApplyTo(tour)
}

// Tour CRUD built from the generic factory
var (
	GetAllTours = getAll(tourRepo.Repository, nil, hooks[models.Tour]{})
	GetTour     = getOne(tourRepo.Repository, hooks[models.Tour]{load: loadTourReviews})
	CreateTour  = createOne(tourRepo.Repository, bindCreateTour, hooks[models.Tour]{
		preSave: func(c *gin.Context, tour *models.Tour) error {
			tour.ApplyDefaults()
			if err := tour.Validate(); err != nil {
				return utils.NewAppError(err.Error(), http.StatusBadRequest)
			}
			return nil
		},
	})
	UpdateTour = updateOne(tourRepo.Repository, applyTourUpdate, hooks[models.Tour]{})
	DeleteTour = deleteOne(tourRepo.Repository, hooks[models.Tour]{})
)

// AliasTopTours presets the listing query to the five best-rated tours
func AliasTopTours(c *gin.Context) {
	query := url.Values{}
	query.Set("limit", "5")
	query.Set("sort", "-ratingsAverage,price")
	query.Set("fields", "name,price,ratingsAverage,summary,difficulty")
	c.Request.URL.RawQuery = query.Encode()
	c.Next()
}

// GetTourStats returns the per-difficulty statistics aggregation
func GetTourStats(c *gin.Context) {
	ctx, cancel := opCtx(c)
	defer cancel()

	stats, err := tourRepo.Stats(ctx)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   stats,
	})
}

// GetMonthlyPlan returns tour-start counts per month of a year
func GetMonthlyPlan(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.Error(utils.NewAppError("Please provide a valid year", http.StatusBadRequest))
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	plan, err := tourRepo.MonthlyPlan(ctx, year)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   plan,
	})
}

// parseLatLng splits a "lat,lng" path segment
func parseLatLng(raw string) (lat, lng float64, err error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, utils.NewAppError("Please provide latitude and longitude in the format lat,lng", http.StatusBadRequest)
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, utils.NewAppError("Please provide latitude and longitude in the format lat,lng", http.StatusBadRequest)
	}
	return lat, lng, nil
}

// GetToursWithin lists tours starting within a radius around a point
func GetToursWithin(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		c.Error(utils.NewAppError("Please provide a valid distance", http.StatusBadRequest))
		return
	}

	lat, lng, err := parseLatLng(c.Param("latlng"))
	if err != nil {
		c.Error(err)
		return
	}

	radius, err := repositories.EarthRadiusFor(distance, c.Param("unit"))
	if err != nil {
		c.Error(utils.NewAppError("Unit must be mi or km", http.StatusBadRequest))
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	tours, err := tourRepo.Within(ctx, lat, lng, radius)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(tours),
		"data":    tours,
	})
}

// GetDistances returns the distance from a point to every tour start
func GetDistances(c *gin.Context) {
	lat, lng, err := parseLatLng(c.Param("latlng"))
	if err != nil {
		c.Error(err)
		return
	}

	multiplier, err := repositories.DistanceMultiplierFor(c.Param("unit"))
	if err != nil {
		c.Error(utils.NewAppError("Unit must be mi or km", http.StatusBadRequest))
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	distances, err := tourRepo.Distances(ctx, lat, lng, multiplier)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   distances,
	})
}
