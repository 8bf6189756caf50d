package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/dto"
	"github.com/fitaafita/backend/middleware"
	"github.com/fitaafita/backend/models"
	"github.com/fitaafita/backend/services"
	"github.com/fitaafita/backend/utils"
)

// tourScope narrows a nested review listing to its parent tour
func tourScope(c *gin.Context) (bson.M, error) {
	raw := c.Param("id")
	if raw == "" {
		return bson.M{}, nil
	}
	tourID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, err
	}
	return bson.M{"tour": tourID}, nil
}

func bindCreateReview(c *gin.Context) (*models.Review, error) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return req.ToModel()
}

// setTourUserIDs is the pre-save stage defaulting the review's tour from
// the nested route and its author from the authenticated identity.
func setTourUserIDs(c *gin.Context, review *models.Review) error {
	if review.Tour.IsZero() {
		if raw := c.Param("id"); raw != "" {
			tourID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return err
			}
			review.Tour = tourID
		}
	}
	if review.User.IsZero() {
		if user, ok := middleware.CurrentUser(c); ok {
			review.User = user.ID
		}
	}

	review.ApplyDefaults()
	if err := review.Validate(); err != nil {
		return utils.NewAppError(err.Error(), http.StatusBadRequest)
	}
	return nil
}

// recalcRatings is the post-write stage keeping the tour's ratings
// aggregate in sync with its reviews.
func recalcRatings(review *models.Review) {
	services.CalcAverageRatings(review.Tour)
}

func applyReviewUpdate(c *gin.Context, review *models.Review) error {
	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return err
	}
	req.ApplyTo(review)
	return nil
}

func populateReviews(ctx context.Context, reviews []models.Review) error {
	return reviewRepo.Populate(ctx, reviews)
}

// Review CRUD built from the generic factory
var (
	GetAllReviews = getAll(reviewRepo.Repository, tourScope, hooks[models.Review]{decorate: populateReviews})
	GetReview     = getOne(reviewRepo.Repository, hooks[models.Review]{})
	CreateReview  = createOne(reviewRepo.Repository, bindCreateReview, hooks[models.Review]{
		preSave:   setTourUserIDs,
		postWrite: recalcRatings,
	})
	UpdateReview = updateOne(reviewRepo.Repository, applyReviewUpdate, hooks[models.Review]{postWrite: recalcRatings})
	DeleteReview = deleteOne(reviewRepo.Repository, hooks[models.Review]{postWrite: recalcRatings})
)
