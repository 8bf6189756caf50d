package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/dto"
	"github.com/fitaafita/backend/middleware"
	"github.com/fitaafita/backend/models"
	"github.com/fitaafita/backend/services"
	"github.com/fitaafita/backend/utils"
)

// userPhotoDir is where resized profile photos are persisted
const userPhotoDir = "public/img/users"

func bindCreateUser(c *gin.Context) (*models.User, error) {
	var req dto.AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Photo:     "default.jpg",
		Role:      role,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	return user, nil
}

func applyUserUpdate(c *gin.Context, user *models.User) error {
	var req dto.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return err
	}
	req.ApplyTo(user)
	return nil
}

// Administrative user CRUD built from the generic factory
var (
	GetAllUsers = getAll(userRepo.Repository, nil, hooks[models.User]{})
	GetUser     = getOne(userRepo.Repository, hooks[models.User]{})
	CreateUser  = createOne(userRepo.Repository, bindCreateUser, hooks[models.User]{})
	UpdateUser  = updateOne(userRepo.Repository, applyUserUpdate, hooks[models.User]{})
	DeleteUser  = deleteOne(userRepo.Repository, hooks[models.User]{})
)

// GetMe rewrites the route to the logged-in user's ID and delegates to the
// generic detail handler.
func GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(utils.NewAppError("You are not logged in! Please log in to get access", http.StatusUnauthorized))
		return
	}

	c.Params = append(c.Params, gin.Param{Key: "id", Value: user.ID.Hex()})
	GetUser(c)
}

// UpdateMe applies a self-service profile update. Password fields are
// rejected; a multipart body may carry a replacement photo.
func UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(utils.NewAppError("You are not logged in! Please log in to get access", http.StatusUnauthorized))
		return
	}

	var req dto.UpdateMeRequest
	photo := ""

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if name := c.PostForm("name"); name != "" {
			req.Name = &name
		}
		if email := c.PostForm("email"); email != "" {
			req.Email = &email
		}
		if c.PostForm("password") != "" || c.PostForm("passwordConfirm") != "" {
			c.Error(utils.NewAppError("This route is not for password updates. Please use /updateMyPassword", http.StatusBadRequest))
			return
		}

		if file, err := c.FormFile("photo"); err == nil {
			name, err := services.SaveResizedJPEG(file, userPhotoDir,
				"user-"+user.ID.Hex(), services.UserPhotoSize, services.UserPhotoSize)
			if err != nil {
				c.Error(err)
				return
			}
			photo = name
		}
	} else {
		// Detect password fields before the typed bind drops them
		var probe map[string]interface{}
		if err := c.ShouldBindBodyWithJSON(&probe); err != nil {
			c.Error(err)
			return
		}
		if _, has := probe["password"]; has {
			c.Error(utils.NewAppError("This route is not for password updates. Please use /updateMyPassword", http.StatusBadRequest))
			return
		}
		if _, has := probe["passwordConfirm"]; has {
			c.Error(utils.NewAppError("This route is not for password updates. Please use /updateMyPassword", http.StatusBadRequest))
			return
		}
		if err := c.ShouldBindBodyWithJSON(&req); err != nil {
			c.Error(err)
			return
		}
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	updated, err := services.UpdateMe(ctx, user.ID, req, photo)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"user": updated},
	})
}

// DeleteMe soft-deletes the logged-in user's account
func DeleteMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(utils.NewAppError("You are not logged in! Please log in to get access", http.StatusUnauthorized))
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	if err := services.DeleteMe(ctx, user.ID); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMyTours lists the tours the logged-in user has booked
func GetMyTours(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(utils.NewAppError("You are not logged in! Please log in to get access", http.StatusUnauthorized))
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	tours, err := services.MyTours(ctx, user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(tours),
		"data":    gin.H{"tours": tours},
	})
}

// GetUserBookings lists all bookings of a given user
func GetUserBookings(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	bookings, err := services.UserBookings(ctx, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(bookings),
		"data":    gin.H{"bookings": bookings},
	})
}
