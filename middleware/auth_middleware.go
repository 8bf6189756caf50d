package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/models"
	"github.com/fitaafita/backend/repositories"
	"github.com/fitaafita/backend/services"
	"github.com/fitaafita/backend/utils"
)

// CookieName is the cookie carrying the signed credential
const CookieName = "jwt"

const currentUserKey = "currentUser"

var userRepo = repositories.NewUserRepository()

// resolveUser runs the full credential check: cookie present, signature and
// expiry valid, user still exists, password not changed since the token was
// issued. Returns the authenticated user or the reason for rejection.
func resolveUser(c *gin.Context) (*models.User, error) {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" || token == "loggedout" {
		return nil, utils.NewAppError("You are not logged in! Please log in to get access", http.StatusUnauthorized)
	}

	claims, err := services.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := userRepo.FindActiveByID(ctx, userID)
	if err != nil {
		return nil, utils.NewAppError("The user belonging to this token does no longer exist", http.StatusUnauthorized)
	}

	if claims.IssuedAt != nil && user.ChangedPasswordAfter(claims.IssuedAt.Time) {
		return nil, utils.NewAppError("User recently changed password! Please log in again", http.StatusUnauthorized)
	}

	return user, nil
}

// Protect rejects requests without a valid credential and attaches the
// authenticated user to the request context.
func Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// IsLoggedIn is the best-effort variant of Protect: every verification
// failure is swallowed and the request proceeds without an identity.
func IsLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := resolveUser(c); err == nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// RestrictTo permits only the listed roles. Must run after Protect.
func RestrictTo(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Error(utils.NewAppError("You are not logged in! Please log in to get access", http.StatusUnauthorized))
			c.Abort()
			return
		}

		if !RoleAllowed(user.Role, roles) {
			c.Error(utils.NewAppError("You do not have permission to perform this action", http.StatusForbidden))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RoleAllowed reports whether role is in the allow-list
func RoleAllowed(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// CurrentUser returns the authenticated user attached by Protect or
// IsLoggedIn.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
