package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitaafita/backend/config"
	"github.com/fitaafita/backend/utils"
)

// ErrorHandler is the one place handler failures are turned into responses.
// Handlers push errors with c.Error and return; operational errors keep
// their message, database-layer failures are translated into operational
// ones, and everything else is logged and hidden behind a generic message
// unless the app runs in development mode.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := translateError(err)

		if appErr.StatusCode >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
			if config.IsDevelopment() {
				c.JSON(appErr.StatusCode, gin.H{
					"status":  appErr.Status(),
					"message": appErr.Message,
					"error":   err.Error(),
				})
				return
			}
			c.JSON(appErr.StatusCode, gin.H{
				"status":  "error",
				"message": "Something went very wrong",
			})
			return
		}

		c.JSON(appErr.StatusCode, gin.H{
			"status":  appErr.Status(),
			"message": appErr.Message,
		})
	}
}

// translateError maps known failure shapes onto operational errors
func translateError(err error) *utils.AppError {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return utils.NewAppError("No document found with that ID", http.StatusNotFound)
	}
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError("Duplicate field value. Please use another value", http.StatusBadRequest)
	}
	if errors.Is(err, primitive.ErrInvalidHex) {
		return utils.NewAppError("Invalid ID: "+err.Error(), http.StatusBadRequest)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return utils.NewAppError("Invalid input data. "+validationErrs.Error(), http.StatusBadRequest)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) {
		return utils.NewAppError("Invalid request body", http.StatusBadRequest)
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return utils.NewAppError("Your token has expired! Please log in again", http.StatusUnauthorized)
	}
	if errors.Is(err, jwt.ErrTokenMalformed) || errors.Is(err, jwt.ErrSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return utils.NewAppError("Invalid token. Please log in again", http.StatusUnauthorized)
	}

	return utils.NewAppError("Something went very wrong", http.StatusInternalServerError)
}

// NotFoundHandler answers every unmatched route uniformly
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":  "fail",
		"message": "Can't find " + c.Request.URL.Path + " on this server",
	})
}
