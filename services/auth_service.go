package services

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fitaafita/backend/config"
	"github.com/fitaafita/backend/dto"
	"github.com/fitaafita/backend/models"
	"github.com/fitaafita/backend/utils"
)

// Signup creates a new user account, issues an email confirmation token and
// dispatches the confirmation mail. The mail failing does not fail the
// signup.
func Signup(ctx context.Context, req dto.SignupRequest, confirmURLBase string) (*models.User, error) {
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

	confirmToken, err := user.CreateEmailConfirmToken()
	if err != nil {
		return nil, err
	}

	if err := userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	url := confirmURLBase + "/api/v1/users/confirmEmail/" + confirmToken
	if err := SendConfirmationEmail(user, url); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to send confirmation email")
	}

	return user, nil
}

// Login authenticates a user by email and password
func Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil || !user.CorrectPassword(password) {
		return nil, utils.NewAppError("Incorrect email or password", http.StatusUnauthorized)
	}
	return user, nil
}

// GenerateToken signs a JWT for a user
func GenerateToken(userID string) (string, error) {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return "", errors.New("JWT_SECRET not set in environment")
	}

	expiresIn, err := time.ParseDuration(config.GetEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		expiresIn = 24 * time.Hour
	}

	claims := dto.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// ValidateToken parses and verifies a JWT, returning its claims
func ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// CookieMaxAge is how long the jwt cookie stays valid, in seconds.
// JWT_COOKIE_EXPIRES_IN is expressed in days.
func CookieMaxAge() int {
	days, err := strconv.Atoi(config.GetEnv("JWT_COOKIE_EXPIRES_IN", "90"))
	if err != nil || days < 1 {
		days = 90
	}
	return days * 24 * 60 * 60
}

// ForgotPassword issues a password reset token for the account behind the
// email and mails it. The plain token is also returned for the response, the
// way the original API exposes it.
func ForgotPassword(ctx context.Context, email, resetURLBase string) (string, error) {
	user, err := userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", utils.NewAppError("There is no user with email address", http.StatusNotFound)
	}

	resetToken, err := user.CreatePasswordResetToken()
	if err != nil {
		return "", err
	}

	if _, err := userRepo.SetFields(ctx, user.ID, bson.M{
		"passwordResetToken":   user.PasswordResetToken,
		"passwordResetExpires": user.PasswordResetExpires,
	}); err != nil {
		return "", err
	}

	url := resetURLBase + "/api/v1/users/resetPassword/" + resetToken
	if err := SendPasswordResetEmail(user, url); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to send password reset email")
	}

	return resetToken, nil
}

// ResetPassword sets a new password for the holder of an unexpired reset
// token. The password change invalidates every previously issued JWT.
func ResetPassword(ctx context.Context, token, password string) (*models.User, error) {
	user, err := userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return nil, utils.NewAppError("Token is invalid or has expired", http.StatusBadRequest)
	}

	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := userRepo.SavePassword(ctx, user.ID, user.Password); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword changes the password of a logged-in user after checking
// their current one.
func UpdatePassword(ctx context.Context, user *models.User, current, password string) error {
	if !user.CorrectPassword(current) {
		return utils.NewAppError("Your current password is wrong", http.StatusUnauthorized)
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	return userRepo.SavePassword(ctx, user.ID, user.Password)
}

// ConfirmEmail activates the account holding the confirmation token. An
// expired token deletes the half-created account so the email can sign up
// again.
func ConfirmEmail(ctx context.Context, token string) (*models.User, error) {
	user, err := userRepo.FindByConfirmToken(ctx, token)
	if err != nil {
		return nil, utils.NewAppError("Token is invalid or has expired, please sign up again", http.StatusBadRequest)
	}

	if user.EmailConfirmExpires != nil && user.EmailConfirmExpires.Before(time.Now()) {
		if err := userRepo.HardDelete(ctx, user.ID); err != nil {
			log.Error().Err(err).Str("userId", user.ID.Hex()).Msg("failed to remove unconfirmed account")
		}
		return nil, utils.NewAppError("Token is invalid or has expired, please sign up again", http.StatusBadRequest)
	}

	if err := userRepo.ClearConfirmToken(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}
