package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitaafita/backend/config"
	"github.com/fitaafita/backend/dto"
	"github.com/fitaafita/backend/middleware"
	"github.com/fitaafita/backend/models"
	"github.com/fitaafita/backend/services"
	"github.com/fitaafita/backend/utils"
)

// requestBaseURL reconstructs the externally visible origin for links placed
// in emails.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// createSendToken signs a JWT for the user, sets it as the HTTP-only jwt
// cookie and sends the user back in the response envelope.
func createSendToken(c *gin.Context, user *models.User, statusCode int) {
	token, err := services.GenerateToken(user.ID.Hex())
	if err != nil {
		c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.CookieName, token, services.CookieMaxAge(), "/", "", !config.IsDevelopment(), true)

	c.JSON(statusCode, gin.H{
		"status": "success",
		"data":   user,
	})
}

// Signup registers a new user account and mails a confirmation link
func Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	if _, err := services.Signup(ctx, req, requestBaseURL(c)); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success"})
}

// Login authenticates by email and password and issues the jwt cookie
func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	user, err := services.Login(ctx, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	createSendToken(c, user, http.StatusOK)
}

// Logout overwrites the jwt cookie with a short-lived placeholder
func Logout(c *gin.Context) {
	c.SetCookie(middleware.CookieName, "loggedout", 10, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ForgotPassword issues a password reset token and mails it
func ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	token, err := services.ForgotPassword(ctx, req.Email, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Token sent to email!",
		"token":   token,
	})
}

// ResetPassword sets a new password using an emailed reset token and logs
// the user in.
func ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	user, err := services.ResetPassword(ctx, c.Param("token"), req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	createSendToken(c, user, http.StatusOK)
}

// UpdatePassword changes the logged-in user's password and reissues the
// cookie.
func UpdatePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(utils.NewAppError("There is no user logged in", http.StatusNotFound))
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := opCtx(c)
	defer cancel()

	if err := services.UpdatePassword(ctx, user, req.PasswordCurrent, req.Password); err != nil {
		c.Error(err)
		return
	}

	createSendToken(c, user, http.StatusOK)
}

// ConfirmEmail activates the account behind an emailed confirmation token,
// logs the visitor in and sends them to their profile.
func ConfirmEmail(c *gin.Context) {
	ctx, cancel := opCtx(c)
	defer cancel()

	user, err := services.ConfirmEmail(ctx, c.Param("token"))
	if err != nil {
		c.Error(err)
		return
	}

	token, err := services.GenerateToken(user.ID.Hex())
	if err != nil {
		c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.CookieName, token, services.CookieMaxAge(), "/", "", !config.IsDevelopment(), true)
	c.Redirect(http.StatusFound, "/me")
}
