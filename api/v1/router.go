package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/fitaafita/backend/middleware"
	"github.com/fitaafita/backend/models"
)

// RegisterRoutes wires every v1 endpoint onto the given group
func RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/health", HealthCheck)

	tours := api.Group("/tours")
	{
		tours.GET("/top-5-tours", AliasTopTours, GetAllTours)
		tours.GET("/tour-stats", GetTourStats)
		tours.GET("/monthly-plan/:year",
			middleware.Protect(),
			middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide),
			GetMonthlyPlan)
		tours.GET("/tours-within/:distance/center/:latlng/unit/:unit", GetToursWithin)
		tours.GET("/distances/:latlng/unit/:unit", GetDistances)

		tours.GET("", GetAllTours)
		tours.POST("",
			middleware.Protect(),
			middleware.RestrictTo(models.RoleAdmin, models.RoleGuide),
			CreateTour)

		tours.GET("/:id", GetTour)
		tours.PATCH("/:id",
			middleware.Protect(),
			middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide),
			UpdateTour)
		tours.DELETE("/:id",
			middleware.Protect(),
			middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide),
			DeleteTour)

		// nested reviews of a tour
		tours.GET("/:id/reviews", middleware.Protect(), GetAllReviews)
		tours.POST("/:id/reviews",
			middleware.Protect(),
			middleware.RestrictTo(models.RoleUser),
			CreateReview)
	}

	users := api.Group("/users")
	{
		users.POST("/signup", Signup)
		users.POST("/login", Login)
		users.GET("/logout", Logout)
		users.GET("/confirmEmail/:token", ConfirmEmail)
		users.POST("/forgotPassword", ForgotPassword)
		users.POST("/resetPassword/:token", ResetPassword)

		me := users.Group("", middleware.Protect())
		{
			me.PATCH("/updateMyPassword", UpdatePassword)
			me.GET("/me", GetMe)
			me.PATCH("/updateMe", UpdateMe)
			me.DELETE("/deleteMe", DeleteMe)
			me.GET("/my-tours", GetMyTours)
		}

		admin := users.Group("", middleware.Protect(),
			middleware.RestrictTo(models.RoleAdmin, models.RoleGuide))
		{
			admin.GET("/:id/bookings", GetUserBookings)
			admin.GET("", GetAllUsers)
			admin.POST("", CreateUser)
			admin.GET("/:id", GetUser)
			admin.PATCH("/:id", UpdateUser)
			admin.DELETE("/:id", DeleteUser)
		}
	}

	reviews := api.Group("/reviews", middleware.Protect())
	{
		reviews.GET("", GetAllReviews)
		reviews.POST("", middleware.RestrictTo(models.RoleUser), CreateReview)
		reviews.GET("/:id", GetReview)
		reviews.PATCH("/:id",
			middleware.RestrictTo(models.RoleUser, models.RoleAdmin),
			UpdateReview)
		reviews.DELETE("/:id",
			middleware.RestrictTo(models.RoleUser, models.RoleAdmin),
			DeleteReview)
	}

	bookings := api.Group("/bookings", middleware.Protect())
	{
		bookings.GET("/checkout-session/:tourId", GetCheckoutSession)
		bookings.GET("/checkout", CreateBookingCheckout)

		crud := bookings.Group("",
			middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide))
		{
			crud.GET("", GetAllBookings)
			crud.POST("", CreateBooking)
			crud.GET("/:id", GetBooking)
			crud.PATCH("/:id", UpdateBooking)
			crud.DELETE("/:id", DeleteBooking)
		}
	}
}
