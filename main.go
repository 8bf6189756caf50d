package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	v1 "github.com/fitaafita/backend/api/v1"
	"github.com/fitaafita/backend/config"
	"github.com/fitaafita/backend/database"
	"github.com/fitaafita/backend/middleware"
)

func main() {
	config.LoadEnv()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if config.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect(config.DatabaseURI())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from database")
		}
	}()

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	// CORS configuration
	origins := strings.Split(config.GetEnv("CORS_ORIGINS", "http://localhost:5173"), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	// Rate limit the whole API surface per client IP
	api := router.Group("/api", middleware.RateLimit(100, time.Hour))
	v1.RegisterRoutes(api.Group("/v1"))

	// Resized tour and user images
	router.Static("/img", "public/img")

	router.NoRoute(middleware.NotFoundHandler)

	port := config.GetEnv("PORT", "3000")
	log.Info().Str("port", port).Msg("🚀 Fita a Fita API starting")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
