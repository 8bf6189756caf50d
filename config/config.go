package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from .env file
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
}

// GetEnv gets an environment variable or returns a default value if not present
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// DatabaseURI builds the MongoDB connection string from the DATABASE
// environment variable, substituting the <USER> and <PASSWORD> placeholders.
func DatabaseURI() string {
	uri := os.Getenv("DATABASE")
	uri = strings.ReplaceAll(uri, "<USER>", os.Getenv("DATABASE_USER"))
	uri = strings.ReplaceAll(uri, "<PASSWORD>", os.Getenv("DATABASE_PASSWORD"))
	return uri
}

// IsDevelopment reports whether error responses should include full details
func IsDevelopment() bool {
	return GetEnv("APP_ENV", "production") == "development"
}
