package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env once at startup. A missing file is fine in deployed
// environments where variables come from the host.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}
}

func EnvMongoURI() string {
	if uri := os.Getenv("MONGOURI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

func EnvDatabaseName() string {
	if name := os.Getenv("MONGO_DB_NAME"); name != "" {
		return name
	}
	return "harvesthub"
}

func EnvPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "4000"
}

func EnvJwtSecret() string {
	return os.Getenv("JWT_SECRET")
}

// EnvRedisAddr is empty when no cache is configured; the catalog service
// then serves every read from Mongo.
func EnvRedisAddr() string {
	return os.Getenv("REDIS_ADDR")
}

func EnvRedisPassword() string {
	return os.Getenv("REDIS_PASSWORD")
}

func EnvRazorpayKeyId() string {
	return os.Getenv("RAZORPAY_KEY_ID")
}

func EnvRazorpayKeySecret() string {
	return os.Getenv("RAZORPAY_KEY_SECRET")
}
