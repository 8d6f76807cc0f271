package config

import (
	"os"
	"strconv"
)

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Database configuration struct.
type DatabaseConfiguration struct {
	URL string
}

// Bucket configuration for the upload and report storage.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	UploadBucket string
	ReportBucket string
}

// Upload processing configuration.
type UploadConfiguration struct {
	MaxRows      int
	EventChannel string
}

var (
	Redis    RedisConfiguration
	Database DatabaseConfiguration
	Bucket   BucketConfiguration
	Upload   UploadConfiguration
)

// Load the variables.
func LoadEnv() {
	// Load the Redis configuration.
	Redis.Host = os.Getenv("REDIS_HOST")
	Redis.Port = os.Getenv("REDIS_PORT")
	Redis.Password = os.Getenv("REDIS_PASSWORD")

	// Load the database configuration.
	Database.URL = os.Getenv("DATABASE_URL")

	// Load the bucket configuration.
	Bucket.Region = os.Getenv("BUCKET_REGION")
	Bucket.Endpoint = os.Getenv("BUCKET_ENDPOINT")
	Bucket.AccessKey = os.Getenv("BUCKET_ACCESS_KEY")
	Bucket.AccessSecret = os.Getenv("BUCKET_ACCESS_SECRET")
	Bucket.UploadBucket = os.Getenv("BUCKET_UPLOAD")
	Bucket.ReportBucket = os.Getenv("BUCKET_REPORT")

	// Load the upload processing configuration.
	Upload.MaxRows = getEnvInt("UPLOAD_MAX_ROWS", 5000)
	Upload.EventChannel = getEnvDefault("UPLOAD_EVENT_CHANNEL", "fixtures:published")
}

// Get a integer environment variable with a default value.
func getEnvInt(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}

	return parsed
}

// Get a string environment variable with a default value.
func getEnvDefault(key string, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	return value
}
