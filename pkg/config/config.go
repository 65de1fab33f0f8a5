package config

import (
	"os"
)

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Bucket configuration for the log shipping.
type BucketConfiguration struct {
	Region       string
	AccessKey    string
	AccessSecret string
	Endpoint     string
	LogBucket    string
}

// Server configuration struct.
type ServerConfiguration struct {
	Port string
}

// Content holds the directories of the static knowledge content.
type ContentConfiguration struct {
	CombosDir   string
	BuildsDir   string
	GuidesDir   string
	PlaybookDir string
}

var (
	Redis   RedisConfiguration
	Bucket  BucketConfiguration
	Server  ServerConfiguration
	Content ContentConfiguration
)

// Load the variables.
func LoadEnv() {
	// Load the Redis configuration.
	Redis.Host = os.Getenv("REDIS_HOST")
	Redis.Port = os.Getenv("REDIS_PORT")
	Redis.Password = os.Getenv("REDIS_PASSWORD")

	// Load the bucket configuration.
	Bucket.Region = os.Getenv("BUCKET_REGION")
	Bucket.AccessKey = os.Getenv("BUCKET_ACCESS_KEY")
	Bucket.AccessSecret = os.Getenv("BUCKET_ACCESS_SECRET")
	Bucket.Endpoint = os.Getenv("BUCKET_ENDPOINT")
	Bucket.LogBucket = os.Getenv("BUCKET_LOG_NAME")

	Server.Port = getEnvDefault("SERVER_PORT", "8080")

	// Load the knowledge content directories.
	Content.CombosDir = getEnvDefault("CONTENT_COMBOS_DIR", "data/champion-combos")
	Content.BuildsDir = getEnvDefault("CONTENT_BUILDS_DIR", "data/champion-builds")
	Content.GuidesDir = getEnvDefault("CONTENT_GUIDES_DIR", "data/champion-guide")
	Content.PlaybookDir = getEnvDefault("CONTENT_PLAYBOOK_DIR", "data/playbook")
}

// Get a env variable with a default fallback.
func getEnvDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
