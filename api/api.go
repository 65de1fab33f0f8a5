package main

import (
	"context"
	"gocoach/api/modules"
	"gocoach/api/routes"
	"gocoach/pkg/config"
	"gocoach/pkg/logger"
	"gocoach/pkg/redis"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	config.LoadEnv()

	apiLogger, err := logger.CreateLogger()
	if err != nil {
		log.Fatalf("Error creating the logger: %v", err)
	}

	// Fail fast if the redis used for rate limits and caching is down.
	redisClient := redis.GetClient()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}

	// Create a module with all necessary handlers.
	module, err := modules.NewModule(&modules.ModuleDependencies{
		Redis:  redisClient,
		Logger: apiLogger,
	})
	if err != nil {
		log.Fatalf("Error creating the module: %v", err)
	}
	defer module.Close()

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.AssistantHandler,
	)

	// Start the server.
	router.Run(":" + config.Server.Port)
}
