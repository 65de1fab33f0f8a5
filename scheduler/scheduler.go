package main

import (
	"gocoach/pkg/config"
	"gocoach/pkg/logger"
	"gocoach/scheduler/jobs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
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

	jobLogger, err := logger.CreateLogger()
	if err != nil {
		log.Fatalf("Couldn't create the logger: %v", err)
	}

	log.Println("Starting scheduler.")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Register knowledge content revalidation job - once per day at 4:00 AM.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(4, 0, 0),
			),
		),
		gocron.NewTask(
			jobs.RevalidateContent,
		),
		gocron.WithName("content-revalidation"),
		gocron.WithTags("content"),
		gocron.JobOption(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatalf("Failed to create content job: %v", err)
	}

	// Register log shipping job - once per hour.
	_, err = s.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(
			jobs.ShipLogs,
			jobLogger,
		),
		gocron.WithName("log-shipping"),
		gocron.WithTags("logs"),
	)
	if err != nil {
		log.Fatalf("Failed to create log shipping job: %v", err)
	}

	// Start the scheduler.
	s.Start()

	defer func() {
		// Shutdown the scheduler when main() exits.
		err := s.Shutdown()
		if err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down scheduler.")
}
