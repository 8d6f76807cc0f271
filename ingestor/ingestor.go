package main

import (
	"context"
	"flag"
	"fixtureloader/ingestor/blob"
	"fixtureloader/ingestor/events"
	"fixtureloader/ingestor/upload"
	"fixtureloader/pkg/config"
	"fixtureloader/pkg/database"
	"fixtureloader/pkg/logger"
	"fixtureloader/pkg/redis"
	"fmt"
	"log"
	"os"

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

	seasonID := flag.Uint("season", 0, "id of the season the upload belongs to")
	competitionType := flag.String("competition-type", "", "competition type applied to the created games")
	filePath := flag.String("file", "", "path of a local upload file")
	objectKey := flag.String("key", "", "object key of the upload on the bucket")
	flag.Parse()

	if *seasonID == 0 {
		log.Fatal("a season id must be provided")
	}
	if *filePath == "" && *objectKey == "" {
		log.Fatal("either a local file or a object key must be provided")
	}

	db, err := database.NewConnection()
	if err != nil {
		log.Fatal(err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal(err)
	}

	reportLogger, err := logger.CreateLogger()
	if err != nil {
		log.Fatal(err)
	}

	redisClient := redis.GetClient()
	defer redisClient.Close()

	service := upload.NewService(&upload.ServiceDeps{
		DB:      db,
		Redis:   redisClient,
		Fetcher: blob.NewClient(),
		Emitter: events.NewEmitter(redisClient),
		Logger:  reportLogger,
	})

	request := &upload.ProcessRequest{
		SeasonID:        *seasonID,
		CompetitionType: *competitionType,
		ObjectKey:       *objectKey,
	}

	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			log.Fatal(err)
		}
		request.Data = data
	}

	result, err := service.ProcessUpload(context.Background(), request)
	if err != nil {
		log.Fatal(err)
	}

	printSummary(result)
	if !result.Accepted {
		os.Exit(1)
	}
}

// Print the outcome of the run.
func printSummary(result *upload.ProcessResult) {
	if !result.Accepted {
		fmt.Printf("upload rejected: %d rows, %d violations\n", result.RowCount, len(result.Violations))
		for _, violation := range result.Violations {
			fmt.Println("  " + violation.String())
		}
		return
	}

	fmt.Printf("upload accepted: %d rows, %d grades, %d teams, %d games\n",
		result.RowCount, len(result.GradeIDs), len(result.TeamIDs), len(result.GameIDs))
	if result.ReportKey != "" {
		fmt.Printf("processing report stored at %s\n", result.ReportKey)
	}
}
