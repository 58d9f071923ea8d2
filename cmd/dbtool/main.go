package main

import (
	"os"
	"strings"

	"consolidation-planner/internal/adapters/repositories"
	"consolidation-planner/internal/config"
	"consolidation-planner/internal/platform/db"

	log "github.com/sirupsen/logrus"
)

func main() {
	if !config.LoadDotEnv() {
		log.Info("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Info("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Info("Schema ready.")
}
