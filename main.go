package main

import (
	"Mixtape/config"
	pgconfig "Mixtape/config/postgres"
	_ "Mixtape/config/swagger"
	"Mixtape/middleware"
	"Mixtape/routes"
	"Mixtape/services/game"
	"Mixtape/services/live"
	"Mixtape/services/redis"
	"Mixtape/services/storage"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Mixtape API
// @version 1.0
// @description Gin-Gonic server for the "Mixtape" guessing game API
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := pgconfig.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := pgconfig.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redis.CloseRedis(redisClient)

	photoDir := os.Getenv("PHOTO_DIR")
	if photoDir == "" {
		photoDir = "./uploads"
	}
	photoBaseURL := os.Getenv("PHOTO_BASE_URL")
	if photoBaseURL == "" {
		photoBaseURL = "/photos"
	}
	store, err := storage.NewLocalStore(photoDir, photoBaseURL)
	if err != nil {
		log.Fatalf("Error preparing photo storage: %v", err)
	}

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	// Uploaded photos are served straight from disk
	r.Static("/photos", photoDir)

	hub := live.NewHub()

	routes.SetupRoutes(r, gormDB, redisClient, hub, store, game.WindowFromEnv())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
