package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/date-spark/api-go/config"
	"github.com/date-spark/api-go/routes"
	"github.com/date-spark/api-go/services"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Mock mode runs without a database: storage stays in memory the same
	// way place search stays on the local seed dataset.
	var storage services.Storage
	if cfg.Mode() == config.ModeMock {
		log.Println("Mock mode: in-memory storage, local sample places, no third-party calls")
		storage = services.NewMemoryStorage()
	} else {
		db := config.InitDB()
		storage = services.NewGormStorage(db, logger)
	}

	fetcher := services.NewPlaceFetcher(cfg, services.NewPlaceCache(), logger)
	generator := services.NewIdeaGenerator(cfg, services.NewIdeaCache(), logger)
	location := services.NewStaticLocationProvider(cfg)
	pipeline := services.NewPipeline(location, fetcher, generator, logger)

	// Create a new Gin router
	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type"},
		OptionsResponseStatusCode: http.StatusOK,
	}))

	// Initialize routes
	routes.SetupRoutes(r, cfg, storage, pipeline)

	log.Printf("Starting server on port %s", cfg.Port)
	r.Run(":" + cfg.Port)
}
