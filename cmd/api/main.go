package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"collision-dashboard-api/config"
	"collision-dashboard-api/dataset"
	"collision-dashboard-api/handlers"
	"collision-dashboard-api/middleware"
	"collision-dashboard-api/models"
	"collision-dashboard-api/services"
	"collision-dashboard-api/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Database is required when it backs the dataset; otherwise it only
	// enables the auth surface and the API degrades without it.
	db := connectDatabase(cfg)
	if cfg.Data.Source == config.SourcePostgres && db == nil {
		log.Fatalf("DATA_SOURCE=postgres but database is unreachable")
	}

	// Load the immutable dataset once; a load failure is fatal.
	records, err := loadRecords(cfg, db)
	if err != nil {
		log.Fatalf("Failed to load collision dataset: %v", err)
	}
	store := dataset.NewStore(records)
	log.Printf("Loaded %d collision records from %s source", store.Len(), cfg.Data.Source)

	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
		cache = services.NewNoopCache()
	}
	defer cache.Close()

	var authService *services.AuthService
	if db != nil {
		authService = services.NewAuthService(cfg.JWT)
	}

	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	router.GET("/", web.Dashboard())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "UP",
			"records": store.Len(),
			"cache":   cache.Available(),
			"auth":    authService != nil,
		})
	})

	collisions := handlers.NewCollisionsHandler(store, cache)
	aggregates := handlers.NewAggregatesHandler(store, cache)
	mapData := handlers.NewMapHandler(store)

	api := router.Group("/api/v1")
	{
		api.GET("/collisions", collisions.List)
		api.GET("/map/points", mapData.Points)
		api.GET("/aggregates/hourly", aggregates.Hourly)
		api.GET("/aggregates/weekday", aggregates.Weekday)
		api.GET("/aggregates/borough-factor", aggregates.BoroughFactor)
		api.GET("/aggregates/boroughs", aggregates.Boroughs)
		api.GET("/aggregates/daily", aggregates.Daily)
		api.GET("/aggregates/heatmap", aggregates.Heatmap)
		api.GET("/aggregates/minutes", aggregates.Minutes)
		api.GET("/aggregates/streets", aggregates.Streets)
		api.GET("/aggregates/severity-flows", aggregates.SeverityFlows)
		api.GET("/ws/live", handlers.LiveFilter(store, authService))
	}

	if authService != nil {
		auth := handlers.NewAuthHandler(db, authService)
		api.POST("/auth/register", auth.Register)
		api.POST("/auth/login", auth.Login)
		api.POST("/auth/logout", auth.Logout)
	} else {
		log.Println("No database connection, auth endpoints disabled")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func connectDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Printf("Warning: could not connect to database: %v", err)
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		log.Printf("Warning: database unreachable, continuing without it")
		return nil
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Printf("Warning: user table migration failed: %v", err)
	}
	return db
}

func loadRecords(cfg *config.Config, db *gorm.DB) ([]models.Collision, error) {
	if cfg.Data.Source == config.SourcePostgres {
		return dataset.LoadPostgres(db, cfg.Data.MaxRows)
	}

	if cfg.Data.URL != "" {
		if _, err := os.Stat(cfg.Data.Path); os.IsNotExist(err) {
			log.Printf("Dataset file %s missing, downloading from %s", cfg.Data.Path, cfg.Data.URL)
			if err := dataset.Download(context.Background(), cfg.Data.URL, cfg.Data.Path); err != nil {
				return nil, err
			}
		}
	}
	return dataset.LoadCSV(cfg.Data.Path, cfg.Data.MaxRows)
}
