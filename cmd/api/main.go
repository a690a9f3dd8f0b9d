// api serves the tariff dataset read-only over HTTP. The dataset is loaded
// once at startup; run cmd/sync and restart to pick up new data.
package main

import (
	"fmt"
	"log"
	"os"

	"tariff-sync/internal/api/handlers"
	"tariff-sync/internal/api/middleware"
	"tariff-sync/internal/config"
	"tariff-sync/internal/data"
	"tariff-sync/internal/model"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Default()
	if path := os.Getenv("TARIFF_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Invalid config %s: %v", path, err)
		}
		cfg = loaded
	}
	if path := os.Getenv("TARIFF_DATASET"); path != "" {
		cfg.Dataset.Path = path
	}

	ds, err := data.LoadDataset(cfg.Dataset.Path)
	if err != nil {
		log.Fatalf("Failed to load dataset %s: %v", cfg.Dataset.Path, err)
	}
	if min, max, ok := ds.Bounds(); ok {
		log.Printf("Loaded %d rows covering %s..%s from %s",
			ds.Len(), min.Format(model.DateLayout), max.Format(model.DateLayout), cfg.Dataset.Path)
	} else {
		log.Printf("Loaded empty dataset from %s", cfg.Dataset.Path)
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	pricesHandler := handlers.NewPricesHandler(ds)
	coverageHandler := handlers.NewCoverageHandler(ds)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "rows": ds.Len()})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/prices", pricesHandler.GetPrices)
		api.GET("/coverage", coverageHandler.GetCoverage)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
