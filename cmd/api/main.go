package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"invest-sim/internal/api/handlers"
	"invest-sim/internal/api/middleware"
	"invest-sim/internal/config"
	"invest-sim/internal/data"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := config.Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		cfg = loaded
		log.Printf("Loaded config from %s", path)
	}

	client := data.NewYahooClient(cfg.Provider.BaseURL, cfg.Provider.Timeout())
	watchlist := data.NewWatchlist(cfg.Watchlist)
	store := handlers.NewResultStore(time.Hour)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	simulateHandler := handlers.NewSimulateHandler(client, cfg, store)
	watchlistHandler := handlers.NewWatchlistHandler(watchlist)
	rankHandler := handlers.NewRankHandler(client, cfg, watchlist)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate/passive", simulateHandler.RunPassive)
		api.POST("/simulate/crossover", simulateHandler.RunCrossover)
		api.POST("/simulate/momentum", simulateHandler.RunMomentum)
		api.POST("/simulate/protective-put", simulateHandler.RunProtectivePut)
		api.POST("/simulate/bull-call", simulateHandler.RunBullCall)
		api.GET("/simulations/:id/ledger", simulateHandler.GetLedger)

		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/rank", rankHandler.Rank)

		api.GET("/watchlist", watchlistHandler.List)
		api.POST("/watchlist", watchlistHandler.Add)
		api.DELETE("/watchlist/:ticker", watchlistHandler.Remove)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
