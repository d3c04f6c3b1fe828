package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nsahni/trendwire/internal/aggregator"
	"github.com/nsahni/trendwire/internal/api"
	"github.com/nsahni/trendwire/internal/config"
	"github.com/nsahni/trendwire/internal/pexels"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	var images *pexels.Client
	if cfg.PexelsAPIKey != "" {
		images = pexels.NewClient(cfg.PexelsAPIKey)
	} else {
		log.Println("warn: PEXELS_API_KEY not set, /generate-image will fail")
	}

	agg := aggregator.New(cfg)

	r := gin.Default()
	api.NewServer(agg, images).RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
