package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"chowline/cache"
	"chowline/config"
	"chowline/events"
	"chowline/handlers"
	"chowline/lifecycle"
	"chowline/routes"
	"chowline/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	config.Load()
	config.InitDB()
	config.InitRedis()

	handlers.RegisterValidators()

	handlers.Reviews = cache.NewReviewCache(config.Redis, 30*24*time.Hour)

	images, err := storage.NewImageStore(config.GetEnv("UPLOAD_DIR", "uploads"), "/uploads")
	if err != nil {
		log.Fatal("Failed to init image store:", err)
	}
	handlers.Images = images

	if pub := events.NewKafkaPublisher(os.Getenv("KAFKA_BROKER"), "order-events"); pub != nil {
		lifecycle.SetPublisher(pub)
		defer pub.Close()
	}

	r := gin.Default()

	// CORS middleware for the SPA frontends
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Idempotency-Key")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Chowline Marketplace API",
			"version": "1.0.0",
		})
	})

	r.Static("/uploads", images.Dir())

	routes.SetupRoutes(r)

	port := config.GetEnv("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	log.Printf("Server running on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
