package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postsvc/cache"
	"postsvc/config"
	"postsvc/database"
	"postsvc/handlers"
	"postsvc/middleware"
	"postsvc/repository"
	"postsvc/routes"
	"postsvc/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env first so viper sees it as environment
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	middleware.InitLogger(cfg.LogFile)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis is optional; rate limiting fails open without it
	rdb := cache.NewClient(cfg.RedisURL)
	if rdb != nil {
		defer rdb.Close()
	}

	store, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to set up object store: %v", err)
	}

	posts := repository.NewPostRepository(db, store)
	h := handlers.New(posts, store)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Social Media Post MicroService",
	})

	// Middleware
	prometheus := fiberprometheus.New("postsvc")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	app.Use(middleware.StructuredLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RateLimit(rdb, 300, time.Minute))

	// Setup routes
	routes.Setup(app, h)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
