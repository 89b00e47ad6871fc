package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"civicreport-be/auth"
	"civicreport-be/config"
	"civicreport-be/controllers"
	"civicreport-be/middlewares"
	"civicreport-be/routes"
	"civicreport-be/storage"
	"civicreport-be/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	var redisClient *redis.Client
	if cfg.RedisAddress != "" {
		redisClient, err = config.ConnectRedis(cfg.RedisAddress, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis")
	}

	blobs, err := openBlobStore(cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}

	issueStore := store.NewIssueStore(blobs)
	if err := issueStore.Load(ctx); err != nil {
		log.Fatalf("Failed to load issues: %v", err)
	}

	provider := auth.NewProvider(blobs)
	if err := provider.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	if err := provider.Init(ctx); err != nil {
		log.Fatalf("Failed to restore session: %v", err)
	}

	production := os.Getenv("GO_ENV") == "production"

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middlewares.ResolveSession(cfg.JWTSecret))

	authController := &controllers.AuthController{
		Provider:  provider,
		JWTSecret: cfg.JWTSecret,
		Secure:    production,
	}
	issueController := &controllers.IssueController{Store: issueStore}
	adminController := &controllers.AdminController{Store: issueStore}

	var limiter gin.HandlerFunc
	if redisClient != nil {
		limiter = middlewares.IssueRateLimiter(redisClient, cfg.IssueRateLimit)
	}

	routes.AuthRoutes(r, authController)
	routes.IssueRoutes(r, issueController, provider, limiter)
	routes.AdminRoutes(r, adminController, provider)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func openBlobStore(cfg config.Config, redisClient *redis.Client) (storage.BlobStore, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		return storage.NewRedisStore(redisClient), nil
	case config.BackendMongo:
		db, err := config.ConnectDB(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		log.Println("Connected to MongoDB!")
		return storage.NewMongoStore(db), nil
	default:
		return storage.NewFileStore(cfg.DataDir)
	}
}
