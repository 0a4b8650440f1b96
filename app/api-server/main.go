package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/llvasconcellos/devconnector/config"
	"github.com/llvasconcellos/devconnector/internal/api/handlers"
	"github.com/llvasconcellos/devconnector/internal/api/middleware"
	"github.com/llvasconcellos/devconnector/internal/api/routes"
	"github.com/llvasconcellos/devconnector/internal/auth"
	"github.com/llvasconcellos/devconnector/internal/cache"
	"github.com/llvasconcellos/devconnector/internal/logger"
	mongorepo "github.com/llvasconcellos/devconnector/internal/repositories/mongo"
	"github.com/llvasconcellos/devconnector/internal/services"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	client, err := config.ConnectMongo()
	if err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	db := config.MongoDatabase(client)
	if err := config.EnsureMongoIndexes(db); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	l.Info("MongoDB connected")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}
	ttl := time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}
	tokens := auth.NewManager(secret, ttl)

	// optional read cache for the public list endpoints
	var store cache.Cache
	rdb, err := config.ConnectRedis()
	if err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	if rdb != nil {
		store = cache.NewRedisCache(rdb)
		l.Info("Redis connected")
	}

	userRepo := mongorepo.NewUserRepo(db)
	profileRepo := mongorepo.NewProfileRepo(db)
	postRepo := mongorepo.NewPostRepo(db)

	userSvc := services.NewUserService(userRepo, tokens)
	profileSvc := services.NewProfileService(profileRepo, userRepo, store)
	postSvc := services.NewPostService(postRepo, store)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:  tokens,
		Users:   handlers.NewUserHandler(userSvc),
		Profile: handlers.NewProfileHandler(profileSvc),
		Posts:   handlers.NewPostHandler(postSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
