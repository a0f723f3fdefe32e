package main

import (
	"context"
	"log"
	"net/http"

	_ "notekeeper/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"notekeeper/internal/auth"
	"notekeeper/internal/cache"
	"notekeeper/internal/config"
	"notekeeper/internal/db"
	"notekeeper/internal/handler"
	"notekeeper/internal/repository"
	"notekeeper/internal/router"
	"notekeeper/internal/service"
)

// @title Notekeeper API
// @version 1.0
// @description Notes API with user registration, JWT authentication and ownership-scoped note CRUD.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description The raw token value, no scheme prefix.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	ctx := context.Background()
	mongoDB, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(mongoDB)
	noteRepo := repository.NewNoteRepository(mongoDB)

	// The unique email index backs the duplicate-registration guarantee, so
	// refusing to start without it is the safe choice.
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, cfg.BcryptCost)
	noteService := service.NewNoteService(noteRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)

	// Register routes
	router.Register(e, jwtService, authHandler, noteHandler)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
