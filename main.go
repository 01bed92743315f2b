package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avelez/postboard-be/internal/api"
	apigraphql "github.com/avelez/postboard-be/internal/api/graphql"
	"github.com/avelez/postboard-be/internal/auth"
	"github.com/avelez/postboard-be/internal/config"
	"github.com/avelez/postboard-be/internal/database"
	"github.com/avelez/postboard-be/internal/logger"
	"github.com/avelez/postboard-be/internal/services"
	"github.com/avelez/postboard-be/internal/store"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from database")
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	userRepo := store.NewUserRepo(db)
	postRepo := store.NewPostRepo(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database indexes")
	}

	// Set up services
	tokenCodec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(userRepo, tokenCodec)
	sessionService := services.NewSessionService(tokenCodec, userRepo)
	postService := services.NewPostService(postRepo)

	// Set up the GraphQL schema and router
	resolver := apigraphql.NewResolver(userService, postService, sessionService, tokenCodec)
	schema, err := apigraphql.NewSchema(resolver)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse GraphQL schema")
	}
	router := api.NewRouter(schema)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
