package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"podcast-hub/internal/catalog"
	"podcast-hub/internal/config"
	"podcast-hub/internal/db"
	apihttp "podcast-hub/internal/http"
	"podcast-hub/internal/repository"
	"podcast-hub/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
	if err := redisClient.Ping(ctxPing).Err(); err != nil {
		cancel()
		logger.Fatal("redis ping failed", zap.Error(err))
	}
	cancel()

	codec := service.NewTokenCodec(
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenLifetimeSec)*time.Second,
		time.Duration(cfg.RefreshTokenLifetimeSec)*time.Second,
	)
	sessions := service.NewRedisSessionRegistry(redisClient)
	authenticator := service.NewTokenAuthenticator(codec, sessions)
	issuer := service.NewTokenIssuer(codec, sessions)

	interactions := repository.NewPgInteractionStore(pool)
	catalogClient := catalog.NewHTTPClient(cfg.ChannelListURL, cfg.PodcastURL)
	aggregation := service.NewAggregationService(catalogClient, interactions)

	podcastHandler := apihttp.NewPodcastHandler(logger, aggregation, interactions)
	authHandler := apihttp.NewAuthHandler(logger, issuer, sessions)
	router := apihttp.NewRouter(logger, podcastHandler, authHandler, apihttp.AuthRequired(authenticator))

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
