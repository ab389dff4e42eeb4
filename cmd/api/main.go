package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanchitttt/qkart-backend/internal/auth"
	"github.com/sanchitttt/qkart-backend/internal/cache"
	"github.com/sanchitttt/qkart-backend/internal/cart"
	"github.com/sanchitttt/qkart-backend/internal/catalog"
	"github.com/sanchitttt/qkart-backend/internal/config"
	"github.com/sanchitttt/qkart-backend/internal/db"
	api "github.com/sanchitttt/qkart-backend/internal/http"
	"github.com/sanchitttt/qkart-backend/internal/user"
	"github.com/sanchitttt/qkart-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Options{
		Service: "qkart-backend",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx := context.Background()

	mongoDB, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.Info("connected to MongoDB", zap.String("uri", cfg.MongoURI))

	userRepo := user.NewMongoRepository(mongoDB)
	cartRepo := cart.NewMongoRepository(mongoDB)
	catalogRepo := catalog.NewMongoRepository(mongoDB)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to create user indexes", zap.Error(err))
	}
	if err := cartRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to create cart indexes", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	cartCache := cache.NewRedisCache(redisClient)
	cartService := cart.NewService(cartRepo, catalogRepo, userRepo, cartCache, log)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAccessExpiry)
	authService := auth.NewService(userRepo, cartService, tokens, cfg.DefaultWalletMoney, log)

	router := api.NewRouter(
		api.NewAuthenticator(tokens, userRepo),
		api.NewAuthHandler(authService),
		api.NewUserHandler(userRepo),
		api.NewCartHandler(cartService),
		api.NewProductHandler(catalogRepo),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
