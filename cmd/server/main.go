package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mangify/internal/auth"
	"github.com/iliyamo/mangify/internal/config"
	"github.com/iliyamo/mangify/internal/database"
	"github.com/iliyamo/mangify/internal/handler"
	"github.com/iliyamo/mangify/internal/middleware"
	"github.com/iliyamo/mangify/internal/queue"
	"github.com/iliyamo/mangify/internal/repository"
	"github.com/iliyamo/mangify/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	client, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("mongodb connect failed: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	cols := database.NewCollections(client, cfg.DatabaseName)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, cols); err != nil {
		cancel()
		log.Fatalf("index bootstrap failed: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(cols.Users)
	mangas := repository.NewMangaRepo(cols.Mangas)

	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTTL)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}
	resolver := auth.NewSessionResolver(codec, users)
	authz := auth.NewAuthorizer()

	cacheCfg := config.LoadCacheConfig()
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache disabled")
	}

	go queue.StartAuditConsumer()

	e := echo.New()
	e.HideBanner = true
	router.Register(e,
		handler.NewAuthHandler(users, codec),
		handler.NewUserHandler(cfg, users, authz),
		handler.NewMangaHandler(mangas, rdb, cacheCfg),
		middleware.Auth(resolver),
		middleware.Cache(cacheCfg, rdb),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
