package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/avezina/showbill/internal/config"
	"github.com/avezina/showbill/internal/database"
	"github.com/avezina/showbill/internal/handler"
	"github.com/avezina/showbill/internal/middleware"
	"github.com/avezina/showbill/internal/queue"
	"github.com/avezina/showbill/internal/repository"
	"github.com/avezina/showbill/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)
	userRepo := repository.NewUserRepo(db)

	venues := handler.NewVenueHandler(venueRepo, showRepo)
	artists := handler.NewArtistHandler(artistRepo, showRepo)
	shows := handler.NewShowHandler(showRepo, artistRepo, venueRepo)
	shows.PublishEvents = true
	auth := handler.NewAuthHandler(cfg, userRepo)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = router.ErrorHandler()

	// Redis-backed middleware degrades to pass-through when the server is
	// unreachable at startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	e.Use(middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	var guard echo.MiddlewareFunc
	if cfg.AuthRequired {
		guard = middleware.JWTAuth(cfg.JWTSecret)
	}
	router.RegisterRoutes(e, venues, artists, shows, guard)
	router.RegisterAuth(e, auth)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background consumer mirrors published show.listed events into
	// logs/listing.log.  It maintains its own reconnect loop and exits on
	// shutdown.
	go func() {
		if err := queue.StartListingConsumer(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("listing consumer stopped: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, auth_required=%t)", addr, cfg.Env, cfg.AuthRequired)

	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
