package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"eventrewards/config"
	"eventrewards/internal/adapters/auth"
	"eventrewards/internal/adapters/identity"
	"eventrewards/internal/app"
	delivery "eventrewards/internal/delivery/http"
	"eventrewards/internal/delivery/http/controllers"
	"eventrewards/internal/delivery/http/middleware"
	"eventrewards/internal/repository/postgres"
	"eventrewards/internal/services"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger("event")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := app.OpenDB(ctx, cfg.DBUrl, postgres.EventMigrations())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var client redis.Cmdable
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("parse REDIS_URL: %v", err)
		}
		rc := redis.NewClient(opts)
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, cache reads will miss", "err", err)
		}
		client = rc
	}
	repos := app.NewEventRepositories(db, client, cfg.EventCacheTTL, logger)

	gateway := identity.NewHTTPGateway(
		cfg.IdentityURL,
		&http.Client{Timeout: cfg.IdentityTimeout},
		auth.NewJWTIssuer(cfg.ServiceSecret),
	)
	eventService := services.NewEventService(repos.Events, repos.Rewards, repos.Ledger, cfg.RequestTimeout)
	rewardService := services.NewRewardService(repos.SagaEvents, repos.SagaRewards, repos.Ledger, gateway, logger)

	mux := delivery.NewEventRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewRewardRequestController(logger, rewardService, eventService),
		auth.NewJWTVerifier(cfg.JWTSecret),
		logger,
	)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux)),
	}
	if err := app.Serve(ctx, srv, logger); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
