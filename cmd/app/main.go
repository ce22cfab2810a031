package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/travelplanner/config"
	"github.com/Domenick1991/travelplanner/internal/amadeus"
	"github.com/Domenick1991/travelplanner/internal/bootstrap"
	"github.com/Domenick1991/travelplanner/internal/cache"
	"github.com/Domenick1991/travelplanner/internal/kafka"
	"github.com/Domenick1991/travelplanner/internal/migrations"
	"github.com/Domenick1991/travelplanner/internal/repository"
	"github.com/Domenick1991/travelplanner/internal/service/booking"
	"github.com/Domenick1991/travelplanner/internal/service/flights"
	"github.com/Domenick1991/travelplanner/internal/service/places"
	"github.com/Domenick1991/travelplanner/internal/service/plans"
	"github.com/Domenick1991/travelplanner/internal/service/wishlist"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if err := migrations.Up(ctx, pool); err != nil {
		return err
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Search.OffersCacheTTL)*time.Second)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unavailable", "addr", cfg.Redis.Addr, "error", err)
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		logger.Warn("kafka unavailable, booking events will be dropped", "error", err)
	}

	provider := amadeus.NewClient(cfg.Amadeus)

	bookingService := booking.NewBookingService(
		repository.NewBookingRepository(pool),
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute,
		time.Duration(cfg.Booking.ConfirmationTTL)*time.Minute,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	return bootstrap.Run(ctx, cfg, logger, bootstrap.Services{
		Flights:  flights.NewFlightService(provider, redisCache),
		Places:   places.NewPlacesService(provider),
		Bookings: bookingService,
		Wishlist: wishlist.NewWishlistService(repository.NewWishlistRepository(pool)),
		Plans:    plans.NewPlanService(repository.NewPlanRepository(pool)),
	})
}
