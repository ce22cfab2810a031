package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/travelplanner/config"
	"github.com/Domenick1991/travelplanner/internal/cache"
	"github.com/Domenick1991/travelplanner/internal/email"
	"github.com/Domenick1991/travelplanner/internal/kafka"
	"github.com/Domenick1991/travelplanner/internal/repository"
	"github.com/Domenick1991/travelplanner/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
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
		logger.Error("worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Search.OffersCacheTTL)*time.Second)
	defer redisCache.Close()

	bookingService := booking.NewBookingService(
		repository.NewBookingRepository(pool),
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute,
		time.Duration(cfg.Booking.ConfirmationTTL)*time.Minute,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := consumer.Consume(ctx, kafka.BookingEventHandler(sender.Send))
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		return sweepExpired(ctx, logger, bookingService, time.Duration(cfg.Worker.ExpirationSweepMinutes)*time.Minute)
	})

	return g.Wait()
}

func sweepExpired(ctx context.Context, logger *slog.Logger, svc booking.BookingUseCase, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			expired, err := svc.ExpirePendingBookings(ctx)
			if err != nil {
				logger.Error("expire bookings", "error", err)
				continue
			}
			if len(expired) > 0 {
				logger.Info("expired bookings", "count", len(expired))
			}
		}
	}
}
