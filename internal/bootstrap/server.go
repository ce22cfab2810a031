package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/travelplanner/api"
	"github.com/Domenick1991/travelplanner/config"
	_ "github.com/Domenick1991/travelplanner/docs"
	"github.com/Domenick1991/travelplanner/internal/service/booking"
	"github.com/Domenick1991/travelplanner/internal/service/flights"
	"github.com/Domenick1991/travelplanner/internal/service/places"
	"github.com/Domenick1991/travelplanner/internal/service/plans"
	"github.com/Domenick1991/travelplanner/internal/service/wishlist"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const shutdownTimeout = 5 * time.Second

type Services struct {
	Flights  flights.FlightUseCase
	Places   places.PlacesUseCase
	Bookings booking.BookingUseCase
	Wishlist wishlist.WishlistUseCase
	Plans    plans.PlanUseCase
}

// Run serves the HTTP API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, svc Services) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewHandler(cfg.HTTP, logger, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http %s: %w", cfg.HTTP.Address, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("http server stopped")
		return nil
	}
}

// NewHandler builds the gin router wrapped in CORS.
func NewHandler(cfg config.HTTPConfig, logger *slog.Logger, svc Services) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), api.RequestID(), api.RequestLogger(logger))

	engine.GET("/healthz", api.Health)
	engine.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	public := engine.Group("/api")
	api.NewFlightHandler(svc.Flights).Register(public.Group("/flights"))
	api.NewPlacesHandler(svc.Places).Register(public.Group("/places"))

	private := engine.Group("/api", api.RequireUser(cfg.UserHeader))
	api.NewBookingHandler(svc.Bookings).Register(private.Group("/bookings"))
	api.NewWishlistHandler(svc.Wishlist).Register(private.Group("/wishlist"))
	api.NewPlanHandler(svc.Plans).Register(private.Group("/plans"))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", cfg.UserHeader, api.RequestIDHeader},
		ExposedHeaders: []string{api.RequestIDHeader},
	})
	return corsHandler.Handler(engine)
}
