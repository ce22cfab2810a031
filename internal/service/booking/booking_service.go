package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/Domenick1991/travelplanner/internal/kafka"
	"github.com/Domenick1991/travelplanner/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, userID string, input CreateBookingInput) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, userID, token string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID, token string) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, token string) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	ExpirePendingBookings(ctx context.Context) ([]domain.Booking, error)
}

// Cache holds a short lock per (user, offer) so double submits don't create two bookings.
type Cache interface {
	AcquireOfferHold(ctx context.Context, userID, offerID string, ttl time.Duration) (bool, error)
	ReleaseOfferHold(ctx context.Context, userID, offerID string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	holdTTL            time.Duration
	confirmationTTL    time.Duration
	now                func() time.Time
}

type CreateBookingInput struct {
	Offer domain.EnrichedOffer `json:"offer"`
	Email string               `json:"email"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	holdTTL, confirmationTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:        bookings,
		cache:           cache,
		producer:        producer,
		bookingTopic:    bookingTopic,
		holdTTL:         holdTTL,
		confirmationTTL: confirmationTTL,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, userID string, input CreateBookingInput) (*domain.Booking, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if input.Offer.ID == "" {
		return nil, fmt.Errorf("%w: offer id is required", domain.ErrValidation)
	}
	if !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	total, err := strconv.ParseFloat(input.Offer.Price.Total, 64)
	if err != nil || total < 0 {
		return nil, fmt.Errorf("%w: offer price total must be a non-negative decimal", domain.ErrValidation)
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireOfferHold(ctx, userID, input.Offer.ID, s.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: offer is already being booked", domain.ErrConflict)
		}
		locked = true
	}

	expiresIn := s.confirmationTTL
	if expiresIn == 0 {
		expiresIn = s.holdTTL
	}

	booking := &domain.Booking{
		Token:      uuid.NewString(),
		UserID:     userID,
		OfferID:    input.Offer.ID,
		Offer:      input.Offer,
		TotalPrice: input.Offer.Price.Total,
		Currency:   input.Offer.Price.Currency,
		Email:      input.Email,
		ExpiresAt:  s.now().Add(expiresIn),
	}

	if err := s.bookings.CreatePending(ctx, booking); err != nil {
		if locked {
			_ = s.cache.ReleaseOfferHold(ctx, userID, input.Offer.ID)
		}
		return nil, err
	}

	booking.Status = domain.BookingStatusPending
	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, userID, token string) (*domain.Booking, error) {
	current, err := s.bookings.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	// Someone else's booking is reported as missing.
	if current.UserID != userID {
		return nil, fmt.Errorf("booking %s: %w", token, domain.ErrNotFound)
	}
	return current, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) ConfirmBooking(ctx context.Context, userID, token string) (*domain.Booking, error) {
	current, err := s.GetBooking(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("%w: booking is not pending", domain.ErrConflict)
	}
	if !s.now().Before(current.ExpiresAt) {
		return nil, fmt.Errorf("%w: booking hold has expired", domain.ErrConflict)
	}

	updated, err := s.bookings.UpdateStatus(ctx, token, domain.BookingStatusPending, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingConfirmed, updated)
	s.releaseHold(ctx, updated)
	return updated, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, userID, token string) (*domain.Booking, error) {
	current, err := s.GetBooking(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled || current.Status == domain.BookingStatusExpired {
		return current, nil
	}

	updated, err := s.bookings.UpdateStatus(ctx, token, current.Status, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingCancelled, updated)
	s.releaseHold(ctx, updated)
	return updated, nil
}

func (s *BookingService) ExpirePendingBookings(ctx context.Context) ([]domain.Booking, error) {
	expired, err := s.bookings.ExpirePendingBefore(ctx, s.now())
	if err != nil {
		return nil, err
	}
	for i := range expired {
		s.publish(ctx, kafka.EventBookingExpired, &expired[i])
		s.releaseHold(ctx, &expired[i])
	}
	return expired, nil
}

func (s *BookingService) releaseHold(ctx context.Context, b *domain.Booking) {
	if s.cache == nil {
		return
	}
	if err := s.cache.ReleaseOfferHold(ctx, b.UserID, b.OfferID); err != nil {
		slog.WarnContext(ctx, "release offer hold failed", "token", b.Token, "error", err)
	}
}

// publish never fails the request; a lost event only delays a notification.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if err := s.publishEvent(ctx, eventType, booking); err != nil {
		slog.WarnContext(ctx, "publish booking event failed", "type", eventType, "token", booking.Token, "error", err)
	}
}

func (s *BookingService) publishEvent(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		Token:      booking.Token,
		UserID:     booking.UserID,
		OfferID:    booking.OfferID,
		Email:      booking.Email,
		Status:     string(booking.Status),
		TotalPrice: booking.TotalPrice,
		Currency:   booking.Currency,
		Route:      Route(booking.Offer),
		ExpiresAt:  booking.ExpiresAt,
	}
	var errs []error
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Token, event); err != nil {
		errs = append(errs, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Token, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Route renders the outbound itinerary as "ORIG-DEST", or "" without segments.
func Route(offer domain.EnrichedOffer) string {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return ""
	}
	segs := offer.Itineraries[0].Segments
	return segs[0].Departure.IATACode + "-" + segs[len(segs)-1].Arrival.IATACode
}

var _ BookingUseCase = (*BookingService)(nil)
