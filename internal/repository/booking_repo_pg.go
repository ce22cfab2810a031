package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/jackc/pgx/v5"
)

type BookingRepository interface {
	CreatePending(ctx context.Context, booking *domain.Booking) error
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	// UpdateStatus moves a booking from one status to another. ErrConflict means
	// the booking no longer has the from status.
	UpdateStatus(ctx context.Context, token string, from, to domain.BookingStatus) (*domain.Booking, error)
	ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, token::text, user_id, offer_id, offer, total_price, currency, email, status, expires_at, created_at, updated_at`

func (r *PGBookingRepository) CreatePending(ctx context.Context, booking *domain.Booking) error {
	offer, err := json.Marshal(booking.Offer)
	if err != nil {
		return fmt.Errorf("encode offer snapshot: %w", err)
	}

	booking.Status = domain.BookingStatusPending
	err = r.db.QueryRow(ctx, `INSERT INTO bookings (token, user_id, offer_id, offer, total_price, currency, email, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		booking.Token, booking.UserID, booking.OfferID, offer, booking.TotalPrice, booking.Currency, booking.Email, booking.Status, booking.ExpiresAt).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", mapError(err))
	}
	return nil
}

func (r *PGBookingRepository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE token=$1`, token)
	b, err := scanBooking(row)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", mapError(err))
	}
	return b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("list bookings: scan: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, token string, from, to domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE token=$2 AND status=$3
		RETURNING `+bookingColumns, to, token, from)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update booking %s: %w: status is no longer %s", token, domain.ErrConflict, from)
	}
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", mapError(err))
	}
	return b, nil
}

func (r *PGBookingRepository) ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE status=$2 AND expires_at <= $3 RETURNING `+bookingColumns,
		domain.BookingStatusExpired, domain.BookingStatusPending, deadline)
	if err != nil {
		return nil, fmt.Errorf("expire bookings: %w", err)
	}
	defer rows.Close()

	var expired []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("expire bookings: scan: %w", err)
		}
		expired = append(expired, *b)
	}
	return expired, rows.Err()
}

func scanBooking(s scanner) (*domain.Booking, error) {
	var (
		b     domain.Booking
		offer []byte
	)
	if err := s.Scan(&b.ID, &b.Token, &b.UserID, &b.OfferID, &offer, &b.TotalPrice, &b.Currency, &b.Email, &b.Status, &b.ExpiresAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(offer, &b.Offer); err != nil {
		return nil, fmt.Errorf("decode offer snapshot: %w", err)
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
