package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
)

// Booking holds a snapshot of the offer the user picked; the offer itself is never re-fetched.
type Booking struct {
	ID         int64
	Token      string
	UserID     string
	OfferID    string
	Offer      EnrichedOffer
	TotalPrice string
	Currency   string
	Email      string
	Status     BookingStatus
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
