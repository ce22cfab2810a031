package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/Domenick1991/travelplanner/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	Offer domain.EnrichedOffer `json:"offer"`
	Email string               `json:"email"`
}

type bookingResponse struct {
	Token      string               `json:"token"`
	Status     string               `json:"status"`
	OfferID    string               `json:"offer_id"`
	Offer      domain.EnrichedOffer `json:"offer"`
	TotalPrice string               `json:"total_price"`
	Currency   string               `json:"currency"`
	Email      string               `json:"email"`
	ExpiresAt  string               `json:"expires_at"`
	CreatedAt  string               `json:"created_at,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:token", h.get)
	router.PUT("/:token/confirm", h.confirm)
	router.DELETE("/:token", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), userID(c), booking.CreateBookingInput{
		Offer: req.Offer,
		Email: req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), userID(c), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) confirm(c *gin.Context) {
	b, err := h.service.ConfirmBooking(c.Request.Context(), userID(c), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.service.CancelBooking(c.Request.Context(), userID(c), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	resp := bookingResponse{
		Token:      b.Token,
		Status:     string(b.Status),
		OfferID:    b.OfferID,
		Offer:      b.Offer,
		TotalPrice: b.TotalPrice,
		Currency:   b.Currency,
		Email:      b.Email,
		ExpiresAt:  b.ExpiresAt.Format(time.RFC3339),
	}
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = b.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
