package api

import (
	"net/http"

	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/Domenick1991/travelplanner/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type searchFlightsQuery struct {
	Origin        string `form:"origin"`
	Destination   string `form:"destination"`
	DepartureDate string `form:"departureDate"`
	ReturnDate    string `form:"returnDate"`
	Adults        int    `form:"adults"`
	Children      int    `form:"children"`
	TravelClass   string `form:"travelClass"`
	NonStop       bool   `form:"nonStop"`
	Currency      string `form:"currency"`
	Max           int    `form:"max"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/search", h.search)
}

func (h *FlightHandler) search(c *gin.Context) {
	var q searchFlightsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid search query: "+err.Error())
		return
	}

	offers, err := h.service.Search(c.Request.Context(), domain.FlightSearchParams{
		Origin:        q.Origin,
		Destination:   q.Destination,
		DepartureDate: q.DepartureDate,
		ReturnDate:    q.ReturnDate,
		Adults:        q.Adults,
		Children:      q.Children,
		TravelClass:   q.TravelClass,
		NonStop:       q.NonStop,
		Currency:      q.Currency,
		Max:           q.Max,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": offers})
}
