package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/Domenick1991/travelplanner/internal/service/places"
	"github.com/gin-gonic/gin"
)

type PlacesHandler struct {
	service places.PlacesUseCase
}

type poiQuery struct {
	Latitude   *float64 `form:"latitude"`
	Longitude  *float64 `form:"longitude"`
	Radius     int      `form:"radius"`
	Categories string   `form:"categories"`
}

func NewPlacesHandler(service places.PlacesUseCase) *PlacesHandler {
	return &PlacesHandler{service: service}
}

func (h *PlacesHandler) Register(router *gin.RouterGroup) {
	router.GET("/pois", h.pointsOfInterest)
	router.GET("/locations", h.locations)
}

func (h *PlacesHandler) pointsOfInterest(c *gin.Context) {
	var q poiQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid query: "+err.Error())
		return
	}
	if q.Latitude == nil || q.Longitude == nil {
		badRequest(c, "latitude and longitude are required")
		return
	}

	var categories []string
	if q.Categories != "" {
		categories = strings.Split(q.Categories, ",")
	}

	pois, err := h.service.PointsOfInterest(c.Request.Context(), domain.POIParams{
		Latitude:   *q.Latitude,
		Longitude:  *q.Longitude,
		Radius:     q.Radius,
		Categories: categories,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pois})
}

func (h *PlacesHandler) locations(c *gin.Context) {
	locations, err := h.service.Locations(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": locations})
}
