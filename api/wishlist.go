package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/Domenick1991/travelplanner/internal/service/wishlist"
	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	service wishlist.WishlistUseCase
}

type wishlistItemResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	RefID     string          `json:"refId"`
	Title     string          `json:"title"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
}

func NewWishlistHandler(service wishlist.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{service: service}
}

func (h *WishlistHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.add)
	router.GET("", h.list)
	router.DELETE("/:id", h.remove)
}

func (h *WishlistHandler) add(c *gin.Context) {
	var req wishlist.AddItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	item, err := h.service.Add(c.Request.Context(), userID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWishlistResponse(item))
}

func (h *WishlistHandler) list(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]wishlistItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toWishlistResponse(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *WishlistHandler) remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toWishlistResponse(item *domain.WishlistItem) wishlistItemResponse {
	resp := wishlistItemResponse{
		ID:      item.ID,
		Kind:    string(item.Kind),
		RefID:   item.RefID,
		Title:   item.Title,
		Payload: item.Payload,
	}
	if !item.CreatedAt.IsZero() {
		resp.CreatedAt = item.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
