package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/Domenick1991/travelplanner/internal/service/plans"
	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	service plans.PlanUseCase
}

type planResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Destination string            `json:"destination,omitempty"`
	StartDate   string            `json:"startDate,omitempty"`
	EndDate     string            `json:"endDate,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Items       []domain.PlanItem `json:"items"`
	CreatedAt   string            `json:"createdAt,omitempty"`
	UpdatedAt   string            `json:"updatedAt,omitempty"`
}

func NewPlanHandler(service plans.PlanUseCase) *PlanHandler {
	return &PlanHandler{service: service}
}

func (h *PlanHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *PlanHandler) create(c *gin.Context) {
	var req plans.PlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	plan, err := h.service.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPlanResponse(plan))
}

func (h *PlanHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]planResponse, 0, len(list))
	for i := range list {
		out = append(out, toPlanResponse(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *PlanHandler) get(c *gin.Context) {
	plan, err := h.service.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *PlanHandler) update(c *gin.Context) {
	var req plans.PlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	plan, err := h.service.Update(c.Request.Context(), userID(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *PlanHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toPlanResponse(p *domain.Plan) planResponse {
	items := p.Items
	if items == nil {
		items = []domain.PlanItem{}
	}
	resp := planResponse{
		ID:          p.ID,
		Name:        p.Name,
		Destination: p.Destination,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Notes:       p.Notes,
		Items:       items,
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
