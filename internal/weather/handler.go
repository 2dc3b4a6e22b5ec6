package weather

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmassist-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the weather service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches weather routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/weather", h.lookup)
}

type lookupRequest struct {
	Location string `json:"location"`
	UserID   string `json:"userId"`
}

func (h *Handler) lookup(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Location == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "location is required", nil)
		return
	}

	report, err := h.Svc.Lookup(c.Request.Context(), req.UserID, req.Location)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "failed to fetch weather data", nil)
		return
	}

	respond.JSON(c, http.StatusOK, report)
}
