package scans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farmassist-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the scans service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches scan routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/scans", h.createScan)
	rg.GET("/scans", h.listScans)
}

// RegisterLegacyRoutes attaches the route name older app builds still call.
func (h *Handler) RegisterLegacyRoutes(r gin.IRoutes) {
	r.POST("/upload-image", h.createScan)
}

type uploadRequest struct {
	FileData string  `json:"fileData"`
	FileName string  `json:"fileName"`
	FileType string  `json:"fileType"`
	UserID   *string `json:"userId"`
}

// createScan always answers 200 so the app can uniformly read a body: a
// real result, or an error message with the fixed error analysis attached.
func (h *Handler) createScan(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		uploadError(c, "invalid request body")
		return
	}
	if req.FileData == "" {
		uploadError(c, "fileData is required")
		return
	}

	userID := ""
	if req.UserID != nil {
		userID = *req.UserID
	}

	scan, err := h.Svc.CreateScan(c.Request.Context(), userID, Upload{
		FileData: req.FileData,
		FileName: req.FileName,
		FileType: req.FileType,
	})
	if err != nil {
		if errors.Is(err, ErrBadImage) {
			uploadError(c, "fileData is not a valid image payload")
			return
		}
		uploadError(c, "failed to process image")
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"imageUrl":        scan.ImageURL,
		"diseaseAnalysis": scan.Analysis,
	})
}

func uploadError(c *gin.Context, msg string) {
	respond.JSON(c, http.StatusOK, gin.H{
		"error":           msg,
		"diseaseAnalysis": ErrorResult(),
	})
}

func (h *Handler) listScans(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId is required", nil)
		return
	}

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	scans, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list scans", nil)
		return
	}

	resp := make([]gin.H, 0, len(scans))
	for _, s := range scans {
		resp = append(resp, gin.H{
			"id":              s.ID,
			"imageUrl":        s.ImageURL,
			"diseaseAnalysis": s.Analysis,
			"createdAt":       s.CreatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, resp)
}
