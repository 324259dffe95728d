package feedback

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"switchplan-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches feedback routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.submit)
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	entry, err := h.Svc.Submit(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name, email, and message are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to store feedback", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"id":      entry.ID,
		"message": "Feedback submitted successfully",
	})
}
