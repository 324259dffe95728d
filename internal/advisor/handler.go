package advisor

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"switchplan-backend/internal/shared/server/middleware"
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

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat/query", h.query)
	rg.POST("/chat/details", h.details)
	rg.POST("/chat/recommendation", h.recommendation)
	rg.POST("/chat/select", h.selectPlan)
}

type queryRequest struct {
	Message string `json:"message"`
}

type detailsRequest struct {
	Budget          string `json:"budget"`
	DataNeeded      string `json:"dataNeeded"`
	CurrentProvider string `json:"currentProvider"`
	WillingToSwitch string `json:"willingToSwitch"`
	NeedsRoaming    string `json:"needsRoaming"`
}

type selectRequest struct {
	PlanCode string `json:"planCode"`
}

type replyResponse struct {
	Reply     string `json:"reply"`
	Phase     string `json:"phase"`
	SessionID string `json:"sessionId"`
}

func (h *Handler) query(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	// An empty message is a valid turn: the greeting transition fires on any
	// input, so only a malformed body is rejected.
	var req queryRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
			return
		}
	}

	reply, err := h.Svc.Query(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondReply(c, sessionID, reply)
}

func (h *Handler) details(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}

	reply, err := h.Svc.SubmitDetails(c.Request.Context(), sessionID, DetailsInput{
		Budget:          req.Budget,
		DataNeeded:      req.DataNeeded,
		CurrentProvider: req.CurrentProvider,
		WillingToSwitch: req.WillingToSwitch,
		NeedsRoaming:    req.NeedsRoaming,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondReply(c, sessionID, reply)
}

func (h *Handler) recommendation(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	reply, err := h.Svc.Recommend(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondReply(c, sessionID, reply)
}

func (h *Handler) selectPlan(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}
	if req.PlanCode == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "planCode is required", nil)
		return
	}

	reply, err := h.Svc.SelectPlan(c.Request.Context(), sessionID, req.PlanCode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondReply(c, sessionID, reply)
}

func (h *Handler) respondReply(c *gin.Context, sessionID string, reply Reply) {
	c.Set("sessionPhase", string(reply.Phase))
	respond.OK(c, replyResponse{
		Reply:     reply.Text,
		Phase:     string(reply.Phase),
		SessionID: sessionID,
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, ErrorCodeUnavailable,
			"The advisor is temporarily unavailable. Please try again in a moment.", nil)
	case errors.Is(err, ErrSessionBusy):
		respond.Error(c, http.StatusConflict, ErrorCodeSessionBusy,
			"Another request for this conversation is still in progress.", nil)
	case errors.Is(err, ErrDetailsRequired):
		respond.Error(c, http.StatusConflict, ErrorCodeDetailsRequired,
			"Submit your plan details before asking for a recommendation.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
	}
}
