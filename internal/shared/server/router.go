package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchplan-backend/internal/advisor"
	"switchplan-backend/internal/feedback"
	"switchplan-backend/internal/plans"
	"switchplan-backend/internal/shared/config"
	"switchplan-backend/internal/shared/server/middleware"
	"switchplan-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	AdvisorHandler  *advisor.Handler
	PlansHandler    *plans.Handler
	FeedbackHandler *feedback.Handler
}

const chatRateGroup = "CHAT"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.PlansHandler != nil {
		deps.PlansHandler.RegisterRoutes(api)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.RegisterRoutes(api)
	}
	if deps.AdvisorHandler != nil {
		// Chat turns fan out to the external completion API, so they get a
		// tighter per-session budget than the static listing routes.
		chat := api.Group("")
		chat.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				chatRateGroup: {Rate: 1, Burst: 5},
			},
			DefaultGroup: chatRateGroup,
		}))
		deps.AdvisorHandler.RegisterRoutes(chat)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
