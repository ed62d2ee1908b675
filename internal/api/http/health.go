package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status        string `json:"status"`
	Message       string `json:"mensagem"`
	APIVersion    string `json:"versao_api"`
	Environment   string `json:"ambiente"`
	UptimeSeconds int64  `json:"uptime_segundos"`
	Store         string `json:"armazenamento,omitempty"`
}

// PingFunc checks the backing store. Nil means there is nothing to ping.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	version     string
	environment string
	startedAt   time.Time
	ping        PingFunc
}

func NewHealthHandler(version, environment string, startedAt time.Time, ping PingFunc) *HealthHandler {
	return &HealthHandler{
		version:     version,
		environment: environment,
		startedAt:   startedAt,
		ping:        ping,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	store := ""
	if h.ping != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.ping(pingCtx); err != nil {
			store = "down"
		} else {
			store = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		Message:       "API funcionando normalmente",
		APIVersion:    h.version,
		Environment:   h.environment,
		UptimeSeconds: int64(time.Since(h.startedAt) / time.Second),
		Store:         store,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/saude", h.HealthCheck)
}
