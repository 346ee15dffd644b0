package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/oggyb/sms-gateway-connector/internal/response"
)

// healthTimeout bounds the dependency checks behind /health.
const healthTimeout = 2 * time.Second

// Pinger is anything /health should check, e.g. the Redis bus.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HomeHandler serves the root and health endpoints.
type HomeHandler struct {
	deps []Pinger
}

// NewHomeHandler returns a HomeHandler that reports unhealthy when any of
// deps fails to answer a ping.
func NewHomeHandler(deps ...Pinger) *HomeHandler { return &HomeHandler{deps: deps} }

// Index godoc
// @Summary     Welcome endpoint
// @Description Simple root endpoint that returns a welcome message.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.WelcomeResponse
// @Router      / [get]
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	payload := response.WelcomePayload{
		Message: "SMS gateway connector",
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// Health godoc
// @Summary     Health check
// @Description Pings the message bus and reports whether the API can reach it.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.HealthResponse
// @Failure     503 {object} map[string]string
// @Router      /health [get]
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	for _, d := range h.deps {
		if err := d.Ping(ctx); err != nil {
			response.RespondError(w, http.StatusServiceUnavailable, "dependency unavailable: "+err.Error())
			return
		}
	}

	response.RespondJSON(w, http.StatusOK, response.HealthPayload{Status: "ok"})
}
