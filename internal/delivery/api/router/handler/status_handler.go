package handler

import (
	"net/http"

	"saasadmin/internal/delivery/api/response"
	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// StatusResponse tells an optionally authenticated caller who they are.
type StatusResponse struct {
	Authenticated bool                     `json:"authenticated"`
	User          *entity.ResolvedIdentity `json:"user,omitempty"`
}

// StatusHandler serves the unguarded probe endpoints.
type StatusHandler struct{}

// NewStatusHandler creates a new StatusHandler instance
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Status handles GET /status. Anonymous callers get a 200 as well.
func (h *StatusHandler) Status(c echo.Context) error {
	identity := deliverycontext.Identity(c)

	return response.Success(c, http.StatusOK, StatusResponse{
		Authenticated: identity != nil,
		User:          identity,
	})
}

// HealthCheck handles GET /health.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
