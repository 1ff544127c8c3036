// Package middleware holds the echo middleware of the admin API.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/access"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthMiddleware resolves the caller and enforces permission and tenant guards.
type AuthMiddleware struct {
	authUC  usecase.AuthenticatorUsecase
	metrics service.AuthMetrics
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC  usecase.AuthenticatorUsecase
	Metrics service.AuthMetrics
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		authUC:  params.AuthUC,
		metrics: params.Metrics,
	}
}

// Authenticate rejects the request unless it carries a valid access token of an active user.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := m.authUC.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			m.observeDenied(err)

			return err
		}

		attach(c, identity)

		return next(c)
	}
}

// OptionalAuthenticate attaches the caller when a valid token is present and never rejects.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if identity := m.authUC.OptionalAuthenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization)); identity != nil {
			attach(c, identity)
		}

		return next(c)
	}
}

// RequirePermission must run after Authenticate.
func (m *AuthMiddleware) RequirePermission(resource, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := deliverycontext.Identity(c)
			if identity == nil {
				m.observeDenied(domainerrors.ErrMissingCredential)

				return domainerrors.ErrMissingCredential
			}

			if !access.Allows(identity, resource, action) {
				m.observeDenied(domainerrors.ErrPermissionDenied)

				return domainerrors.ErrPermissionDenied.WithDetails(resource + ":" + action)
			}

			return next(c)
		}
	}
}

// RequireTenantAccess reads the tenant from the path parameter, falling back to the
// query string, and must run after Authenticate.
func (m *AuthMiddleware) RequireTenantAccess(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := deliverycontext.Identity(c)
			if identity == nil {
				m.observeDenied(domainerrors.ErrMissingCredential)

				return domainerrors.ErrMissingCredential
			}

			raw := c.Param(param)
			if raw == "" {
				raw = c.QueryParam(param)
			}

			tenantID, err := access.ParseTenantID(raw)
			if err != nil || tenantID == nil {
				return domainerrors.ErrInvalidTenantID
			}

			if !access.CanAccessTenant(identity, tenantID) {
				m.observeDenied(domainerrors.ErrTenantAccessDenied)

				return domainerrors.ErrTenantAccessDenied
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) observeDenied(err error) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		m.metrics.ObserveDenied(strings.ToLower(appErr.ErrorCode()))

		return
	}

	m.metrics.ObserveDenied(service.OutcomeError)
}

// attach stores the identity and tags the request logger with the caller.
func attach(c echo.Context, identity *entity.ResolvedIdentity) {
	deliverycontext.SetIdentity(c, identity)
	deliverycontext.TagLogger(c, slog.Int64("user_id", identity.ID))
}
