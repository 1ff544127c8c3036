// Package handler contains the HTTP handlers of the admin API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"saasadmin/internal/delivery/api/response"
	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// AuthHandler serves the session endpoints.
type AuthHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest is the optional body of POST /auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest is the body of POST /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// LoginResponse carries both tokens and the caller.
type LoginResponse struct {
	User                  *entity.ResolvedIdentity `json:"user"`
	AccessToken           string                   `json:"access_token"`
	RefreshToken          string                   `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time                `json:"refresh_token_expires_at"`
}

// MeResponse describes the caller.
type MeResponse struct {
	User           *entity.ResolvedIdentity `json:"user"`
	ActiveSessions int64                    `json:"active_sessions"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.sessionUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, LoginResponse{
		User:                  out.User,
		AccessToken:           out.AccessToken,
		RefreshToken:          out.RefreshToken,
		RefreshTokenExpiresAt: out.RefreshTokenExpiresAt,
	}, "Login successful")
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid refresh token input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.sessionUC.Refresh(c.Request().Context(), &usecase.RefreshInput{RefreshToken: req.RefreshToken})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"access_token": out.AccessToken})
}

// Logout handles POST /auth/logout. The body is optional.
func (h *AuthHandler) Logout(c echo.Context) error {
	identity := deliverycontext.Identity(c)
	if identity == nil {
		return response.HandleAppError(c, domainerrors.ErrMissingCredential)
	}

	var req LogoutRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "Invalid logout input")
		}
	}

	err := h.sessionUC.Logout(c.Request().Context(), &usecase.LogoutInput{
		SubjectID:    identity.ID,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, nil, "Logout successful")
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	identity := deliverycontext.Identity(c)
	if identity == nil {
		return response.HandleAppError(c, domainerrors.ErrMissingCredential)
	}

	out, err := h.sessionUC.Me(c.Request().Context(), identity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, MeResponse{User: out.User, ActiveSessions: out.ActiveSessions})
}

// ChangePassword handles POST /auth/change-password. Every session of the caller is revoked.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	identity := deliverycontext.Identity(c)
	if identity == nil {
		return response.HandleAppError(c, domainerrors.ErrMissingCredential)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid password change input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	err := h.sessionUC.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		SubjectID:       identity.ID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, nil, "Password changed successfully. Please log in again.")
}
