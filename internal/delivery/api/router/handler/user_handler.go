package handler

import (
	"log/slog"
	"net/http"

	"saasadmin/internal/delivery/api/response"
	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/access"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// UserHandler serves the account management endpoints.
type UserHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// RegisterRequest is the body of POST /auth/register. tenant_id may be a number or a numeric string.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	RoleID    int64  `json:"role_id" validate:"required,min=1"`
	TenantID  any    `json:"tenant_id"`
}

// UpdateUserRequest is the body of PUT /users/:id. Absent fields are left unchanged.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2,max=50"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	RoleID    *int64  `json:"role_id" validate:"omitempty,min=1"`
	Status    *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// Register handles POST /auth/register.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	tenantID, err := access.ParseTenantID(req.TenantID)
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrInvalidTenantID)
	}

	user, err := h.accountUC.Register(c.Request().Context(), deliverycontext.Identity(c), &usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		RoleID:    req.RoleID,
		TenantID:  tenantID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusCreated, user, "User created successfully")
}

// UpdateUser handles PUT /users/:id.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid user update input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	patch := &entity.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		RoleID:    req.RoleID,
	}
	if req.Status != nil {
		status := entity.UserStatus(*req.Status)
		patch.Status = &status
	}

	user, err := h.accountUC.UpdateUser(c.Request().Context(), deliverycontext.Identity(c), userID, patch)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, user, "User updated successfully")
}

// DeleteUser handles DELETE /users/:id.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.accountUC.DeleteUser(c.Request().Context(), deliverycontext.Identity(c), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, nil, "User deleted successfully")
}
