package handler

import (
	"log/slog"
	"net/http"

	"saasadmin/internal/delivery/api/response"
	"saasadmin/internal/domain/entity"
	"saasadmin/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TenantHandlerParams holds dependencies for TenantHandler, injected by Fx.
type TenantHandlerParams struct {
	fx.In

	TenantUC usecase.TenantUsecase
	Logger   *slog.Logger
}

// TenantHandler serves the tenant management endpoints.
type TenantHandler struct {
	tenantUC usecase.TenantUsecase
	logger   *slog.Logger
}

// NewTenantHandler is the constructor for TenantHandler
func NewTenantHandler(params TenantHandlerParams) *TenantHandler {
	return &TenantHandler{
		tenantUC: params.TenantUC,
		logger:   params.Logger,
	}
}

// TenantRequest is the body of POST /tenants and PUT /tenants/:tenantId.
type TenantRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=255"`
	Slug             string `json:"slug" validate:"required,min=2,max=100,slug"`
	Email            string `json:"email" validate:"required,email"`
	Status           string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	SubscriptionPlan string `json:"subscription_plan" validate:"omitempty,oneof=free basic premium enterprise"`
}

func (req *TenantRequest) draft() *entity.TenantDraft {
	return &entity.TenantDraft{
		Name:             req.Name,
		Slug:             req.Slug,
		Email:            req.Email,
		Status:           req.Status,
		SubscriptionPlan: req.SubscriptionPlan,
	}
}

// CreateTenant handles POST /tenants.
func (h *TenantHandler) CreateTenant(c echo.Context) error {
	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid tenant input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	tenant, err := h.tenantUC.CreateTenant(c.Request().Context(), req.draft())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusCreated, tenant, "Tenant created successfully")
}

// UpdateTenant handles PUT /tenants/:tenantId. Every writable field is replaced.
func (h *TenantHandler) UpdateTenant(c echo.Context) error {
	tenantID, err := tenantParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid tenant input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	tenant, err := h.tenantUC.UpdateTenant(c.Request().Context(), tenantID, req.draft())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, tenant, "Tenant updated successfully")
}

// DeleteTenant handles DELETE /tenants/:tenantId.
func (h *TenantHandler) DeleteTenant(c echo.Context) error {
	tenantID, err := tenantParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.tenantUC.DeleteTenant(c.Request().Context(), tenantID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, nil, "Tenant deleted successfully")
}
