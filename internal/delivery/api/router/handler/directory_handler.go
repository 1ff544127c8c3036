package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"saasadmin/internal/delivery/api/response"
	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/access"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DirectoryHandlerParams holds dependencies for DirectoryHandler, injected by Fx.
type DirectoryHandlerParams struct {
	fx.In

	DirectoryUC usecase.DirectoryUsecase
	Logger      *slog.Logger
}

// DirectoryHandler serves the read-only user and tenant endpoints.
type DirectoryHandler struct {
	directoryUC usecase.DirectoryUsecase
	logger      *slog.Logger
}

// NewDirectoryHandler is the constructor for DirectoryHandler
func NewDirectoryHandler(params DirectoryHandlerParams) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUC: params.DirectoryUC,
		logger:      params.Logger,
	}
}

// ListUsers handles GET /users.
func (h *DirectoryHandler) ListUsers(c echo.Context) error {
	input, err := bindListUsersInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.directoryUC.ListUsers(c.Request().Context(), deliverycontext.Identity(c), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, out.Users, response.PaginationInfo(out.Pagination))
}

// GetUser handles GET /users/:id.
func (h *DirectoryHandler) GetUser(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.directoryUC.GetUser(c.Request().Context(), deliverycontext.Identity(c), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// GetTenant handles GET /tenants/:tenantId. The tenant guard has already run.
func (h *DirectoryHandler) GetTenant(c echo.Context) error {
	tenantID, err := tenantParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	tenant, err := h.directoryUC.GetTenant(c.Request().Context(), tenantID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, tenant)
}

// ListTenantUsers handles GET /tenants/:tenantId/users. The tenant guard has already run.
func (h *DirectoryHandler) ListTenantUsers(c echo.Context) error {
	tenantID, err := tenantParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	input, err := bindListUsersInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.directoryUC.ListTenantUsers(c.Request().Context(), tenantID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, out.Users, response.PaginationInfo(out.Pagination))
}

// ListTenants handles GET /tenants.
func (h *DirectoryHandler) ListTenants(c echo.Context) error {
	input := &usecase.ListTenantsInput{}

	err := echo.QueryParamsBinder(c).
		Int("page", &input.Page).
		Int("limit", &input.Limit).
		String("search", &input.Search).
		String("status", &input.Status).
		String("subscriptionPlan", &input.SubscriptionPlan).
		BindError()
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("page and limit must be integers"))
	}

	out, err := h.directoryUC.ListTenants(c.Request().Context(), deliverycontext.Identity(c), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, out.Tenants, response.PaginationInfo(out.Pagination))
}

// UserStats handles GET /users/stats/overview.
func (h *DirectoryHandler) UserStats(c echo.Context) error {
	stats, err := h.directoryUC.UserStats(c.Request().Context(), deliverycontext.Identity(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats)
}

// TenantStats handles GET /tenants/stats/overview.
func (h *DirectoryHandler) TenantStats(c echo.Context) error {
	stats, err := h.directoryUC.TenantStats(c.Request().Context(), deliverycontext.Identity(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats)
}

func tenantParam(c echo.Context) (int64, error) {
	tenantID, err := access.ParseTenantID(c.Param("tenantId"))
	if err != nil || tenantID == nil {
		return 0, domainerrors.ErrInvalidTenantID
	}

	return *tenantID, nil
}

func userIDParam(c echo.Context) (int64, error) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("id must be a positive integer")
	}

	return userID, nil
}

func bindListUsersInput(c echo.Context) (*usecase.ListUsersInput, error) {
	input := &usecase.ListUsersInput{}

	err := echo.QueryParamsBinder(c).
		Int("page", &input.Page).
		Int("limit", &input.Limit).
		String("search", &input.Search).
		BindError()
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("page and limit must be integers")
	}

	switch status := entity.UserStatus(c.QueryParam("status")); status {
	case "", entity.UserStatusActive, entity.UserStatusInactive, entity.UserStatusSuspended:
		input.Status = status
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("status must be one of active, inactive, suspended")
	}

	if raw := c.QueryParam("roleId"); raw != "" {
		roleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("roleId must be an integer")
		}
		input.RoleID = &roleID
	}

	tenantID, err := access.ParseTenantID(c.QueryParam("tenantId"))
	if err != nil {
		return nil, domainerrors.ErrInvalidTenantID
	}
	input.TenantID = tenantID

	return input, nil
}
