package impl

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"saasadmin/config"
	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/access"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/repository"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// statsWindow is how far back the overviews count registrations.
const statsWindow = 30 * 24 * time.Hour

// directoryService implements the DirectoryUsecase interface.
type directoryService struct {
	directoryRepo repository.DirectoryRepository
	clock         service.Clock
	defaultLimit  int
	maxLimit      int
	logger        *slog.Logger
}

// DirectoryServiceParams holds dependencies for directoryService, injected by Fx.
type DirectoryServiceParams struct {
	fx.In

	DirectoryRepo repository.DirectoryRepository
	Clock         service.Clock
	Config        *config.Config
	Logger        *slog.Logger
}

// NewDirectoryService is the constructor for directoryService.
func NewDirectoryService(params DirectoryServiceParams) usecase.DirectoryUsecase {
	srv := &directoryService{
		directoryRepo: params.DirectoryRepo,
		clock:         params.Clock,
		defaultLimit:  10,
		maxLimit:      100,
		logger:        params.Logger,
	}
	if srv.clock == nil {
		srv.clock = service.SystemClock()
	}
	if params.Config != nil && params.Config.Directory != nil {
		if params.Config.Directory.DefaultLimit > 0 {
			srv.defaultLimit = params.Config.Directory.DefaultLimit
		}
		if params.Config.Directory.MaxLimit > 0 {
			srv.maxLimit = params.Config.Directory.MaxLimit
		}
	}

	return srv
}

func (srv *directoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, srv.logger)
}

// scope returns the tenant a caller is confined to. ok is false when a
// non-superuser has no tenant and must see nothing; a nil scope means everything.
func scope(caller *entity.ResolvedIdentity) (tenantID *int64, ok bool) {
	if access.IsSuperuser(caller) {
		return nil, true
	}
	if caller == nil || caller.TenantID == nil {
		return nil, false
	}

	return caller.TenantID, true
}

// ListUsers pins non-superusers to their own tenant. A caller without a tenant sees nothing.
func (srv *directoryService) ListUsers(ctx context.Context, caller *entity.ResolvedIdentity, input *usecase.ListUsersInput) (*usecase.ListUsersOutput, error) {
	filter := srv.buildFilter(input)

	if !access.IsSuperuser(caller) {
		tenantID, ok := scope(caller)
		if !ok {
			return &usecase.ListUsersOutput{
				Users:      []*entity.UserView{},
				Pagination: usecase.Pagination{Page: filter.Offset/filter.Limit + 1, Limit: filter.Limit},
			}, nil
		}
		filter.TenantID = tenantID
	}

	return srv.list(ctx, filter)
}

// GetUser applies the tenant guard to the tenant of the requested user.
func (srv *directoryService) GetUser(ctx context.Context, caller *entity.ResolvedIdentity, userID int64) (*entity.UserView, error) {
	user, err := srv.directoryRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "get user failed")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !access.CanAccessTenant(caller, user.TenantID) {
		srv.log(ctx).Warn("Cross-tenant user lookup denied", slog.Int64("userID", userID))

		// Out-of-tenant users are reported as missing.
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "get user failed")
	}

	return user, nil
}

// GetTenant loads one tenant. The tenant guard runs in the delivery layer.
func (srv *directoryService) GetTenant(ctx context.Context, tenantID int64) (*entity.Tenant, error) {
	tenant, err := srv.directoryRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTenantNotFound, "get tenant failed")
		}

		return nil, errors.Wrap(err, "failed to find tenant")
	}

	return tenant, nil
}

// ListTenantUsers lists the members of one tenant. The tenant guard runs in the delivery layer.
func (srv *directoryService) ListTenantUsers(ctx context.Context, tenantID int64, input *usecase.ListUsersInput) (*usecase.ListUsersOutput, error) {
	filter := srv.buildFilter(input)
	filter.TenantID = &tenantID

	return srv.list(ctx, filter)
}

// ListTenants shows superusers every tenant and everybody else only their own.
func (srv *directoryService) ListTenants(ctx context.Context, caller *entity.ResolvedIdentity, input *usecase.ListTenantsInput) (*usecase.ListTenantsOutput, error) {
	if input == nil {
		input = &usecase.ListTenantsInput{}
	}
	page, limit := srv.page(input.Page, input.Limit)

	tenantID, ok := scope(caller)
	if !ok {
		return &usecase.ListTenantsOutput{
			Tenants:    []*entity.Tenant{},
			Pagination: usecase.Pagination{Page: page, Limit: limit},
		}, nil
	}

	tenants, total, err := srv.directoryRepo.ListTenants(ctx, repository.TenantFilter{
		ID:               tenantID,
		Status:           input.Status,
		SubscriptionPlan: input.SubscriptionPlan,
		Search:           strings.TrimSpace(input.Search),
		Limit:            limit,
		Offset:           (page - 1) * limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tenants")
	}

	return &usecase.ListTenantsOutput{
		Tenants:    tenants,
		Pagination: paginate(page, limit, total),
	}, nil
}

// UserStats summarizes the users the caller may see.
func (srv *directoryService) UserStats(ctx context.Context, caller *entity.ResolvedIdentity) (*entity.UserStats, error) {
	tenantID, ok := scope(caller)
	if !ok {
		return &entity.UserStats{ByStatus: []entity.Count{}, ByRole: []entity.Count{}, RecentRegistrations: []entity.DailyCount{}}, nil
	}

	stats, err := srv.directoryRepo.UserStats(ctx, tenantID, srv.clock.Now().Add(-statsWindow))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build user stats")
	}

	return stats, nil
}

// TenantStats summarizes the tenants the caller may see.
func (srv *directoryService) TenantStats(ctx context.Context, caller *entity.ResolvedIdentity) (*entity.TenantStats, error) {
	tenantID, ok := scope(caller)
	if !ok {
		return &entity.TenantStats{
			ByStatus:            []entity.Count{},
			ByPlan:              []entity.Count{},
			RecentRegistrations: []entity.DailyCount{},
			TopTenants:          []entity.TenantSize{},
		}, nil
	}

	stats, err := srv.directoryRepo.TenantStats(ctx, tenantID, srv.clock.Now().Add(-statsWindow))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build tenant stats")
	}

	return stats, nil
}

func (srv *directoryService) list(ctx context.Context, filter repository.UserFilter) (*usecase.ListUsersOutput, error) {
	users, total, err := srv.directoryRepo.ListUsers(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.ListUsersOutput{
		Users:      users,
		Pagination: paginate(filter.Offset/filter.Limit+1, filter.Limit, total),
	}, nil
}

func (srv *directoryService) buildFilter(input *usecase.ListUsersInput) repository.UserFilter {
	if input == nil {
		input = &usecase.ListUsersInput{}
	}
	page, limit := srv.page(input.Page, input.Limit)

	return repository.UserFilter{
		TenantID: input.TenantID,
		RoleID:   input.RoleID,
		Status:   input.Status,
		Search:   strings.TrimSpace(input.Search),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
}

// page clamps paging input: 1 <= limit <= maxLimit and 1 <= page <= MaxInt/limit,
// so the row offset can never overflow.
func (srv *directoryService) page(rawPage, rawLimit int) (page, limit int) {
	page, limit = 1, srv.defaultLimit
	if rawLimit > 0 {
		limit = min(rawLimit, srv.maxLimit)
	}
	if rawPage > 0 {
		page = min(rawPage, math.MaxInt/limit)
	}

	return page, limit
}

func paginate(page, limit int, total int64) usecase.Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return usecase.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}
