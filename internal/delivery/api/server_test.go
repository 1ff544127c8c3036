package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"saasadmin/config"
	apimiddleware "saasadmin/internal/delivery/api/middleware"
	"saasadmin/internal/delivery/api/router"
	"saasadmin/internal/delivery/api/router/handler"
	"saasadmin/internal/domain/access"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/infra/metrics"
	mockUsecase "saasadmin/internal/mocks/usecase"
	"saasadmin/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type apiTestEnv struct {
	e           *echo.Echo
	authUC      *mockUsecase.MockAuthenticatorUsecase
	sessionUC   *mockUsecase.MockSessionUsecase
	directoryUC *mockUsecase.MockDirectoryUsecase
	accountUC   *mockUsecase.MockAccountUsecase
	tenantUC    *mockUsecase.MockTenantUsecase
}

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int64 `json:"pages"`
	} `json:"pagination"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func int64Ptr(v int64) *int64 {
	return &v
}

func identity(id int64, role string, tenantID *int64, grants map[string][]string) *entity.ResolvedIdentity {
	resolved := &entity.ResolvedIdentity{Permissions: entity.NewPermissions(grants)}
	resolved.ID = id
	resolved.Email = "user@example.com"
	resolved.Status = entity.UserStatusActive
	resolved.RoleName = role
	resolved.TenantID = tenantID

	return resolved
}

var (
	tenantAdmin = identity(7, "Tenant Admin", int64Ptr(5), map[string][]string{
		"users":   {"read"},
		"tenants": {"read"},
	})
	manager = identity(9, "Tenant Manager", int64Ptr(5), map[string][]string{
		"users":   {"create", "read", "update", "delete"},
		"tenants": {"read", "update"},
	})
	viewer    = identity(8, "Viewer", int64Ptr(5), map[string][]string{"reports": {"read"}})
	superuser = identity(1, access.SuperuserRole, nil, nil)
)

func newAPITestEnv(t *testing.T) *apiTestEnv {
	t.Helper()

	env := &apiTestEnv{
		authUC:      mockUsecase.NewMockAuthenticatorUsecase(t),
		sessionUC:   mockUsecase.NewMockSessionUsecase(t),
		directoryUC: mockUsecase.NewMockDirectoryUsecase(t),
		accountUC:   mockUsecase.NewMockAccountUsecase(t),
		tenantUC:    mockUsecase.NewMockTenantUsecase(t),
	}

	cfg := &config.Config{Metrics: &config.MetricsConfig{Enabled: true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := metrics.New()

	env.authUC.On("Authenticate", mock.Anything, "Bearer admin").Return(tenantAdmin, nil).Maybe()
	env.authUC.On("Authenticate", mock.Anything, "Bearer viewer").Return(viewer, nil).Maybe()
	env.authUC.On("Authenticate", mock.Anything, "Bearer manager").Return(manager, nil).Maybe()
	env.authUC.On("Authenticate", mock.Anything, "Bearer root").Return(superuser, nil).Maybe()
	env.authUC.On("Authenticate", mock.Anything, "").Return(nil, domainerrors.ErrMissingCredential).Maybe()
	env.authUC.On("Authenticate", mock.Anything, "Bearer stale").
		Return(nil, errors.Wrap(domainerrors.ErrExpiredToken, "token is expired")).Maybe()

	env.e = NewEcho(cfg, logger, recorder, router.RouterParams{
		AuthHandler:      handler.NewAuthHandler(handler.AuthHandlerParams{SessionUC: env.sessionUC, Logger: logger}),
		DirectoryHandler: handler.NewDirectoryHandler(handler.DirectoryHandlerParams{DirectoryUC: env.directoryUC, Logger: logger}),
		UserHandler:      handler.NewUserHandler(handler.UserHandlerParams{AccountUC: env.accountUC, Logger: logger}),
		TenantHandler:    handler.NewTenantHandler(handler.TenantHandlerParams{TenantUC: env.tenantUC, Logger: logger}),
		StatusHandler:    handler.NewStatusHandler(),
		AuthMiddleware:   apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{AuthUC: env.authUC, Metrics: recorder}),
		Metrics:          recorder,
		Config:           cfg,
	})

	return env
}

func (env *apiTestEnv) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	var out envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}

	return rec, out
}

func TestAPI_Health(t *testing.T) {
	env := newAPITestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAPI_AuthenticationFailures(t *testing.T) {
	env := newAPITestEnv(t)

	rec, out := env.do(t, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "MISSING_CREDENTIAL", out.Error.Code)
	assert.Equal(t, "Access token required", out.Error.Message)
	assert.NotEmpty(t, out.Meta.RequestID)

	rec, out = env.do(t, http.MethodGet, "/auth/me", "stale", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "EXPIRED_TOKEN", out.Error.Code)
	assert.Nil(t, out.Error.Details)
}

func TestAPI_Status(t *testing.T) {
	env := newAPITestEnv(t)
	env.authUC.On("OptionalAuthenticate", mock.Anything, "").Return(nil)
	env.authUC.On("OptionalAuthenticate", mock.Anything, "Bearer admin").Return(tenantAdmin)
	env.authUC.On("OptionalAuthenticate", mock.Anything, "Bearer junk").Return(nil)

	var body handler.StatusResponse

	rec, out := env.do(t, http.MethodGet, "/status", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(out.Data, &body))
	assert.False(t, body.Authenticated)

	rec, _ = env.do(t, http.MethodGet, "/status", "junk", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, out = env.do(t, http.MethodGet, "/status", "admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(out.Data, &body))
	assert.True(t, body.Authenticated)
	assert.Equal(t, int64(7), body.User.ID)
}

func TestAPI_Login(t *testing.T) {
	env := newAPITestEnv(t)
	expiresAt := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)

	env.sessionUC.On("Login", mock.Anything, &usecase.LoginInput{Email: "alice@example.com", Password: "secret123"}).
		Return(&usecase.LoginOutput{User: tenantAdmin, AccessToken: "a1", RefreshToken: "r1", RefreshTokenExpiresAt: expiresAt}, nil)
	env.sessionUC.On("Login", mock.Anything, &usecase.LoginInput{Email: "alice@example.com", Password: "nope"}).
		Return(nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed"))

	rec, out := env.do(t, http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login handler.LoginResponse
	require.NoError(t, json.Unmarshal(out.Data, &login))
	assert.Equal(t, "a1", login.AccessToken)
	assert.Equal(t, "r1", login.RefreshToken)
	assert.True(t, expiresAt.Equal(login.RefreshTokenExpiresAt))
	assert.True(t, login.User.Permissions.Contains("users", "read"))
	assert.Equal(t, "Login successful", out.Message)

	rec, out = env.do(t, http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", out.Error.Code)

	rec, out = env.do(t, http.MethodPost, "/auth/login", "", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", out.Error.Code)
	assert.NotNil(t, out.Error.Details)

	rec, out = env.do(t, http.MethodPost, "/auth/login", "", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", out.Error.Code)
}

func TestAPI_Refresh(t *testing.T) {
	env := newAPITestEnv(t)
	env.sessionUC.On("Refresh", mock.Anything, &usecase.RefreshInput{RefreshToken: "r1"}).
		Return(&usecase.RefreshOutput{AccessToken: "a2"}, nil)
	env.sessionUC.On("Refresh", mock.Anything, &usecase.RefreshInput{RefreshToken: "revoked"}).
		Return(nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not stored"))

	rec, out := env.do(t, http.MethodPost, "/auth/refresh", "", `{"refresh_token":"r1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access_token":"a2"}`, string(out.Data))

	rec, out = env.do(t, http.MethodPost, "/auth/refresh", "", `{"refresh_token":"revoked"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "REFRESH_TOKEN_INVALID", out.Error.Code)
	assert.Equal(t, "Invalid or expired refresh token", out.Error.Message)
}

func TestAPI_LogoutAndChangePassword(t *testing.T) {
	env := newAPITestEnv(t)
	env.sessionUC.On("Logout", mock.Anything, &usecase.LogoutInput{SubjectID: 7, RefreshToken: "r1"}).Return(nil).Once()
	env.sessionUC.On("Logout", mock.Anything, &usecase.LogoutInput{SubjectID: 7}).Return(nil).Once()
	env.sessionUC.On("ChangePassword", mock.Anything, &usecase.ChangePasswordInput{
		SubjectID: 7, CurrentPassword: "secret123", NewPassword: "abc",
	}).Return(domainerrors.ErrWeakNewPassword.WithMessage("New password must be at least 6 characters long"))

	rec, _ := env.do(t, http.MethodPost, "/auth/logout", "admin", `{"refresh_token":"r1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/auth/logout", "admin", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, out := env.do(t, http.MethodPost, "/auth/change-password", "admin", `{"current_password":"secret123","new_password":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "WEAK_NEW_PASSWORD", out.Error.Code)
	assert.Equal(t, "New password must be at least 6 characters long", out.Error.Message)
}

func TestAPI_ServerErrorsHideDetails(t *testing.T) {
	env := newAPITestEnv(t)
	env.sessionUC.On("Me", mock.Anything, tenantAdmin).
		Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("pq: relation missing"), "count sessions")).Once()
	env.sessionUC.On("Me", mock.Anything, tenantAdmin).Return(nil, errors.New("boom")).Once()

	rec, out := env.do(t, http.MethodGet, "/auth/me", "admin", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", out.Error.Code)
	assert.Nil(t, out.Error.Details)
	assert.NotContains(t, rec.Body.String(), "relation missing")

	rec, out = env.do(t, http.MethodGet, "/auth/me", "admin", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", out.Error.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestAPI_PermissionGuard(t *testing.T) {
	env := newAPITestEnv(t)
	env.directoryUC.On("ListUsers", mock.Anything, tenantAdmin, mock.MatchedBy(func(in *usecase.ListUsersInput) bool {
		return in.Page == 2 && in.Limit == 5 && in.Status == entity.UserStatusActive &&
			in.TenantID != nil && *in.TenantID == 5 && in.RoleID != nil && *in.RoleID == 3
	})).Return(&usecase.ListUsersOutput{
		Users:      []*entity.UserView{&tenantAdmin.UserView},
		Pagination: usecase.Pagination{Page: 2, Limit: 5, Total: 6, Pages: 2},
	}, nil)

	rec, out := env.do(t, http.MethodGet, "/users", "viewer", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "PERMISSION_DENIED", out.Error.Code)
	assert.Equal(t, "users:read", out.Error.Details)

	rec, out = env.do(t, http.MethodGet, "/users?page=2&limit=5&status=active&tenantId=5&roleId=3", "admin", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, out.Pagination)
	assert.Equal(t, int64(6), out.Pagination.Total)

	rec, out = env.do(t, http.MethodGet, "/users?status=deleted", "admin", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", out.Error.Code)

	rec, out = env.do(t, http.MethodGet, "/users?roleId=three", "admin", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "roleId must be an integer", out.Error.Details)

	rec, out = env.do(t, http.MethodGet, "/users?tenantId=five", "admin", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_TENANT_ID", out.Error.Code)

	rec, _ = env.do(t, http.MethodGet, "/users/abc", "admin", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_GetUserOutsideTenantIsNotFound(t *testing.T) {
	env := newAPITestEnv(t)
	env.directoryUC.On("GetUser", mock.Anything, tenantAdmin, int64(99)).
		Return(nil, errors.Wrap(domainerrors.ErrUserNotFound, "get user failed"))

	rec, out := env.do(t, http.MethodGet, "/users/99", "admin", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", out.Error.Code)
}

func TestAPI_TenantGuard(t *testing.T) {
	env := newAPITestEnv(t)
	env.directoryUC.On("GetTenant", mock.Anything, int64(5)).Return(&entity.Tenant{ID: 5, Name: "Acme"}, nil)
	env.directoryUC.On("GetTenant", mock.Anything, int64(6)).Return(&entity.Tenant{ID: 6, Name: "Globex"}, nil)
	env.directoryUC.On("ListTenantUsers", mock.Anything, int64(6), mock.Anything).
		Return(&usecase.ListUsersOutput{Users: []*entity.UserView{}, Pagination: usecase.Pagination{Page: 1, Limit: 10}}, nil)

	tests := []struct {
		name   string
		token  string
		path   string
		status int
		code   string
	}{
		{name: "own tenant", token: "admin", path: "/tenants/5", status: http.StatusOK},
		{name: "foreign tenant", token: "admin", path: "/tenants/6", status: http.StatusForbidden, code: "TENANT_ACCESS_DENIED"},
		{name: "foreign tenant users", token: "admin", path: "/tenants/6/users", status: http.StatusForbidden, code: "TENANT_ACCESS_DENIED"},
		{name: "invalid tenant id", token: "admin", path: "/tenants/abc", status: http.StatusBadRequest, code: "INVALID_TENANT_ID"},
		{name: "permission checked before tenant", token: "viewer", path: "/tenants/5", status: http.StatusForbidden, code: "PERMISSION_DENIED"},
		{name: "superuser any tenant", token: "root", path: "/tenants/6", status: http.StatusOK},
		{name: "superuser any tenant users", token: "root", path: "/tenants/6/users", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := env.do(t, http.MethodGet, tt.path, tt.token, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.code != "" {
				require.NotNil(t, out.Error)
				assert.Equal(t, tt.code, out.Error.Code)
			}
		})
	}
}

func TestAPI_MetricsEndpoint(t *testing.T) {
	env := newAPITestEnv(t)

	env.do(t, http.MethodGet, "/auth/me", "", "")
	env.do(t, http.MethodGet, "/users", "viewer", "")

	rec, _ := env.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `auth_denied_total{reason="missing_credential"} 1`)
	assert.Contains(t, body, `auth_denied_total{reason="permission_denied"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/auth/me",status="401"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/users",status="403"} 1`)
}

func TestAPI_Register(t *testing.T) {
	env := newAPITestEnv(t)
	env.accountUC.On("Register", mock.Anything, manager, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
		return in.Email == "grace@example.com" && in.RoleID == 3 && in.TenantID != nil && *in.TenantID == 5
	})).Return(&entity.User{ID: 11, Email: "grace@example.com"}, nil)

	body := `{"email":"grace@example.com","password":"s3cret-pass","first_name":"Grace","last_name":"Hopper","role_id":3,"tenant_id":"5"}`

	rec, out := env.do(t, http.MethodPost, "/auth/register", "manager", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "User created successfully", out.Message)
	assert.JSONEq(t, `11`, string(mustField(t, out.Data, "id")))

	rec, out = env.do(t, http.MethodPost, "/auth/register", "admin", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "users:create", out.Error.Details)

	rec, out = env.do(t, http.MethodPost, "/auth/register", "manager", `{"email":"grace@example.com","password":"x","role_id":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", out.Error.Code)

	rec, out = env.do(t, http.MethodPost, "/auth/register", "manager",
		`{"email":"grace@example.com","password":"s3cret-pass","first_name":"Grace","last_name":"Hopper","role_id":3,"tenant_id":"acme"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_TENANT_ID", out.Error.Code)

	rec, _ = env.do(t, http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_UpdateAndDeleteUser(t *testing.T) {
	env := newAPITestEnv(t)
	env.accountUC.On("UpdateUser", mock.Anything, manager, int64(12), mock.MatchedBy(func(p *entity.UserPatch) bool {
		return p.Status != nil && *p.Status == entity.UserStatusSuspended && p.FirstName == nil
	})).Return(&entity.User{ID: 12, Status: entity.UserStatusSuspended}, nil)
	env.accountUC.On("UpdateUser", mock.Anything, manager, int64(12), &entity.UserPatch{}).
		Return(nil, errors.Wrap(domainerrors.ErrNoFieldsToUpdate, "update user failed"))
	env.accountUC.On("DeleteUser", mock.Anything, manager, int64(9)).
		Return(errors.Wrap(domainerrors.ErrCannotDeleteSelf, "delete user failed"))
	env.accountUC.On("DeleteUser", mock.Anything, manager, int64(12)).Return(nil)

	rec, out := env.do(t, http.MethodPut, "/users/12", "manager", `{"status":"suspended"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "User updated successfully", out.Message)

	rec, out = env.do(t, http.MethodPut, "/users/12", "manager", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NO_FIELDS_TO_UPDATE", out.Error.Code)

	rec, out = env.do(t, http.MethodPut, "/users/12", "manager", `{"status":"deleted"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status must be one of active, inactive, suspended", out.Error.Details)

	rec, out = env.do(t, http.MethodPut, "/users/12", "admin", `{"status":"suspended"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "users:update", out.Error.Details)

	rec, out = env.do(t, http.MethodDelete, "/users/9", "manager", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CANNOT_DELETE_SELF", out.Error.Code)

	rec, _ = env.do(t, http.MethodDelete, "/users/12", "manager", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, out = env.do(t, http.MethodDelete, "/users/12", "admin", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "users:delete", out.Error.Details)
}

func TestAPI_StatsRoutesAreNotUserIDs(t *testing.T) {
	env := newAPITestEnv(t)
	env.directoryUC.On("UserStats", mock.Anything, tenantAdmin).
		Return(&entity.UserStats{ByStatus: []entity.Count{{Key: "active", Count: 4}}}, nil)
	env.directoryUC.On("TenantStats", mock.Anything, tenantAdmin).
		Return(&entity.TenantStats{TopTenants: []entity.TenantSize{{Name: "Acme", Slug: "acme", UserCount: 4}}}, nil)

	rec, out := env.do(t, http.MethodGet, "/users/stats/overview", "admin", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[{"key":"active","count":4}]`, string(mustField(t, out.Data, "by_status")))

	rec, out = env.do(t, http.MethodGet, "/tenants/stats/overview", "admin", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[{"name":"Acme","slug":"acme","user_count":4}]`, string(mustField(t, out.Data, "top_tenants")))

	rec, _ = env.do(t, http.MethodGet, "/users/stats/overview", "viewer", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPI_TenantManagement(t *testing.T) {
	env := newAPITestEnv(t)
	env.directoryUC.On("ListTenants", mock.Anything, superuser, &usecase.ListTenantsInput{
		Page:             2,
		SubscriptionPlan: "premium",
	}).Return(&usecase.ListTenantsOutput{
		Tenants:    []*entity.Tenant{{ID: 6, Slug: "globex"}},
		Pagination: usecase.Pagination{Page: 2, Limit: 10, Total: 11, Pages: 2},
	}, nil)
	env.tenantUC.On("CreateTenant", mock.Anything, &entity.TenantDraft{
		Name:  "Initech",
		Slug:  "initech",
		Email: "ops@initech.io",
	}).Return(&entity.Tenant{ID: 12, Slug: "initech"}, nil)
	env.tenantUC.On("UpdateTenant", mock.Anything, int64(5), mock.MatchedBy(func(d *entity.TenantDraft) bool {
		return d.SubscriptionPlan == "basic"
	})).Return(&entity.Tenant{ID: 5, SubscriptionPlan: "basic"}, nil)
	env.tenantUC.On("DeleteTenant", mock.Anything, int64(5)).
		Return(errors.Wrap(domainerrors.ErrTenantHasUsers, "delete tenant failed"))

	rec, out := env.do(t, http.MethodGet, "/tenants?page=2&subscriptionPlan=premium", "root", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, out.Pagination)
	assert.Equal(t, int64(11), out.Pagination.Total)

	created := `{"name":"Initech","slug":"initech","email":"ops@initech.io"}`
	rec, out = env.do(t, http.MethodPost, "/tenants", "root", created)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Tenant created successfully", out.Message)

	rec, out = env.do(t, http.MethodPost, "/tenants", "manager", created)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "tenants:create", out.Error.Details)

	rec, out = env.do(t, http.MethodPost, "/tenants", "root", `{"name":"Initech","slug":"Init Tech","email":"ops@initech.io"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "slug may only contain lowercase letters, digits and hyphens", out.Error.Details)

	update := `{"name":"Acme","slug":"acme","email":"ops@acme.io","subscription_plan":"basic"}`
	rec, _ = env.do(t, http.MethodPut, "/tenants/5", "manager", update)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, out = env.do(t, http.MethodPut, "/tenants/6", "manager", update)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "TENANT_ACCESS_DENIED", out.Error.Code)

	rec, out = env.do(t, http.MethodDelete, "/tenants/5", "root", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "TENANT_HAS_USERS", out.Error.Code)

	rec, out = env.do(t, http.MethodDelete, "/tenants/5", "manager", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "tenants:delete", out.Error.Details)
}

func mustField(t *testing.T, data json.RawMessage, name string) json.RawMessage {
	t.Helper()

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	require.Contains(t, fields, name)

	return fields[name]
}
