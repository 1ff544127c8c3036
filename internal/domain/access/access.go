// Package access evaluates what a resolved identity may do.
//
// Both checks are pure and independent: a route that needs a permission and
// tenant membership must call both. The superuser bypass lives only in
// IsSuperuser.
package access

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"saasadmin/internal/domain/entity"
	"saasadmin/internal/errors"
)

// SuperuserRole is the role name that satisfies every permission and tenant check.
const SuperuserRole = "Super Admin"

// ErrInvalidTenantID is returned when a tenant reference cannot be normalized.
var ErrInvalidTenantID = errors.New("invalid tenant id")

// IsSuperuser reports whether the identity holds the superuser role.
func IsSuperuser(identity *entity.ResolvedIdentity) bool {
	return identity != nil && identity.RoleName == SuperuserRole
}

// Allows reports whether identity may perform action on resource.
func Allows(identity *entity.ResolvedIdentity, resource, action string) bool {
	if identity == nil {
		return false
	}
	if IsSuperuser(identity) {
		return true
	}

	return identity.Permissions.Contains(resource, action)
}

// CanAccessTenant reports whether identity may act on data scoped to target.
// A nil target never matches a non-superuser.
func CanAccessTenant(identity *entity.ResolvedIdentity, target *int64) bool {
	if identity == nil {
		return false
	}
	if IsSuperuser(identity) {
		return true
	}
	if identity.TenantID == nil || target == nil {
		return false
	}

	return *identity.TenantID == *target
}

// ParseTenantID normalizes a tenant reference of mixed representation to int64.
// nil and blank strings map to a nil reference.
func ParseTenantID(v any) (*int64, error) {
	var id int64

	switch t := v.(type) {
	case nil:
		return nil, nil
	case int:
		id = int64(t)
	case int32:
		id = int64(t)
	case int64:
		id = t
	case *int64:
		return t, nil
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
		if t != math.Trunc(t) || t >= math.MaxInt64 || t < math.MinInt64 {
			return nil, errors.Wrapf(ErrInvalidTenantID, "%v", t)
		}
		id = int64(t)
	case json.Number:
		parsed, err := strconv.ParseInt(t.String(), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidTenantID, "%q", t.String())
		}
		id = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidTenantID, "%q", t)
		}
		id = parsed
	default:
		return nil, errors.Wrapf(ErrInvalidTenantID, "unsupported type %T", v)
	}

	return &id, nil
}
