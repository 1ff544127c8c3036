package entity

import "time"

// Subscription plans a tenant can be on.
const (
	PlanFree       = "free"
	PlanBasic      = "basic"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

// TenantStatusActive is the status given to new tenants.
const TenantStatusActive = "active"

// Tenant is an isolated organizational scope.
type Tenant struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Email            string    `json:"email"`
	Status           string    `json:"status"`
	SubscriptionPlan string    `json:"subscription_plan"`
	UserCount        int64     `json:"user_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TenantDraft holds the writable fields of a tenant. Updates replace every field.
type TenantDraft struct {
	Name             string
	Slug             string
	Email            string
	Status           string
	SubscriptionPlan string
}

// WithDefaults fills the status and plan when they are blank.
func (d TenantDraft) WithDefaults() TenantDraft {
	if d.Status == "" {
		d.Status = TenantStatusActive
	}
	if d.SubscriptionPlan == "" {
		d.SubscriptionPlan = PlanFree
	}

	return d
}
