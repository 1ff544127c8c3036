package entity

// Count is the size of one group in an overview.
type Count struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// DailyCount is the number of rows created on one calendar day (YYYY-MM-DD).
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// UserStats summarizes the users visible to a caller.
type UserStats struct {
	ByStatus            []Count      `json:"by_status"`
	ByRole              []Count      `json:"by_role"`
	RecentRegistrations []DailyCount `json:"recent_registrations"`
}

// TenantSize is a tenant ranked by member count.
type TenantSize struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	UserCount int64  `json:"user_count"`
}

// TenantStats summarizes the tenants visible to a caller.
type TenantStats struct {
	ByStatus            []Count      `json:"by_status"`
	ByPlan              []Count      `json:"by_plan"`
	RecentRegistrations []DailyCount `json:"recent_registrations"`
	TopTenants          []TenantSize `json:"top_tenants"`
}
