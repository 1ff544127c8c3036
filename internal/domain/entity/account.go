package entity

// NewUser is an account about to be created. PasswordHash is already hashed.
type NewUser struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Status       UserStatus
	RoleID       int64
	TenantID     *int64
}

// UserPatch is a partial update of an account. A nil field is left unchanged.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	RoleID    *int64
	Status    *UserStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p *UserPatch) IsEmpty() bool {
	return p == nil ||
		(p.FirstName == nil && p.LastName == nil && p.Phone == nil && p.RoleID == nil && p.Status == nil)
}

// Deactivates reports whether the patch moves the account out of the active state.
func (p *UserPatch) Deactivates() bool {
	return p != nil && p.Status != nil && !p.Status.IsActive()
}
