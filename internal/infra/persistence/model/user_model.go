package model

import (
	"time"
)

// UserModel mirrors the 'users' table. IDs are BIGSERIAL.
type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	Phone        string    `gorm:"type:varchar(32)"`
	Status       string    `gorm:"type:varchar(16);not null;default:active"`
	RoleID       *int64    `gorm:"index"`
	TenantID     *int64    `gorm:"index"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Role          *RoleModel          `gorm:"foreignKey:RoleID"`
	Tenant        *TenantModel        `gorm:"foreignKey:TenantID"`
	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// RoleModel mirrors the 'roles' table. Permissions hold the serialized JSON grant map.
type RoleModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Permissions string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}

// TenantModel mirrors the 'tenants' table.
type TenantModel struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	Name             string `gorm:"type:varchar(255);not null"`
	Slug             string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email            string `gorm:"type:varchar(255)"`
	Status           string `gorm:"type:varchar(16);not null;default:active"`
	SubscriptionPlan string `gorm:"type:varchar(32)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (TenantModel) TableName() string {
	return "tenants"
}
