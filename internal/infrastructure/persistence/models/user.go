package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is a read-only projection of the LMS user store, used by the
// sync engine to resolve remote learner identities. The full user
// aggregate is owned by the identity service; only the columns needed
// for email resolution are mapped here.
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_users_tenant_email,priority:1"`
	Email       string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_tenant_email,priority:2"`
	DisplayName string    `gorm:"type:varchar(200)"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
