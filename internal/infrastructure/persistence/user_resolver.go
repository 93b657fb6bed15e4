package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lms/backend/internal/domain/integration"
	"github.com/lms/backend/internal/infrastructure/persistence/models"
)

// GormUserResolver implements integration.UserResolver against the users
// table. Emails are matched case-insensitively because vendors report
// whatever casing the learner typed at signup.
type GormUserResolver struct {
	db *gorm.DB
}

// NewGormUserResolver creates a new GormUserResolver
func NewGormUserResolver(db *gorm.DB) *GormUserResolver {
	return &GormUserResolver{db: db}
}

// ResolveByEmail returns the local user ID for an email within a tenant.
func (r *GormUserResolver) ResolveByEmail(ctx context.Context, tenantID uuid.UUID, email string) (uuid.UUID, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return uuid.Nil, integration.ErrUserNotFound
	}

	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("tenant_id = ? AND LOWER(email) = ? AND active", tenantID, email).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, integration.ErrUserNotFound
		}
		return uuid.Nil, err
	}
	return model.ID, nil
}
