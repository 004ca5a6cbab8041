// internal/services/role_service.go
package services

import (
	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/models"
)

// RoleService derives the role for an identity at request time. Roles
// are never stored; the priority order below is fixed, so an email
// registered in several reference collections always resolves to the
// highest-priority one (owner over partner over admin over subscriber).
type RoleService struct {
	db         *gorm.DB
	ownerEmail string
}

func NewRoleService(db *gorm.DB, ownerEmail string) *RoleService {
	return &RoleService{db: db, ownerEmail: ownerEmail}
}

// Resolve maps a user (nil for unauthenticated) to exactly one role.
// For fixed reference-collection state the result is deterministic.
func (s *RoleService) Resolve(user *models.User) models.Role {
	if user == nil {
		return models.RoleGuest
	}

	if s.ownerEmail != "" && user.Email == s.ownerEmail {
		return models.RoleOwner
	}

	var count int64
	s.db.Model(&models.Partner{}).Where("email = ?", user.Email).Count(&count)
	if count > 0 {
		return models.RolePartner
	}

	s.db.Model(&models.Admin{}).Where("email = ?", user.Email).Count(&count)
	if count > 0 {
		return models.RoleAdmin
	}

	s.db.Model(&models.Subscriber{}).Where("email = ?", user.Email).Count(&count)
	if count > 0 {
		return models.RoleSubscriber
	}

	return models.RoleUser
}

// In reports membership of role in the allow-set.
func In(role models.Role, allowed ...models.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
