// internal/services/role_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alghazaly/autoparts-backend/internal/models"
)

const testOwnerEmail = "owner@example.com"

func TestResolveGuestForNilUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, testOwnerEmail)

	assert.Equal(t, models.RoleGuest, svc.Resolve(nil))
}

func TestResolveOwnerByEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, testOwnerEmail)
	user := createTestUser(t, db, testOwnerEmail)

	// Owner wins even when the same email sits in lower collections.
	require.NoError(t, db.Create(&models.Partner{Email: testOwnerEmail}).Error)
	require.NoError(t, db.Create(&models.Admin{Email: testOwnerEmail}).Error)

	assert.Equal(t, models.RoleOwner, svc.Resolve(user))
}

func TestResolvePartnerBeatsAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, testOwnerEmail)
	user := createTestUser(t, db, "both@example.com")

	require.NoError(t, db.Create(&models.Admin{Email: user.Email}).Error)
	require.NoError(t, db.Create(&models.Partner{Email: user.Email}).Error)

	assert.Equal(t, models.RolePartner, svc.Resolve(user))
}

func TestResolveAdminAndSubscriber(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, testOwnerEmail)

	admin := createTestUser(t, db, "admin@example.com")
	require.NoError(t, db.Create(&models.Admin{Email: admin.Email}).Error)
	assert.Equal(t, models.RoleAdmin, svc.Resolve(admin))

	subscriber := createTestUser(t, db, "sub@example.com")
	require.NoError(t, db.Create(&models.Subscriber{Email: subscriber.Email}).Error)
	assert.Equal(t, models.RoleSubscriber, svc.Resolve(subscriber))
}

func TestResolvePlainUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, testOwnerEmail)
	user := createTestUser(t, db, "nobody@example.com")

	assert.Equal(t, models.RoleUser, svc.Resolve(user))
}

func TestResolveIgnoresRemovedMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, testOwnerEmail)
	user := createTestUser(t, db, "expartner@example.com")

	partner := &models.Partner{Email: user.Email}
	require.NoError(t, db.Create(partner).Error)
	assert.Equal(t, models.RolePartner, svc.Resolve(user))

	// Soft delete demotes on the next resolution.
	require.NoError(t, db.Delete(partner).Error)
	assert.Equal(t, models.RoleUser, svc.Resolve(user))
}

func TestIn(t *testing.T) {
	assert.True(t, In(models.RoleAdmin, models.RoleOwner, models.RolePartner, models.RoleAdmin))
	assert.False(t, In(models.RoleSubscriber, models.RoleOwner, models.RolePartner, models.RoleAdmin))
	assert.False(t, In(models.RoleGuest))
}
