// internal/services/auth_service_test.go
package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/config"
	"github.com/alghazaly/autoparts-backend/internal/models"
)

func authConfig(endpoint string) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			IdentityEndpoint:  endpoint,
			IdentityTimeout:   2,
			PrimaryOwnerEmail: testOwnerEmail,
			SessionExpireDays: 7,
		},
	}
}

func identityStub(t *testing.T, wantSessionID string, payload map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-ID") != wantSessionID {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(payload)
	}))
}

func TestExchangeSessionCreatesUserAndSession(t *testing.T) {
	db := newTestDB(t)
	stub := identityStub(t, "sess-123", map[string]string{
		"email":         "new@example.com",
		"name":          "New User",
		"picture":       "https://example.com/p.png",
		"session_token": "tok-abc",
	})
	defer stub.Close()

	svc := NewAuthService(db, authConfig(stub.URL))

	user, session, err := svc.ExchangeSession("sess-123")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "tok-abc", session.SessionToken)
	assert.Equal(t, user.ID, session.UserID)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 7), session.ExpiresAt, time.Minute)

	// A second exchange for the same email reuses the user.
	stub2 := identityStub(t, "sess-456", map[string]string{
		"email":         "new@example.com",
		"name":          "New User",
		"session_token": "tok-def",
	})
	defer stub2.Close()
	svc2 := NewAuthService(db, authConfig(stub2.URL))

	again, _, err := svc2.ExchangeSession("sess-456")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestExchangeSessionRejectedUpstream(t *testing.T) {
	db := newTestDB(t)
	stub := identityStub(t, "valid-only", nil)
	defer stub.Close()

	svc := NewAuthService(db, authConfig(stub.URL))

	_, _, err := svc.ExchangeSession("wrong-id")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestExchangeSessionUnreachableUpstream(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, authConfig("http://127.0.0.1:1/nowhere"))

	_, _, err := svc.ExchangeSession("sess-123")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestResolveSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, authConfig("http://unused"))
	user := createTestUser(t, db, "holder@example.com")

	require.NoError(t, db.Create(&models.Session{
		UserID:       user.ID,
		SessionToken: "live-token",
		ExpiresAt:    time.Now().UTC().Add(time.Hour),
	}).Error)

	resolved, err := svc.ResolveSession("live-token")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)

	// Unknown and empty tokens resolve to nobody, not an error.
	resolved, err = svc.ResolveSession("unknown")
	require.NoError(t, err)
	assert.Nil(t, resolved)
	resolved, err = svc.ResolveSession("")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolveSessionExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, authConfig("http://unused"))
	user := createTestUser(t, db, "expired@example.com")

	require.NoError(t, db.Create(&models.Session{
		UserID:       user.ID,
		SessionToken: "stale-token",
		ExpiresAt:    time.Now().UTC().Add(-time.Minute),
	}).Error)

	resolved, err := svc.ResolveSession("stale-token")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestLogoutDeletesSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, authConfig("http://unused"))
	user := createTestUser(t, db, "leaver@example.com")

	require.NoError(t, db.Create(&models.Session{
		UserID:       user.ID,
		SessionToken: "bye-token",
		ExpiresAt:    time.Now().UTC().Add(time.Hour),
	}).Error)

	require.NoError(t, svc.Logout("bye-token"))

	var count int64
	require.NoError(t, db.Model(&models.Session{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.ErrorIs(t, db.First(&models.Session{}, "session_token = ?", "bye-token").Error, gorm.ErrRecordNotFound)

	// Logging out twice is harmless.
	require.NoError(t, svc.Logout("bye-token"))
}
