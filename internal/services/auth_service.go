// internal/services/auth_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/config"
	"github.com/alghazaly/autoparts-backend/internal/models"
)

// AuthService exchanges upstream session ids for local sessions. The
// identity endpoint is the only source of user profiles; there is no
// password path anywhere.
type AuthService struct {
	db     *gorm.DB
	config *config.Config
	client *http.Client
}

// sessionData is the upstream identity payload.
type sessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Auth.IdentityTimeout) * time.Second,
		},
	}
}

// ExchangeSession calls the identity endpoint with the given session
// id, creates the user on first sight and persists a session carrying
// the upstream-issued token. Upstream failures surface immediately;
// they are never retried within the request.
func (s *AuthService) ExchangeSession(sessionID string) (*models.User, *models.Session, error) {
	req, err := http.NewRequest(http.MethodGet, s.config.Auth.IdentityEndpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("building identity request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("identity endpoint unreachable")
		return nil, nil, ErrUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, ErrInvalidSession
	}

	var data sessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		logrus.WithError(err).Error("identity endpoint returned malformed payload")
		return nil, nil, ErrUpstream
	}

	user, err := s.findOrCreateUser(&data)
	if err != nil {
		return nil, nil, err
	}

	session := &models.Session{
		UserID:       user.ID,
		SessionToken: data.SessionToken,
		ExpiresAt:    time.Now().UTC().AddDate(0, 0, s.config.Auth.SessionExpireDays),
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	return user, session, nil
}

func (s *AuthService) findOrCreateUser(data *sessionData) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", data.Email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	user = models.User{
		Email:   data.Email,
		Name:    data.Name,
		Picture: data.Picture,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

// ResolveSession returns the user behind a session token, or nil when
// the token is unknown or expired.
func (s *AuthService) ResolveSession(token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	var session models.Session
	if err := s.db.Where("session_token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up session: %w", err)
	}

	if !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(time.Now().UTC()) {
		return nil, nil
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up session user: %w", err)
	}

	return &user, nil
}

// Logout removes the session for the given token. Unknown tokens are a
// no-op.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.db.Where("session_token = ?", token).Delete(&models.Session{}).Error
}
