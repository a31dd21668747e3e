package labdesk

import (
	"context"
	"time"

	"github.com/blutspende/labdesk/config"
	"github.com/blutspende/labdesk/middleware"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type SessionService interface {
	Login(ctx context.Context, username, password string) (middleware.Session, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (middleware.Session, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

type sessionService struct {
	hospitalClient HospitalClient
	sessionStore   SessionStore
	sessionTTL     time.Duration
	now            func() time.Time
}

// accessTokenClaims - the part of the backend access token that is read, the signature is the backend's concern
type accessTokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewSessionService(configuration *config.Configuration, hospitalClient HospitalClient, sessionStore SessionStore) SessionService {
	return &sessionService{
		hospitalClient: hospitalClient,
		sessionStore:   sessionStore,
		sessionTTL:     time.Duration(configuration.SessionTTLMinutes) * time.Minute,
		now:            time.Now,
	}
}

func (s *sessionService) Login(ctx context.Context, username, password string) (middleware.Session, error) {
	loginResult, err := s.hospitalClient.Login(ctx, username, password)
	if err != nil {
		return middleware.Session{}, err
	}

	now := s.now()
	session := middleware.Session{
		ID:           uuid.New(),
		AccessToken:  loginResult.AccessToken,
		RefreshToken: loginResult.RefreshToken,
		User:         loginResult.User,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.sessionTTL),
	}

	claims, ok := parseAccessToken(loginResult.AccessToken)
	if ok {
		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.After(now) {
			session.ExpiresAt = claims.ExpiresAt.Time
		}
		if session.User.Role == "" {
			session.User.Role = middleware.UserRole(claims.Role)
		}
	}

	if err = s.sessionStore.SaveSession(ctx, session); err != nil {
		return middleware.Session{}, err
	}

	log.Info().
		Str("sessionId", session.ID.String()).
		Str("username", session.User.Username).
		Str("role", session.User.Role.ToString()).
		Msg("user logged in")
	return session, nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionID uuid.UUID) (middleware.Session, error) {
	return s.sessionStore.GetSession(ctx, sessionID)
}

func (s *sessionService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessionStore.DeleteSession(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("sessionId", sessionID.String()).Msg("delete session failed")
		return err
	}
	return nil
}

func parseAccessToken(accessToken string) (accessTokenClaims, bool) {
	claims := accessTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		log.Warn().Err(err).Msg("can not read claims of the access token")
		return accessTokenClaims{}, false
	}
	return claims, true
}
