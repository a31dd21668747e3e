package labdesk

import (
	"context"
	"testing"
	"time"

	"github.com/blutspende/labdesk/config"
	"github.com/blutspende/labdesk/middleware"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestAccessToken(t *testing.T, role string, expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString([]byte("backend-secret"))
	require.Nil(t, err)
	return signed
}

func TestLoginCreatesSessionFromToken(t *testing.T) {
	expiresAt := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	accessToken := signTestAccessToken(t, "LAB_TECHNICIAN", expiresAt)
	hospitalClient := &hospitalClientMock{
		loginFunc: func(username, password string) (LoginResult, error) {
			return LoginResult{
				AccessToken:  accessToken,
				RefreshToken: "refresh",
				User:         middleware.SessionUser{ID: 3, Username: username},
			}, nil
		},
	}
	sessionStore := NewSessionStore(NewMemoryCache())
	sessionService := NewSessionService(&config.Configuration{SessionTTLMinutes: 60}, hospitalClient, sessionStore)

	session, err := sessionService.Login(context.TODO(), "lab1", "secret")
	require.Nil(t, err)
	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, middleware.LabTechnician, session.User.Role)
	assert.True(t, expiresAt.Equal(session.ExpiresAt))

	stored, err := sessionService.GetSession(context.TODO(), session.ID)
	require.Nil(t, err)
	assert.Equal(t, accessToken, stored.AccessToken)
	assert.Equal(t, "lab1", stored.User.Username)
}

func TestLoginKeepsRoleOfUser(t *testing.T) {
	hospitalClient := &hospitalClientMock{
		loginFunc: func(username, password string) (LoginResult, error) {
			return LoginResult{
				AccessToken: signTestAccessToken(t, "LAB_TECHNICIAN", time.Now().Add(time.Hour)),
				User:        middleware.SessionUser{ID: 4, Username: username, Role: middleware.Doctor},
			}, nil
		},
	}
	sessionService := NewSessionService(&config.Configuration{SessionTTLMinutes: 60}, hospitalClient, NewSessionStore(NewMemoryCache()))

	session, err := sessionService.Login(context.TODO(), "doc", "secret")
	require.Nil(t, err)
	assert.Equal(t, middleware.Doctor, session.User.Role)
}

func TestLoginWithOpaqueTokenUsesConfiguredTTL(t *testing.T) {
	hospitalClient := &hospitalClientMock{
		loginFunc: func(username, password string) (LoginResult, error) {
			return LoginResult{AccessToken: "not-a-jwt", User: middleware.SessionUser{Username: username}}, nil
		},
	}
	sessionService := NewSessionService(&config.Configuration{SessionTTLMinutes: 15}, hospitalClient, NewSessionStore(NewMemoryCache()))

	session, err := sessionService.Login(context.TODO(), "lab1", "secret")
	require.Nil(t, err)
	assert.Equal(t, 15*time.Minute, session.ExpiresAt.Sub(session.CreatedAt))
}

func TestLoginFails(t *testing.T) {
	hospitalClient := &hospitalClientMock{
		loginFunc: func(username, password string) (LoginResult, error) {
			return LoginResult{}, ErrInvalidCredentials
		},
	}
	sessionService := NewSessionService(&config.Configuration{SessionTTLMinutes: 15}, hospitalClient, NewSessionStore(NewMemoryCache()))

	_, err := sessionService.Login(context.TODO(), "lab1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	hospitalClient := &hospitalClientMock{
		loginFunc: func(username, password string) (LoginResult, error) {
			return LoginResult{AccessToken: "opaque", User: middleware.SessionUser{Username: username}}, nil
		},
	}
	sessionService := NewSessionService(&config.Configuration{SessionTTLMinutes: 15}, hospitalClient, NewSessionStore(NewMemoryCache()))

	session, err := sessionService.Login(context.TODO(), "lab1", "secret")
	require.Nil(t, err)
	require.Nil(t, sessionService.Logout(context.TODO(), session.ID))

	_, err = sessionService.GetSession(context.TODO(), session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
