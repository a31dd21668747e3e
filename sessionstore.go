package labdesk

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/blutspende/labdesk/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const sessionKeyPrefix = "session:"

type SessionStore interface {
	SaveSession(ctx context.Context, session middleware.Session) error
	GetSession(ctx context.Context, sessionID uuid.UUID) (middleware.Session, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
}

type sessionStore struct {
	cache Cache
	now   func() time.Time
}

func NewSessionStore(cache Cache) SessionStore {
	return &sessionStore{
		cache: cache,
		now:   time.Now,
	}
}

func (s *sessionStore) SaveSession(ctx context.Context, session middleware.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		log.Error().Str("sessionId", session.ID.String()).Msg("session is already expired")
		return ErrSaveSessionFailed
	}

	data, err := json.Marshal(session)
	if err != nil {
		log.Error().Err(err).Msg(MsgSaveSessionFailed)
		return ErrSaveSessionFailed
	}
	if err = s.cache.Set(ctx, sessionKeyPrefix+session.ID.String(), data, ttl); err != nil {
		log.Error().Err(err).Msg(MsgSaveSessionFailed)
		return ErrSaveSessionFailed
	}
	return nil
}

func (s *sessionStore) GetSession(ctx context.Context, sessionID uuid.UUID) (middleware.Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID.String())
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Error().Err(err).Str("sessionId", sessionID.String()).Msg("get session failed")
		}
		return middleware.Session{}, ErrSessionNotFound
	}

	var session middleware.Session
	if err = json.Unmarshal(data, &session); err != nil {
		log.Error().Err(err).Str("sessionId", sessionID.String()).Msg("unmarshal session failed")
		return middleware.Session{}, ErrSessionNotFound
	}
	if session.IsExpired(s.now()) {
		return middleware.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionStore) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID.String())
}
