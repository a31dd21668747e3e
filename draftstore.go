package labdesk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type DraftStore interface {
	SaveDraft(ctx context.Context, sessionID uuid.UUID, requestID int, draft Draft) error
	GetDraft(ctx context.Context, sessionID uuid.UUID, requestID int) (Draft, error)
	DeleteDraft(ctx context.Context, sessionID uuid.UUID, requestID int) error
}

type draftStore struct {
	cache Cache
	ttl   time.Duration
}

func NewDraftStore(cache Cache, ttl time.Duration) DraftStore {
	return &draftStore{
		cache: cache,
		ttl:   ttl,
	}
}

func draftKey(sessionID uuid.UUID, requestID int) string {
	return fmt.Sprintf("draft:%s:%d", sessionID, requestID)
}

func (s *draftStore) SaveDraft(ctx context.Context, sessionID uuid.UUID, requestID int, draft Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		log.Error().Err(err).Int("requestId", requestID).Msg(MsgSaveDraftFailed)
		return ErrSaveDraftFailed
	}
	if err = s.cache.Set(ctx, draftKey(sessionID, requestID), data, s.ttl); err != nil {
		log.Error().Err(err).Int("requestId", requestID).Msg(MsgSaveDraftFailed)
		return ErrSaveDraftFailed
	}
	return nil
}

func (s *draftStore) GetDraft(ctx context.Context, sessionID uuid.UUID, requestID int) (Draft, error) {
	data, err := s.cache.Get(ctx, draftKey(sessionID, requestID))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return Draft{}, ErrDraftNotFound
		}
		log.Error().Err(err).Int("requestId", requestID).Msg("get draft failed")
		return Draft{}, err
	}

	var draft Draft
	if err = json.Unmarshal(data, &draft); err != nil {
		log.Error().Err(err).Int("requestId", requestID).Msg("unmarshal draft failed")
		return Draft{}, ErrDraftNotFound
	}
	return draft, nil
}

func (s *draftStore) DeleteDraft(ctx context.Context, sessionID uuid.UUID, requestID int) error {
	return s.cache.Delete(ctx, draftKey(sessionID, requestID))
}
