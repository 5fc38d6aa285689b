package metadata

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/common"
	"github.com/dmitrijs2005/docsession/internal/dbx"
)

// SessionSavedAtKey holds the RFC 3339 time of the last SaveSession.
const SessionSavedAtKey = common.SessionMetadataKey + ".saved_at"

// SessionStore persists a models.SessionState under common.SessionMetadataKey.
type SessionStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

// SaveSession writes state and its timestamp in one transaction.
// A logged-out state is saved as well; LoadSession then reports it inactive.
func (s *SessionStore) SaveSession(ctx context.Context, state models.SessionState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	savedAt := []byte(s.now().UTC().Format(time.RFC3339))

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionMetadataKey, blob); err != nil {
			return err
		}
		return repo.Set(ctx, SessionSavedAtKey, savedAt)
	})
}

// LoadSession returns the saved state. ok is false when nothing was saved.
func (s *SessionStore) LoadSession(ctx context.Context) (state models.SessionState, ok bool, err error) {
	blob, err := NewSQLiteRepository(s.db).Get(ctx, common.SessionMetadataKey)
	if err != nil {
		return models.SessionState{}, false, err
	}
	if blob == nil {
		return models.SessionState{}, false, nil
	}
	if err := json.Unmarshal(blob, &state); err != nil {
		return models.SessionState{}, false, fmt.Errorf("decode session: %w", err)
	}
	return state, true, nil
}

// SavedAt returns when the session was last saved, or the zero time.
func (s *SessionStore) SavedAt(ctx context.Context) (time.Time, error) {
	raw, err := NewSQLiteRepository(s.db).Get(ctx, SessionSavedAtKey)
	if err != nil || raw == nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", SessionSavedAtKey, err)
	}
	return t, nil
}

// ClearSession drops the saved state and its timestamp.
func (s *SessionStore) ClearSession(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.SessionMetadataKey); err != nil {
			return err
		}
		return repo.Delete(ctx, SessionSavedAtKey)
	})
}
