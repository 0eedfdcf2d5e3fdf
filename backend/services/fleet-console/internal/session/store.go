package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store holds the current Session in memory and mirrors every change to a KV backend.
// Only the auth controller is expected to call Save and Clear; everyone else reads.
type Store struct {
	kv     KV
	logger *zap.Logger

	mu      sync.RWMutex
	current Session
}

// NewStore returns a Store over kv. Call Load once before serving.
func NewStore(kv KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// Load reads the persisted record into memory. It never fails: a missing key, an
// unreadable backend or a corrupt record all yield the empty Session, and a corrupt
// record is deleted.
func (s *Store) Load(ctx context.Context) Session {
	loaded := s.read(ctx)

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return loaded
}

func (s *Store) read(ctx context.Context) Session {
	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("failed to read persisted session", zap.Error(err))
		}
		return Session{}
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.logger.Error("persisted session is corrupt, discarding", zap.Error(err))
		if delErr := s.kv.Delete(ctx, Key); delErr != nil {
			s.logger.Warn("failed to remove corrupt session", zap.Error(delErr))
		}
		return Session{}
	}
	return sess
}

// Save overwrites the whole persisted record, then the in-memory copy. On a storage
// error neither changes.
func (s *Store) Save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// Clear removes the persisted record, then drops the in-memory session. On a storage
// error neither changes.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("session: remove: %w", err)
	}

	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()
	return nil
}

// Current returns the in-memory session without touching storage.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.current
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// CurrentToken returns the bearer token of the in-memory session, "" when anonymous.
func (s *Store) CurrentToken() string {
	return s.Current().Token
}
