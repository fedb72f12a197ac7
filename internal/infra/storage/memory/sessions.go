package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/session"
)

// Sessions арена сессий в памяти процесса (драйвер memory).
// Хранит JSON, как и Redis-арена, чтобы вызывающий не делил память с хранилищем.
type Sessions struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewSessions создает пустую арену
func NewSessions() *Sessions {
	return &Sessions{data: make(map[string][]byte)}
}

func (s *Sessions) Load(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	raw, ok := s.data[id]
	s.mu.Unlock()

	if !ok {
		return nil, session.ErrSessionNotFound
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("%w: Load - unmarshal %s: %v", session.ErrCodec, id, err)
	}
	return &sess, nil
}

func (s *Sessions) Save(_ context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal %s: %v", session.ErrCodec, sess.ID, err)
	}

	s.mu.Lock()
	s.data[sess.ID] = raw
	s.mu.Unlock()
	return nil
}

func (s *Sessions) CompareAndSave(_ context.Context, sess *domain.Session, version int64) error {
	next := *sess
	next.Version = version + 1
	raw, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("%w: CompareAndSave - marshal %s: %v", session.ErrCodec, sess.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkVersion(sess.ID, version); err != nil {
		return err
	}
	s.data[sess.ID] = raw
	sess.Version = next.Version
	return nil
}

func (s *Sessions) CompareAndDelete(_ context.Context, id string, version int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkVersion(id, version); err != nil {
		return err
	}
	delete(s.data, id)
	return nil
}

// checkVersion вызывается под s.mu
func (s *Sessions) checkVersion(id string, version int64) error {
	raw, ok := s.data[id]
	if !ok {
		return fmt.Errorf("%w: %s removed", session.ErrSessionConflict, id)
	}
	var current domain.Session
	if err := json.Unmarshal(raw, &current); err != nil {
		return fmt.Errorf("%w: unmarshal %s: %v", session.ErrCodec, id, err)
	}
	if current.Version != version {
		return fmt.Errorf("%w: %s at version %d, expected %d", session.ErrSessionConflict, id, current.Version, version)
	}
	return nil
}
