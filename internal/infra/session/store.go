package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const defaultKeyPrefix = "barber:session:"

// Store хранит сессии диалога в Redis: ключ <prefix><id>, значение JSON.
// TTL не выставляется, брошенная сессия живет до следующего старта.
type Store struct {
	redis  *redis.Client
	prefix string
}

// NewStore создает хранилище сессий
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// Load возвращает сессию по id
func (s *Store) Load(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - get %s: %v", ErrStore, id, err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: Load - unmarshal %s: %v", ErrCodec, id, err)
	}
	return &sess, nil
}

// Save перезаписывает сессию целиком без проверки ревизии (новый диалог)
func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal %s: %v", ErrCodec, sess.ID, err)
	}

	if err := s.redis.Set(ctx, s.key(sess.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: Save - set %s: %v", ErrStore, sess.ID, err)
	}
	return nil
}

// CompareAndSave записывает сессию, если в Redis лежит ревизия version.
// Ключ отслеживается через WATCH; при записи Version увеличивается.
func (s *Store) CompareAndSave(ctx context.Context, sess *domain.Session, version int64) error {
	next := *sess
	next.Version = version + 1
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("%w: CompareAndSave - marshal %s: %v", ErrCodec, sess.ID, err)
	}

	key := s.key(sess.ID)
	err = s.redis.Watch(ctx, func(tx *redis.Tx) error {
		if err := s.checkVersion(ctx, tx, key, version); err != nil {
			return err
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
	if err := s.casError("CompareAndSave", sess.ID, err); err != nil {
		return err
	}

	sess.Version = next.Version
	return nil
}

// CompareAndDelete удаляет сессию, если в Redis лежит ревизия version
func (s *Store) CompareAndDelete(ctx context.Context, id string, version int64) error {
	key := s.key(id)
	err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
		if err := s.checkVersion(ctx, tx, key, version); err != nil {
			return err
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}, key)
	return s.casError("CompareAndDelete", id, err)
}

func (s *Store) checkVersion(ctx context.Context, tx *redis.Tx, key string, version int64) error {
	data, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrSessionConflict
	}
	if err != nil {
		return err
	}

	var current domain.Session
	if err := json.Unmarshal(data, &current); err != nil {
		return fmt.Errorf("%w: unmarshal %s: %v", ErrCodec, key, err)
	}
	if current.Version != version {
		return ErrSessionConflict
	}
	return nil
}

func (s *Store) casError(op, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrSessionConflict), errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("%w: %s - %s", ErrSessionConflict, op, id)
	case errors.Is(err, ErrCodec):
		return fmt.Errorf("%s - %w", op, err)
	default:
		return fmt.Errorf("%w: %s - %s: %v", ErrStore, op, id, err)
	}
}
