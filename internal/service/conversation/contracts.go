package conversation

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/dialogue"
)

// SessionStore хранилище сессий диалога (Redis или память).
// Ход записывается только поверх той ревизии, которая была прочитана.
type SessionStore interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, sess *domain.Session) error
	CompareAndSave(ctx context.Context, sess *domain.Session, version int64) error
	CompareAndDelete(ctx context.Context, id string, version int64) error
}

// Machine автомат диалога
type Machine interface {
	Start(sess *domain.Session) *dialogue.Result
	Handle(ctx context.Context, sess *domain.Session, action dialogue.Action) (*dialogue.Result, error)
}

// Metrics счетчик переходов диалога
type Metrics interface {
	ObserveTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
