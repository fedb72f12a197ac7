package conversation

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	sessionStore "github.com/m04kA/SMC-BarberBooking/internal/infra/session"
	"github.com/m04kA/SMC-BarberBooking/internal/service/conversation/models"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/dialogue"
)

// lockStripes число мьютексов, между которыми распределяются сессии
const lockStripes = 64

// stateStart метка перехода для начала диалога
const stateStart = "start"

// Service ведет диалоги: загружает сессию, применяет ход автомата, сохраняет результат
type Service struct {
	sessions SessionStore
	machine  Machine
	metrics  Metrics
	logger   Logger

	// Ходы одной сессии внутри процесса выполняются по очереди,
	// между процессами их разводит проверка ревизии в хранилище
	locks [lockStripes]sync.Mutex
}

// NewService создает новый экземпляр сервиса диалогов
func NewService(
	sessions SessionStore,
	machine Machine,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		sessions: sessions,
		machine:  machine,
		metrics:  metrics,
		logger:   logger,
	}
}

// Start начинает диалог заново. Существующая сессия с тем же id перезаписывается.
func (s *Service) Start(ctx context.Context, req *models.StartRequest) (*models.Reply, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	id := strings.TrimSpace(req.SessionID)
	if id == "" {
		id = uuid.NewString()
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	res := s.machine.Start(domain.NewSession(id, req.UserID, strings.TrimSpace(req.UserName)))

	if err := s.sessions.Save(ctx, res.Session); err != nil {
		s.logger.Error("Start: failed to save session=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Start - save session: %v", ErrStoreUnavailable, err)
	}

	s.metrics.ObserveTransition(stateStart, string(res.Session.State))
	s.logger.Info("Start: session=%s started for user=%d", id, req.UserID)

	return models.FromDirective(id, res.Directive), nil
}

// Handle применяет ввод пользователя к сессии.
// Терминальная сессия удаляется; при ошибке автомата ничего не сохраняется.
func (s *Service) Handle(ctx context.Context, sessionID string, in *models.Input) (*models.Reply, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: empty session id", ErrInvalidInput)
	}

	mu := s.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	// 1. Загружаем сессию
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			s.logger.Warn("Handle: session=%s not found", sessionID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Handle: failed to load session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: Handle - load session: %v", ErrStoreUnavailable, err)
	}

	// 2. Приводим ввод к действию текущего состояния
	action, err := toAction(sess.State, in)
	if err != nil {
		s.logger.Warn("Handle: session=%s invalid input: %v", sessionID, err)
		return nil, err
	}

	// 3. Ход автомата
	res, err := s.machine.Handle(ctx, sess, action)
	if err != nil {
		switch {
		case errors.Is(err, dialogue.ErrStoreUnavailable):
			return nil, fmt.Errorf("%w: Handle - %v", ErrStoreUnavailable, err)
		case errors.Is(err, dialogue.ErrSessionFinished):
			return nil, ErrSessionNotFound
		default:
			s.logger.Error("Handle: session=%s machine error: %v", sessionID, err)
			return nil, fmt.Errorf("%w: Handle - machine: %v", ErrInternal, err)
		}
	}

	s.metrics.ObserveTransition(string(sess.State), string(res.Session.State))

	// 4. Сохраняем новую сессию или удаляем завершенную, если ревизия не изменилась
	if res.Session.State.IsTerminal() {
		if err := s.sessions.CompareAndDelete(ctx, sessionID, sess.Version); err != nil {
			return nil, s.writeError("delete", sessionID, err)
		}
		s.logger.Info("Handle: session=%s finished in state=%s", sessionID, res.Session.State)
	} else if err := s.sessions.CompareAndSave(ctx, res.Session, sess.Version); err != nil {
		return nil, s.writeError("save", sessionID, err)
	}

	return models.FromDirective(sessionID, res.Directive), nil
}

func (s *Service) writeError(step, sessionID string, err error) error {
	if errors.Is(err, sessionStore.ErrSessionConflict) {
		s.logger.Warn("Handle: session=%s changed by a concurrent turn: %v", sessionID, err)
		return fmt.Errorf("%w: Handle - %s session: %v", ErrConcurrentTurn, step, err)
	}
	s.logger.Error("Handle: failed to %s session=%s: %v", step, sessionID, err)
	return fmt.Errorf("%w: Handle - %s session: %v", ErrStoreUnavailable, step, err)
}

func (s *Service) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockStripes]
}

func toAction(state domain.DialogueState, in *models.Input) (dialogue.Action, error) {
	if in == nil {
		return dialogue.Action{}, fmt.Errorf("%w: empty input", ErrInvalidInput)
	}

	if in.Action != nil {
		action, err := in.Action.ToAction()
		if err != nil {
			return dialogue.Action{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return action, nil
	}

	if strings.TrimSpace(in.Text) == "" {
		return dialogue.Action{}, fmt.Errorf("%w: text or action is required", ErrInvalidInput)
	}
	return dialogue.NormalizeInput(state, in.Text), nil
}
