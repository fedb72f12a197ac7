package dialogue

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/calendar"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Config параметры диалога
type Config struct {
	AdminPhone string
	Services   []string
	Location   *time.Location // зона, в которой считается "сегодня"
}

// Machine автомат диалога записи. Не хранит состояние между ходами:
// сессия передается в Handle и возвращается в Result.
type Machine struct {
	adminPhone string
	services   []string
	location   *time.Location

	clientRepo      ClientRepository
	workingDayRepo  WorkingDayRepository
	appointmentRepo AppointmentRepository
	availability    Availability
	booker          Booker
	notifier        Notifier
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewMachine создает автомат диалога
func NewMachine(
	cfg Config,
	clientRepo ClientRepository,
	workingDayRepo WorkingDayRepository,
	appointmentRepo AppointmentRepository,
	availability Availability,
	booker Booker,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Machine {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	return &Machine{
		adminPhone:      cfg.AdminPhone,
		services:        append([]string(nil), cfg.Services...),
		location:        loc,
		clientRepo:      clientRepo,
		workingDayRepo:  workingDayRepo,
		appointmentRepo: appointmentRepo,
		availability:    availability,
		booker:          booker,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Start сбрасывает сессию в начальное состояние и возвращает приветствие
func (m *Machine) Start(sess *domain.Session) *Result {
	next := domain.NewSession(sess.ID, sess.UserID, sess.UserName)
	next.UpdatedAt = m.timeProvider.Now()

	return &Result{
		Session:   next,
		Directive: m.directive(next, msgWelcome(next.UserName)),
	}
}

// Handle применяет действие к сессии. Исходная сессия не изменяется;
// при ошибке новая сессия не возвращается, и ход можно повторить.
func (m *Machine) Handle(ctx context.Context, sess *domain.Session, action Action) (*Result, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: nil session", ErrUnknownState)
	}
	if sess.State.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", ErrSessionFinished, sess.State)
	}

	next := sess.Clone()

	var (
		d   Directive
		err error
	)

	if action.Kind == ActionCancel {
		d = m.cancel(next)
	} else {
		switch next.State {
		case domain.StateAwaitingContact:
			d, err = m.handleAwaitingContact(ctx, next, action)
		case domain.StateChoosingService:
			d, err = m.handleChoosingService(ctx, next, action)
		case domain.StateChoosingDate:
			d, err = m.handleChoosingDate(ctx, next, action)
		case domain.StateChoosingTime:
			d, err = m.handleChoosingTime(ctx, next, action)
		case domain.StateConfirmingBooking:
			d, err = m.handleConfirmingBooking(ctx, next, action)
		case domain.StateAdminMenu:
			d, err = m.handleAdminMenu(ctx, next, action)
		case domain.StateViewingBookings:
			d, err = m.handleViewingBookings(ctx, next, action)
		case domain.StateAwaitingAppointmentID:
			d, err = m.handleAwaitingAppointmentID(ctx, next, action)
		case domain.StateAddingWorkingDays:
			d, err = m.handleAddingWorkingDays(ctx, next, action)
		case domain.StateRemovingWorkingDays:
			d, err = m.handleRemovingWorkingDays(ctx, next, action)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownState, next.State)
		}
	}

	if err != nil {
		return nil, err
	}

	next.UpdatedAt = m.timeProvider.Now()
	return &Result{Session: next, Directive: d}, nil
}

func (m *Machine) cancel(s *domain.Session) Directive {
	if s.State.IsAdmin() {
		return m.finish(s, domain.StateCancelled, msgAdminExit)
	}
	return m.finish(s, domain.StateCancelled, msgCancelled)
}

// finish переводит сессию в терминальное состояние
func (m *Machine) finish(s *domain.Session, state domain.DialogueState, message string) Directive {
	s.State = state
	s.Offered = nil
	return m.directive(s, message)
}

// reprompt повторяет вопрос текущего состояния с теми же вариантами
func (m *Machine) reprompt(s *domain.Session, message string) (Directive, error) {
	return m.directive(s, message), nil
}

// directive собирает директиву из состояния сессии
func (m *Machine) directive(s *domain.Session, message string) Directive {
	d := Directive{
		State:          s.State,
		Message:        message,
		Options:        append(append([]string(nil), s.Offered...), controls(s.State)...),
		RequestContact: s.State == domain.StateAwaitingContact,
		Terminal:       s.State.IsTerminal(),
	}

	if s.State == domain.StateAddingWorkingDays {
		grid, err := calendar.RenderMonth(s.CalendarYear, time.Month(s.CalendarMonth), m.today())
		if err != nil {
			m.logger.Warn("Dialogue: failed to render calendar %d-%02d: %v", s.CalendarYear, s.CalendarMonth, err)
		} else {
			d.Calendar = grid
		}
	}

	return d
}

// controls управляющие токены, доступные в состоянии
func controls(state domain.DialogueState) []string {
	switch state {
	case domain.StateAwaitingContact, domain.StateChoosingService, domain.StateChoosingDate,
		domain.StateChoosingTime, domain.StateConfirmingBooking:
		return []string{TokenCancel}
	case domain.StateViewingBookings, domain.StateAwaitingAppointmentID,
		domain.StateAddingWorkingDays, domain.StateRemovingWorkingDays:
		return []string{TokenBack}
	}
	return nil
}

func (m *Machine) today() time.Time {
	return m.timeProvider.Now().In(m.location)
}

func (m *Machine) storeError(op string, err error) error {
	m.logger.Error("%s: store failure: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

func formatDates(dates []time.Time) []string {
	res := make([]string, 0, len(dates))
	for _, d := range dates {
		res = append(res, domain.FormatDate(d))
	}
	return res
}

func formatTimes(times []types.TimeString) []string {
	res := make([]string, 0, len(times))
	for _, t := range times {
		res = append(res, t.String())
	}
	return res
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
