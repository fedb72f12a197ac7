package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Store хранилище клиентов, рабочих дней и записей в памяти процесса.
// Повторяет контракты Postgres-репозиториев, включая уникальность слота.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	clients       map[int64]*domain.Client
	clientByExtID map[int64]int64
	workingDays   map[time.Time]struct{}
	appointments  []*domain.Appointment

	nextClientID      int64
	nextAppointmentID int64

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		clients:       make(map[int64]*domain.Client),
		clientByExtID: make(map[int64]int64),
		workingDays:   make(map[time.Time]struct{}),
		now:           time.Now,
	}
}

// Clients представление клиентов
func (s *Store) Clients() *Clients { return &Clients{s: s} }

// WorkingDays представление рабочих дней
func (s *Store) WorkingDays() *WorkingDays { return &WorkingDays{s: s} }

// Appointments представление записей
func (s *Store) Appointments() *Appointments { return &Appointments{s: s} }

// Do выполняет fn эксклюзивно относительно других транзакций хранилища
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

// DoSerializable то же, что Do: транзакции в памяти всегда последовательны
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

// Clients клиенты в памяти
type Clients struct{ s *Store }

func (c *Clients) Upsert(_ context.Context, cl *domain.Client) (*domain.Client, error) {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if id, ok := s.clientByExtID[cl.ExternalID]; ok {
		stored := s.clients[id]
		stored.Name = cl.Name
		stored.Phone = cl.Phone
		stored.UpdatedAt = now
		*cl = *stored
		return cl, nil
	}

	s.nextClientID++
	cl.ID = s.nextClientID
	cl.CreatedAt = now
	cl.UpdatedAt = now
	stored := *cl
	s.clients[cl.ID] = &stored
	s.clientByExtID[cl.ExternalID] = cl.ID
	return cl, nil
}

func (c *Clients) FindByPhone(_ context.Context, phone string) (*domain.Client, error) {
	s := c.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.Client
	for _, cl := range s.clients {
		if cl.Phone == phone && (found == nil || cl.ID < found.ID) {
			found = cl
		}
	}
	if found == nil {
		return nil, client.ErrClientNotFound
	}
	res := *found
	return &res, nil
}

// WorkingDays рабочие дни в памяти
type WorkingDays struct{ s *Store }

func (w *WorkingDays) List(_ context.Context) ([]time.Time, error) {
	s := w.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]time.Time, 0, len(s.workingDays))
	for d := range s.workingDays {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (w *WorkingDays) Add(_ context.Context, date time.Time) (domain.AddWorkingDayResult, error) {
	s := w.s
	s.mu.Lock()
	defer s.mu.Unlock()

	day := domain.DateOnly(date)
	if _, ok := s.workingDays[day]; ok {
		return domain.WorkingDayAlreadyExists, nil
	}
	s.workingDays[day] = struct{}{}
	return domain.WorkingDayCreated, nil
}

func (w *WorkingDays) Remove(_ context.Context, date time.Time) (bool, error) {
	s := w.s
	s.mu.Lock()
	defer s.mu.Unlock()

	day := domain.DateOnly(date)
	if _, ok := s.workingDays[day]; !ok {
		return false, nil
	}
	delete(s.workingDays, day)
	return true, nil
}

// Appointments записи в памяти
type Appointments struct{ s *Store }

func (a *Appointments) Create(_ context.Context, ap *domain.Appointment) (*domain.Appointment, error) {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()

	day := domain.DateOnly(ap.Date)
	if ap.Status == domain.StatusScheduled {
		for _, existing := range s.appointments {
			if existing.IsScheduled() && existing.Date.Equal(day) && existing.StartTime == ap.StartTime {
				return nil, fmt.Errorf("%w: Create - %s %s", appointment.ErrSlotTaken, domain.FormatDate(day), ap.StartTime)
			}
		}
	}
	if _, ok := s.clients[ap.ClientID]; !ok {
		return nil, fmt.Errorf("%w: Create - client id=%d does not exist", appointment.ErrExecQuery, ap.ClientID)
	}

	now := s.now()
	s.nextAppointmentID++
	ap.ID = s.nextAppointmentID
	ap.Date = day
	ap.CreatedAt = now
	ap.UpdatedAt = now

	stored := *ap
	s.appointments = append(s.appointments, &stored)
	return ap, nil
}

func (a *Appointments) ScheduledTimes(_ context.Context, date time.Time) ([]types.TimeString, error) {
	s := a.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := domain.DateOnly(date)
	times := make([]types.TimeString, 0)
	for _, ap := range s.appointments {
		if ap.IsScheduled() && ap.Date.Equal(day) {
			times = append(times, ap.StartTime)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })
	return times, nil
}

func (a *Appointments) ListScheduled(_ context.Context) ([]*domain.ScheduledAppointment, error) {
	s := a.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ScheduledAppointment, 0)
	for _, ap := range s.appointments {
		if !ap.IsScheduled() {
			continue
		}
		cl := s.clients[ap.ClientID]
		result = append(result, &domain.ScheduledAppointment{
			ID:          ap.ID,
			ClientName:  cl.Name,
			ClientPhone: cl.Phone,
			Service:     ap.Service,
			Date:        ap.Date,
			StartTime:   ap.StartTime,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})
	return result, nil
}

func (a *Appointments) MarkCompleted(_ context.Context, id int64) error {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ap := range s.appointments {
		if ap.ID == id && ap.IsScheduled() {
			ap.Status = domain.StatusCompleted
			ap.UpdatedAt = s.now()
		}
	}
	return nil
}
