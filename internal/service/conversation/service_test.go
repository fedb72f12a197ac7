package conversation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/session"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BarberBooking/internal/service/conversation"
	"github.com/m04kA/SMC-BarberBooking/internal/service/conversation/models"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/dialogue"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
)

const (
	adminPhone  = "+70000000099"
	clientPhone = "+70000000000"
	keyPrefix   = "test:session:"
)

type env struct {
	svc   *conversation.Service
	mr    *miniredis.Miniredis
	store *memory.Store
	reg   *prometheus.Registry
}

func newMachine(t *testing.T, store *memory.Store) *dialogue.Machine {
	t.Helper()
	log := logger.NewNop()

	avail, err := availability.NewUseCase(store.WorkingDays(), store.Appointments(), domain.DefaultSlotTimes, log)
	require.NoError(t, err)
	booker := book_appointment.NewUseCase(store.Appointments(), store, domain.DefaultServices, domain.DefaultSlotTimes, (*metrics.Metrics)(nil), log)

	return dialogue.NewMachine(
		dialogue.Config{AdminPhone: adminPhone, Services: domain.DefaultServices, Location: time.UTC},
		store.Clients(), store.WorkingDays(), store.Appointments(), avail, booker, nil, (*metrics.Metrics)(nil), log,
	)
}

func newEnv(t *testing.T, days ...string) *env {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := memory.NewStore()
	for _, d := range days {
		date, err := domain.ParseDate(d)
		require.NoError(t, err)
		_, err = store.WorkingDays().Add(context.Background(), date)
		require.NoError(t, err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New("barber-booking", reg)

	svc := conversation.NewService(session.NewStore(rdb, keyPrefix), newMachine(t, store), m, logger.NewNop())
	return &env{svc: svc, mr: mr, store: store, reg: reg}
}

func text(s string) *models.Input { return &models.Input{Text: s} }

func TestService_Start(t *testing.T) {
	e := newEnv(t)

	reply, err := e.svc.Start(context.Background(), &models.StartRequest{UserID: 42, UserName: "Ann"})
	require.NoError(t, err)

	_, err = uuid.Parse(reply.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.StateAwaitingContact), reply.Directive.State)
	assert.True(t, reply.Directive.RequestContact)
	assert.True(t, e.mr.Exists(keyPrefix+reply.SessionID))

	_, err = e.svc.Start(context.Background(), &models.StartRequest{UserName: "Ann"})
	assert.ErrorIs(t, err, conversation.ErrInvalidInput)
}

func TestService_FullBooking(t *testing.T) {
	e := newEnv(t, "2030-06-10")
	ctx := context.Background()

	reply, err := e.svc.Start(ctx, &models.StartRequest{SessionID: "chat-42", UserID: 42, UserName: "Ann"})
	require.NoError(t, err)
	id := reply.SessionID
	assert.Equal(t, "chat-42", id)

	reply, err = e.svc.Handle(ctx, id, &models.Input{Action: &models.ActionInput{Kind: "share_contact", Phone: clientPhone, Name: "Ann"}})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateChoosingService), reply.Directive.State)

	reply, err = e.svc.Handle(ctx, id, text(domain.ServiceMensHaircut))
	require.NoError(t, err)
	assert.Equal(t, []string{"2030-06-10", dialogue.TokenCancel}, reply.Directive.Options)

	reply, err = e.svc.Handle(ctx, id, text("2030-06-10"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateChoosingTime), reply.Directive.State)

	reply, err = e.svc.Handle(ctx, id, text("10:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateConfirmingBooking), reply.Directive.State)

	reply, err = e.svc.Handle(ctx, id, text("✅ Подтвердить"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateCompleted), reply.Directive.State)
	assert.True(t, reply.Directive.Terminal)
	assert.Equal(t, []string{}, reply.Directive.Options)

	// завершенная сессия удаляется
	assert.False(t, e.mr.Exists(keyPrefix+id))
	_, err = e.svc.Handle(ctx, id, text("10:00"))
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)

	list, err := e.store.Appointments().ListScheduled(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, clientPhone, list[0].ClientPhone)

	count, err := testutil.GatherAndCount(e.reg, "barber_dialogue_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestService_Cancel(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	reply, err := e.svc.Start(ctx, &models.StartRequest{UserID: 1, UserName: "Ann"})
	require.NoError(t, err)

	reply, err = e.svc.Handle(ctx, reply.SessionID, text("❌ Отмена"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateCancelled), reply.Directive.State)
	assert.False(t, e.mr.Exists(keyPrefix+reply.SessionID))
}

func TestService_HandleInvalidInput(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	reply, err := e.svc.Start(ctx, &models.StartRequest{UserID: 1, UserName: "Ann"})
	require.NoError(t, err)

	tests := []struct {
		name string
		id   string
		in   *models.Input
	}{
		{name: "empty id", id: " ", in: text("hi")},
		{name: "nil input", id: reply.SessionID, in: nil},
		{name: "blank text", id: reply.SessionID, in: text("  ")},
		{name: "unknown action", id: reply.SessionID, in: &models.Input{Action: &models.ActionInput{Kind: "teleport"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.Handle(ctx, tt.id, tt.in)
			assert.ErrorIs(t, err, conversation.ErrInvalidInput)
		})
	}

	_, err = e.svc.Handle(ctx, "missing", text("hi"))
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)
}

func TestService_SessionStoreDown(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	reply, err := e.svc.Start(ctx, &models.StartRequest{UserID: 1, UserName: "Ann"})
	require.NoError(t, err)

	e.mr.SetError("READONLY You can't write against a read only replica.")

	_, err = e.svc.Handle(ctx, reply.SessionID, text("hi"))
	assert.ErrorIs(t, err, conversation.ErrStoreUnavailable)

	_, err = e.svc.Start(ctx, &models.StartRequest{UserID: 1, UserName: "Ann"})
	assert.ErrorIs(t, err, conversation.ErrStoreUnavailable)
}

type machineMock struct{ mock.Mock }

func (m *machineMock) Start(sess *domain.Session) *dialogue.Result {
	args := m.Called(sess)
	return args.Get(0).(*dialogue.Result)
}

func (m *machineMock) Handle(ctx context.Context, sess *domain.Session, action dialogue.Action) (*dialogue.Result, error) {
	args := m.Called(ctx, sess, action)
	res, _ := args.Get(0).(*dialogue.Result)
	return res, args.Error(1)
}

func TestService_MachineFailureKeepsSession(t *testing.T) {
	sessions := memory.NewSessions()
	stored := domain.NewSession("s1", 1, "Ann")
	stored.State = domain.StateChoosingService
	stored.Offered = []string{domain.ServiceMensHaircut}
	require.NoError(t, sessions.Save(context.Background(), stored))

	mm := &machineMock{}
	mm.On("Handle", mock.Anything, mock.Anything, dialogue.SelectService(domain.ServiceMensHaircut)).
		Return(nil, errors.Join(dialogue.ErrStoreUnavailable, errors.New("connection refused")))

	svc := conversation.NewService(sessions, mm, (*metrics.Metrics)(nil), logger.NewNop())

	_, err := svc.Handle(context.Background(), "s1", text(domain.ServiceMensHaircut))
	assert.ErrorIs(t, err, conversation.ErrStoreUnavailable)

	got, err := sessions.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateChoosingService, got.State)
	mm.AssertExpectations(t)
}

func TestService_ConcurrentTurnAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	store := session.NewStore(rdb, keyPrefix)
	stored := domain.NewSession("s1", 1, "Ann")
	stored.State = domain.StateChoosingService
	stored.Offered = []string{domain.ServiceMensHaircut}
	require.NoError(t, store.Save(ctx, stored))

	// другой экземпляр сервиса успевает записать свой ход, пока этот думает
	mm := &machineMock{}
	mm.On("Handle", mock.Anything, mock.Anything, dialogue.SelectService(domain.ServiceMensHaircut)).
		Run(func(args mock.Arguments) {
			other := session.NewStore(rdb, keyPrefix)
			winner := args.Get(1).(*domain.Session).Clone()
			winner.State = domain.StateChoosingDate
			require.NoError(t, other.CompareAndSave(ctx, winner, winner.Version))
		}).
		Return(&dialogue.Result{Session: &domain.Session{ID: "s1", State: domain.StateChoosingDate}}, nil)

	svc := conversation.NewService(store, mm, (*metrics.Metrics)(nil), logger.NewNop())

	_, err := svc.Handle(ctx, "s1", text(domain.ServiceMensHaircut))
	assert.ErrorIs(t, err, conversation.ErrConcurrentTurn)

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateChoosingDate, got.State)
	assert.Equal(t, int64(1), got.Version)
	mm.AssertExpectations(t)
}
