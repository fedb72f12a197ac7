package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type workingDayRepoMock struct{ mock.Mock }

func (m *workingDayRepoMock) List(ctx context.Context) ([]time.Time, error) {
	args := m.Called(ctx)
	dates, _ := args.Get(0).([]time.Time)
	return dates, args.Error(1)
}

type appointmentRepoMock struct{ mock.Mock }

func (m *appointmentRepoMock) ScheduledTimes(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	args := m.Called(ctx, date)
	times, _ := args.Get(0).([]types.TimeString)
	return times, args.Error(1)
}

var june10 = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func TestNewUseCase_EmptyTemplate(t *testing.T) {
	_, err := availability.NewUseCase(&workingDayRepoMock{}, &appointmentRepoMock{}, nil, logger.NewNop())
	assert.ErrorIs(t, err, availability.ErrEmptyTemplate)
}

func TestAvailableTimes_TemplateMinusBooked(t *testing.T) {
	appointments := &appointmentRepoMock{}
	appointments.On("ScheduledTimes", mock.Anything, june10).Return([]types.TimeString{"12:00", "10:00"}, nil)

	uc, err := availability.NewUseCase(&workingDayRepoMock{}, appointments, domain.DefaultSlotTimes, logger.NewNop())
	require.NoError(t, err)

	times, err := uc.AvailableTimes(context.Background(), june10.Add(13*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"11:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}, times)
	appointments.AssertExpectations(t)
}

func TestAvailableTimes_FullyBooked(t *testing.T) {
	appointments := &appointmentRepoMock{}
	appointments.On("ScheduledTimes", mock.Anything, june10).Return([]types.TimeString{"10:00", "11:00"}, nil)

	uc, err := availability.NewUseCase(&workingDayRepoMock{}, appointments, []types.TimeString{"10:00", "11:00"}, logger.NewNop())
	require.NoError(t, err)

	times, err := uc.AvailableTimes(context.Background(), june10)
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestStoreErrors(t *testing.T) {
	days := &workingDayRepoMock{}
	days.On("List", mock.Anything).Return(nil, errors.New("db down"))
	appointments := &appointmentRepoMock{}
	appointments.On("ScheduledTimes", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	uc, err := availability.NewUseCase(days, appointments, domain.DefaultSlotTimes, logger.NewNop())
	require.NoError(t, err)

	_, err = uc.AvailableDates(context.Background())
	assert.ErrorIs(t, err, availability.ErrStore)

	_, err = uc.AvailableTimes(context.Background(), june10)
	assert.ErrorIs(t, err, availability.ErrStore)
}

func TestAvailability_AgainstStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc, err := availability.NewUseCase(store.WorkingDays(), store.Appointments(), domain.DefaultSlotTimes, logger.NewNop())
	require.NoError(t, err)

	june12 := june10.AddDate(0, 0, 2)
	for _, d := range []time.Time{june12, june10} {
		_, err := store.WorkingDays().Add(ctx, d)
		require.NoError(t, err)
	}

	dates, err := uc.AvailableDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{june10, june12}, dates)
	assert.False(t, availability.ContainsDate(dates, june10.AddDate(0, 0, 1)), "non-working day is never offered")

	cl, err := store.Clients().Upsert(ctx, &domain.Client{ExternalID: 1, Name: "Ann", Phone: "+7"})
	require.NoError(t, err)
	booked, err := store.Appointments().Create(ctx, &domain.Appointment{
		ClientID: cl.ID, Service: domain.ServiceMensHaircut, Date: june10, StartTime: "10:00", Status: domain.StatusScheduled,
	})
	require.NoError(t, err)

	times, err := uc.AvailableTimes(ctx, june10)
	require.NoError(t, err)
	assert.False(t, availability.ContainsTime(times, "10:00"))

	require.NoError(t, store.Appointments().MarkCompleted(ctx, booked.ID))

	times, err = uc.AvailableTimes(ctx, june10)
	require.NoError(t, err)
	assert.True(t, availability.ContainsTime(times, "10:00"), "completed appointment frees the slot")
	assert.Equal(t, domain.DefaultSlotTimes, times)
}
