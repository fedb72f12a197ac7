package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment запись клиента на услугу в конкретный слот.
// На один слот (дата, время) допускается не более одной записи в статусе scheduled.
type Appointment struct {
	ID        int64
	ClientID  int64
	Service   string
	Date      time.Time // Дата без времени, ссылка на рабочий день по значению
	StartTime types.TimeString
	Status    AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled возвращает true, если запись занимает слот
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// ScheduledAppointment запись в статусе scheduled вместе с данными клиента (для админа)
type ScheduledAppointment struct {
	ID          int64
	ClientName  string
	ClientPhone string
	Service     string
	Date        time.Time
	StartTime   types.TimeString
}
