package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// DialogueState узел диалога записи
type DialogueState string

// Клиентская ветка
const (
	StateAwaitingContact   DialogueState = "awaiting_contact"
	StateChoosingService   DialogueState = "choosing_service"
	StateChoosingDate      DialogueState = "choosing_date"
	StateChoosingTime      DialogueState = "choosing_time"
	StateConfirmingBooking DialogueState = "confirming_booking"
	StateCompleted         DialogueState = "completed"
	StateCancelled         DialogueState = "cancelled"
)

// Ветка администратора
const (
	StateAdminMenu             DialogueState = "admin_menu"
	StateViewingBookings       DialogueState = "viewing_bookings"
	StateAwaitingAppointmentID DialogueState = "awaiting_appointment_id"
	StateAddingWorkingDays     DialogueState = "adding_working_days"
	StateRemovingWorkingDays   DialogueState = "removing_working_days"
)

// IsTerminal возвращает true для состояний без исходящих переходов
func (s DialogueState) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// IsAdmin возвращает true для состояний ветки администратора
func (s DialogueState) IsAdmin() bool {
	switch s {
	case StateAdminMenu, StateViewingBookings, StateAwaitingAppointmentID,
		StateAddingWorkingDays, StateRemovingWorkingDays:
		return true
	}
	return false
}

// Session черновик одного диалога. Живет от начала диалога до терминального состояния.
type Session struct {
	ID       string        `json:"id"`
	UserID   int64         `json:"user_id"`
	UserName string        `json:"user_name"`
	State    DialogueState `json:"state"`

	ClientID int64            `json:"client_id,omitempty"`
	Phone    string           `json:"phone,omitempty"`
	IsAdmin  bool             `json:"is_admin,omitempty"`
	Service  string           `json:"service,omitempty"`
	Date     string           `json:"date,omitempty"` // YYYY-MM-DD
	Time     types.TimeString `json:"time,omitempty"`

	// Offered варианты, показанные в последнем вопросе
	Offered []string `json:"offered,omitempty"`

	// Месяц, открытый в календаре администратора
	CalendarYear  int `json:"calendar_year,omitempty"`
	CalendarMonth int `json:"calendar_month,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`

	// Version номер сохраненной ревизии, растет с каждым записанным ходом
	Version int64 `json:"version"`
}

// NewSession создает сессию в начальном состоянии
func NewSession(id string, userID int64, userName string) *Session {
	return &Session{
		ID:       id,
		UserID:   userID,
		UserName: userName,
		State:    StateAwaitingContact,
	}
}

// Clone возвращает независимую копию сессии
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Offered = append([]string(nil), s.Offered...)
	return &c
}
