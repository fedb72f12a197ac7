package dialogue

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/calendar"
)

func (m *Machine) toAdminMenu(s *domain.Session, message string) Directive {
	s.State = domain.StateAdminMenu
	s.Offered = append([]string(nil), AdminMenu...)
	return m.directive(s, message)
}

func (m *Machine) handleAdminMenu(ctx context.Context, s *domain.Session, a Action) (Directive, error) {
	if a.Kind == ActionBack {
		return m.toAdminMenu(s, msgAdminMenu), nil
	}
	if a.Kind != ActionAdminChoice || !contains(s.Offered, a.Value) {
		return m.reprompt(s, msgAdminMenuAgain)
	}

	switch a.Value {
	case AdminViewBookings:
		list, err := m.appointmentRepo.ListScheduled(ctx)
		if err != nil {
			return Directive{}, m.storeError("ViewBookings", err)
		}
		if len(list) == 0 {
			return m.finish(s, domain.StateCompleted, msgNoAppointments), nil
		}
		s.State = domain.StateViewingBookings
		s.Offered = []string{TokenMarkCompleted}
		return m.directive(s, msgAppointments(list)), nil

	case AdminAddWorkingDays:
		today := m.today()
		s.State = domain.StateAddingWorkingDays
		s.Offered = nil
		s.CalendarYear = today.Year()
		s.CalendarMonth = int(today.Month())
		return m.directive(s, msgPickWorkingDay), nil

	case AdminRemoveWorkingDays:
		dates, err := m.availability.AvailableDates(ctx)
		if err != nil {
			return Directive{}, m.storeError("RemoveWorkingDays", err)
		}
		if len(dates) == 0 {
			return m.finish(s, domain.StateCompleted, msgNoWorkingDays), nil
		}
		s.State = domain.StateRemovingWorkingDays
		s.Offered = formatDates(dates)
		return m.directive(s, msgPickDayToRemove), nil

	default: // AdminExit
		return m.finish(s, domain.StateCompleted, msgAdminExit), nil
	}
}

func (m *Machine) handleViewingBookings(_ context.Context, s *domain.Session, a Action) (Directive, error) {
	switch a.Kind {
	case ActionBack:
		return m.toAdminMenu(s, msgAdminMenu), nil
	case ActionMarkCompleted:
		s.State = domain.StateAwaitingAppointmentID
		s.Offered = nil
		return m.directive(s, msgEnterAppointmentID), nil
	default:
		return m.reprompt(s, msgViewingAgain)
	}
}

// handleAwaitingAppointmentID принимает номер записи. Нечисловой ввод завершает
// подсценарий без повторного вопроса, существование записи не проверяется.
func (m *Machine) handleAwaitingAppointmentID(ctx context.Context, s *domain.Session, a Action) (Directive, error) {
	switch a.Kind {
	case ActionBack:
		return m.toAdminMenu(s, msgAdminMenu), nil
	case ActionSubmitID, ActionText:
	default:
		return m.reprompt(s, msgEnterAppointmentID)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(a.Value), 10, 64)
	if err != nil {
		m.logger.Warn("MarkCompleted: invalid appointment id %q", a.Value)
		return m.finish(s, domain.StateCompleted, msgInvalidAppointment), nil
	}

	if err := m.appointmentRepo.MarkCompleted(ctx, id); err != nil {
		return Directive{}, m.storeError("MarkCompleted", err)
	}

	m.logger.Info("MarkCompleted: appointment id=%d", id)
	return m.finish(s, domain.StateCompleted, msgMarkedCompleted(id)), nil
}

func (m *Machine) handleAddingWorkingDays(ctx context.Context, s *domain.Session, a Action) (Directive, error) {
	switch a.Kind {
	case ActionBack:
		return m.toAdminMenu(s, msgAdminMenu), nil

	case ActionCalendarNavigate:
		// Перелистывание только перерисовывает календарь
		if a.Month < int(time.January) || a.Month > int(time.December) || a.Year < 1 {
			return m.reprompt(s, msgPickWorkingDay)
		}
		s.CalendarYear = a.Year
		s.CalendarMonth = a.Month
		return m.directive(s, msgPickWorkingDay), nil

	case ActionTypeDate, ActionText:
		date, err := domain.ParseDate(strings.TrimSpace(a.Value))
		if err != nil {
			return m.reprompt(s, msgInvalidWorkingDay)
		}
		return m.addWorkingDay(ctx, s, date)

	case ActionPickDate:
		date, err := domain.ParseDate(a.Value)
		if err != nil {
			return m.reprompt(s, msgInvalidWorkingDay)
		}
		grid, err := calendar.RenderMonth(date.Year(), date.Month(), m.today())
		if err != nil {
			return m.reprompt(s, msgInvalidWorkingDay)
		}
		if cell, ok := grid.Cell(a.Value); !ok || !cell.Selectable() {
			return m.reprompt(s, msgPastWorkingDay)
		}
		return m.addWorkingDay(ctx, s, date)

	default:
		return m.reprompt(s, msgPickWorkingDay)
	}
}

func (m *Machine) addWorkingDay(ctx context.Context, s *domain.Session, date time.Time) (Directive, error) {
	res, err := m.workingDayRepo.Add(ctx, date)
	if err != nil {
		return Directive{}, m.storeError("AddWorkingDay", err)
	}

	m.logger.Info("AddWorkingDay: %s %s", domain.FormatDate(date), res)
	return m.toAdminMenu(s, msgWorkingDayAdded(domain.FormatDate(date), res)), nil
}

func (m *Machine) handleRemovingWorkingDays(ctx context.Context, s *domain.Session, a Action) (Directive, error) {
	if a.Kind == ActionBack {
		return m.toAdminMenu(s, msgAdminMenu), nil
	}
	if a.Kind != ActionSelectDate || !contains(s.Offered, a.Value) {
		return m.reprompt(s, msgPickDayToRemoveOnly)
	}

	date, err := domain.ParseDate(a.Value)
	if err != nil {
		return m.reprompt(s, msgPickDayToRemoveOnly)
	}

	// Записи на удаляемую дату не отменяются
	removed, err := m.workingDayRepo.Remove(ctx, date)
	if err != nil {
		return Directive{}, m.storeError("RemoveWorkingDay", err)
	}

	m.logger.Info("RemoveWorkingDay: %s removed=%t", a.Value, removed)
	return m.finish(s, domain.StateCompleted, msgWorkingDayRemoved(a.Value, removed)), nil
}
