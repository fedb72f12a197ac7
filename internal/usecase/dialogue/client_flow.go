package dialogue

import (
	"context"
	"errors"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	clientRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

func (m *Machine) handleAwaitingContact(ctx context.Context, s *domain.Session, a Action) (Directive, error) {
	phone := strings.TrimSpace(a.Phone)
	if a.Kind != ActionShareContact || phone == "" {
		return m.reprompt(s, msgShareContact)
	}

	name := strings.TrimSpace(a.Name)
	if name == "" {
		name = s.UserName
	}

	// 1. Сохраняем клиента (повторный контакт перезаписывает имя и телефон)
	client, err := m.clientRepo.Upsert(ctx, &domain.Client{ExternalID: s.UserID, Name: name, Phone: phone})
	if err != nil {
		return Directive{}, m.storeError("ShareContact", err)
	}

	s.ClientID = client.ID
	s.Phone = phone
	s.UserName = name

	// 2. Администратор определяется только по совпадению телефона
	if phone == m.adminPhone {
		m.logger.Info("ShareContact: user=%d authenticated as admin", s.UserID)
		s.IsAdmin = true
		return m.toAdminMenu(s, msgAdminMenu), nil
	}

	s.State = domain.StateChoosingService
	s.Offered = append([]string(nil), m.services...)
	return m.directive(s, msgChooseService), nil
}

func (m *Machine) handleChoosingService(ctx context.Context, s *domain.Session, a Action) (Directive, error) {
	if a.Kind != ActionSelectService || !contains(s.Offered, a.Value) {
		return m.reprompt(s, msgChooseServiceAgain)
	}

	s.Service = a.Value
	return m.offerDates(ctx, s, msgChooseDate(s.Service))
}

func (m *Machine) handleChoosingDate(ctx context.Context, s *domain.Session, a Action) (Directive, error) {
	if a.Kind != ActionSelectDate || !contains(s.Offered, a.Value) {
		return m.reprompt(s, msgChooseDateAgain)
	}

	// 1. Дата могла перестать быть рабочей после показа списка
	dates, err := m.availability.AvailableDates(ctx)
	if err != nil {
		return Directive{}, m.storeError("SelectDate", err)
	}
	fresh := formatDates(dates)
	if !contains(fresh, a.Value) {
		return m.offerDateList(s, fresh, msgChooseDateAgain), nil
	}

	date, err := domain.ParseDate(a.Value)
	if err != nil {
		return m.reprompt(s, msgChooseDateAgain)
	}

	// 2. День без свободных слотов: остаемся на выборе даты
	times, err := m.availability.AvailableTimes(ctx, date)
	if err != nil {
		return Directive{}, m.storeError("SelectDate", err)
	}
	if len(times) == 0 {
		return m.offerDateList(s, fresh, msgNoTimes(a.Value, s.Service)), nil
	}

	s.Date = a.Value
	s.Time = ""
	s.State = domain.StateChoosingTime
	s.Offered = formatTimes(times)
	return m.directive(s, msgChooseTime(s.Service, s.Date)), nil
}

func (m *Machine) handleChoosingTime(ctx context.Context, s *domain.Session, a Action) (Directive, error) {
	if a.Kind != ActionSelectTime || !contains(s.Offered, a.Value) {
		return m.reprompt(s, msgChooseTimeAgain)
	}

	// Время перепроверяется на момент выбора: слот мог занять другой клиент
	fresh, err := m.freshTimes(ctx, s)
	if err != nil {
		return Directive{}, m.storeError("SelectTime", err)
	}
	if !contains(fresh, a.Value) {
		return m.offerTimes(ctx, s, msgSlotTaken(s.Date, a.Value))
	}

	s.Time = types.TimeString(a.Value)
	s.State = domain.StateConfirmingBooking
	s.Offered = []string{TokenConfirm}
	return m.directive(s, msgConfirm(s)), nil
}

func (m *Machine) handleConfirmingBooking(ctx context.Context, s *domain.Session, a Action) (Directive, error) {
	if a.Kind != ActionConfirm {
		return m.reprompt(s, msgConfirmAgain)
	}

	// 1. Оптимистичная проверка перед записью
	fresh, err := m.freshTimes(ctx, s)
	if err != nil {
		return Directive{}, m.storeError("Confirm", err)
	}
	if !contains(fresh, s.Time.String()) {
		return m.offerTimes(ctx, s, msgSlotTaken(s.Date, s.Time.String()))
	}

	date, err := domain.ParseDate(s.Date)
	if err != nil {
		return Directive{}, m.storeError("Confirm", err)
	}

	// 2. Запись. Уникальность слота гарантирует хранилище.
	booked, err := m.booker.Execute(ctx, &book_appointment.Request{
		ClientID:  s.ClientID,
		Service:   s.Service,
		Date:      date,
		StartTime: s.Time,
	})
	if errors.Is(err, book_appointment.ErrSlotNotAvailable) {
		m.logger.Warn("Confirm: session=%s lost the race for %s %s", s.ID, s.Date, s.Time)
		return m.offerTimes(ctx, s, msgSlotTaken(s.Date, s.Time.String()))
	}
	if err != nil {
		return Directive{}, m.storeError("Confirm", err)
	}

	m.logger.Info("Confirm: session=%s booked appointment id=%d", s.ID, booked.ID)

	// 3. Уведомление администратору не влияет на результат записи
	m.notifyAdmin(ctx, s)

	return m.finish(s, domain.StateCompleted, msgBooked(s)), nil
}

// offerDates показывает актуальный список дат. Без рабочих дней диалог завершается.
func (m *Machine) offerDates(ctx context.Context, s *domain.Session, message string) (Directive, error) {
	dates, err := m.availability.AvailableDates(ctx)
	if err != nil {
		return Directive{}, m.storeError("OfferDates", err)
	}
	return m.offerDateList(s, formatDates(dates), message), nil
}

func (m *Machine) offerDateList(s *domain.Session, dates []string, message string) Directive {
	if len(dates) == 0 {
		return m.finish(s, domain.StateCancelled, msgNoDates)
	}

	s.Date = ""
	s.Time = ""
	s.State = domain.StateChoosingDate
	s.Offered = dates
	return m.directive(s, message)
}

// offerTimes показывает актуальные времена на выбранную дату,
// а если их не осталось, возвращает к выбору даты
func (m *Machine) offerTimes(ctx context.Context, s *domain.Session, message string) (Directive, error) {
	fresh, err := m.freshTimes(ctx, s)
	if err != nil {
		return Directive{}, m.storeError("OfferTimes", err)
	}
	if len(fresh) == 0 {
		return m.offerDates(ctx, s, msgNoTimes(s.Date, s.Service))
	}

	s.Time = ""
	s.State = domain.StateChoosingTime
	s.Offered = fresh
	return m.directive(s, message), nil
}

func (m *Machine) freshTimes(ctx context.Context, s *domain.Session) ([]string, error) {
	date, err := domain.ParseDate(s.Date)
	if err != nil {
		return nil, err
	}
	times, err := m.availability.AvailableTimes(ctx, date)
	if err != nil {
		return nil, err
	}
	return formatTimes(times), nil
}

func (m *Machine) notifyAdmin(ctx context.Context, s *domain.Session) {
	if m.notifier == nil {
		return
	}

	admin, err := m.clientRepo.FindByPhone(ctx, m.adminPhone)
	if errors.Is(err, clientRepo.ErrClientNotFound) {
		m.logger.Warn("NotifyAdmin: admin %s has never contacted the bot, notification skipped", m.adminPhone)
		return
	}
	if err != nil {
		m.metrics.IncNotificationFailed()
		m.logger.Error("NotifyAdmin: failed to find admin: %v", err)
		return
	}

	if err := m.notifier.Send(ctx, admin.ExternalID, msgAdminNotification(s)); err != nil {
		m.metrics.IncNotificationFailed()
		m.logger.Error("NotifyAdmin: failed to send notification: %v", err)
	}
}
