package dialogue

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const (
	msgShareContact        = "Пожалуйста, поделитесь своим номером телефона для продолжения."
	msgChooseService       = "Выберите услугу:"
	msgChooseServiceAgain  = "Пожалуйста, выберите услугу из предложенных вариантов:"
	msgChooseDateAgain     = "Пожалуйста, выберите дату из предложенных вариантов:"
	msgChooseTimeAgain     = "Пожалуйста, выберите время из предложенных вариантов:"
	msgConfirmAgain        = "Пожалуйста, подтвердите или отмените запись:"
	msgNoDates             = "К сожалению, сейчас нет доступных дат для записи. Пожалуйста, попробуйте позже."
	msgCancelled           = "Запись отменена."
	msgAdminMenu           = "Вы вошли как администратор. Выберите действие:"
	msgAdminMenuAgain      = "Пожалуйста, выберите действие из меню администратора:"
	msgAdminExit           = "Вы вышли из админ-панели.\n\nДля возврата используйте /start"
	msgNoAppointments      = "Нет активных записей.\n\nВернуться в /start"
	msgViewingAgain        = "Отметьте запись как выполненную или вернитесь в меню."
	msgEnterAppointmentID  = "Введите ID записи, которую нужно отметить как выполненную:"
	msgInvalidAppointment  = "Неверный формат ID. Пожалуйста, введите число.\n\nВернуться в /start"
	msgPickWorkingDay      = "📅 Выберите дату для добавления в рабочие дни:"
	msgInvalidWorkingDay   = "Не удалось распознать дату. Введите дату в формате ГГГГ-ММ-ДД или выберите её в календаре:"
	msgPastWorkingDay      = "Эта дата уже прошла. Выберите дату в календаре:"
	msgNoWorkingDays       = "Нет доступных рабочих дней для удаления.\n\nВернуться в /start"
	msgPickDayToRemove     = "📅 Выберите дату для удаления:"
	msgPickDayToRemoveOnly = "Пожалуйста, выберите дату из списка:"
)

func msgWelcome(name string) string {
	return fmt.Sprintf("Здравствуйте, %s! Добро пожаловать в бот записи к парикмахеру. %s", name, msgShareContact)
}

func msgChooseDate(service string) string {
	return fmt.Sprintf("Вы выбрали: %s\n📅 Теперь выберите дату:", service)
}

func msgNoTimes(date, service string) string {
	return fmt.Sprintf("К сожалению, на %s нет свободных слотов. Пожалуйста, выберите другую дату.\n\nВы выбрали: %s\n📅 Теперь выберите другую дату:", date, service)
}

func msgChooseTime(service, date string) string {
	return fmt.Sprintf("Вы выбрали: %s на %s\n⏰ Теперь выберите время:", service, date)
}

func msgSlotTaken(date string, t string) string {
	return fmt.Sprintf("К сожалению, время %s на %s уже занято. Пожалуйста, выберите другое время:", t, date)
}

func msgConfirm(sess *domain.Session) string {
	return fmt.Sprintf("Подтвердите вашу запись:\nУслуга: %s\nДата: %s\nВремя: %s", sess.Service, sess.Date, sess.Time)
}

func msgBooked(sess *domain.Session) string {
	return fmt.Sprintf("✅ Ваша запись успешно подтверждена!\n\n🔹 Услуга: %s\n📅 Дата: %s\n⏰ Время: %s\n\n"+
		"🙏 Мы будем ждать вас! В случае необходимости с вами свяжутся по указанному номеру телефона.",
		sess.Service, sess.Date, sess.Time)
}

func msgAdminNotification(sess *domain.Session) string {
	return fmt.Sprintf("📣 Новая запись!\n\n👤 Клиент: %s\n📱 Телефон: %s\n🔹 Услуга: %s\n📅 Дата: %s\n⏰ Время: %s",
		sess.UserName, sess.Phone, sess.Service, sess.Date, sess.Time)
}

func msgAppointments(list []*domain.ScheduledAppointment) string {
	var b strings.Builder
	b.WriteString("Активные записи:\n\n")
	for _, a := range list {
		fmt.Fprintf(&b, "ID: %d - %s (%s)\n", a.ID, a.ClientName, a.ClientPhone)
		fmt.Fprintf(&b, "Услуга: %s\n", a.Service)
		fmt.Fprintf(&b, "Дата и время: %s %s\n", domain.FormatDate(a.Date), a.StartTime)
		b.WriteString("-------------------\n")
	}
	return b.String()
}

func msgMarkedCompleted(id int64) string {
	return fmt.Sprintf("Запись #%d отмечена как выполненная.\n\nВернуться в /start", id)
}

func msgWorkingDayAdded(date string, res domain.AddWorkingDayResult) string {
	if res == domain.WorkingDayAlreadyExists {
		return fmt.Sprintf("⚠️ Дата %s уже существует в списке рабочих дней.\n\n%s", date, msgAdminMenu)
	}
	return fmt.Sprintf("✅ Дата %s успешно добавлена как рабочий день.\n\n%s", date, msgAdminMenu)
}

func msgWorkingDayRemoved(date string, removed bool) string {
	if !removed {
		return fmt.Sprintf("Ошибка при удалении даты %s.\n\nВернуться в /start", date)
	}
	return fmt.Sprintf("Дата %s успешно удалена из списка рабочих дней.\n\nВернуться в /start", date)
}
