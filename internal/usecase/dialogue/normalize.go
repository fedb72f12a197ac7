package dialogue

import (
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Подписи кнопок мессенджера, которые транспорт может прислать вместо токенов
var tokenAliases = map[string]string{
	"❌ отмена":                   TokenCancel,
	"отмена":                     TokenCancel,
	"✅ подтвердить":              TokenConfirm,
	"подтвердить":                TokenConfirm,
	"🔙 назад в меню админа":      TokenBack,
	"🔙 назад":                    TokenBack,
	"назад":                      TokenBack,
	"✅ отметить как выполненную": TokenMarkCompleted,
	"📋 просмотр записей":         AdminViewBookings,
	"➕ добавить рабочие дни":     AdminAddWorkingDays,
	"➖ удалить рабочие дни":      AdminRemoveWorkingDays,
	"🚪 выход из админ-панели":    AdminExit,
}

// NormalizeInput превращает текст пользователя в действие для текущего состояния.
// Значение не проверяется: это делает автомат.
func NormalizeInput(state domain.DialogueState, text string) Action {
	raw := strings.TrimSpace(text)
	token := raw
	if alias, ok := tokenAliases[strings.ToLower(raw)]; ok {
		token = alias
	}

	switch strings.ToLower(token) {
	case TokenCancel:
		return Cancel()
	case TokenConfirm:
		return Confirm()
	case TokenBack:
		return Back()
	}

	switch state {
	case domain.StateChoosingService:
		return SelectService(raw)
	case domain.StateChoosingDate, domain.StateRemovingWorkingDays:
		return SelectDate(raw)
	case domain.StateChoosingTime:
		return SelectTime(raw)
	case domain.StateAdminMenu:
		return AdminChoice(token)
	case domain.StateViewingBookings:
		if token == TokenMarkCompleted {
			return MarkCompleted()
		}
	case domain.StateAwaitingAppointmentID:
		return SubmitID(raw)
	case domain.StateAddingWorkingDays:
		return TypeDate(raw)
	}

	return Text(raw)
}
