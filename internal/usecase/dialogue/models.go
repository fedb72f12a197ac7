package dialogue

import (
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/calendar"
)

// ActionKind тип действия пользователя
type ActionKind string

const (
	ActionShareContact     ActionKind = "share_contact"
	ActionSelectService    ActionKind = "select_service"
	ActionSelectDate       ActionKind = "select_date"
	ActionSelectTime       ActionKind = "select_time"
	ActionConfirm          ActionKind = "confirm"
	ActionCancel           ActionKind = "cancel"
	ActionBack             ActionKind = "back"
	ActionAdminChoice      ActionKind = "admin_choice"
	ActionMarkCompleted    ActionKind = "mark_completed"
	ActionSubmitID         ActionKind = "submit_id"
	ActionCalendarNavigate ActionKind = "calendar_navigate"
	ActionPickDate         ActionKind = "pick_date"
	ActionTypeDate         ActionKind = "type_date"
	// ActionText произвольный текст, не подходящий ни под один вариант
	ActionText ActionKind = "text"
)

var actionKinds = map[ActionKind]struct{}{
	ActionShareContact: {}, ActionSelectService: {}, ActionSelectDate: {}, ActionSelectTime: {},
	ActionConfirm: {}, ActionCancel: {}, ActionBack: {}, ActionAdminChoice: {}, ActionMarkCompleted: {},
	ActionSubmitID: {}, ActionCalendarNavigate: {}, ActionPickDate: {}, ActionTypeDate: {}, ActionText: {},
}

// ParseActionKind проверяет имя действия, пришедшее от транспорта
func ParseActionKind(s string) (ActionKind, error) {
	kind := ActionKind(s)
	if _, ok := actionKinds[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return kind, nil
}

// Пункты меню администратора
const (
	AdminViewBookings      = "view_bookings"
	AdminAddWorkingDays    = "add_working_days"
	AdminRemoveWorkingDays = "remove_working_days"
	AdminExit              = "exit"
)

// AdminMenu пункты меню администратора в порядке показа
var AdminMenu = []string{AdminViewBookings, AdminAddWorkingDays, AdminRemoveWorkingDays, AdminExit}

// Управляющие токены, которые транспорт показывает рядом с вариантами
const (
	TokenCancel        = "cancel"
	TokenConfirm       = "confirm"
	TokenBack          = "back"
	TokenMarkCompleted = "mark_completed"
)

// Action нормализованное действие пользователя.
// Используемые поля зависят от Kind.
type Action struct {
	Kind  ActionKind
	Value string // услуга, дата YYYY-MM-DD, время HH:MM, пункт меню, id записи

	// ShareContact
	Phone string
	Name  string

	// CalendarNavigate
	Year  int
	Month int
}

func ShareContact(phone, name string) Action {
	return Action{Kind: ActionShareContact, Phone: phone, Name: name}
}

func SelectService(service string) Action { return Action{Kind: ActionSelectService, Value: service} }
func SelectDate(date string) Action       { return Action{Kind: ActionSelectDate, Value: date} }
func SelectTime(t string) Action          { return Action{Kind: ActionSelectTime, Value: t} }
func Confirm() Action                     { return Action{Kind: ActionConfirm} }
func Cancel() Action                      { return Action{Kind: ActionCancel} }
func Back() Action                        { return Action{Kind: ActionBack} }
func AdminChoice(item string) Action      { return Action{Kind: ActionAdminChoice, Value: item} }
func MarkCompleted() Action               { return Action{Kind: ActionMarkCompleted} }
func SubmitID(raw string) Action          { return Action{Kind: ActionSubmitID, Value: raw} }
func PickDate(date string) Action         { return Action{Kind: ActionPickDate, Value: date} }
func TypeDate(date string) Action         { return Action{Kind: ActionTypeDate, Value: date} }
func Text(raw string) Action              { return Action{Kind: ActionText, Value: raw} }

func CalendarNavigate(year, month int) Action {
	return Action{Kind: ActionCalendarNavigate, Year: year, Month: month}
}

// Directive что показать пользователю после хода
type Directive struct {
	State          domain.DialogueState
	Message        string
	Options        []string       // варианты выбора вместе с управляющими токенами
	Calendar       *calendar.Grid // только при добавлении рабочих дней
	RequestContact bool           // транспорт должен запросить номер телефона
	Terminal       bool
}

// Result итог хода: новая сессия и директива
type Result struct {
	Session   *domain.Session
	Directive Directive
}
