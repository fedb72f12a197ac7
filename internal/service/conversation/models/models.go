package models

import (
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/calendar"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/dialogue"
)

// Request модели

// StartRequest запрос на начало диалога. Без SessionID выдается новый id.
type StartRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	UserID    int64  `json:"userId"`
	UserName  string `json:"userName"`
}

// ActionInput структурированное действие от транспорта
type ActionInput struct {
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
	Year  int    `json:"year,omitempty"`
	Month int    `json:"month,omitempty"`
}

// Input ввод пользователя: свободный текст или готовое действие
type Input struct {
	Text   string       `json:"text,omitempty"`
	Action *ActionInput `json:"action,omitempty"`
}

// ToAction конвертирует структурированное действие в dialogue.Action
func (a *ActionInput) ToAction() (dialogue.Action, error) {
	kind, err := dialogue.ParseActionKind(a.Kind)
	if err != nil {
		return dialogue.Action{}, err
	}
	return dialogue.Action{
		Kind:  kind,
		Value: a.Value,
		Phone: a.Phone,
		Name:  a.Name,
		Year:  a.Year,
		Month: a.Month,
	}, nil
}

// Response модели

// DirectiveResponse что показать пользователю
type DirectiveResponse struct {
	State          string         `json:"state"`
	Message        string         `json:"message"`
	Options        []string       `json:"options"`
	Calendar       *calendar.Grid `json:"calendar,omitempty"`
	RequestContact bool           `json:"requestContact"`
	Terminal       bool           `json:"terminal"`
}

// Reply ответ на ход диалога
type Reply struct {
	SessionID string            `json:"sessionId"`
	Directive DirectiveResponse `json:"directive"`
}

// FromDirective конвертирует директиву автомата в ответ
func FromDirective(sessionID string, d dialogue.Directive) *Reply {
	options := d.Options
	if options == nil {
		options = []string{}
	}
	return &Reply{
		SessionID: sessionID,
		Directive: DirectiveResponse{
			State:          string(d.State),
			Message:        d.Message,
			Options:        options,
			Calendar:       d.Calendar,
			RequestContact: d.RequestContact,
			Terminal:       d.Terminal,
		},
	}
}

