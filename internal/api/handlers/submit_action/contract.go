package submit_action

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/conversation/models"
)

type ConversationService interface {
	Handle(ctx context.Context, sessionID string, in *models.Input) (*models.Reply, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
