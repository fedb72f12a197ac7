package start_session

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/conversation/models"
)

type ConversationService interface {
	Start(ctx context.Context, req *models.StartRequest) (*models.Reply, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
