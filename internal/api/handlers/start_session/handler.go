package start_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/conversation"
	"github.com/m04kA/SMC-BarberBooking/internal/service/conversation/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidUserID      = "userId должен быть положительным числом"
)

type Handler struct {
	service ConversationService
	logger  Logger
}

func NewHandler(service ConversationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.StartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reply, err := h.service.Start(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, conversation.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: user_id=%d", req.UserID)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		case errors.Is(err, conversation.ErrStoreUnavailable):
			h.logger.Error("POST /sessions - Store unavailable: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /sessions - Failed to start session: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session started: session_id=%s, user_id=%d", reply.SessionID, req.UserID)
	handlers.RespondJSON(w, http.StatusCreated, reply)
}
