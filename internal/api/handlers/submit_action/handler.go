package submit_action

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/conversation"
	"github.com/m04kA/SMC-BarberBooking/internal/service/conversation/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "ожидается text или action с известным kind"
	msgSessionNotFound    = "сессия не найдена, начните диалог заново"
	msgConcurrentTurn     = "сессия изменилась во время обработки, повторите ввод"
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

// Handle POST /api/v1/sessions/{sessionId}/actions
// Body: {"text": "..."} или {"action": {"kind": "...", ...}}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var in models.Input
	if err := handlers.DecodeJSON(r, &in); err != nil {
		h.logger.Warn("POST /sessions/{id}/actions - Invalid request body: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reply, err := h.service.Handle(r.Context(), sessionID, &in)
	if err != nil {
		switch {
		case errors.Is(err, conversation.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/actions - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, conversation.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/actions - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, conversation.ErrConcurrentTurn):
			h.logger.Warn("POST /sessions/{id}/actions - Concurrent turn: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentTurn)

		case errors.Is(err, conversation.ErrStoreUnavailable):
			h.logger.Error("POST /sessions/{id}/actions - Store unavailable: session_id=%s, error=%v", sessionID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /sessions/{id}/actions - Failed to handle action: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/actions - Action handled: session_id=%s, state=%s", sessionID, reply.Directive.State)
	handlers.RespondJSON(w, http.StatusOK, reply)
}
