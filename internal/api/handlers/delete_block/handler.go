package delete_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CWS-BookingService/internal/api/handlers"
	"github.com/m04kA/CWS-BookingService/internal/api/middleware"
	"github.com/m04kA/CWS-BookingService/internal/service/blocks"
	"github.com/m04kA/CWS-BookingService/internal/service/blocks/models"
)

const (
	msgUnauthorized   = "требуется аутентификация"
	msgInvalidBlockID = "некорректный ID блокировки"
	msgNotFound       = "блокировка не найдена"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/blocked/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /blocked/{id} - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	blockIDStr := vars["blockId"]

	blockID, err := strconv.ParseInt(blockIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blocked/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	serviceReq := &models.DeleteBlockRequest{
		CallerID: callerID,
		BlockID:  blockID,
	}

	err = h.service.Delete(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrBlockNotFound):
			h.logger.Warn("DELETE /blocked/{id} - Block not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, blocks.ErrAccessDenied):
			h.logger.Warn("DELETE /blocked/{id} - Access denied: block_id=%d, user_id=%d", blockID, callerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /blocked/{id} - Failed to delete block: block_id=%d, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocked/{id} - Block deleted successfully: block_id=%d, user_id=%d", blockID, callerID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
