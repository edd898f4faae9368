package list_blocks

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/CWS-BookingService/internal/api/handlers"
	"github.com/m04kA/CWS-BookingService/internal/api/middleware"
	"github.com/m04kA/CWS-BookingService/internal/domain"
	"github.com/m04kA/CWS-BookingService/internal/service/blocks"
	"github.com/m04kA/CWS-BookingService/internal/service/blocks/models"
)

const (
	msgUnauthorized = "требуется аутентификация"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden    = "доступ запрещен"
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

// Handle GET /api/v1/blocked
// Query params: date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /blocked - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	serviceReq := &models.ListBlocksRequest{CallerID: callerID}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /blocked - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.Date = &date
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrAccessDenied):
			h.logger.Warn("GET /blocked - Access denied: user_id=%d", callerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /blocked - Failed to list blocks: user_id=%d, error=%v", callerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /blocked - Blocks retrieved successfully: user_id=%d, count=%d",
		callerID, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
